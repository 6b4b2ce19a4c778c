package service

import (
	"fmt"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id any, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %v not found", resourceType, id)}
}

func NewErrRefreshNotFound(id uint) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "refresh progress")
}

func NewErrRefreshTypeNotFound(refreshType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("no refresh progress found for type %q", refreshType)}
}
