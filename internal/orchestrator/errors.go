package orchestrator

import (
	"errors"
	"fmt"
)

const (
	alreadyRunningMessage = "Thread is already running"
	notRunningMessage     = "Thread is not running"
)

type ErrUnknownJobKind struct {
	error
}

func NewErrUnknownJobKind(kind string) *ErrUnknownJobKind {
	return &ErrUnknownJobKind{fmt.Errorf("unknown job kind %q", kind)}
}

type ErrJobAlreadyRunning struct {
	error
}

func NewErrJobAlreadyRunning() *ErrJobAlreadyRunning {
	return &ErrJobAlreadyRunning{errors.New(alreadyRunningMessage)}
}

type ErrJobNotRunning struct {
	error
}

func NewErrJobNotRunning() *ErrJobNotRunning {
	return &ErrJobNotRunning{errors.New(notRunningMessage)}
}
