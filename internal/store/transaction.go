package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contextKey int

const (
	transactionKey contextKey = iota
)

var errTxDone = errors.New("transaction already finished")

// Tx is a transaction carried by a context. Every sub-store resolves its
// connection through FromContext, so the calls made with that context join
// the transaction.
type Tx struct {
	id  int64
	db  *gorm.DB
	log *zap.SugaredLogger
}

// Commit commits the transaction carried by ctx. The returned context no
// longer carries it. A context without a transaction is returned as is.
func Commit(ctx context.Context) (context.Context, error) {
	tx, ok := ctx.Value(transactionKey).(*Tx)
	if !ok || tx == nil {
		return ctx, nil
	}
	return context.WithValue(ctx, transactionKey, nil), tx.finish(true)
}

// Rollback aborts the transaction carried by ctx.
func Rollback(ctx context.Context) (context.Context, error) {
	tx, ok := ctx.Value(transactionKey).(*Tx)
	if !ok || tx == nil {
		return ctx, nil
	}
	return context.WithValue(ctx, transactionKey, nil), tx.finish(false)
}

// FromContext returns the open transaction of ctx, or nil.
func FromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(transactionKey).(*Tx); ok && tx != nil {
		return tx.db
	}
	return nil
}

func newTransactionContext(ctx context.Context, db *gorm.DB) (context.Context, error) {
	if FromContext(ctx) != nil {
		return ctx, nil
	}
	tx, err := begin(db.Session(&gorm.Session{Context: ctx}))
	if err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, transactionKey, tx), nil
}

// withTransaction runs fn inside the transaction of ctx. When ctx carries
// none, one is opened for fn and committed when fn succeeds.
func withTransaction(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	if FromContext(ctx) != nil {
		return fn(ctx)
	}
	txCtx, err := newTransactionContext(ctx, db)
	if err != nil {
		return err
	}
	if err := fn(txCtx); err != nil {
		_, _ = Rollback(txCtx)
		return err
	}
	_, err = Commit(txCtx)
	return err
}

func begin(db *gorm.DB) (*Tx, error) {
	gtx := db.Begin()
	if gtx.Error != nil {
		return nil, gtx.Error
	}
	tx := &Tx{db: gtx, log: zap.S().Named("store")}
	// sqlite has no transaction id; its transactions are logged as 0.
	if db.Dialector.Name() == "postgres" {
		var row struct{ ID int64 }
		gtx.Raw("select txid_current() as id").Scan(&row)
		tx.id = row.ID
	}
	return tx, nil
}

func (t *Tx) finish(commit bool) error {
	if t.db == nil {
		return errTxDone
	}
	op := "rollback"
	var result *gorm.DB
	if commit {
		op = "commit"
		result = t.db.Commit()
	} else {
		result = t.db.Rollback()
	}
	if result.Error != nil {
		t.log.Errorw("transaction failed to finish", "op", op, "txid", t.id, "error", result.Error)
		return result.Error
	}
	t.db = nil
	t.log.Debugw("transaction finished", "op", op, "txid", t.id)
	return nil
}
