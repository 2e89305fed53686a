package xcontext

import (
	"context"

	"gorm.io/gorm"
)

type txHolder struct {
	tx     *gorm.DB
	done   bool
	nested bool
}

// WithDBTransaction begins a transaction which DB(ctx) returns until it is
// committed or rolled back. Calling it again on a context that already holds
// an open transaction joins that transaction instead of nesting a new one.
func WithDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(dbTxKey{}).(*txHolder); ok && !holder.done {
		return context.WithValue(ctx, dbTxKey{}, &txHolder{tx: holder.tx, nested: true})
	}

	return context.WithValue(ctx, dbTxKey{}, &txHolder{tx: DB(ctx).Begin()})
}

// CommitDBTransaction commits the transaction started by WithDBTransaction.
// It is a no-op for joined transactions and for contexts without one.
func CommitDBTransaction(ctx context.Context) error {
	holder, ok := ctx.Value(dbTxKey{}).(*txHolder)
	if !ok || holder.done {
		return nil
	}

	holder.done = true
	if holder.nested {
		return nil
	}

	if holder.tx.Error != nil {
		holder.tx.Rollback()
		return holder.tx.Error
	}

	return holder.tx.Commit().Error
}

// RollbackDBTransaction is safe to defer right after WithDBTransaction.
func RollbackDBTransaction(ctx context.Context) {
	holder, ok := ctx.Value(dbTxKey{}).(*txHolder)
	if !ok || holder.done {
		return
	}

	holder.done = true
	if !holder.nested {
		holder.tx.Rollback()
	}
}
