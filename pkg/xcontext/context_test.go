package xcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type counter struct {
	ID    string `gorm:"primarykey"`
	Value int
}

func newTestContext(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&counter{}))

	return WithDB(context.Background(), db)
}

func TestDBTransaction_Commit(t *testing.T) {
	ctx := newTestContext(t)

	txCtx := WithDBTransaction(ctx)
	defer RollbackDBTransaction(txCtx)

	require.NoError(t, DB(txCtx).Create(&counter{ID: "a", Value: 1}).Error)
	require.NoError(t, CommitDBTransaction(txCtx))

	var got counter
	require.NoError(t, DB(ctx).Take(&got, "id=?", "a").Error)
	require.Equal(t, 1, got.Value)
}

func TestDBTransaction_Rollback(t *testing.T) {
	ctx := newTestContext(t)

	func() {
		txCtx := WithDBTransaction(ctx)
		defer RollbackDBTransaction(txCtx)

		require.NoError(t, DB(txCtx).Create(&counter{ID: "b", Value: 1}).Error)
	}()

	var n int64
	require.NoError(t, DB(ctx).Model(&counter{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestDBTransaction_NestedJoinsOuter(t *testing.T) {
	ctx := newTestContext(t)

	outer := WithDBTransaction(ctx)
	defer RollbackDBTransaction(outer)

	inner := WithDBTransaction(outer)
	require.NoError(t, DB(inner).Create(&counter{ID: "c", Value: 1}).Error)
	require.NoError(t, CommitDBTransaction(inner))

	// The outer transaction still owns the row until it finishes.
	RollbackDBTransaction(outer)

	var n int64
	require.NoError(t, DB(ctx).Model(&counter{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestDefaults(t *testing.T) {
	ctx := context.Background()
	require.NotNil(t, Logger(ctx))
	require.Equal(t, 3, Configs(ctx).Retry.MaxAttempts)
}
