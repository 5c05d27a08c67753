package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs        []*fakeTx
	commitErrs []error
	lastOpts   *sql.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	if len(b.commitErrs) > len(b.txs) {
		tx.commitErr = b.commitErrs[len(b.txs)]
	}
	b.txs = append(b.txs, tx)
	b.lastOpts = opts
	return tx, nil
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{}
	tm := NewTransactionManager(db)

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.False(t, db.txs[0].rolledBack)
	assert.Equal(t, sql.LevelReadCommitted, db.lastOpts.Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	tm := NewTransactionManager(db)
	boom := errors.New("boom")

	err := tm.Do(context.Background(), func(ctx context.Context) error { return boom })

	require.ErrorIs(t, err, boom)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	db := &fakeBeginner{}
	tm := NewTransactionManager(db)
	calls := 0

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("wrapped: %w", &pq.Error{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, sql.LevelSerializable, db.lastOpts.Isolation)
	assert.True(t, db.txs[2].committed)
}

func TestDoSerializable_GivesUp(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{
		&pq.Error{Code: "40001"}, &pq.Error{Code: "40001"},
	}}
	tm := NewTransactionManager(db).WithMaxRetries(2)

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	require.ErrorIs(t, err, ErrSerialization)
	assert.Len(t, db.txs, 2)
}

func TestDoSerializable_DoesNotRetryOrdinaryErrors(t *testing.T) {
	db := &fakeBeginner{}
	tm := NewTransactionManager(db)
	calls := 0
	boom := errors.New("boom")

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestNestedCallReusesTransaction(t *testing.T) {
	db := &fakeBeginner{}
	tm := NewTransactionManager(db)

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		return tm.Do(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}
