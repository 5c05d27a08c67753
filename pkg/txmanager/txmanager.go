package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

const (
	// serializationFailure is SQLSTATE 40001
	serializationFailure = "40001"
	// deadlockDetected is SQLSTATE 40P01
	deadlockDetected = "40P01"

	defaultMaxRetries = 3
)

var (
	// ErrSerialization is returned when a serializable transaction kept failing
	// with a serialization error after all retries
	ErrSerialization = errors.New("txmanager: could not serialize access")

	// ErrBeginTx is returned when a transaction cannot be started
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx is returned when commit fails for a non-serialization reason
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// TxBeginner opens transactions; *dbmetrics.DB implements it
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager runs closures inside a transaction stored in the context.
// Repositories pick the transaction up through dbmetrics.GetExecutor.
type TransactionManager struct {
	db         TxBeginner
	maxRetries int
}

// NewTransactionManager creates a manager that retries serialization failures three times
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db, maxRetries: defaultMaxRetries}
}

// WithMaxRetries overrides the retry budget of DoSerializable
func (m *TransactionManager) WithMaxRetries(n int) *TransactionManager {
	if n < 1 {
		n = 1
	}
	m.maxRetries = n
	return m
}

// Do runs fn in a READ COMMITTED transaction
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly runs fn in a read-only REPEATABLE READ transaction
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable runs fn in a SERIALIZABLE transaction.
// fn is re-executed from scratch when Postgres reports a serialization failure,
// so it must not keep side effects outside the transaction.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt < m.maxRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if !IsSerializationFailure(err) {
			return err
		}
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("%w: %v", ErrSerialization, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

// IsSerializationFailure reports whether err carries SQLSTATE 40001 or 40P01
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == serializationFailure || pqErr.Code == deadlockDetected
	}
	return false
}
