package xcontext

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v5"
	"gorm.io/gorm"
)

const defaultTransactionTries = 5

// ErrTxConflict is returned by repositories when an optimistic write lost a
// race against another writer. RunTransaction retries the whole attempt when
// it sees this error.
var ErrTxConflict = errors.New("transaction conflict")

// WithDBTransaction begins a transaction and returns a context whose DB is
// that transaction.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTransactionKey{}, DB(ctx).Begin())
}

func WithCommitDBTransaction(ctx context.Context) error {
	tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB)
	if !ok || tx == nil {
		return nil
	}

	return tx.Commit().Error
}

// WithRollbackDBTransaction is safe to defer right after WithDBTransaction:
// rolling back a committed transaction is a no-op.
func WithRollbackDBTransaction(ctx context.Context) {
	tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB)
	if !ok || tx == nil {
		return
	}

	tx.Rollback()
}

func inTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB)
	return ok && tx != nil
}

// RunTransaction runs fn inside a database transaction. The context passed to
// fn carries the transaction, so every repository call made with it joins
// the transaction. A nil return commits, any error rolls back.
//
// When fn fails with ErrTxConflict the whole attempt is retried with an
// exponential backoff, up to Transaction.MaxRetries attempts. Other errors are
// returned immediately. A RunTransaction nested in another one joins the outer
// transaction.
func RunTransaction(ctx context.Context, fn func(context.Context) error) error {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	cfg := Configs(ctx).Transaction
	tries := cfg.MaxRetries
	if tries == 0 {
		tries = defaultTransactionTries
	}

	b := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		b.InitialInterval = cfg.InitialInterval
	}

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := runTransactionOnce(ctx, fn)
		if err == nil {
			return struct{}{}, nil
		}

		if errors.Is(err, ErrTxConflict) {
			Logger(ctx).Debugf("Transaction conflict at attempt %d, retrying", attempt)
			return struct{}{}, err
		}

		return struct{}{}, backoff.Permanent(err)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(tries))

	return err
}

func runTransactionOnce(ctx context.Context, fn func(context.Context) error) error {
	tx := DB(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, dbTransactionKey{}, tx)); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
