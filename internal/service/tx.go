// internal/service/tx.go
package service

import (
	"context"
	"fmt"

	"crowdfund-api/internal/repository"
	"crowdfund-api/internal/util"
	"crowdfund-api/pkg/db"
)

// txRunner owns the begin/commit/rollback lifecycle shared by every service.
type txRunner struct {
	dbBeginner db.DBTxBeginner   // For starting transactions (e.g., *sqlx.DB)
	beginTx    db.BeginTxFunc    // Injected dependency for beginning transactions
	commitTx   db.CommitTxFunc   // Injected dependency for committing transactions
	rollbackTx db.RollbackTxFunc // Injected dependency for rolling back transactions
}

// within runs fn as one transactional unit. The rollback is always deferred, so
// any error or panic inside fn leaves no partial write. Failures of the
// transaction itself (begin, commit) are reported as util.ErrTransactionFailed;
// errors returned by fn are passed through unchanged.
func (r txRunner) within(ctx context.Context, fn func(q repository.DBExecutor) error) error {
	txController, err := r.beginTx(ctx, r.dbBeginner)
	if err != nil {
		return txFailed("begin transaction", err)
	}
	defer r.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("%w: transaction controller does not implement DBExecutor", util.ErrTransactionFailed)
	}

	if err := fn(txExecutor); err != nil {
		return err
	}

	if err := r.commitTx(txController); err != nil {
		return txFailed("commit transaction", err)
	}
	return nil
}

func txFailed(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", util.ErrTransactionFailed, op, err)
}
