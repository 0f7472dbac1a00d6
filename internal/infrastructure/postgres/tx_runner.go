package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/billing"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/onboarding"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
)

// Ensure TxRunner implements both transaction ports.
var _ billing.ConversionTxRunner = (*TxRunner)(nil)
var _ onboarding.ApprovalTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner with the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunConversion begins a transaction, runs fn with quote/load repos bound to
// the tx, and commits or rolls back.
func (r *TxRunner) RunConversion(ctx context.Context, fn func(
	quotes repository.QuoteRepository,
	loads repository.LoadRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewQuoteRepository(tx), NewLoadRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunApproval begins a transaction with application and company repos bound
// to the tx (for application approval).
func (r *TxRunner) RunApproval(ctx context.Context, fn func(
	apps repository.ApplicationRepository,
	companies repository.CompanyRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewApplicationRepository(tx), NewCompanyRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
