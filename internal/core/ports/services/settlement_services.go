package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// SettlementSvcFacade resolves outstanding balances: investor refund claims,
// owner fee withdrawal and the irreversible shutdown.
type SettlementSvcFacade interface {
	// RefundInvestor pays out and zeroes the caller's full refund balance.
	RefundInvestor(ctx context.Context, caller string) (decimal.Decimal, error)

	// WithdrawFees pays out and zeroes the collected fee balance. Admin-only.
	WithdrawFees(ctx context.Context, caller string) (decimal.Decimal, error)

	// DestroyContract irreversibly shuts the ledger down. Admin-only. Refund
	// claims and fee withdrawal remain permitted afterwards so outstanding
	// balances can be drained.
	DestroyContract(ctx context.Context, caller string) error

	// RefundBalance returns the claimable balance for addr.
	RefundBalance(ctx context.Context, addr string) (decimal.Decimal, error)

	// TotalFeesCollected returns the undrawn protocol fee balance.
	TotalFeesCollected(ctx context.Context) (decimal.Decimal, error)
}
