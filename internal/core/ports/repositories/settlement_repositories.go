package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// SettlementReader defines read operations for refund balances and fees.
type SettlementReader interface {
	// RefundBalance returns the claimable balance for addr; zero when none.
	RefundBalance(ctx context.Context, addr string) (decimal.Decimal, error)

	// TotalFeesCollected returns the undrawn protocol fee balance.
	TotalFeesCollected(ctx context.Context) (decimal.Decimal, error)
}

// SettlementWriter defines the atomic settlement transitions. Both are
// all-or-nothing per account: a concurrent duplicate claim fails cleanly
// rather than double-paying.
type SettlementWriter interface {
	// ClaimRefund pays out and zeroes the full refund balance of addr,
	// appending InvestorRefunded. Fails with ErrNothingToRefund on zero.
	ClaimRefund(ctx context.Context, addr string) (decimal.Decimal, error)

	// WithdrawFees pays out and zeroes the collected fee balance, appending
	// FeesWithdrawn. Fails with ErrNothingToWithdraw on zero.
	WithdrawFees(ctx context.Context, to string) (decimal.Decimal, error)
}

// SettlementRepositoryFacade combines all settlement-related repository interfaces.
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}
