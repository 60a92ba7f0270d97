package services

import (
	"context"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PledgeSvcFacade processes share purchases. One call buys exactly one share,
// which keeps the accounting integer-exact and the refund math free of
// rounding.
type PledgeSvcFacade interface {
	// Pledge purchases one share of an ACTIVE campaign for caller.
	Pledge(ctx context.Context, caller string, campaignID uint64, payment decimal.Decimal) (*domain.Campaign, error)

	// SharesPerBacker returns backer's holding on a campaign.
	SharesPerBacker(ctx context.Context, campaignID uint64, backer string) (int64, error)
}
