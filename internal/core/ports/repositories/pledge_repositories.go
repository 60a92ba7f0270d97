package repositories

import (
	"context"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PledgeReader defines read operations for per-backer share holdings.
type PledgeReader interface {
	// SharesPerBacker returns the number of shares a backer holds on a campaign.
	// Zero (not an error) when the backer never pledged.
	SharesPerBacker(ctx context.Context, campaignID uint64, backer string) (int64, error)
}

// PledgeWriter defines the atomic pledge transition.
type PledgeWriter interface {
	// ApplyPledge buys exactly one share on an ACTIVE, not fully subscribed
	// campaign: increments the campaign's share count and the backer's
	// holding, credits the share price to the campaign escrow and appends
	// SharesPurchased. Any surplus of payment over the share price is
	// credited to the backer's refund balance so it stays claimable.
	// Payment policy (exactness) is enforced by the caller.
	ApplyPledge(ctx context.Context, campaignID uint64, backer string, payment decimal.Decimal) (*domain.Campaign, error)
}

// PledgeRepositoryFacade combines all pledge-related repository interfaces.
type PledgeRepositoryFacade interface {
	PledgeReader
	PledgeWriter
}
