package repositories

import (
	"context"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CampaignReader defines read operations for campaign data.
type CampaignReader interface {
	// FindCampaignByID retrieves a snapshot of a campaign by its id.
	FindCampaignByID(ctx context.Context, campaignID uint64) (*domain.Campaign, error)

	// ListCampaigns retrieves campaign snapshots in creation order.
	// Re-querying reflects current state, not a frozen view.
	ListCampaigns(ctx context.Context, limit int, offset int) ([]domain.Campaign, error)

	// CampaignCount returns the number of campaigns ever created.
	CampaignCount(ctx context.Context) (uint64, error)
}

// CampaignWriter defines the atomic campaign state transitions. Each call is
// a single indivisible read-modify-write: it either fully applies and appends
// its event, or applies nothing.
type CampaignWriter interface {
	// CreateCampaign assigns the next sequential id, stores the campaign with
	// status ACTIVE and zero shares, credits listingValue to the fee ledger
	// and appends CampaignCreated.
	CreateCampaign(ctx context.Context, campaign domain.Campaign, listingValue decimal.Decimal) (*domain.Campaign, error)

	// CancelCampaign transitions an ACTIVE campaign to CANCELLED, moves every
	// backer's pledged value into their refund balance, zeroes the pledge
	// records and appends CampaignCancelled. The returned map holds the
	// credited amount per backer address.
	CancelCampaign(ctx context.Context, campaignID uint64) (*domain.Campaign, map[string]decimal.Decimal, error)

	// CompleteCampaign transitions a fully subscribed ACTIVE campaign to
	// COMPLETED, retains the protocol fee in the fee ledger, records the net
	// payout owed to the entrepreneur and appends CampaignCompleted.
	CompleteCampaign(ctx context.Context, campaignID uint64, feeRateBasisPoints int64) (*domain.Campaign, *domain.Settlement, error)
}

// CampaignRepositoryFacade combines all campaign-related repository interfaces.
type CampaignRepositoryFacade interface {
	CampaignReader
	CampaignWriter
}
