package services

import (
	"context"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	"github.com/OpenPledge/crowdfund_ledger/internal/dto"
)

// CampaignSvcFacade owns the campaign lifecycle: creation, queries and the
// two terminal transitions.
type CampaignSvcFacade interface {
	// CreateCampaign lists a new campaign for caller. The attached value must
	// cover the listing fee and is credited to the fee ledger in full.
	CreateCampaign(ctx context.Context, caller string, req dto.CreateCampaignRequest) (*domain.Campaign, error)

	// GetCampaign returns a snapshot of one campaign.
	GetCampaign(ctx context.Context, campaignID uint64) (*domain.Campaign, error)

	// ListCampaigns returns campaign snapshots in creation order plus the
	// total campaign count.
	ListCampaigns(ctx context.Context, limit int, offset int) ([]domain.Campaign, uint64, error)

	// CancelCampaign cancels an ACTIVE campaign. Caller must be the campaign's
	// entrepreneur or an admin; every backer's pledged value moves to their
	// refund balance.
	CancelCampaign(ctx context.Context, caller string, campaignID uint64) (*domain.Campaign, error)

	// CompleteCampaign completes a fully subscribed ACTIVE campaign, retaining
	// the protocol fee and recording the net payout to the entrepreneur.
	CompleteCampaign(ctx context.Context, caller string, campaignID uint64) (*domain.Campaign, *domain.Settlement, error)
}
