package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/OpenPledge/crowdfund_ledger/internal/apperrors"
	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	portsrepo "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/repositories"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/dto"
	"github.com/OpenPledge/crowdfund_ledger/internal/middleware"
	"github.com/OpenPledge/crowdfund_ledger/internal/platform/config"
	"github.com/OpenPledge/crowdfund_ledger/internal/platform/metrics"
	"github.com/OpenPledge/crowdfund_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// campaignService owns the campaign lifecycle rules. State-dependent guards
// (activation, ban set, status, subscription level) are re-verified by the
// store inside the per-campaign critical section; the checks here decide
// error precedence and keep invalid commands away from the store.
type campaignService struct {
	campaignRepo       portsrepo.CampaignRepositoryFacade
	registrySvc        portssvc.RegistrySvcFacade
	listingFee         decimal.Decimal
	feeRateBasisPoints int64
}

// NewCampaignService creates a new campaign service with the fee policy from
// configuration.
func NewCampaignService(campaignRepo portsrepo.CampaignRepositoryFacade, registrySvc portssvc.RegistrySvcFacade, cfg *config.Config) portssvc.CampaignSvcFacade {
	return &campaignService{
		campaignRepo:       campaignRepo,
		registrySvc:        registrySvc,
		listingFee:         cfg.ListingFee,
		feeRateBasisPoints: cfg.FeeRateBasisPoints,
	}
}

var _ portssvc.CampaignSvcFacade = (*campaignService)(nil)

func (s *campaignService) CreateCampaign(ctx context.Context, caller string, req dto.CreateCampaignRequest) (campaign *domain.Campaign, err error) {
	defer func() { metrics.ObserveCommand("create_campaign", err) }()
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", apperrors.ErrInvalidParameters)
	}
	if req.SharePrice.Sign() <= 0 || !req.SharePrice.IsInteger() {
		return nil, fmt.Errorf("%w: share price must be a positive integer amount", apperrors.ErrInvalidParameters)
	}
	if req.TotalShares <= 0 {
		return nil, fmt.Errorf("%w: total shares must be positive", apperrors.ErrInvalidParameters)
	}
	if req.AttachedValue.Sign() < 0 || !req.AttachedValue.IsInteger() {
		return nil, fmt.Errorf("%w: attached value must be a non-negative integer amount", apperrors.ErrInvalidParameters)
	}
	if req.AttachedValue.LessThan(s.listingFee) {
		return nil, fmt.Errorf("%w: attached value %s below listing fee %s",
			apperrors.ErrInvalidPayment, req.AttachedValue, s.listingFee)
	}

	campaign, err = s.campaignRepo.CreateCampaign(ctx, domain.Campaign{
		Entrepreneur: caller,
		Title:        strings.TrimSpace(req.Title),
		SharePrice:   req.SharePrice,
		TotalShares:  req.TotalShares,
	}, req.AttachedValue)
	if err != nil {
		return nil, err
	}

	logger.Info("Campaign created",
		slog.Uint64("campaign_id", campaign.ID),
		slog.String("title", campaign.Title),
		slog.Int64("total_shares", campaign.TotalShares))
	return campaign, nil
}

func (s *campaignService) GetCampaign(ctx context.Context, campaignID uint64) (*domain.Campaign, error) {
	return s.campaignRepo.FindCampaignByID(ctx, campaignID)
}

func (s *campaignService) ListCampaigns(ctx context.Context, limit int, offset int) ([]domain.Campaign, uint64, error) {
	campaigns, err := s.campaignRepo.ListCampaigns(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.campaignRepo.CampaignCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// authorizeLifecycle checks the entrepreneur-or-admin rule shared by cancel
// and complete. The entrepreneur field is immutable, so reading it outside
// the store's critical section is safe.
func (s *campaignService) authorizeLifecycle(ctx context.Context, caller string, campaign *domain.Campaign) error {
	if utils.NormalizeAddress(caller) == campaign.Entrepreneur {
		return nil
	}
	isAdmin, err := s.registrySvc.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !isAdmin {
		return fmt.Errorf("%w: %s is neither the entrepreneur nor an admin", apperrors.ErrUnauthorized, caller)
	}
	return nil
}

func (s *campaignService) CancelCampaign(ctx context.Context, caller string, campaignID uint64) (campaign *domain.Campaign, err error) {
	defer func() { metrics.ObserveCommand("cancel_campaign", err) }()
	logger := middleware.GetLoggerFromCtx(ctx)

	current, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.CampaignActive {
		return nil, fmt.Errorf("%w: campaign %d is %s", apperrors.ErrInvalidState, campaignID, current.Status)
	}
	if err = s.authorizeLifecycle(ctx, caller, current); err != nil {
		return nil, err
	}

	campaign, credits, err := s.campaignRepo.CancelCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	logger.Info("Campaign cancelled",
		slog.Uint64("campaign_id", campaignID),
		slog.Int("backers_refunded", len(credits)))
	return campaign, nil
}

func (s *campaignService) CompleteCampaign(ctx context.Context, caller string, campaignID uint64) (campaign *domain.Campaign, settlement *domain.Settlement, err error) {
	defer func() { metrics.ObserveCommand("complete_campaign", err) }()
	logger := middleware.GetLoggerFromCtx(ctx)

	current, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, nil, err
	}
	if current.Status != domain.CampaignActive || !current.FullySubscribed() {
		return nil, nil, fmt.Errorf("%w: campaign %d is %s with %d of %d shares",
			apperrors.ErrInvalidState, campaignID, current.Status, current.CurrentShares, current.TotalShares)
	}
	if err = s.authorizeLifecycle(ctx, caller, current); err != nil {
		return nil, nil, err
	}

	campaign, settlement, err = s.campaignRepo.CompleteCampaign(ctx, campaignID, s.feeRateBasisPoints)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Campaign completed",
		slog.Uint64("campaign_id", campaignID),
		slog.String("net_payout", settlement.NetPayout.String()),
		slog.String("fee", settlement.Fee.String()))
	return campaign, settlement, nil
}
