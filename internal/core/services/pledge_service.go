package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OpenPledge/crowdfund_ledger/internal/apperrors"
	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	portsrepo "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/repositories"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/middleware"
	"github.com/OpenPledge/crowdfund_ledger/internal/platform/config"
	"github.com/OpenPledge/crowdfund_ledger/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// pledgeService processes share purchases. The payment policy is decided
// here against the campaign's immutable share price; supply and status are
// enforced by the store inside the per-campaign critical section, so two
// concurrent pledges can never both pass the share limit.
type pledgeService struct {
	pledgeRepo    portsrepo.PledgeRepositoryFacade
	campaignRepo  portsrepo.CampaignReader
	strictPayment bool
}

// NewPledgeService creates a new pledge service with the payment policy from
// configuration.
func NewPledgeService(pledgeRepo portsrepo.PledgeRepositoryFacade, campaignRepo portsrepo.CampaignReader, cfg *config.Config) portssvc.PledgeSvcFacade {
	return &pledgeService{
		pledgeRepo:    pledgeRepo,
		campaignRepo:  campaignRepo,
		strictPayment: cfg.StrictPledgePayment,
	}
}

var _ portssvc.PledgeSvcFacade = (*pledgeService)(nil)

func (s *pledgeService) Pledge(ctx context.Context, caller string, campaignID uint64, payment decimal.Decimal) (campaign *domain.Campaign, err error) {
	defer func() { metrics.ObserveCommand("pledge", err) }()
	logger := middleware.GetLoggerFromCtx(ctx)

	if payment.Sign() <= 0 || !payment.IsInteger() {
		return nil, fmt.Errorf("%w: payment must be a positive integer amount", apperrors.ErrInvalidPayment)
	}

	current, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.CampaignActive {
		return nil, fmt.Errorf("%w: campaign %d is %s", apperrors.ErrInvalidState, campaignID, current.Status)
	}
	if current.FullySubscribed() {
		return nil, fmt.Errorf("%w: campaign %d", apperrors.ErrOverfunded, campaignID)
	}
	if s.strictPayment && !payment.Equal(current.SharePrice) {
		return nil, fmt.Errorf("%w: payment %s must equal share price %s",
			apperrors.ErrInvalidPayment, payment, current.SharePrice)
	}
	if payment.LessThan(current.SharePrice) {
		return nil, fmt.Errorf("%w: payment %s below share price %s",
			apperrors.ErrInvalidPayment, payment, current.SharePrice)
	}

	campaign, err = s.pledgeRepo.ApplyPledge(ctx, campaignID, caller, payment)
	if err != nil {
		return nil, err
	}

	metrics.ObservePledgeVolume(payment)
	logger.Info("Share purchased",
		slog.Uint64("campaign_id", campaignID),
		slog.Int64("current_shares", campaign.CurrentShares),
		slog.Int64("total_shares", campaign.TotalShares))
	return campaign, nil
}

func (s *pledgeService) SharesPerBacker(ctx context.Context, campaignID uint64, backer string) (int64, error) {
	return s.pledgeRepo.SharesPerBacker(ctx, campaignID, backer)
}
