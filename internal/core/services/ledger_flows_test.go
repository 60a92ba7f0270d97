package services_test

import (
	"context"
	"testing"

	"github.com/OpenPledge/crowdfund_ledger/internal/adapters/memory"
	"github.com/OpenPledge/crowdfund_ledger/internal/apperrors"
	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/core/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LedgerFlowsTestSuite exercises full funding lifecycles across every
// service, asserting both the final balances and the committed event stream.
type LedgerFlowsTestSuite struct {
	suite.Suite
	store    *memory.LedgerStore
	services *portssvc.ServiceContainer
	ctx      context.Context
}

func (s *LedgerFlowsTestSuite) SetupTest() {
	s.store = memory.NewLedgerStore(ownerAddr, secondaryAddr)
	s.services = services.NewServiceContainer(testConfig(), s.store.Provider())
	s.ctx = context.Background()
}

func (s *LedgerFlowsTestSuite) eventKinds() []domain.EventKind {
	events, err := s.services.Event.ListEvents(s.ctx, 0, 0)
	s.Require().NoError(err)
	kinds := make([]domain.EventKind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func (s *LedgerFlowsTestSuite) TestSuccessfulFundingRound() {
	campaign, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, dto.CreateCampaignRequest{
		Title:         "Community Bakery",
		SharePrice:    decimal.NewFromInt(500),
		TotalShares:   2,
		AttachedValue: decimal.NewFromInt(50),
	})
	s.Require().NoError(err)

	_, err = s.services.Pledge.Pledge(s.ctx, backerAddr, campaign.ID, decimal.NewFromInt(500))
	s.Require().NoError(err)
	_, err = s.services.Pledge.Pledge(s.ctx, strangerAddr, campaign.ID, decimal.NewFromInt(500))
	s.Require().NoError(err)

	completed, settlement, err := s.services.Campaign.CompleteCampaign(s.ctx, entrepreneurAddr, campaign.ID)
	s.Require().NoError(err)
	s.Equal(domain.CampaignCompleted, completed.Status)

	// gross 1000, 2% fee = 20, net 980; fee ledger holds listing fee + cut.
	s.True(settlement.NetPayout.Equal(decimal.NewFromInt(980)))
	fees, err := s.services.Settlement.TotalFeesCollected(s.ctx)
	s.Require().NoError(err)
	s.True(fees.Equal(decimal.NewFromInt(70)), "fees = %s", fees)

	s.Equal([]domain.EventKind{
		domain.EventCampaignCreated,
		domain.EventSharesPurchased,
		domain.EventSharesPurchased,
		domain.EventCampaignCompleted,
	}, s.eventKinds())

	// Backers keep their share records after completion.
	shares, err := s.services.Pledge.SharesPerBacker(s.ctx, campaign.ID, backerAddr)
	s.Require().NoError(err)
	s.Equal(int64(1), shares)
}

func (s *LedgerFlowsTestSuite) TestCancelledRoundRefundsBackers() {
	campaign, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, dto.CreateCampaignRequest{
		Title:         "Abandoned Venture",
		SharePrice:    decimal.NewFromInt(500),
		TotalShares:   10,
		AttachedValue: decimal.NewFromInt(50),
	})
	s.Require().NoError(err)

	_, err = s.services.Pledge.Pledge(s.ctx, backerAddr, campaign.ID, decimal.NewFromInt(500))
	s.Require().NoError(err)

	_, err = s.services.Campaign.CancelCampaign(s.ctx, entrepreneurAddr, campaign.ID)
	s.Require().NoError(err)

	amount, err := s.services.Settlement.RefundInvestor(s.ctx, backerAddr)
	s.Require().NoError(err)
	s.True(amount.Equal(decimal.NewFromInt(500)))

	_, err = s.services.Settlement.RefundInvestor(s.ctx, backerAddr)
	s.Require().ErrorIs(err, apperrors.ErrNothingToRefund)

	s.Equal([]domain.EventKind{
		domain.EventCampaignCreated,
		domain.EventSharesPurchased,
		domain.EventCampaignCancelled,
		domain.EventInvestorRefunded,
	}, s.eventKinds())
}

func (s *LedgerFlowsTestSuite) TestShutdownDrainsOutstandingBalances() {
	campaign, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, dto.CreateCampaignRequest{
		Title:         "Final Round",
		SharePrice:    decimal.NewFromInt(500),
		TotalShares:   10,
		AttachedValue: decimal.NewFromInt(50),
	})
	s.Require().NoError(err)
	_, err = s.services.Pledge.Pledge(s.ctx, backerAddr, campaign.ID, decimal.NewFromInt(500))
	s.Require().NoError(err)
	_, err = s.services.Campaign.CancelCampaign(s.ctx, ownerAddr, campaign.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.services.Settlement.DestroyContract(s.ctx, secondaryAddr))

	_, err = s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, dto.CreateCampaignRequest{
		Title:         "Too Late",
		SharePrice:    decimal.NewFromInt(500),
		TotalShares:   1,
		AttachedValue: decimal.NewFromInt(50),
	})
	s.Require().ErrorIs(err, apperrors.ErrContractInactive)

	err = s.services.Registry.ChangeOwner(s.ctx, ownerAddr, strangerAddr)
	s.Require().ErrorIs(err, apperrors.ErrContractInactive)

	amount, err := s.services.Settlement.RefundInvestor(s.ctx, backerAddr)
	s.Require().NoError(err)
	s.True(amount.Equal(decimal.NewFromInt(500)))

	fees, err := s.services.Settlement.WithdrawFees(s.ctx, ownerAddr)
	s.Require().NoError(err)
	s.True(fees.Equal(decimal.NewFromInt(50)))

	latest, err := s.services.Event.LatestSequence(s.ctx)
	s.Require().NoError(err)
	kinds := s.eventKinds()
	s.Equal(uint64(len(kinds)), latest)
	s.Equal(domain.EventFeesWithdrawn, kinds[len(kinds)-1])
}

func TestLedgerFlowsTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerFlowsTestSuite))
}
