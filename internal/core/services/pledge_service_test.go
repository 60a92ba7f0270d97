package services_test

import (
	"context"
	"testing"

	"github.com/OpenPledge/crowdfund_ledger/internal/adapters/memory"
	"github.com/OpenPledge/crowdfund_ledger/internal/apperrors"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/core/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PledgeServiceTestSuite struct {
	suite.Suite
	store    *memory.LedgerStore
	services *portssvc.ServiceContainer
	ctx      context.Context
}

func (s *PledgeServiceTestSuite) SetupTest() {
	s.store = memory.NewLedgerStore(ownerAddr, secondaryAddr)
	s.services = services.NewServiceContainer(testConfig(), s.store.Provider())
	s.ctx = context.Background()
}

func (s *PledgeServiceTestSuite) createCampaign(totalShares int64) uint64 {
	campaign, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, dto.CreateCampaignRequest{
		Title:         "Pledge Target",
		SharePrice:    decimal.NewFromInt(100),
		TotalShares:   totalShares,
		AttachedValue: decimal.NewFromInt(50),
	})
	s.Require().NoError(err)
	return campaign.ID
}

func (s *PledgeServiceTestSuite) TestPledge_Success() {
	id := s.createCampaign(2)

	campaign, err := s.services.Pledge.Pledge(s.ctx, backerAddr, id, decimal.NewFromInt(100))
	s.Require().NoError(err)
	s.Equal(int64(1), campaign.CurrentShares)

	shares, err := s.services.Pledge.SharesPerBacker(s.ctx, id, backerAddr)
	s.Require().NoError(err)
	s.Equal(int64(1), shares)
}

func (s *PledgeServiceTestSuite) TestPledge_StrictModeRejectsOverpayment() {
	id := s.createCampaign(2)

	_, err := s.services.Pledge.Pledge(s.ctx, backerAddr, id, decimal.NewFromInt(101))
	s.Require().ErrorIs(err, apperrors.ErrInvalidPayment)
}

func (s *PledgeServiceTestSuite) TestPledge_UnderpaymentRejected() {
	id := s.createCampaign(2)

	_, err := s.services.Pledge.Pledge(s.ctx, backerAddr, id, decimal.NewFromInt(99))
	s.Require().ErrorIs(err, apperrors.ErrInvalidPayment)
}

func (s *PledgeServiceTestSuite) TestPledge_NonPositivePaymentRejected() {
	id := s.createCampaign(2)

	_, err := s.services.Pledge.Pledge(s.ctx, backerAddr, id, decimal.Zero)
	s.Require().ErrorIs(err, apperrors.ErrInvalidPayment)

	_, err = s.services.Pledge.Pledge(s.ctx, backerAddr, id, decimal.NewFromInt(-100))
	s.Require().ErrorIs(err, apperrors.ErrInvalidPayment)
}

func (s *PledgeServiceTestSuite) TestPledge_LenientModeCreditsSurplus() {
	cfg := testConfig()
	cfg.StrictPledgePayment = false
	lenient := services.NewServiceContainer(cfg, s.store.Provider())

	id := s.createCampaign(2)

	campaign, err := lenient.Pledge.Pledge(s.ctx, backerAddr, id, decimal.NewFromInt(130))
	s.Require().NoError(err)
	s.Equal(int64(1), campaign.CurrentShares)
	s.True(campaign.CollectedFunds.Equal(decimal.NewFromInt(100)))

	balance, err := lenient.Settlement.RefundBalance(s.ctx, backerAddr)
	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(30)), "balance = %s", balance)
}

func (s *PledgeServiceTestSuite) TestPledge_UnknownCampaign() {
	_, err := s.services.Pledge.Pledge(s.ctx, backerAddr, 7, decimal.NewFromInt(100))
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PledgeServiceTestSuite) TestPledge_CancelledCampaignRejected() {
	id := s.createCampaign(2)
	_, err := s.services.Campaign.CancelCampaign(s.ctx, entrepreneurAddr, id)
	s.Require().NoError(err)

	_, err = s.services.Pledge.Pledge(s.ctx, backerAddr, id, decimal.NewFromInt(100))
	s.Require().ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *PledgeServiceTestSuite) TestPledge_FullySubscribedRejected() {
	id := s.createCampaign(1)
	_, err := s.services.Pledge.Pledge(s.ctx, backerAddr, id, decimal.NewFromInt(100))
	s.Require().NoError(err)

	_, err = s.services.Pledge.Pledge(s.ctx, strangerAddr, id, decimal.NewFromInt(100))
	s.Require().ErrorIs(err, apperrors.ErrOverfunded)
}

func (s *PledgeServiceTestSuite) TestSharesPerBacker_ZeroForUnknownBacker() {
	id := s.createCampaign(2)

	shares, err := s.services.Pledge.SharesPerBacker(s.ctx, id, strangerAddr)
	s.Require().NoError(err)
	s.Equal(int64(0), shares)
}

func TestPledgeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PledgeServiceTestSuite))
}
