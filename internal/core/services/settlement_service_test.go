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

type SettlementServiceTestSuite struct {
	suite.Suite
	store    *memory.LedgerStore
	services *portssvc.ServiceContainer
	ctx      context.Context
}

func (s *SettlementServiceTestSuite) SetupTest() {
	s.store = memory.NewLedgerStore(ownerAddr, secondaryAddr)
	s.services = services.NewServiceContainer(testConfig(), s.store.Provider())
	s.ctx = context.Background()
}

// fundRefund runs a pledge-then-cancel cycle so backerAddr holds a claimable
// refund balance of 100.
func (s *SettlementServiceTestSuite) fundRefund() {
	campaign, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, dto.CreateCampaignRequest{
		Title:         "Refund Source",
		SharePrice:    decimal.NewFromInt(100),
		TotalShares:   5,
		AttachedValue: decimal.NewFromInt(50),
	})
	s.Require().NoError(err)
	_, err = s.services.Pledge.Pledge(s.ctx, backerAddr, campaign.ID, decimal.NewFromInt(100))
	s.Require().NoError(err)
	_, err = s.services.Campaign.CancelCampaign(s.ctx, entrepreneurAddr, campaign.ID)
	s.Require().NoError(err)
}

func (s *SettlementServiceTestSuite) TestRefundInvestor_PaysOutFullBalance() {
	s.fundRefund()

	amount, err := s.services.Settlement.RefundInvestor(s.ctx, backerAddr)
	s.Require().NoError(err)
	s.True(amount.Equal(decimal.NewFromInt(100)))

	balance, err := s.services.Settlement.RefundBalance(s.ctx, backerAddr)
	s.Require().NoError(err)
	s.True(balance.IsZero())
}

func (s *SettlementServiceTestSuite) TestRefundInvestor_SecondClaimRejected() {
	s.fundRefund()

	_, err := s.services.Settlement.RefundInvestor(s.ctx, backerAddr)
	s.Require().NoError(err)

	_, err = s.services.Settlement.RefundInvestor(s.ctx, backerAddr)
	s.Require().ErrorIs(err, apperrors.ErrNothingToRefund)
}

func (s *SettlementServiceTestSuite) TestRefundInvestor_NothingToClaim() {
	_, err := s.services.Settlement.RefundInvestor(s.ctx, strangerAddr)
	s.Require().ErrorIs(err, apperrors.ErrNothingToRefund)
}

func (s *SettlementServiceTestSuite) TestWithdrawFees_AdminOnly() {
	s.fundRefund() // listing fee of 50 is in the fee ledger

	_, err := s.services.Settlement.WithdrawFees(s.ctx, strangerAddr)
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)

	amount, err := s.services.Settlement.WithdrawFees(s.ctx, ownerAddr)
	s.Require().NoError(err)
	s.True(amount.Equal(decimal.NewFromInt(50)))

	_, err = s.services.Settlement.WithdrawFees(s.ctx, secondaryAddr)
	s.Require().ErrorIs(err, apperrors.ErrNothingToWithdraw)
}

func (s *SettlementServiceTestSuite) TestDestroyContract_AdminOnly() {
	err := s.services.Settlement.DestroyContract(s.ctx, strangerAddr)
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)

	err = s.services.Settlement.DestroyContract(s.ctx, ownerAddr)
	s.Require().NoError(err)

	active, err := s.services.Registry.IsContractActive(s.ctx)
	s.Require().NoError(err)
	s.False(active)
}

func (s *SettlementServiceTestSuite) TestDestroyContract_SettlementStillAvailable() {
	s.fundRefund()
	s.Require().NoError(s.services.Settlement.DestroyContract(s.ctx, ownerAddr))

	// The ledger rejects new campaigns but still drains balances.
	_, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, dto.CreateCampaignRequest{
		Title:         "After shutdown",
		SharePrice:    decimal.NewFromInt(100),
		TotalShares:   1,
		AttachedValue: decimal.NewFromInt(50),
	})
	s.Require().ErrorIs(err, apperrors.ErrContractInactive)

	amount, err := s.services.Settlement.RefundInvestor(s.ctx, backerAddr)
	s.Require().NoError(err)
	s.True(amount.Equal(decimal.NewFromInt(100)))

	fees, err := s.services.Settlement.WithdrawFees(s.ctx, ownerAddr)
	s.Require().NoError(err)
	s.True(fees.Equal(decimal.NewFromInt(50)))
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
