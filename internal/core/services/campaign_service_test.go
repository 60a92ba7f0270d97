package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/OpenPledge/crowdfund_ledger/internal/adapters/memory"
	"github.com/OpenPledge/crowdfund_ledger/internal/apperrors"
	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/core/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/dto"
	"github.com/OpenPledge/crowdfund_ledger/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	ownerAddr        = "0xab5801a7d398351b8be11c439e05c5b3259aec9b"
	secondaryAddr    = "0x153dfef4355e823dcb0f48f9a81fd255dc2fe375"
	entrepreneurAddr = "0x1111111111111111111111111111111111111111"
	backerAddr       = "0x2222222222222222222222222222222222222222"
	strangerAddr     = "0x9999999999999999999999999999999999999999"
)

// testConfig returns a small-denomination policy so test amounts stay legible.
func testConfig() *config.Config {
	return &config.Config{
		ListingFee:          decimal.NewFromInt(50),
		FeeRateBasisPoints:  200,
		StrictPledgePayment: true,
		JWTSecret:           "test-secret",
		JWTExpiryDuration:   time.Hour,
		JWTIssuer:           "test",
	}
}

type CampaignServiceTestSuite struct {
	suite.Suite
	store    *memory.LedgerStore
	services *portssvc.ServiceContainer
	ctx      context.Context
}

func (s *CampaignServiceTestSuite) SetupTest() {
	s.store = memory.NewLedgerStore(ownerAddr, secondaryAddr)
	s.services = services.NewServiceContainer(testConfig(), s.store.Provider())
	s.ctx = context.Background()
}

func (s *CampaignServiceTestSuite) validRequest() dto.CreateCampaignRequest {
	return dto.CreateCampaignRequest{
		Title:         "Solar Kiosk",
		SharePrice:    decimal.NewFromInt(100),
		TotalShares:   4,
		AttachedValue: decimal.NewFromInt(50),
	}
}

func (s *CampaignServiceTestSuite) TestCreateCampaign_Success() {
	campaign, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, s.validRequest())
	s.Require().NoError(err)
	s.Equal(uint64(1), campaign.ID)
	s.Equal(entrepreneurAddr, campaign.Entrepreneur)
	s.Equal(domain.CampaignActive, campaign.Status)

	fees, err := s.services.Settlement.TotalFeesCollected(s.ctx)
	s.Require().NoError(err)
	s.True(fees.Equal(decimal.NewFromInt(50)), "fees = %s", fees)
}

func (s *CampaignServiceTestSuite) TestCreateCampaign_EmptyTitle() {
	req := s.validRequest()
	req.Title = "   "
	_, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, req)
	s.Require().ErrorIs(err, apperrors.ErrInvalidParameters)
}

func (s *CampaignServiceTestSuite) TestCreateCampaign_FractionalSharePrice() {
	req := s.validRequest()
	req.SharePrice = decimal.RequireFromString("100.5")
	_, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, req)
	s.Require().ErrorIs(err, apperrors.ErrInvalidParameters)
}

func (s *CampaignServiceTestSuite) TestCreateCampaign_NonPositiveShares() {
	req := s.validRequest()
	req.TotalShares = 0
	_, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, req)
	s.Require().ErrorIs(err, apperrors.ErrInvalidParameters)
}

func (s *CampaignServiceTestSuite) TestCreateCampaign_AttachedValueBelowListingFee() {
	req := s.validRequest()
	req.AttachedValue = decimal.NewFromInt(49)
	_, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, req)
	s.Require().ErrorIs(err, apperrors.ErrInvalidPayment)

	// Nothing was created or credited.
	_, total, err := s.services.Campaign.ListCampaigns(s.ctx, 10, 0)
	s.Require().NoError(err)
	s.Equal(uint64(0), total)
	fees, err := s.services.Settlement.TotalFeesCollected(s.ctx)
	s.Require().NoError(err)
	s.True(fees.IsZero())
}

func (s *CampaignServiceTestSuite) TestCreateCampaign_SurplusAboveListingFeeKeptAsFees() {
	req := s.validRequest()
	req.AttachedValue = decimal.NewFromInt(75)
	_, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, req)
	s.Require().NoError(err)

	fees, err := s.services.Settlement.TotalFeesCollected(s.ctx)
	s.Require().NoError(err)
	s.True(fees.Equal(decimal.NewFromInt(75)), "fees = %s", fees)
}

func (s *CampaignServiceTestSuite) TestListCampaigns_Pagination() {
	for i := 0; i < 3; i++ {
		_, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, s.validRequest())
		s.Require().NoError(err)
	}

	page, total, err := s.services.Campaign.ListCampaigns(s.ctx, 2, 1)
	s.Require().NoError(err)
	s.Equal(uint64(3), total)
	s.Require().Len(page, 2)
	s.Equal(uint64(2), page[0].ID)
	s.Equal(uint64(3), page[1].ID)
}

func (s *CampaignServiceTestSuite) TestCancelCampaign_ByEntrepreneur() {
	campaign, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, s.validRequest())
	s.Require().NoError(err)

	cancelled, err := s.services.Campaign.CancelCampaign(s.ctx, entrepreneurAddr, campaign.ID)
	s.Require().NoError(err)
	s.Equal(domain.CampaignCancelled, cancelled.Status)
}

func (s *CampaignServiceTestSuite) TestCancelCampaign_ByAdmin() {
	campaign, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, s.validRequest())
	s.Require().NoError(err)

	cancelled, err := s.services.Campaign.CancelCampaign(s.ctx, secondaryAddr, campaign.ID)
	s.Require().NoError(err)
	s.Equal(domain.CampaignCancelled, cancelled.Status)
}

func (s *CampaignServiceTestSuite) TestCancelCampaign_StrangerRejected() {
	campaign, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, s.validRequest())
	s.Require().NoError(err)

	_, err = s.services.Campaign.CancelCampaign(s.ctx, strangerAddr, campaign.ID)
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *CampaignServiceTestSuite) TestCancelCampaign_TerminalStateWinsOverAuthorization() {
	campaign, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, s.validRequest())
	s.Require().NoError(err)
	_, err = s.services.Campaign.CancelCampaign(s.ctx, entrepreneurAddr, campaign.ID)
	s.Require().NoError(err)

	// A terminal campaign reports its state even to an unauthorized caller.
	_, err = s.services.Campaign.CancelCampaign(s.ctx, strangerAddr, campaign.ID)
	s.Require().ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *CampaignServiceTestSuite) TestCompleteCampaign_NotFullySubscribed() {
	campaign, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, s.validRequest())
	s.Require().NoError(err)

	_, _, err = s.services.Campaign.CompleteCampaign(s.ctx, entrepreneurAddr, campaign.ID)
	s.Require().ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *CampaignServiceTestSuite) TestCompleteCampaign_Success() {
	campaign, err := s.services.Campaign.CreateCampaign(s.ctx, entrepreneurAddr, s.validRequest())
	s.Require().NoError(err)
	for i := 0; i < 4; i++ {
		_, err = s.services.Pledge.Pledge(s.ctx, backerAddr, campaign.ID, decimal.NewFromInt(100))
		s.Require().NoError(err)
	}

	completed, settlement, err := s.services.Campaign.CompleteCampaign(s.ctx, entrepreneurAddr, campaign.ID)
	s.Require().NoError(err)
	s.Equal(domain.CampaignCompleted, completed.Status)
	// gross 400, 2% fee = 8
	s.True(settlement.Gross.Equal(decimal.NewFromInt(400)))
	s.True(settlement.Fee.Equal(decimal.NewFromInt(8)))
	s.True(settlement.NetPayout.Equal(decimal.NewFromInt(392)))
}

func (s *CampaignServiceTestSuite) TestGetCampaign_NotFound() {
	_, err := s.services.Campaign.GetCampaign(s.ctx, 42)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestCampaignServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CampaignServiceTestSuite))
}
