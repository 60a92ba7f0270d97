package dto

import (
	"time"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementResponse describes the fund movement of a completed campaign.
type SettlementResponse struct {
	CampaignID uint64          `json:"campaignID"`
	Recipient  string          `json:"recipient"`
	Gross      decimal.Decimal `json:"gross"`
	Fee        decimal.Decimal `json:"fee"`
	NetPayout  decimal.Decimal `json:"netPayout"`
	SettledAt  time.Time       `json:"settledAt"`
}

// CompleteCampaignResponse pairs the terminal campaign snapshot with its
// settlement record.
type CompleteCampaignResponse struct {
	Campaign   CampaignResponse   `json:"campaign"`
	Settlement SettlementResponse `json:"settlement"`
}

// PayoutResponse reports a refund claim or fee withdrawal payout.
type PayoutResponse struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

// RefundBalanceResponse reports an address' claimable refund balance.
type RefundBalanceResponse struct {
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

// ToSettlementResponse maps a domain settlement to its API representation.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		CampaignID: s.CampaignID,
		Recipient:  s.Recipient,
		Gross:      s.Gross,
		Fee:        s.Fee,
		NetPayout:  s.NetPayout,
		SettledAt:  s.SettledAt,
	}
}
