package dto

import "github.com/shopspring/decimal"

// PledgeRequest is the payload for buying one share. Payment is denominated
// in the smallest currency unit and must satisfy the configured payment
// policy against the campaign's share price.
type PledgeRequest struct {
	Payment decimal.Decimal `json:"payment" binding:"required"`
}

// SharesResponse reports a backer's holding on one campaign.
type SharesResponse struct {
	CampaignID uint64 `json:"campaignID"`
	Address    string `json:"address"`
	Shares     int64  `json:"shares"`
}
