package dto

import "github.com/shopspring/decimal"

// ChangeOwnerRequest is the payload for replacing the primary admin.
type ChangeOwnerRequest struct {
	NewOwner string `json:"newOwner" binding:"required,ethaddr"`
}

// BanRequest is the payload for barring an entrepreneur from creating
// campaigns.
type BanRequest struct {
	Address string `json:"address" binding:"required,ethaddr"`
}

// LedgerStatusResponse is the aggregate read surface the presentation layer
// polls: ownership, activation, campaign counter and the fee balance.
type LedgerStatusResponse struct {
	Owner              string          `json:"owner"`
	SecondaryAdmin     string          `json:"secondaryAdmin"`
	ContractActive     bool            `json:"contractActive"`
	CampaignCount      uint64          `json:"campaignCount"`
	TotalFeesCollected decimal.Decimal `json:"totalFeesCollected"`
}
