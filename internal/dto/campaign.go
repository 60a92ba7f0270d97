package dto

import (
	"time"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCampaignRequest is the payload for listing a new campaign. The
// attached value is the listing payment in the smallest currency unit; the
// wallet layer has already collected it by the time the command reaches us.
type CreateCampaignRequest struct {
	Title         string          `json:"title" binding:"required"`
	SharePrice    decimal.Decimal `json:"sharePrice" binding:"required"`
	TotalShares   int64           `json:"totalShares" binding:"required,gt=0"`
	AttachedValue decimal.Decimal `json:"attachedValue"`
}

// ListCampaignsParams holds pagination query parameters.
type ListCampaignsParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,gt=0,lte=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,gte=0"`
}

// CampaignResponse is the API representation of a campaign snapshot.
type CampaignResponse struct {
	ID             uint64          `json:"id"`
	Entrepreneur   string          `json:"entrepreneur"`
	Title          string          `json:"title"`
	SharePrice     decimal.Decimal `json:"sharePrice"`
	TotalShares    int64           `json:"totalShares"`
	CurrentShares  int64           `json:"currentShares"`
	Status         string          `json:"status"`
	CollectedFunds decimal.Decimal `json:"collectedFunds"`
	CreatedAt      time.Time       `json:"createdAt"`
	SettledAt      *time.Time      `json:"settledAt,omitempty"`
}

// ListCampaignsResponse wraps a page of campaigns with the total count.
type ListCampaignsResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
	Total     uint64             `json:"total"`
}

// ToCampaignResponse maps a domain campaign to its API representation.
func ToCampaignResponse(c *domain.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:             c.ID,
		Entrepreneur:   c.Entrepreneur,
		Title:          c.Title,
		SharePrice:     c.SharePrice,
		TotalShares:    c.TotalShares,
		CurrentShares:  c.CurrentShares,
		Status:         string(c.Status),
		CollectedFunds: c.CollectedFunds,
		CreatedAt:      c.CreatedAt,
		SettledAt:      c.SettledAt,
	}
}
