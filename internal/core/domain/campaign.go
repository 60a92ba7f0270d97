package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignStatus indicates the lifecycle state of a campaign.
// Completed and Cancelled are terminal; no transition leaves them.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "ACTIVE"
	CampaignCompleted CampaignStatus = "COMPLETED"
	CampaignCancelled CampaignStatus = "CANCELLED"
)

// Campaign represents a crowdfunding campaign selling fixed-price shares.
// ID, Entrepreneur, SharePrice and TotalShares are immutable after creation.
// While ACTIVE, CollectedFunds always equals CurrentShares * SharePrice; on a
// terminal transition the escrow is disbursed and CollectedFunds settles to
// zero.
type Campaign struct {
	ID             uint64          `json:"id"`           // Sequential, assigned at creation, never reused
	Entrepreneur   string          `json:"entrepreneur"` // Creator's ledger address
	Title          string          `json:"title"`
	SharePrice     decimal.Decimal `json:"sharePrice"`  // Smallest currency unit per share
	TotalShares    int64           `json:"totalShares"` // Subscription target
	CurrentShares  int64           `json:"currentShares"`
	Status         CampaignStatus  `json:"status"`
	CollectedFunds decimal.Decimal `json:"collectedFunds"` // Escrow held for this campaign, gross of fee
	CreatedAt      time.Time       `json:"createdAt"`
	SettledAt      *time.Time      `json:"settledAt,omitempty"` // Set on the terminal transition
}

// IsTerminal reports whether the campaign has reached a final state.
func (c Campaign) IsTerminal() bool {
	return c.Status == CampaignCompleted || c.Status == CampaignCancelled
}

// FullySubscribed reports whether the share target has been reached.
func (c Campaign) FullySubscribed() bool {
	return c.CurrentShares >= c.TotalShares
}
