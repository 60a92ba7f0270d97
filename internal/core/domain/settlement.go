package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement records the fund movement of a campaign completion: the gross
// escrow, the protocol fee retained, and the net payout owed to the
// entrepreneur. The external payment rail executes the actual transfer; the
// ledger's record is authoritative for the amounts.
type Settlement struct {
	CampaignID uint64          `json:"campaignID"`
	Recipient  string          `json:"recipient"` // Entrepreneur's address
	Gross      decimal.Decimal `json:"gross"`
	Fee        decimal.Decimal `json:"fee"`
	NetPayout  decimal.Decimal `json:"netPayout"`
	SettledAt  time.Time       `json:"settledAt"`
}
