package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventKind discriminates entries in the append-only ledger event log.
type EventKind string

const (
	EventCampaignCreated    EventKind = "CampaignCreated"
	EventSharesPurchased    EventKind = "SharesPurchased"
	EventCampaignCancelled  EventKind = "CampaignCancelled"
	EventCampaignCompleted  EventKind = "CampaignCompleted"
	EventInvestorRefunded   EventKind = "InvestorRefunded"
	EventFeesWithdrawn      EventKind = "FeesWithdrawn"
	EventOwnerChanged       EventKind = "OwnerChanged"
	EventEntrepreneurBanned EventKind = "EntrepreneurBanned"
	EventContractDestroyed  EventKind = "ContractDestroyed"
)

// Event is one committed state transition. Sequence is assigned inside the
// committing critical section, so for a given campaign the event order equals
// the commit order. Downstream delivery is at-least-once; consumers must
// tolerate duplicates and re-derive state by re-querying.
type Event struct {
	Sequence   uint64          `json:"sequence"`
	EventID    string          `json:"eventID"` // UUID, stable across redelivery
	Kind       EventKind       `json:"kind"`
	CampaignID uint64          `json:"campaignID,omitempty"` // Zero when no campaign is involved
	Address    string          `json:"address,omitempty"`    // Affected account, when any
	Amount     decimal.Decimal `json:"amount"`               // Funds moved, zero when none
	OccurredAt time.Time       `json:"occurredAt"`
}
