package dto

import (
	"time"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListEventsParams holds the event polling cursor. Consumers pass the last
// sequence they processed and tolerate duplicate delivery.
type ListEventsParams struct {
	After uint64 `form:"after,default=0"`
	Limit int    `form:"limit,default=100" binding:"omitempty,gt=0,lte=1000"`
}

// EventResponse is the API representation of one committed ledger event.
type EventResponse struct {
	Sequence   uint64          `json:"sequence"`
	EventID    string          `json:"eventID"`
	Kind       string          `json:"kind"`
	CampaignID uint64          `json:"campaignID,omitempty"`
	Address    string          `json:"address,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// ListEventsResponse wraps a page of events with the newest sequence so
// consumers can tell how far behind they are.
type ListEventsResponse struct {
	Events         []EventResponse `json:"events"`
	LatestSequence uint64          `json:"latestSequence"`
}

// ToEventResponse maps a domain event to its API representation.
func ToEventResponse(e domain.Event) EventResponse {
	return EventResponse{
		Sequence:   e.Sequence,
		EventID:    e.EventID,
		Kind:       string(e.Kind),
		CampaignID: e.CampaignID,
		Address:    e.Address,
		Amount:     e.Amount,
		OccurredAt: e.OccurredAt,
	}
}
