package services

import (
	"context"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
)

// EventSvcFacade exposes the append-only event log to external consumers
// (the UI, analytics), which poll it and re-derive state by re-querying.
type EventSvcFacade interface {
	// ListEvents returns up to limit events after the given sequence.
	ListEvents(ctx context.Context, afterSequence uint64, limit int) ([]domain.Event, error)

	// LatestSequence returns the newest committed sequence number.
	LatestSequence(ctx context.Context) (uint64, error)
}
