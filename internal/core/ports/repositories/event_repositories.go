package repositories

import (
	"context"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
)

// EventReader defines the polling surface over the append-only event log.
type EventReader interface {
	// ListEvents returns up to limit events with sequence > afterSequence,
	// in sequence order.
	ListEvents(ctx context.Context, afterSequence uint64, limit int) ([]domain.Event, error)

	// LatestSequence returns the sequence of the newest event, zero when the
	// log is empty.
	LatestSequence(ctx context.Context) (uint64, error)
}

// EventArchiver persists committed events to durable storage. Archiving is
// asynchronous and at-least-once; the in-process log remains authoritative.
type EventArchiver interface {
	ArchiveEvent(ctx context.Context, event domain.Event) error
}
