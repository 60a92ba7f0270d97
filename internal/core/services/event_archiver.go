package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	portsrepo "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/repositories"
	"github.com/panjf2000/ants/v2"
)

const archiveTimeout = 5 * time.Second

// EventArchiver drains committed events into durable storage on a worker
// pool, keeping archive latency out of the command path. Delivery is
// at-least-once: a failed write is logged and the event stays available on
// the polling surface for re-derivation.
type EventArchiver struct {
	pool    *ants.Pool
	archive portsrepo.EventArchiver
	logger  *slog.Logger
}

// NewEventArchiver creates an archiver with the given pool size.
func NewEventArchiver(workers int, archive portsrepo.EventArchiver, logger *slog.Logger) (*EventArchiver, error) {
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &EventArchiver{pool: pool, archive: archive, logger: logger}, nil
}

// Hook returns the append hook to register with the ledger store. It must
// not block: when the pool is saturated the event is dropped from the
// archive (never from the authoritative log) and the gap is logged.
func (a *EventArchiver) Hook() func(domain.Event) {
	return func(ev domain.Event) {
		err := a.pool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
			defer cancel()

			if err := a.archive.ArchiveEvent(ctx, ev); err != nil {
				a.logger.Error("Failed to archive event",
					slog.Uint64("sequence", ev.Sequence),
					slog.String("kind", string(ev.Kind)),
					slog.String("error", err.Error()))
			}
		})
		if err != nil {
			a.logger.Warn("Archive pool saturated, event not archived",
				slog.Uint64("sequence", ev.Sequence),
				slog.String("error", err.Error()))
		}
	}
}

// Close releases the worker pool. Pending tasks are abandoned; the polling
// surface still serves every committed event.
func (a *EventArchiver) Close() {
	a.pool.Release()
}
