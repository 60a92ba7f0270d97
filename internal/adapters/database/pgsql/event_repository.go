package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	portsrepo "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxEventRepository archives committed ledger events to PostgreSQL. It is a
// write-behind copy of the in-process log used for audit queries and
// restarts of downstream consumers; the in-process log stays authoritative.
type PgxEventRepository struct {
	pool *pgxpool.Pool
}

// NewPgxEventRepository creates a new repository for the event archive.
func NewPgxEventRepository(pool *pgxpool.Pool) portsrepo.EventArchiver {
	return &PgxEventRepository{pool: pool}
}

var _ portsrepo.EventArchiver = (*PgxEventRepository)(nil)

// ArchiveEvent inserts one event. Replayed sequences are ignored so
// at-least-once delivery from the archive workers stays safe.
func (r *PgxEventRepository) ArchiveEvent(ctx context.Context, event domain.Event) error {
	query := `
		INSERT INTO ledger_events (sequence, event_id, kind, campaign_id, address, amount, occurred_at, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (sequence) DO NOTHING;
	`

	_, err := r.pool.Exec(ctx, query,
		event.Sequence,
		event.EventID,
		string(event.Kind),
		event.CampaignID,
		event.Address,
		event.Amount,
		event.OccurredAt,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to archive event %d: %w", event.Sequence, err)
	}
	return nil
}
