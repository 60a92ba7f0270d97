package services

import (
	"context"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	portsrepo "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/repositories"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
)

// eventService exposes the append-only event log for polling consumers.
type eventService struct {
	eventRepo portsrepo.EventReader
}

// NewEventService creates a new event service.
func NewEventService(eventRepo portsrepo.EventReader) portssvc.EventSvcFacade {
	return &eventService{eventRepo: eventRepo}
}

var _ portssvc.EventSvcFacade = (*eventService)(nil)

func (s *eventService) ListEvents(ctx context.Context, afterSequence uint64, limit int) ([]domain.Event, error) {
	return s.eventRepo.ListEvents(ctx, afterSequence, limit)
}

func (s *eventService) LatestSequence(ctx context.Context) (uint64, error) {
	return s.eventRepo.LatestSequence(ctx)
}
