package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/OpenPledge/crowdfund_ledger/internal/core/domain"
	"github.com/OpenPledge/crowdfund_ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EventArchiver repository ---
type MockEventArchive struct {
	mock.Mock
	done chan struct{}
}

func (m *MockEventArchive) ArchiveEvent(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	m.done <- struct{}{}
	return args.Error(0)
}

type EventArchiverTestSuite struct {
	suite.Suite
	archive *MockEventArchive
}

func (s *EventArchiverTestSuite) SetupTest() {
	s.archive = &MockEventArchive{done: make(chan struct{}, 16)}
}

func (s *EventArchiverTestSuite) waitForArchive() {
	select {
	case <-s.archive.done:
	case <-time.After(2 * time.Second):
		s.FailNow("archive worker did not run")
	}
}

func (s *EventArchiverTestSuite) TestHook_SubmitsEventToArchive() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	archiver, err := services.NewEventArchiver(2, s.archive, logger)
	s.Require().NoError(err)
	defer archiver.Close()

	ev := domain.Event{
		Sequence: 1,
		EventID:  "11111111-1111-1111-1111-111111111111",
		Kind:     domain.EventCampaignCreated,
		Amount:   decimal.NewFromInt(50),
	}
	s.archive.On("ArchiveEvent", mock.Anything, ev).Return(nil).Once()

	archiver.Hook()(ev)
	s.waitForArchive()

	s.archive.AssertExpectations(s.T())
}

func (s *EventArchiverTestSuite) TestHook_ArchiveFailureDoesNotPanic() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	archiver, err := services.NewEventArchiver(2, s.archive, logger)
	s.Require().NoError(err)
	defer archiver.Close()

	ev := domain.Event{Sequence: 2, Kind: domain.EventSharesPurchased, Amount: decimal.NewFromInt(100)}
	s.archive.On("ArchiveEvent", mock.Anything, ev).Return(context.DeadlineExceeded).Once()

	archiver.Hook()(ev)
	s.waitForArchive()

	s.archive.AssertExpectations(s.T())
}

func TestEventArchiverTestSuite(t *testing.T) {
	suite.Run(t, new(EventArchiverTestSuite))
}
