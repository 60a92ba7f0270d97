package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OpenPledge/crowdfund_ledger/internal/apperrors"
	portsrepo "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/repositories"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/middleware"
	"github.com/OpenPledge/crowdfund_ledger/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// settlementService resolves outstanding balances. Refund claims and fee
// withdrawal stay available after shutdown so the ledger can always be
// drained.
type settlementService struct {
	settlementRepo portsrepo.SettlementRepositoryFacade
	registryRepo   portsrepo.RegistryRepositoryFacade
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(settlementRepo portsrepo.SettlementRepositoryFacade, registryRepo portsrepo.RegistryRepositoryFacade) portssvc.SettlementSvcFacade {
	return &settlementService{
		settlementRepo: settlementRepo,
		registryRepo:   registryRepo,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

func (s *settlementService) RefundInvestor(ctx context.Context, caller string) (amount decimal.Decimal, err error) {
	defer func() { metrics.ObserveCommand("refund_investor", err) }()
	logger := middleware.GetLoggerFromCtx(ctx)

	amount, err = s.settlementRepo.ClaimRefund(ctx, caller)
	if err != nil {
		return decimal.Zero, err
	}

	logger.Info("Investor refunded", slog.String("amount", amount.String()))
	return amount, nil
}

func (s *settlementService) WithdrawFees(ctx context.Context, caller string) (amount decimal.Decimal, err error) {
	defer func() { metrics.ObserveCommand("withdraw_fees", err) }()
	logger := middleware.GetLoggerFromCtx(ctx)

	isAdmin, err := s.registryRepo.IsAdmin(ctx, caller)
	if err != nil {
		return decimal.Zero, err
	}
	if !isAdmin {
		return decimal.Zero, fmt.Errorf("%w: %s is not an admin", apperrors.ErrUnauthorized, caller)
	}

	amount, err = s.settlementRepo.WithdrawFees(ctx, caller)
	if err != nil {
		return decimal.Zero, err
	}

	logger.Info("Fees withdrawn", slog.String("amount", amount.String()))
	return amount, nil
}

func (s *settlementService) DestroyContract(ctx context.Context, caller string) (err error) {
	defer func() { metrics.ObserveCommand("destroy_contract", err) }()
	logger := middleware.GetLoggerFromCtx(ctx)

	isAdmin, err := s.registryRepo.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !isAdmin {
		return fmt.Errorf("%w: %s is not an admin", apperrors.ErrUnauthorized, caller)
	}

	if err = s.registryRepo.DeactivateContract(ctx); err != nil {
		return err
	}

	logger.Warn("Contract destroyed; only refund claims and fee withdrawal remain permitted")
	return nil
}

func (s *settlementService) RefundBalance(ctx context.Context, addr string) (decimal.Decimal, error) {
	return s.settlementRepo.RefundBalance(ctx, addr)
}

func (s *settlementService) TotalFeesCollected(ctx context.Context) (decimal.Decimal, error) {
	return s.settlementRepo.TotalFeesCollected(ctx)
}
