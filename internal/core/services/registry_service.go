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
	"github.com/OpenPledge/crowdfund_ledger/internal/utils"
)

// registryService enforces the admin role model over the registry store.
type registryService struct {
	registryRepo portsrepo.RegistryRepositoryFacade
}

// NewRegistryService creates a new registry service.
func NewRegistryService(registryRepo portsrepo.RegistryRepositoryFacade) portssvc.RegistrySvcFacade {
	return &registryService{registryRepo: registryRepo}
}

var _ portssvc.RegistrySvcFacade = (*registryService)(nil)

func (s *registryService) Owner(ctx context.Context) (string, error) {
	return s.registryRepo.Owner(ctx)
}

func (s *registryService) SecondaryAdmin(ctx context.Context) (string, error) {
	return s.registryRepo.SecondaryAdmin(ctx)
}

func (s *registryService) IsOwner(ctx context.Context, addr string) (bool, error) {
	return s.registryRepo.IsOwner(ctx, addr)
}

func (s *registryService) IsAdmin(ctx context.Context, addr string) (bool, error) {
	return s.registryRepo.IsAdmin(ctx, addr)
}

func (s *registryService) IsContractActive(ctx context.Context) (bool, error) {
	return s.registryRepo.IsContractActive(ctx)
}

func (s *registryService) ChangeOwner(ctx context.Context, caller string, newOwner string) (err error) {
	defer func() { metrics.ObserveCommand("change_owner", err) }()
	logger := middleware.GetLoggerFromCtx(ctx)

	isAdmin, err := s.registryRepo.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !isAdmin {
		return fmt.Errorf("%w: %s is not an admin", apperrors.ErrUnauthorized, caller)
	}
	if !utils.IsValidAddress(newOwner) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidAddress, newOwner)
	}

	if err = s.registryRepo.SetOwner(ctx, newOwner); err != nil {
		return err
	}

	logger.Info("Owner changed", slog.String("new_owner", utils.NormalizeAddress(newOwner)))
	return nil
}

func (s *registryService) BanEntrepreneur(ctx context.Context, caller string, target string) (err error) {
	defer func() { metrics.ObserveCommand("ban_entrepreneur", err) }()
	logger := middleware.GetLoggerFromCtx(ctx)

	isAdmin, err := s.registryRepo.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !isAdmin {
		return fmt.Errorf("%w: %s is not an admin", apperrors.ErrUnauthorized, caller)
	}
	if !utils.IsValidAddress(target) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidAddress, target)
	}

	alreadyBanned, err := s.registryRepo.AddBan(ctx, target)
	if err != nil {
		return err
	}
	if alreadyBanned {
		logger.Info("Entrepreneur already banned", slog.String("target", utils.NormalizeAddress(target)))
		return nil
	}

	logger.Info("Entrepreneur banned", slog.String("target", utils.NormalizeAddress(target)))
	return nil
}
