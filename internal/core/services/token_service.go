package services

import (
	"context"
	"fmt"
	"time"

	"github.com/OpenPledge/crowdfund_ledger/internal/apperrors"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/platform/config"
	"github.com/OpenPledge/crowdfund_ledger/internal/utils"
)

// tokenService signs session tokens binding a bearer to a ledger address.
type tokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

// NewTokenService creates a new token service from configuration.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{
		secret: cfg.JWTSecret,
		expiry: cfg.JWTExpiryDuration,
		issuer: cfg.JWTIssuer,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) IssueSessionToken(ctx context.Context, addr string) (string, time.Time, error) {
	if !utils.IsValidAddress(addr) {
		return "", time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidAddress, addr)
	}

	expiresAt := time.Now().Add(s.expiry)
	token, err := utils.GenerateJWT(utils.NormalizeAddress(addr), s.secret, s.expiry, s.issuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}
