package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/OpenPledge/crowdfund_ledger/internal/apperrors"
	"github.com/OpenPledge/crowdfund_ledger/internal/core/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *TokenServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *TokenServiceTestSuite) TestIssueSessionToken_SubjectIsNormalizedAddress() {
	cfg := testConfig()
	svc := services.NewTokenService(cfg)

	mixedCase := "0xAB5801a7D398351b8bE11C439e05C5B3259aeC9B"
	token, expiresAt, err := svc.IssueSessionToken(s.ctx, mixedCase)
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.WithinDuration(time.Now().Add(cfg.JWTExpiryDuration), expiresAt, 5*time.Second)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	s.Require().NoError(err)
	s.True(parsed.Valid)
	s.Equal(ownerAddr, claims.Subject)
	s.Equal(cfg.JWTIssuer, claims.Issuer)
}

func (s *TokenServiceTestSuite) TestIssueSessionToken_InvalidAddressRejected() {
	svc := services.NewTokenService(testConfig())

	_, _, err := svc.IssueSessionToken(s.ctx, "bogus")
	s.Require().ErrorIs(err, apperrors.ErrInvalidAddress)

	_, _, err = svc.IssueSessionToken(s.ctx, "0x0000000000000000000000000000000000000000")
	s.Require().ErrorIs(err, apperrors.ErrInvalidAddress)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
