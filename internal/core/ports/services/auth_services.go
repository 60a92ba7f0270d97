package services

import (
	"context"
	"time"
)

// TokenSvcFacade issues session tokens binding a caller to a ledger address.
// Wallet signature verification is the session layer's concern and lives
// outside this service.
type TokenSvcFacade interface {
	// IssueSessionToken signs a bearer token whose subject is addr.
	IssueSessionToken(ctx context.Context, addr string) (token string, expiresAt time.Time, err error)
}
