package services

import "context"

// RegistrySvcFacade exposes the account registry: admin roles, ban list and
// the contract activation flag.
type RegistrySvcFacade interface {
	// Owner returns the current primary admin address.
	Owner(ctx context.Context) (string, error)

	// SecondaryAdmin returns the fixed trust-anchor admin address.
	SecondaryAdmin(ctx context.Context) (string, error)

	// IsOwner reports whether addr is the current primary admin.
	IsOwner(ctx context.Context, addr string) (bool, error)

	// IsAdmin reports whether addr holds an admin role (owner or secondary).
	IsAdmin(ctx context.Context, addr string) (bool, error)

	// IsContractActive reports whether mutating operations are still accepted.
	IsContractActive(ctx context.Context) (bool, error)

	// ChangeOwner replaces the primary admin. Admin-only; the new owner must
	// be a well-formed, non-zero address.
	ChangeOwner(ctx context.Context, caller string, newOwner string) error

	// BanEntrepreneur bars target from creating campaigns. Admin-only and
	// idempotent.
	BanEntrepreneur(ctx context.Context, caller string, target string) error
}
