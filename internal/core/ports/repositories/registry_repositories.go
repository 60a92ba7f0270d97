package repositories

import "context"

// RegistryReader defines read operations for the account registry.
type RegistryReader interface {
	// Owner returns the current primary admin address.
	Owner(ctx context.Context) (string, error)

	// SecondaryAdmin returns the fixed trust-anchor admin address.
	SecondaryAdmin(ctx context.Context) (string, error)

	// IsOwner reports whether addr is the current primary admin.
	IsOwner(ctx context.Context, addr string) (bool, error)

	// IsAdmin reports whether addr is the owner or the secondary admin.
	IsAdmin(ctx context.Context, addr string) (bool, error)

	// IsBanned reports whether addr is barred from creating campaigns.
	IsBanned(ctx context.Context, addr string) (bool, error)

	// IsContractActive reports whether the ledger still accepts mutating
	// operations. False only after irreversible shutdown.
	IsContractActive(ctx context.Context) (bool, error)
}

// RegistryWriter defines the atomic registry transitions.
type RegistryWriter interface {
	// SetOwner replaces the primary admin and appends OwnerChanged.
	SetOwner(ctx context.Context, newOwner string) error

	// AddBan adds target to the ban set and appends EntrepreneurBanned.
	// Idempotent: re-banning reports alreadyBanned without a second event.
	AddBan(ctx context.Context, target string) (alreadyBanned bool, err error)

	// DeactivateContract irreversibly flips the ledger inactive and appends
	// ContractDestroyed. Refund claims and fee withdrawal stay permitted.
	DeactivateContract(ctx context.Context) error
}

// RegistryRepositoryFacade combines all registry-related repository interfaces.
type RegistryRepositoryFacade interface {
	RegistryReader
	RegistryWriter
}
