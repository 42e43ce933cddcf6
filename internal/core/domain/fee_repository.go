package domain

import "context"

// FeeRepository persists the global fee ledger.
type FeeRepository interface {
	// GetFeeLedger returns the current fee ledger, creating an empty one if
	// none exists yet.
	GetFeeLedger(ctx context.Context) (*FeeLedger, error)
	// UpdateFeeLedger commits changes to the fee ledger transactionally. If
	// updateFn returns an error no change is persisted.
	UpdateFeeLedger(
		ctx context.Context,
		updateFn func(l *FeeLedger) (*FeeLedger, error),
	) error
}
