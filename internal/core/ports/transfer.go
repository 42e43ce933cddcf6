package ports

import (
	"context"
	"errors"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

// ErrUnknownAssetKind is returned by an AdapterRegistry when no adapter is
// registered for the requested kind.
var ErrUnknownAssetKind = errors.New("no transfer adapter for asset kind")

// TransferAdapter performs the actual custody movement for one asset kind.
// Deposit moves an asset from a depositor into custody, Payout releases it
// from custody to its final holder, Recall is the compensating inverse of a
// Payout used to roll back a partially performed distribution within the
// same mutating call.
type TransferAdapter interface {
	Deposit(ctx context.Context, from string, asset domain.Asset) error
	Payout(ctx context.Context, to string, asset domain.Asset) error
	Recall(ctx context.Context, holder string, asset domain.Asset) error
}

// AdapterRegistry resolves the transfer adapter for an asset kind. The set
// of kinds is closed.
type AdapterRegistry interface {
	Adapter(kind domain.AssetKind) (TransferAdapter, error)
}

// Offer is a pre-registered sale offer on a legacy asset's own ledger.
type Offer struct {
	Seller string
	Buyer  string
	Price  uint64
	Active bool
}

// AssetLedger is the client of the external ledger that records asset
// ownership. Transfers succeed only if the moving party still holds
// transferable authority over the asset at call time.
type AssetLedger interface {
	// TransferFunds moves a fungible amount between two accounts. Some
	// ledgers signal failure with a false return instead of an error;
	// callers must check both.
	TransferFunds(
		ctx context.Context, reference, from, to string, amount uint64,
	) (bool, error)
	// TransferUnit moves exactly one indivisible unit.
	TransferUnit(
		ctx context.Context, reference, from, to string, unitId uint64,
	) error
	// TransferUnitAmount moves an amount of a semi-fungible unit.
	TransferUnitAmount(
		ctx context.Context, reference, from, to string, unitId, amount uint64,
	) error
	// GetOffer returns the sale offer registered for the given unit, or nil
	// if none exists.
	GetOffer(
		ctx context.Context, reference string, unitId uint64,
	) (*Offer, error)
	// ClaimOffer executes the claim of a pre-registered sale offer as a
	// single call on behalf of the buyer.
	ClaimOffer(
		ctx context.Context, reference string, unitId uint64, buyer string,
	) error
}
