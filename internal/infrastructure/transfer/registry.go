// Package transfer implements the per-asset-kind custody movements over an
// external asset ledger. A single registry keyed by kind resolves the
// adapter; the set of kinds is closed.
package transfer

import (
	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

type registry struct {
	adapters map[domain.AssetKind]ports.TransferAdapter
}

// NewAdapterRegistry returns the registry of the four supported transfer
// adapters, all moving custody to and from the given custodian account.
func NewAdapterRegistry(
	ledger ports.AssetLedger, custodian string,
) ports.AdapterRegistry {
	return &registry{
		adapters: map[domain.AssetKind]ports.TransferAdapter{
			domain.AssetKindFungible:     &fungibleAdapter{ledger, custodian},
			domain.AssetKindUnique:       &uniqueAdapter{ledger, custodian},
			domain.AssetKindSemiFungible: &semiFungibleAdapter{ledger, custodian},
			domain.AssetKindLegacy:       &legacyAdapter{ledger, custodian},
		},
	}
}

func (r *registry) Adapter(kind domain.AssetKind) (ports.TransferAdapter, error) {
	adapter, ok := r.adapters[kind]
	if !ok {
		return nil, ports.ErrUnknownAssetKind
	}
	return adapter, nil
}
