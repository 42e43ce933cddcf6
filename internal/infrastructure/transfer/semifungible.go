package transfer

import (
	"context"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

// semiFungibleAdapter moves an amount of an id-scoped unit.
type semiFungibleAdapter struct {
	ledger    ports.AssetLedger
	custodian string
}

func (a *semiFungibleAdapter) Deposit(
	ctx context.Context, from string, asset domain.Asset,
) error {
	return a.ledger.TransferUnitAmount(
		ctx, asset.Reference, from, a.custodian, asset.UnitId, asset.Quantity,
	)
}

func (a *semiFungibleAdapter) Payout(
	ctx context.Context, to string, asset domain.Asset,
) error {
	return a.ledger.TransferUnitAmount(
		ctx, asset.Reference, a.custodian, to, asset.UnitId, asset.Quantity,
	)
}

func (a *semiFungibleAdapter) Recall(
	ctx context.Context, holder string, asset domain.Asset,
) error {
	return a.ledger.TransferUnitAmount(
		ctx, asset.Reference, holder, a.custodian, asset.UnitId, asset.Quantity,
	)
}
