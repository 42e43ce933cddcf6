package transfer

import (
	"context"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

// uniqueAdapter moves exactly one indivisible unit per transfer. The
// custodian account is registered with a receive capability for these at
// deployment time.
type uniqueAdapter struct {
	ledger    ports.AssetLedger
	custodian string
}

func (a *uniqueAdapter) Deposit(
	ctx context.Context, from string, asset domain.Asset,
) error {
	return a.ledger.TransferUnit(
		ctx, asset.Reference, from, a.custodian, asset.UnitId,
	)
}

func (a *uniqueAdapter) Payout(
	ctx context.Context, to string, asset domain.Asset,
) error {
	return a.ledger.TransferUnit(
		ctx, asset.Reference, a.custodian, to, asset.UnitId,
	)
}

func (a *uniqueAdapter) Recall(
	ctx context.Context, holder string, asset domain.Asset,
) error {
	return a.ledger.TransferUnit(
		ctx, asset.Reference, holder, a.custodian, asset.UnitId,
	)
}
