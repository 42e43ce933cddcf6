package transfer

import (
	"context"
	"fmt"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

// fungibleAdapter moves fungible amounts between two accounts. Some ledgers
// signal failure with a boolean return instead of an error, so both must be
// checked explicitly.
type fungibleAdapter struct {
	ledger    ports.AssetLedger
	custodian string
}

func (a *fungibleAdapter) Deposit(
	ctx context.Context, from string, asset domain.Asset,
) error {
	return a.transfer(ctx, asset.Reference, from, a.custodian, asset.Quantity)
}

func (a *fungibleAdapter) Payout(
	ctx context.Context, to string, asset domain.Asset,
) error {
	return a.transfer(ctx, asset.Reference, a.custodian, to, asset.Quantity)
}

func (a *fungibleAdapter) Recall(
	ctx context.Context, holder string, asset domain.Asset,
) error {
	return a.transfer(ctx, asset.Reference, holder, a.custodian, asset.Quantity)
}

func (a *fungibleAdapter) transfer(
	ctx context.Context, reference, from, to string, amount uint64,
) error {
	ok, err := a.ledger.TransferFunds(ctx, reference, from, to, amount)
	if err != nil {
		return fmt.Errorf("fungible transfer: %w", err)
	}
	if !ok {
		return ErrTransferRejected
	}
	return nil
}
