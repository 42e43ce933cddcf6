package transfer

import (
	"context"
	"fmt"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

// legacyAdapter handles the two-phase offer/claim external asset type.
// Taking custody requires the depositor to have pre-registered, on the
// asset's own ledger, an irrevocable zero-price sale offer naming the
// custodian as sole eligible claimant; the offer is verified immediately
// before claiming. Paying out is a single unconditional transfer with no
// offer step, the two directions are asymmetric by construction.
type legacyAdapter struct {
	ledger    ports.AssetLedger
	custodian string
}

func (a *legacyAdapter) Deposit(
	ctx context.Context, from string, asset domain.Asset,
) error {
	offer, err := a.ledger.GetOffer(ctx, asset.Reference, asset.UnitId)
	if err != nil {
		return fmt.Errorf("fetching sale offer: %w", err)
	}
	if offer == nil {
		return ErrOfferMissing
	}
	if !offer.Active {
		return ErrOfferInactive
	}
	if offer.Price != 0 {
		return ErrOfferNotZeroPrice
	}
	if offer.Buyer != a.custodian {
		return ErrOfferWrongClaimer
	}
	if offer.Seller != from {
		return ErrOfferWrongSeller
	}

	return a.ledger.ClaimOffer(ctx, asset.Reference, asset.UnitId, a.custodian)
}

func (a *legacyAdapter) Payout(
	ctx context.Context, to string, asset domain.Asset,
) error {
	return a.ledger.TransferUnit(
		ctx, asset.Reference, a.custodian, to, asset.UnitId,
	)
}

func (a *legacyAdapter) Recall(
	ctx context.Context, holder string, asset domain.Asset,
) error {
	return a.ledger.TransferUnit(
		ctx, asset.Reference, holder, a.custodian, asset.UnitId,
	)
}
