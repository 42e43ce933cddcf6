package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

// the fee ledger is a singleton record
const feeLedgerKey = "fee_ledger"

type feeRepositoryImpl struct {
	store *badgerhold.Store
}

// NewFeeRepositoryImpl returns a new badger FeeRepository implementation.
func NewFeeRepositoryImpl(store *badgerhold.Store) domain.FeeRepository {
	return &feeRepositoryImpl{store: store}
}

func (r *feeRepositoryImpl) GetFeeLedger(
	_ context.Context,
) (*domain.FeeLedger, error) {
	var ledger domain.FeeLedger
	if err := r.store.Get(feeLedgerKey, &ledger); err != nil {
		if err == badgerhold.ErrNotFound {
			return &domain.FeeLedger{}, nil
		}
		return nil, err
	}
	return &ledger, nil
}

func (r *feeRepositoryImpl) UpdateFeeLedger(
	ctx context.Context,
	updateFn func(l *domain.FeeLedger) (*domain.FeeLedger, error),
) error {
	currentLedger, err := r.GetFeeLedger(ctx)
	if err != nil {
		return err
	}

	updatedLedger, err := updateFn(currentLedger)
	if err != nil {
		return err
	}

	return r.store.Upsert(feeLedgerKey, updatedLedger)
}
