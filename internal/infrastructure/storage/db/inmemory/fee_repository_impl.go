package inmemory

import (
	"context"
	"sync"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

type feeRepositoryImpl struct {
	locker sync.Mutex
	ledger domain.FeeLedger
}

// NewFeeRepositoryImpl returns a new inmemory FeeRepository implementation.
func NewFeeRepositoryImpl() domain.FeeRepository {
	return &feeRepositoryImpl{}
}

func (r *feeRepositoryImpl) GetFeeLedger(
	_ context.Context,
) (*domain.FeeLedger, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	ledger := r.ledger
	return &ledger, nil
}

func (r *feeRepositoryImpl) UpdateFeeLedger(
	_ context.Context,
	updateFn func(l *domain.FeeLedger) (*domain.FeeLedger, error),
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	ledger := r.ledger
	updatedLedger, err := updateFn(&ledger)
	if err != nil {
		return err
	}

	r.ledger = *updatedLedger
	return nil
}
