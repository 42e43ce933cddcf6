package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

type tradeRepositoryImpl struct {
	store *badgerhold.Store
	seq   *badger.Sequence
}

// NewTradeRepositoryImpl returns a new badger TradeRepository
// implementation.
func NewTradeRepositoryImpl(
	store *badgerhold.Store, seq *badger.Sequence,
) domain.TradeRepository {
	return &tradeRepositoryImpl{store: store, seq: seq}
}

func (r *tradeRepositoryImpl) NextTradeId(_ context.Context) (uint64, error) {
	next, err := r.seq.Next()
	if err != nil {
		return 0, err
	}
	// sequences start at 0, trade ids at 1
	return next + 1, nil
}

func (r *tradeRepositoryImpl) AddTrade(
	_ context.Context, trade *domain.Trade,
) error {
	return r.store.Insert(trade.Id, trade)
}

func (r *tradeRepositoryImpl) GetTrade(
	_ context.Context, tradeId uint64,
) (*domain.Trade, error) {
	var trade domain.Trade
	if err := r.store.Get(tradeId, &trade); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrTradeNotFound
		}
		return nil, err
	}
	return &trade, nil
}

func (r *tradeRepositoryImpl) GetAllTrades(
	_ context.Context,
) ([]*domain.Trade, error) {
	var trades []domain.Trade
	if err := r.store.Find(&trades, nil); err != nil {
		return nil, err
	}

	allTrades := make([]*domain.Trade, 0, len(trades))
	for i := range trades {
		allTrades = append(allTrades, &trades[i])
	}
	return allTrades, nil
}

func (r *tradeRepositoryImpl) UpdateTrade(
	ctx context.Context,
	tradeId uint64,
	updateFn func(t *domain.Trade) (*domain.Trade, error),
) error {
	currentTrade, err := r.GetTrade(ctx, tradeId)
	if err != nil {
		return err
	}

	updatedTrade, err := updateFn(currentTrade)
	if err != nil {
		return err
	}

	return r.store.Update(updatedTrade.Id, updatedTrade)
}
