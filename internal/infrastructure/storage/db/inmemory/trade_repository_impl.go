package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

type tradeRepositoryImpl struct {
	locker  sync.Mutex
	counter uint64
	trades  map[uint64]*domain.Trade
}

// NewTradeRepositoryImpl returns a new inmemory TradeRepository
// implementation.
func NewTradeRepositoryImpl() domain.TradeRepository {
	return &tradeRepositoryImpl{
		trades: make(map[uint64]*domain.Trade),
	}
}

func (r *tradeRepositoryImpl) NextTradeId(_ context.Context) (uint64, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	r.counter++
	return r.counter, nil
}

func (r *tradeRepositoryImpl) AddTrade(
	_ context.Context, trade *domain.Trade,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	r.trades[trade.Id] = copyTrade(trade)
	return nil
}

func (r *tradeRepositoryImpl) GetTrade(
	_ context.Context, tradeId uint64,
) (*domain.Trade, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	trade, ok := r.trades[tradeId]
	if !ok {
		return nil, domain.ErrTradeNotFound
	}
	return copyTrade(trade), nil
}

func (r *tradeRepositoryImpl) GetAllTrades(
	_ context.Context,
) ([]*domain.Trade, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	allTrades := make([]*domain.Trade, 0, len(r.trades))
	for _, trade := range r.trades {
		allTrades = append(allTrades, copyTrade(trade))
	}
	sort.Slice(allTrades, func(i, j int) bool {
		return allTrades[i].Id < allTrades[j].Id
	})
	return allTrades, nil
}

func (r *tradeRepositoryImpl) UpdateTrade(
	_ context.Context,
	tradeId uint64,
	updateFn func(t *domain.Trade) (*domain.Trade, error),
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	currentTrade, ok := r.trades[tradeId]
	if !ok {
		return domain.ErrTradeNotFound
	}

	// updateFn works on a deep copy so that a failing update leaves the
	// stored trade untouched
	updatedTrade, err := updateFn(copyTrade(currentTrade))
	if err != nil {
		return err
	}

	r.trades[updatedTrade.Id] = copyTrade(updatedTrade)
	return nil
}

func copyTrade(t *domain.Trade) *domain.Trade {
	copied := *t
	copied.Participants = append([]string(nil), t.Participants...)
	copied.Assets = make(map[string][]domain.Asset, len(t.Assets))
	for p, assets := range t.Assets {
		copied.Assets[p] = append([]domain.Asset(nil), assets...)
	}
	copied.Confirmed = copyFlags(t.Confirmed)
	copied.FeePaid = copyFlags(t.FeePaid)
	copied.Reclaimed = copyFlags(t.Reclaimed)
	return &copied
}

func copyFlags(flags map[string]bool) map[string]bool {
	copied := make(map[string]bool, len(flags))
	for k, v := range flags {
		copied[k] = v
	}
	return copied
}
