package domain

import "context"

// TradeRepository is the abstraction for any kind of database intended to
// persist Trades. Trade ids come from a monotonically increasing counter
// owned by the repository, never from trade content.
type TradeRepository interface {
	// NextTradeId reserves and returns a fresh trade id.
	NextTradeId(ctx context.Context) (uint64, error)
	// AddTrade persists a newly created trade.
	AddTrade(ctx context.Context, trade *Trade) error
	// GetTrade returns the trade with the given id, or ErrTradeNotFound.
	GetTrade(ctx context.Context, tradeId uint64) (*Trade, error)
	// GetAllTrades returns all the trades stored in the repository,
	// terminated ones included.
	GetAllTrades(ctx context.Context) ([]*Trade, error)
	// UpdateTrade allows to commit multiple changes to the same trade in a
	// transactional way. If updateFn returns an error no change is
	// persisted.
	UpdateTrade(
		ctx context.Context,
		tradeId uint64,
		updateFn func(t *Trade) (*Trade, error),
	) error
}
