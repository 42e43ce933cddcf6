package inmemory

import (
	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

// RepoManager holds the in-memory repositories in a single data structure.
type RepoManager struct {
	tradeRepository domain.TradeRepository
	feeRepository   domain.FeeRepository
}

// NewRepoManager returns a RepoManager with empty in-memory stores.
func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		tradeRepository: NewTradeRepositoryImpl(),
		feeRepository:   NewFeeRepositoryImpl(),
	}
}

func (d *RepoManager) TradeRepository() domain.TradeRepository {
	return d.tradeRepository
}

func (d *RepoManager) FeeRepository() domain.FeeRepository {
	return d.feeRepository
}

func (d *RepoManager) Close() {}
