package ports

import (
	"github.com/escrow-network/escrowd/internal/core/domain"
)

// RepoManager holds all the repositories of the daemon in a single data
// structure.
type RepoManager interface {
	TradeRepository() domain.TradeRepository
	FeeRepository() domain.FeeRepository

	// Close should be used to gracefully close the connection with the
	// underlying storage.
	Close()
}
