package inmemory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/infrastructure/storage/db/inmemory"
)

var ctx = context.Background()

func TestTradeRepository(t *testing.T) {
	t.Parallel()

	repoManager := inmemory.NewRepoManager()
	repo := repoManager.TradeRepository()

	id, err := repo.NextTradeId(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, id)

	nextId, err := repo.NextTradeId(ctx)
	require.NoError(t, err)
	require.Equal(t, id+1, nextId)

	_, err = repo.GetTrade(ctx, id)
	require.ErrorIs(t, err, domain.ErrTradeNotFound)

	trade := newTestTrade(t, id)
	require.NoError(t, repo.AddTrade(ctx, trade))

	stored, err := repo.GetTrade(ctx, id)
	require.NoError(t, err)
	require.Equal(t, trade.Id, stored.Id)
	require.Equal(t, trade.Participants, stored.Participants)

	all, err := repo.GetAllTrades(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestUpdateTrade(t *testing.T) {
	t.Parallel()

	repoManager := inmemory.NewRepoManager()
	repo := repoManager.TradeRepository()

	trade := newTestTrade(t, 1)
	require.NoError(t, repo.AddTrade(ctx, trade))

	err := repo.UpdateTrade(ctx, 1, func(tr *domain.Trade) (*domain.Trade, error) {
		_, err := tr.Deposit("alice", domain.AssetDescriptor{
			Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
		}, time.Now())
		return tr, err
	})
	require.NoError(t, err)

	stored, err := repo.GetTrade(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, stored.DepositedCount)

	require.ErrorIs(
		t,
		repo.UpdateTrade(ctx, 99, func(tr *domain.Trade) (*domain.Trade, error) {
			return tr, nil
		}),
		domain.ErrTradeNotFound,
	)
}

// A failing update function must leave the stored trade untouched, even if
// it mutated the trade before failing.
func TestFailingUpdateTradeRollsBack(t *testing.T) {
	t.Parallel()

	repoManager := inmemory.NewRepoManager()
	repo := repoManager.TradeRepository()

	require.NoError(t, repo.AddTrade(ctx, newTestTrade(t, 1)))

	expectedErr := errors.New("something went wrong after mutating")
	err := repo.UpdateTrade(ctx, 1, func(tr *domain.Trade) (*domain.Trade, error) {
		_, err := tr.Deposit("alice", domain.AssetDescriptor{
			Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
		}, time.Now())
		require.NoError(t, err)
		tr.Confirmed["alice"] = true
		return nil, expectedErr
	})
	require.ErrorIs(t, err, expectedErr)

	stored, err := repo.GetTrade(ctx, 1)
	require.NoError(t, err)
	require.Zero(t, stored.DepositedCount)
	require.False(t, stored.Assets["alice"][0].Deposited)
	require.False(t, stored.Confirmed["alice"])
}

func TestFeeRepository(t *testing.T) {
	t.Parallel()

	repoManager := inmemory.NewRepoManager()
	repo := repoManager.FeeRepository()

	ledger, err := repo.GetFeeLedger(ctx)
	require.NoError(t, err)
	require.Zero(t, ledger.FlatFee)

	err = repo.UpdateFeeLedger(
		ctx, func(l *domain.FeeLedger) (*domain.FeeLedger, error) {
			l.FlatFee = 10
			l.Recipient = "treasury"
			l.Collect(25)
			return l, nil
		},
	)
	require.NoError(t, err)

	expectedErr := errors.New("rejected")
	err = repo.UpdateFeeLedger(
		ctx, func(l *domain.FeeLedger) (*domain.FeeLedger, error) {
			l.Accumulated = 0
			return nil, expectedErr
		},
	)
	require.ErrorIs(t, err, expectedErr)

	ledger, err = repo.GetFeeLedger(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 10, ledger.FlatFee)
	require.Equal(t, "treasury", ledger.Recipient)
	require.EqualValues(t, 25, ledger.Accumulated)
}

func newTestTrade(t *testing.T, id uint64) *domain.Trade {
	t.Helper()

	trade, err := domain.NewTrade(id, []string{"alice", "bob"}, []domain.Asset{
		{
			Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
			Source: "alice", Destination: "bob",
		},
		{
			Kind: domain.AssetKindUnique, Reference: "deed", UnitId: 7,
			Source: "bob", Destination: "alice",
		},
	}, 0, time.Now())
	require.NoError(t, err)
	return trade
}
