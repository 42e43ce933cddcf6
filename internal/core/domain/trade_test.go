package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thanhpk/randstr"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

var now = time.Now()

func TestNewTrade(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t)

	require.Equal(t, domain.TradeStatusActive, trade.Status)
	require.True(t, trade.IsActive())
	require.False(t, trade.IsTerminal())
	require.Equal(t, 2, trade.TotalCount)
	require.Zero(t, trade.DepositedCount)
	require.Len(t, trade.Assets["alice"], 1)
	require.Len(t, trade.Assets["bob"], 1)
	require.False(t, trade.IsExpired(now))
	require.True(t, trade.IsExpired(now.Add(8*24*time.Hour)))
}

func TestFailingNewTrade(t *testing.T) {
	t.Parallel()

	manifest := []domain.Asset{
		{
			Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
			Source: "alice", Destination: "bob",
		},
	}

	tests := []struct {
		name         string
		participants []string
		manifest     []domain.Asset
		expectedErr  error
	}{
		{
			"too_few_participants",
			[]string{"alice"},
			manifest,
			domain.ErrInvalidParticipantCount,
		},
		{
			"too_many_participants",
			makeParticipants(11),
			manifest,
			domain.ErrInvalidParticipantCount,
		},
		{
			"duplicate_participant",
			[]string{"alice", "alice"},
			manifest,
			domain.ErrDuplicateParticipant,
		},
		{
			"empty_manifest",
			[]string{"alice", "bob"},
			nil,
			domain.ErrEmptyManifest,
		},
		{
			"unknown_source",
			[]string{"alice", "bob"},
			[]domain.Asset{
				{
					Kind: domain.AssetKindFungible, Reference: "gold",
					Quantity: 100, Source: "carol", Destination: "bob",
				},
			},
			domain.ErrUnknownManifestParty,
		},
		{
			"unknown_destination",
			[]string{"alice", "bob"},
			[]domain.Asset{
				{
					Kind: domain.AssetKindFungible, Reference: "gold",
					Quantity: 100, Source: "alice", Destination: "carol",
				},
			},
			domain.ErrUnknownManifestParty,
		},
		{
			"zero_quantity",
			[]string{"alice", "bob"},
			[]domain.Asset{
				{
					Kind: domain.AssetKindFungible, Reference: "gold",
					Source: "alice", Destination: "bob",
				},
			},
			domain.ErrInvalidAssetQuantity,
		},
		{
			"missing_reference",
			[]string{"alice", "bob"},
			[]domain.Asset{
				{
					Kind: domain.AssetKindFungible, Quantity: 100,
					Source: "alice", Destination: "bob",
				},
			},
			domain.ErrInvalidAssetReference,
		},
		{
			"too_many_assets_per_participant",
			[]string{"alice", "bob"},
			makeManifest("alice", "bob", 11),
			domain.ErrTooManyAssets,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			trade, err := domain.NewTrade(1, tt.participants, tt.manifest, 0, now)
			require.Nil(t, trade)
			require.EqualError(t, err, tt.expectedErr.Error())
		})
	}
}

func TestTradeDurationClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		duration         time.Duration
		expectedDeadline int64
	}{
		{"default", 0, now.Add(domain.DefaultTradeDuration).Unix()},
		{"below_min", time.Hour, now.Add(domain.MinTradeDuration).Unix()},
		{"above_max", 60 * 24 * time.Hour, now.Add(domain.MaxTradeDuration).Unix()},
		{"in_range", 48 * time.Hour, now.Add(48 * time.Hour).Unix()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			trade, err := domain.NewTrade(
				1, []string{"alice", "bob"}, []domain.Asset{
					{
						Kind: domain.AssetKindFungible, Reference: "gold",
						Quantity: 100, Source: "alice", Destination: "bob",
					},
				}, tt.duration, now,
			)
			require.NoError(t, err)
			require.Equal(t, tt.expectedDeadline, trade.Deadline)
		})
	}
}

func TestTradeDeposit(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t)

	asset, err := trade.Deposit("alice", domain.AssetDescriptor{
		Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
	}, now)
	require.NoError(t, err)
	require.NotNil(t, asset)
	require.True(t, asset.Deposited)
	require.Equal(t, "bob", asset.Destination)
	require.Equal(t, 1, trade.DepositedCount)
	require.False(t, trade.AllDeposited())

	asset, err = trade.Deposit("bob", domain.AssetDescriptor{
		Kind: domain.AssetKindUnique, Reference: "deed", UnitId: 7,
	}, now)
	require.NoError(t, err)
	require.NotNil(t, asset)
	require.True(t, trade.AllDeposited())
}

func TestFailingTradeDeposit(t *testing.T) {
	t.Parallel()

	goldDescriptor := domain.AssetDescriptor{
		Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
	}

	t.Run("trade_not_active", func(t *testing.T) {
		t.Parallel()

		trade := newTestTrade(t)
		_, err := trade.Cancel("alice")
		require.NoError(t, err)

		asset, err := trade.Deposit("alice", goldDescriptor, now)
		require.Nil(t, asset)
		require.EqualError(t, err, domain.ErrTradeNotActive.Error())
	})

	t.Run("trade_expired", func(t *testing.T) {
		t.Parallel()

		trade := newTestTrade(t)
		asset, err := trade.Deposit(
			"alice", goldDescriptor, now.Add(8*24*time.Hour),
		)
		require.Nil(t, asset)
		require.EqualError(t, err, domain.ErrTradeExpired.Error())
	})

	t.Run("not_a_participant", func(t *testing.T) {
		t.Parallel()

		trade := newTestTrade(t)
		asset, err := trade.Deposit("carol", goldDescriptor, now)
		require.Nil(t, asset)
		require.EqualError(t, err, domain.ErrNotParticipant.Error())
	})

	t.Run("asset_not_committed", func(t *testing.T) {
		t.Parallel()

		trade := newTestTrade(t)
		asset, err := trade.Deposit("alice", domain.AssetDescriptor{
			Kind: domain.AssetKindFungible, Reference: "silver", Quantity: 100,
		}, now)
		require.Nil(t, asset)
		require.EqualError(t, err, domain.ErrAssetNotCommitted.Error())
	})

	t.Run("already_deposited", func(t *testing.T) {
		t.Parallel()

		trade := newTestTrade(t)
		_, err := trade.Deposit("alice", goldDescriptor, now)
		require.NoError(t, err)

		asset, err := trade.Deposit("alice", goldDescriptor, now)
		require.Nil(t, asset)
		require.EqualError(t, err, domain.ErrAssetAlreadyDeposited.Error())
	})

	t.Run("recipient_mismatch", func(t *testing.T) {
		t.Parallel()

		trade := newTestTrade(t)
		descriptor := goldDescriptor
		descriptor.Recipient = "carol"
		asset, err := trade.Deposit("alice", descriptor, now)
		require.Nil(t, asset)
		require.EqualError(t, err, domain.ErrAssetNotCommitted.Error())
	})
}

func TestTradeConfirm(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t)
	_, err := trade.Deposit("alice", domain.AssetDescriptor{
		Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
	}, now)
	require.NoError(t, err)

	err = trade.Confirm("alice", now)
	require.NoError(t, err)
	require.Equal(t, 1, trade.ConfirmedCount())
	require.False(t, trade.AllConfirmed())

	err = trade.Confirm("alice", now)
	require.EqualError(t, err, domain.ErrAlreadyConfirmed.Error())

	err = trade.Confirm("bob", now)
	require.EqualError(t, err, domain.ErrAssetsNotDeposited.Error())

	_, err = trade.Deposit("bob", domain.AssetDescriptor{
		Kind: domain.AssetKindUnique, Reference: "deed", UnitId: 7,
	}, now)
	require.NoError(t, err)

	err = trade.Confirm("bob", now)
	require.NoError(t, err)
	require.True(t, trade.AllConfirmed())
}

func TestTradeCancel(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t)
	_, err := trade.Deposit("alice", domain.AssetDescriptor{
		Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
	}, now)
	require.NoError(t, err)

	refunds, err := trade.Cancel("bob")
	require.NoError(t, err)
	require.Len(t, refunds, 1)
	require.Equal(t, "alice", refunds[0].Source)
	require.Equal(t, domain.TradeStatusCancelled, trade.Status)
	require.True(t, trade.IsTerminal())
	require.Zero(t, trade.DepositedCount)

	_, err = trade.Cancel("bob")
	require.EqualError(t, err, domain.ErrTradeNotActive.Error())

	_, err = trade.Reclaim("alice", now)
	require.EqualError(t, err, domain.ErrNothingToReclaim.Error())
}

func TestTradeReclaim(t *testing.T) {
	t.Parallel()

	afterDeadline := now.Add(8 * 24 * time.Hour)

	trade := newTestTrade(t)
	_, err := trade.Deposit("alice", domain.AssetDescriptor{
		Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
	}, now)
	require.NoError(t, err)
	_, err = trade.Deposit("bob", domain.AssetDescriptor{
		Kind: domain.AssetKindUnique, Reference: "deed", UnitId: 7,
	}, now)
	require.NoError(t, err)

	_, err = trade.Reclaim("alice", now)
	require.EqualError(t, err, domain.ErrTradeNotExpired.Error())

	refunds, err := trade.Reclaim("alice", afterDeadline)
	require.NoError(t, err)
	require.Len(t, refunds, 1)
	require.Equal(t, domain.TradeStatusReclaiming, trade.Status)

	_, err = trade.Reclaim("alice", afterDeadline)
	require.EqualError(t, err, domain.ErrAlreadyReclaimed.Error())

	refunds, err = trade.Reclaim("bob", afterDeadline)
	require.NoError(t, err)
	require.Len(t, refunds, 1)
	require.Equal(t, domain.TradeStatusReclaimed, trade.Status)
	require.True(t, trade.IsTerminal())
}

func TestTradeReclaimWithoutDeposits(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t)
	refunds, err := trade.Reclaim("alice", now.Add(8*24*time.Hour))
	require.Nil(t, refunds)
	require.EqualError(t, err, domain.ErrNothingToReclaim.Error())
	require.Equal(t, domain.TradeStatusReclaiming, trade.Status)
}

func TestTradeExecute(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t)
	_, err := trade.Deposit("alice", domain.AssetDescriptor{
		Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
	}, now)
	require.NoError(t, err)
	_, err = trade.Deposit("bob", domain.AssetDescriptor{
		Kind: domain.AssetKindUnique, Reference: "deed", UnitId: 7,
	}, now)
	require.NoError(t, err)

	payouts := trade.DepositedAssets()
	require.Len(t, payouts, 2)

	require.NoError(t, trade.Execute())
	require.Equal(t, domain.TradeStatusExecuted, trade.Status)
	require.True(t, trade.IsTerminal())
	require.Zero(t, trade.DepositedCount)
	require.Empty(t, trade.DepositedAssets())

	require.EqualError(t, trade.Execute(), domain.ErrTradeNotActive.Error())
}

func newTestTrade(t *testing.T) *domain.Trade {
	t.Helper()

	trade, err := domain.NewTrade(1, []string{"alice", "bob"}, []domain.Asset{
		{
			Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
			Source: "alice", Destination: "bob",
		},
		{
			Kind: domain.AssetKindUnique, Reference: "deed", UnitId: 7,
			Source: "bob", Destination: "alice",
		},
	}, 0, now)
	require.NoError(t, err)
	require.NotNil(t, trade)
	return trade
}

func makeParticipants(count int) []string {
	participants := make([]string, 0, count)
	for i := 0; i < count; i++ {
		participants = append(participants, randstr.Hex(8))
	}
	return participants
}

func makeManifest(source, destination string, count int) []domain.Asset {
	manifest := make([]domain.Asset, 0, count)
	for i := 0; i < count; i++ {
		manifest = append(manifest, domain.Asset{
			Kind:      domain.AssetKindFungible,
			Reference: randstr.Hex(8),
			Quantity:  uint64(i + 1),
			Source:    source, Destination: destination,
		})
	}
	return manifest
}
