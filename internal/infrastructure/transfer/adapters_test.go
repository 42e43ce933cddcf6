package transfer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
	inmemoryledger "github.com/escrow-network/escrowd/internal/infrastructure/ledger/inmemory"
	"github.com/escrow-network/escrowd/internal/infrastructure/transfer"
)

const custodian = "custodian"

var ctx = context.Background()

func newTestRegistry() (ports.AdapterRegistry, *inmemoryledger.Ledger) {
	ledger := inmemoryledger.NewLedger()
	return transfer.NewAdapterRegistry(ledger, custodian), ledger
}

func TestRegistryResolvesEveryKind(t *testing.T) {
	t.Parallel()

	registry, _ := newTestRegistry()
	for _, kind := range []domain.AssetKind{
		domain.AssetKindFungible, domain.AssetKindUnique,
		domain.AssetKindSemiFungible, domain.AssetKindLegacy,
	} {
		adapter, err := registry.Adapter(kind)
		require.NoError(t, err)
		require.NotNil(t, adapter)
	}

	adapter, err := registry.Adapter(domain.AssetKind(42))
	require.Nil(t, adapter)
	require.ErrorIs(t, err, ports.ErrUnknownAssetKind)
}

func TestFungibleAdapter(t *testing.T) {
	t.Parallel()

	registry, ledger := newTestRegistry()
	adapter, err := registry.Adapter(domain.AssetKindFungible)
	require.NoError(t, err)

	asset := domain.Asset{
		Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
	}

	// the ledger signals insufficient balance with a false return, the
	// adapter must turn it into an error
	err = adapter.Deposit(ctx, "alice", asset)
	require.ErrorIs(t, err, transfer.ErrTransferRejected)

	ledger.Fund("gold", "alice", 100)
	require.NoError(t, adapter.Deposit(ctx, "alice", asset))
	require.EqualValues(t, 100, ledger.Balance("gold", custodian))

	require.NoError(t, adapter.Payout(ctx, "bob", asset))
	require.EqualValues(t, 100, ledger.Balance("gold", "bob"))
	require.Zero(t, ledger.Balance("gold", custodian))

	require.NoError(t, adapter.Recall(ctx, "bob", asset))
	require.EqualValues(t, 100, ledger.Balance("gold", custodian))
}

func TestUniqueAdapter(t *testing.T) {
	t.Parallel()

	registry, ledger := newTestRegistry()
	adapter, err := registry.Adapter(domain.AssetKindUnique)
	require.NoError(t, err)

	asset := domain.Asset{
		Kind: domain.AssetKindUnique, Reference: "deed", UnitId: 7,
	}

	ledger.MintUnit("deed", 7, "bob")
	require.Error(t, adapter.Deposit(ctx, "alice", asset))

	require.NoError(t, adapter.Deposit(ctx, "bob", asset))
	require.Equal(t, custodian, ledger.UnitOwner("deed", 7))

	require.NoError(t, adapter.Payout(ctx, "alice", asset))
	require.Equal(t, "alice", ledger.UnitOwner("deed", 7))

	require.NoError(t, adapter.Recall(ctx, "alice", asset))
	require.Equal(t, custodian, ledger.UnitOwner("deed", 7))
}

func TestSemiFungibleAdapter(t *testing.T) {
	t.Parallel()

	registry, ledger := newTestRegistry()
	adapter, err := registry.Adapter(domain.AssetKindSemiFungible)
	require.NoError(t, err)

	asset := domain.Asset{
		Kind: domain.AssetKindSemiFungible, Reference: "shares",
		UnitId: 3, Quantity: 40,
	}

	require.Error(t, adapter.Deposit(ctx, "alice", asset))

	ledger.MintUnitAmount("shares", 3, "alice", 100)
	require.NoError(t, adapter.Deposit(ctx, "alice", asset))
	require.EqualValues(t, 40, ledger.UnitAmountOf("shares", 3, custodian))
	require.EqualValues(t, 60, ledger.UnitAmountOf("shares", 3, "alice"))

	require.NoError(t, adapter.Payout(ctx, "bob", asset))
	require.EqualValues(t, 40, ledger.UnitAmountOf("shares", 3, "bob"))
}

func TestLegacyAdapter(t *testing.T) {
	t.Parallel()

	asset := domain.Asset{
		Kind: domain.AssetKindLegacy, Reference: "relic", UnitId: 1,
	}

	tests := []struct {
		name        string
		offer       *ports.Offer
		expectedErr error
	}{
		{"missing_offer", nil, transfer.ErrOfferMissing},
		{
			"inactive_offer",
			&ports.Offer{Seller: "alice", Buyer: custodian, Active: false},
			transfer.ErrOfferInactive,
		},
		{
			"non_zero_price",
			&ports.Offer{Seller: "alice", Buyer: custodian, Price: 5, Active: true},
			transfer.ErrOfferNotZeroPrice,
		},
		{
			"wrong_claimer",
			&ports.Offer{Seller: "alice", Buyer: "bob", Active: true},
			transfer.ErrOfferWrongClaimer,
		},
		{
			"wrong_seller",
			&ports.Offer{Seller: "bob", Buyer: custodian, Active: true},
			transfer.ErrOfferWrongSeller,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry, ledger := newTestRegistry()
			adapter, err := registry.Adapter(domain.AssetKindLegacy)
			require.NoError(t, err)

			ledger.MintUnit("relic", 1, "alice")
			if tt.offer != nil {
				ledger.RegisterOffer("relic", 1, *tt.offer)
			}

			err = adapter.Deposit(ctx, "alice", asset)
			require.ErrorIs(t, err, tt.expectedErr)
			require.Equal(t, "alice", ledger.UnitOwner("relic", 1))
		})
	}

	t.Run("claim_and_payout", func(t *testing.T) {
		t.Parallel()

		registry, ledger := newTestRegistry()
		adapter, err := registry.Adapter(domain.AssetKindLegacy)
		require.NoError(t, err)

		ledger.MintUnit("relic", 1, "alice")
		ledger.RegisterOffer("relic", 1, ports.Offer{
			Seller: "alice", Buyer: custodian, Price: 0, Active: true,
		})

		require.NoError(t, adapter.Deposit(ctx, "alice", asset))
		require.Equal(t, custodian, ledger.UnitOwner("relic", 1))

		// paying out needs no offer, it is a plain transfer
		require.NoError(t, adapter.Payout(ctx, "bob", asset))
		require.Equal(t, "bob", ledger.UnitOwner("relic", 1))
	})
}
