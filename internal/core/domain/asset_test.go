package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

func TestAssetKindRoundTrip(t *testing.T) {
	t.Parallel()

	for _, kind := range []domain.AssetKind{
		domain.AssetKindFungible, domain.AssetKindUnique,
		domain.AssetKindSemiFungible, domain.AssetKindLegacy,
	} {
		parsed, ok := domain.AssetKindFromString(kind.String())
		require.True(t, ok)
		require.Equal(t, kind, parsed)
	}

	_, ok := domain.AssetKindFromString("SOULBOUND")
	require.False(t, ok)
	require.Equal(t, "UNKNOWN", domain.AssetKind(42).String())
}

func TestAssetMatches(t *testing.T) {
	t.Parallel()

	unique := domain.Asset{
		Kind: domain.AssetKindUnique, Reference: "deed", UnitId: 7,
		Source: "bob", Destination: "alice",
	}
	fungible := domain.Asset{
		Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
		Source: "alice", Destination: "bob",
	}

	tests := []struct {
		name       string
		asset      domain.Asset
		descriptor domain.AssetDescriptor
		expected   bool
	}{
		{
			"fungible_exact",
			fungible,
			domain.AssetDescriptor{
				Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 100,
			},
			true,
		},
		{
			"fungible_wrong_quantity",
			fungible,
			domain.AssetDescriptor{
				Kind: domain.AssetKindFungible, Reference: "gold", Quantity: 99,
			},
			false,
		},
		{
			"unique_ignores_quantity",
			unique,
			domain.AssetDescriptor{
				Kind: domain.AssetKindUnique, Reference: "deed", UnitId: 7,
				Quantity: 1234,
			},
			true,
		},
		{
			"unique_wrong_unit",
			unique,
			domain.AssetDescriptor{
				Kind: domain.AssetKindUnique, Reference: "deed", UnitId: 8,
			},
			false,
		},
		{
			"kind_mismatch",
			fungible,
			domain.AssetDescriptor{
				Kind: domain.AssetKindSemiFungible, Reference: "gold",
				Quantity: 100,
			},
			false,
		},
		{
			"recipient_match",
			fungible,
			domain.AssetDescriptor{
				Kind: domain.AssetKindFungible, Reference: "gold",
				Quantity: 100, Recipient: "bob",
			},
			true,
		},
		{
			"recipient_mismatch",
			fungible,
			domain.AssetDescriptor{
				Kind: domain.AssetKindFungible, Reference: "gold",
				Quantity: 100, Recipient: "carol",
			},
			false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.expected, tt.asset.Matches(tt.descriptor))
		})
	}
}
