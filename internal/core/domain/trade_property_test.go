package domain_test

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/escrow-network/escrowd/internal/core/domain"
)

// The custody count must always equal the number of flagged entries, and a
// terminal trade must never keep an asset flagged as held, regardless of
// the order in which participants deposit, cancel and reclaim.
func TestTradeCustodyInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		participantCount := rapid.IntRange(
			domain.MinParticipants, domain.MaxParticipants,
		).Draw(rt, "participants")

		participants := make([]string, participantCount)
		for i := range participants {
			participants[i] = string(rune('a' + i))
		}

		assetCount := rapid.IntRange(1, 12).Draw(rt, "assets")
		manifest := make([]domain.Asset, 0, assetCount)
		for i := 0; i < assetCount; i++ {
			source := rapid.SampledFrom(participants).Draw(rt, "source")
			destination := rapid.SampledFrom(participants).Draw(rt, "destination")
			manifest = append(manifest, domain.Asset{
				Kind:      domain.AssetKindFungible,
				Reference: "asset-" + string(rune('0'+i%10)) + string(rune('0'+i/10)),
				Quantity:  uint64(i + 1),
				Source:    source, Destination: destination,
			})
		}

		start := time.Now()
		trade, err := domain.NewTrade(1, participants, manifest, 0, start)
		if err != nil {
			// over-committed source, structurally rejected
			return
		}

		clock := start
		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			caller := rapid.SampledFrom(participants).Draw(rt, "caller")
			switch rapid.IntRange(0, 4).Draw(rt, "op") {
			case 0:
				entry := manifest[rapid.IntRange(0, assetCount-1).Draw(rt, "entry")]
				trade.Deposit(caller, domain.AssetDescriptor{
					Kind: entry.Kind, Reference: entry.Reference,
					Quantity: entry.Quantity,
				}, clock)
			case 1:
				trade.Confirm(caller, clock)
			case 2:
				trade.Cancel(caller)
			case 3:
				trade.Reclaim(caller, clock)
			case 4:
				clock = clock.Add(
					time.Duration(rapid.Int64Range(0, 10*24).Draw(rt, "hours")) *
						time.Hour,
				)
			}

			flagged := 0
			for _, p := range participants {
				for _, a := range trade.Assets[p] {
					if a.Deposited {
						flagged++
					}
				}
			}
			if flagged != trade.DepositedCount {
				rt.Fatalf(
					"custody count %d does not match %d flagged entries",
					trade.DepositedCount, flagged,
				)
			}
			if trade.IsTerminal() && flagged != 0 {
				rt.Fatalf(
					"terminal trade %s still holds %d assets",
					trade.Status, flagged,
				)
			}
			if trade.DepositedCount > trade.TotalCount {
				rt.Fatalf(
					"deposited %d exceeds committed %d",
					trade.DepositedCount, trade.TotalCount,
				)
			}
		}
	})
}
