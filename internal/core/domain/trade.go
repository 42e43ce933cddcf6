package domain

import (
	"time"
)

// Trade is the data structure representing an atomic exchange among a fixed
// participant set. Its asset records are created atomically with the trade
// from the caller-supplied manifest and are mutated only by deposits and by
// the custody-releasing transitions.
type Trade struct {
	Id             uint64
	Participants   []string
	Assets         map[string][]Asset
	Deadline       int64
	Status         TradeStatus
	DepositedCount int
	TotalCount     int
	Confirmed      map[string]bool
	FeePaid        map[string]bool
	Reclaimed      map[string]bool
	CreatedAt      int64
}

// NewTrade validates the participant set and the manifest and returns an
// Active trade with its deadline computed from the given duration, clamped
// to [MinTradeDuration, MaxTradeDuration]. A zero duration selects
// DefaultTradeDuration.
func NewTrade(
	id uint64, participants []string, manifest []Asset,
	duration time.Duration, now time.Time,
) (*Trade, error) {
	if len(participants) < MinParticipants || len(participants) > MaxParticipants {
		return nil, ErrInvalidParticipantCount
	}
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if _, ok := seen[p]; ok {
			return nil, ErrDuplicateParticipant
		}
		seen[p] = struct{}{}
	}

	if len(manifest) <= 0 {
		return nil, ErrEmptyManifest
	}

	assets := make(map[string][]Asset)
	for _, a := range manifest {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[a.Source]; !ok {
			return nil, ErrUnknownManifestParty
		}
		if _, ok := seen[a.Destination]; !ok {
			return nil, ErrUnknownManifestParty
		}
		a.Deposited = false
		assets[a.Source] = append(assets[a.Source], a)
		if len(assets[a.Source]) > MaxAssetsPerParticipant {
			return nil, ErrTooManyAssets
		}
	}

	return &Trade{
		Id:           id,
		Participants: participants,
		Assets:       assets,
		Deadline:     now.Add(clampDuration(duration)).Unix(),
		Status:       TradeStatusActive,
		TotalCount:   len(manifest),
		Confirmed:    make(map[string]bool),
		FeePaid:      make(map[string]bool),
		Reclaimed:    make(map[string]bool),
		CreatedAt:    now.Unix(),
	}, nil
}

// Deposit matches the descriptor against exactly one committed, not yet
// deposited manifest entry bound to the caller and flips its custody flag.
// It returns the satisfied entry so that the caller of this method can move
// the asset into custody.
func (t *Trade) Deposit(
	caller string, descriptor AssetDescriptor, now time.Time,
) (*Asset, error) {
	if !t.IsActive() {
		return nil, ErrTradeNotActive
	}
	if t.IsExpired(now) {
		return nil, ErrTradeExpired
	}
	if !t.HasParticipant(caller) {
		return nil, ErrNotParticipant
	}

	var alreadyDeposited bool
	entries := t.Assets[caller]
	for i := range entries {
		if !entries[i].Matches(descriptor) {
			continue
		}
		if entries[i].Deposited {
			alreadyDeposited = true
			continue
		}
		entries[i].Deposited = true
		t.DepositedCount++
		return &entries[i], nil
	}

	if alreadyDeposited {
		return nil, ErrAssetAlreadyDeposited
	}
	return nil, ErrAssetNotCommitted
}

// Confirm records the caller's confirmation. It requires the caller to have
// fully deposited their own commitments and to not have confirmed already.
func (t *Trade) Confirm(caller string, now time.Time) error {
	if !t.IsActive() {
		return ErrTradeNotActive
	}
	if t.IsExpired(now) {
		return ErrTradeExpired
	}
	if !t.HasParticipant(caller) {
		return ErrNotParticipant
	}
	if t.Confirmed[caller] {
		return ErrAlreadyConfirmed
	}
	for _, a := range t.Assets[caller] {
		if !a.Deposited {
			return ErrAssetsNotDeposited
		}
	}

	t.Confirmed[caller] = true
	return nil
}

// Cancel marks the trade Cancelled and returns the assets whose custody must
// be given back to their depositors. Flags are reset so that no asset of a
// terminal trade remains flagged as held.
func (t *Trade) Cancel(caller string) ([]Asset, error) {
	if !t.HasParticipant(caller) {
		return nil, ErrNotParticipant
	}
	if !t.IsActive() {
		return nil, ErrTradeNotActive
	}

	refunds := t.DepositedAssets()
	t.resetDeposits()
	t.Status = TradeStatusCancelled
	return refunds, nil
}

// RevertDeposit flips the custody flag of the given deposited entry back
// after its custody movement was undone.
func (t *Trade) RevertDeposit(asset Asset) {
	entries := t.Assets[asset.Source]
	for i := range entries {
		e := &entries[i]
		if e.Deposited && e.Kind == asset.Kind &&
			e.Reference == asset.Reference && e.UnitId == asset.UnitId &&
			e.Quantity == asset.Quantity && e.Destination == asset.Destination {
			e.Deposited = false
			t.DepositedCount--
			return
		}
	}
}

// Reclaim returns the caller's own deposited, not yet distributed assets.
// It is permitted once the trade is no longer active, or while still active
// past its deadline, in which case the trade moves to Reclaiming. Once no
// deposited asset remains in custody the trade becomes Reclaimed.
func (t *Trade) Reclaim(caller string, now time.Time) ([]Asset, error) {
	if !t.HasParticipant(caller) {
		return nil, ErrNotParticipant
	}
	if t.Reclaimed[caller] {
		return nil, ErrAlreadyReclaimed
	}

	switch t.Status {
	case TradeStatusActive:
		if !t.IsExpired(now) {
			return nil, ErrTradeNotExpired
		}
		t.Status = TradeStatusReclaiming
	case TradeStatusReclaiming:
	default:
		// executed and cancelled trades hold no custody anymore
		return nil, ErrNothingToReclaim
	}

	var refunds []Asset
	entries := t.Assets[caller]
	for i := range entries {
		if entries[i].Deposited {
			refunds = append(refunds, entries[i])
			entries[i].Deposited = false
			t.DepositedCount--
		}
	}
	if len(refunds) <= 0 {
		return nil, ErrNothingToReclaim
	}

	t.Reclaimed[caller] = true
	if t.DepositedCount <= 0 {
		t.Status = TradeStatusReclaimed
	}
	return refunds, nil
}

// Execute marks the trade Executed. It must be invoked only once every
// deposited asset has been distributed to its declared destination, so
// flags are reset and no asset of the terminal trade remains flagged as
// held.
func (t *Trade) Execute() error {
	if !t.IsActive() {
		return ErrTradeNotActive
	}

	t.resetDeposits()
	t.Status = TradeStatusExecuted
	return nil
}

// AllDeposited returns whether every committed asset has been deposited.
func (t *Trade) AllDeposited() bool {
	return t.DepositedCount >= t.TotalCount
}

// AllConfirmed returns whether every participant has confirmed.
func (t *Trade) AllConfirmed() bool {
	for _, p := range t.Participants {
		if !t.Confirmed[p] {
			return false
		}
	}
	return true
}

// ConfirmedCount returns the number of participants who confirmed so far.
func (t *Trade) ConfirmedCount() int {
	count := 0
	for _, p := range t.Participants {
		if t.Confirmed[p] {
			count++
		}
	}
	return count
}

// HasParticipant returns whether the given identifier belongs to the
// trade's participant set.
func (t *Trade) HasParticipant(participant string) bool {
	for _, p := range t.Participants {
		if p == participant {
			return true
		}
	}
	return false
}

// IsActive returns whether the trade still accepts deposits and
// confirmations.
func (t *Trade) IsActive() bool {
	return t.Status == TradeStatusActive
}

// IsTerminal returns whether the trade reached an irrevocable state.
func (t *Trade) IsTerminal() bool {
	return t.Status.IsTerminal()
}

// IsExpired returns whether the trade's deadline has passed at the given
// clock reading. Deadlines are evaluated lazily, never proactively.
func (t *Trade) IsExpired(now time.Time) bool {
	return t.Deadline > 0 && now.After(time.Unix(t.Deadline, 0))
}

// DepositedAssets returns the entries currently held in custody, in
// participant order.
func (t *Trade) DepositedAssets() []Asset {
	var deposited []Asset
	for _, p := range t.Participants {
		for _, a := range t.Assets[p] {
			if a.Deposited {
				deposited = append(deposited, a)
			}
		}
	}
	return deposited
}

func (t *Trade) resetDeposits() {
	for p := range t.Assets {
		entries := t.Assets[p]
		for i := range entries {
			entries[i].Deposited = false
		}
	}
	t.DepositedCount = 0
}

func clampDuration(duration time.Duration) time.Duration {
	if duration == 0 {
		return DefaultTradeDuration
	}
	if duration < MinTradeDuration {
		return MinTradeDuration
	}
	if duration > MaxTradeDuration {
		return MaxTradeDuration
	}
	return duration
}
