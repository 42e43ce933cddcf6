// Package inmemoryledger provides an embedded AssetLedger, used by tests
// and by single-node deployments that do not talk to an external ledger
// service.
package inmemoryledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/escrow-network/escrowd/internal/core/ports"
)

type unitKey struct {
	reference string
	unitId    uint64
}

type holding struct {
	reference string
	account   string
}

type semiKey struct {
	reference string
	unitId    uint64
	account   string
}

// Ledger is a mutex-guarded in-process asset ledger.
type Ledger struct {
	locker sync.Mutex

	balances map[holding]uint64
	owners   map[unitKey]string
	semi     map[semiKey]uint64
	offers   map[unitKey]*ports.Offer
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[holding]uint64),
		owners:   make(map[unitKey]string),
		semi:     make(map[semiKey]uint64),
		offers:   make(map[unitKey]*ports.Offer),
	}
}

func (l *Ledger) TransferFunds(
	_ context.Context, reference, from, to string, amount uint64,
) (bool, error) {
	l.locker.Lock()
	defer l.locker.Unlock()

	src := holding{reference, from}
	if l.balances[src] < amount {
		// insufficient balance is signalled with a false return, not an
		// error, mirroring the external ledgers that behave this way
		return false, nil
	}
	l.balances[src] -= amount
	l.balances[holding{reference, to}] += amount
	return true, nil
}

func (l *Ledger) TransferUnit(
	_ context.Context, reference, from, to string, unitId uint64,
) error {
	l.locker.Lock()
	defer l.locker.Unlock()

	return l.transferUnit(reference, from, to, unitId)
}

func (l *Ledger) TransferUnitAmount(
	_ context.Context, reference, from, to string, unitId, amount uint64,
) error {
	l.locker.Lock()
	defer l.locker.Unlock()

	src := semiKey{reference, unitId, from}
	if l.semi[src] < amount {
		return fmt.Errorf(
			"account %s holds insufficient amount of unit %d of %s",
			from, unitId, reference,
		)
	}
	l.semi[src] -= amount
	l.semi[semiKey{reference, unitId, to}] += amount
	return nil
}

func (l *Ledger) GetOffer(
	_ context.Context, reference string, unitId uint64,
) (*ports.Offer, error) {
	l.locker.Lock()
	defer l.locker.Unlock()

	offer, ok := l.offers[unitKey{reference, unitId}]
	if !ok {
		return nil, nil
	}
	copied := *offer
	return &copied, nil
}

func (l *Ledger) ClaimOffer(
	_ context.Context, reference string, unitId uint64, buyer string,
) error {
	l.locker.Lock()
	defer l.locker.Unlock()

	key := unitKey{reference, unitId}
	offer, ok := l.offers[key]
	if !ok || !offer.Active {
		return fmt.Errorf("no active offer for unit %d of %s", unitId, reference)
	}
	if offer.Buyer != buyer {
		return fmt.Errorf("offer for unit %d of %s is not claimable by %s",
			unitId, reference, buyer)
	}
	if err := l.transferUnit(reference, offer.Seller, buyer, unitId); err != nil {
		return err
	}
	delete(l.offers, key)
	return nil
}

// Fund credits a fungible balance, MintUnit assigns a unique unit to an
// owner, MintUnitAmount credits a semi-fungible balance and RegisterOffer
// registers a sale offer. They model the ledger-side setup that happens
// outside the daemon.

func (l *Ledger) Fund(reference, account string, amount uint64) {
	l.locker.Lock()
	defer l.locker.Unlock()
	l.balances[holding{reference, account}] += amount
}

func (l *Ledger) MintUnit(reference string, unitId uint64, owner string) {
	l.locker.Lock()
	defer l.locker.Unlock()
	l.owners[unitKey{reference, unitId}] = owner
}

func (l *Ledger) MintUnitAmount(
	reference string, unitId uint64, owner string, amount uint64,
) {
	l.locker.Lock()
	defer l.locker.Unlock()
	l.semi[semiKey{reference, unitId, owner}] += amount
}

func (l *Ledger) RegisterOffer(
	reference string, unitId uint64, offer ports.Offer,
) {
	l.locker.Lock()
	defer l.locker.Unlock()
	copied := offer
	l.offers[unitKey{reference, unitId}] = &copied
}

// Balance returns the fungible balance of an account.
func (l *Ledger) Balance(reference, account string) uint64 {
	l.locker.Lock()
	defer l.locker.Unlock()
	return l.balances[holding{reference, account}]
}

// UnitOwner returns the current owner of a unique unit.
func (l *Ledger) UnitOwner(reference string, unitId uint64) string {
	l.locker.Lock()
	defer l.locker.Unlock()
	return l.owners[unitKey{reference, unitId}]
}

// UnitAmountOf returns the semi-fungible balance of an account.
func (l *Ledger) UnitAmountOf(
	reference string, unitId uint64, account string,
) uint64 {
	l.locker.Lock()
	defer l.locker.Unlock()
	return l.semi[semiKey{reference, unitId, account}]
}

func (l *Ledger) transferUnit(reference, from, to string, unitId uint64) error {
	key := unitKey{reference, unitId}
	owner, ok := l.owners[key]
	if !ok {
		return fmt.Errorf("unknown unit %d of %s", unitId, reference)
	}
	if owner != from {
		return fmt.Errorf("account %s does not own unit %d of %s",
			from, unitId, reference)
	}
	l.owners[key] = to
	return nil
}

var _ ports.AssetLedger = (*Ledger)(nil)
