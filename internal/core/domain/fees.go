package domain

// FeeLedger tracks the flat per-participant fee configuration and the fees
// accumulated so far. Fee rate and recipient are global mutable settings,
// not trade parameters.
type FeeLedger struct {
	FlatFee     uint64
	Recipient   string
	Accumulated uint64
}

// Collect adds a collected fee payment to the accumulated balance.
func (f *FeeLedger) Collect(amount uint64) {
	f.Accumulated += amount
}

// Withdraw deducts the given amount from the accumulated balance, up to the
// balance itself.
func (f *FeeLedger) Withdraw(amount uint64) error {
	if amount > f.Accumulated {
		return ErrInsufficientFees
	}
	f.Accumulated -= amount
	return nil
}
