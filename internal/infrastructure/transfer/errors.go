package transfer

import "errors"

var (
	// ErrTransferRejected is returned when the underlying ledger refused a
	// transfer, either with an explicit error or with a false return.
	ErrTransferRejected = errors.New("ledger rejected the transfer")

	// legacy offer verification failures. Each precondition surfaces its
	// own error so that a misconfigured offer is distinguishable from a
	// missing one.
	ErrOfferMissing      = errors.New("no sale offer registered for the legacy asset")
	ErrOfferInactive     = errors.New("sale offer is not active")
	ErrOfferNotZeroPrice = errors.New("sale offer is not zero-priced")
	ErrOfferWrongClaimer = errors.New("sale offer is not scoped to the custodian")
	ErrOfferWrongSeller  = errors.New("sale offer is not authored by the depositor")
)
