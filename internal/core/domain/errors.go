package domain

import "errors"

var (
	// validation errors

	// ErrInvalidParticipantCount is thrown when creating a trade with less
	// than MinParticipants or more than MaxParticipants participants.
	ErrInvalidParticipantCount = errors.New("number of participants must be in range [2, 10]")
	// ErrDuplicateParticipant ...
	ErrDuplicateParticipant = errors.New("participants must be unique")
	// ErrTooManyAssets is thrown when a participant commits more than
	// MaxAssetsPerParticipant entries.
	ErrTooManyAssets = errors.New("too many assets committed by a single participant")
	// ErrEmptyManifest ...
	ErrEmptyManifest = errors.New("manifest must commit at least one asset")
	// ErrUnknownManifestParty is thrown when a manifest entry names a source
	// or destination outside the participant set.
	ErrUnknownManifestParty = errors.New("manifest entry refers to an unknown participant")
	// ErrInvalidAssetQuantity ...
	ErrInvalidAssetQuantity = errors.New("asset quantity must be positive")
	// ErrInvalidAssetReference ...
	ErrInvalidAssetReference = errors.New("asset reference must not be empty")

	// authorization errors

	// ErrNotParticipant is thrown when the caller is not part of the trade's
	// participant set.
	ErrNotParticipant = errors.New("caller is not a participant of the trade")

	// state errors

	// ErrTradeNotActive ...
	ErrTradeNotActive = errors.New("trade is not active")
	// ErrTradeExpired is thrown when depositing or confirming past the
	// trade's deadline.
	ErrTradeExpired = errors.New("trade deadline has passed")
	// ErrTradeNotExpired is thrown when reclaiming from a trade that is
	// still active and whose deadline has not passed.
	ErrTradeNotExpired = errors.New("trade is still active and not expired")
	// ErrAssetAlreadyDeposited ...
	ErrAssetAlreadyDeposited = errors.New("asset has already been deposited")
	// ErrAlreadyConfirmed ...
	ErrAlreadyConfirmed = errors.New("participant has already confirmed the trade")
	// ErrAssetsNotDeposited is thrown when confirming before having
	// deposited every own committed asset.
	ErrAssetsNotDeposited = errors.New("participant has not deposited all committed assets")
	// ErrAlreadyReclaimed ...
	ErrAlreadyReclaimed = errors.New("participant has already reclaimed their assets")
	// ErrNothingToReclaim ...
	ErrNothingToReclaim = errors.New("participant has no deposited assets to reclaim")
	// ErrFeeNotPaid ...
	ErrFeeNotPaid = errors.New("participant has not paid the trade fee")

	// lookup errors

	// ErrTradeNotFound ...
	ErrTradeNotFound = errors.New("trade not found")
	// ErrAssetNotCommitted is thrown when a deposited descriptor matches no
	// manifest entry bound to the caller.
	ErrAssetNotCommitted = errors.New("asset does not match any committed manifest entry")

	// fee errors

	// ErrWrongFeePayment is thrown when the fee attached to a deposit does
	// not match the configured flat fee.
	ErrWrongFeePayment = errors.New("attached fee payment does not match the configured fee")
	// ErrInsufficientFees is thrown when withdrawing more than the
	// accumulated fee balance.
	ErrInsufficientFees = errors.New("withdrawal amount exceeds accumulated fees")
)
