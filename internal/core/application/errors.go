package application

import "errors"

var (
	// ErrReentrantCall is returned when a mutating operation is entered
	// while another one is still unwinding on the same call path.
	ErrReentrantCall = errors.New("reentrant call into a mutating operation")
	// ErrBatchTooLarge ...
	ErrBatchTooLarge = errors.New("batch exceeds the maximum number of items")
	// ErrEmptyBatch ...
	ErrEmptyBatch = errors.New("batch must contain at least one item")
	// ErrTooManyTrades is returned when querying the status of more than 10
	// trades at once.
	ErrTooManyTrades = errors.New("too many trade ids requested at once")
	// ErrNotAdministrator ...
	ErrNotAdministrator = errors.New("caller is not the administrator")
	// ErrNotFeeRecipient ...
	ErrNotFeeRecipient = errors.New("caller is not the designated fee recipient")
)
