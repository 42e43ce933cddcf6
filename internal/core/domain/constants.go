package domain

import "time"

const (
	// MinParticipants is the smallest participant set a trade accepts.
	MinParticipants = 2
	// MaxParticipants is the largest participant set a trade accepts.
	MaxParticipants = 10
	// MaxAssetsPerParticipant bounds the committed entries of a single
	// participant within one trade.
	MaxAssetsPerParticipant = 10
	// MaxBatchSize bounds the number of items of a batch deposit.
	MaxBatchSize = 20

	// MinTradeDuration and MaxTradeDuration clamp the requested trade
	// duration. DefaultTradeDuration is used when none is given.
	MinTradeDuration     = 24 * time.Hour
	MaxTradeDuration     = 30 * 24 * time.Hour
	DefaultTradeDuration = 7 * 24 * time.Hour
)

// TradeStatus represents the different statuses that a trade can assume.
type TradeStatus int

const (
	TradeStatusUndefined TradeStatus = iota
	TradeStatusActive
	TradeStatusExecuted
	TradeStatusCancelled
	TradeStatusReclaiming
	TradeStatusReclaimed
)

var tradeStatusToString = map[TradeStatus]string{
	TradeStatusUndefined:  "UNDEFINED",
	TradeStatusActive:     "ACTIVE",
	TradeStatusExecuted:   "EXECUTED",
	TradeStatusCancelled:  "CANCELLED",
	TradeStatusReclaiming: "RECLAIMING",
	TradeStatusReclaimed:  "RECLAIMED",
}

func (s TradeStatus) String() string {
	str, ok := tradeStatusToString[s]
	if !ok {
		return "UNKNOWN"
	}
	return str
}

// IsTerminal returns whether the status accepts no further mutation.
func (s TradeStatus) IsTerminal() bool {
	return s == TradeStatusExecuted ||
		s == TradeStatusCancelled ||
		s == TradeStatusReclaimed
}
