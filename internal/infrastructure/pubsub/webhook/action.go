package webhookpubsub

// webhook action types, one per observable trade transition
const (
	TradeCreated WebhookAction = iota
	AssetDeposited
	TradeConfirmed
	TradeCompleted
	TradeCancelled
	AssetsReclaimed
	FeePaid
	FeeRateUpdated
	FeeRecipientUpdated
	AllActions
)

var (
	actionToString = map[WebhookAction]string{
		TradeCreated:        "TRADE_CREATED",
		AssetDeposited:      "ASSET_DEPOSITED",
		TradeConfirmed:      "TRADE_CONFIRMED",
		TradeCompleted:      "TRADE_COMPLETED",
		TradeCancelled:      "TRADE_CANCELLED",
		AssetsReclaimed:     "ASSETS_RECLAIMED",
		FeePaid:             "FEE_PAID",
		FeeRateUpdated:      "FEE_RATE_UPDATED",
		FeeRecipientUpdated: "FEE_RECIPIENT_UPDATED",
		AllActions:          "*",
	}
	stringToAction = map[string]WebhookAction{
		"TRADE_CREATED":         TradeCreated,
		"ASSET_DEPOSITED":       AssetDeposited,
		"TRADE_CONFIRMED":       TradeConfirmed,
		"TRADE_COMPLETED":       TradeCompleted,
		"TRADE_CANCELLED":       TradeCancelled,
		"ASSETS_RECLAIMED":      AssetsReclaimed,
		"FEE_PAID":              FeePaid,
		"FEE_RATE_UPDATED":      FeeRateUpdated,
		"FEE_RECIPIENT_UPDATED": FeeRecipientUpdated,
		"*":                     AllActions,
	}
)

type WebhookAction int

func WebhookActionFromString(actionStr string) (WebhookAction, bool) {
	action, ok := stringToAction[actionStr]
	return action, ok
}

func (wa WebhookAction) String() string {
	actionStr, ok := actionToString[wa]
	if !ok {
		actionStr = "UNKNOWN"
	}
	return actionStr
}
