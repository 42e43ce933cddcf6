package application

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/escrow-network/escrowd/internal/core/ports"
)

// Notification topics, one per observable trade transition.
const (
	TopicTradeCreated        = "TRADE_CREATED"
	TopicAssetDeposited      = "ASSET_DEPOSITED"
	TopicTradeConfirmed      = "TRADE_CONFIRMED"
	TopicTradeCompleted      = "TRADE_COMPLETED"
	TopicTradeCancelled      = "TRADE_CANCELLED"
	TopicAssetsReclaimed     = "ASSETS_RECLAIMED"
	TopicFeePaid             = "FEE_PAID"
	TopicFeeRateUpdated      = "FEE_RATE_UPDATED"
	TopicFeeRecipientUpdated = "FEE_RECIPIENT_UPDATED"
)

// event is a pending notification, collected during a mutating call and
// published only after the call's effects are persisted, so that each
// transition is notified exactly once.
type event struct {
	topic   string
	payload interface{}
}

func publishEvents(pubsub ports.SecurePubSub, events []event) {
	if pubsub == nil {
		return
	}
	for _, e := range events {
		message, err := json.Marshal(e.payload)
		if err != nil {
			log.WithError(err).WithField("topic", e.topic).
				Warn("failed to serialize notification payload")
			continue
		}
		if err := pubsub.Publish(e.topic, string(message)); err != nil {
			log.WithError(err).WithField("topic", e.topic).
				Warn("failed to publish notification")
		}
	}
}
