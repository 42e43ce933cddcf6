// Package httpinterface exposes the daemon's operations over a JSON API.
package httpinterface

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/escrow-network/escrowd/internal/core/application"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

// RouterOpts tunes the HTTP interface.
type RouterOpts struct {
	// MutatingRatePerSecond throttles the side-effecting routes. Zero
	// disables throttling.
	MutatingRatePerSecond int
}

// NewRouter wires the trade, fee and webhook handlers on a chi router.
func NewRouter(
	tradeSvc application.TradeService,
	feeSvc application.FeeService,
	pubsub ports.SecurePubSub,
	opts RouterOpts,
) http.Handler {
	tradeHandler := newTradeHandler(tradeSvc)
	feeHandler := newFeeHandler(feeSvc)
	webhookHandler := newWebhookHandler(pubsub)

	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.MutatingRatePerSecond > 0 {
				r.Use(rateLimiter(opts.MutatingRatePerSecond))
			}
			r.Post("/trades", tradeHandler.createTrade)
			r.Post("/trades/{tradeId}/deposit", tradeHandler.depositAsset)
			r.Post("/trades/{tradeId}/deposits", tradeHandler.batchDepositAssets)
			r.Post("/trades/{tradeId}/confirm", tradeHandler.confirmTrade)
			r.Post("/trades/{tradeId}/cancel", tradeHandler.cancelTrade)
			r.Post("/trades/{tradeId}/reclaim", tradeHandler.reclaimAssets)

			r.Put("/fees/rate", feeHandler.setFlatFee)
			r.Put("/fees/recipient", feeHandler.setFeeRecipient)
			r.Post("/fees/withdraw", feeHandler.withdrawFees)

			r.Post("/webhooks", webhookHandler.subscribe)
			r.Delete("/webhooks/{id}", webhookHandler.unsubscribe)
		})

		r.Get("/trades/statuses", tradeHandler.getMultipleTradeStatuses)
		r.Get("/trades/{tradeId}", tradeHandler.getTradeInfo)
		r.Get("/trades/{tradeId}/status", tradeHandler.getTradeStatus)
		r.Get("/fees", feeHandler.getFeeInfo)
	})

	return r
}
