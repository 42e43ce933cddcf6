package httpinterface

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/escrow-network/escrowd/internal/stats"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger logs every request with its route, status and duration and
// feeds the HTTP request counters.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		stats.HTTPRequests.WithLabelValues(
			route, strconv.Itoa(recorder.status),
		).Inc()
		log.WithFields(log.Fields{
			"method":   r.Method,
			"route":    route,
			"status":   recorder.status,
			"duration": time.Since(start).String(),
		}).Debug("request served")
	})
}

// rateLimiter throttles mutating routes with a leaky-bucket limiter.
func rateLimiter(perSecond int) func(http.Handler) http.Handler {
	rl := ratelimit.New(perSecond)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rl.Take()
			next.ServeHTTP(w, r)
		})
	}
}
