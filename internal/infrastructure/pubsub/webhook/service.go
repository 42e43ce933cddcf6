package webhookpubsub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/escrow-network/escrowd/internal/core/ports"
	"github.com/escrow-network/escrowd/pkg/circuitbreaker"
)

const requestTimeout = 10 * time.Second

var (
	// ErrInvalidTopic is returned when subscribing for an unknown topic.
	ErrInvalidTopic = errors.New("topic is of unknown type")
)

type webhookService struct {
	store      *webhookStore
	httpClient *client
	cb         *gobreaker.CircuitBreaker
}

// NewWebhookPubSubService returns a SecurePubSub delivering notifications
// to registered webhook endpoints. Payloads are signed with HS256 when the
// subscription carries a secret.
func NewWebhookPubSubService() ports.SecurePubSub {
	return &webhookService{
		store:      newWebhookStore(),
		httpClient: newHTTPClient(),
		cb:         circuitbreaker.NewCircuitBreaker("webhook endpoints"),
	}
}

func (ws *webhookService) Subscribe(topic, endpoint, secret string) (string, error) {
	actionType, ok := stringToAction[topic]
	if !ok {
		return "", ErrInvalidTopic
	}

	hook, err := NewWebhook(actionType, endpoint, secret)
	if err != nil {
		return "", err
	}

	return ws.store.add(hook), nil
}

func (ws *webhookService) Unsubscribe(_, id string) error {
	ws.store.remove(id)
	return nil
}

func (ws *webhookService) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	actionType, ok := WebhookActionFromString(topic)
	if !ok {
		return nil
	}
	hooks := ws.store.byAction(actionType)
	subs := make([]ports.Subscription, len(hooks))
	for i, h := range hooks {
		subs[i] = h
	}
	return subs
}

// Publish makes a POST request to every webhook endpoint registered for the
// given topic. It adopts a circuit breaker approach in order to maximize
// the chances that every webhook gets invoked without errors.
func (ws *webhookService) Publish(topic string, message string) error {
	actionType, ok := WebhookActionFromString(topic)
	if !ok {
		return ErrInvalidTopic
	}

	hooks := ws.store.byAction(actionType)

	eg := &errgroup.Group{}
	for i := range hooks {
		hook := hooks[i]
		eg.Go(func() error { return ws.doRequest(hook, message) })
	}
	return eg.Wait()
}

func (ws *webhookService) doRequest(hook *Webhook, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if hook.IsSecured() {
			token := jwt.New(jwt.SigningMethodHS256)
			secret := []byte(hook.Secret)
			tokenString, _ := token.SignedString(secret)
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.httpClient.post(ctx, hook.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("endpoint returned: %s", resp)
		}
		return nil, nil
	})

	return err
}

