package webhookpubsub_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	webhookpubsub "github.com/escrow-network/escrowd/internal/infrastructure/pubsub/webhook"
)

type recordingEndpoint struct {
	locker   sync.Mutex
	payloads []string
	headers  []http.Header
}

func (e *recordingEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	e.locker.Lock()
	e.payloads = append(e.payloads, string(body))
	e.headers = append(e.headers, r.Header.Clone())
	e.locker.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (e *recordingEndpoint) received() []string {
	e.locker.Lock()
	defer e.locker.Unlock()
	return append([]string(nil), e.payloads...)
}

func TestSubscribe(t *testing.T) {
	t.Parallel()

	svc := webhookpubsub.NewWebhookPubSubService()

	id, err := svc.Subscribe("TRADE_COMPLETED", "http://localhost:8080", "")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	subs := svc.ListSubscriptionsForTopic("TRADE_COMPLETED")
	require.Len(t, subs, 1)
	require.Equal(t, id, subs[0].Id())
	require.False(t, subs[0].IsSecured())

	_, err = svc.Subscribe("NOT_A_TOPIC", "http://localhost:8080", "")
	require.ErrorIs(t, err, webhookpubsub.ErrInvalidTopic)

	_, err = svc.Subscribe("TRADE_COMPLETED", "not a uri", "")
	require.Error(t, err)

	require.NoError(t, svc.Unsubscribe("TRADE_COMPLETED", id))
	require.Empty(t, svc.ListSubscriptionsForTopic("TRADE_COMPLETED"))
}

func TestPublish(t *testing.T) {
	t.Parallel()

	endpoint := &recordingEndpoint{}
	server := httptest.NewServer(endpoint)
	t.Cleanup(server.Close)

	svc := webhookpubsub.NewWebhookPubSubService()
	_, err := svc.Subscribe("TRADE_COMPLETED", server.URL, "")
	require.NoError(t, err)

	require.NoError(t, svc.Publish("TRADE_COMPLETED", `{"trade_id":1}`))
	require.Equal(t, []string{`{"trade_id":1}`}, endpoint.received())

	// other topics must not reach this hook
	require.NoError(t, svc.Publish("TRADE_CANCELLED", `{"trade_id":2}`))
	require.Len(t, endpoint.received(), 1)
}

func TestPublishToCatchAllSubscription(t *testing.T) {
	t.Parallel()

	endpoint := &recordingEndpoint{}
	server := httptest.NewServer(endpoint)
	t.Cleanup(server.Close)

	svc := webhookpubsub.NewWebhookPubSubService()
	_, err := svc.Subscribe("*", server.URL, "")
	require.NoError(t, err)

	require.NoError(t, svc.Publish("TRADE_CREATED", `{"trade_id":1}`))
	require.NoError(t, svc.Publish("FEE_PAID", `{"amount":10}`))
	require.Len(t, endpoint.received(), 2)
}

func TestPublishSignsSecuredHooks(t *testing.T) {
	t.Parallel()

	endpoint := &recordingEndpoint{}
	server := httptest.NewServer(endpoint)
	t.Cleanup(server.Close)

	svc := webhookpubsub.NewWebhookPubSubService()
	id, err := svc.Subscribe("ASSET_DEPOSITED", server.URL, "s3cr3t")
	require.NoError(t, err)

	subs := svc.ListSubscriptionsForTopic("ASSET_DEPOSITED")
	require.Len(t, subs, 1)
	require.Equal(t, id, subs[0].Id())
	require.True(t, subs[0].IsSecured())

	require.NoError(t, svc.Publish("ASSET_DEPOSITED", `{}`))

	endpoint.locker.Lock()
	defer endpoint.locker.Unlock()
	require.Len(t, endpoint.headers, 1)
	auth := endpoint.headers[0].Get("Authorization")
	require.True(t, strings.HasPrefix(auth, "Bearer "))
}
