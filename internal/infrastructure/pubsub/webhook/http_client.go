package webhookpubsub

import (
	"context"
	"io"
	"net/http"
	"strings"
)

type client struct {
	*http.Client
}

func newHTTPClient() *client {
	return &client{&http.Client{}}
}

// post delivers a JSON payload to a webhook endpoint. Cancelling the
// context aborts the request, including the reading of the response body.
func (c *client) post(
	ctx context.Context, url, bodyString string, header map[string]string,
) (int, string, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, url, strings.NewReader(bodyString),
	)
	if err != nil {
		return 0, "", err
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}

	rs, err := c.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return -1, "", err
	}
	return rs.StatusCode, string(bodyBytes), nil
}
