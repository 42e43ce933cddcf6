// Package restledger implements the AssetLedger client of a remote ledger
// service exposing a JSON API. Requests go through a circuit breaker so
// that a down ledger stops being hammered.
package restledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/escrow-network/escrowd/internal/core/ports"
	"github.com/escrow-network/escrowd/pkg/circuitbreaker"
)

const requestTimeout = 15 * time.Second

type client struct {
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

// NewClient returns an AssetLedger talking to the ledger service at the
// given base URL.
func NewClient(baseURL string) ports.AssetLedger {
	return &client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		cb:         circuitbreaker.NewCircuitBreaker("ledger"),
	}
}

type transferRequest struct {
	Reference string `json:"reference"`
	From      string `json:"from"`
	To        string `json:"to"`
	UnitId    uint64 `json:"unit_id,omitempty"`
	Amount    uint64 `json:"amount,omitempty"`
}

type transferResponse struct {
	Ok     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

type offerResponse struct {
	Seller string `json:"seller"`
	Buyer  string `json:"buyer"`
	Price  uint64 `json:"price"`
	Active bool   `json:"active"`
}

func (c *client) TransferFunds(
	ctx context.Context, reference, from, to string, amount uint64,
) (bool, error) {
	var resp transferResponse
	err := c.post(ctx, "/v1/transfers", transferRequest{
		Reference: reference, From: from, To: to, Amount: amount,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Ok, nil
}

func (c *client) TransferUnit(
	ctx context.Context, reference, from, to string, unitId uint64,
) error {
	var resp transferResponse
	err := c.post(ctx, "/v1/unit-transfers", transferRequest{
		Reference: reference, From: from, To: to, UnitId: unitId,
	}, &resp)
	if err != nil {
		return err
	}
	if !resp.Ok {
		return fmt.Errorf("unit transfer rejected: %s", resp.Reason)
	}
	return nil
}

func (c *client) TransferUnitAmount(
	ctx context.Context, reference, from, to string, unitId, amount uint64,
) error {
	var resp transferResponse
	err := c.post(ctx, "/v1/unit-amount-transfers", transferRequest{
		Reference: reference, From: from, To: to, UnitId: unitId, Amount: amount,
	}, &resp)
	if err != nil {
		return err
	}
	if !resp.Ok {
		return fmt.Errorf("unit amount transfer rejected: %s", resp.Reason)
	}
	return nil
}

func (c *client) GetOffer(
	ctx context.Context, reference string, unitId uint64,
) (*ports.Offer, error) {
	url := fmt.Sprintf("%s/v1/offers/%s/%d", c.baseURL, reference, unitId)
	res, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ledger returned status %d", res.StatusCode)
	}

	var offer offerResponse
	if err := json.NewDecoder(res.Body).Decode(&offer); err != nil {
		return nil, err
	}
	return &ports.Offer{
		Seller: offer.Seller,
		Buyer:  offer.Buyer,
		Price:  offer.Price,
		Active: offer.Active,
	}, nil
}

func (c *client) ClaimOffer(
	ctx context.Context, reference string, unitId uint64, buyer string,
) error {
	var resp transferResponse
	path := fmt.Sprintf("/v1/offers/%s/%d/claim", reference, unitId)
	err := c.post(ctx, path, map[string]string{"buyer": buyer}, &resp)
	if err != nil {
		return err
	}
	if !resp.Ok {
		return fmt.Errorf("offer claim rejected: %s", resp.Reason)
	}
	return nil
}

func (c *client) post(
	ctx context.Context, path string, body, out interface{},
) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	res, err := c.do(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("ledger returned status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *client) do(
	ctx context.Context, method, url string, body []byte,
) (*http.Response, error) {
	res, err := c.cb.Execute(func() (interface{}, error) {
		var reader *bytes.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		} else {
			reader = bytes.NewReader(nil)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	return res.(*http.Response), nil
}

