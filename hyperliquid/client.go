package hyperliquid

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const MainnetApiUrl = "https://api.hyperliquid.xyz"

// Client talks to the Hyperliquid info endpoint. Every query is a POST to
// /info with a typed request body.
type Client struct {
	http *resty.Client
}

func NewClient(baseUrl string) *Client {
	if baseUrl == "" {
		baseUrl = MainnetApiUrl
	}

	http := resty.New().
		SetBaseURL(strings.TrimSuffix(baseUrl, "/")).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			if resp.StatusCode() == 429 {
				if retryAfter := resp.Header().Get("Retry-After"); retryAfter != "" {
					if wait, err := time.ParseDuration(retryAfter + "s"); err == nil {
						return wait, nil
					}
				}
				return 10 * time.Second, nil
			}
			return 0, nil
		})

	return &Client{http: http}
}

type infoRequest struct {
	Type string `json:"type"`
	User string `json:"user,omitempty"`
}

func (c *Client) info(ctx context.Context, req infoRequest, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(out).
		Post("/info")
	if err != nil {
		return fmt.Errorf("info %q: %w", req.Type, err)
	}
	if resp.IsError() {
		return fmt.Errorf("info %q: %s: %s", req.Type, resp.Status(), resp.Body())
	}
	return nil
}

// ClearinghouseState returns the perp account state of a user: margin
// summary, withdrawable funds and open positions.
func (c *Client) ClearinghouseState(ctx context.Context, user string) (*ClearinghouseState, error) {
	var state ClearinghouseState
	if err := c.info(ctx, infoRequest{Type: "clearinghouseState", User: user}, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SpotClearinghouseState returns the spot token balances of a user.
func (c *Client) SpotClearinghouseState(ctx context.Context, user string) (*SpotClearinghouseState, error) {
	var state SpotClearinghouseState
	if err := c.info(ctx, infoRequest{Type: "spotClearinghouseState", User: user}, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// AllMids returns the current mid price of every traded coin.
func (c *Client) AllMids(ctx context.Context) (map[string]string, error) {
	var mids map[string]string
	if err := c.info(ctx, infoRequest{Type: "allMids"}, &mids); err != nil {
		return nil, err
	}
	return mids, nil
}

// Meta returns the perp universe, including per-coin size precision.
func (c *Client) Meta(ctx context.Context) (*Meta, error) {
	var meta Meta
	if err := c.info(ctx, infoRequest{Type: "meta"}, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
