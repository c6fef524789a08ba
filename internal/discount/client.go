// Package discount resolves discount codes against the external discount
// service.
package discount

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/GaborIreHun/flightmanager/config"
	"github.com/GaborIreHun/flightmanager/internal/domain"
	"github.com/GaborIreHun/flightmanager/internal/logger"
	"github.com/GaborIreHun/flightmanager/internal/metrics"
)

const maxBodyBytes = 1 << 20

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a client whose every lookup is bounded by cfg.Timeout.
func NewClient(cfg config.DiscountConfig) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: cfg.Timeout}, cfg.BaseURL)
}

func NewClientWithHTTP(httpClient *http.Client, baseURL string) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

type discountResponse struct {
	Discount *decimal.Decimal `json:"discount"`
}

// Lookup returns the discount for code, or nil when the service has none.
// Transport failures and unexpected responses, including amounts that are
// negative or finer than a cent, wrap domain.ErrDiscountUnavailable; timeouts wrap domain.ErrDiscountTimeout.
func (c *Client) Lookup(ctx context.Context, code string) (*domain.Discount, error) {
	if code == "" {
		metrics.DiscountLookups.WithLabelValues(metrics.DiscountNone).Inc()
		return nil, nil
	}

	d, err := c.lookup(ctx, code)
	switch {
	case err != nil:
		metrics.DiscountLookups.WithLabelValues(metrics.DiscountError).Inc()
		logger.FromContext(ctx).Warn().Err(err).Str("discount_code", code).Msg("discount lookup failed")
	case d == nil:
		metrics.DiscountLookups.WithLabelValues(metrics.DiscountNone).Inc()
		logger.FromContext(ctx).Debug().Str("discount_code", code).Msg("no discount for code")
	default:
		metrics.DiscountLookups.WithLabelValues(metrics.DiscountApplied).Inc()
	}
	return d, err
}

func (c *Client) lookup(ctx context.Context, code string) (*domain.Discount, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url.PathEscape(code), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrDiscountUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrDiscountTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDiscountUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrDiscountUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrDiscountTimeout, err)
		}
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrDiscountUnavailable, err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}

	var payload discountResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", domain.ErrDiscountUnavailable, err)
	}
	if payload.Discount == nil {
		return nil, nil
	}
	if payload.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: negative discount %s", domain.ErrDiscountUnavailable, payload.Discount)
	}
	if !domain.HasPricePrecision(*payload.Discount) {
		return nil, fmt.Errorf("%w: discount %s has more than %d decimal places", domain.ErrDiscountUnavailable, payload.Discount, domain.PricePlaces)
	}
	return &domain.Discount{Amount: *payload.Discount}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
