// Package backend wraps the shop's backend REST API: order creation and
// the product catalog. The storefront owns no data the backend serves; it
// is a consumer only.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"github.com/veldbloem/storefront/internal/metrics"
	"github.com/veldbloem/storefront/internal/models"
	"github.com/veldbloem/storefront/internal/patterns"
)

const serviceName = "storefront"

// Client is a thin HTTP wrapper over the backend API.
type Client struct {
	http             *resty.Client
	baseURL          string
	productsCircuit  *patterns.CircuitBreakerWrapper
	productsBulkhead *patterns.Bulkhead
}

// New builds a client for the backend at baseURL. Retries are disabled:
// order submission must fire exactly once per attempt, and product reads
// go through the circuit breaker instead.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = patterns.DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetTimeout(timeout).
			SetRetryCount(0),
		baseURL:          baseURL,
		productsCircuit:  patterns.NewCircuitBreaker("Products", serviceName),
		productsBulkhead: patterns.NewBulkhead(10, "products", serviceName),
	}
}

type orderSuccessBody struct {
	OrderNumber string `json:"order_number"`
}

type orderFailureBody struct {
	Message string `json:"message"`
	Data    struct {
		CooldownMinutes int `json:"cooldown_minutes"`
	} `json:"data"`
}

// CreateOrder posts the order payload and normalizes the outcome into the
// closed OrderError taxonomy. Exactly one request is made per call.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest) (models.OrderAck, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(c.baseURL + "/orders")
	metrics.BackendRequestDuration.WithLabelValues("create_order").Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithError(err).Warn("Order submission transport failure")
		return models.OrderAck{}, transport(err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		var body orderFailureBody
		// A malformed 429 body still means rate limited; the cooldown
		// just falls back to the caller's default.
		_ = json.Unmarshal(resp.Body(), &body)
		return models.OrderAck{}, rateLimited(body.Data.CooldownMinutes)
	}

	if resp.IsSuccess() {
		var body orderSuccessBody
		if err := json.Unmarshal(resp.Body(), &body); err != nil || body.OrderNumber == "" {
			log.WithField("status", resp.StatusCode()).Warn("Order response missing order_number")
			return models.OrderAck{}, transport(fmt.Errorf("unexpected order response shape"))
		}
		return models.OrderAck{OrderNumber: body.OrderNumber}, nil
	}

	var body orderFailureBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		return models.OrderAck{}, rejected(body.Message)
	}
	return models.OrderAck{}, transport(fmt.Errorf("backend returned status %d", resp.StatusCode()))
}

// ListProducts fetches one page of the catalog, filtered by category/type
// and active flag. Reads are the high-volume path, so they run through
// the bulkhead and circuit breaker.
func (c *Client) ListProducts(ctx context.Context, query models.ProductQuery) (models.ProductPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 20
	}

	params := map[string]string{
		"page":      strconv.Itoa(query.Page),
		"page_size": strconv.Itoa(query.PageSize),
	}
	if query.Category != "" {
		params["category"] = query.Category
	}
	if query.Type != "" {
		params["type"] = query.Type
	}
	if query.ActiveOnly {
		params["active"] = "true"
	}

	var page models.ProductPage
	err := c.productsBulkhead.Execute(func() error {
		_, cbErr := c.productsCircuit.Execute(func() (interface{}, error) {
			start := time.Now()
			resp, httpErr := c.http.R().
				SetContext(ctx).
				SetQueryParams(params).
				Get(c.baseURL + "/products")
			metrics.BackendRequestDuration.WithLabelValues("list_products").Observe(time.Since(start).Seconds())

			if httpErr != nil {
				return nil, fmt.Errorf("HTTP error: %w", httpErr)
			}
			if resp.StatusCode() != http.StatusOK {
				return nil, fmt.Errorf("products endpoint returned status %d", resp.StatusCode())
			}
			if err := json.Unmarshal(resp.Body(), &page); err != nil {
				return nil, fmt.Errorf("failed to parse products response: %w", err)
			}
			return page, nil
		})
		return patterns.FormatError("Products", cbErr)
	})
	if err != nil {
		return models.ProductPage{}, err
	}
	return page, nil
}
