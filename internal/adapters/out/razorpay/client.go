// Package razorpay talks to the Razorpay Orders API and authenticates the
// signatures Razorpay attaches to checkout callbacks and webhooks.
package razorpay

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/core/ports"

	rzp "github.com/razorpay/razorpay-go"
)

const DefaultBaseURL = "https://api.razorpay.com"

type Config struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	BaseURL       string
	Timeout       time.Duration
}

// Client implements ports.PaymentGateway on top of the Razorpay SDK.
type Client struct {
	api    *rzp.Client
	logger *slog.Logger
}

// NewClient builds an SDK client for the given key pair. BaseURL and Timeout
// default to the live API and ten seconds.
//
// Example:
//
//	client := razorpay.NewClient(razorpay.Config{KeyID: id, KeySecret: secret}, logger)
//	order, err := client.CreateOrder(ctx, ports.GatewayOrderRequest{Amount: 18000, Currency: "INR"})
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	api := rzp.NewClient(cfg.KeyID, cfg.KeySecret)
	api.Order.Request.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	api.Order.Request.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:    api,
		logger: logger.With("component", "razorpay"),
	}
}

// CreateOrder opens a Razorpay order for req.Amount paise. Transport failures
// and rejected requests are reported as ports.ErrPaymentGateway.
func (c *Client) CreateOrder(ctx context.Context, req ports.GatewayOrderRequest) (ports.GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return ports.GatewayOrder{}, err
	}

	resp, err := c.api.Order.Create(map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	}, nil)
	if err != nil {
		c.logger.ErrorContext(ctx, "create order rejected", "receipt", req.Receipt, "error", err)
		return ports.GatewayOrder{}, fmt.Errorf("%w: %w", ports.ErrPaymentGateway, err)
	}

	out := ports.GatewayOrder{
		ID:       stringField(resp, "id"),
		Amount:   int64Field(resp, "amount"),
		Currency: stringField(resp, "currency"),
		Receipt:  stringField(resp, "receipt"),
		Status:   stringField(resp, "status"),
	}
	if out.ID == "" {
		return ports.GatewayOrder{}, fmt.Errorf("%w: order without id", ports.ErrPaymentGateway)
	}

	c.logger.InfoContext(ctx, "gateway order created", "gateway_order_id", out.ID, "amount", out.Amount)
	return out, nil
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

// int64Field reads a JSON number, which the SDK decodes as float64.
func int64Field(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
