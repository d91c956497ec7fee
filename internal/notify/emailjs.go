package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/veloshop/checkout/internal/config"
)

// Notification carries the customer's real contact data to the merchant. It
// is the only place those values travel; gateway payloads get masked copies.
type Notification struct {
	Email    string
	Phone    string
	Method   string
	Amount   string
	OrderRef string
	SentAt   time.Time
}

type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// EmailJSClient delivers notifications through the EmailJS REST API.
type EmailJSClient struct {
	cfg        config.EmailJSConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewEmailJSClient(cfg config.EmailJSConfig, logger *zap.Logger) *EmailJSClient {
	return &EmailJSClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (c *EmailJSClient) Send(ctx context.Context, n Notification) error {
	payload := emailJSRequest{
		ServiceID:   c.cfg.ServiceID,
		TemplateID:  c.cfg.TemplateID,
		UserID:      c.cfg.UserID,
		AccessToken: c.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"customer_email": n.Email,
			"customer_phone": n.Phone,
			"payment_method": n.Method,
			"amount":         n.Amount,
			"order_ref":      n.OrderRef,
			"date":           n.SentAt.Format("02/01/2006 15:04:05"),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("email delivery returned status %d", resp.StatusCode)
	}
	return nil
}
