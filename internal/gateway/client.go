package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Client forwards payment payloads to the external gateway. It never
// interprets the gateway's answer: status code and body are handed back
// verbatim so the caller can relay them.
type Client struct {
	url        string
	secretKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(url, secretKey string, logger *zap.Logger) *Client {
	return &Client{
		url:       url,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// Response carries the raw upstream answer, success or not.
type Response struct {
	StatusCode int
	Body       []byte
}

func (c *Client) Forward(ctx context.Context, payload []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	c.logger.Debug("gateway responded",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(body)),
	)
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// authHeader builds Basic auth from the secret key with an empty password.
func (c *Client) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.secretKey+":"))
}
