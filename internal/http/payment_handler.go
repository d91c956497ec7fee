package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/veloshop/checkout/internal/gateway"
	"github.com/veloshop/checkout/internal/notify"
)

const contactFallback = "not provided"

var allowedMethods = map[string]bool{
	"pix":         true,
	"credit-card": true,
	"boleto":      true,
}

type Forwarder interface {
	Forward(ctx context.Context, payload []byte) (*gateway.Response, error)
}

type NotificationDispatcher interface {
	Dispatch(note notify.Notification)
}

// PaymentHandler proxies payment payloads to the external gateway. The
// customer's real contact fields never leave through the gateway path; they
// only travel on the notification email.
type PaymentHandler struct {
	forwarder Forwarder
	notifier  NotificationDispatcher
	maskEmail string
	maskPhone string
	timeout   time.Duration
	maxBody   int64
	logger    *zap.Logger
}

func NewPaymentHandler(forwarder Forwarder, notifier NotificationDispatcher, maskEmail, maskPhone string, timeout time.Duration, maxBody int64, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		forwarder: forwarder,
		notifier:  notifier,
		maskEmail: maskEmail,
		maskPhone: maskPhone,
		timeout:   timeout,
		maxBody:   maxBody,
		logger:    logger,
	}
}

// POST /api/payments/{method}
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	method := chi.URLParam(r, "method")
	if !allowedMethods[method] {
		respondError(w, http.StatusNotFound, "unknown_method", "unsupported payment method")
		return
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	realEmail, realPhone := extractContact(body)
	amount := extractAmount(body)

	// The decoded map is already a private copy of the request; overwriting
	// it never touches what the caller sent.
	maskContact(body, h.maskEmail, h.maskPhone)

	h.notifier.Dispatch(notify.Notification{
		Email:    realEmail,
		Phone:    realPhone,
		Method:   method,
		Amount:   amount,
		OrderRef: getRequestID(r.Context()),
		SentAt:   time.Now(),
	})

	payload, err := json.Marshal(body)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "encode_failed", "could not encode payload")
		return
	}

	resp, err := h.forwarder.Forward(ctx, payload)
	if err != nil {
		h.logger.Error("gateway forward failed",
			zap.String("method", method),
			zap.Error(err),
		)
		respondError(w, http.StatusBadGateway, "gateway_unreachable", "payment gateway did not respond")
		return
	}

	h.logger.Info("payment forwarded",
		zap.String("method", method),
		zap.String("amount", amount),
		zap.Int("gateway_status", resp.StatusCode),
	)

	// Relay the gateway's answer verbatim, non-2xx included.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		h.logger.Warn("failed to write relayed response", zap.Error(err))
	}
}

// extractContact pulls the real email and phone from the payload, nested
// under customer or at the top level.
func extractContact(body map[string]any) (email, phone string) {
	email, phone = contactFallback, contactFallback
	fields := body
	if customer, ok := body["customer"].(map[string]any); ok {
		fields = customer
	}
	if v, ok := fields["email"].(string); ok && v != "" {
		email = v
	}
	if v, ok := fields["phone"].(string); ok && v != "" {
		phone = v
	}
	return email, phone
}

// maskContact overwrites the contact fields wherever they live so the real
// values never reach the gateway.
func maskContact(body map[string]any, maskEmail, maskPhone string) {
	if customer, ok := body["customer"].(map[string]any); ok {
		customer["email"] = maskEmail
		customer["phone"] = maskPhone
		return
	}
	body["email"] = maskEmail
	body["phone"] = maskPhone
}

func extractAmount(body map[string]any) string {
	for _, key := range []string{"amount", "value"} {
		switch v := body[key].(type) {
		case json.Number:
			return v.String()
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%v", v)
		}
	}
	return "0.00"
}
