package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/veloshop/checkout/internal/domain"
	"github.com/veloshop/checkout/internal/pricing"
)

// pixDisplayWindow is how long the PIX code stays on screen before a new one
// must be generated.
const pixDisplayWindow = 15 * time.Minute

type OutcomeStatus string

const (
	OutcomeApproved   OutcomeStatus = "approved"
	OutcomeProcessing OutcomeStatus = "processing"
	OutcomePixCreated OutcomeStatus = "pix_created"
	OutcomeRejected   OutcomeStatus = "rejected"
)

// Outcome is the user-facing result of a payment submission.
type Outcome struct {
	Status    OutcomeStatus
	Message   string
	OrderRef  string
	PixCode   string
	PixExpiry time.Duration
}

// Dispatcher submits built payloads to the payments endpoint and interprets
// the gateway's answer per payment method.
type Dispatcher struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL string, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// gatewayResult holds the fields we interpret; everything else in the
// gateway's answer passes through untouched.
type gatewayResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Pix     *struct {
		QRCode string `json:"qrcode"`
	} `json:"pix"`
}

func (d *Dispatcher) Submit(ctx context.Context, st domain.CheckoutState, totals pricing.Totals) (*Outcome, error) {
	payload, err := Build(st, totals)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payment payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/payments/%s", d.baseURL, st.Payment.Route())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	orderRef := uuid.NewString()
	d.logger.Info("submitting payment",
		zap.String("method", st.Payment.String()),
		zap.String("order_ref", orderRef),
		zap.Int64("amount", pricing.MinorUnits(totals.Total)),
	)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	var result gatewayResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	outcome := interpret(st.Payment, ok, result)
	outcome.OrderRef = orderRef
	return outcome, nil
}

// interpret maps the gateway answer to a user-facing outcome. Gateway error
// messages pass through verbatim.
func interpret(method domain.PaymentMethod, ok bool, result gatewayResult) *Outcome {
	if !ok {
		return &Outcome{Status: OutcomeRejected, Message: errorMessage(result, method)}
	}

	switch method {
	case domain.PaymentPix:
		if result.Pix == nil || result.Pix.QRCode == "" {
			return &Outcome{Status: OutcomeRejected, Message: "could not obtain the PIX code, try again"}
		}
		return &Outcome{
			Status:    OutcomePixCreated,
			Message:   "PIX code generated, complete the payment before it expires",
			PixCode:   result.Pix.QRCode,
			PixExpiry: pixDisplayWindow,
		}
	case domain.PaymentCredit:
		switch result.Status {
		case "approved":
			return &Outcome{Status: OutcomeApproved, Message: "Payment approved! Order completed successfully."}
		case "pending":
			return &Outcome{Status: OutcomeProcessing, Message: "Payment processing. You will receive a confirmation shortly."}
		default:
			return &Outcome{Status: OutcomeRejected, Message: "Payment rejected. Check your card details."}
		}
	case domain.PaymentBoleto:
		if result.Status == "pending" {
			return &Outcome{Status: OutcomeProcessing, Message: "Boleto generated successfully! You will receive it by email."}
		}
		return &Outcome{Status: OutcomeRejected, Message: errorMessage(result, method)}
	default:
		return &Outcome{Status: OutcomeRejected, Message: ErrUnknownMethod.Error()}
	}
}

func errorMessage(result gatewayResult, method domain.PaymentMethod) string {
	if result.Error != "" {
		return result.Error
	}
	if result.Message != "" {
		return result.Message
	}
	switch method {
	case domain.PaymentBoleto:
		return "failed to generate boleto"
	default:
		return "failed to process payment"
	}
}
