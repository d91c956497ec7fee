package dispatcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/veloshop/checkout/internal/domain"
)

func fakeBackend(t *testing.T, wantPath string, status int, body any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wantPath {
			t.Errorf("unexpected path %q, want %q", r.URL.Path, wantPath)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
}

func TestSubmit_CreditApproved(t *testing.T) {
	srv := fakeBackend(t, "/api/payments/credit-card", http.StatusOK, map[string]string{"status": "approved"})
	defer srv.Close()

	d := New(srv.URL, zap.NewNop())
	st := testState(domain.PaymentCredit)

	outcome, err := d.Submit(context.Background(), st, testTotals(st))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if outcome.Status != OutcomeApproved {
		t.Errorf("status = %s, want %s", outcome.Status, OutcomeApproved)
	}
	if outcome.OrderRef == "" {
		t.Error("expected a generated order reference")
	}
}

func TestSubmit_CreditPending(t *testing.T) {
	srv := fakeBackend(t, "/api/payments/credit-card", http.StatusOK, map[string]string{"status": "pending"})
	defer srv.Close()

	d := New(srv.URL, zap.NewNop())
	st := testState(domain.PaymentCredit)

	outcome, err := d.Submit(context.Background(), st, testTotals(st))
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != OutcomeProcessing {
		t.Errorf("status = %s, want %s", outcome.Status, OutcomeProcessing)
	}
}

func TestSubmit_CreditRejectedStatus(t *testing.T) {
	srv := fakeBackend(t, "/api/payments/credit-card", http.StatusOK, map[string]string{"status": "refused"})
	defer srv.Close()

	d := New(srv.URL, zap.NewNop())
	st := testState(domain.PaymentCredit)

	outcome, err := d.Submit(context.Background(), st, testTotals(st))
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != OutcomeRejected {
		t.Errorf("status = %s, want %s", outcome.Status, OutcomeRejected)
	}
	if outcome.Message != "Payment rejected. Check your card details." {
		t.Errorf("unexpected message %q", outcome.Message)
	}
}

func TestSubmit_GatewayErrorMessagePropagatesVerbatim(t *testing.T) {
	srv := fakeBackend(t, "/api/payments/credit-card", http.StatusUnprocessableEntity,
		map[string]string{"message": "card issuer declined transaction 0042"})
	defer srv.Close()

	d := New(srv.URL, zap.NewNop())
	st := testState(domain.PaymentCredit)

	outcome, err := d.Submit(context.Background(), st, testTotals(st))
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != OutcomeRejected {
		t.Errorf("status = %s, want %s", outcome.Status, OutcomeRejected)
	}
	if outcome.Message != "card issuer declined transaction 0042" {
		t.Errorf("gateway message not relayed verbatim: %q", outcome.Message)
	}
}

func TestSubmit_PixSuccessCarriesCodeAndExpiry(t *testing.T) {
	srv := fakeBackend(t, "/api/payments/pix", http.StatusOK, map[string]any{
		"status": "pending",
		"pix":    map[string]string{"qrcode": "00020126hello"},
	})
	defer srv.Close()

	d := New(srv.URL, zap.NewNop())
	st := testState(domain.PaymentPix)

	outcome, err := d.Submit(context.Background(), st, testTotals(st))
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != OutcomePixCreated {
		t.Fatalf("status = %s, want %s", outcome.Status, OutcomePixCreated)
	}
	if outcome.PixCode != "00020126hello" {
		t.Errorf("pix code = %q", outcome.PixCode)
	}
	if outcome.PixExpiry != 15*time.Minute {
		t.Errorf("pix expiry = %s, want 15m", outcome.PixExpiry)
	}
}

func TestSubmit_PixWithoutCodeIsRejected(t *testing.T) {
	srv := fakeBackend(t, "/api/payments/pix", http.StatusOK, map[string]string{"status": "pending"})
	defer srv.Close()

	d := New(srv.URL, zap.NewNop())
	st := testState(domain.PaymentPix)

	outcome, err := d.Submit(context.Background(), st, testTotals(st))
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != OutcomeRejected {
		t.Errorf("status = %s, want %s", outcome.Status, OutcomeRejected)
	}
}

func TestSubmit_BoletoPendingSucceeds(t *testing.T) {
	srv := fakeBackend(t, "/api/payments/boleto", http.StatusOK, map[string]string{"status": "pending"})
	defer srv.Close()

	d := New(srv.URL, zap.NewNop())
	st := testState(domain.PaymentBoleto)

	outcome, err := d.Submit(context.Background(), st, testTotals(st))
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != OutcomeProcessing {
		t.Errorf("status = %s, want %s", outcome.Status, OutcomeProcessing)
	}
	if outcome.Message != "Boleto generated successfully! You will receive it by email." {
		t.Errorf("unexpected message %q", outcome.Message)
	}
}

func TestSubmit_BoletoNonPendingIsRejected(t *testing.T) {
	srv := fakeBackend(t, "/api/payments/boleto", http.StatusOK, map[string]string{"status": "approved"})
	defer srv.Close()

	d := New(srv.URL, zap.NewNop())
	st := testState(domain.PaymentBoleto)

	outcome, err := d.Submit(context.Background(), st, testTotals(st))
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Status != OutcomeRejected {
		t.Errorf("status = %s, want %s", outcome.Status, OutcomeRejected)
	}
}

func TestSubmit_TransportFailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	d := New(srv.URL, zap.NewNop())
	st := testState(domain.PaymentPix)

	if _, err := d.Submit(context.Background(), st, testTotals(st)); err == nil {
		t.Fatal("expected transport error")
	}
}
