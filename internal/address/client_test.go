package address

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestClientLookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/01310100/json/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())

	addr, err := c.Lookup(context.Background(), "01310-100")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if addr.Street != "Avenida Paulista" || addr.City != "São Paulo" || addr.State != "SP" {
		t.Errorf("unexpected address: %+v", addr)
	}
}

func TestClientLookup_ErrorFlagMeansNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"erro": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())

	if _, err := c.Lookup(context.Background(), "99999999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClientLookup_ErrorFlagAsString(t *testing.T) {
	// Newer upstream versions report the flag as a string.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"erro": "true"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())

	if _, err := c.Lookup(context.Background(), "99999999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClientLookup_RejectsShortCEP(t *testing.T) {
	c := NewClient("http://unused", zap.NewNop())

	if _, err := c.Lookup(context.Background(), "0131"); !errors.Is(err, ErrInvalidCEP) {
		t.Errorf("expected ErrInvalidCEP, got %v", err)
	}
}

func TestClientLookup_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())

	if _, err := c.Lookup(context.Background(), "01310100"); err == nil {
		t.Fatal("expected error on upstream 500")
	}
}
