package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/veloshop/checkout/internal/address"
	"github.com/veloshop/checkout/internal/domain"
)

type AddressLookuper interface {
	Lookup(ctx context.Context, cep string) (*domain.Address, error)
}

type AddressHandler struct {
	service AddressLookuper
	timeout time.Duration
	logger  *zap.Logger
}

func NewAddressHandler(service AddressLookuper, timeout time.Duration, logger *zap.Logger) *AddressHandler {
	return &AddressHandler{
		service: service,
		timeout: timeout,
		logger:  logger,
	}
}

// GET /api/address/{cep}
func (h *AddressHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cep := chi.URLParam(r, "cep")

	addr, err := h.service.Lookup(ctx, cep)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, addr)
	case errors.Is(err, address.ErrInvalidCEP):
		respondError(w, http.StatusBadRequest, "invalid_cep", err.Error())
	case errors.Is(err, address.ErrNotFound):
		respondError(w, http.StatusNotFound, "cep_not_found", "postal code not found, check and try again")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		respondError(w, http.StatusServiceUnavailable, "lookup_unavailable", "postal lookup temporarily unavailable")
	default:
		h.logger.Error("address lookup failed", zap.String("cep", cep), zap.Error(err))
		respondError(w, http.StatusBadGateway, "lookup_failed", "postal lookup failed")
	}
}
