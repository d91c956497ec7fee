package address

import (
	"context"
	"errors"

	"github.com/veloshop/checkout/internal/domain"
)

type Cache interface {
	Get(ctx context.Context, cep string) (*domain.Address, error)
	Set(ctx context.Context, cep string, addr *domain.Address) error
}

var ErrCacheMiss = errors.New("cache miss")
