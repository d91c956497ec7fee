package address

import (
	"context"
	"errors"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/veloshop/checkout/internal/domain"
	"github.com/veloshop/checkout/internal/validate"
)

type Lookuper interface {
	Lookup(ctx context.Context, cep string) (*domain.Address, error)
}

// Service fronts the upstream lookup with a cache, request coalescing and a
// circuit breaker.
type Service struct {
	client  Lookuper
	cache   Cache
	sfg     singleflight.Group // prevents stampedes on the same CEP
	breaker *gobreaker.CircuitBreaker[*domain.Address]
	logger  *zap.Logger
}

func NewService(client Lookuper, cache Cache, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		breaker: gobreaker.NewCircuitBreaker[*domain.Address](gobreaker.Settings{
			Name: "viacep",
		}),
		logger: logger,
	}
}

func (s *Service) Lookup(ctx context.Context, cep string) (*domain.Address, error) {
	digits := validate.Digits(cep)
	if len(digits) != 8 {
		return nil, ErrInvalidCEP
	}

	v, err, _ := s.sfg.Do(digits, func() (interface{}, error) {
		addr, err := s.cache.Get(ctx, digits)
		if err == nil {
			return addr, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("address cache get failed", zap.Error(err))
		}

		addr, err = s.breaker.Execute(func() (*domain.Address, error) {
			return s.client.Lookup(ctx, digits)
		})
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), digits, addr); err != nil {
				s.logger.Warn("address cache set failed", zap.Error(err))
			}
		}()

		return addr, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Address), nil
}
