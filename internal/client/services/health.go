package services

import (
	"context"

	"github.com/dmitrijs2005/tripdiary/internal/client/client"
)

// HealthService reports whether the backend is reachable and owns the
// client's lifetime.
type HealthService interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type healthService struct {
	client   client.Client
	timeouts Timeouts
}

func NewHealthService(c client.Client, t Timeouts) HealthService {
	return &healthService{client: c, timeouts: t}
}

func (s *healthService) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.timeouts.Health)
	defer cancel()
	return s.client.Ping(ctx)
}

func (s *healthService) Close(ctx context.Context) error {
	return s.client.Close()
}
