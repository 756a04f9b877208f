package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tripdiary/internal/client/client"
	"github.com/dmitrijs2005/tripdiary/internal/client/models"
	"github.com/dmitrijs2005/tripdiary/internal/logging"
)

type FeedService interface {
	Public(ctx context.Context) ([]models.PublicDiary, error)
	// Best returns the first n public diaries.
	Best(ctx context.Context, n int) ([]models.PublicDiary, error)
}

type feedService struct {
	client   client.Client
	timeouts Timeouts
	log      logging.Logger
}

func NewFeedService(c client.Client, t Timeouts, l logging.Logger) FeedService {
	return &feedService{client: c, timeouts: t, log: l.With("module", "feed")}
}

func (s *feedService) Public(ctx context.Context) ([]models.PublicDiary, error) {
	ctx, cancel := withTimeout(ctx, s.timeouts.List)
	defer cancel()

	items, err := s.client.ListPublicDiaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("public diaries: %w", err)
	}
	s.log.Debug(ctx, "public diaries fetched", "count", len(items))
	return items, nil
}

func (s *feedService) Best(ctx context.Context, n int) ([]models.PublicDiary, error) {
	items, err := s.Public(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return items, nil
}
