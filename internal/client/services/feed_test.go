package services

import (
	"context"
	"slices"
	"testing"

	"github.com/dmitrijs2005/tripdiary/internal/client/client"
	"github.com/dmitrijs2005/tripdiary/internal/client/models"
	"github.com/dmitrijs2005/tripdiary/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sorted(xs []string) []string {
	out := slices.Clone(xs)
	slices.Sort(out)
	return out
}

func TestFeed(t *testing.T) {
	fc := &fakeClient{Feed: []models.PublicDiary{{ID: "1"}, {ID: "2"}, {ID: "3"}}}
	svc := NewFeedService(fc, DefaultTimeouts(), logging.Discard())

	all, err := svc.Public(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	best, err := svc.Best(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []models.PublicDiary{{ID: "1"}, {ID: "2"}}, best)

	best, err = svc.Best(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, best, 3)

	fc.FeedErr = client.ErrUnavailable
	_, err = svc.Best(context.Background(), 1)
	require.ErrorIs(t, err, client.ErrUnavailable)
}

func TestHealth(t *testing.T) {
	fc := &fakeClient{}
	svc := NewHealthService(fc, DefaultTimeouts())
	require.NoError(t, svc.Ping(context.Background()))

	fc.PingErr = client.ErrUnavailable
	require.ErrorIs(t, svc.Ping(context.Background()), client.ErrUnavailable)
	require.NoError(t, svc.Close(context.Background()))
}
