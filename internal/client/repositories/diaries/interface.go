package diaries

import (
	"context"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
)

type Repository interface {
	// ReplaceAll drops every stored diary and writes ds in order.
	ReplaceAll(ctx context.Context, ds []models.Diary) error
	// GetAll returns the diaries in stored order.
	GetAll(ctx context.Context) ([]models.Diary, error)
	Count(ctx context.Context) (int, error)
}
