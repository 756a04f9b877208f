package folders

import (
	"context"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
)

// Repository stores the folder list as one ordered snapshot.
type Repository interface {
	ReplaceAll(ctx context.Context, fs []models.Folder) error
	GetAll(ctx context.Context) ([]models.Folder, error)
}
