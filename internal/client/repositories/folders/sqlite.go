// Package folders persists trip folders in the local SQLite database.
package folders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
	"github.com/dmitrijs2005/tripdiary/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll rewrites the table; position keeps the order of fs.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, fs []models.Folder) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM folders`); err != nil {
		return fmt.Errorf("failed to clear folders: %w", err)
	}

	query := `INSERT INTO folders (id, position, title, start_date, end_date, image, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?)`

	for i, f := range fs {
		tags := f.Tags
		if tags == nil {
			tags = []string{}
		}
		b, err := json.Marshal(tags)
		if err != nil {
			return err
		}
		if _, err := r.db.ExecContext(ctx, query, f.ID, i, f.Title, f.StartDate, f.EndDate, f.Image, string(b)); err != nil {
			return fmt.Errorf("failed to insert folder %d: %w", f.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Folder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, start_date, end_date, image, tags FROM folders ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to select folders: %w", err)
	}
	defer rows.Close()

	result := []models.Folder{}
	for rows.Next() {
		var f models.Folder
		var tags string
		if err := rows.Scan(&f.ID, &f.Title, &f.StartDate, &f.EndDate, &f.Image, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &f.Tags); err != nil {
			return nil, fmt.Errorf("folder %d tags: %w", f.ID, err)
		}
		if len(f.Tags) == 0 {
			f.Tags = nil
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
