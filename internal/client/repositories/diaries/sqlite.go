package diaries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
	"github.com/dmitrijs2005/tripdiary/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, ds []models.Diary) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM diaries`); err != nil {
		return fmt.Errorf("failed to clear diaries: %w", err)
	}

	query := `INSERT INTO diaries (id, position, folder_id, date, title, content, images, emotions, visibility, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i, d := range ds {
		images, err := marshalList(d.Images)
		if err != nil {
			return err
		}
		emotions, err := marshalList(d.Emotions)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, query,
			d.ID, i, d.FolderID, d.Date, d.Title, d.Content, images, emotions,
			string(d.Visibility), d.CreatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to insert diary %s: %w", d.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Diary, error) {
	query := `SELECT id, folder_id, date, title, content, images, emotions, visibility, created_at
			FROM diaries ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select diaries: %w", err)
	}
	defer rows.Close()

	result := []models.Diary{}
	for rows.Next() {
		var (
			d                   models.Diary
			images, emotions    string
			visibility, created string
		)
		if err := rows.Scan(&d.ID, &d.FolderID, &d.Date, &d.Title, &d.Content,
			&images, &emotions, &visibility, &created); err != nil {
			return nil, fmt.Errorf("failed to scan diary: %w", err)
		}
		if d.Images, err = unmarshalList(images); err != nil {
			return nil, fmt.Errorf("diary %s images: %w", d.ID, err)
		}
		if d.Emotions, err = unmarshalList(emotions); err != nil {
			return nil, fmt.Errorf("diary %s emotions: %w", d.ID, err)
		}
		d.Visibility = models.Visibility(visibility)
		if d.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("diary %s created_at: %w", d.ID, err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM diaries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count diaries: %w", err)
	}
	return n, nil
}

func marshalList(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalList(s string) ([]string, error) {
	out := []string{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
