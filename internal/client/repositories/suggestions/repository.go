// Package suggestions persists autocomplete ranks so they survive a restart.
package suggestions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/assettrack/internal/client/rankcache"
	"github.com/dmitrijs2005/assettrack/internal/dbx"
)

// Suggestion is one stored row. Rows come back in first-insertion order.
type Suggestion struct {
	FieldType rankcache.FieldType
	Name      string
	Rank      int
}

type Repository interface {
	// Increment adds one use of name, inserting it with rank 1 if new.
	Increment(ctx context.Context, ft rankcache.FieldType, name string) error
	// List returns every row in the order names were first stored.
	List(ctx context.Context) ([]Suggestion, error)
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Increment(ctx context.Context, ft rankcache.FieldType, name string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suggestions (field_type, name, rank) VALUES (?, ?, 1)
		ON CONFLICT(field_type, name) DO UPDATE SET rank = suggestions.rank + 1
	`, string(ft), name)
	if err != nil {
		return fmt.Errorf("failed to increment suggestion %s/%q: %w", ft, name, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Suggestion, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT field_type, name, rank FROM suggestions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	defer rows.Close()

	var result []Suggestion
	for rows.Next() {
		var (
			s  Suggestion
			ft string
		)
		if err := rows.Scan(&ft, &s.Name, &s.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion row: %w", err)
		}
		s.FieldType = rankcache.FieldType(ft)
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suggestion rows: %w", err)
	}
	return result, nil
}
