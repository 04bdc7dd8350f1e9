package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/vbonduro/ecoleta/internal/domain"
)

type PointItemStore struct {
	db DBTX
}

func NewPointItemStore(db DBTX) *PointItemStore {
	return &PointItemStore{db: db}
}

// CreateBatch inserts all rows with a single statement. An empty batch is a
// no-op.
func (s *PointItemStore) CreateBatch(ctx context.Context, rows []domain.PointItem) error {
	if len(rows) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("(?, ?), ", len(rows)), ", ")
	args := make([]any, 0, len(rows)*2)
	for _, r := range rows {
		args = append(args, r.PointID, r.ItemID)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO point_items (point_id, item_id) VALUES `+placeholders, args...); err != nil {
		return fmt.Errorf("failed to create point items: %w", err)
	}

	return nil
}

func (s *PointItemStore) ListByPointID(ctx context.Context, pointID int64) ([]domain.PointItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT point_id, item_id FROM point_items WHERE point_id = ?
	`, pointID)
	if err != nil {
		return nil, fmt.Errorf("failed to list point items: %w", err)
	}
	defer closeRows(rows)

	var links []domain.PointItem
	for rows.Next() {
		var l domain.PointItem
		if err := rows.Scan(&l.PointID, &l.ItemID); err != nil {
			return nil, fmt.Errorf("failed to scan point item: %w", err)
		}
		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating point items: %w", err)
	}

	return links, nil
}
