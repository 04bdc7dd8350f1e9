package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vbonduro/ecoleta/internal/domain"
)

type ItemStore struct {
	db DBTX
}

func NewItemStore(db DBTX) *ItemStore {
	return &ItemStore{db: db}
}

// Upsert inserts the item with the given id or overwrites its title and image.
func (s *ItemStore) Upsert(ctx context.Context, item domain.Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (id, title, image) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET title = excluded.title, image = excluded.image
	`, item.ID, item.Title, item.Image)
	if err != nil {
		return fmt.Errorf("failed to upsert item %d: %w", item.ID, err)
	}
	return nil
}

func (s *ItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	item := &domain.Item{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, image FROM items WHERE id = ?
	`, id).Scan(&item.ID, &item.Title, &item.Image)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

func (s *ItemStore) List(ctx context.Context) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, image FROM items ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer closeRows(rows)

	var items []*domain.Item
	for rows.Next() {
		item := &domain.Item{}
		if err := rows.Scan(&item.ID, &item.Title, &item.Image); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// ListTitlesByPointID returns the titles of the items associated with a point,
// in the store's natural join order.
func (s *ItemStore) ListTitlesByPointID(ctx context.Context, pointID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT items.title FROM items
		JOIN point_items ON items.id = point_items.item_id
		WHERE point_items.point_id = ?
	`, pointID)
	if err != nil {
		return nil, fmt.Errorf("failed to list point items: %w", err)
	}
	defer closeRows(rows)

	titles := make([]string, 0)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan item title: %w", err)
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item titles: %w", err)
	}

	return titles, nil
}
