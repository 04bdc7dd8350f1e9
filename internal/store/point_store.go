package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vbonduro/ecoleta/internal/domain"
)

type PointStore struct {
	db DBTX
}

func NewPointStore(db DBTX) *PointStore {
	return &PointStore{db: db}
}

// Create inserts p and returns the generated id. The caller's struct is not
// modified.
func (s *PointStore) Create(ctx context.Context, p domain.Point) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO points (image, name, email, whatsapp, latitude, longitude, city, uf)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Image, p.Name, p.Email, p.WhatsApp, p.Latitude, p.Longitude, p.City, p.UF)
	if err != nil {
		return 0, fmt.Errorf("failed to create point: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

func (s *PointStore) GetByID(ctx context.Context, id int64) (*domain.Point, error) {
	p := &domain.Point{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+pointColumns+` FROM points WHERE points.id = ?
	`, id).Scan(&p.ID, &p.Image, &p.Name, &p.Email, &p.WhatsApp, &p.Latitude, &p.Longitude, &p.City, &p.UF)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get point: %w", err)
	}

	return p, nil
}

// List returns the points matching every predicate present in f.
func (s *PointStore) List(ctx context.Context, f domain.PointFilter) ([]*domain.Point, error) {
	query, args := buildPointQuery(f)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list points: %w", err)
	}
	defer closeRows(rows)

	points := make([]*domain.Point, 0)
	for rows.Next() {
		p := &domain.Point{}
		if err := rows.Scan(&p.ID, &p.Image, &p.Name, &p.Email, &p.WhatsApp, &p.Latitude, &p.Longitude, &p.City, &p.UF); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating points: %w", err)
	}

	return points, nil
}
