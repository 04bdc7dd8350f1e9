package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/ecoleta/internal/domain"
	"github.com/vbonduro/ecoleta/internal/store"
)

// txRunner is the subset of store.TxManager that RegistrationWriter requires.
type txRunner interface {
	WithinTx(ctx context.Context, fn func(tx store.TxStores) error) error
}

// PointRequest is a registration payload. Pointer fields distinguish a
// missing value from a zero one.
type PointRequest struct {
	Name      *string  `json:"name"`
	Email     *string  `json:"email"`
	WhatsApp  *string  `json:"whatsapp"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	City      *string  `json:"city"`
	UF        *string  `json:"uf"`
	Items     []int64  `json:"items"`
}

// Validate checks that every required field is present, in payload order.
func (r *PointRequest) Validate() error {
	required := []struct {
		name    string
		present bool
	}{
		{"name", r.Name != nil},
		{"email", r.Email != nil},
		{"whatsapp", r.WhatsApp != nil},
		{"latitude", r.Latitude != nil},
		{"longitude", r.Longitude != nil},
		{"city", r.City != nil},
		{"uf", r.UF != nil},
	}
	for _, f := range required {
		if !f.present {
			return &MissingFieldError{Field: f.name}
		}
	}
	return nil
}

// Registration echoes what was submitted: the stored point fields plus the
// raw item id list.
type Registration struct {
	Point domain.Point `json:"point"`
	Items []int64      `json:"items"`
}

type RegistrationWriter struct {
	tx               txRunner
	placeholderImage string
	logger           *slog.Logger
}

func NewRegistrationWriter(tx txRunner, placeholderImage string, logger *slog.Logger) *RegistrationWriter {
	return &RegistrationWriter{tx: tx, placeholderImage: placeholderImage, logger: logger}
}

// Register stores a new point and its item associations in one transaction.
// If any association cannot be stored, the point is not stored either.
func (w *RegistrationWriter) Register(ctx context.Context, req PointRequest) (*Registration, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	point := domain.Point{
		Image:     w.placeholderImage,
		Name:      *req.Name,
		Email:     *req.Email,
		WhatsApp:  *req.WhatsApp,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		City:      *req.City,
		UF:        *req.UF,
	}

	items := req.Items
	if items == nil {
		items = []int64{}
	}

	err := w.tx.WithinTx(ctx, func(tx store.TxStores) error {
		id, err := tx.Points.Create(ctx, point)
		if err != nil {
			return err
		}
		point.ID = id

		if err := tx.PointItems.CreateBatch(ctx, pointItems(id, items)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register point: %w", err)
	}

	w.logger.Info("point registered", "point_id", point.ID, "uf", point.UF, "items", len(items))
	return &Registration{Point: point, Items: items}, nil
}

// pointItems pairs pointID with each distinct item id, keeping first-seen order.
func pointItems(pointID int64, itemIDs []int64) []domain.PointItem {
	seen := make(map[int64]bool, len(itemIDs))
	rows := make([]domain.PointItem, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		if seen[itemID] {
			continue
		}
		seen[itemID] = true
		rows = append(rows, domain.PointItem{PointID: pointID, ItemID: itemID})
	}
	return rows
}
