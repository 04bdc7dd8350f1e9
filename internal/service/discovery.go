package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/vbonduro/ecoleta/internal/domain"
)

// itemRepository is the subset of store.ItemStore that DiscoveryService requires.
type itemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	ListTitlesByPointID(ctx context.Context, pointID int64) ([]string, error)
}

// pointRepository is the subset of store.PointStore that DiscoveryService requires.
type pointRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Point, error)
	List(ctx context.Context, f domain.PointFilter) ([]*domain.Point, error)
}

// ItemView is an item as exposed to clients, with an absolute image URL.
type ItemView struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
	Title string `json:"title"`
}

type ItemTitle struct {
	Title string `json:"title"`
}

// PointDetail bundles a point with the titles of the items it accepts.
type PointDetail struct {
	Point *domain.Point `json:"point"`
	Items []ItemTitle   `json:"items"`
}

type DiscoveryService struct {
	itemStore  itemRepository
	pointStore pointRepository
	uploadsURL string
	logger     *slog.Logger
}

// NewDiscoveryService builds item image URLs as <publicURL>/uploads/<image>.
func NewDiscoveryService(itemStore itemRepository, pointStore pointRepository, publicURL string, logger *slog.Logger) *DiscoveryService {
	return &DiscoveryService{
		itemStore:  itemStore,
		pointStore: pointStore,
		uploadsURL: strings.TrimSuffix(publicURL, "/") + "/uploads/",
		logger:     logger,
	}
}

func (s *DiscoveryService) imageURL(image string) string {
	return s.uploadsURL + url.PathEscape(image)
}

func (s *DiscoveryService) view(item *domain.Item) ItemView {
	return ItemView{ID: item.ID, Image: s.imageURL(item.Image), Title: item.Title}
}

func (s *DiscoveryService) ListItems(ctx context.Context) ([]ItemView, error) {
	items, err := s.itemStore.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, s.view(item))
	}
	return views, nil
}

func (s *DiscoveryService) GetItem(ctx context.Context, id int64) (*ItemView, error) {
	item, err := s.itemStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	v := s.view(item)
	return &v, nil
}

// ListPoints returns the stored points matching f, unmodified.
func (s *DiscoveryService) ListPoints(ctx context.Context, f domain.PointFilter) ([]*domain.Point, error) {
	points, err := s.pointStore.List(ctx, f)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("points listed",
		"city", f.City != nil, "uf", f.Region != nil, "items", f.Items != nil, "results", len(points))
	return points, nil
}

func (s *DiscoveryService) GetPoint(ctx context.Context, id int64) (*PointDetail, error) {
	point, err := s.pointStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get point: %w", err)
	}
	if point == nil {
		return nil, ErrPointNotFound
	}

	titles, err := s.itemStore.ListTitlesByPointID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list point items: %w", err)
	}

	items := make([]ItemTitle, 0, len(titles))
	for _, t := range titles {
		items = append(items, ItemTitle{Title: t})
	}

	return &PointDetail{Point: point, Items: items}, nil
}
