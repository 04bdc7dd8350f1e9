// Package catalog loads the item catalog and installs it into the store and
// the uploads directory.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/vbonduro/ecoleta/internal/assets"
	"github.com/vbonduro/ecoleta/internal/domain"
)

//go:embed default.yaml
var defaultCatalog []byte

type Entry struct {
	ID    int64  `yaml:"id"`
	Title string `yaml:"title"`
	Image string `yaml:"image"`
	// Source is the image file to install, relative to the catalog file.
	// When empty, the bundled icon named Image is used.
	Source string `yaml:"source,omitempty"`
}

type file struct {
	Items []Entry `yaml:"items"`
}

// Default returns the built-in catalog.
func Default() []Entry {
	entries, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in catalog: %v", err))
	}
	return entries
}

// Parse decodes a YAML catalog and checks each entry.
func Parse(data []byte) ([]Entry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[int64]bool, len(f.Items))
	for i, e := range f.Items {
		switch {
		case e.ID <= 0:
			return nil, fmt.Errorf("catalog entry %d: id must be positive", i)
		case e.Title == "":
			return nil, fmt.Errorf("catalog entry %d: title is required", i)
		case e.Image == "" || path.Base(e.Image) != e.Image:
			return nil, fmt.Errorf("catalog entry %d: image must be a plain file name", i)
		case seen[e.ID]:
			return nil, fmt.Errorf("catalog entry %d: duplicate id %d", i, e.ID)
		}
		seen[e.ID] = true
	}
	return f.Items, nil
}

// itemUpserter is the subset of store.ItemStore that Seeder requires.
type itemUpserter interface {
	Upsert(ctx context.Context, item domain.Item) error
}

type Seeder struct {
	items  itemUpserter
	assets assets.Store
	logger *slog.Logger
}

func NewSeeder(items itemUpserter, as assets.Store, logger *slog.Logger) *Seeder {
	return &Seeder{items: items, assets: as, logger: logger}
}

// Seed upserts every entry and copies its image into the asset store.
// sources resolves Entry.Source paths; it may be nil when no entry sets one.
func (s *Seeder) Seed(ctx context.Context, entries []Entry, sources fs.FS) error {
	for _, e := range entries {
		if err := s.items.Upsert(ctx, domain.Item{ID: e.ID, Title: e.Title, Image: e.Image}); err != nil {
			return fmt.Errorf("failed to seed item %d: %w", e.ID, err)
		}

		if err := s.installImage(ctx, e, sources); err != nil {
			return err
		}
		s.logger.Info("item seeded", "item_id", e.ID, "image", e.Image)
	}
	return nil
}

func (s *Seeder) installImage(ctx context.Context, e Entry, sources fs.FS) error {
	fsys, name := fs.FS(assets.Icons), path.Join("icons", e.Image)
	if e.Source != "" {
		if sources == nil {
			return fmt.Errorf("item %d: source %q given without a source directory", e.ID, e.Source)
		}
		fsys, name = sources, e.Source
	}

	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) && e.Source == "" {
		s.logger.Warn("no bundled image for item", "item_id", e.ID, "image", e.Image)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open image for item %d: %w", e.ID, err)
	}
	defer f.Close()

	if err := s.assets.Put(ctx, e.Image, f); err != nil {
		return fmt.Errorf("failed to install image for item %d: %w", e.ID, err)
	}
	return nil
}

// EnsureImages installs the bundled image of every entry whose image is not
// already in the asset store. Existing files are left untouched and no item
// rows are written.
func (s *Seeder) EnsureImages(ctx context.Context, entries []Entry) error {
	installed := 0
	for _, e := range entries {
		rc, _, err := s.assets.Get(ctx, e.Image)
		if err == nil {
			rc.Close()
			continue
		}
		if !errors.Is(err, assets.ErrNotFound) {
			return fmt.Errorf("failed to check image for item %d: %w", e.ID, err)
		}
		if err := s.installImage(ctx, Entry{ID: e.ID, Image: e.Image}, nil); err != nil {
			return err
		}
		installed++
	}
	if installed > 0 {
		s.logger.Info("bundled item images installed", "count", installed)
	}
	return nil
}
