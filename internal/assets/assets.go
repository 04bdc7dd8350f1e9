package assets

import (
	"context"
	"embed"
	"errors"
	"io"
)

// ErrNotFound is returned by Store.Get when no file exists under the name.
var ErrNotFound = errors.New("asset not found")

// Store holds the image files referenced by items.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Get(ctx context.Context, name string) (io.ReadCloser, string, error)
}

// Icons are the bundled images for the default item catalog.
//
//go:embed icons/*.svg
var Icons embed.FS
