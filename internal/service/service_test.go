package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vbonduro/ecoleta/internal/db"
	"github.com/vbonduro/ecoleta/internal/store"
)

const testPublicURL = "http://localhost:3333"

const testPlaceholder = "https://example.com/placeholder.jpg"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServices struct {
	db        *sql.DB
	discovery *DiscoveryService
	writer    *RegistrationWriter
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	d := db.OpenForTesting(t)
	logger := discardLogger()

	return testServices{
		db:        d,
		discovery: NewDiscoveryService(store.NewItemStore(d), store.NewPointStore(d), testPublicURL, logger),
		writer:    NewRegistrationWriter(store.NewTxManager(d), testPlaceholder, logger),
	}
}

func ptr[T any](v T) *T { return &v }

func validRequest(city, uf string, items ...int64) PointRequest {
	return PointRequest{
		Name:      ptr("Mercado X"),
		Email:     ptr("x@example.com"),
		WhatsApp:  ptr("21999999999"),
		Latitude:  ptr(-22.9),
		Longitude: ptr(-43.2),
		City:      ptr(city),
		UF:        ptr(uf),
		Items:     items,
	}
}

func register(t *testing.T, w *RegistrationWriter, req PointRequest) int64 {
	t.Helper()
	reg, err := w.Register(context.Background(), req)
	require.NoError(t, err)
	return reg.Point.ID
}
