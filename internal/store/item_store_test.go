package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/ecoleta/internal/db"
	"github.com/vbonduro/ecoleta/internal/domain"
)

func TestItemStoreListSeeded(t *testing.T) {
	d := db.OpenForTesting(t)
	items := NewItemStore(d)

	list, err := items.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 6)
	assert.Equal(t, "Lâmpadas", list[0].Title)
	assert.Equal(t, "Pilhas e Baterias", list[1].Title)
}

func TestItemStoreGetByID(t *testing.T) {
	d := db.OpenForTesting(t)
	items := NewItemStore(d)

	item, err := items.GetByID(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, int64(2), item.ID)
	assert.Equal(t, "Pilhas e Baterias", item.Title)
	assert.Equal(t, "baterias.svg", item.Image)
}

func TestItemStoreGetByID_NotFound(t *testing.T) {
	d := db.OpenForTesting(t)
	items := NewItemStore(d)

	item, err := items.GetByID(context.Background(), 99999)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestItemStoreUpsert(t *testing.T) {
	d := db.OpenForTesting(t)
	items := NewItemStore(d)
	ctx := context.Background()

	require.NoError(t, items.Upsert(ctx, domain.Item{ID: 1, Title: "Lâmpadas fluorescentes", Image: "lampadas.svg"}))
	require.NoError(t, items.Upsert(ctx, domain.Item{ID: 40, Title: "Vidros", Image: "vidros.svg"}))

	updated, err := items.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Lâmpadas fluorescentes", updated.Title)

	inserted, err := items.GetByID(ctx, 40)
	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, "Vidros", inserted.Title)
}

func TestItemStoreListTitlesByPointID(t *testing.T) {
	d := db.OpenForTesting(t)
	items := NewItemStore(d)
	ctx := context.Background()

	pointID := createTestPoint(t, d, "Recicla Rio", "Rio de Janeiro", "RJ", 1, 3)

	titles, err := items.ListTitlesByPointID(ctx, pointID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Lâmpadas", "Papéis e Papelão"}, titles)
}

func TestItemStoreListTitlesByPointID_NoItems(t *testing.T) {
	d := db.OpenForTesting(t)
	items := NewItemStore(d)

	pointID := createTestPoint(t, d, "Sem Itens", "Niterói", "RJ")

	titles, err := items.ListTitlesByPointID(context.Background(), pointID)
	require.NoError(t, err)
	assert.NotNil(t, titles)
	assert.Empty(t, titles)
}
