package memory

import (
	"context"
	"testing"

	"github.com/simaogato/inventory-ledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepository_Items(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository()

	item := domain.NewItem("101", "iPhone 15")
	require.NoError(t, repo.CreateItem(ctx, item))
	require.NoError(t, repo.CreateItem(ctx, domain.NewItem("007", "Pixel")))

	err := repo.CreateItem(ctx, domain.NewItem("101", "duplicate"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := repo.GetItem(ctx, "101")
	require.NoError(t, err)
	assert.Same(t, item, got, "repository must hand out the live object")

	_, err = repo.GetItem(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Contains(t, err.Error(), "not found")

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "007", items[0].ID)
	assert.Equal(t, "101", items[1].ID)
}

func TestCatalogRepository_Storages(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository()

	spb := domain.NewStorage("SPB-02", "Petr Petrov")
	require.NoError(t, repo.CreateStorage(ctx, spb))
	require.NoError(t, repo.CreateStorage(ctx, domain.NewStorage("MSK-01", "Ivan Ivanov")))

	assert.ErrorIs(t, repo.CreateStorage(ctx, domain.NewStorage("SPB-02", "")), domain.ErrAlreadyExists)

	got, err := repo.GetStorage(ctx, "SPB-02")
	require.NoError(t, err)
	got.ItemsCount = 12
	assert.Equal(t, 12, spb.ItemsCount)

	_, err = repo.GetStorage(ctx, "EKB-03")
	assert.ErrorIs(t, err, domain.ErrStorageNotFound)

	storages, err := repo.ListStorages(ctx)
	require.NoError(t, err)
	require.Len(t, storages, 2)
	assert.Equal(t, "MSK-01", storages[0].ID)
}

func TestCatalogRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewCatalogRepository()

	assert.ErrorIs(t, repo.CreateItem(ctx, domain.NewItem("1", "")), context.Canceled)
	_, err := repo.GetStorage(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.ListItems(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
