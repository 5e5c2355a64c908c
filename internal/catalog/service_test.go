package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func newTestCatalog(t *testing.T) (Service, *Repository, *db.Client) {
	t.Helper()
	conn, err := db.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())))
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}))
	client := db.Wrap(conn, config.DBDriverSQLite)
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRepository(conn)
	svc, err := NewService(repo, client, logger.Nop())
	require.NoError(t, err)
	return svc, repo, client
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	_, err := NewService(nil, nil, logger.Nop())
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestCatalog(t)
	ctx := context.Background()

	added, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultProducts()), added)

	added, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(DefaultProducts()), count)
}

func TestListAppliesFilterInDisplayOrder(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	ctx := context.Background()
	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	all, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	require.Equal(t, len(DefaultProducts()), all.Total)
	for i, p := range DefaultProducts() {
		assert.Equal(t, p.Name, all.Products[i].Name)
		assert.True(t, p.Price.Equal(all.Products[i].Price), p.Name)
	}

	vanilla, err := svc.List(ctx, Filter{Flavours: []string{"vanilla"}, MaxPrice: price("10")})
	require.NoError(t, err)
	require.Equal(t, 1, vanilla.Total)
	assert.Equal(t, "Vanilla Bean Wax Melt", vanilla.Products[0].Name)

	candles, err := svc.List(ctx, Filter{Query: "candle", Colors: []string{"white", "green"}})
	require.NoError(t, err)
	names := []string{}
	for _, p := range candles.Products {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Classic Vanilla Candle", "Mint Breeze Candle"}, names)
}

func TestListReportsDependencyFailure(t *testing.T) {
	svc, _, client := newTestCatalog(t)
	require.NoError(t, client.Close())

	_, err := svc.List(context.Background(), Filter{})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDependency))
}

func TestDefaultProductsHaveStableIDs(t *testing.T) {
	first := DefaultProducts()
	second := DefaultProducts()
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}
