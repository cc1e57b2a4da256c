package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"watches-backend/internal/catalog/domain"
	catalogdto "watches-backend/internal/catalog/dto"
	"watches-backend/internal/catalog/repository"
	orderdomain "watches-backend/internal/order/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	uc        CatalogUsecase
	db        *gorm.DB
	watch     *domain.Product
	retired   *domain.Product
	express   *domain.DeliveryService
	suspended *domain.DeliveryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Category{}, &domain.Product{}, &domain.DeliveryService{},
		&orderdomain.Order{}, &orderdomain.OrderItem{}))

	repo := repository.NewCatalogRepository(db)
	ctx := context.Background()

	dive := &domain.Category{Name: "Dive"}
	require.NoError(t, repo.CreateCategory(ctx, dive))

	f := &fixture{
		uc:        NewCatalogUsecase(repo),
		db:        db,
		watch:     &domain.Product{Name: "Submariner", Price: 9100, IsActive: true, CategoryID: &dive.ID},
		retired:   &domain.Product{Name: "Explorer I 36mm", Price: 7000, IsActive: false},
		express:   &domain.DeliveryService{Name: "Armoured Express", EstimatedDays: "1-2", IsAvailable: true},
		suspended: &domain.DeliveryService{Name: "Sea Freight", EstimatedDays: "20-30", IsAvailable: false},
	}
	require.NoError(t, repo.CreateProduct(ctx, f.watch))
	require.NoError(t, repo.CreateProduct(ctx, f.retired))
	require.NoError(t, repo.CreateDeliveryService(ctx, f.express))
	require.NoError(t, repo.CreateDeliveryService(ctx, f.suspended))
	return f
}

func TestListProductsOnlyActive(t *testing.T) {
	f := newFixture(t)

	products, err := f.uc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Submariner", products[0].Name)
	assert.Equal(t, "Dive", products[0].CategoryName)
}

func TestListDeliveryServicesCountsOrders(t *testing.T) {
	f := newFixture(t)
	for i, n := range []string{"ORD-1", "ORD-2"} {
		require.NoError(t, f.db.Create(&orderdomain.Order{
			ID: n, OrderNumber: n, CustomerName: "c", Status: "pending",
			DeliveryServiceID: &f.express.ID, TotalAmount: float64(i),
		}).Error)
	}

	services, err := f.uc.ListDeliveryServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Armoured Express", services[0].Name)
	assert.Equal(t, int64(2), services[0].OrderCount)
}

func TestAssignAndRemoveDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	product, err := f.uc.AssignDelivery(ctx, f.watch.ID, f.express.ID)
	require.NoError(t, err)
	require.NotNil(t, product.DeliveryServiceID)
	assert.Equal(t, f.express.ID, *product.DeliveryServiceID)

	product, err = f.uc.RemoveDelivery(ctx, f.watch.ID)
	require.NoError(t, err)
	assert.Nil(t, product.DeliveryServiceID)
}

func TestAssignDeliveryErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.AssignDelivery(ctx, "missing", f.express.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = f.uc.AssignDelivery(ctx, f.watch.ID, "missing")
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.uc.AssignDelivery(ctx, f.watch.ID, f.suspended.ID)
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	_, err = f.uc.RemoveDelivery(ctx, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateCatalogEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pilot, err := f.uc.CreateCategory(ctx, &catalogdto.CreateCategoryRequest{Name: " Pilot "})
	require.NoError(t, err)
	assert.Equal(t, "Pilot", pilot.Name)
	assert.NotEmpty(t, pilot.ID)

	_, err = f.uc.CreateCategory(ctx, &catalogdto.CreateCategoryRequest{Name: "dive"})
	assert.ErrorIs(t, err, ErrCategoryExists)

	product, err := f.uc.CreateProduct(ctx, &catalogdto.CreateProductRequest{
		Name: "Navitimer", Price: 8900, StockQuantity: 4, CategoryID: &pilot.ID,
	})
	require.NoError(t, err)
	assert.True(t, product.IsActive)
	assert.Equal(t, "Pilot", product.CategoryName)

	hidden := false
	draft, err := f.uc.CreateProduct(ctx, &catalogdto.CreateProductRequest{Name: "Prototype", IsActive: &hidden})
	require.NoError(t, err)
	assert.False(t, draft.IsActive)

	missing := "nope"
	_, err = f.uc.CreateProduct(ctx, &catalogdto.CreateProductRequest{Name: "Orphan", CategoryID: &missing})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	products, err := f.uc.ListProducts(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Submariner", "Navitimer"}, names)

	service, err := f.uc.CreateDeliveryService(ctx, &catalogdto.CreateDeliveryServiceRequest{Name: "Night Courier", EstimatedDays: "1"})
	require.NoError(t, err)
	assert.True(t, service.IsAvailable)

	services, err := f.uc.ListDeliveryServices(ctx)
	require.NoError(t, err)
	assert.Len(t, services, 2)
}
