package services_test

import (
	"context"
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalogFixture() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Organic Bananas", Description: "Sweet and ripe", Category: "Fruits", Price: models.MustMoney("2.99"), Discount: 10, Brand: "FreshFarm"},
		{ID: "2", Name: "Yoga Mat", Description: "Non-slip mat", Category: "Fitness", Price: models.MustMoney("29.99"), Discount: 25, Brand: "ZenFit"},
		{ID: "3", Name: "Whole Milk", Description: "Farm fresh", Category: "Dairy", Price: models.MustMoney("3.49")},
		{ID: "4", Name: "Apple", Description: "Crunchy", Category: "fruits", Price: models.MustMoney("0.99"), Discount: 30},
	}
}

func newCatalogWithMock(products []models.Product) (*services.CatalogService, *MockProductRepository) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("GetAll", mock.Anything).Return(products, nil)
	return services.NewCatalogService(mockRepo, repositories.NewMemoryCategoryRepository(), nil, zerolog.Nop()), mockRepo
}

func TestCatalogService_ListProducts(t *testing.T) {
	service, mockRepo := newCatalogWithMock(catalogFixture())

	products, err := service.ListProducts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, products, 4)
	assert.Equal(t, "Organic Bananas", products[0].Name)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_GetProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, repositories.NewMemoryCategoryRepository(), nil, zerolog.Nop())

	expected := &models.Product{ID: "1", Name: "Product A", Price: models.MustMoney("10.00")}
	mockRepo.On("GetByID", mock.Anything, "1").Return(expected, nil).Once()
	product, err := service.GetProduct(context.Background(), "1")
	assert.NoError(t, err)
	assert.Equal(t, "Product A", product.Name)

	mockRepo.On("GetByID", mock.Anything, "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProduct(context.Background(), "99")
	assert.Nil(t, product)
	assert.ErrorIs(t, err, services.ErrNotFound)

	mockRepo.On("GetByID", mock.Anything, "boom").Return(nil, fmt.Errorf("connection refused")).Once()
	_, err = service.GetProduct(context.Background(), "boom")
	assert.ErrorIs(t, err, services.ErrInternal)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_ListByCategoryIsExactIgnoringCase(t *testing.T) {
	service, _ := newCatalogWithMock(catalogFixture())

	fruits, err := service.ListByCategory(context.Background(), "FRUITS")
	require.NoError(t, err)
	require.Len(t, fruits, 2)
	assert.Equal(t, "1", fruits[0].ID)
	assert.Equal(t, "4", fruits[1].ID)

	partial, err := service.ListByCategory(context.Background(), "Fruit")
	require.NoError(t, err)
	assert.Empty(t, partial)
}

func TestCatalogService_Search(t *testing.T) {
	service, _ := newCatalogWithMock(catalogFixture())
	ctx := context.Background()

	for _, blank := range []string{"", "   ", "\t"} {
		results, err := service.Search(ctx, blank)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}

	byBrand, err := service.Search(ctx, "ZENFIT")
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	assert.Equal(t, "Yoga Mat", byBrand[0].Name)

	byDescription, err := service.Search(ctx, "crunchy")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "4", byDescription[0].ID)

	// "fresh" hits product 1 by brand and product 3 by description.
	mixed, err := service.Search(ctx, "fresh")
	require.NoError(t, err)
	require.Len(t, mixed, 2)
	assert.Equal(t, "1", mixed[0].ID)
	assert.Equal(t, "3", mixed[1].ID)

	byName, err := service.Search(ctx, "  banana ")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "1", byName[0].ID)
}

func TestCatalogService_Deals(t *testing.T) {
	service, _ := newCatalogWithMock(catalogFixture())

	deals, err := service.ListDeals(context.Background())
	require.NoError(t, err)
	assert.Len(t, deals, 3)

	flash, err := service.ListFlashDeals(context.Background())
	require.NoError(t, err)
	require.Len(t, flash, 2)
	assert.Equal(t, "2", flash[0].ID)
	assert.Equal(t, "4", flash[1].ID)
}

func TestCatalogService_FlashDealsCappedAtSix(t *testing.T) {
	var products []models.Product
	for i := 0; i < 9; i++ {
		products = append(products, models.Product{ID: fmt.Sprint(i), Name: fmt.Sprintf("Deal %d", i), Discount: 21})
	}
	service, _ := newCatalogWithMock(products)

	flash, err := service.ListFlashDeals(context.Background())
	require.NoError(t, err)
	require.Len(t, flash, 6)
	assert.Equal(t, "0", flash[0].ID)
	assert.Equal(t, "5", flash[5].ID)
}

func TestCatalogService_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	mockRepo := new(MockProductRepository)
	mockRepo.On("GetAll", mock.Anything).Return(catalogFixture(), nil).Once()
	service := services.NewCatalogService(mockRepo, repositories.NewMemoryCategoryRepository(), cache, zerolog.Nop())

	first, err := service.ListProducts(ctx)
	require.NoError(t, err)
	second, err := service.ListProducts(ctx)
	require.NoError(t, err)

	assert.Equal(t, len(first), len(second))
	assert.Equal(t, "2.99", second[0].Price.String())
	assert.Equal(t, 1, cache.hits)
	mockRepo.AssertExpectations(t)

	// Creating a product invalidates the cached listing.
	created := &models.Product{Name: "Kiwi", Price: models.MustMoney("1.00")}
	mockRepo.On("Create", mock.Anything, created).Return(nil).Once()
	mockRepo.On("GetAll", mock.Anything).Return(append(catalogFixture(), *created), nil).Once()
	require.NoError(t, service.CreateProduct(ctx, created))

	third, err := service.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 5)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_SharedLoadIgnoresCallerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	mockRepo := new(MockProductRepository)
	mockRepo.On("GetAll", live).Return(catalogFixture(), nil).Once()
	service := services.NewCatalogService(mockRepo, repositories.NewMemoryCategoryRepository(), newFakeCache(), zerolog.Nop())

	products, err := service.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 4)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_Categories(t *testing.T) {
	ctx := context.Background()
	service := services.NewCatalogService(repositories.NewMemoryProductRepository(), repositories.NewMemoryCategoryRepository(), newFakeCache(), zerolog.Nop())

	fruits := &models.Category{Name: "Fruits", Icon: "apple"}
	require.NoError(t, service.CreateCategory(ctx, fruits))
	require.NoError(t, service.CreateCategory(ctx, &models.Category{Name: "Dairy", Icon: "milk"}))

	err := service.CreateCategory(ctx, &models.Category{Name: "FRUITS", Icon: "x"})
	assert.ErrorIs(t, err, services.ErrConflict)

	err = service.CreateCategory(ctx, &models.Category{Name: " "})
	assert.ErrorIs(t, err, services.ErrValidation)

	categories, err := service.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Fruits", categories[0].Name)

	got, err := service.GetCategory(ctx, fruits.ID)
	require.NoError(t, err)
	assert.Equal(t, "apple", got.Icon)

	_, err = service.GetCategory(ctx, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
