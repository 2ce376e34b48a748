package services

import (
	"context"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKeyAllProducts   = "products:all"
	cacheKeyAllCategories = "categories:all"
	cacheKeyProductPrefix = "product:"

	flashDealMinDiscount = 20
	flashDealLimit       = 6
)

// CatalogCache is a read-through cache for catalog reads. Get reports a miss with false.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// CatalogService answers read queries over products and categories.
type CatalogService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	cache      CatalogCache // nil disables caching
	group      singleflight.Group
	logger     zerolog.Logger
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(products repositories.ProductRepository, categories repositories.CategoryRepository, cache CatalogCache, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		cache:      cache,
		logger:     logger.With().Str("service", "catalog").Logger(),
	}
}

// readThrough serves key from the cache, loading and storing it on a miss.
// Concurrent misses for the same key share one load, which ignores the
// cancellation of whichever caller started it.
func readThrough[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) (T, error)) (T, error) {
	if s.cache == nil {
		return load(ctx)
	}

	var cached T
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
	} else if hit {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		flightCtx := context.WithoutCancel(ctx)
		fresh, err := load(flightCtx)
		if err != nil {
			return fresh, err
		}
		if err := s.cache.Set(flightCtx, key, fresh); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

// ListProducts returns every product in insertion order.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := readThrough(ctx, s, cacheKeyAllProducts, s.products.GetAll)
	if err != nil {
		return nil, storeError("list products", err)
	}
	out := make([]models.Product, len(products))
	for i := range products {
		out[i] = products[i].Clone()
	}
	return out, nil
}

// GetProduct returns the product with id or ErrNotFound.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := readThrough(ctx, s, cacheKeyProductPrefix+id, func(ctx context.Context) (*models.Product, error) {
		return s.products.GetByID(ctx, id)
	})
	if err != nil {
		return nil, storeError("get product", err)
	}
	clone := product.Clone()
	return &clone, nil
}

// ListByCategory returns products whose category equals name, ignoring case.
func (s *CatalogService) ListByCategory(ctx context.Context, name string) ([]models.Product, error) {
	return s.filter(ctx, func(p models.Product) bool {
		return strings.EqualFold(p.Category, name)
	})
}

// Search matches query as a case-insensitive substring of name, description or brand.
// A blank query matches nothing.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.Product{}, nil
	}
	return s.filter(ctx, func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Brand), q)
	})
}

// ListDeals returns every discounted product.
func (s *CatalogService) ListDeals(ctx context.Context) ([]models.Product, error) {
	return s.filter(ctx, func(p models.Product) bool {
		return p.Discount > 0
	})
}

// ListFlashDeals returns the first six products discounted by more than 20 percent.
func (s *CatalogService) ListFlashDeals(ctx context.Context) ([]models.Product, error) {
	deals, err := s.filter(ctx, func(p models.Product) bool {
		return p.Discount > flashDealMinDiscount
	})
	if err != nil {
		return nil, err
	}
	if len(deals) > flashDealLimit {
		deals = deals[:flashDealLimit]
	}
	return deals, nil
}

func (s *CatalogService) filter(ctx context.Context, keep func(models.Product) bool) ([]models.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListCategories returns every category in insertion order.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := readThrough(ctx, s, cacheKeyAllCategories, s.categories.GetAll)
	if err != nil {
		return nil, storeError("list categories", err)
	}
	return append([]models.Category{}, categories...), nil
}

// GetCategory returns the category with id or ErrNotFound.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get category", err)
	}
	return category, nil
}

// CreateProduct stores a new product and drops the cached listing.
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return validationError("product name is required")
	}
	if product.Price.IsNegative() {
		return validationError("product price must not be negative")
	}
	if err := s.products.Create(ctx, product); err != nil {
		return storeError("create product", err)
	}
	s.invalidate(ctx, cacheKeyAllProducts, cacheKeyProductPrefix+product.ID)
	return nil
}

// CreateCategory stores a new category. Duplicate names yield ErrConflict.
func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return validationError("category name is required")
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return storeError("create category", err)
	}
	s.invalidate(ctx, cacheKeyAllCategories)
	return nil
}
