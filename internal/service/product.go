package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jconover/k8s-microservices-platform/internal/cache"
	"github.com/jconover/k8s-microservices-platform/internal/domain"
	"github.com/jconover/k8s-microservices-platform/internal/repo"
)

// ListLimit caps the product listing to the most recently created rows.
const ListLimit = 100

type ProductService struct {
	repo   repo.ProductRepository
	cache  cache.ProductCache
	logger *zap.SugaredLogger
}

func NewProductService(
	productRepo repo.ProductRepository,
	productCache cache.ProductCache,
	logger *zap.SugaredLogger,
) *ProductService {
	return &ProductService{
		repo:   productRepo,
		cache:  productCache,
		logger: logger,
	}
}

// List serves the listing cache-aside: a hit returns the cached bytes
// verbatim, a miss fetches from the store and repopulates the cache.
func (s *ProductService) List(ctx context.Context) ([]byte, error) {
	if payload, ok := s.cache.GetList(ctx); ok {
		return payload, nil
	}

	products, err := s.repo.List(ctx, ListLimit)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal products: %w", err)
	}

	s.cache.SetList(ctx, payload)

	return payload, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) ([]byte, error) {
	if payload, ok := s.cache.GetProduct(ctx, id); ok {
		return payload, nil
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}

	s.cache.SetProduct(ctx, id, payload)

	return payload, nil
}

func (s *ProductService) Create(ctx context.Context, product *domain.Product) error {
	if product.Name == "" || product.Price < 0 {
		return domain.ErrValidation
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}

	s.cache.InvalidateList(ctx)

	s.logger.Infow("product created", "id", product.ID, "name", product.Name)

	return nil
}

func (s *ProductService) Update(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error) {
	product, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateProduct(ctx, id)
	s.cache.InvalidateList(ctx)

	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateProduct(ctx, id)
	s.cache.InvalidateList(ctx)

	s.logger.Infow("product deleted", "id", id)

	return product, nil
}
