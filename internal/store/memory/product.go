package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jconover/k8s-microservices-platform/internal/domain"
)

// ProductRepository is an in-memory stand-in for the postgres repository,
// used by tests. It mirrors the store's semantics: auto-assigned ids,
// created_at == updated_at on insert, partial updates, newest-first listing.
type ProductRepository struct {
	mu       sync.RWMutex
	products []domain.Product
	nextID   int64
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		nextID: 1,
	}
}

func (r *ProductRepository) List(ctx context.Context, limit int) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, limit)
	for i := len(r.products) - 1; i >= 0 && len(products) < limit; i-- {
		products = append(products, r.products[i])
	}

	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}

	return nil, domain.ErrNotFound
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	product.ID = r.nextID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.nextID++

	r.products = append(r.products, *product)

	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID != id {
			continue
		}

		p := &r.products[i]
		if update.Name != nil {
			p.Name = *update.Name
		}
		if update.Description != nil {
			p.Description = update.Description
		}
		if update.Price != nil {
			p.Price = *update.Price
		}
		if update.StockQuantity != nil {
			p.StockQuantity = *update.StockQuantity
		}
		if update.Category != nil {
			p.Category = update.Category
		}
		p.UpdatedAt = time.Now().UTC()

		product := *p
		return &product, nil
	}

	return nil, domain.ErrNotFound
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == id {
			product := r.products[i]
			r.products = append(r.products[:i], r.products[i+1:]...)
			return &product, nil
		}
	}

	return nil, domain.ErrNotFound
}
