package repo

import (
	"context"

	"github.com/jconover/k8s-microservices-platform/internal/domain"
)

type ProductRepository interface {
	List(ctx context.Context, limit int) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id int64) (*domain.Product, error)
}
