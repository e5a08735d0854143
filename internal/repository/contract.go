package repository

import (
	"context"

	"github.com/buildmatpro/proforma-service/internal/domain"
)

type ProductRepository interface {
	GetProducts(ctx context.Context) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id string) (data domain.Product, err error)
}
