package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/buildmatpro/proforma-service/internal/domain"
	"github.com/buildmatpro/proforma-service/pkg/errs"
)

//go:embed catalog.json
var embeddedCatalog []byte

type InMemoryProductRepository struct {
	products []domain.Product
}

// CreateInMemoryProductRepository loads the fixed product list once, either
// from the file at path or from the embedded sample catalog when path is
// empty. The list is never mutated afterwards.
func CreateInMemoryProductRepository(path string) (ProductRepository, error) {
	data := embeddedCatalog
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading catalog file: %v", err)
		}
		data = fileData
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("error parsing catalog data: %v", err)
	}

	return &InMemoryProductRepository{products: products}, nil
}

func (r *InMemoryProductRepository) GetProducts(ctx context.Context) (data []domain.Product, err error) {
	data = make([]domain.Product, len(r.products))
	copy(data, r.products)

	return
}

func (r *InMemoryProductRepository) GetProductByID(ctx context.Context, id string) (data domain.Product, err error) {
	for _, product := range r.products {
		if product.ID == id {
			return product, nil
		}
	}

	return domain.Product{}, errs.ErrProductNotFound
}
