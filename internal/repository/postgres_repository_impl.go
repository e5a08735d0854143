package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/buildmatpro/proforma-service/internal/domain"
	"github.com/buildmatpro/proforma-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresProductRepository struct {
	db *sqlx.DB
}

func CreatePostgresProductRepository(db *sqlx.DB) ProductRepository {
	return &PostgresProductRepository{db: db}
}

type productRecord struct {
	ID           string          `db:"id"`
	Name         string          `db:"name"`
	Category     string          `db:"category"`
	Manufacturer string          `db:"manufacturer"`
	Price        decimal.Decimal `db:"price"`
	Unit         string          `db:"unit"`
	Image        string          `db:"image"`
	Description  string          `db:"description"`
	Features     pq.StringArray  `db:"features"`
}

func (record productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:           record.ID,
		Name:         record.Name,
		Category:     record.Category,
		Manufacturer: record.Manufacturer,
		Price:        record.Price,
		Unit:         record.Unit,
		Image:        record.Image,
		Description:  record.Description,
		Features:     record.Features,
	}
}

func (r *PostgresProductRepository) GetProducts(ctx context.Context) (data []domain.Product, err error) {
	var records []productRecord
	err = r.db.SelectContext(ctx, &records,
		"SELECT id, name, category, manufacturer, price, unit, image, description, features FROM products ORDER BY id")
	if err != nil {
		return
	}

	for _, record := range records {
		data = append(data, record.toDomain())
	}

	return
}

func (r *PostgresProductRepository) GetProductByID(ctx context.Context, id string) (data domain.Product, err error) {
	var record productRecord
	err = r.db.GetContext(ctx, &record,
		"SELECT id, name, category, manufacturer, price, unit, image, description, features FROM products WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, errs.ErrProductNotFound
	}
	if err != nil {
		return
	}

	return record.toDomain(), nil
}
