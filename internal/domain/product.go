package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID           string          `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Category     string          `json:"category" db:"category"`
	Manufacturer string          `json:"manufacturer" db:"manufacturer"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Unit         string          `json:"unit" db:"unit"`
	Image        string          `json:"image" db:"image"`
	Description  string          `json:"description" db:"description"`
	Features     []string        `json:"features"`
}
