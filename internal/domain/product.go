package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductCategory string

const (
	CategoryGroceries   ProductCategory = "groceries"
	CategoryElectronics ProductCategory = "electronics"
	CategoryClothing    ProductCategory = "clothing"
	CategoryHousehold   ProductCategory = "household"
	CategoryBooks       ProductCategory = "books"
	CategorySports      ProductCategory = "sports"
	CategoryBeauty      ProductCategory = "beauty"
	CategoryOther       ProductCategory = "other"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryGroceries, CategoryElectronics, CategoryClothing, CategoryHousehold,
		CategoryBooks, CategorySports, CategoryBeauty, CategoryOther:
		return true
	}
	return false
}

const (
	DefaultProductUnit = "piece"
	DefaultMinStock    = 5
)

type Product struct {
	ID          int32           `json:"id"`
	Name        string          `json:"name"`
	Category    ProductCategory `json:"category"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	MinStock    int             `json:"minStock"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}
