package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is one storefront product card.
type Product struct {
	ID        uuid.UUID       `gorm:"column:id;type:text;primaryKey"`
	Name      string          `gorm:"column:name;not null;uniqueIndex"`
	Flavour   string          `gorm:"column:flavour;not null;default:''"`
	Color     string          `gorm:"column:color;not null;default:''"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Position  int             `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
