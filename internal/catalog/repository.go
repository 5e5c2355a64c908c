package catalog

import (
	"context"

	"github.com/angelmondragon/storefront/internal/repo"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository reads and seeds the products table.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// List returns every product in display order.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.DB(ctx).Order("position ASC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB(ctx).Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Upsert inserts the products, leaving rows with an existing name untouched.
func (r *Repository) Upsert(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&products).Error
}
