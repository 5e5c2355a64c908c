package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"gorm.io/gorm"
)

type productRepository interface {
	List(ctx context.Context) ([]models.Product, error)
}

type transactionRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service lists and seeds the product catalog.
type Service interface {
	List(ctx context.Context, filter Filter) (*ListResult, error)
	Seed(ctx context.Context) (int, error)
}

type service struct {
	repo productRepository
	seed func(ctx context.Context, products []models.Product) (int, error)
	logg *logger.Logger
}

// NewService builds the catalog service. tx and repo must point at the same database.
func NewService(repo *Repository, tx transactionRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo: repo,
		seed: seedInTx(repo, tx),
		logg: logg,
	}, nil
}

func (s *service) List(ctx context.Context, filter Filter) (*ListResult, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, productFromModel(row))
	}
	matched := filter.Apply(products)
	return &ListResult{Products: matched, Total: len(matched)}, nil
}

// Seed inserts the default products when the table is empty and reports how many were added.
func (s *service) Seed(ctx context.Context) (int, error) {
	added, err := s.seed(ctx, DefaultProducts())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed products")
	}
	if added > 0 {
		s.logg.Info(s.logg.WithField(ctx, "products_added", added), "catalog seeded")
	}
	return added, nil
}

func seedInTx(repo *Repository, tx transactionRunner) func(context.Context, []models.Product) (int, error) {
	return func(ctx context.Context, products []models.Product) (int, error) {
		added := 0
		err := tx.WithTx(ctx, func(db *gorm.DB) error {
			txRepo := repo.WithTx(db)
			existing, err := txRepo.Count(ctx)
			if err != nil {
				return err
			}
			if existing > 0 {
				return nil
			}
			if err := txRepo.Upsert(ctx, products); err != nil {
				return err
			}
			added = len(products)
			return nil
		})
		return added, err
	}
}
