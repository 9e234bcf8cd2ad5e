package catalog

import (
	"context"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// CategoryPath is the three-level category assignment of one product.
type CategoryPath struct {
	Primary   *string `gorm:"column:primary_category"`
	Secondary *string `gorm:"column:secondary_category"`
	Tertiary  *string `gorm:"column:tertiary_category"`
}

// Repository reads catalog data.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCategoryPaths returns every product's categories in insertion order.
func (r *Repository) ListCategoryPaths(ctx context.Context) ([]CategoryPath, error) {
	var paths []CategoryPath
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("primary_category", "secondary_category", "tertiary_category").
		Where("primary_category IS NOT NULL AND primary_category <> ''").
		Order("id").
		Scan(&paths).Error; err != nil {
		return nil, err
	}
	return paths, nil
}

// ListProducts returns products matching every non-empty category list.
func (r *Repository) ListProducts(ctx context.Context, filter Filter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if len(filter.Primary) > 0 {
		query = query.Where("primary_category IN ?", filter.Primary)
	}
	if len(filter.Secondary) > 0 {
		query = query.Where("secondary_category IN ?", filter.Secondary)
	}
	if len(filter.Tertiary) > 0 {
		query = query.Where("tertiary_category IN ?", filter.Tertiary)
	}

	var products []models.Product
	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
