package product

import (
	"context"
	"strings"

	"github.com/avelarde/catalog-backend/pkg/db/models"
	"github.com/avelarde/catalog-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	Create(context.Context, *models.Product) (*models.Product, error)
	FindByID(context.Context, uuid.UUID) (*models.Product, error)
	Update(context.Context, *models.Product) (*models.Product, error)
	Delete(context.Context, uuid.UUID) (bool, error)
	List(context.Context, ListQuery) ([]models.Product, int64, error)
}

// ListQuery carries the listing inputs down to the SQL layer.
type ListQuery struct {
	Pagination pagination.Params
	Search     string
}

// Repository implements ProductRepository over GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new product row; id and timestamps are assigned on write.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads the product row. Missing rows surface gorm.ErrRecordNotFound
// for the service layer to translate.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update persists the full row.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by ID and reports whether a row was removed,
// so callers can distinguish a lost race from a successful delete.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// List returns one page of products ordered by creation time descending,
// optionally filtered to names containing the search term
// (case-insensitive substring), plus the unpaginated total.
func (r *Repository) List(ctx context.Context, query ListQuery) ([]models.Product, int64, error) {
	params := query.Pagination.Normalize()

	qb := r.db.WithContext(ctx).Model(&models.Product{})
	if search := strings.TrimSpace(query.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("LOWER(name) LIKE ?", pattern)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	err := qb.
		Order("created_at DESC").
		Order("id DESC").
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
