package product

import (
	"context"
	"fmt"
	"io"
	"strings"

	dbpkg "github.com/avelarde/catalog-backend/pkg/db"
	"github.com/avelarde/catalog-backend/pkg/db/models"
	pkgerrors "github.com/avelarde/catalog-backend/pkg/errors"
	"github.com/avelarde/catalog-backend/pkg/logger"
	"github.com/avelarde/catalog-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImageStore is the capability the service needs from the asset backend.
// The disk client satisfies it in production; tests inject a fake.
type ImageStore interface {
	Save(ctx context.Context, r io.Reader, ext string) (string, error)
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
}

// Service exposes the product lifecycle operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
}

// ImageUpload is a validated image payload ready to be written to storage.
type ImageUpload struct {
	Content io.Reader
	Ext     string
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Stock       int
	Description *string
	Image       *ImageUpload
}

// UpdateProductInput holds the validated payload to update a product. Name,
// price, and stock are always supplied (the form re-submits the full
// record); a nil Image keeps the stored path untouched.
type UpdateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Stock       int
	Description *string
	Image       *ImageUpload
}

// Options carries the catalog policy knobs the service enforces.
type Options struct {
	PageSize     int
	DefaultImage string
}

type service struct {
	repo         ProductRepository
	store        ImageStore
	logg         *logger.Logger
	pageSize     int
	defaultImage string
}

// NewService constructs a product service instance.
func NewService(repo ProductRepository, store ImageStore, logg *logger.Logger, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("image store required")
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = pagination.DefaultPerPage
	}
	defaultImage := opts.DefaultImage
	if defaultImage == "" {
		defaultImage = models.DefaultImagePath
	}
	return &service{
		repo:         repo,
		store:        store,
		logg:         logg,
		pageSize:     pageSize,
		defaultImage: defaultImage,
	}, nil
}

// CreateProduct stores the uploaded image (or assigns the default) and
// persists the row. A failed image write aborts before any row mutation.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	imagePath := s.defaultImage
	if input.Image != nil {
		saved, err := s.store.Save(ctx, input.Image.Content, input.Image.Ext)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "save product image")
		}
		imagePath = saved
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Stock:       input.Stock,
		Description: input.Description,
		Image:       imagePath,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		// Orphaned files are preferable to rows referencing nothing, but
		// on a failed insert the fresh file can still be reclaimed.
		if s.ownsImage(imagePath) {
			s.cleanupImage(ctx, imagePath)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "insert product")
	}
	return NewProductDTO(created, s.store), nil
}

// UpdateProduct replaces the row fields. When a new image is supplied the
// previously stored file is removed first, unless it is the shared default.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if input.Image != nil {
		if s.ownsImage(product.Image) {
			s.cleanupImage(ctx, product.Image)
		}
		saved, err := s.store.Save(ctx, input.Image.Content, input.Image.Ext)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "save replacement image")
		}
		product.Image = saved
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Price = input.Price
	product.Stock = input.Stock
	product.Description = input.Description

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "update product")
	}
	return NewProductDTO(updated, s.store), nil
}

// DeleteProduct removes the row and its owned image file. The sentinel
// default image is shared across products and is never deleted.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return err
	}

	if s.ownsImage(product.Image) {
		s.cleanupImage(ctx, product.Image)
	}

	removed, err := s.repo.Delete(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "delete product")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodePersistence, "product deletion removed no rows")
	}
	return nil
}

// GetProduct returns a single product by id.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product, s.store), nil
}

// ListProducts returns one page of the catalog, newest first, with the
// pagination metadata block the UI renders its pager from.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	params := pagination.Params{Page: input.Page, PerPage: s.pageSize}

	rows, total, err := s.repo.List(ctx, ListQuery{
		Pagination: params,
		Search:     input.Search,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "list products")
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewProductDTO(&rows[i], s.store))
	}

	return &ProductListResult{
		Products: dtos,
		Meta:     pagination.BuildMeta(total, params, input.BasePath, input.Query),
	}, nil
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if dbpkg.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "load product")
	}
	return product, nil
}

// ownsImage reports whether the path is an exclusively owned upload. The
// configured sentinel is shared by every imageless product and must never
// be removed from storage.
func (s *service) ownsImage(path string) bool {
	return path != "" && path != s.defaultImage
}

// cleanupImage is best-effort: a stuck file must not block the row
// mutation, but it is worth a warning for the orphan sweep.
func (s *service) cleanupImage(ctx context.Context, path string) {
	if err := s.store.Delete(ctx, path); err != nil && s.logg != nil {
		ctx = s.logg.WithField(ctx, "image_path", path)
		s.logg.Warn(ctx, "failed to delete product image")
	}
}
