package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avelarde/catalog-backend/api/responses"
	"github.com/avelarde/catalog-backend/api/validators"
	productsvc "github.com/avelarde/catalog-backend/internal/products"
	pkgerrors "github.com/avelarde/catalog-backend/pkg/errors"
	"github.com/avelarde/catalog-backend/pkg/logger"
)

const productsBasePath = "/api/products"

// ListProducts handles the paginated catalog listing with optional search.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		query := r.URL.Query()
		page := 1
		if raw := strings.TrimSpace(query.Get("page")); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				page = parsed
			}
		}

		result, err := svc.ListProducts(r.Context(), productsvc.ListProductsInput{
			Page:     page,
			Search:   strings.TrimSpace(query.Get("search")),
			BasePath: productsBasePath,
			Query:    query,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, result.Products, result.Meta)
	}
}

// CreateProduct handles multipart product creation.
func CreateProduct(svc productsvc.Service, logg *logger.Logger, formOpts validators.ProductFormOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		form, err := validators.DecodeProductForm(r, formOpts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			Name:        form.Name,
			Price:       form.Price,
			Stock:       form.Stock,
			Description: form.Description,
			Image:       form.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// GetProduct returns a single product by id.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := productIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// UpdateProduct handles the full-record multipart update. PUT and PATCH
// share this handler.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger, formOpts validators.ProductFormOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := productIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		form, err := validators.DecodeProductForm(r, formOpts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateProduct(r.Context(), productID, productsvc.UpdateProductInput{
			Name:        form.Name,
			Price:       form.Price,
			Stock:       form.Stock,
			Description: form.Description,
			Image:       form.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// DeleteProduct removes a product and acknowledges with a message envelope.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := productIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, "Product deleted successfully")
	}
}

// productIDFromRequest parses the path id. Malformed ids read as missing
// resources, matching route model binding semantics.
func productIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "productId")
	productID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return productID, nil
}
