package validators

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	product "github.com/avelarde/catalog-backend/internal/products"
	pkgerrors "github.com/avelarde/catalog-backend/pkg/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// MinPrice is the lowest accepted product price.
var MinPrice = decimal.RequireFromString("0.1")

var allowedImageMIMEs = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// ProductForm is the decoded and validated multipart payload shared by the
// create and update endpoints.
type ProductForm struct {
	Name        string
	Price       decimal.Decimal
	Stock       int
	Description *string
	Image       *product.ImageUpload
}

// ProductFormOptions carries the upload policy limits from config.
type ProductFormOptions struct {
	MaxImageBytes int64
}

// productFormValues holds the raw text fields for tag-based validation.
// Multipart values arrive as strings, so numeric rules are applied after
// parsing.
type productFormValues struct {
	Name  string `json:"name" validate:"required,max=255"`
	Price string `json:"price" validate:"required"`
	Stock string `json:"stock" validate:"required"`
}

// DecodeProductForm parses a multipart product payload and validates every
// field before anything touches storage or the database. All failures are
// reported together as a field to message map.
func DecodeProductForm(r *http.Request, opts ProductFormOptions) (*ProductForm, error) {
	// The form limit leaves headroom beyond the image cap for text fields.
	if err := r.ParseMultipartForm(opts.MaxImageBytes + 1<<20); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart payload").
			WithDetails(map[string]string{"body": "must be multipart/form-data"})
	}
	defer func() {
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
	}()

	values := productFormValues{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Price: strings.TrimSpace(r.FormValue("price")),
		Stock: strings.TrimSpace(r.FormValue("stock")),
	}

	details := map[string]string{}
	if err := validate.Struct(values); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
		}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
	}

	form := &ProductForm{Name: values.Name}

	if values.Price != "" {
		price, err := decimal.NewFromString(values.Price)
		switch {
		case err != nil:
			details["price"] = "must be a number"
		case price.LessThan(MinPrice):
			details["price"] = fmt.Sprintf("must be at least %s", MinPrice)
		default:
			form.Price = price
		}
	}

	if values.Stock != "" {
		stock, err := strconv.Atoi(values.Stock)
		switch {
		case err != nil:
			details["stock"] = "must be an integer"
		case stock < 0:
			details["stock"] = "must be at least 0"
		default:
			form.Stock = stock
		}
	}

	if description := r.FormValue("description"); description != "" {
		form.Description = &description
	}

	upload, uploadDetail := decodeImageField(r, opts.MaxImageBytes)
	if uploadDetail != "" {
		details["image"] = uploadDetail
	}
	form.Image = upload

	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return form, nil
}

// decodeImageField reads the optional image part, enforcing the size cap and
// sniffing the actual content type. The extension comes from the detected
// type, never from the client filename.
func decodeImageField(r *http.Request, maxBytes int64) (*product.ImageUpload, string) {
	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, ""
		}
		return nil, "must be a valid file upload"
	}
	defer file.Close()

	content, err := readCapped(file, maxBytes)
	if err != nil {
		if errors.Is(err, errFileTooLarge) {
			return nil, fmt.Sprintf("must not exceed %d kilobytes", maxBytes/1024)
		}
		return nil, "could not be read"
	}
	if len(content) == 0 {
		return nil, "must not be empty"
	}

	mtype := mimetype.Detect(content)
	ext, ok := allowedImageMIMEs[mtype.String()]
	if !ok {
		return nil, "must be a jpeg or png image"
	}

	return &product.ImageUpload{Content: bytes.NewReader(content), Ext: ext}, ""
}

var errFileTooLarge = errors.New("file exceeds size limit")

func readCapped(file multipart.File, maxBytes int64) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > maxBytes {
		return nil, errFileTooLarge
	}
	return content, nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "is invalid"
}
