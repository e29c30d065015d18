package validators

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/avelarde/catalog-backend/pkg/errors"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x01}, 64)...)

func multipartRequest(t *testing.T, fields map[string]string, imageName string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeDetails(t *testing.T, err error) map[string]string {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", typed.Code())
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	return details
}

func TestDecodeProductForm(t *testing.T) {
	opts := ProductFormOptions{MaxImageBytes: 2048 * 1024}

	t.Run("accepts a complete payload with a png upload", func(t *testing.T) {
		req := multipartRequest(t, map[string]string{
			"name":        "Pen",
			"price":       "1.50",
			"stock":       "10",
			"description": "Ballpoint",
		}, "pen.png", pngBytes)

		form, err := DecodeProductForm(req, opts)
		if err != nil {
			t.Fatalf("DecodeProductForm failed: %v", err)
		}
		if form.Name != "Pen" || form.Stock != 10 {
			t.Fatalf("unexpected form %+v", form)
		}
		if form.Price.String() != "1.5" {
			t.Fatalf("unexpected price %s", form.Price)
		}
		if form.Description == nil || *form.Description != "Ballpoint" {
			t.Fatalf("unexpected description %v", form.Description)
		}
		if form.Image == nil || form.Image.Ext != ".png" {
			t.Fatalf("unexpected image %+v", form.Image)
		}
		content, err := io.ReadAll(form.Image.Content)
		if err != nil || !bytes.Equal(content, pngBytes) {
			t.Fatalf("image content mismatch (err %v)", err)
		}
	})

	t.Run("image and description are optional", func(t *testing.T) {
		req := multipartRequest(t, map[string]string{
			"name":  "Pen",
			"price": "1.50",
			"stock": "0",
		}, "", nil)

		form, err := DecodeProductForm(req, opts)
		if err != nil {
			t.Fatalf("DecodeProductForm failed: %v", err)
		}
		if form.Image != nil {
			t.Fatalf("expected no image, got %+v", form.Image)
		}
		if form.Description != nil {
			t.Fatalf("expected nil description, got %q", *form.Description)
		}
		if form.Stock != 0 {
			t.Fatalf("zero stock must be accepted, got %d", form.Stock)
		}
	})

	t.Run("missing fields are reported together", func(t *testing.T) {
		req := multipartRequest(t, map[string]string{}, "", nil)

		_, err := DecodeProductForm(req, opts)
		details := decodeDetails(t, err)
		for _, field := range []string{"name", "price", "stock"} {
			if details[field] != "is required" {
				t.Fatalf("expected %s to be required, details %v", field, details)
			}
		}
	})

	t.Run("rejects out-of-range values", func(t *testing.T) {
		req := multipartRequest(t, map[string]string{
			"name":  strings.Repeat("x", 256),
			"price": "0.05",
			"stock": "-1",
		}, "", nil)

		_, err := DecodeProductForm(req, opts)
		details := decodeDetails(t, err)
		if details["name"] != "must be at most 255 characters" {
			t.Fatalf("unexpected name message %q", details["name"])
		}
		if details["price"] != "must be at least 0.1" {
			t.Fatalf("unexpected price message %q", details["price"])
		}
		if details["stock"] != "must be at least 0" {
			t.Fatalf("unexpected stock message %q", details["stock"])
		}
	})

	t.Run("rejects non-numeric price and stock", func(t *testing.T) {
		req := multipartRequest(t, map[string]string{
			"name":  "Pen",
			"price": "cheap",
			"stock": "many",
		}, "", nil)

		_, err := DecodeProductForm(req, opts)
		details := decodeDetails(t, err)
		if details["price"] != "must be a number" {
			t.Fatalf("unexpected price message %q", details["price"])
		}
		if details["stock"] != "must be an integer" {
			t.Fatalf("unexpected stock message %q", details["stock"])
		}
	})

	t.Run("rejects uploads that are not images by content", func(t *testing.T) {
		req := multipartRequest(t, map[string]string{
			"name":  "Pen",
			"price": "1.50",
			"stock": "10",
		}, "fake.png", []byte("definitely not an image"))

		_, err := DecodeProductForm(req, opts)
		details := decodeDetails(t, err)
		if details["image"] != "must be a jpeg or png image" {
			t.Fatalf("unexpected image message %q", details["image"])
		}
	})

	t.Run("rejects oversized uploads", func(t *testing.T) {
		big := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x02}, 4096)...)
		req := multipartRequest(t, map[string]string{
			"name":  "Pen",
			"price": "1.50",
			"stock": "10",
		}, "big.png", big)

		_, err := DecodeProductForm(req, ProductFormOptions{MaxImageBytes: 1024})
		details := decodeDetails(t, err)
		if details["image"] != "must not exceed 1 kilobytes" {
			t.Fatalf("unexpected image message %q", details["image"])
		}
	})
}
