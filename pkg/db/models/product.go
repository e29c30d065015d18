package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultImagePath is the sentinel assigned to products created without an
// upload. The file is shared by every such product and is never deleted
// from storage.
const DefaultImagePath = "products/default.jpg"

// Product is a catalog listing row.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name        string          `gorm:"column:name;size:255;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Stock       int             `gorm:"column:stock;not null;default:0"`
	Description *string         `gorm:"column:description"`
	Image       string          `gorm:"column:image;not null;default:'products/default.jpg'"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the row id client-side so the sqlite dev path matches
// the postgres gen_random_uuid() default.
func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
