package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Product belongs to exactly one business. Deactivating via the active
// flag hides it from the public catalog without deleting the record.
type Product struct {
	ID          snowflake.ID     `gorm:"primaryKey" json:"id"`
	BusinessID  snowflake.ID     `gorm:"column:business_id;not null;index" json:"business_id"`
	Name        string           `gorm:"not null" json:"name"`
	Price       *decimal.Decimal `gorm:"type:numeric(12,2)" json:"price,omitempty"`
	Description string           `gorm:"type:text" json:"description"`
	ImagePath   string           `gorm:"column:image_path" json:"image_path,omitempty"`
	SKU         string           `gorm:"column:sku" json:"sku"`
	Active      bool             `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }
