package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Business is the tenant record behind a public catalog. The slug is
// assigned at first persistence and never changes afterwards; public
// URLs depend on it staying stable.
type Business struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	OwnerID        *snowflake.ID `gorm:"column:owner_id;uniqueIndex" json:"owner_id,omitempty"`
	Name           string        `gorm:"not null" json:"name"`
	Slug           string        `gorm:"not null;uniqueIndex" json:"slug"`
	Description    string        `gorm:"type:text" json:"description"`
	WhatsappNumber string        `gorm:"column:whatsapp_number" json:"whatsapp_number"`
	City           string        `json:"city"`
	NativePlace    string        `gorm:"column:native_place" json:"native_place"`
	Public         bool          `gorm:"not null;default:false" json:"public"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Business) TableName() string { return "businesses" }
