package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/karobarhq/karobar/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Search string
	Active *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, businessID, id snowflake.ID) (*Product, error)
	List(ctx context.Context, db *gorm.DB, businessID snowflake.ID, filter ListFilter, page pagination.Pagination) ([]*Product, error)
	ListActive(ctx context.Context, db *gorm.DB, businessID snowflake.ID) ([]*Product, error)
	UpdateFields(ctx context.Context, db *gorm.DB, businessID, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, businessID, id snowflake.ID) error
	CountActive(ctx context.Context, db *gorm.DB, businessID snowflake.ID) (int64, error)
	CountActivePublic(ctx context.Context, db *gorm.DB) (int64, error)
}
