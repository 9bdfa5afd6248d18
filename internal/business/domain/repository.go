package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/karobarhq/karobar/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, business *Business) error
	FindByOwner(ctx context.Context, db *gorm.DB, ownerID snowflake.ID) (*Business, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Business, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	SlugExists(ctx context.Context, db *gorm.DB, slug string) (bool, error)
	ListPublic(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*Business, error)
	CountPublic(ctx context.Context, db *gorm.DB) (int64, error)
}
