package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/karobarhq/karobar/internal/business/domain"
	"github.com/karobarhq/karobar/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, business *domain.Business) error {
	return db.WithContext(ctx).Create(business).Error
}

func (r *repo) FindByOwner(ctx context.Context, db *gorm.DB, ownerID snowflake.ID) (*domain.Business, error) {
	var business domain.Business
	err := db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &business, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Business, error) {
	var business domain.Business
	err := db.WithContext(ctx).Where("slug = ?", slug).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &business, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repo) SlugExists(ctx context.Context, db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) ListPublic(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.Business, error) {
	var businesses []*domain.Business
	stmt := db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("public = ?", true)
	stmt = page.Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&businesses).Error
	if err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *repo) CountPublic(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("public = ?", true).
		Count(&count).Error
	return count, err
}
