package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/karobarhq/karobar/internal/product/domain"
	"github.com/karobarhq/karobar/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, businessID, id snowflake.ID) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, businessID snowflake.ID, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Product, error) {
	var products []*domain.Product
	stmt := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("business_id = ?", businessID)
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		stmt = stmt.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(sku) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
	}
	stmt = page.Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB, businessID snowflake.ID) ([]*domain.Product, error) {
	var products []*domain.Product
	err := db.WithContext(ctx).
		Where("business_id = ? AND active = ?", businessID, true).
		Order("created_at desc, id desc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, businessID, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("business_id = ? AND id = ?", businessID, id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, businessID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		Delete(&domain.Product{}).Error
}

func (r *repo) CountActive(ctx context.Context, db *gorm.DB, businessID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("business_id = ? AND active = ?", businessID, true).
		Count(&count).Error
	return count, err
}

func (r *repo) CountActivePublic(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Joins("JOIN businesses ON businesses.id = products.business_id").
		Where("products.active = ? AND businesses.public = ?", true, true).
		Count(&count).Error
	return count, err
}
