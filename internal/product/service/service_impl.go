package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/karobarhq/karobar/internal/media"
	"github.com/karobarhq/karobar/internal/product/domain"
	"github.com/karobarhq/karobar/internal/validation"
	"github.com/karobarhq/karobar/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	minNameLength = 2
	maxImageBytes = 5 * 1024 * 1024
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Media *media.Store
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	media *media.Store
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		repo:  p.Repo,
		media: p.Media,
	}
}

func (s *Service) Create(ctx context.Context, businessID snowflake.ID, req domain.CreateRequest) (*domain.Product, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}

	name := strings.TrimSpace(req.Name)
	if err := validateProduct(name, req).OrNil(); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          s.genID.Generate(),
		BusinessID:  businessID,
		Name:        name,
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
		SKU:         strings.TrimSpace(req.SKU),
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *Service) Get(ctx context.Context, businessID, id snowflake.ID) (*domain.Product, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}
	product, err := s.repo.FindByID(ctx, s.db, businessID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (s *Service) List(ctx context.Context, businessID snowflake.ID, req domain.ListRequest) (domain.ListResponse, error) {
	if businessID == 0 {
		return domain.ListResponse{}, domain.ErrInvalidBusiness
	}

	filter := domain.ListFilter{Search: strings.TrimSpace(req.Search)}
	switch req.Status {
	case "", domain.StatusAll:
	case domain.StatusActive:
		active := true
		filter.Active = &active
	case domain.StatusInactive:
		active := false
		filter.Active = &active
	default:
		return domain.ListResponse{}, domain.ErrInvalidStatus
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, businessID, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(product *domain.Product) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        product.ID.String(),
			CreatedAt: product.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, *item)
	}

	return domain.ListResponse{
		PageInfo: *pageInfo,
		Products: products,
	}, nil
}

func (s *Service) Update(ctx context.Context, businessID, id snowflake.ID, req domain.UpdateRequest) (*domain.Product, error) {
	if _, err := s.Get(ctx, businessID, id); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := validateProduct(name, domain.CreateRequest{Name: name, Price: req.Price}).OrNil(); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"name":        name,
		"price":       req.Price,
		"description": strings.TrimSpace(req.Description),
		"sku":         strings.TrimSpace(req.SKU),
		"updated_at":  time.Now().UTC(),
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	if err := s.repo.UpdateFields(ctx, s.db, businessID, id, fields); err != nil {
		return nil, err
	}

	return s.Get(ctx, businessID, id)
}

func (s *Service) Delete(ctx context.Context, businessID, id snowflake.ID) error {
	if _, err := s.Get(ctx, businessID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, businessID, id)
}

func (s *Service) AttachImage(ctx context.Context, businessID, id snowflake.ID, upload domain.ImageUpload) (*domain.Product, error) {
	if _, err := s.Get(ctx, businessID, id); err != nil {
		return nil, err
	}

	vErr := &validation.Error{}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		vErr.Add("image", "invalid_image_type", "please upload a valid image file")
	}
	if upload.Size > maxImageBytes || int64(len(upload.Data)) > maxImageBytes {
		vErr.Add("image", "image_too_large", "image file too large, maximum size is 5MB")
	}
	if err := vErr.OrNil(); err != nil {
		return nil, err
	}

	path, err := s.media.Save(upload.Filename, upload.Data)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"image_path": path,
		"updated_at": time.Now().UTC(),
	}
	if err := s.repo.UpdateFields(ctx, s.db, businessID, id, fields); err != nil {
		return nil, err
	}

	return s.Get(ctx, businessID, id)
}

func validateProduct(name string, req domain.CreateRequest) *validation.Error {
	vErr := &validation.Error{}
	if len(name) < minNameLength {
		vErr.Add("name", "invalid_name", "product name must be at least 2 characters long")
	}
	if req.Price != nil && req.Price.IsNegative() {
		vErr.Add("price", "invalid_price", "price cannot be negative")
	}
	return vErr
}
