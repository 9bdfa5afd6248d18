package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/karobarhq/karobar/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Name        string
	Price       *decimal.Decimal
	Description string
	SKU         string
	Active      *bool
}

type UpdateRequest struct {
	Name        string
	Price       *decimal.Decimal
	Description string
	SKU         string
	Active      *bool
}

// StatusAll, StatusActive, StatusInactive are the accepted values of
// the list status filter.
const (
	StatusAll      = "all"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type ListRequest struct {
	Search    string
	Status    string
	PageToken string
	PageSize  int
}

type ListResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

// ImageUpload carries a validated-at-the-edge file upload. Size and
// declared content type are checked before any bytes are stored.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// Service operations are scoped to the owning business on every call;
// a product is never reachable through another business's ID.
type Service interface {
	Create(ctx context.Context, businessID snowflake.ID, req CreateRequest) (*Product, error)
	Get(ctx context.Context, businessID, id snowflake.ID) (*Product, error)
	List(ctx context.Context, businessID snowflake.ID, req ListRequest) (ListResponse, error)
	Update(ctx context.Context, businessID, id snowflake.ID, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, businessID, id snowflake.ID) error
	AttachImage(ctx context.Context, businessID, id snowflake.ID, upload ImageUpload) (*Product, error)
}

var (
	ErrInvalidBusiness = errors.New("invalid_business")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrNotFound        = errors.New("product_not_found")
)
