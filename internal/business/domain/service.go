package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/karobarhq/karobar/pkg/db/pagination"
)

type EnsureRequest struct {
	OwnerID     snowflake.ID
	DefaultName string
}

type UpdateProfileRequest struct {
	Name           string
	Description    string
	WhatsappNumber string
	City           string
	NativePlace    string
	Public         *bool
}

type ListPublicRequest struct {
	PageToken string
	PageSize  int
}

type ListPublicResponse struct {
	pagination.PageInfo
	Businesses []Business `json:"businesses"`
}

type Service interface {
	// Ensure returns the owner's business, creating it with sane
	// defaults when absent. Creation is idempotent per owner.
	Ensure(ctx context.Context, req EnsureRequest) (*Business, bool, error)
	// FindByOwner returns the owner's business or ErrNotFound. It never
	// creates one as a side effect.
	FindByOwner(ctx context.Context, ownerID snowflake.ID) (*Business, error)
	UpdateProfile(ctx context.Context, ownerID snowflake.ID, req UpdateProfileRequest) (*Business, error)
	// AllocateSlug derives a free URL-safe token from a display name
	// without claiming it. The unique index stays the authority.
	AllocateSlug(ctx context.Context, name string) (string, error)
	ListPublic(ctx context.Context, req ListPublicRequest) (ListPublicResponse, error)
}

var (
	ErrInvalidOwner = errors.New("invalid_owner")
	ErrNotFound     = errors.New("business_not_found")
	ErrSlugConflict = errors.New("slug_conflict")
)
