package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	businessdomain "github.com/karobarhq/karobar/internal/business/domain"
	productdomain "github.com/karobarhq/karobar/internal/product/domain"
)

// ProductView is a product decorated with its contact action. The link
// is recomputed on every assembly so it can never go stale relative to
// the business's current phone number.
type ProductView struct {
	productdomain.Product
	WhatsappLink string `json:"whatsapp_link,omitempty"`
}

// CatalogView is the presentation-ready public catalog of one business.
type CatalogView struct {
	Business     businessdomain.Business `json:"business"`
	Products     []ProductView           `json:"products"`
	ContactLink  string                  `json:"contact_link,omitempty"`
	CatalogURL   string                  `json:"catalog_url"`
	ProductCount int                     `json:"product_count"`
}

// Stats summarizes the public storefront index.
type Stats struct {
	TotalCatalogs int64 `json:"total_catalogues"`
	TotalProducts int64 `json:"total_products"`
}

// QRDownload is a rendered QR artifact with its attachment filename.
type QRDownload struct {
	Filename string
	PNG      []byte
}

type Service interface {
	// Assemble builds the public catalog for a slug. A private business
	// is indistinguishable from a missing one.
	Assemble(ctx context.Context, slug string) (*CatalogView, error)
	// AssembleForOwner builds the same view for the owner's dashboard
	// preview; the ownership check replaces the public flag.
	AssembleForOwner(ctx context.Context, ownerID snowflake.ID) (*CatalogView, error)
	Stats(ctx context.Context) (Stats, error)
	// OwnerQR renders the owner's general contact link as a PNG.
	OwnerQR(ctx context.Context, ownerID snowflake.ID) (*QRDownload, error)
}

var (
	ErrNotFound         = errors.New("catalog_not_found")
	ErrNoWhatsappNumber = errors.New("whatsapp_number_missing")
)
