package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	businessdomain "github.com/karobarhq/karobar/internal/business/domain"
	"github.com/karobarhq/karobar/internal/catalog/domain"
	"github.com/karobarhq/karobar/internal/config"
	productdomain "github.com/karobarhq/karobar/internal/product/domain"
	"github.com/karobarhq/karobar/internal/qr"
	"github.com/karobarhq/karobar/internal/whatsapp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Cfg          config.Config
	BusinessRepo businessdomain.Repository
	ProductRepo  productdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	cfg          config.Config
	businessRepo businessdomain.Repository
	productRepo  productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("catalog.service"),
		cfg:          p.Cfg,
		businessRepo: p.BusinessRepo,
		productRepo:  p.ProductRepo,
	}
}

func (s *Service) Assemble(ctx context.Context, slug string) (*domain.CatalogView, error) {
	business, err := s.businessRepo.FindBySlug(ctx, s.db, slug)
	if err != nil {
		return nil, err
	}
	// A private catalog answers exactly like a missing one so the slug
	// does not leak business existence.
	if business == nil || !business.Public {
		return nil, domain.ErrNotFound
	}
	return s.assemble(ctx, business)
}

func (s *Service) AssembleForOwner(ctx context.Context, ownerID snowflake.ID) (*domain.CatalogView, error) {
	business, err := s.businessRepo.FindByOwner(ctx, s.db, ownerID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	return s.assemble(ctx, business)
}

func (s *Service) assemble(ctx context.Context, business *businessdomain.Business) (*domain.CatalogView, error) {
	products, err := s.productRepo.ListActive(ctx, s.db, business.ID)
	if err != nil {
		return nil, err
	}

	catalogURL := s.cfg.PublicCatalogURL(business.Slug)

	views := make([]domain.ProductView, 0, len(products))
	for _, product := range products {
		view := domain.ProductView{Product: *product}
		if business.WhatsappNumber != "" {
			view.WhatsappLink = whatsapp.BuildLink(business.WhatsappNumber, productMessage(business.Name, product.Name, catalogURL))
		}
		views = append(views, view)
	}

	view := &domain.CatalogView{
		Business:     *business,
		Products:     views,
		CatalogURL:   catalogURL,
		ProductCount: len(products),
	}
	if business.WhatsappNumber != "" {
		view.ContactLink = whatsapp.BuildLink(business.WhatsappNumber, generalMessage(business.Name, catalogURL))
	}

	return view, nil
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	catalogs, err := s.businessRepo.CountPublic(ctx, s.db)
	if err != nil {
		return domain.Stats{}, err
	}
	products, err := s.productRepo.CountActivePublic(ctx, s.db)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{
		TotalCatalogs: catalogs,
		TotalProducts: products,
	}, nil
}

func (s *Service) OwnerQR(ctx context.Context, ownerID snowflake.ID) (*domain.QRDownload, error) {
	business, err := s.businessRepo.FindByOwner(ctx, s.db, ownerID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	if business.WhatsappNumber == "" {
		return nil, domain.ErrNoWhatsappNumber
	}

	catalogURL := s.cfg.PublicCatalogURL(business.Slug)
	link := whatsapp.BuildLink(business.WhatsappNumber, qrMessage(business.Name, catalogURL))

	png, err := qr.EncodePNG(link)
	if err != nil {
		return nil, err
	}

	return &domain.QRDownload{
		Filename: business.Slug + "-whatsapp-qr.png",
		PNG:      png,
	}, nil
}

func productMessage(businessName, productName, catalogURL string) string {
	return fmt.Sprintf("Hi %s, I'm interested in your product: *%s*.\n\nSeen on your catalog: %s",
		businessName, productName, catalogURL)
}

func generalMessage(businessName, catalogURL string) string {
	return fmt.Sprintf("Hi! I found your business '%s' and would like to know more. %s",
		businessName, catalogURL)
}

func qrMessage(businessName, catalogURL string) string {
	return fmt.Sprintf("Hi! I'm interested in your products from %s. %s",
		businessName, catalogURL)
}
