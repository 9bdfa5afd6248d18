package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	businessdomain "github.com/karobarhq/karobar/internal/business/domain"
	businessrepo "github.com/karobarhq/karobar/internal/business/repository"
	"github.com/karobarhq/karobar/internal/catalog/domain"
	"github.com/karobarhq/karobar/internal/config"
	productdomain "github.com/karobarhq/karobar/internal/product/domain"
	productrepo "github.com/karobarhq/karobar/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func setupCatalog(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&businessdomain.Business{}, &productdomain.Product{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		Cfg:          config.Config{BaseURL: "https://karobar.example"},
		BusinessRepo: businessrepo.Provide(),
		ProductRepo:  productrepo.Provide(),
	})
	return &fixture{svc: svc, db: db, node: node}
}

func (f *fixture) addBusiness(t *testing.T, name, slug, phone string, public bool) *businessdomain.Business {
	t.Helper()
	owner := f.node.Generate()
	business := &businessdomain.Business{
		ID:             f.node.Generate(),
		OwnerID:        &owner,
		Name:           name,
		Slug:           slug,
		WhatsappNumber: phone,
		Public:         public,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	require.NoError(t, f.db.Create(business).Error)
	return business
}

func (f *fixture) addProduct(t *testing.T, businessID snowflake.ID, name string, active bool) *productdomain.Product {
	t.Helper()
	product := &productdomain.Product{
		ID:         f.node.Generate(),
		BusinessID: businessID,
		Name:       name,
		Active:     active,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func TestAssemblePublicCatalog(t *testing.T) {
	f := setupCatalog(t)
	business := f.addBusiness(t, "Nisha's Boutique", "nishas-boutique", "+919000000001", true)
	f.addProduct(t, business.ID, "Silk Saree", true)
	f.addProduct(t, business.ID, "Old Stock", false)

	view, err := f.svc.Assemble(context.Background(), "nishas-boutique")
	require.NoError(t, err)

	require.Len(t, view.Products, 1)
	assert.Equal(t, "Silk Saree", view.Products[0].Name)
	assert.Contains(t, view.Products[0].WhatsappLink, "https://wa.me/919000000001?text=")
	assert.Contains(t, view.Products[0].WhatsappLink, "Silk%20Saree")
	assert.Equal(t, 1, view.ProductCount)
	assert.Equal(t, "https://karobar.example/v1/catalogs/nishas-boutique", view.CatalogURL)
	assert.NotEmpty(t, view.ContactLink)
}

func TestAssemblePrivateIndistinguishableFromMissing(t *testing.T) {
	f := setupCatalog(t)
	business := f.addBusiness(t, "Hidden Shop", "hidden-shop", "+919000000002", false)
	f.addProduct(t, business.ID, "Secret Item", true)

	_, errPrivate := f.svc.Assemble(context.Background(), "hidden-shop")
	_, errMissing := f.svc.Assemble(context.Background(), "no-such-slug")

	assert.ErrorIs(t, errPrivate, domain.ErrNotFound)
	assert.ErrorIs(t, errMissing, domain.ErrNotFound)
	assert.Equal(t, errMissing, errPrivate)
}

func TestAssembleEmptyCatalogKeepsContactLink(t *testing.T) {
	f := setupCatalog(t)
	f.addBusiness(t, "Empty Shop", "empty-shop", "+919000000003", true)

	view, err := f.svc.Assemble(context.Background(), "empty-shop")
	require.NoError(t, err)
	assert.Empty(t, view.Products)
	assert.Equal(t, 0, view.ProductCount)
	assert.NotEmpty(t, view.ContactLink)
}

func TestAssembleWithoutPhoneOmitsLinks(t *testing.T) {
	f := setupCatalog(t)
	business := f.addBusiness(t, "Phoneless", "phoneless", "", true)
	f.addProduct(t, business.ID, "Listed Anyway", true)

	view, err := f.svc.Assemble(context.Background(), "phoneless")
	require.NoError(t, err)
	require.Len(t, view.Products, 1)
	assert.Empty(t, view.Products[0].WhatsappLink)
	assert.Empty(t, view.ContactLink)
}

func TestAssembleOrdersNewestFirst(t *testing.T) {
	f := setupCatalog(t)
	business := f.addBusiness(t, "Ordered", "ordered", "+919000000004", true)
	f.addProduct(t, business.ID, "Oldest", true)
	f.addProduct(t, business.ID, "Middle", true)
	f.addProduct(t, business.ID, "Newest", true)

	view, err := f.svc.Assemble(context.Background(), "ordered")
	require.NoError(t, err)
	require.Len(t, view.Products, 3)
	assert.Equal(t, "Newest", view.Products[0].Name)
	assert.Equal(t, "Oldest", view.Products[2].Name)
}

func TestAssembleForOwnerIgnoresPublicFlag(t *testing.T) {
	f := setupCatalog(t)
	business := f.addBusiness(t, "Draft Shop", "draft-shop", "+919000000005", false)
	f.addProduct(t, business.ID, "Draft Item", true)

	view, err := f.svc.AssembleForOwner(context.Background(), *business.OwnerID)
	require.NoError(t, err)
	require.Len(t, view.Products, 1)
}

func TestStatsCountsPublicOnly(t *testing.T) {
	f := setupCatalog(t)
	pub := f.addBusiness(t, "Public Shop", "public-shop", "+919000000006", true)
	priv := f.addBusiness(t, "Private Shop", "private-shop", "+919000000007", false)
	f.addProduct(t, pub.ID, "Counted", true)
	f.addProduct(t, pub.ID, "Inactive", false)
	f.addProduct(t, priv.ID, "Not Counted", true)

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalCatalogs)
	assert.Equal(t, int64(1), stats.TotalProducts)
}

func TestOwnerQR(t *testing.T) {
	f := setupCatalog(t)
	business := f.addBusiness(t, "QR Shop", "qr-shop", "+919000000008", true)

	download, err := f.svc.OwnerQR(context.Background(), *business.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, "qr-shop-whatsapp-qr.png", download.Filename)
	assert.NotEmpty(t, download.PNG)
}

func TestOwnerQRRequiresPhone(t *testing.T) {
	f := setupCatalog(t)
	business := f.addBusiness(t, "No Phone", "no-phone", "", true)

	_, err := f.svc.OwnerQR(context.Background(), *business.OwnerID)
	assert.ErrorIs(t, err, domain.ErrNoWhatsappNumber)
}
