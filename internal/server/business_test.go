package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	businessdomain "github.com/karobarhq/karobar/internal/business/domain"
	catalogdomain "github.com/karobarhq/karobar/internal/catalog/domain"
	"github.com/karobarhq/karobar/internal/config"
)

// stubAuth injects an authenticated owner without going through the
// cookie flow.
func stubAuth(userID snowflake.ID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextUserIDKey, userID)
		c.Next()
	}
}

func newOwnerRouter(srv *Server, userID snowflake.ID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandlingMiddleware(), stubAuth(userID))
	router.GET("/v1/business", srv.GetBusiness)
	router.GET("/v1/business/qr", srv.DownloadQR)
	return router
}

func TestGetBusinessIncludesPublicURL(t *testing.T) {
	srv := &Server{
		cfg: config.Config{BaseURL: "http://localhost:8080"},
		businessSvc: &fakeBusinessService{business: &businessdomain.Business{
			ID:   snowflake.ID(42),
			Name: "Chai Point",
			Slug: "chai-point",
		}},
	}
	router := newOwnerRouter(srv, snowflake.ID(7))

	req := httptest.NewRequest(http.MethodGet, "/v1/business", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "http://localhost:8080/v1/catalogs/chai-point") {
		t.Fatalf("expected public url in payload, got %s", resp.Body.String())
	}
}

func TestGetBusinessWithoutBusinessReturns404(t *testing.T) {
	srv := &Server{businessSvc: &fakeBusinessService{err: businessdomain.ErrNotFound}}
	router := newOwnerRouter(srv, snowflake.ID(7))

	req := httptest.NewRequest(http.MethodGet, "/v1/business", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestDownloadQRSetsAttachmentHeaders(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv := &Server{catalogSvc: &fakeCatalogService{qr: &catalogdomain.QRDownload{
		Filename: "chai-point-whatsapp-qr.png",
		PNG:      png,
	}}}
	router := newOwnerRouter(srv, snowflake.ID(7))

	req := httptest.NewRequest(http.MethodGet, "/v1/business/qr", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("expected image/png, got %q", got)
	}
	disposition := resp.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, `filename="chai-point-whatsapp-qr.png"`) {
		t.Fatalf("unexpected content disposition %q", disposition)
	}
	if resp.Body.Len() != len(png) {
		t.Fatalf("expected %d body bytes, got %d", len(png), resp.Body.Len())
	}
}

func TestDownloadQRWithoutNumberReturnsValidationError(t *testing.T) {
	srv := &Server{catalogSvc: &fakeCatalogService{err: catalogdomain.ErrNoWhatsappNumber}}
	router := newOwnerRouter(srv, snowflake.ID(7))

	req := httptest.NewRequest(http.MethodGet, "/v1/business/qr", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "whatsapp_number_missing") {
		t.Fatalf("expected whatsapp_number_missing in payload, got %s", resp.Body.String())
	}
}
