package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	businessdomain "github.com/karobarhq/karobar/internal/business/domain"
	productdomain "github.com/karobarhq/karobar/internal/product/domain"
)

type fakeProductService struct {
	product      *productdomain.Product
	list         productdomain.ListResponse
	err          error
	lastBusiness snowflake.ID
	lastCreate   productdomain.CreateRequest
	deleteCalls  int
}

func (f *fakeProductService) Create(ctx context.Context, businessID snowflake.ID, req productdomain.CreateRequest) (*productdomain.Product, error) {
	_ = ctx
	f.lastBusiness = businessID
	f.lastCreate = req
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

func (f *fakeProductService) Get(ctx context.Context, businessID, id snowflake.ID) (*productdomain.Product, error) {
	_ = ctx
	_ = id
	f.lastBusiness = businessID
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

func (f *fakeProductService) List(ctx context.Context, businessID snowflake.ID, req productdomain.ListRequest) (productdomain.ListResponse, error) {
	_ = ctx
	_ = req
	f.lastBusiness = businessID
	return f.list, f.err
}

func (f *fakeProductService) Update(ctx context.Context, businessID, id snowflake.ID, req productdomain.UpdateRequest) (*productdomain.Product, error) {
	_ = ctx
	_ = id
	_ = req
	f.lastBusiness = businessID
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

func (f *fakeProductService) Delete(ctx context.Context, businessID, id snowflake.ID) error {
	_ = ctx
	_ = id
	f.lastBusiness = businessID
	f.deleteCalls++
	return f.err
}

func (f *fakeProductService) AttachImage(ctx context.Context, businessID, id snowflake.ID, upload productdomain.ImageUpload) (*productdomain.Product, error) {
	_ = ctx
	_ = id
	_ = upload
	f.lastBusiness = businessID
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

func newProductRouter(srv *Server, userID snowflake.ID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandlingMiddleware(), stubAuth(userID))
	router.GET("/v1/products", srv.ListProducts)
	router.POST("/v1/products", srv.CreateProduct)
	router.GET("/v1/products/:id", srv.GetProduct)
	router.DELETE("/v1/products/:id", srv.DeleteProduct)
	return router
}

func TestCreateProductScopesToOwnedBusiness(t *testing.T) {
	productSvc := &fakeProductService{product: &productdomain.Product{
		ID:   snowflake.ID(9),
		Name: "Silk Saree",
	}}
	srv := &Server{
		businessSvc: &fakeBusinessService{business: &businessdomain.Business{ID: snowflake.ID(42)}},
		productSvc:  productSvc,
	}
	router := newProductRouter(srv, snowflake.ID(7))

	body := bytes.NewBufferString(`{"name":"Silk Saree","price":"2499.00","description":"Handwoven"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/products", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if productSvc.lastBusiness != snowflake.ID(42) {
		t.Fatalf("expected business 42, got %d", productSvc.lastBusiness)
	}
	if productSvc.lastCreate.Price == nil || productSvc.lastCreate.Price.String() != "2499" {
		t.Fatalf("unexpected price %+v", productSvc.lastCreate.Price)
	}
}

func TestProductRoutesRequireABusiness(t *testing.T) {
	productSvc := &fakeProductService{}
	srv := &Server{
		businessSvc: &fakeBusinessService{err: businessdomain.ErrNotFound},
		productSvc:  productSvc,
	}
	router := newProductRouter(srv, snowflake.ID(7))

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if productSvc.lastBusiness != 0 {
		t.Fatal("expected product service not to be called without a business")
	}
}

func TestGetProductRejectsMalformedID(t *testing.T) {
	srv := &Server{
		businessSvc: &fakeBusinessService{business: &businessdomain.Business{ID: snowflake.ID(42)}},
		productSvc:  &fakeProductService{},
	}
	router := newProductRouter(srv, snowflake.ID(7))

	req := httptest.NewRequest(http.MethodGet, "/v1/products/not-a-number", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestDeleteProductReturnsAcknowledgement(t *testing.T) {
	productSvc := &fakeProductService{}
	srv := &Server{
		businessSvc: &fakeBusinessService{business: &businessdomain.Business{ID: snowflake.ID(42)}},
		productSvc:  productSvc,
	}
	router := newProductRouter(srv, snowflake.ID(7))

	req := httptest.NewRequest(http.MethodDelete, "/v1/products/9", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if productSvc.deleteCalls != 1 {
		t.Fatalf("expected one delete call, got %d", productSvc.deleteCalls)
	}
	if !strings.Contains(resp.Body.String(), `"deleted":true`) {
		t.Fatalf("expected delete acknowledgement, got %s", resp.Body.String())
	}
}
