package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	productdomain "github.com/karobarhq/karobar/internal/product/domain"
	"github.com/shopspring/decimal"
)

// ownedBusinessID resolves the authenticated owner to their business,
// the scope for every product operation.
func (s *Server) ownedBusinessID(c *gin.Context) (snowflake.ID, bool) {
	owner, ok := ownerID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return 0, false
	}

	business, err := s.businessSvc.FindByOwner(c.Request.Context(), owner)
	if err != nil {
		AbortWithError(c, err)
		return 0, false
	}
	return business.ID, true
}

func productIDParam(c *gin.Context) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || id == 0 {
		AbortWithError(c, productdomain.ErrNotFound)
		return 0, false
	}
	return id, true
}

type productRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description string           `json:"description"`
	SKU         string           `json:"sku"`
	Active      *bool            `json:"active"`
}

func (s *Server) CreateProduct(c *gin.Context) {
	businessID, ok := s.ownedBusinessID(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.productSvc.Create(c.Request.Context(), businessID, productdomain.CreateRequest{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		SKU:         req.SKU,
		Active:      req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": product})
}

func (s *Server) ListProducts(c *gin.Context) {
	businessID, ok := s.ownedBusinessID(c)
	if !ok {
		return
	}

	var query struct {
		Search    string `form:"search"`
		Status    string `form:"status"`
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.List(c.Request.Context(), businessID, productdomain.ListRequest{
		Search:    query.Search,
		Status:    query.Status,
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProduct(c *gin.Context) {
	businessID, ok := s.ownedBusinessID(c)
	if !ok {
		return
	}
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	product, err := s.productSvc.Get(c.Request.Context(), businessID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	businessID, ok := s.ownedBusinessID(c)
	if !ok {
		return
	}
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.productSvc.Update(c.Request.Context(), businessID, id, productdomain.UpdateRequest{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		SKU:         req.SKU,
		Active:      req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	businessID, ok := s.ownedBusinessID(c)
	if !ok {
		return
	}
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	if err := s.productSvc.Delete(c.Request.Context(), businessID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

const maxUploadBytes = 5*1024*1024 + 1

func (s *Server) UploadProductImage(c *gin.Context) {
	businessID, ok := s.ownedBusinessID(c)
	if !ok {
		return
	}
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.productSvc.AttachImage(c.Request.Context(), businessID, id, productdomain.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}
