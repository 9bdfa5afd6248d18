package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	businessdomain "github.com/karobarhq/karobar/internal/business/domain"
)

func (s *Server) GetBusiness(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	business, err := s.businessSvc.FindByOwner(c.Request.Context(), owner)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"business":   business,
		"public_url": s.cfg.PublicCatalogURL(business.Slug),
	}})
}

type ensureBusinessRequest struct {
	Name string `json:"name"`
}

// EnsureBusiness is the explicit create-if-absent operation; reads
// never create a business as a side effect.
func (s *Server) EnsureBusiness(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req ensureBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	business, created, err := s.businessSvc.Ensure(c.Request.Context(), businessdomain.EnsureRequest{
		OwnerID:     owner,
		DefaultName: strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": business})
}

type updateBusinessRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	WhatsappNumber string `json:"whatsapp_number"`
	City           string `json:"city"`
	NativePlace    string `json:"native_place"`
	Public         *bool  `json:"public"`
}

func (s *Server) UpdateBusiness(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req updateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	business, err := s.businessSvc.UpdateProfile(c.Request.Context(), owner, businessdomain.UpdateProfileRequest{
		Name:           req.Name,
		Description:    req.Description,
		WhatsappNumber: req.WhatsappNumber,
		City:           req.City,
		NativePlace:    req.NativePlace,
		Public:         req.Public,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": business})
}

// PreviewCatalog assembles the owner's catalog regardless of the
// public flag, for the dashboard.
func (s *Server) PreviewCatalog(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	view, err := s.catalogSvc.AssembleForOwner(c.Request.Context(), owner)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (s *Server) DownloadQR(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	download, err := s.catalogSvc.OwnerQR(c.Request.Context(), owner)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+download.Filename+`"`)
	c.Data(http.StatusOK, "image/png", download.PNG)
}
