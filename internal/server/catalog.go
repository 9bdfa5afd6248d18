package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	businessdomain "github.com/karobarhq/karobar/internal/business/domain"
)

func (s *Server) ListCatalogs(c *gin.Context) {
	var query struct {
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.businessSvc.ListPublic(c.Request.Context(), businessdomain.ListPublicRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CatalogStats(c *gin.Context) {
	stats, err := s.catalogSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (s *Server) PublicCatalog(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	view, err := s.catalogSvc.Assemble(c.Request.Context(), slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}
