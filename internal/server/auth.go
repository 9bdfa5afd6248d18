package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/karobarhq/karobar/internal/auth/domain"
	businessdomain "github.com/karobarhq/karobar/internal/business/domain"
)

type signupRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessName string `json:"business_name"`
}

// Signup creates the owner account, its (still private) business, and
// an authenticated session in one step.
func (s *Server) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	user, err := s.authSvc.CreateUser(ctx, authdomain.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	businessName := strings.TrimSpace(req.BusinessName)
	if businessName == "" {
		businessName = user.DisplayName + "'s Business"
	}
	biz, _, err := s.businessSvc.Ensure(ctx, businessdomain.EnsureRequest{
		OwnerID:     user.ID,
		DefaultName: businessName,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.authSvc.Login(ctx, authdomain.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.sessions.Set(c, result.RawToken, result.ExpiresAt)

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{
		"user_id":  user.ID.String(),
		"email":    user.Email,
		"business": biz,
	}})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authSvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.sessions.Set(c, result.RawToken, result.ExpiresAt)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"user_id":      result.User.ID.String(),
		"email":        result.User.Email,
		"display_name": result.User.DisplayName,
	}})
}

func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		if err := s.authSvc.Logout(c.Request.Context(), token); err != nil {
			AbortWithError(c, err)
			return
		}
	}
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"logged_out": true}})
}
