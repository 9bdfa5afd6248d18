package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/karobarhq/karobar/internal/auth/domain"
	"github.com/karobarhq/karobar/internal/auth/session"
	"github.com/karobarhq/karobar/internal/config"
)

type fakeAuthService struct {
	session   *authdomain.Session
	authErr   error
	lastToken string
}

func (f *fakeAuthService) CreateUser(ctx context.Context, req authdomain.CreateUserRequest) (*authdomain.User, error) {
	_ = ctx
	return &authdomain.User{ID: snowflake.ID(200), Email: req.Email}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	_ = ctx
	_ = req
	return &authdomain.LoginResult{
		User:     &authdomain.User{ID: snowflake.ID(200)},
		RawToken: "session-token",
	}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	_ = ctx
	_ = rawToken
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	_ = ctx
	f.lastToken = rawToken
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.session, nil
}

func (f *fakeAuthService) GetUser(ctx context.Context, id snowflake.ID) (*authdomain.User, error) {
	_ = ctx
	return &authdomain.User{ID: id}, nil
}

func newAuthRouter(authSvc authdomain.Service) (*gin.Engine, *session.Manager) {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager(config.Config{})
	srv := &Server{authSvc: authSvc, sessions: sessions}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/v1/business", srv.AuthRequired(), func(c *gin.Context) {
		id, ok := ownerID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "missing owner"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.String()})
	})
	return router, sessions
}

func TestAuthRequiredRejectsMissingCookie(t *testing.T) {
	authSvc := &fakeAuthService{}
	router, _ := newAuthRouter(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/v1/business", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
	if authSvc.lastToken != "" {
		t.Fatal("expected authenticate not to be called without a cookie")
	}
}

func TestAuthRequiredRejectsExpiredSession(t *testing.T) {
	authSvc := &fakeAuthService{authErr: authdomain.ErrSessionExpired}
	router, sessions := newAuthRouter(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/v1/business", nil)
	req.AddCookie(&http.Cookie{Name: sessions.CookieName(), Value: "stale-token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
	if authSvc.lastToken != "stale-token" {
		t.Fatalf("expected token to reach authenticate, got %q", authSvc.lastToken)
	}

	clearedCookie := false
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == sessions.CookieName() && cookie.MaxAge < 0 {
			clearedCookie = true
		}
	}
	if !clearedCookie {
		t.Fatal("expected session cookie to be cleared")
	}
}

func TestAuthRequiredStoresUserID(t *testing.T) {
	authSvc := &fakeAuthService{session: &authdomain.Session{
		ID:     snowflake.ID(300),
		UserID: snowflake.ID(200),
	}}
	router, sessions := newAuthRouter(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/v1/business", nil)
	req.AddCookie(&http.Cookie{Name: sessions.CookieName(), Value: "valid-token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if body := resp.Body.String(); !strings.Contains(body, `"200"`) {
		t.Fatalf("expected user id in body, got %s", body)
	}
}
