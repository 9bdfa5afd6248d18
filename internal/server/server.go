package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/karobarhq/karobar/internal/auth"
	authdomain "github.com/karobarhq/karobar/internal/auth/domain"
	"github.com/karobarhq/karobar/internal/auth/session"
	"github.com/karobarhq/karobar/internal/business"
	businessdomain "github.com/karobarhq/karobar/internal/business/domain"
	"github.com/karobarhq/karobar/internal/catalog"
	catalogdomain "github.com/karobarhq/karobar/internal/catalog/domain"
	"github.com/karobarhq/karobar/internal/config"
	"github.com/karobarhq/karobar/internal/media"
	"github.com/karobarhq/karobar/internal/product"
	productdomain "github.com/karobarhq/karobar/internal/product/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	auth.Module,
	business.Module,
	product.Module,
	catalog.Module,
	media.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(RequestLogger(log))
	r.Use(MetricsMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	authSvc     authdomain.Service
	sessions    *session.Manager
	businessSvc businessdomain.Service
	productSvc  productdomain.Service
	catalogSvc  catalogdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	AuthSvc     authdomain.Service
	Sessions    *session.Manager
	BusinessSvc businessdomain.Service
	ProductSvc  productdomain.Service
	CatalogSvc  catalogdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		authSvc:     p.AuthSvc,
		sessions:    p.Sessions,
		businessSvc: p.BusinessSvc,
		productSvc:  p.ProductSvc,
		catalogSvc:  p.CatalogSvc,
	}

	svc.registerAuthRoutes()
	svc.registerPublicRoutes()
	svc.registerOwnerRoutes()

	return svc
}

func (s *Server) registerAuthRoutes() {
	grp := s.engine.Group("/v1/auth")
	grp.POST("/signup", s.Signup)
	grp.POST("/login", s.Login)
	grp.POST("/logout", s.Logout)
}

func (s *Server) registerPublicRoutes() {
	grp := s.engine.Group("/v1/catalogs")
	grp.GET("", s.ListCatalogs)
	grp.GET("/stats", s.CatalogStats)
	grp.GET("/:slug", s.PublicCatalog)
}

func (s *Server) registerOwnerRoutes() {
	grp := s.engine.Group("/v1", s.AuthRequired())

	grp.GET("/business", s.GetBusiness)
	grp.POST("/business", s.EnsureBusiness)
	grp.PUT("/business", s.UpdateBusiness)
	grp.GET("/business/preview", s.PreviewCatalog)
	grp.GET("/business/qr", s.DownloadQR)

	grp.GET("/products", s.ListProducts)
	grp.POST("/products", s.CreateProduct)
	grp.GET("/products/:id", s.GetProduct)
	grp.PUT("/products/:id", s.UpdateProduct)
	grp.DELETE("/products/:id", s.DeleteProduct)
	grp.POST("/products/:id/image", s.UploadProductImage)
}
