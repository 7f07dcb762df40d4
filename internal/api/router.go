package api

import (
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/devboard/devboard-api/docs"
	"github.com/devboard/devboard-api/internal/api/handler"
	"github.com/devboard/devboard-api/internal/api/middleware"
	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/service"
	"github.com/devboard/devboard-api/internal/infrastructure/config"
	mongorepo "github.com/devboard/devboard-api/internal/infrastructure/db/mongo"
	redistracker "github.com/devboard/devboard-api/internal/infrastructure/db/redis"
	"github.com/devboard/devboard-api/internal/infrastructure/storage"
	"github.com/devboard/devboard-api/pkg/logger"
)

// Request body ceilings. Upload routes accept a full multi-file batch
// (5 files at 5 MiB each, plus multipart framing); everything else is JSON
// and stays small.
const (
	defaultBodyLimit = "10M"
	uploadBodyLimit  = "30M"
)

// uploadRoute reports whether the matched route belongs to the upload group,
// which carries its own, larger body limit.
func uploadRoute(c echo.Context) bool {
	return strings.HasPrefix(c.Path(), "/api/v1/upload")
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, store *storage.LocalStore) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.Production())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimitWithConfig(echomiddleware.BodyLimitConfig{
		Skipper: uploadRoute,
		Limit:   defaultBodyLimit,
	}))
	e.Use(echoprometheus.NewMiddleware("devboard"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	blogRepo := mongorepo.NewBlogRepository(db)
	jobRepo := mongorepo.NewJobRepository(db)
	assetRepo := mongorepo.NewAssetRepository(db)
	views := redistracker.NewViewTracker(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour, log)
	blogService := service.NewBlogService(blogRepo, views, log)
	jobService := service.NewJobService(jobRepo, views, log)
	assetService := service.NewAssetService(assetRepo, log)
	uploadService := service.NewUploadService(store, log)

	authHandler := handler.NewAuthHandler(authService)
	blogHandler := handler.NewBlogHandler(blogService)
	jobHandler := handler.NewJobHandler(jobService)
	assetHandler := handler.NewAssetHandler(assetService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	auth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authHandler.Me, auth)
	authGroup.PUT("/profile", authHandler.UpdateProfile, auth)
	authGroup.PUT("/password", authHandler.ChangePassword, auth)
	authGroup.DELETE("/account", authHandler.Deactivate, auth)

	// --- Blog routes ---
	blogs := v1.Group("/blogs")
	blogs.GET("", blogHandler.List, optionalAuth)
	blogs.GET("/stats", blogHandler.Stats, auth, adminOnly)
	blogs.GET("/:slug", blogHandler.Get, optionalAuth)
	blogs.POST("", blogHandler.Create, auth)
	blogs.PUT("/:id", blogHandler.Update, auth)
	blogs.DELETE("/:id", blogHandler.Delete, auth)
	blogs.POST("/:id/like", blogHandler.Like, auth)
	blogs.DELETE("/:id/like", blogHandler.Unlike, auth)
	blogs.POST("/:id/comments", blogHandler.AddComment, auth)
	blogs.DELETE("/:id/comments/:commentId", blogHandler.DeleteComment, auth)

	// --- Job routes ---
	jobs := v1.Group("/jobs")
	jobs.GET("", jobHandler.List)
	jobs.GET("/stats", jobHandler.Stats, auth, adminOnly)
	jobs.GET("/:slug", jobHandler.Get)
	jobs.POST("/:slug/apply", jobHandler.Apply)
	jobs.POST("", jobHandler.Create, auth, adminOnly)
	jobs.PUT("/:id", jobHandler.Update, auth, adminOnly)
	jobs.DELETE("/:id", jobHandler.Delete, auth, adminOnly)

	// --- Asset routes ---
	assets := v1.Group("/assets")
	assets.GET("", assetHandler.List)
	assets.GET("/:key", assetHandler.Get)
	assets.PUT("/:key", assetHandler.Upsert, auth, adminOnly)
	assets.DELETE("/:key", assetHandler.Delete, auth, adminOnly)

	// --- Upload routes ---
	uploads := v1.Group("/upload", echomiddleware.BodyLimit(uploadBodyLimit), auth)
	uploads.POST("", uploadHandler.Single)
	uploads.POST("/multiple", uploadHandler.Multiple)
	uploads.DELETE("/:filename", uploadHandler.Delete)

	// Stored attachments are served directly from the upload directory.
	e.Static("/uploads", store.Root())

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
