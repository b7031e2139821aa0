// Package devserver is a local stand-in for the Ajastra admin API. It serves
// the same routes and response envelope the console talks to, backed by an
// embedded SQLite database, for development and integration tests.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/WizCoderr/admin.ajastra/internal/config"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	db     *gorm.DB
	config config.DevServerConfig
	logger zerolog.Logger
	tokens *tokenIssuer
}

// New creates a new server instance with a migrated database
func New(cfg config.DevServerConfig, zlog zerolog.Logger) (*Server, error) {
	zlog = zlog.With().Str("component", "devserver").Logger()

	db, err := initDatabase(cfg.DatabaseURL, zlog)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	tokens, err := newTokenIssuer(cfg.JWTSecret, DefaultTokenTTL)
	if err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		zlog.Info().Msg("No JWT secret configured - generated an ephemeral one")
	}

	registerValidators()

	server := &Server{
		db:     db,
		config: cfg,
		logger: zlog,
		tokens: tokens,
	}
	server.setupRouter()

	if cfg.Seed {
		if err := server.Seed(); err != nil {
			return nil, err
		}
	}

	return server, nil
}

var registerOnce sync.Once

// registerValidators adds the custom binding validators used by the request types
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded:
				return true
			}
			return false
		})
		v.RegisterValidation("mediatype", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value == "" || value == "image" || value == "video"
		})
	})
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// initDatabase opens the SQLite database. In-memory databases are pinned to a
// single connection so every request sees the same data.
func initDatabase(dsn string, zlog zerolog.Logger) (*gorm.DB, error) {
	const (
		maxOpenConns    = 8
		maxIdleConns    = 4
		connMaxLifetime = 300 // 5 minutes
		busyTimeout     = 5000
	)

	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(
			log.New(zlog, "", 0),
			logger.Config{
				LogLevel:                  logger.Error,
				IgnoreRecordNotFoundError: true,
				SlowThreshold:             200 * time.Millisecond,
			},
		),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	memory := isMemoryDSN(dsn)
	if memory {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout),
		"PRAGMA foreign_keys=1",
	}
	if !memory {
		pragmas = append([]string{"PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL"}, pragmas...)
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			zlog.Warn().Str("pragma", pragma).Err(err).Msg("Failed to apply pragma")
		}
	}

	return db, nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s.router.GET("/health", s.healthCheck)

	// Public endpoints
	s.router.POST("/api/auth/admin/register", s.register)
	s.router.GET("/api/category/", s.listCategories)
	s.router.GET("/api/product/:id", s.getProduct)
	s.router.GET("/api/slider/see", s.listSliders)

	// Authenticated admin routes
	admin := s.router.Group("/api")
	admin.Use(JWTAuthMiddleware(s.db, s.tokens, s.logger))
	admin.POST("/auth/admin/logout", s.logout)
	admin.Use(AdminOnlyMiddleware(s.logger))
	{
		admin.GET("/auth/admin/all", s.listUsers)
		admin.POST("/address/:userId", s.addAddress)

		admin.POST("/category", s.addCategory)

		admin.GET("/product/admin/see", s.listProducts)
		admin.POST("/product/:id/create", s.addProduct)
		admin.DELETE("/product/:id/:categoryId", s.deleteProduct)
		admin.PUT("/product/:id/updateStock", s.updateStock)
		admin.PUT("/product/:id/updateFeatured", s.updateFeatured)

		admin.GET("/order/admin/all", s.listOrders)
		admin.PUT("/order/admin/:id", s.updateOrderStatus)

		admin.POST("/slider/add", s.addSlider)
		admin.DELETE("/slider/:id/delete", s.deleteSlider)
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", c.GetHeader("X-Request-ID")).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "ajastra-devserver",
	})
}

// Handler returns the HTTP handler, for use with httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// DB returns the database connection
func (s *Server) DB() *gorm.DB {
	return s.db
}

// Start serves on the configured address until ctx is cancelled, then shuts
// down gracefully and closes the database
func (s *Server) Start(ctx context.Context) error {
	addr := s.config.Addr
	if addr == "" {
		addr = ":5000"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")
	return s.Close()
}

// Close closes the database connection
func (s *Server) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
