// Package server contains the HTTP handlers for the authors and posts API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "blogapi/docs" // swagger docs
	"blogapi/internal/bootstrap"
	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/notifications"
	"blogapi/internal/repository"
	"blogapi/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Limits for the create routes, per client IP.
const (
	createAuthorLimit = 30
	createPostLimit   = 60
	createWindow      = time.Minute
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	authorRepo     repository.AuthorRepository
	postRepo       repository.PostRepository
	notifier       *notifications.Notifier
	authorService  *service.AuthorService
	postService    *service.PostService
}

// NewServer connects the database and Redis, applies the schema and returns
// a ready Server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(context.Background(), cfg, bootstrap.Options{ApplySchema: true})
	if err != nil {
		return nil, fmt.Errorf("runtime init failed: %w", err)
	}
	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, which disables events and rate limiting.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, errors.New("server requires a database handle")
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("blogapi"),
		authorRepo:     repository.NewAuthorRepository(db),
		postRepo:       repository.NewPostRepository(db),
	}

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
	}

	server.authorService = service.NewAuthorService(server.db, server.authorRepo, server.postRepo, server.notifier)
	server.postService = service.NewPostService(server.db, server.postRepo, server.authorRepo, server.notifier)

	return server, nil
}

// NewApp builds the Fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Blog API",
		ErrorHandler: s.ErrorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Copy the request ID into the request context for the logger
	app.Use(middleware.ContextMiddleware())

	// One span per request
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/", s.HealthCheck)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	authors := app.Group("/authors")
	authors.Post("/", middleware.RateLimit(
		s.redis, createAuthorLimit, createWindow, "create_author"), s.CreateAuthor)
	authors.Get("/", s.ListAuthors)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	authors.Get("/:id/posts", s.ListAuthorPosts)
	authors.Get("/:id", s.GetAuthor)
	authors.Put("/:id", s.UpdateAuthor)
	authors.Delete("/:id", s.DeleteAuthor)

	posts := app.Group("/posts")
	posts.Post("/", middleware.RateLimit(
		s.redis, createPostLimit, createWindow, "create_post"), s.CreatePost)
	posts.Get("/", s.ListPosts)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)
}

// ErrorHandler renders errors that escape a handler. Fiber's own errors
// (unknown route, wrong method, oversized body) keep their status.
func (s *Server) ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// Start starts the server and blocks until it stops listening.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := s.NewApp()

	if s.notifier != nil {
		err := s.notifier.StartEventSubscriber(s.shutdownCtx, func(ev notifications.Event) {
			middleware.Logger.Debug("entity event",
				slog.String("type", ev.Type),
				slog.Uint64("entity_id", uint64(ev.EntityID)),
			)
		})
		if err != nil {
			middleware.Logger.Warn("failed to start event subscriber", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing database", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
