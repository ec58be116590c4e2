package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/AleXx313/shareit/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Server wraps the gin engine with lifecycle control.
type Server struct {
	httpServer *http.Server
	logger     *zerolog.Logger
}

func NewServer(cfg *config.Config, handlers *Handlers, logger *zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := newRouter(cfg, handlers, logger)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		},
		logger: logger,
	}
}

// newRouter wires middleware and routes. Kept separate from the server
// so handler tests can drive the full routing table via httptest.
func newRouter(cfg *config.Config, handlers *Handlers, logger *zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(logger))
	if cfg.RateLimit.Enabled {
		router.Use(rateLimitMiddleware(newRateLimiter(cfg.RateLimit)))
	}

	users := router.Group("/users")
	{
		users.POST("", handlers.createUser)
		users.GET("", handlers.listUsers)
		users.GET("/:id", handlers.getUser)
		users.PATCH("/:id", handlers.patchUser)
		users.DELETE("/:id", handlers.deleteUser)
	}

	items := router.Group("/items")
	{
		items.POST("", handlers.createItem)
		items.GET("", handlers.listOwnerItems)
		items.GET("/search", handlers.searchItems)
		items.GET("/:id", handlers.getItem)
		items.PATCH("/:id", handlers.patchItem)
		items.POST("/:id/comment", handlers.createComment)
	}

	bookings := router.Group("/bookings")
	{
		bookings.POST("", handlers.createBooking)
		bookings.GET("", handlers.listBookerBookings)
		bookings.GET("/owner", handlers.listOwnerBookings)
		bookings.GET("/owner/export", handlers.exportOwnerBookings)
		bookings.GET("/:id", handlers.getBooking)
		bookings.PATCH("/:id", handlers.decideBooking)
	}

	requests := router.Group("/requests")
	{
		requests.POST("", handlers.createRequest)
		requests.GET("", handlers.listOwnRequests)
		requests.GET("/all", handlers.listOtherRequests)
		requests.GET("/:id", handlers.getRequest)
	}

	return router
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
