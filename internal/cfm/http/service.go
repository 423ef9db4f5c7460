package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jkwiatkowski/cfm/internal/cfm/stats"
	"github.com/jkwiatkowski/cfm/internal/errors"
	"github.com/jkwiatkowski/cfm/internal/model"
)

// Service exposes the scanned archive over a local REST API.
type Service struct {
	conf    Config
	db      *stats.Service
	control Control

	router *gin.Engine
	server *http.Server
}

// Config is the read side of the application state the handlers need.
type Config interface {
	GetHTTPAddr() string
	GetRoot() string
	GetUsername() string
	GetLanguage() string
	GetDateRange() model.DateRange
	IsHTTPEnabled() bool
}

// Control is the write side, implemented by the manager.
type Control interface {
	SetRoot(root string) error
	SetUsername(name string)
	SetDates(from, to string)
	SetLanguage(language string)
	SetHTTPAddr(addr string) error
	Rescan() error
}

func NewService(conf Config, db *stats.Service, control Control) *Service {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Err(err).Msg("Failed to set trusted proxies")
	}

	router.Use(
		errors.RecoveryMiddleware(),
		errors.ErrorHandlerMiddleware(),
		gin.LoggerWithWriter(log.Logger, "/health"),
		corsMiddleware(),
	)

	s := &Service{
		conf:    conf,
		db:      db,
		control: control,
		router:  router,
	}

	s.initRouter()
	return s
}

func (s *Service) Start() error {
	s.server = &http.Server{
		Addr:    s.conf.GetHTTPAddr(),
		Handler: s.router,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Err(err).Msg("Failed to start HTTP server")
		}
	}()

	log.Info().Msg("Starting HTTP server on " + s.conf.GetHTTPAddr())
	return nil
}

func (s *Service) ListenAndServe() error {
	s.server = &http.Server{
		Addr:    s.conf.GetHTTPAddr(),
		Handler: s.router,
	}

	log.Info().Msg("Starting HTTP server on " + s.conf.GetHTTPAddr())
	return s.server.ListenAndServe()
}

func (s *Service) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Debug().Err(err).Msg("Failed to shutdown HTTP server")
		return nil
	}

	log.Info().Msg("HTTP server stopped")
	return nil
}

func (s *Service) GetRouter() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
