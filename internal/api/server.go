// Package api exposes the HTTP surface: a REST catalog API, the realtime
// websocket stream and thumbnail serving.
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/datastore"
	"github.com/faunadex/faunadex-go/internal/imagestore"
	"github.com/faunadex/faunadex-go/internal/logging"
	"github.com/faunadex/faunadex-go/internal/observability"
	"github.com/faunadex/faunadex-go/internal/processor"
)

var logger = logging.ForService("api")

// Server wraps the echo instance and its dependencies.
type Server struct {
	Echo      *echo.Echo
	Settings  *conf.Settings
	Store     datastore.Interface
	Processor *processor.Processor
	Sessions  *processor.SessionManager
	Thumbs    *imagestore.Store
	Metrics   *observability.Metrics
}

// New creates the HTTP server and registers all routes.
func New(settings *conf.Settings, store datastore.Interface, proc *processor.Processor, sessions *processor.SessionManager, thumbs *imagestore.Store, metrics *observability.Metrics) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		Echo:      e,
		Settings:  settings,
		Store:     store,
		Processor: proc,
		Sessions:  sessions,
		Thumbs:    thumbs,
		Metrics:   metrics,
	}
	s.initRoutes()
	return s
}

func (s *Server) initRoutes() {
	api := s.Echo.Group("/api/v1")

	api.GET("/animals", s.listAnimals)
	api.GET("/animals/search", s.searchAnimals)
	api.GET("/animals/endangered", s.listEndangered)
	api.GET("/animals/class/:class", s.listAnimalsByClass)
	api.GET("/animals/:id", s.getAnimal)
	api.GET("/animals/:id/funfact", s.getFunFact)

	api.POST("/recognize", s.recognizeImage)

	api.POST("/sessions", s.startSession)
	api.GET("/sessions/:id", s.getSession)
	api.POST("/sessions/:id/end", s.endSession)
	api.GET("/sessions/:id/discoveries", s.listDiscoveries)
	api.GET("/users/:id/discoveries", s.listUserDiscoveries)

	s.Echo.GET("/media/thumbnails/:filename", s.serveThumbnail)
	s.Echo.GET("/ws", s.handleWebSocket)
	s.Echo.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(s.Metrics.Registry(), promhttp.HandlerOpts{})))
	s.Echo.GET("/healthz", s.health)
}

// Start runs the server until Shutdown or a listener error.
func (s *Server) Start() error {
	addr := ":" + s.Settings.WebServer.Port
	logger.Info("http server listening", "addr", addr)
	if err := s.Echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	status := map[string]any{
		"status":          "ok",
		"detector_ready":  s.Processor.Detector.IsReady(),
		"active_sessions": s.Sessions.ActiveCount(),
	}
	return c.JSON(http.StatusOK, status)
}
