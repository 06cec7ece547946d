package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthtrack/frontend/config"
	"github.com/pageza/healthtrack/frontend/internal/app"
	"github.com/pageza/healthtrack/frontend/internal/flow"
	"github.com/pageza/healthtrack/frontend/internal/middleware"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
	app    *app.App
}

// New creates a new server instance serving the client screens
func New(cfg *config.Config, a *app.App) (*Server, error) {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Logger(), middleware.RequestID(), middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		router: router,
		cfg:    cfg,
		app:    a,
	}
	s.routes()

	s.http = &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}
	return s, nil
}

func (s *Server) routes() {
	r := s.router
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, flow.RouteAuth) })
	r.GET("/healthz", s.healthz)

	auth := r.Group(flow.RouteAuth)
	if s.app.Limiter != nil {
		auth.Use(s.app.Limiter.RateLimitHeaders())
	}
	auth.GET("", middleware.RedirectAuthenticated(s.app.Session, flow.RouteHome), s.showAuth)
	auth.POST("", s.submitAuth)
	r.POST("/logout", s.logout)

	r.GET(flow.RouteHome, middleware.RequireSession(s.app.Session, flow.RouteAuth), s.showHome)

	r.GET(flow.RouteProfile, s.showProfile)
	r.POST(flow.RouteProfile, s.submitProfile)

	r.GET(flow.RouteHealthData, s.showHealthData)
	r.POST(flow.RouteHealthData, s.submitHealthData)
	r.GET(flow.RouteHistory, s.showHistory)

	r.GET(flow.RoutePrediction, s.showPrediction)
	r.POST(flow.RoutePrediction+"/retry", s.retryPrediction)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	log.Printf("Serving client on http://%s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
