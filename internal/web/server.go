// Package web serves the portfolio over HTTP. The browser relays its events
// through HTMX requests; each handler applies the event to the visitor's
// page and answers with the re-rendered fragment.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/traysir/portfolio/internal/assets"
	"github.com/traysir/portfolio/internal/config"
	"github.com/traysir/portfolio/internal/content"
	"github.com/traysir/portfolio/internal/session"
	"github.com/traysir/portfolio/internal/store"
)

// Deps are the collaborators the server is built from. Assets and Visits
// may be nil: without an asset index every logo falls back to text, and
// without a visit store tracking and the admin pages are off.
type Deps struct {
	Content  *content.Portfolio
	Sessions *session.Registry
	Assets   *assets.Index
	Visits   *store.Store
	Now      func() time.Time
}

// Server is the HTTP front end.
type Server struct {
	cfg      config.Config
	engine   *gin.Engine
	tmpl     *template.Template
	content  *content.Portfolio
	sessions *session.Registry
	assets   *assets.Index
	visits   *store.Store
	admin    *adminAuth
	now      func() time.Time
}

// New builds the server and registers every route.
func New(cfg config.Config, d Deps) (*Server, error) {
	if d.Content == nil || d.Sessions == nil {
		return nil, errors.New("web: content and sessions are required")
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	gin.SetMode(cfg.Mode)
	s := &Server{
		cfg:      cfg,
		engine:   gin.Default(),
		tmpl:     tmpl,
		content:  d.Content,
		sessions: d.Sessions,
		assets:   d.Assets,
		visits:   d.Visits,
		now:      d.Now,
	}
	s.engine.SetHTMLTemplate(tmpl)

	if s.visits != nil {
		s.engine.Use(s.visitorTracking())
		admin, err := newAdminAuth(cfg)
		if err != nil {
			return nil, err
		}
		s.admin = admin
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.engine

	r.StaticFS("/static", http.FS(staticFiles()))
	if s.assets != nil && s.assets.Root() != "" {
		r.Static("/logos", filepath.Join(s.assets.Root(), "logos"))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
	})

	r.GET("/", s.mintSession(), s.index)

	pages := r.Group("/", s.requireSession())
	pages.GET("/events", s.events)
	pages.POST("/nav/menu", s.toggleMenu)
	pages.POST("/nav/link", s.followLink)
	pages.POST("/nav/scroll", s.scroll)
	pages.POST("/pointer", s.movePointer)
	pages.POST("/experience/:index/toggle", s.toggleExperience)
	pages.POST("/education/:index/toggle", s.toggleEducation)
	pages.POST("/icon", s.clickIcon)

	if s.admin != nil {
		s.setupAdminRoutes(r)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully. Open
// event streams end when the session registry closes at shutdown.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(s.sessions.Close)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Portfolio listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
