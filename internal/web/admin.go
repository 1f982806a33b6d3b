// admin.go - privacy-conscious visit log and the admin pages over it
package web

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/traysir/portfolio/internal/config"
)

const adminCookie = "admin_token"

// retentionCutoff is the instant before which visit records are purged:
// twelve calendar months back from now.
func retentionCutoff(now time.Time) time.Time {
	return now.AddDate(-1, 0, 0)
}

type adminAuth struct {
	token    string
	username string
	password string
}

func newAdminAuth(cfg config.Config) (*adminAuth, error) {
	username, password, enabled := cfg.AdminCredentials()
	if !enabled {
		log.Println("Admin: disabled, set ADMIN_USERNAME and ADMIN_PASSWORD to enable")
		return nil, nil
	}
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generating admin token: %w", err)
	}

	log.Printf("Admin access available at: /admin/login")
	if cfg.Mode == gin.DebugMode {
		if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
			log.Println("WARNING: Using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD.")
		}
		log.Printf("Admin token (dev only): %s", token)
	}
	return &adminAuth{token: token, username: username, password: password}, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (a *adminAuth) valid(username, password string) bool {
	// Both comparisons always run.
	u := equal(username, a.username)
	p := equal(password, a.password)
	return u && p
}

// adminAuthMiddleware redirects to the login page without a valid token.
func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || !equal(token, s.admin.token) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// visitorTracking records page views with hashed addresses. Static files,
// the event stream, HTMX posts and admin pages are skipped, and so are
// visitors sending Do Not Track.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet ||
			strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/logos/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") ||
			path == "/events" ||
			path == "/healthz" {
			c.Next()
			return
		}

		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua, at := c.ClientIP(), c.GetHeader("User-Agent"), s.now()
		go func() {
			if err := s.visits.RecordVisit(context.Background(), ip, ua, path, at); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		}()
		c.Next()
	}
}

func (s *Server) cleanupOldVisits() {
	n, err := s.visits.Cleanup(context.Background(), retentionCutoff(s.now()))
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than 12 months", n)
	}
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	go s.cleanupOldVisits()

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy", gin.H{"title": "Privacy Policy"})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		hashed := s.visits.HashIP(c.ClientIP())
		if !s.admin.valid(c.PostForm("username"), c.PostForm("password")) {
			log.Printf("Failed admin login attempt from %s", hashed)
			c.HTML(http.StatusUnauthorized, "admin-login", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}
		c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", s.cfg.Mode == gin.ReleaseMode, true)
		log.Printf("Admin login successful from %s", hashed)
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", s.visits.HashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.visits.Stats(c.Request.Context(), s.now())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard", gin.H{
			"stats":    stats,
			"sessions": s.sessions.Len(),
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.visits.Stats(c.Request.Context(), s.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.visits.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors", gin.H{"visitors": visitors})
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		go s.cleanupOldVisits()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.visits.Stats(c.Request.Context(), s.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", s.visits.HashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
