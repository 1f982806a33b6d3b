package web

import (
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/traysir/portfolio/internal/page"
)

const (
	sessionCookie = "portfolio_session"
	pageKey       = "page"
	sessionKey    = "session"
)

// mintSession attaches the visitor's page, issuing a session cookie when
// the visitor has none or the old session expired. Only the full page load
// goes through it.
func (s *Server) mintSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		pg, current, err := s.sessions.Get(id)
		if err != nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		if current != id {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, current, 0, "/", "", false, true)
		}
		c.Set(pageKey, pg)
		c.Set(sessionKey, current)
		c.Next()
	}
}

// requireSession attaches an existing page and never creates one. Without
// a live session the browser is sent back to the full page: HTMX requests
// via HX-Redirect, the event stream with 204 so the client stops
// reconnecting, anything else with a plain redirect.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		pg, ok := s.sessions.Lookup(id)
		if !ok {
			switch {
			case c.Request.URL.Path == "/events":
				c.AbortWithStatus(http.StatusNoContent)
			case c.GetHeader("HX-Request") == "true":
				c.Header("HX-Redirect", "/")
				c.AbortWithStatus(http.StatusNoContent)
			default:
				c.Redirect(http.StatusSeeOther, "/")
				c.Abort()
			}
			return
		}
		c.Set(pageKey, pg)
		c.Set(sessionKey, id)
		c.Next()
	}
}

func pageFrom(c *gin.Context) *page.PortfolioPage {
	return c.MustGet(pageKey).(*page.PortfolioPage)
}

func (s *Server) index(c *gin.Context) {
	pg := pageFrom(c)
	c.HTML(http.StatusOK, "index", s.pageView(pg.Snapshot()))
}

func (s *Server) toggleMenu(c *gin.Context) {
	pg := pageFrom(c)
	pg.ToggleMenu()
	c.HTML(http.StatusOK, "nav", s.navView(pg.Snapshot()))
}

func (s *Server) followLink(c *gin.Context) {
	pg := pageFrom(c)
	if err := pg.FollowLink(c.PostForm("anchor")); err != nil {
		c.String(http.StatusBadRequest, "%v", err)
		return
	}
	c.HTML(http.StatusOK, "nav", s.navView(pg.Snapshot()))
}

func (s *Server) scroll(c *gin.Context) {
	offset, err := parseCoord(c.PostForm("offset"))
	if err != nil {
		c.String(http.StatusBadRequest, "offset: %v", err)
		return
	}
	pg := pageFrom(c)
	pg.Scroll(offset)
	c.HTML(http.StatusOK, "nav", s.navView(pg.Snapshot()))
}

func (s *Server) movePointer(c *gin.Context) {
	x, err := parseCoord(c.PostForm("x"))
	if err != nil {
		c.String(http.StatusBadRequest, "x: %v", err)
		return
	}
	y, err := parseCoord(c.PostForm("y"))
	if err != nil {
		c.String(http.StatusBadRequest, "y: %v", err)
		return
	}
	pg := pageFrom(c)
	pg.MovePointer(x, y)
	c.HTML(http.StatusOK, "follower", followerViewOf(pg.Snapshot()))
}

func (s *Server) toggleExperience(c *gin.Context) {
	s.toggleEntry(c, (*page.PortfolioPage).ToggleExperience, s.experienceView)
}

func (s *Server) toggleEducation(c *gin.Context) {
	s.toggleEntry(c, (*page.PortfolioPage).ToggleEducation, s.educationView)
}

func (s *Server) toggleEntry(
	c *gin.Context,
	toggle func(*page.PortfolioPage, int) error,
	view func(page.View) listView,
) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "index must be a number")
		return
	}
	pg := pageFrom(c)
	if err := toggle(pg, index); err != nil {
		if errors.Is(err, page.ErrIndexOutOfRange) {
			c.String(http.StatusBadRequest, "%v", err)
			return
		}
		c.String(http.StatusInternalServerError, "%v", err)
		return
	}
	c.HTML(http.StatusOK, "entries", view(pg.Snapshot()))
}

func (s *Server) clickIcon(c *gin.Context) {
	pg := pageFrom(c)
	pg.ClickIcon()
	c.HTML(http.StatusOK, "icon", s.iconView(pg.Snapshot().Surprised))
}

// events streams the page's timer-driven changes as server-sent events:
// "clock" carries the clock text and "icon" the re-rendered icon.
func (s *Server) events(c *gin.Context) {
	pg := pageFrom(c)
	id := c.GetString(sessionKey)
	ch, unsubscribe := pg.Subscribe()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent(string(page.EventClock), pg.Snapshot().Clock)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			s.sessions.Touch(id)
			switch ev.Kind {
			case page.EventClock:
				c.SSEvent(string(page.EventClock), ev.Clock)
			case page.EventIcon:
				html, err := s.renderFragment("icon", s.iconView(ev.Surprised))
				if err != nil {
					log.Printf("Events: %v", err)
					return true
				}
				c.SSEvent(string(page.EventIcon), html)
			}
			return true
		}
	})
}

func parseCoord(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not finite")
	}
	return v, nil
}
