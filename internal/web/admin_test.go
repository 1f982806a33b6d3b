package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traysir/portfolio/internal/config"
	"github.com/traysir/portfolio/internal/store"
)

func newAdminServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServer(t, serverOptions{
		visits: true,
		cfg: func(c *config.Config) {
			c.AdminUsername = "owner"
			c.AdminPassword = "hunter22"
		},
	})
}

func login(t *testing.T, ts *testServer, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func adminGet(ts *testServer, target string, token *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != nil {
		req.AddCookie(token)
	}
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func adminToken(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == adminCookie {
			return ck
		}
	}
	t.Fatal("no admin cookie issued")
	return nil
}

func totalVisitors(t *testing.T, s *store.Store) int64 {
	t.Helper()
	stats, err := s.Stats(context.Background(), time.Now())
	require.NoError(t, err)
	return stats.TotalVisitors
}

func TestAdmin_RequiresLogin(t *testing.T) {
	ts := newAdminServer(t)

	rec := adminGet(ts, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))

	rec = adminGet(ts, "/admin/api/stats", &http.Cookie{Name: adminCookie, Value: "forged"})
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestAdmin_LoginFlow(t *testing.T) {
	ts := newAdminServer(t)

	rec := login(t, ts, "owner", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")

	rec = login(t, ts, "owner", "hunter22")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
	token := adminToken(t, rec)

	rec = adminGet(ts, "/admin/dashboard", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dashboard")

	rec = adminGet(ts, "/admin/visitors", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = adminGet(ts, "/admin/export/stats", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "admin-stats.json")
}

func TestAdmin_TracksPageViews(t *testing.T) {
	ts := newAdminServer(t)

	ts.do(t, http.MethodGet, "/", nil)
	assert.Eventually(t, func() bool {
		return totalVisitors(t, ts.visits) == 1
	}, 2*time.Second, 10*time.Millisecond)

	ts.do(t, http.MethodPost, "/nav/menu", nil)
	ts.do(t, http.MethodGet, "/static/site.css", nil)
	ts.do(t, http.MethodGet, "/healthz", nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	ts.Handler().ServeHTTP(httptest.NewRecorder(), req)

	ts.do(t, http.MethodGet, "/", nil)
	assert.Eventually(t, func() bool {
		return totalVisitors(t, ts.visits) == 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool {
		return totalVisitors(t, ts.visits) > 2
	}, 100*time.Millisecond, 10*time.Millisecond)

	token := adminToken(t, login(t, ts, "owner", "hunter22"))
	rec := adminGet(ts, "/admin/api/stats", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats store.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.EqualValues(t, 2, stats.TotalVisitors)
	assert.EqualValues(t, 1, stats.UniqueVisitors)
}

func TestAdmin_PrivacyPage(t *testing.T) {
	ts := newAdminServer(t)

	rec := adminGet(ts, "/privacy", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Do Not Track")
}

func TestAdmin_DisabledWithoutStore(t *testing.T) {
	ts := newTestServer(t, serverOptions{})

	rec := adminGet(ts, "/admin/login", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_ReleaseModeNeedsCredentials(t *testing.T) {
	ts := newTestServer(t, serverOptions{
		visits: true,
		cfg:    func(c *config.Config) { c.Mode = gin.ReleaseMode },
	})

	rec := adminGet(ts, "/admin/login", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_RetentionIsTwelveCalendarMonths(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC), retentionCutoff(now))

	ts := newTestServer(t, serverOptions{
		visits: true,
		now:    func() time.Time { return now },
		cfg: func(c *config.Config) {
			c.AdminUsername = "owner"
			c.AdminPassword = "hunter22"
		},
	})

	ctx := context.Background()
	for _, age := range []int{0, 361, 400} {
		at := now.AddDate(0, 0, -age)
		require.NoError(t, ts.visits.RecordVisit(ctx, "203.0.113.7", "test", "/", at))
	}

	ts.cleanupOldVisits()
	assert.EqualValues(t, 2, totalVisitors(t, ts.visits))
}
