// Package session keeps one mounted page per visitor.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/traysir/portfolio/internal/content"
	"github.com/traysir/portfolio/internal/page"
)

// ErrClosed is returned once the registry has been closed.
var ErrClosed = errors.New("session registry closed")

// Config bounds how long and how many pages are kept.
type Config struct {
	TTL         time.Duration
	MaxSessions int
	Page        page.Options
	Now         func() time.Time
}

type entry struct {
	page     *page.PortfolioPage
	lastSeen time.Time
}

// Registry maps session ids to mounted pages. Pages are disposed when they
// go idle for longer than the TTL, when the registry is full, and on Close.
type Registry struct {
	mu      sync.Mutex
	content *content.Portfolio
	cfg     Config
	ctx     context.Context
	cancel  context.CancelFunc
	pages   map[string]*entry
	closed  bool
}

// NewRegistry creates an empty registry.
func NewRegistry(c *content.Portfolio, cfg Config) *Registry {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 1000
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		content: c,
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		pages:   make(map[string]*entry),
	}
}

// Get returns the page for id, creating and mounting a new one (with a new
// id) when id is empty, malformed or unknown.
func (r *Registry) Get(id string) (*page.PortfolioPage, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, "", ErrClosed
	}
	now := r.cfg.Now()
	if e, ok := r.pages[id]; ok {
		e.lastSeen = now
		return e.page, id, nil
	}

	if len(r.pages) >= r.cfg.MaxSessions {
		r.evictOldestLocked()
	}

	p := page.New(r.content, r.cfg.Page)
	if err := p.Mount(r.ctx); err != nil {
		return nil, "", err
	}
	id = uuid.NewString()
	r.pages[id] = &entry{page: p, lastSeen: now}
	return p, id, nil
}

// Lookup returns an existing page without creating one.
func (r *Registry) Lookup(id string) (*page.PortfolioPage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.pages[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.cfg.Now()
	return e.page, true
}

// Touch marks id as active.
func (r *Registry) Touch(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.pages[id]; ok {
		e.lastSeen = r.cfg.Now()
	}
}

// Len is the number of live pages.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}

// Sweep disposes pages idle for longer than the TTL and returns how many.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	cutoff := r.cfg.Now().Add(-r.cfg.TTL)
	var stale []*page.PortfolioPage
	for id, e := range r.pages {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.page)
			delete(r.pages, id)
		}
	}
	r.mu.Unlock()

	for _, p := range stale {
		p.Dispose()
	}
	return len(stale)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("Sessions: disposed %d idle pages, %d live", n, r.Len())
			}
		}
	}
}

// Close disposes every page. Later calls to Get fail with ErrClosed.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	pages := r.pages
	r.pages = make(map[string]*entry)
	r.mu.Unlock()

	r.cancel()
	for _, e := range pages {
		e.page.Dispose()
	}
}

func (r *Registry) evictOldestLocked() {
	var (
		oldestID string
		oldest   *entry
	)
	for id, e := range r.pages {
		if oldest == nil || e.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, e
		}
	}
	if oldest == nil {
		return
	}
	delete(r.pages, oldestID)
	// Dispose waits for the page's clock goroutine, which never takes r.mu.
	oldest.page.Dispose()
}
