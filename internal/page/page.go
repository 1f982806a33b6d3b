// Package page is the portfolio page's interactive state: the navigation
// bar, the two expandable lists, the cursor follower, the clock and the
// surprised icon. A PortfolioPage serializes every event the way a browser
// event loop would, and owns the timers that change it on their own.
package page

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/traysir/portfolio/internal/content"
)

var (
	// ErrDisposed is returned when mounting a page that was torn down.
	ErrDisposed = errors.New("page disposed")

	// ErrUnknownAnchor is returned for a navigation link with no section.
	ErrUnknownAnchor = errors.New("unknown anchor")
)

// Options tunes timing. Zero values fall back to the package defaults.
type Options struct {
	Now              func() time.Time
	ClockInterval    time.Duration
	SurpriseDuration time.Duration
	EventBuffer      int
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.ClockInterval <= 0 {
		o.ClockInterval = ClockInterval
	}
	if o.SurpriseDuration <= 0 {
		o.SurpriseDuration = SurpriseDuration
	}
	return o
}

// View is a consistent copy of the page state for rendering.
type View struct {
	MenuOpen     bool
	Scrolled     bool
	ScrollOffset float64
	Pointer      Pointer
	Clock        string
	Experience   Expansion
	Education    Expansion
	Surprised    bool
}

// PortfolioPage owns the state of one rendered page.
type PortfolioPage struct {
	mu         sync.Mutex
	content    *content.Portfolio
	opts       Options
	nav        Nav
	pointer    Pointer
	clock      string
	experience *ExpandableList
	education  *ExpandableList
	surprise   *Surprise
	events     *hub

	mounted  bool
	disposed bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// New builds an unmounted page over c.
func New(c *content.Portfolio, opts Options) *PortfolioPage {
	opts = opts.withDefaults()
	p := &PortfolioPage{
		content:    c,
		opts:       opts,
		experience: NewExpandableList(len(c.Experience)),
		education:  NewExpandableList(len(c.Education)),
		events:     newHub(opts.EventBuffer),
	}
	p.surprise = NewSurprise(opts.SurpriseDuration, func(active bool) {
		p.events.publish(Event{Kind: EventIcon, Surprised: active})
	})
	return p
}

// Content is the document the page renders.
func (p *PortfolioPage) Content() *content.Portfolio {
	return p.content
}

// Mount computes the clock and starts its ticker. The ticker stops when
// ctx is cancelled or the page is disposed. Mounting twice is a no-op.
func (p *PortfolioPage) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.disposed {
		return ErrDisposed
	}
	if p.mounted {
		return nil
	}
	p.mounted = true
	p.clock = FormatClock(p.opts.Now())

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.runClock(ctx, p.done)
	return nil
}

func (p *PortfolioPage) runClock(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.opts.ClockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick()
		}
	}
}

// Tick recomputes the clock and publishes it. The mounted ticker calls it;
// front ends with their own scheduler may call it directly.
func (p *PortfolioPage) Tick() {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.clock = FormatClock(p.opts.Now())
	clock := p.clock
	p.mu.Unlock()

	p.events.publish(Event{Kind: EventClock, Clock: clock})
}

// Dispose stops both timers and closes every subscription. It waits for
// the clock goroutine to exit, so no tick is delivered afterwards.
func (p *PortfolioPage) Dispose() {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.disposed = true
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	p.surprise.Dispose()
	p.events.close()
}

// Disposed reports whether Dispose ran.
func (p *PortfolioPage) Disposed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disposed
}

// Subscribe returns a channel of timer-driven changes and a function that
// ends the subscription. The channel is closed on Dispose.
func (p *PortfolioPage) Subscribe() (<-chan Event, func()) {
	return p.events.subscribe()
}

// ToggleMenu flips the mobile menu.
func (p *PortfolioPage) ToggleMenu() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nav.ToggleMenu()
}

// FollowLink handles a click on a menu link, which closes the menu.
func (p *PortfolioPage) FollowLink(anchor string) error {
	if !slices.Contains(content.Sections, anchor) {
		return fmt.Errorf("follow %q: %w", anchor, ErrUnknownAnchor)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nav.FollowLink()
	return nil
}

// Scroll records the window's scroll offset.
func (p *PortfolioPage) Scroll(offset float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nav.Scroll(offset)
}

// MovePointer records the pointer position for the cursor follower.
func (p *PortfolioPage) MovePointer(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pointer.Move(x, y)
}

// ToggleExperience handles a click on experience entry i's header.
func (p *PortfolioPage) ToggleExperience(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.experience.Toggle(i); err != nil {
		return fmt.Errorf("experience: %w", err)
	}
	return nil
}

// ToggleEducation handles a click on education entry i's header.
func (p *PortfolioPage) ToggleEducation(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.education.Toggle(i); err != nil {
		return fmt.Errorf("education: %w", err)
	}
	return nil
}

// ClickIcon surprises the navigation icon.
func (p *PortfolioPage) ClickIcon() {
	p.surprise.Trigger()
}

// Snapshot returns the current state.
func (p *PortfolioPage) Snapshot() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return View{
		MenuOpen:     p.nav.MenuOpen(),
		Scrolled:     p.nav.Scrolled(),
		ScrollOffset: p.nav.Offset(),
		Pointer:      p.pointer,
		Clock:        p.clock,
		Experience:   p.experience.State(),
		Education:    p.education.State(),
		Surprised:    p.surprise.Active(),
	}
}
