package page

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traysir/portfolio/internal/content"
)

func testContent(t *testing.T) *content.Portfolio {
	t.Helper()
	c, err := content.Default()
	require.NoError(t, err)
	return c
}

func mountedPage(t *testing.T, opts Options) *PortfolioPage {
	t.Helper()
	p := New(testContent(t), opts)
	require.NoError(t, p.Mount(context.Background()))
	t.Cleanup(p.Dispose)
	return p
}

func indexOf(t *testing.T, c *content.Portfolio, company string) int {
	t.Helper()
	for i, e := range c.Experience {
		if e.Company == company {
			return i
		}
	}
	t.Fatalf("no experience entry for %s", company)
	return -1
}

func TestPortfolioPage_ExperienceScenario(t *testing.T) {
	p := mountedPage(t, Options{})
	c := p.Content()
	adp, ups := indexOf(t, c, "ADP"), indexOf(t, c, "UPS")

	v := p.Snapshot()
	assert.Equal(t, Collapsed(), v.Experience)

	require.NoError(t, p.ToggleExperience(adp))
	v = p.Snapshot()
	for i := range c.Experience {
		assert.Equal(t, i == adp, v.Experience.IsExpanded(i), c.Experience[i].Company)
	}

	require.NoError(t, p.ToggleExperience(ups))
	v = p.Snapshot()
	assert.False(t, v.Experience.IsExpanded(adp))
	assert.True(t, v.Experience.IsExpanded(ups))

	require.NoError(t, p.ToggleExperience(ups))
	assert.Equal(t, Collapsed(), p.Snapshot().Experience)
}

func TestPortfolioPage_ListsAreIndependent(t *testing.T) {
	p := mountedPage(t, Options{})

	require.NoError(t, p.ToggleExperience(1))
	require.NoError(t, p.ToggleEducation(0))

	v := p.Snapshot()
	assert.Equal(t, Expanded(1), v.Experience)
	assert.Equal(t, Expanded(0), v.Education)

	require.NoError(t, p.ToggleEducation(0))
	v = p.Snapshot()
	assert.Equal(t, Expanded(1), v.Experience)
	assert.Equal(t, Collapsed(), v.Education)
}

func TestPortfolioPage_ToggleOutOfRange(t *testing.T) {
	p := mountedPage(t, Options{})
	err := p.ToggleEducation(len(p.Content().Education))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, Collapsed(), p.Snapshot().Education)
}

func TestPortfolioPage_Menu(t *testing.T) {
	p := mountedPage(t, Options{})

	p.ToggleMenu()
	assert.True(t, p.Snapshot().MenuOpen)

	require.NoError(t, p.FollowLink("projects"))
	assert.False(t, p.Snapshot().MenuOpen)

	p.ToggleMenu()
	err := p.FollowLink("blog")
	assert.ErrorIs(t, err, ErrUnknownAnchor)
	assert.True(t, p.Snapshot().MenuOpen)

	p.ToggleMenu()
	assert.False(t, p.Snapshot().MenuOpen)
}

func TestPortfolioPage_ScrollAndPointer(t *testing.T) {
	p := mountedPage(t, Options{})

	p.Scroll(50)
	assert.False(t, p.Snapshot().Scrolled)
	p.Scroll(51)
	assert.True(t, p.Snapshot().Scrolled)

	p.MovePointer(120, 340)
	v := p.Snapshot()
	assert.Equal(t, Pointer{X: 120, Y: 340}, v.Pointer)
	assert.Contains(t, v.Pointer.FollowerStyle(), "left:120px;top:340px;transform:translate(-50%,-50%)")
}

func TestPortfolioPage_ClockOnMountAndTick(t *testing.T) {
	var now atomic.Value
	now.Store(time.Date(2026, 10, 15, 9, 41, 0, 0, time.Local))
	p := mountedPage(t, Options{
		Now:           func() time.Time { return now.Load().(time.Time) },
		ClockInterval: 10 * time.Millisecond,
	})
	assert.Equal(t, "09:41", p.Snapshot().Clock)

	events, unsubscribe := p.Subscribe()
	defer unsubscribe()

	now.Store(time.Date(2026, 10, 15, 17, 2, 0, 0, time.Local))
	deadline := time.After(time.Second)
	for {
		select {
		case ev := <-events:
			require.Equal(t, EventClock, ev.Kind)
			if ev.Clock != "17:02" {
				continue
			}
		case <-deadline:
			t.Fatal("no clock tick")
		}
		break
	}
	assert.Equal(t, "17:02", p.Snapshot().Clock)
}

func TestPortfolioPage_DisposeStopsTicks(t *testing.T) {
	var ticks atomic.Int64
	p := New(testContent(t), Options{
		Now: func() time.Time {
			ticks.Add(1)
			return time.Now()
		},
		ClockInterval: 5 * time.Millisecond,
	})
	require.NoError(t, p.Mount(context.Background()))
	events, _ := p.Subscribe()

	assert.Eventually(t, func() bool { return ticks.Load() > 2 }, time.Second, time.Millisecond)
	p.Dispose()
	after := ticks.Load()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())
	assert.True(t, p.Disposed())

	// Drain; the channel must be closed.
	for range events {
	}
	assert.ErrorIs(t, p.Mount(context.Background()), ErrDisposed)
	p.Dispose()
}

func TestPortfolioPage_ContextCancelStopsClock(t *testing.T) {
	var ticks atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	p := New(testContent(t), Options{
		Now: func() time.Time {
			ticks.Add(1)
			return time.Now()
		},
		ClockInterval: 5 * time.Millisecond,
	})
	require.NoError(t, p.Mount(ctx))
	t.Cleanup(p.Dispose)

	assert.Eventually(t, func() bool { return ticks.Load() > 1 }, time.Second, time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())
}

func TestPortfolioPage_SurprisedIcon(t *testing.T) {
	p := mountedPage(t, Options{
		ClockInterval:    time.Hour,
		SurpriseDuration: 40 * time.Millisecond,
	})
	events, unsubscribe := p.Subscribe()
	defer unsubscribe()

	before := p.Snapshot()
	p.ClickIcon()
	assert.True(t, p.Snapshot().Surprised)

	var got []Event
	for len(got) < 2 {
		select {
		case ev := <-events:
			got = append(got, ev)
		case <-time.After(time.Second):
			t.Fatal("icon did not revert")
		}
	}
	assert.Equal(t, []Event{
		{Kind: EventIcon, Surprised: true},
		{Kind: EventIcon, Surprised: false},
	}, got)

	after := p.Snapshot()
	assert.False(t, after.Surprised)
	after.Surprised = before.Surprised
	assert.Equal(t, before, after)
}

func TestPortfolioPage_MountTwice(t *testing.T) {
	p := mountedPage(t, Options{})
	assert.NoError(t, p.Mount(context.Background()))
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := newHub(1)
	ch, unsubscribe := h.subscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.publish(Event{Kind: EventClock})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked")
	}
	assert.Len(t, ch, 1)

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, h.len())

	h.close()
	late, _ := h.subscribe()
	_, ok := <-late
	assert.False(t, ok)
}
