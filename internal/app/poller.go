package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/lunchtray/internal/linq"
	"github.com/five82/lunchtray/internal/menu"
	"github.com/five82/lunchtray/internal/state"
)

const defaultPollInterval = 180 * time.Minute

// ErrUpdateFailed wraps every failed poll cycle.
var ErrUpdateFailed = errors.New("menu update failed")

// SnapshotCache stores the last fetched feed between runs.
type SnapshotCache interface {
	Save(payload []byte, fetchedAt time.Time) error
	Load() (payload []byte, fetchedAt time.Time, ok bool, err error)
}

// PollerConfig tunes a Poller. Zero values use defaults.
type PollerConfig struct {
	Plans     []string // menu plan allow-list; empty keeps all plans
	Interval  time.Duration
	Lookahead time.Duration
	Cache     SnapshotCache // optional
	Logger    zerolog.Logger
}

// Poller refreshes the store from the menu api on a fixed cadence. At most
// one fetch runs at a time.
type Poller struct {
	fetcher   linq.FeedFetcher
	store     *state.Store
	plans     []string
	interval  time.Duration
	lookahead time.Duration
	cache     SnapshotCache
	log       zerolog.Logger
	now       func() time.Time

	mu      sync.Mutex
	trigger chan struct{}
}

func NewPoller(fetcher linq.FeedFetcher, store *state.Store, cfg PollerConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultPollInterval
	}
	if cfg.Lookahead <= 0 {
		cfg.Lookahead = linq.DefaultLookahead
	}
	return &Poller{
		fetcher:   fetcher,
		store:     store,
		plans:     append([]string(nil), cfg.Plans...),
		interval:  cfg.Interval,
		lookahead: cfg.Lookahead,
		cache:     cfg.Cache,
		log:       cfg.Logger.With().Str("component", "poller").Logger(),
		now:       time.Now,
		trigger:   make(chan struct{}, 1),
	}
}

// Interval reports the configured poll cadence.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start launches the background loop. The first refresh runs immediately;
// the loop exits when ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			if ctx.Err() != nil {
				return
			}
			_ = p.Refresh(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			case <-p.trigger:
			}
		}
	}()
}

// ForceRefresh asks the loop for an immediate refresh. Requests made while
// a fetch is running collapse into a single follow-up fetch.
func (p *Poller) ForceRefresh() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Refresh runs one fetch cycle synchronously over [now, now+lookahead] and
// publishes the result.
func (p *Poller) Refresh(ctx context.Context) error {
	start := p.now()
	return p.refresh(ctx, start, start.Add(p.lookahead), true)
}

// RefreshWindow fetches [start, end] once and publishes the result. A zero
// end means start plus the lookahead. The snapshot cache only ever holds
// the live window, so RefreshWindow does not write it.
func (p *Poller) RefreshWindow(ctx context.Context, start, end time.Time) error {
	if end.IsZero() || end.Before(start) {
		end = start.Add(p.lookahead)
	}
	return p.refresh(ctx, start, end, false)
}

func (p *Poller) refresh(ctx context.Context, start, end time.Time, persist bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.store.BeginFetch()

	fetchedAt := p.now()
	feed, err := p.fetcher.Fetch(ctx, start, end)
	if err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrUpdateFailed, err)
		p.store.Update(nil, time.Time{}, wrapped)
		p.log.Warn().Err(err).Int("failures", p.store.Snapshot().ConsecutiveFailures).Msg("menu update failed")
		return wrapped
	}

	snap := menu.Normalize(feed, p.plans, p.log)
	p.store.Update(&snap, fetchedAt, nil)
	p.log.Debug().
		Time("start", start).
		Time("end", end).
		Int("breakfast_days", snap.Len(menu.Breakfast)).
		Int("lunch_days", snap.Len(menu.Lunch)).
		Msg("menu updated")

	if persist {
		p.saveCache(feed, fetchedAt)
	}
	return nil
}

func (p *Poller) saveCache(feed *linq.MenuFeed, fetchedAt time.Time) {
	if p.cache == nil {
		return
	}
	payload, err := json.Marshal(feed)
	if err != nil {
		p.log.Warn().Err(err).Msg("encode feed for cache")
		return
	}
	if err := p.cache.Save(payload, fetchedAt); err != nil {
		p.log.Warn().Err(err).Msg("save snapshot cache")
	}
}

// SeedFromCache restores the cached feed into store. It reports whether a
// menu was installed.
func SeedFromCache(c SnapshotCache, store *state.Store, plans []string, log zerolog.Logger) bool {
	if c == nil {
		return false
	}
	payload, fetchedAt, ok, err := c.Load()
	if err != nil {
		log.Warn().Err(err).Msg("load snapshot cache")
		return false
	}
	if !ok {
		return false
	}
	feed, err := linq.DecodeFeed(payload)
	if err != nil {
		log.Warn().Err(err).Msg("decode cached feed")
		return false
	}
	if !store.Seed(menu.Normalize(feed, plans, log), fetchedAt) {
		return false
	}
	log.Info().Time("fetched_at", fetchedAt).Msg("restored menu from cache")
	return true
}
