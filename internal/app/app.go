package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/lunchtray/internal/cache"
	"github.com/five82/lunchtray/internal/config"
	"github.com/five82/lunchtray/internal/linq"
	"github.com/five82/lunchtray/internal/logging"
	"github.com/five82/lunchtray/internal/menu"
	"github.com/five82/lunchtray/internal/prefs"
	"github.com/five82/lunchtray/internal/state"
	"github.com/five82/lunchtray/internal/ui"
)

// ErrNoMenu is returned when neither the api nor the cache produced a menu.
var ErrNoMenu = errors.New("no menu available")

// Options configure the lunchtray application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses $XDG_CONFIG_HOME/lunchtray/prefs.toml
	PollEvery  int    // minutes; zero uses update_interval from config
}

// Runtime holds the components shared by the UI and the one-shot commands.
type Runtime struct {
	Config config.Config
	Client *linq.Client
	Store  *state.Store
	Poller *Poller
	Log    zerolog.Logger

	cache *cache.Cache
}

// Open wires the api client, store, cache and poller for cfg. The cache is
// optional: a cache that cannot be opened is logged and skipped.
func Open(cfg config.Config, log zerolog.Logger) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, warning := range cfg.Warnings {
		log.Warn().Msg(warning)
	}

	client, err := linq.NewClient(cfg.DistrictID, cfg.BuildingID,
		linq.WithBaseURL(cfg.APIBaseURL),
		linq.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("init menu client: %w", err)
	}

	rt := &Runtime{
		Config: cfg,
		Client: client,
		Store:  &state.Store{},
		Log:    log,
	}

	pollCfg := PollerConfig{
		Plans:     cfg.MenuPlans,
		Interval:  cfg.UpdateInterval,
		Lookahead: cfg.CalendarWindow(),
		Logger:    log,
	}
	if cfg.CachePath != "" {
		db, err := cache.Open(cfg.CachePath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.CachePath).Msg("snapshot cache disabled")
		} else {
			rt.cache = db
			pollCfg.Cache = db
			SeedFromCache(db, rt.Store, cfg.MenuPlans, log)
		}
	}

	rt.Poller = NewPoller(client, rt.Store, pollCfg)
	return rt, nil
}

// Close releases the snapshot cache.
func (r *Runtime) Close() error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Close()
}

// Current runs one refresh of the live window and returns the resulting
// menu. When the fetch fails but a cached menu was seeded, the cached menu
// is returned along with a nil error.
func (r *Runtime) Current(ctx context.Context) (menu.Snapshot, state.Snapshot, error) {
	return r.result(r.Poller.Refresh(ctx))
}

// CurrentAt is Current for the window [start, start+window]. A window <= 0
// uses the configured calendar_days.
func (r *Runtime) CurrentAt(ctx context.Context, start time.Time, window time.Duration) (menu.Snapshot, state.Snapshot, error) {
	if window <= 0 {
		window = r.Config.CalendarWindow()
	}
	return r.result(r.Poller.RefreshWindow(ctx, start, start.Add(window)))
}

func (r *Runtime) result(refreshErr error) (menu.Snapshot, state.Snapshot, error) {
	status := r.Store.Snapshot()
	if !status.HasMenu {
		if refreshErr != nil {
			return menu.Snapshot{}, status, refreshErr
		}
		return menu.Snapshot{}, status, ErrNoMenu
	}
	if refreshErr != nil {
		r.Log.Warn().Err(refreshErr).Time("fetched_at", status.FetchedAt).Msg("using cached menu")
	}
	return status.Menu, status, nil
}

// Run boots the lunchtray TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.UpdateInterval = time.Duration(opts.PollEvery) * time.Minute
	}

	log, logFile, err := logging.OpenFile(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	rt, err := Open(cfg, log)
	if err != nil {
		return err
	}
	defer rt.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Warn().Err(err).Msg("load prefs")
	}

	log.Info().
		Str("district", cfg.DistrictID).
		Str("building", cfg.BuildingID).
		Dur("interval", rt.Poller.Interval()).
		Msg("lunchtray starting")

	rt.Poller.Start(ctx)

	return ui.Run(ui.Options{
		Context:      ctx,
		Store:        rt.Store,
		Poller:       rt.Poller,
		Cutoff:       &cfg.Cutoff,
		CalendarDays: cfg.CalendarDays,
		LogPath:      cfg.LogFile,
		ThemeName:    userPrefs.Theme,
		StartView:    userPrefs.View,
		PrefsPath:    opts.PrefsPath,
	})
}
