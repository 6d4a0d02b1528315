package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/lunchtray/internal/menu"
)

// Phase is the poll cycle position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
)

func (p Phase) String() string {
	if p == PhaseFetching {
		return "fetching"
	}
	return "idle"
}

// Outcome is the result of the most recent completed poll.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	default:
		return "none"
	}
}

// unavailableAfter is the number of consecutive failures after which the
// menu is reported unavailable even though stale data is still shown.
const unavailableAfter = 2

// Snapshot represents the latest data available to consumers.
type Snapshot struct {
	Menu                menu.Snapshot
	HasMenu             bool
	FromCache           bool      // Menu was restored from the on-disk cache
	FetchedAt           time.Time // when Menu was fetched from the api
	Phase               Phase
	LastOutcome         Outcome
	LastUpdated         time.Time // end of the last poll attempt
	LastError           error
	ConsecutiveFailures int
}

// IsUnavailable returns true when the api has failed for several polls in a row.
func (s Snapshot) IsUnavailable() bool {
	return s.ConsecutiveFailures >= unavailableAfter
}

// Store coordinates concurrent access to the snapshot. Only the poller
// writes; everything else reads.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// BeginFetch marks a poll as in flight.
func (s *Store) BeginFetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Phase = PhaseFetching
}

// Update publishes the result of a poll. When err is non-nil the previous
// menu is kept but the error is recorded for visibility.
func (s *Store) Update(snap *menu.Snapshot, fetchedAt time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Phase = PhaseIdle
	s.snapshot.LastUpdated = time.Now()

	if err != nil || snap == nil {
		if err == nil {
			err = fmt.Errorf("poll returned no menu")
		}
		s.snapshot.LastError = err
		s.snapshot.LastOutcome = OutcomeFailed
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Menu = *snap
	s.snapshot.HasMenu = true
	s.snapshot.FromCache = false
	s.snapshot.FetchedAt = fetchedAt
	s.snapshot.LastError = nil
	s.snapshot.LastOutcome = OutcomeSuccess
	s.snapshot.ConsecutiveFailures = 0
}

// Seed installs a menu restored from cache. It is ignored once a poll has
// published fresh data.
func (s *Store) Seed(snap menu.Snapshot, fetchedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.HasMenu {
		return false
	}
	s.snapshot.Menu = snap
	s.snapshot.HasMenu = true
	s.snapshot.FromCache = true
	s.snapshot.FetchedAt = fetchedAt
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Current returns the current menu snapshot, if any.
func (s *Store) Current() (menu.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Menu, s.snapshot.HasMenu
}

// MenuForDate looks up one day's menu in the current snapshot.
func (s *Store) MenuForDate(meal menu.MealType, date menu.Date) (menu.DayMenu, bool) {
	current, ok := s.Current()
	if !ok {
		return menu.DayMenu{}, false
	}
	return current.Menu(meal, date)
}
