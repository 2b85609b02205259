// Package service is the single-writer facade over the simulation. Every
// mutating operation takes one process-wide mutex, applies the whole
// transition, persists, and only then returns.
package service

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/openice/rinkrat/internal/league"
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/storage"
)

// Broadcaster pushes day updates to connected clients. The websocket hub
// satisfies this; tests use a no-op.
type Broadcaster interface {
	BroadcastJSON(v interface{})
}

// Options seed a fresh world when no save exists.
type Options struct {
	Seed            uint64
	GamesPerMatchup int
	Density         float64
}

// SimService owns the world and its save files.
type SimService struct {
	mu sync.Mutex

	store   *storage.Store
	log     *logrus.Logger
	opts    Options
	league  *league.League
	runtime *storage.RuntimeState
	hub     Broadcaster
}

// New loads the saved world (or seeds a fresh one) and wires the service.
func New(store *storage.Store, log *logrus.Logger, opts Options) (*SimService, error) {
	l, err := store.LoadLeague(func() *league.League {
		return league.NewLeague(league.GenesisOptions{
			Seed:            opts.Seed,
			GamesPerMatchup: opts.GamesPerMatchup,
			Density:         opts.Density,
		}, log)
	}, log)
	if err != nil {
		return nil, err
	}

	rt, err := store.LoadRuntime()
	if err != nil {
		return nil, err
	}

	return &SimService{
		store:   store,
		log:     log,
		opts:    opts,
		league:  l,
		runtime: rt,
	}, nil
}

// SetBroadcaster attaches the live-update sink.
func (s *SimService) SetBroadcaster(hub Broadcaster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hub = hub
}

// MetaView is the lightweight world descriptor.
type MetaView struct {
	SaveVersion   int    `json:"save_version"`
	Season        int    `json:"season"`
	Day           int    `json:"day"`
	DaysTotal     int    `json:"days_total"`
	Phase         string `json:"phase"`
	UserTeam      string `json:"user_team,omitempty"`
	Teams         int    `json:"teams"`
	CupName       string `json:"cup_name"`
	DraftOnClock  string `json:"draft_on_clock,omitempty"`
	LastLoadError string `json:"last_load_error,omitempty"`
}

// Phase names reported by meta.
const (
	PhaseRegular  = "regular"
	PhasePlayoffs = "playoffs"
	PhaseDraft    = "draft"
)

// Meta projects the current world state.
func (s *SimService) Meta() MetaView {
	s.mu.Lock()
	defer s.mu.Unlock()

	phase := PhasePlayoffs
	switch {
	case s.league.PendingDraft != nil:
		phase = PhaseDraft
	case s.league.InRegularSeason():
		phase = PhaseRegular
	}

	meta := MetaView{
		SaveVersion:   storage.SaveVersion,
		Season:        s.league.SeasonNumber,
		Day:           s.league.DayIndex,
		DaysTotal:     len(s.league.Days),
		Phase:         phase,
		UserTeam:      s.league.UserTeam,
		Teams:         len(s.league.Teams),
		CupName:       models.CupName,
		LastLoadError: s.store.LastLoadError,
	}
	if s.league.PendingDraft != nil {
		meta.DraftOnClock = s.league.PendingDraft.OnClock()
	}
	return meta
}

// Standings projects the requested standings table.
func (s *SimService) Standings(mode, value string) []league.StandingsRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.league.Standings(mode, value)
}

// Advance moves the world one step. Nothing is persisted when the
// underlying advance fails its integrity checks.
func (s *SimService) Advance(autoInjuryMoves bool) (*league.AdvanceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureUserCompliance(autoInjuryMoves); err != nil {
		return nil, err
	}

	result, err := s.league.Advance()
	if err != nil {
		return nil, err
	}

	s.projectNews(result)
	s.recordMilestones()
	s.resolveInbox()

	if err := s.persist(false); err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.BroadcastJSON(DayUpdate{
			Season: s.league.SeasonNumber,
			Day:    s.league.DayIndex,
			Result: result,
		})
	}
	return result, nil
}

// DayUpdate is the websocket payload emitted after every advance.
type DayUpdate struct {
	Season int                   `json:"season"`
	Day    int                   `json:"day"`
	Result *league.AdvanceResult `json:"result"`
}

// ensureUserCompliance enforces the roster ceiling on the user's team
// before a regular-season day; with autoInjuryMoves the service fixes it.
func (s *SimService) ensureUserCompliance(autoInjuryMoves bool) error {
	if s.league.UserTeam == "" || !s.league.InRegularSeason() {
		return nil
	}
	user := s.league.TeamByName(s.league.UserTeam)
	if user == nil || len(user.Roster) <= models.MaxRoster {
		return nil
	}
	if !autoInjuryMoves {
		return models.NewSimError(models.ErrRosterFull,
			"%s carries %d active players; demote to %d before advancing",
			user.Name, len(user.Roster), models.MaxRoster)
	}
	s.league.TrimRosterToCap(user)
	return nil
}

// Reset discards the world and reseeds.
func (s *SimService) Reset(seed uint64) (MetaView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.league = league.NewLeague(league.GenesisOptions{
		Seed:            seed,
		GamesPerMatchup: s.opts.GamesPerMatchup,
		Density:         s.opts.Density,
	}, s.log)
	s.runtime = &storage.RuntimeState{}
	s.store.LastLoadError = ""

	if err := s.persist(true); err != nil {
		return MetaView{}, err
	}
	return MetaView{
		SaveVersion: storage.SaveVersion,
		Season:      s.league.SeasonNumber,
		Day:         s.league.DayIndex,
		DaysTotal:   len(s.league.Days),
		Phase:       PhaseRegular,
		Teams:       len(s.league.Teams),
		CupName:     models.CupName,
	}, nil
}

// SetUserTeam claims a franchise for the user.
func (s *SimService) SetUserTeam(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" && s.league.TeamByName(name) == nil {
		return models.NewSimError(models.ErrTeamNotFound, "%s", name)
	}
	s.league.UserTeam = name
	return s.persist(false)
}

// Save flushes everything with backups.
func (s *SimService) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(true)
}

// Autosave flushes without backups; wired to the cron schedule.
func (s *SimService) Autosave() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(false)
}

func (s *SimService) persist(withBackup bool) error {
	if err := s.store.SaveLeague(s.league, withBackup); err != nil {
		return err
	}
	return s.store.SaveRuntime(s.runtime, withBackup)
}

// Snapshot runs fn over the world under the service mutex. Read-only
// projections only; callers must not mutate.
func (s *SimService) Snapshot(fn func(l *league.League)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.league)
}

// History returns the season archive.
func (s *SimService) History() []models.SeasonHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.league.History
}

// HallOfFame returns the retired-player records.
func (s *SimService) HallOfFame() []models.HallOfFameEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.league.HallOfFame
}
