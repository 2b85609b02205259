// Package league owns the persistent world: the day-advance loop,
// standings bookkeeping, the playoff driver and the offseason pipeline.
package league

import (
	"github.com/sirupsen/logrus"

	"github.com/openice/rinkrat/internal/gamesim"
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/names"
	"github.com/openice/rinkrat/internal/simrand"
)

// League is the whole simulated world. It is mutated only under the
// service mutex; nothing in here locks.
type League struct {
	Seed         uint64                        `json:"seed"`
	SeasonNumber int                           `json:"season_number"`
	DayIndex     int                           `json:"day_index"`
	Teams        []*models.Team                `json:"teams"`
	Records      map[string]*models.TeamRecord `json:"records"`
	FreeAgents   []*models.Player              `json:"free_agents"`
	Days         []models.ScheduleDay          `json:"schedule_days"`
	CoachPool    []models.Coach                `json:"coach_pool"`
	UserTeam     string                        `json:"user_team,omitempty"`

	GamesPerMatchup int     `json:"games_per_matchup"`
	Density         float64 `json:"calendar_density"`

	PendingPlayoffs        *models.PlayoffBracket `json:"pending_playoffs,omitempty"`
	PendingPlayoffDays     []models.PlayoffDay    `json:"pending_playoff_days,omitempty"`
	PendingPlayoffDayIndex int                    `json:"pending_playoff_day_index"`

	LastOffseason    *OffseasonSummary             `json:"last_offseason,omitempty"`
	DraftFocusByTeam map[string]string             `json:"draft_focus_by_team,omitempty"`
	TeamNeedsByTeam  map[string]map[string]float64 `json:"team_needs_by_team,omitempty"`

	// PendingUserResigns holds user-team players whose contracts expired;
	// they stay reserved until the user decides.
	PendingUserResigns []*models.Player `json:"pending_user_resigns,omitempty"`

	// PendingDraft is set when a user team exists and the offseason has
	// reached the draft; draft operations drive it to completion.
	PendingDraft *DraftState `json:"pending_draft,omitempty"`

	// Persisted in their own files by the storage layer, never inside
	// league_state.json.
	History     []models.SeasonHistoryEntry    `json:"-"`
	HallOfFame  []models.HallOfFameEntry       `json:"-"`
	CareerIndex map[string][]models.SeasonLine `json:"-"`

	rng    *simrand.RNG
	engine *gamesim.Engine
	gen    *names.Generator
	log    *logrus.Logger
}

// Wire reattaches the runtime collaborators after construction or load.
func (l *League) Wire(log *logrus.Logger) {
	l.rng = simrand.New(l.Seed + uint64(l.SeasonNumber)*1_000_003 + uint64(l.DayIndex))
	l.engine = gamesim.New(l.rng, log)
	l.gen = names.NewGenerator(l.rng)
	l.log = log
	for _, t := range l.Teams {
		for _, p := range t.Roster {
			l.gen.Reserve(p.Name)
		}
		for _, p := range t.MinorRoster {
			l.gen.Reserve(p.Name)
		}
		l.gen.Reserve(t.Coach.Name)
	}
	for _, p := range l.FreeAgents {
		l.gen.Reserve(p.Name)
	}
	for _, c := range l.CoachPool {
		l.gen.Reserve(c.Name)
	}
}

// TeamByName finds a team.
func (l *League) TeamByName(name string) *models.Team {
	for _, t := range l.Teams {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// RecordOf returns (and lazily creates) a team's season record.
func (l *League) RecordOf(name string) *models.TeamRecord {
	if l.Records == nil {
		l.Records = make(map[string]*models.TeamRecord)
	}
	rec, ok := l.Records[name]
	if !ok {
		rec = &models.TeamRecord{}
		l.Records[name] = rec
	}
	return rec
}

// InRegularSeason reports whether scheduled days remain.
func (l *League) InRegularSeason() bool {
	return l.DayIndex < len(l.Days)
}

// InPlayoffs reports whether a bracket reveal is in progress.
func (l *League) InPlayoffs() bool {
	if l.InRegularSeason() {
		return false
	}
	return l.PendingPlayoffs == nil || l.PendingPlayoffDayIndex < len(l.PendingPlayoffDays)
}

// PlayoffsComplete reports whether every reveal day has been released.
func (l *League) PlayoffsComplete() bool {
	return l.PendingPlayoffs != nil && l.PendingPlayoffDayIndex >= len(l.PendingPlayoffDays)
}

// FindPlayer searches all rosters and the free-agent pool by name.
// Returns the player and the owning team ("" for free agents).
func (l *League) FindPlayer(name string) (*models.Player, string) {
	for _, t := range l.Teams {
		if p := t.AnyPlayerByName(name); p != nil {
			return p, t.Name
		}
	}
	for _, p := range l.FreeAgents {
		if p.Name == name {
			return p, ""
		}
	}
	return nil, ""
}

// FindPlayerByID searches everything by stable ID.
func (l *League) FindPlayerByID(id string) (*models.Player, string) {
	for _, t := range l.Teams {
		for _, p := range t.Roster {
			if p.ID == id {
				return p, t.Name
			}
		}
		for _, p := range t.MinorRoster {
			if p.ID == id {
				return p, t.Name
			}
		}
	}
	for _, p := range l.FreeAgents {
		if p.ID == id {
			return p, ""
		}
	}
	return nil, ""
}

// AllPlayers iterates every player in the world.
func (l *League) AllPlayers(fn func(p *models.Player, team string)) {
	for _, t := range l.Teams {
		for _, p := range t.Roster {
			fn(p, t.Name)
		}
		for _, p := range t.MinorRoster {
			fn(p, t.Name)
		}
	}
	for _, p := range l.FreeAgents {
		fn(p, "")
	}
}
