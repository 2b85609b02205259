package gamesim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/simrand"
)

// makeTestTeam builds a healthy 20-man bench around a fixed skill level.
func makeTestTeam(name string, skill float64) *models.Team {
	t := &models.Team{Name: name, ArenaCapacity: 12000}

	mk := func(i int, pos models.Position) *models.Player {
		return &models.Player{
			ID:           fmt.Sprintf("%s-%d", name, i),
			Name:         fmt.Sprintf("%s Player %d", name, i),
			Position:     pos,
			Age:          26,
			InjuryStatus: models.StatusHealthy,
			Shooting:     skill,
			Playmaking:   skill,
			Defense:      skill,
			Goaltending:  skill,
			Physical:     skill,
			Durability:   3.5,
		}
	}

	n := 0
	add := func(pos models.Position) *models.Player {
		n++
		p := mk(n, pos)
		t.Roster = append(t.Roster, p)
		return p
	}

	assignments := make(map[string]string)
	slots := models.LineupSlots
	for _, slot := range slots {
		p := add(models.SlotPosition(slot))
		assignments[slot] = p.Name
		t.DressedPlayerNames = append(t.DressedPlayerNames, p.Name)
	}
	t.LineAssignments = assignments
	t.StartingGoalie = assignments["G1"]
	return t
}

func simulateOnce(seed uint64, record, injuries bool) *models.GameResult {
	home := makeTestTeam("Harborview", 3.2)
	away := makeTestTeam("Tidewater", 3.0)
	engine := New(simrand.New(seed), nil)
	return engine.Simulate(Config{
		Home:              SideConfig{Team: home, Strategy: models.StyleBalanced, ContextBonus: HomeBonusRegular},
		Away:              SideConfig{Team: away, Strategy: models.StyleBalanced, ContextBonus: AwayBonusRegular},
		RandScale:         RandScaleRegular,
		RecordPlayerStats: record,
		ApplyInjuries:     injuries,
	})
}

func TestSimulate_Deterministic(t *testing.T) {
	a := simulateOnce(42, true, true)
	b := simulateOnce(42, true, true)

	assert.Equal(t, a.HomeGoals, b.HomeGoals)
	assert.Equal(t, a.AwayGoals, b.AwayGoals)
	assert.Equal(t, a.Overtime, b.Overtime)
	assert.Equal(t, a.Goals, b.Goals)
	assert.Equal(t, a.ThreeStars, b.ThreeStars)
}

func TestSimulate_NeverTies(t *testing.T) {
	for seed := uint64(1); seed <= 60; seed++ {
		g := simulateOnce(seed, false, false)
		require.NotEqual(t, g.HomeGoals, g.AwayGoals, "seed %d", seed)
	}
}

func TestSimulate_GoalEventsMatchScore(t *testing.T) {
	g := simulateOnce(7, false, false)

	home, away := 0, 0
	for _, ev := range g.Goals {
		require.NotEmpty(t, ev.Scorer)
		assert.LessOrEqual(t, len(ev.Assists), 2)
		switch ev.Team {
		case g.Home:
			home++
		case g.Away:
			away++
		default:
			t.Fatalf("goal credited to unknown team %q", ev.Team)
		}
	}
	assert.Equal(t, g.HomeGoals, home)
	assert.Equal(t, g.AwayGoals, away)
}

func TestSimulate_GoalieLinesRecorded(t *testing.T) {
	home := makeTestTeam("Harborview", 3.2)
	away := makeTestTeam("Tidewater", 3.0)
	engine := New(simrand.New(9), nil)

	g := engine.Simulate(Config{
		Home:              SideConfig{Team: home},
		Away:              SideConfig{Team: away},
		RecordPlayerStats: true,
	})

	starter := home.PlayerByName(g.HomeGoalie)
	require.NotNil(t, starter)
	gs := starter.GoalieStats
	assert.Equal(t, 1, gs.GamesPlayed)
	assert.Equal(t, g.AwayGoals, gs.GoalsAgainst)
	assert.Equal(t, gs.ShotsAgainst-gs.GoalsAgainst, gs.Saves)
	assert.GreaterOrEqual(t, g.HomeShotsAgainst, g.AwayGoals)
	assert.Len(t, starter.RecentStarts, 1)
}

func TestSimulate_GoalieFormTrackedWithoutSeasonStats(t *testing.T) {
	home := makeTestTeam("Harborview", 3.2)
	away := makeTestTeam("Tidewater", 3.0)
	engine := New(simrand.New(11), nil)

	g := engine.Simulate(Config{
		Home:              SideConfig{Team: home},
		Away:              SideConfig{Team: away},
		RandScale:         RandScalePlayoff,
		RecordPlayerStats: false,
	})

	for _, side := range []struct {
		team   *models.Team
		goalie string
	}{{home, g.HomeGoalie}, {away, g.AwayGoalie}} {
		starter := side.team.PlayerByName(side.goalie)
		require.NotNil(t, starter)
		require.Len(t, starter.RecentStarts, 1, "form updates even when counters are off")
		assert.Greater(t, starter.RecentStarts[0].SavePct, 0.0)
		assert.Zero(t, starter.GoalieStats.GamesPlayed)
		assert.Zero(t, starter.GoalieStats.ShotsAgainst)
	}
}

func TestSimulate_SkaterStatsCredited(t *testing.T) {
	home := makeTestTeam("Harborview", 3.4)
	away := makeTestTeam("Tidewater", 2.8)
	engine := New(simrand.New(13), nil)

	g := engine.Simulate(Config{
		Home:              SideConfig{Team: home},
		Away:              SideConfig{Team: away},
		RecordPlayerStats: true,
	})

	total := 0
	for _, t2 := range []*models.Team{home, away} {
		for _, p := range t2.Roster {
			total += p.Goals
			assert.Equal(t, 1, p.GamesPlayed, "%s dressed once", p.Name)
		}
	}
	assert.Equal(t, g.HomeGoals+g.AwayGoals, total)
}

func TestSimulate_InjuriesSetRecoveryTimers(t *testing.T) {
	// Fragile rosters across many games must produce at least one injury,
	// and every injury event must leave the player flagged.
	found := false
	for seed := uint64(1); seed <= 40 && !found; seed++ {
		home := makeTestTeam("Harborview", 3.0)
		away := makeTestTeam("Tidewater", 3.0)
		for _, p := range append(home.Roster, away.Roster...) {
			p.Durability = 1.0
		}
		engine := New(simrand.New(seed), nil)
		g := engine.Simulate(Config{
			Home:          SideConfig{Team: home, InjuryMult: 2.0},
			Away:          SideConfig{Team: away, InjuryMult: 2.0},
			ApplyInjuries: true,
		})
		for _, ev := range g.Injuries {
			found = true
			team := home
			if ev.Team == away.Name {
				team = away
			}
			p := team.PlayerByName(ev.Player)
			require.NotNil(t, p)
			assert.True(t, p.IsInjured())
			assert.Equal(t, ev.GamesOut, p.InjuredGamesRemaining)
			assert.LessOrEqual(t, ev.GamesOut, 30)
		}
	}
	assert.True(t, found, "no injuries across 40 elevated-risk games")
}

func TestSimulate_ThreeStarsNamed(t *testing.T) {
	g := simulateOnce(21, false, false)
	require.Len(t, g.ThreeStars, 3)
	seen := make(map[string]bool)
	for _, star := range g.ThreeStars {
		require.NotEmpty(t, star.Player)
		assert.False(t, seen[star.Player], "star repeated")
		seen[star.Player] = true
	}
}
