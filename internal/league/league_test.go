package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openice/rinkrat/internal/models"
)

func newTestLeague(seed uint64) *League {
	return NewLeague(GenesisOptions{Seed: seed, GamesPerMatchup: 2, Density: 0.60}, nil)
}

func TestNewLeague_WorldShape(t *testing.T) {
	l := newTestLeague(1)

	require.Len(t, l.Teams, 24)
	assert.Equal(t, 1, l.SeasonNumber)
	assert.Equal(t, 0, l.DayIndex)
	assert.Len(t, l.CoachPool, 12)

	conferences := make(map[string]int)
	divisions := make(map[string]int)
	for _, team := range l.Teams {
		conferences[team.Conference]++
		divisions[team.Division]++

		assert.Len(t, team.Roster, models.MaxRoster, "%s active roster", team.Name)
		assert.Len(t, team.MinorRoster, models.MinMinor, "%s minor roster", team.Name)
		assert.NotEmpty(t, team.Coach.Name)
	}
	assert.Equal(t, map[string]int{"East": 12, "West": 12}, conferences)
	for div, n := range divisions {
		assert.Equal(t, 6, n, "division %s", div)
	}
}

func TestNewLeague_JerseyNumbersUnique(t *testing.T) {
	l := newTestLeague(3)

	for _, team := range l.Teams {
		seen := make(map[int]bool)
		check := func(p *models.Player) {
			require.Greater(t, p.JerseyNumber, 0, "%s unnumbered", p.Name)
			require.LessOrEqual(t, p.JerseyNumber, 99)
			assert.False(t, seen[p.JerseyNumber], "%s: duplicate #%d", team.Name, p.JerseyNumber)
			seen[p.JerseyNumber] = true
		}
		for _, p := range team.Roster {
			check(p)
		}
		for _, p := range team.MinorRoster {
			check(p)
		}
	}
}

// Full regular season at seed 11: every team finishes with exactly 46
// games, standings points account for every decision, and no day
// schedules a team twice.
func TestAdvance_FullRegularSeason(t *testing.T) {
	l := newTestLeague(11)

	totalGames := 0
	for l.InRegularSeason() {
		result, err := l.Advance()
		require.NoError(t, err, "day %d", l.DayIndex)
		require.Equal(t, AdvanceGames, result.Type)
		totalGames += len(result.Games)
	}

	assert.Equal(t, 24*46/2, totalGames)

	pointsSum := 0
	for _, team := range l.Teams {
		rec := l.RecordOf(team.Name)
		assert.Equal(t, 46, rec.GamesPlayed(), "%s games played", team.Name)
		assert.Equal(t, 2*rec.Wins+rec.OTLosses, rec.Points())
		pointsSum += rec.Points()
	}
	// Every game awards 2 points for the win plus 1 for an OT loss.
	otLosses := 0
	for _, team := range l.Teams {
		otLosses += l.RecordOf(team.Name).OTLosses
	}
	assert.Equal(t, 2*totalGames+otLosses, pointsSum)
}

func TestAdvance_Deterministic(t *testing.T) {
	a := newTestLeague(5)
	b := newTestLeague(5)

	for day := 0; day < 10; day++ {
		ra, err := a.Advance()
		require.NoError(t, err)
		rb, err := b.Advance()
		require.NoError(t, err)

		require.Len(t, rb.Games, len(ra.Games))
		for i := range ra.Games {
			assert.Equal(t, ra.Games[i].Home, rb.Games[i].Home)
			assert.Equal(t, ra.Games[i].HomeGoals, rb.Games[i].HomeGoals)
			assert.Equal(t, ra.Games[i].AwayGoals, rb.Games[i].AwayGoals)
			assert.Equal(t, ra.Games[i].Overtime, rb.Games[i].Overtime)
		}
	}
}

func TestAdvance_RefusesCorruptedStandings(t *testing.T) {
	l := newTestLeague(2)
	_, err := l.Advance()
	require.NoError(t, err)

	// A record ahead of the calendar must stop the world before any game
	// is played.
	victim := l.Teams[5].Name
	l.RecordOf(victim).Wins = l.DayIndex + 1

	_, err = l.Advance()
	require.Error(t, err)
	assert.Equal(t, models.ErrInvariantViolation, models.KindOf(err))
	assert.Contains(t, err.Error(), victim)
}

func TestAdvance_RefusesDuplicateScheduling(t *testing.T) {
	l := newTestLeague(2)

	day := l.Days[l.DayIndex]
	require.GreaterOrEqual(t, len(day), 2)
	day[1].Away = day[0].Home
	l.Days[l.DayIndex] = day

	_, err := l.Advance()
	require.Error(t, err)
	assert.Equal(t, models.ErrSchedulingDuplicate, models.KindOf(err))
	assert.Contains(t, err.Error(), day[0].Home)
}

func TestAdvance_InjuryTimersDecay(t *testing.T) {
	l := newTestLeague(8)

	p := l.Teams[0].Roster[0]
	p.InjuredGamesRemaining = 1
	p.InjuryStatus = models.StatusIR

	_, err := l.Advance()
	require.NoError(t, err)

	assert.Equal(t, 0, p.InjuredGamesRemaining)
	assert.Equal(t, models.StatusHealthy, p.InjuryStatus)
}

func TestStandings_OrderAndShape(t *testing.T) {
	l := newTestLeague(4)
	for day := 0; day < 12; day++ {
		_, err := l.Advance()
		require.NoError(t, err)
	}

	rows := l.Standings(StandingsLeague, "")
	require.Len(t, rows, 24)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Points, rows[i].Points, "league table unsorted at %d", i)
	}

	division := l.Standings(StandingsDivision, l.Teams[0].Division)
	assert.Len(t, division, 6)

	conference := l.Standings(StandingsConference, "East")
	assert.Len(t, conference, 12)
}
