package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openice/rinkrat/internal/models"
)

func openingOpponent(t *testing.T, round *models.PlayoffRound, team string) string {
	t.Helper()
	for _, s := range round.Series {
		if s.HigherSeed == team {
			return s.LowerSeed
		}
		if s.LowerSeed == team {
			return s.HigherSeed
		}
	}
	t.Fatalf("%s missing from the opening round", team)
	return ""
}

// The better #1 seed in each conference draws the first wildcard; the
// other division winner gets the second.
func TestBuildPlayoffs_WildcardPairing(t *testing.T) {
	l := newTestLeague(13)
	for l.InRegularSeason() {
		_, err := l.Advance()
		require.NoError(t, err)
	}
	_, err := l.Advance()
	require.NoError(t, err)
	require.NotNil(t, l.PendingPlayoffs)

	opening := l.PendingPlayoffs.RoundByName(RoundOne)
	require.NotNil(t, opening)
	require.Len(t, opening.Series, 8)

	for _, conf := range l.conferenceNames() {
		topByDiv, remaining := l.conferenceSplit(conf)
		require.GreaterOrEqual(t, len(remaining), 2)
		wc1, wc2 := remaining[0], remaining[1]

		divs := l.conferenceDivisions(conf)
		require.Len(t, divs, 2)
		ones := []string{topByDiv[divs[0]][0], topByDiv[divs[1]][0]}
		l.sortTeamNames(ones)

		assert.Equal(t, wc1, openingOpponent(t, opening, ones[0]),
			"%s: better #1 seed draws the first wildcard", conf)
		assert.Equal(t, wc2, openingOpponent(t, opening, ones[1]),
			"%s: other #1 seed draws the second wildcard", conf)

		// Division runners-up meet each other.
		for _, div := range divs {
			assert.Equal(t, topByDiv[div][2], openingOpponent(t, opening, topByDiv[div][1]))
		}
	}
}

// A starter entering the series with two leaky outings hands the net to
// the backup for game one.
func TestSimulateSeries_BenchesColdStarter(t *testing.T) {
	l := newTestLeague(21)
	higher, lower := l.Teams[0], l.Teams[1]

	var top, backup *models.Player
	for _, p := range higher.Roster {
		if p.Position != models.Goalie {
			continue
		}
		if top == nil {
			top = p
		} else {
			backup = p
		}
	}
	require.NotNil(t, backup)
	top.Goaltending = 3.9
	backup.Goaltending = 3.1
	top.RecentStarts = []models.GoalieStart{
		{SavePct: 0.842, GoalsAgainst: 5},
		{SavePct: 0.851, GoalsAgainst: 4},
	}

	s := l.newSeries(RoundOne, higher.Name, lower.Name)
	stats := make(map[string]*playoffLine)
	l.simulateSeries(s, stats)

	require.NotEmpty(t, s.Games)
	game1 := s.Games[0]
	started := game1.HomeGoalie
	if game1.Home != higher.Name {
		started = game1.AwayGoalie
	}
	assert.Equal(t, backup.Name, started)

	// The postseason keeps feeding the form log the benching reads.
	assert.NotEmpty(t, backup.RecentStarts)
}
