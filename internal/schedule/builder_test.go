package schedule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Team %02d", i+1)
	}
	return names
}

func TestBuild_EveryTeamPlaysFullSlate(t *testing.T) {
	teams := teamNames(24)
	days := Build(teams, 2, 0.60)
	require.NotEmpty(t, days)

	games := make(map[string]int)
	for _, day := range days {
		for _, m := range day {
			games[m.Home]++
			games[m.Away]++
		}
	}

	want := TotalGamesPerTeam(24, 2)
	assert.Equal(t, 46, want)
	for _, name := range teams {
		assert.Equal(t, want, games[name], "%s game count", name)
	}
}

func TestBuild_NoTeamTwiceOnOneDay(t *testing.T) {
	days := Build(teamNames(24), 2, 0.60)

	for di, day := range days {
		seen := make(map[string]bool)
		for _, m := range day {
			assert.False(t, seen[m.Home], "day %d: %s scheduled twice", di, m.Home)
			assert.False(t, seen[m.Away], "day %d: %s scheduled twice", di, m.Away)
			seen[m.Home] = true
			seen[m.Away] = true
		}
	}
}

func TestBuild_HomeAwayBalanced(t *testing.T) {
	// With an even matchup count every pairing flips orientation between
	// passes, so home and away splits match exactly.
	days := Build(teamNames(24), 2, 0.60)

	home := make(map[string]int)
	away := make(map[string]int)
	for _, day := range days {
		for _, m := range day {
			home[m.Home]++
			away[m.Away]++
		}
	}
	for name, h := range home {
		assert.Equal(t, h, away[name], "%s home/away split", name)
	}
}

func TestBuild_EachPairMeetsGamesPerMatchupTimes(t *testing.T) {
	teams := teamNames(8)
	days := Build(teams, 3, 0.60)

	meetings := make(map[string]int)
	for _, day := range days {
		for _, m := range day {
			a, b := m.Home, m.Away
			if a > b {
				a, b = b, a
			}
			meetings[a+"|"+b]++
		}
	}
	require.Len(t, meetings, 8*7/2)
	for pair, n := range meetings {
		assert.Equal(t, 3, n, "pair %s", pair)
	}
}

func TestBuild_OddTeamCountGetsByes(t *testing.T) {
	teams := teamNames(7)
	days := Build(teams, 1, 0.60)

	games := make(map[string]int)
	for _, day := range days {
		for _, m := range day {
			require.NotEmpty(t, m.Home)
			require.NotEmpty(t, m.Away)
			games[m.Home]++
			games[m.Away]++
		}
	}
	for _, name := range teams {
		assert.Equal(t, 6, games[name], "%s game count", name)
	}
}

func TestBuild_DegenerateInputs(t *testing.T) {
	assert.Nil(t, Build(teamNames(1), 2, 0.60))
	assert.Nil(t, Build(teamNames(24), 0, 0.60))

	// Density clamps rather than exploding.
	assert.NotEmpty(t, Build(teamNames(4), 1, 0.01))
	assert.NotEmpty(t, Build(teamNames(4), 1, 5.0))
}

func TestBuild_Deterministic(t *testing.T) {
	a := Build(teamNames(24), 2, 0.60)
	b := Build(teamNames(24), 2, 0.60)
	assert.Equal(t, a, b)
}
