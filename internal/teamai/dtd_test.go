package teamai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/simrand"
)

func TestDecideDTD_GoalieWithoutBackupPlays(t *testing.T) {
	team := benchSquad("North Hollow Glaciers")
	var first, second *models.Player
	for _, p := range team.Roster {
		if p.Position != models.Goalie {
			continue
		}
		if first == nil {
			first = p
		} else {
			second = p
		}
	}
	require.NotNil(t, second)

	first.InjuryStatus = models.StatusDayToDay
	first.InjuredGamesRemaining = 2
	first.PlayingToday = false
	second.InjuredGamesRemaining = 12
	second.InjuryStatus = models.StatusIR

	for seed := uint64(1); seed <= 20; seed++ {
		first.PlayingToday = false
		DecideDTD(team, simrand.New(seed), DTDContext{})
		assert.True(t, first.PlayingToday, "only netminder must dress")
	}
}

func TestDecideDTD_IgnoresHealthyPlayers(t *testing.T) {
	team := benchSquad("Prairie Gate Hawks")
	DecideDTD(team, simrand.New(4), DTDContext{})
	for _, p := range team.Roster {
		assert.False(t, p.PlayingToday, "%s has no call to make", p.Name)
	}
}

func TestDecideDTD_SetsCallForEveryQuestionablePlayer(t *testing.T) {
	team := benchSquad("Larkspur Stampede")
	hurt := team.Roster[0]
	hurt.InjuryStatus = models.StatusDayToDay
	hurt.InjuredGamesRemaining = 1

	played, sat := 0, 0
	for seed := uint64(1); seed <= 120; seed++ {
		DecideDTD(team, simrand.New(seed), DTDContext{})
		if hurt.PlayingToday {
			played++
		} else {
			sat++
		}
	}
	assert.Positive(t, played, "a one-game knock is sometimes played through")
	assert.Positive(t, sat, "and sometimes rested")
}
