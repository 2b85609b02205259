package teamai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/simrand"
)

func TestChooseStarter_NoGoalieAvailable(t *testing.T) {
	team := benchSquad("Bayshore Barracudas")
	for _, p := range team.Roster {
		if p.Position == models.Goalie {
			p.InjuredGamesRemaining = 10
			p.InjuryStatus = models.StatusIR
		}
	}

	name := ChooseStarter(team, simrand.New(1), StarterContext{})
	assert.Empty(t, name)
	assert.Empty(t, team.StartingGoalie)
}

func TestChooseStarter_SoloGoalieAlwaysStarts(t *testing.T) {
	team := benchSquad("Dunmore Bison")
	var kept *models.Player
	for _, p := range team.Roster {
		if p.Position != models.Goalie {
			continue
		}
		if kept == nil {
			kept = p
		} else {
			p.InjuredGamesRemaining = 10
			p.InjuryStatus = models.StatusIR
		}
	}

	for seed := uint64(1); seed <= 20; seed++ {
		name := ChooseStarter(team, simrand.New(seed), StarterContext{BackToBack: true})
		assert.Equal(t, kept.Name, name)
	}
}

func TestChooseStarter_PlayoffColdStarterBenched(t *testing.T) {
	team := benchSquad("Marrow Falls Phantoms")
	var top, backup *models.Player
	for _, p := range team.Roster {
		if p.Position != models.Goalie {
			continue
		}
		if top == nil || p.Goaltending > top.Goaltending {
			top, backup = p, top
		} else {
			backup = p
		}
	}
	require.NotNil(t, backup)

	// Two straight leaky starts put the backup in the playoff net.
	top.RecentStarts = []models.GoalieStart{
		{SavePct: 0.845, GoalsAgainst: 5},
		{SavePct: 0.852, GoalsAgainst: 4},
	}

	name := ChooseStarter(team, simrand.New(1), StarterContext{Playoffs: true})
	assert.Equal(t, backup.Name, name)
	assert.Equal(t, backup.Name, team.StartingGoalie)
}

func TestChooseStarter_KeepsSlotMapCoherent(t *testing.T) {
	team := benchSquad("Silver Creek Scouts")
	SetDefaultLineup(team, 1)
	prevG1 := team.LineAssignments["G1"]

	var top *models.Player
	for _, p := range team.Roster {
		if p.Position == models.Goalie && p.Name == prevG1 {
			top = p
		}
	}
	require.NotNil(t, top)
	top.RecentStarts = []models.GoalieStart{
		{SavePct: 0.840, GoalsAgainst: 6},
		{SavePct: 0.850, GoalsAgainst: 5},
	}

	name := ChooseStarter(team, simrand.New(1), StarterContext{Playoffs: true})
	require.NotEqual(t, prevG1, name)
	assert.Equal(t, name, team.LineAssignments["G1"])
	assert.Equal(t, prevG1, team.LineAssignments["G2"])
}
