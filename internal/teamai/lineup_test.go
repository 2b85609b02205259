package teamai

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openice/rinkrat/internal/models"
)

// benchSquad builds a healthy 22-man roster: 13 forwards, 7 defensemen,
// 2 goalies, skills spread so rankings are non-trivial.
func benchSquad(name string) *models.Team {
	t := &models.Team{
		Name:  name,
		Coach: models.Coach{Name: "Test Coach", Rating: 4.2, Style: models.StyleBalanced},
	}
	add := func(pos models.Position, i int, skill float64) {
		p := &models.Player{
			ID:           fmt.Sprintf("%s-%s-%d", name, pos, i),
			Name:         fmt.Sprintf("%s %s %d", name, pos, i),
			Position:     pos,
			Age:          26,
			InjuryStatus: models.StatusHealthy,
			Shooting:     skill,
			Playmaking:   skill,
			Defense:      skill,
			Goaltending:  1.0,
			Physical:     skill,
			Durability:   3.5,
		}
		if pos == models.Goalie {
			p.Goaltending = skill
		}
		t.Roster = append(t.Roster, p)
	}
	fwdPos := []models.Position{models.LeftWing, models.Center, models.RightWing}
	for i := 0; i < 13; i++ {
		add(fwdPos[i%3], i, 3.6-0.1*float64(i))
	}
	for i := 0; i < 7; i++ {
		add(models.Defense, i, 3.4-0.1*float64(i))
	}
	add(models.Goalie, 0, 3.4)
	add(models.Goalie, 1, 2.9)
	return t
}

func dressedCounts(t *models.Team) (fwds, dmen, goalies int) {
	for _, name := range t.DressedPlayerNames {
		p := t.PlayerByName(name)
		switch {
		case p.Position == models.Goalie:
			goalies++
		case p.Position == models.Defense:
			dmen++
		default:
			fwds++
		}
	}
	return
}

func TestSetDefaultLineup_DressesFullGameRoster(t *testing.T) {
	team := benchSquad("Ironwood Lumberjacks")
	SetDefaultLineup(team, 1)

	require.Len(t, team.DressedPlayerNames, models.DressedTotal)
	fwds, dmen, goalies := dressedCounts(team)
	assert.Equal(t, models.DressedForwards, fwds)
	assert.Equal(t, models.DressedDefense, dmen)
	assert.Equal(t, models.DressedGoalies, goalies)

	// Every slot filled, no player in two slots.
	seen := make(map[string]bool)
	for _, slot := range models.LineupSlots {
		name := team.LineAssignments[slot]
		require.NotEmpty(t, name, "slot %s", slot)
		assert.False(t, seen[name], "%s dressed twice", name)
		seen[name] = true
	}

	assert.Equal(t, team.LineAssignments["G1"], team.StartingGoalie)
	assert.Equal(t, models.Goalie, team.PlayerByName(team.StartingGoalie).Position)
	assert.Zero(t, team.LineupPositionPenalty, "default lines carry no penalty")
}

func TestSetDefaultLineup_SkipsInjuredPlayers(t *testing.T) {
	team := benchSquad("Coventry Kings")
	hurt := team.Roster[0]
	hurt.InjuredGamesRemaining = 8
	hurt.InjuryStatus = models.StatusIR

	SetDefaultLineup(team, 3)

	require.Len(t, team.DressedPlayerNames, models.DressedTotal)
	assert.NotContains(t, team.DressedPlayerNames, hurt.Name)
}

func TestSetDefaultLineup_PromotesCaptain(t *testing.T) {
	team := benchSquad("Redstone Chargers")
	require.Empty(t, team.Captain)

	SetDefaultLineup(team, 1)

	require.NotEmpty(t, team.Captain)
	cap := team.PlayerByName(team.Captain)
	require.NotNil(t, cap)
	assert.NotEqual(t, models.Goalie, cap.Position)
}

func TestSetLineAssignments_HonorsRequestAndChargesPenalty(t *testing.T) {
	team := benchSquad("Westport Breakers")
	var dman *models.Player
	for _, p := range team.Roster {
		if p.Position == models.Defense {
			dman = p
			break
		}
	}
	require.NotNil(t, dman)

	SetLineAssignments(team, map[string]string{"L1-C": dman.Name}, 1)

	assert.Equal(t, dman.Name, team.LineAssignments["L1-C"])
	assert.GreaterOrEqual(t, team.LineupPositionPenalty, 0.07,
		"defenseman at center is out of position")
}

func TestSetLineAssignments_UnknownNamesKeepDefaults(t *testing.T) {
	team := benchSquad("Sundance Rattlers")
	SetLineAssignments(team, map[string]string{"L1-LW": "Nobody Special"}, 1)

	got := team.LineAssignments["L1-LW"]
	require.NotEmpty(t, got)
	assert.NotEqual(t, "Nobody Special", got)
	assert.NotNil(t, team.PlayerByName(got))
}

func TestPositionPenalty_CapsAtCeiling(t *testing.T) {
	team := benchSquad("Tidewater Storm")
	SetDefaultLineup(team, 1)

	// Scramble every skater slot with a goalie-for-skater style mismatch
	// by swapping the two pools wholesale.
	var fwdNames, defNames []string
	for _, p := range team.Roster {
		switch p.Position {
		case models.Defense:
			defNames = append(defNames, p.Name)
		case models.Goalie:
		default:
			fwdNames = append(fwdNames, p.Name)
		}
	}
	scrambled := make(map[string]string)
	di, fi := 0, 0
	for _, slot := range models.LineupSlots {
		switch models.SlotPosition(slot) {
		case models.Defense:
			scrambled[slot] = fwdNames[fi]
			fi++
		case models.Goalie:
		default:
			if di < len(defNames) {
				scrambled[slot] = defNames[di]
				di++
			}
		}
	}
	team.LineAssignments = scrambled

	assert.InDelta(t, 0.40, PositionPenalty(team), 1e-9)
}
