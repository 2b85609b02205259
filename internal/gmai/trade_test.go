package gmai

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openice/rinkrat/internal/models"
)

func flatPlayer(name string, pos models.Position, age int, skill, capHit float64, years int) *models.Player {
	return &models.Player{
		ID:           name,
		Name:         name,
		Position:     pos,
		Age:          age,
		InjuryStatus: models.StatusHealthy,
		Shooting:     skill,
		Playmaking:   skill,
		Defense:      skill,
		Goaltending:  skill,
		Physical:     skill,
		Durability:   3.5,
		Contract:     models.Contract{YearsLeft: years, CapHit: capHit},
	}
}

// tradeTeam builds a 22-man roster of league-average players around the
// named specials.
func tradeTeam(name string, specials ...*models.Player) *models.Team {
	t := &models.Team{Name: name}
	t.Roster = append(t.Roster, specials...)

	plan := []models.Position{
		models.Center, models.Center, models.Center, models.Center,
		models.LeftWing, models.LeftWing, models.LeftWing, models.LeftWing,
		models.RightWing, models.RightWing, models.RightWing,
		models.Defense, models.Defense, models.Defense, models.Defense,
		models.Defense, models.Defense, models.Defense,
		models.Goalie, models.Goalie,
	}
	for i, pos := range plan {
		if len(t.Roster) >= models.MaxRoster {
			break
		}
		t.Roster = append(t.Roster, flatPlayer(fmt.Sprintf("%s Depth %d", name, i), pos, 27, 2.8, 5.0, 2))
	}
	return t
}

func TestAccepts_ValueAndMargin(t *testing.T) {
	// An aging scorer with a friendly contract for an expensive young star:
	// the partner comes out ahead on cost and term and takes the deal.
	veteran := flatPlayer("Veteran Wing", models.RightWing, 30, 3.2, 2.0, 3)
	star := flatPlayer("Young Star", models.RightWing, 24, 3.6, 9.5, 1)

	partner := tradeTeam("Dunmore Bison", star)
	rec := models.TeamRecord{Wins: 10, Losses: 25, OTLosses: 2}
	ok, net := Accepts(partner, rec, star, veteran)
	assert.True(t, ok, "partner net %.3f", net)
	assert.Greater(t, net, 0.0)
}

func TestAccepts_RefusesLopsidedDeals(t *testing.T) {
	grinder := flatPlayer("Grinder", models.Center, 29, 2.3, 1.0, 1)
	ace := flatPlayer("Franchise Ace", models.Center, 25, 4.6, 6.0, 4)

	partner := tradeTeam("Cascade Wolves", ace)
	rec := models.TeamRecord{Wins: 30, Losses: 8}

	ok, net := Accepts(partner, rec, ace, grinder)
	assert.False(t, ok)
	assert.Less(t, net, 0.0)
}

func TestValidateTradePlayers_Untouchable(t *testing.T) {
	give := flatPlayer("Shipped Out", models.LeftWing, 28, 3.0, 4.0, 2)
	receive := flatPlayer("Locked Up", models.LeftWing, 26, 3.4, 6.0, 3)
	receive.TradePref = models.TradeUntouchable

	user := tradeTeam("Easton Royals", give)
	partner := tradeTeam("Tidewater Storm", receive)

	simErr := ValidateTradePlayers(user, give, partner, receive)
	require.NotNil(t, simErr)
	assert.Equal(t, models.ErrUntouchable, simErr.Kind)
	assert.Contains(t, simErr.Error(), receive.Name)
}

func TestValidateTradePlayers_InjuredAndLastGoalie(t *testing.T) {
	give := flatPlayer("Hurt Wing", models.LeftWing, 27, 3.0, 4.0, 2)
	give.InjuredGamesRemaining = 10
	give.InjuryStatus = models.StatusIR
	receive := flatPlayer("Healthy Wing", models.LeftWing, 27, 3.0, 4.0, 2)

	user := tradeTeam("Easton Royals", give)
	partner := tradeTeam("Tidewater Storm", receive)

	simErr := ValidateTradePlayers(user, give, partner, receive)
	require.NotNil(t, simErr)
	assert.Equal(t, models.ErrInjuredInTrade, simErr.Kind)

	// A team may never deal away its only healthy goalie.
	goalie := flatPlayer("Lone Netminder", models.Goalie, 27, 3.2, 4.0, 2)
	solo := &models.Team{Name: "Coventry Kings", Roster: []*models.Player{
		goalie,
		flatPlayer("Kings Wing", models.LeftWing, 27, 2.8, 3.0, 2),
	}}
	other := flatPlayer("Other Wing", models.LeftWing, 27, 2.8, 3.0, 2)
	partner2 := tradeTeam("Stonebridge Bears", other)

	simErr = ValidateTradePlayers(solo, goalie, partner2, other)
	require.NotNil(t, simErr)
	assert.Equal(t, models.ErrLastHealthyGoalie, simErr.Kind)
}

func TestFindTrade_ProposalsAreValid(t *testing.T) {
	a := tradeTeam("Harborview Admirals",
		flatPlayer("Admirals Sniper", models.RightWing, 26, 3.7, 6.0, 3))
	b := tradeTeam("Westport Breakers",
		flatPlayer("Breakers Anchor", models.Defense, 27, 3.6, 6.0, 3))

	recA := models.TeamRecord{Wins: 20, Losses: 15}
	recB := models.TeamRecord{Wins: 18, Losses: 17}

	p := FindTrade(a, recA, b, recB)
	if p == nil {
		t.Skip("no mutually acceptable swap for this roster shape")
	}
	assert.Nil(t, ValidateTradePlayers(a, p.Give, b, p.Receive))
	assert.NotEqual(t, p.Give.Name, p.Receive.Name)
}

func TestPrimaryNeed_FlagsWeakGoaltending(t *testing.T) {
	weakG := tradeTeam("Granite Bay Miners")
	for _, p := range weakG.Roster {
		if p.Position == models.Goalie {
			p.Goaltending = 1.8
		}
	}
	need, severity := PrimaryNeed(weakG)
	assert.Equal(t, NeedStarterG, need)
	assert.Greater(t, severity, 0.5)
}
