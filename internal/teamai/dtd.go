package teamai

import (
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/simrand"
)

// DTDContext carries the situational pushes into the day-to-day decision.
type DTDContext struct {
	Playoffs    bool
	Elimination bool
	// Underdog marks the team as trailing its opponent badly enough to
	// gamble on a hurting contributor.
	Underdog bool
}

// DecideDTD makes today's play/sit call for every DTD player on the team.
// Goalies with no healthy backup always play.
func DecideDTD(t *models.Team, rng *simrand.RNG, ctx DTDContext) {
	teamAvg := rosterAverage(t)
	for _, p := range t.Roster {
		if p.InjuryStatus != models.StatusDayToDay || p.InjuredGamesRemaining <= 0 {
			continue
		}
		if p.Position == models.Goalie && healthyBackupCount(t, p) == 0 {
			p.PlayingToday = true
			continue
		}

		prob := 0.34 + 0.22*t.Coach.Quality()

		// Better-than-average players get pushed back in sooner.
		if p.Overall() > teamAvg+0.2 {
			prob += 0.07
		}
		if ctx.Underdog {
			prob += 0.05
		}
		prob -= 0.05 * float64(p.InjuredGamesRemaining-1)

		switch t.Coach.Style {
		case models.StyleAggressive:
			prob += 0.08
		case models.StyleDefensive:
			prob -= 0.07
		}
		if healthyDepthAt(t, p) == 0 {
			prob += 0.20
		}
		if ctx.Playoffs {
			prob += 0.11
		}
		if ctx.Elimination {
			prob += 0.10
		}

		p.PlayingToday = rng.Chance(simrand.Clamp(prob, 0.12, 0.94))
	}
}

// healthyDepthAt counts available same-position players other than p.
func healthyDepthAt(t *models.Team, p *models.Player) int {
	n := 0
	for _, other := range t.Roster {
		if other == p || !other.Available() {
			continue
		}
		if other.Position == p.Position ||
			(other.Position.IsForward() && p.Position.IsForward()) {
			n++
		}
	}
	return n
}

func healthyBackupCount(t *models.Team, g *models.Player) int {
	n := 0
	for _, other := range t.Roster {
		if other != g && other.Position == models.Goalie && other.Available() {
			n++
		}
	}
	return n
}

func rosterAverage(t *models.Team) float64 {
	if len(t.Roster) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range t.Roster {
		sum += p.Overall()
	}
	return sum / float64(len(t.Roster))
}
