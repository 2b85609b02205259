package teamai

import (
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/simrand"
)

// StarterContext tells the selector what kind of day it is.
type StarterContext struct {
	BackToBack bool
	Playoffs   bool
	// SeriesBenched marks that the nominal starter was already pulled
	// this series; once benched, the backup keeps the net while hot.
	SeriesBenched bool
}

// ChooseStarter picks tonight's goalie and writes it onto the team. The
// returned name is the chosen starter ("" when the team has no goalie at
// all and an emergency skater will have to dress).
func ChooseStarter(t *models.Team, rng *simrand.RNG, ctx StarterContext) string {
	var goalies []*models.Player
	for _, p := range t.Roster {
		if p.Position == models.Goalie && p.Available() {
			goalies = append(goalies, p)
		}
	}
	if len(goalies) == 0 {
		t.StartingGoalie = ""
		return ""
	}

	// Top goalie by rating; backup is the best of the rest.
	top := goalies[0]
	for _, g := range goalies[1:] {
		if g.Goaltending > top.Goaltending {
			top = g
		}
	}
	var backup *models.Player
	for _, g := range goalies {
		if g == top {
			continue
		}
		if backup == nil || g.Goaltending > backup.Goaltending {
			backup = g
		}
	}

	choice := top
	switch {
	case backup == nil:
		// No decision to make.
	case ctx.Playoffs:
		choice = playoffStarter(top, backup, ctx)
	case ctx.BackToBack:
		// Rest the starter on the second night, scaled by how close the
		// backup is in quality.
		gap := top.Goaltending - backup.Goaltending
		restProb := simrand.Clamp(0.88-0.25*gap, 0.30, 0.95)
		if rng.Chance(restProb) {
			choice = backup
		}
	default:
		fatigue := 0.0
		gpGap := top.GoalieStats.GamesPlayed - backup.GoalieStats.GamesPlayed
		if gpGap > 6 {
			fatigue = 0.03 * float64(gpGap-6)
		}
		startProb := simrand.Clamp(0.70+0.12*t.Coach.Quality()-fatigue, 0.52, 0.94)
		if !rng.Chance(startProb) {
			choice = backup
		}
	}

	t.StartingGoalie = choice.Name
	if t.LineAssignments == nil {
		t.LineAssignments = make(map[string]string)
	}
	// Keep the slot map coherent with the start.
	if t.LineAssignments["G1"] != choice.Name {
		other := t.LineAssignments["G1"]
		t.LineAssignments["G1"] = choice.Name
		if other != "" && other != choice.Name {
			t.LineAssignments["G2"] = other
		}
	}
	return choice.Name
}

// playoffStarter applies the cold-starter switch rules.
func playoffStarter(top, backup *models.Player, ctx StarterContext) *models.Player {
	if ctx.SeriesBenched {
		// Stick with the hot backup.
		if recentSavePct(backup, 2) >= 0.895 {
			return backup
		}
		return top
	}

	recent := recentSavePct(top, 2)
	if len(top.RecentStarts) >= 2 && recent < 0.885 {
		return backup
	}
	if last, ok := lastStart(top); ok && last.SavePct < 0.860 && last.GoalsAgainst >= 4 {
		return backup
	}
	if recentSavePct(top, 4) > 0 && recentSavePct(top, 4) < 0.890 && recentSavePct(backup, 2) >= 0.895 {
		return backup
	}
	return top
}

func lastStart(g *models.Player) (models.GoalieStart, bool) {
	if len(g.RecentStarts) == 0 {
		return models.GoalieStart{}, false
	}
	return g.RecentStarts[len(g.RecentStarts)-1], true
}

// recentSavePct averages the save percentage over the last n starts; 0
// when the goalie has no recorded starts.
func recentSavePct(g *models.Player, n int) float64 {
	starts := g.RecentStarts
	if len(starts) == 0 {
		return 0
	}
	if len(starts) > n {
		starts = starts[len(starts)-n:]
	}
	sum := 0.0
	for _, s := range starts {
		sum += s.SavePct
	}
	return sum / float64(len(starts))
}
