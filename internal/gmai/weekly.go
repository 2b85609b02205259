package gmai

import (
	"sort"

	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/simrand"
)

// Weekly review cadence, enforced by the league loop.
const (
	WeeklyReviewMinDay  = 28
	WeeklyReviewPeriod  = 7
	MaxCPUTradesPerWeek = 2
)

// playoffSecurityWeights credit recent runs against the hot seat.
var playoffSecurityWeights = map[string]float64{
	"champion":   1.25,
	"cup_final":  0.95,
	"conf_final": 0.70,
	"round2":     0.35,
	"round1":     0.12,
}

// HotSeat scores how close a coach is to being fired.
func HotSeat(t *models.Team, rec models.TeamRecord, divRank int) float64 {
	gp := rec.GamesPlayed()
	gdPerGame := 0.0
	if gp > 0 {
		gdPerGame = float64(rec.GoalDiff()) / float64(gp)
	}

	heat := maxf(0, 0.52-rec.PointPct())*1.35 +
		maxf(0, -gdPerGame)*0.16 +
		maxf(0, 3.15-t.Coach.Rating)*0.34
	if divRank >= 4 {
		heat += 0.14
	}
	changes := 0.03 * float64(t.CoachChangesRecent)
	if changes > 0.25 {
		changes = 0.25
	}
	heat += changes

	heat -= 0.82 * playoffSecurity(t)
	return heat
}

// playoffSecurity sums run credit over the last 3 seasons, capped at 1.6.
func playoffSecurity(t *models.Team) float64 {
	sec := 0.0
	for i, finish := range t.PlayoffFinishes {
		if i >= 3 {
			break
		}
		sec += playoffSecurityWeights[finish]
	}
	if sec > 1.6 {
		sec = 1.6
	}
	return sec
}

// FiringEvent reports one coaching change.
type FiringEvent struct {
	Team     string
	OldCoach string
	NewCoach string
}

// ReviewCoach rolls the firing decision for one CPU team and, when the
// axe falls, hires from the candidate pool. The pool loses the hire and
// gains nothing; replenishment happens in the offseason.
func ReviewCoach(t *models.Team, rec models.TeamRecord, divRank int, pool *[]models.Coach, rng *simrand.RNG) *FiringEvent {
	heat := HotSeat(t, rec, divRank)
	prob := 0.16 * heat
	if prob < 0 {
		prob = 0
	}

	// Severe underperformance with a veteran group forces the issue.
	if rec.GamesPlayed() >= 20 && rec.PointPct() < 0.34 {
		prob += 0.10
	}

	if prob > 0.62 {
		prob = 0.62
	}

	// A recent cup run buys patience unless the collapse is extreme.
	if sec := playoffSecurity(t); sec >= 0.95 && rec.PointPct() >= 0.30 {
		scale := simrand.Clamp(0.55-0.28*(sec-0.95), 0.10, 0.55)
		prob *= scale
	}

	if !rng.Chance(prob) {
		return nil
	}

	hire, ok := HireFromPool(pool, rng)
	if !ok {
		return nil
	}
	old := t.Coach.Name
	hire.HoneymoonGames = 24
	hire.TenureSeasons = 0
	t.Coach = hire
	t.CoachChangesRecent++
	return &FiringEvent{Team: t.Name, OldCoach: old, NewCoach: hire.Name}
}

// HireFromPool pulls a randomized pick from the six most decorated
// candidates.
func HireFromPool(pool *[]models.Coach, rng *simrand.RNG) (models.Coach, bool) {
	if len(*pool) == 0 {
		return models.Coach{}, false
	}
	candidates := append([]models.Coach{}, *pool...)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].CupsWon != candidates[j].CupsWon {
			return candidates[i].CupsWon > candidates[j].CupsWon
		}
		return candidates[i].Rating > candidates[j].Rating
	})
	top := candidates
	if len(top) > 6 {
		top = top[:6]
	}
	pick := top[rng.Intn(len(top))]

	for i, c := range *pool {
		if c.ID == pick.ID {
			*pool = append((*pool)[:i], (*pool)[i+1:]...)
			break
		}
	}
	return pick, true
}

// PlannedTrade pairs two CPU teams with the proposal they agreed on.
type PlannedTrade struct {
	TeamA *models.Team
	TeamB *models.Team
	Deal  *Proposal
}

// PlanCPUTrades picks up to MaxCPUTradesPerWeek swaps among CPU teams,
// best combined net first. A team moves at most once per week.
func PlanCPUTrades(teams []*models.Team, records map[string]*models.TeamRecord, userTeam string) []PlannedTrade {
	var candidates []PlannedTrade
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			a, b := teams[i], teams[j]
			if a.Name == userTeam || b.Name == userTeam {
				continue
			}
			recA, recB := records[a.Name], records[b.Name]
			if recA == nil || recB == nil {
				continue
			}
			if deal := FindTrade(a, *recA, b, *recB); deal != nil {
				candidates = append(candidates, PlannedTrade{TeamA: a, TeamB: b, Deal: deal})
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Deal.Score > candidates[j].Deal.Score
	})

	var out []PlannedTrade
	traded := make(map[string]bool)
	for _, c := range candidates {
		if len(out) >= MaxCPUTradesPerWeek {
			break
		}
		if traded[c.TeamA.Name] || traded[c.TeamB.Name] {
			continue
		}
		traded[c.TeamA.Name] = true
		traded[c.TeamB.Name] = true
		out = append(out, c)
	}
	return out
}
