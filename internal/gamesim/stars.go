package gamesim

import (
	"fmt"
	"sort"

	"github.com/openice/rinkrat/internal/models"
)

// threeStars ranks every dressed player on the night's work and returns
// the top three.
func (e *Engine) threeStars(result *models.GameResult, homeLU, awayLU *dressedLineup) []models.Star {
	type candidate struct {
		player *models.Player
		team   string
		score  float64
		line   string
	}

	goals := make(map[string]int)
	assists := make(map[string]int)
	for _, ev := range result.Goals {
		goals[ev.Scorer]++
		for _, a := range ev.Assists {
			assists[a]++
		}
	}

	var candidates []candidate
	addSkaters := func(lu *dressedLineup, team string) {
		for _, p := range lu.Skaters {
			g := goals[p.Name]
			a := assists[p.Name]
			pts := g + a
			score := 52.0*float64(pts) + 18.0*float64(g) + 8.0*float64(a)
			if pts >= 3 {
				score += 18
			}
			if g >= 2 {
				score += 12
			}
			if score <= 0 {
				continue
			}
			candidates = append(candidates, candidate{
				player: p,
				team:   team,
				score:  score,
				line:   fmt.Sprintf("%dG %dA", g, a),
			})
		}
	}
	addSkaters(homeLU, result.Home)
	addSkaters(awayLU, result.Away)

	addGoalie := func(lu *dressedLineup, team string, shots, ga int, won bool) {
		g := lu.Starter
		if g == nil || g.Position != models.Goalie {
			return
		}
		saves := shots - ga
		if shots <= 0 {
			return
		}
		svPct := float64(saves) / float64(shots)
		score := goalieTierBonus(svPct) + 2.0*float64(saves) + workloadBonus(shots)
		if won {
			score += 34
		}
		if ga == 0 && won {
			score += 135
		}
		if ga >= 4 && shots < 38 {
			score -= 40
		}
		candidates = append(candidates, candidate{
			player: g,
			team:   team,
			score:  score,
			line:   fmt.Sprintf("%d SV, %d GA", saves, ga),
		})
	}
	addGoalie(homeLU, result.Home, result.HomeShotsAgainst, result.AwayGoals, result.HomeGoals > result.AwayGoals)
	addGoalie(awayLU, result.Away, result.AwayShotsAgainst, result.HomeGoals, result.AwayGoals > result.HomeGoals)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	stars := make([]models.Star, 0, 3)
	for i := 0; i < len(candidates) && i < 3; i++ {
		stars = append(stars, models.Star{
			Rank:   i + 1,
			Player: candidates[i].player.Name,
			Team:   candidates[i].team,
			Line:   candidates[i].line,
			Score:  candidates[i].score,
		})
	}
	return stars
}

func goalieTierBonus(svPct float64) float64 {
	switch {
	case svPct >= 0.960:
		return 95
	case svPct >= 0.940:
		return 72
	case svPct >= 0.920:
		return 50
	case svPct >= 0.900:
		return 30
	case svPct >= 0.885:
		return 12
	default:
		return 0
	}
}

func workloadBonus(shots int) float64 {
	switch {
	case shots >= 42:
		return 28
	case shots >= 36:
		return 18
	case shots >= 30:
		return 9
	default:
		return 0
	}
}
