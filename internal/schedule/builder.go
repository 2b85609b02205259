// Package schedule builds the regular-season calendar: a circle-method
// round robin expanded per matchup count and packed into calendar days.
package schedule

import (
	"math"

	"github.com/openice/rinkrat/internal/models"
)

// DefaultDensity is the calendar-density knob surfaced in config. It is a
// product default, not derived from any rule.
const DefaultDensity = 0.60

// Build produces the ordered list of days for one regular season.
//
// The circle method yields len(teams)-1 rounds of ceil(len(teams)/2)
// matchups (odd team counts play around a ghost slot, which becomes a
// bye). Rounds repeat gamesPerMatchup times with home/away flipped between
// passes, and each round's matchups are rotated by (round+pass) before
// being chunked into days. A day never contains the same team twice
// because every day is cut from a single round.
func Build(teams []string, gamesPerMatchup int, density float64) []models.ScheduleDay {
	if len(teams) < 2 || gamesPerMatchup < 1 {
		return nil
	}
	if density < 0.35 {
		density = 0.35
	}
	if density > 1.0 {
		density = 1.0
	}

	circle := make([]string, len(teams))
	copy(circle, teams)
	if len(circle)%2 == 1 {
		circle = append(circle, "") // ghost slot, produces byes
	}
	n := len(circle)

	rounds := make([][]models.Matchup, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := make([]models.Matchup, 0, n/2)
		for i := 0; i < n/2; i++ {
			a, b := circle[i], circle[n-1-i]
			if a == "" || b == "" {
				continue
			}
			// Alternate orientation within the round so the fixed
			// team does not host every game of the pass.
			if (r+i)%2 == 0 {
				round = append(round, models.Matchup{Home: a, Away: b})
			} else {
				round = append(round, models.Matchup{Home: b, Away: a})
			}
		}
		rounds = append(rounds, round)
		// Rotate everything but the first slot.
		last := circle[n-1]
		copy(circle[2:], circle[1:n-1])
		circle[1] = last
	}

	perDay := int(math.Ceil(float64(len(teams)) * density / 2.0))
	if perDay < 1 {
		perDay = 1
	}

	var days []models.ScheduleDay
	for pass := 0; pass < gamesPerMatchup; pass++ {
		for r, round := range rounds {
			games := make([]models.Matchup, len(round))
			// Rotate the round so day cuts differ between passes.
			off := (r + pass) % len(round)
			for i := range round {
				games[i] = round[(i+off)%len(round)]
			}
			if pass%2 == 1 {
				for i := range games {
					games[i].Home, games[i].Away = games[i].Away, games[i].Home
				}
			}
			for start := 0; start < len(games); start += perDay {
				end := start + perDay
				if end > len(games) {
					end = len(games)
				}
				day := make(models.ScheduleDay, end-start)
				copy(day, games[start:end])
				days = append(days, day)
			}
		}
	}
	return days
}

// TotalGamesPerTeam is the games each team plays in a built schedule.
func TotalGamesPerTeam(teamCount, gamesPerMatchup int) int {
	return (teamCount - 1) * gamesPerMatchup
}
