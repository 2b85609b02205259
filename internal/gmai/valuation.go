// Package gmai is the front-office brain: player valuation, 1-for-1 trade
// search and acceptance, and the CPU weekly review (coach firings, market
// moves).
package gmai

import (
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/simrand"
)

// Need bucket keys, in the fixed evaluation order.
const (
	NeedTop6F     = "top6_f"
	NeedTop4D     = "top4_d"
	NeedStarterG  = "starter_g"
	NeedDepthF    = "depth_f"
	NeedDepthD    = "depth_d"
	NeedCapRelief = "cap_relief"
)

var needOrder = []string{NeedTop6F, NeedTop4D, NeedStarterG, NeedDepthF, NeedDepthD, NeedCapRelief}

// TeamNeeds scores each need bucket for a team. Higher means more urgent.
func TeamNeeds(t *models.Team) map[string]float64 {
	needs := make(map[string]float64, len(needOrder))

	fwds, dmen, goalies := splitRoster(t)

	top6 := topOveralls(fwds, 6)
	top4 := topOveralls(dmen, 4)
	needs[NeedTop6F] = simrand.Clamp((3.3-avgF(top6))*0.9, 0, 1.5)
	needs[NeedTop4D] = simrand.Clamp((3.2-avgF(top4))*0.9, 0, 1.5)

	bestG := 0.0
	for _, g := range goalies {
		if g.Goaltending > bestG {
			bestG = g.Goaltending
		}
	}
	needs[NeedStarterG] = simrand.Clamp((3.3-bestG)*0.9, 0, 1.5)

	// Depth needs track raw healthy counts against dressing requirements.
	needs[NeedDepthF] = simrand.Clamp(float64(13-len(fwds))*0.25, 0, 1.5)
	needs[NeedDepthD] = simrand.Clamp(float64(7-len(dmen))*0.25, 0, 1.5)

	needs[NeedCapRelief] = simrand.Clamp((teamCapTotal(t)-capComfort)*0.08, 0, 1.2)
	return needs
}

// capComfort is the payroll level above which cap relief starts to score.
const capComfort = 72.0

// PrimaryNeed returns the highest-scored bucket.
func PrimaryNeed(t *models.Team) (string, float64) {
	needs := TeamNeeds(t)
	bestKey, bestVal := "", -1.0
	for _, k := range needOrder {
		if needs[k] > bestVal {
			bestKey, bestVal = k, needs[k]
		}
	}
	return bestKey, bestVal
}

// NeedBucket maps a player to the bucket he would address for a team.
func NeedBucket(p *models.Player) string {
	switch {
	case p.Position == models.Goalie:
		return NeedStarterG
	case p.Position == models.Defense && p.Overall() >= 3.1:
		return NeedTop4D
	case p.Position == models.Defense:
		return NeedDepthD
	case p.Overall() >= 3.2:
		return NeedTop6F
	default:
		return NeedDepthF
	}
}

// ValuePlayer scores what a player is worth to the acquiring team.
func ValuePlayer(p *models.Player, acquirer *models.Team) float64 {
	base := p.Overall()

	ageAdj := ageAdjustment(p)

	askCap := averageCapHit(acquirer)
	costEff := simrand.Clamp((askCap-p.Contract.CapHit)*0.1, -0.35, 0.35)

	termBonus := simrand.Clamp(float64(p.Contract.YearsLeft-1)*0.04, 0, 0.2)

	needs := TeamNeeds(acquirer)
	bucket := NeedBucket(p)
	shortage := positionShortage(acquirer, p.Position)
	posAvg := positionAverage(acquirer, p.Position)
	needBonus := shortage*0.08 + maxf(0, 2.9-posAvg)*0.09 + needs[bucket]*0.16

	prospect := 0.0
	if p.Prospect != nil && !p.Prospect.Resolved && p.Prospect.SeasonsToNHL > 0 {
		prospect = simrand.Clamp((p.Prospect.Potential-0.5)*0.6, -0.05, 0.28)
	}

	injuryPen := 0.0
	switch {
	case p.IsInjured():
		injuryPen = 0.03 * float64(p.InjuredGamesRemaining)
		if injuryPen > 0.35 {
			injuryPen = 0.35
		}
	case p.InjuryStatus == models.StatusDayToDay && p.InjuredGamesRemaining > 0:
		injuryPen = 0.06
	}

	return base + ageAdj + costEff + termBonus + needBonus + prospect - injuryPen
}

func ageAdjustment(p *models.Player) float64 {
	if p.Position == models.Goalie {
		switch {
		case p.Age <= 23:
			return 0.22
		case p.Age <= 30:
			return 0.12
		case p.Age <= 35:
			return -0.03
		default:
			return -0.18
		}
	}
	switch {
	case p.Age <= 21:
		return 0.24
	case p.Age <= 27:
		return 0.11
	case p.Age <= 31:
		return 0
	case p.Age <= 35:
		return -0.12
	default:
		return -0.25
	}
}

func splitRoster(t *models.Team) (fwds, dmen, goalies []*models.Player) {
	for _, p := range t.Roster {
		switch {
		case p.Position == models.Goalie:
			goalies = append(goalies, p)
		case p.Position == models.Defense:
			dmen = append(dmen, p)
		default:
			fwds = append(fwds, p)
		}
	}
	return fwds, dmen, goalies
}

func topOveralls(players []*models.Player, n int) []float64 {
	vals := make([]float64, 0, len(players))
	for _, p := range players {
		vals = append(vals, p.Overall())
	}
	// insertion-sort descending; pools are tiny
	for i := 1; i < len(vals); i++ {
		for j := i; j > 0 && vals[j] > vals[j-1]; j-- {
			vals[j], vals[j-1] = vals[j-1], vals[j]
		}
	}
	if len(vals) > n {
		vals = vals[:n]
	}
	return vals
}

func avgF(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func positionShortage(t *models.Team, pos models.Position) float64 {
	target := 2
	have := 0
	for _, p := range t.Roster {
		if !p.Available() {
			continue
		}
		if p.Position == pos || (pos.IsForward() && p.Position.IsForward()) {
			have++
		}
	}
	if pos.IsForward() {
		target = models.DressedForwards
	} else if pos == models.Defense {
		target = models.DressedDefense
	}
	if have >= target {
		return 0
	}
	return float64(target - have)
}

func positionAverage(t *models.Team, pos models.Position) float64 {
	sum, n := 0.0, 0
	for _, p := range t.Roster {
		if p.Position == pos || (pos.IsForward() && p.Position.IsForward()) {
			sum += p.Overall()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func averageCapHit(t *models.Team) float64 {
	if len(t.Roster) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range t.Roster {
		sum += p.Contract.CapHit
	}
	return sum / float64(len(t.Roster))
}

func teamCapTotal(t *models.Team) float64 {
	sum := 0.0
	for _, p := range t.Roster {
		sum += p.Contract.CapHit
	}
	return sum
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
