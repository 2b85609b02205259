package gamesim

import (
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/simrand"
)

// deployment usage by line depth, used both for strength weighting and
// scorer attribution.
var (
	forwardLineUsage = []float64{1.0, 0.85, 0.62, 0.45}
	defensePairUsage = []float64{0.90, 0.72, 0.50}
)

// dressedLineup is a team's game-day lineup resolved from its slot map.
type dressedLineup struct {
	Forwards [4][]*models.Player
	Pairs    [3][]*models.Player
	Goalies  []*models.Player
	Skaters  []*models.Player

	// GoalieShortfall is 0 when a real goalie starts, 1 when a skater is
	// dressed in net, 2 when the net is empty.
	GoalieShortfall int
	Starter         *models.Player
}

// resolveLineup walks the slot map. Slots missing a player fall back to the
// best remaining dressed player so a sparse map still produces a lineup.
func resolveLineup(t *models.Team) *dressedLineup {
	lu := &dressedLineup{}
	seen := make(map[string]bool)

	take := func(slot string) *models.Player {
		name := t.LineAssignments[slot]
		if name == "" {
			return nil
		}
		p := t.PlayerByName(name)
		if p == nil || seen[p.Name] || !p.Available() {
			return nil
		}
		seen[p.Name] = true
		return p
	}

	for _, slot := range models.LineupSlots {
		p := take(slot)
		if p == nil {
			continue
		}
		switch {
		case slot == "G1" || slot == "G2":
			lu.Goalies = append(lu.Goalies, p)
		case models.SlotPosition(slot) == models.Defense:
			idx := int(slot[1] - '1')
			if idx >= 0 && idx < 3 {
				lu.Pairs[idx] = append(lu.Pairs[idx], p)
			}
		default:
			idx := int(slot[1] - '1')
			if idx >= 0 && idx < 4 {
				lu.Forwards[idx] = append(lu.Forwards[idx], p)
			}
		}
	}

	// Backfill thin lines from any healthy unused roster player.
	for li := range lu.Forwards {
		for len(lu.Forwards[li]) < 3 {
			p := bestUnused(t, seen, true)
			if p == nil {
				break
			}
			seen[p.Name] = true
			lu.Forwards[li] = append(lu.Forwards[li], p)
		}
	}
	for pi := range lu.Pairs {
		for len(lu.Pairs[pi]) < 2 {
			p := bestUnused(t, seen, false)
			if p == nil {
				break
			}
			seen[p.Name] = true
			lu.Pairs[pi] = append(lu.Pairs[pi], p)
		}
	}

	for _, line := range lu.Forwards {
		lu.Skaters = append(lu.Skaters, line...)
	}
	for _, pair := range lu.Pairs {
		lu.Skaters = append(lu.Skaters, pair...)
	}

	if t.StartingGoalie != "" {
		if p := t.PlayerByName(t.StartingGoalie); p != nil && p.Available() {
			lu.Starter = p
		}
	}
	if lu.Starter == nil && len(lu.Goalies) > 0 {
		lu.Starter = lu.Goalies[0]
	}
	switch {
	case lu.Starter == nil:
		lu.GoalieShortfall = 2
	case lu.Starter.Position != models.Goalie:
		lu.GoalieShortfall = 1
	}
	return lu
}

func bestUnused(t *models.Team, seen map[string]bool, preferForward bool) *models.Player {
	var best *models.Player
	bestScore := -1.0
	for _, p := range t.Roster {
		if seen[p.Name] || !p.Available() || p.Position == models.Goalie {
			continue
		}
		score := p.SkaterOverall()
		if preferForward == p.Position.IsForward() {
			score += 0.5
		}
		if score > bestScore {
			best, bestScore = p, score
		}
	}
	return best
}

func avg(players []*models.Player, score func(*models.Player) float64) float64 {
	if len(players) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range players {
		sum += score(p)
	}
	return sum / float64(len(players))
}

func forwardOffenseScore(p *models.Player) float64 {
	return 0.64*p.Shooting + 0.36*p.Playmaking + 0.10*p.Physical
}

func defenseOffenseScore(p *models.Player) float64 {
	return 0.36*p.Shooting + 0.64*p.Playmaking + 0.08*p.Defense
}

// teamOffense blends forward and defense offense with a fatigue charge for
// top-heavy deployment.
func teamOffense(lu *dressedLineup) float64 {
	top6 := append(append([]*models.Player{}, lu.Forwards[0]...), lu.Forwards[1]...)
	mid6 := append(append([]*models.Player{}, lu.Forwards[2]...), lu.Forwards[3][:min(len(lu.Forwards[3]), 3)]...)
	depth := lu.Forwards[3]

	fwOff := 0.56*avg(top6, forwardOffenseScore) +
		0.29*avg(mid6, forwardOffenseScore) +
		0.15*avg(depth, forwardOffenseScore)

	top4 := append(append([]*models.Player{}, lu.Pairs[0]...), lu.Pairs[1]...)
	dOff := 0.72*avg(top4, defenseOffenseScore) + 0.28*avg(lu.Pairs[2], defenseOffenseScore)

	gap := avg(top6, forwardOffenseScore) - avg(depth, forwardOffenseScore)
	fatigue := 0.025 * maxf(0, gap-0.8)

	return fwOff*0.84 + dOff*0.16 - fatigue
}

// teamDefense blends defense pairs, the starting goalie and forward
// back-checking.
func teamDefense(lu *dressedLineup) float64 {
	pairScore := 0.0
	weightSum := 0.0
	for i, pair := range lu.Pairs {
		if len(pair) == 0 {
			continue
		}
		w := defensePairUsage[i]
		pairScore += w * avg(pair, func(p *models.Player) float64 { return p.Defense })
		weightSum += w
	}
	if weightSum > 0 {
		pairScore /= weightSum
	}

	goalie := 0.0
	if lu.Starter != nil {
		goalie = lu.Starter.Goaltending
	}

	fwDef := 0.0
	count := 0
	for _, line := range lu.Forwards {
		for _, p := range line {
			fwDef += p.Defense
			count++
		}
	}
	if count > 0 {
		fwDef /= float64(count)
	}

	return pairScore*0.45 + goalie*0.35 + fwDef*0.20
}

// top6Offense is the PP-unit proxy used for special teams and coach
// matchup reads.
func top6Offense(lu *dressedLineup) float64 {
	top6 := append(append([]*models.Player{}, lu.Forwards[0]...), lu.Forwards[1]...)
	return avg(top6, forwardOffenseScore)
}

// strategy offsets applied symmetrically in the strength formula.
func strategyOffsets(style models.CoachStyle) (off, def float64) {
	switch style {
	case models.StyleAggressive:
		return 0.06, -0.04
	case models.StyleDefensive:
		return -0.05, 0.06
	default:
		return 0, 0
	}
}

// strategyInjuryMult scales injury exposure with system aggression.
func strategyInjuryMult(style models.CoachStyle) float64 {
	switch style {
	case models.StyleAggressive:
		return 1.15
	case models.StyleDefensive:
		return 0.90
	default:
		return 1.0
	}
}

// goalie shortfall strength adjustments: {own team, opponent}.
var goalieShortfallAdj = [3][2]float64{
	{0, 0},
	{-0.10, 0.95},
	{-0.12, 1.15},
}

// sideStrength computes one side's expected-goals strength.
func sideStrength(own, opp *dressedLineup, cfg SideConfig, oppCfg SideConfig, home bool, contextBonus float64) float64 {
	base := -0.22
	if home {
		base = -0.08
	}
	off, _ := strategyOffsets(cfg.Strategy)
	_, oppDef := strategyOffsets(oppCfg.Strategy)

	strength := teamOffense(own)*0.55 +
		(5.0-teamDefense(opp))*0.36 +
		base +
		off - oppDef +
		cfg.CoachOffense - oppCfg.CoachDefense +
		contextBonus -
		cfg.LineupPenalty

	strength += goalieShortfallAdj[own.GoalieShortfall][0]
	strength += goalieShortfallAdj[opp.GoalieShortfall][1]
	return strength
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampGoalLambda(strength, jitter float64) float64 {
	return simrand.Clamp(strength+jitter, 1.5, 3.5)
}
