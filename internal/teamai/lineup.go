// Package teamai makes bench decisions: lineup assembly, starter goalie
// selection, DTD play calls and per-game coach modifiers.
package teamai

import (
	"sort"

	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/simrand"
)

// SetDefaultLineup rebuilds the team's line assignments and dressed set
// from its healthy roster. Weaker coaches rank players with more noise.
// The salt keeps noise stable within one rebuild but fresh across days.
func SetDefaultLineup(t *models.Team, salt uint64) {
	quality := t.Coach.Quality()
	noiseScale := 0.45 * (1.0 - quality)

	rank := func(players []*models.Player, score func(*models.Player) float64) []*models.Player {
		out := append([]*models.Player{}, players...)
		sort.SliceStable(out, func(i, j int) bool {
			si := score(out[i]) + simrand.Noise(out[i].Name, salt, noiseScale)
			sj := score(out[j]) + simrand.Noise(out[j].Name, salt, noiseScale)
			return si > sj
		})
		return out
	}

	var forwards, defense, goalies []*models.Player
	for _, p := range t.HealthyRoster() {
		switch {
		case p.Position == models.Goalie:
			goalies = append(goalies, p)
		case p.Position == models.Defense:
			defense = append(defense, p)
		default:
			forwards = append(forwards, p)
		}
	}

	forwards = rank(forwards, styleSkaterScore(t.Coach.Style))
	defense = rank(defense, func(p *models.Player) float64 {
		return 0.20*p.Shooting + 0.25*p.Playmaking + 0.45*p.Defense + 0.10*p.Physical
	})
	goalies = rank(goalies, func(p *models.Player) float64 { return p.Goaltending })

	assignments := make(map[string]string, len(models.LineupSlots))
	used := make(map[string]bool)
	dressed := make([]string, 0, models.DressedTotal)

	takeFrom := func(pool []*models.Player) *models.Player {
		for _, p := range pool {
			if !used[p.Name] {
				return p
			}
		}
		return nil
	}
	// A slot out of preferred-position candidates takes the best
	// remaining skater; the engine's position penalty covers the cost.
	takeAnySkater := func() *models.Player {
		if p := takeFrom(forwards); p != nil {
			return p
		}
		return takeFrom(defense)
	}

	for _, slot := range models.LineupSlots {
		var p *models.Player
		switch models.SlotPosition(slot) {
		case models.Goalie:
			p = takeFrom(goalies)
			if p == nil {
				p = takeAnySkater() // emergency goalie
			}
		case models.Defense:
			p = takeFrom(defense)
			if p == nil {
				p = takeFrom(forwards)
			}
		default:
			p = takeFrom(forwards)
			if p == nil {
				p = takeFrom(defense)
			}
		}
		if p == nil {
			continue
		}
		used[p.Name] = true
		assignments[slot] = p.Name
		dressed = append(dressed, p.Name)
	}

	t.LineAssignments = assignments
	t.DressedPlayerNames = dressed
	t.LineupPositionPenalty = 0
	if g1 := assignments["G1"]; g1 != "" {
		t.StartingGoalie = g1
	}
	verifyLeadership(t)
}

// SetLineAssignments applies a user-requested slot map on top of the
// default build. Unavailable or reused names keep the default; the
// resulting out-of-position penalty is charged to this team in its next
// simulated game.
func SetLineAssignments(t *models.Team, requested map[string]string, salt uint64) {
	SetDefaultLineup(t, salt)

	assignments := make(map[string]string, len(models.LineupSlots))
	used := make(map[string]bool)

	for _, slot := range models.LineupSlots {
		name := requested[slot]
		if name != "" {
			if p := t.PlayerByName(name); p != nil && p.Available() && !used[name] {
				assignments[slot] = name
				used[name] = true
				continue
			}
		}
		if def := t.LineAssignments[slot]; def != "" && !used[def] {
			assignments[slot] = def
			used[def] = true
			continue
		}
		// Fallback: best remaining healthy player.
		var best *models.Player
		for _, p := range t.HealthyRoster() {
			if used[p.Name] {
				continue
			}
			if best == nil || p.Overall() > best.Overall() {
				best = p
			}
		}
		if best != nil {
			assignments[slot] = best.Name
			used[best.Name] = true
		}
	}

	dressed := make([]string, 0, len(assignments))
	for _, slot := range models.LineupSlots {
		if name := assignments[slot]; name != "" {
			dressed = append(dressed, name)
		}
	}

	t.LineAssignments = assignments
	t.DressedPlayerNames = dressed
	if g1 := assignments["G1"]; g1 != "" {
		t.StartingGoalie = g1
	}
	t.LineupPositionPenalty = PositionPenalty(t)
	verifyLeadership(t)
}

// PositionPenalty sums the out-of-position charge over all filled slots,
// capped at 0.40.
func PositionPenalty(t *models.Team) float64 {
	penalty := 0.0
	for _, slot := range models.LineupSlots {
		name := t.LineAssignments[slot]
		if name == "" {
			continue
		}
		p := t.PlayerByName(name)
		if p == nil {
			continue
		}
		want := models.SlotPosition(slot)
		have := p.Position
		switch {
		case have == want:
			// natural fit
		case want == models.Goalie && have != models.Goalie:
			penalty += 0.25
		case have == models.Goalie && want != models.Goalie:
			penalty += 0.18
		case want == models.Defense && have.IsForward():
			penalty += 0.08
		case want.IsForward() && have == models.Defense:
			penalty += 0.07
		case want.IsForward() && have.IsForward():
			penalty += 0.03
		}
	}
	if penalty > 0.40 {
		penalty = 0.40
	}
	return penalty
}

// styleSkaterScore weights forward ranking by the coach's system.
func styleSkaterScore(style models.CoachStyle) func(*models.Player) float64 {
	switch style {
	case models.StyleAggressive:
		return func(p *models.Player) float64 {
			return 0.48*p.Shooting + 0.30*p.Playmaking + 0.08*p.Defense + 0.14*p.Physical
		}
	case models.StyleDefensive:
		return func(p *models.Player) float64 {
			return 0.30*p.Shooting + 0.26*p.Playmaking + 0.32*p.Defense + 0.12*p.Physical
		}
	default:
		return func(p *models.Player) float64 {
			return 0.38*p.Shooting + 0.32*p.Playmaking + 0.18*p.Defense + 0.12*p.Physical
		}
	}
}

// verifyLeadership drops captain or assistants who are no longer on the
// active roster and promotes a replacement captain when needed.
func verifyLeadership(t *models.Team) {
	if t.Captain != "" && t.PlayerByName(t.Captain) == nil {
		t.Captain = ""
	}
	kept := t.Assistants[:0]
	for _, a := range t.Assistants {
		if t.PlayerByName(a) != nil {
			kept = append(kept, a)
		}
	}
	t.Assistants = kept

	if t.Captain == "" {
		var best *models.Player
		for _, p := range t.Roster {
			if p.Position == models.Goalie {
				continue
			}
			if best == nil || p.Overall() > best.Overall() {
				best = p
			}
		}
		if best != nil {
			t.Captain = best.Name
		}
	}
}
