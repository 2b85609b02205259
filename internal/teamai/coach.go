package teamai

import (
	"sort"

	"github.com/openice/rinkrat/internal/models"
)

// CoachModifiers are the per-game bonuses a bench staff contributes.
type CoachModifiers struct {
	OffenseBonus float64
	DefenseBonus float64
	InjuryMult   float64
	// EffectiveStyle is the system actually run tonight after the
	// matchup read; it may differ from the coach's base style.
	EffectiveStyle models.CoachStyle
}

// honeymoonGames is the post-hire window with a temporary boost.
const honeymoonGames = 24

// Modifiers derives tonight's coach contribution from rating, specialties,
// the matchup read, and franchise stability.
func Modifiers(t, opponent *models.Team) CoachModifiers {
	c := t.Coach
	ratingEdge := (c.Rating - 3.0) * 0.030

	mods := CoachModifiers{
		OffenseBonus:   ratingEdge + c.OffenseSpecialty*0.020,
		DefenseBonus:   ratingEdge + c.DefenseSpecialty*0.020,
		InjuryMult:     1.0,
		EffectiveStyle: c.Style,
	}

	// Matchup preference: press a clear top-6 edge, shell against one.
	ownTop6 := top6Forwards(t)
	oppTop6 := top6Forwards(opponent)
	switch {
	case ownTop6-oppTop6 >= 0.16:
		mods.EffectiveStyle = models.StyleAggressive
		mods.OffenseBonus += 0.012
	case oppTop6-ownTop6 >= 0.16:
		mods.EffectiveStyle = models.StyleDefensive
		mods.DefenseBonus += 0.012
	}

	// New-coach honeymoon decays linearly over the window.
	if c.HoneymoonGames > 0 {
		boost := 0.018 * float64(c.HoneymoonGames) / float64(honeymoonGames)
		mods.OffenseBonus += boost
		mods.DefenseBonus += boost
	}

	// Instability from recent firings hurts both sides of the puck and
	// raises injury exposure.
	if t.CoachChangesRecent > 0 {
		hit := 0.008 * float64(t.CoachChangesRecent)
		if hit > 0.04 {
			hit = 0.04
		}
		mods.OffenseBonus -= hit
		mods.DefenseBonus -= hit
		mods.InjuryMult += 0.02 * float64(t.CoachChangesRecent)
	}

	return mods
}

// top6Forwards averages the offensive score of the team's six best
// healthy forwards.
func top6Forwards(t *models.Team) float64 {
	var fwds []*models.Player
	for _, p := range t.Roster {
		if p.Position.IsForward() && p.Available() {
			fwds = append(fwds, p)
		}
	}
	if len(fwds) == 0 {
		return 0
	}
	sort.SliceStable(fwds, func(i, j int) bool {
		return offScore(fwds[i]) > offScore(fwds[j])
	})
	if len(fwds) > 6 {
		fwds = fwds[:6]
	}
	sum := 0.0
	for _, p := range fwds {
		sum += offScore(p)
	}
	return sum / float64(len(fwds))
}

func offScore(p *models.Player) float64 {
	return 0.64*p.Shooting + 0.36*p.Playmaking + 0.10*p.Physical
}
