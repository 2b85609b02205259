package league

import (
	"github.com/openice/rinkrat/internal/gmai"
	"github.com/openice/rinkrat/internal/models"
)

// DraftPick is one selection in the entry draft.
type DraftPick struct {
	Overall  int             `json:"overall"`
	Round    int             `json:"round"`
	Team     string          `json:"team"`
	PlayerID string          `json:"player_id"`
	Player   string          `json:"player"`
	Position models.Position `json:"position"`
}

// DraftState is a round-1 entry draft in progress: the pick order
// (worst record first), the remaining class, and the picks made so far.
type DraftState struct {
	Order    []string               `json:"order"`
	NextPick int                    `json:"next_pick"`
	Class    []*models.Player       `json:"class"`
	Picks    map[string][]DraftPick `json:"picks"`
}

// OnClock returns the team holding the next pick, or "" when the draft
// is over.
func (d *DraftState) OnClock() string {
	if d.NextPick >= len(d.Order) {
		return ""
	}
	return d.Order[d.NextPick]
}

func (l *League) newDraftState() *DraftState {
	return &DraftState{
		Order: l.finalStandingsWorstFirst(),
		Class: l.newDraftClass(),
		Picks: make(map[string][]DraftPick, len(l.Teams)),
	}
}

// newDraftClass generates the pool: slot quality decays linearly from
// 0.90 to 0.56 across the round with ±0.07 noise and 10% bust / 10%
// steal tails; extras beyond the round sit at the floor.
func (l *League) newDraftClass() []*models.Player {
	n := len(l.Teams)
	size := n + 8

	positionWeights := []float64{0.16, 0.16, 0.16, 0.22, 0.18, 0.12}
	positions := []models.Position{
		models.Center, models.LeftWing, models.RightWing,
		models.Center, models.Defense, models.Goalie,
	}

	class := make([]*models.Player, 0, size)
	for i := 0; i < size; i++ {
		quality := 0.56
		if n > 1 && i < n {
			quality = 0.90 - 0.34*float64(i)/float64(n-1)
		}
		quality += l.rng.Range(-0.07, 0.07)

		tail := l.rng.Float64()
		switch {
		case tail < 0.10:
			quality -= 0.18
		case tail < 0.20:
			quality += 0.16
		}

		pos := positions[l.rng.WeightedIndex(positionWeights)]
		p := l.GeneratePlayer(pos, (quality-0.73)*2.2)
		p.Age = 18 + l.rng.Intn(2)
		p.Contract = models.Contract{
			YearsLeft: 3,
			CapHit:    0.95,
			Type:      models.ContractEntry,
			IsRFA:     true,
		}
		p.Prospect = l.rollProspect(quality)
		class = append(class, p)
	}
	return class
}

// rollProspect assigns the development track: 15% NHL-ready, 35% a year
// out in the minors, the rest junior-bound.
func (l *League) rollProspect(quality float64) *models.Prospect {
	pr := &models.Prospect{
		Potential:  quality,
		BoomChance: 0.10,
		BustChance: 0.10,
	}
	switch roll := l.rng.Float64(); {
	case roll < 0.15:
		pr.Tier = models.TierNHL
		pr.SeasonsToNHL = 0
		pr.Resolved = true
	case roll < 0.50:
		pr.Tier = models.TierAHL
		pr.SeasonsToNHL = 1
	default:
		pr.Tier = models.TierJunior
		pr.SeasonsToNHL = 2 + l.rng.Intn(2)
	}
	return pr
}

// cpuPick makes the on-clock team's selection: best available, leaning
// toward its primary need position.
func (l *League) cpuPick(state *DraftState) {
	team := l.TeamByName(state.OnClock())
	if team == nil {
		state.NextPick++
		return
	}

	focus, _ := gmai.PrimaryNeed(team)
	l.DraftFocusByTeam[team.Name] = focus

	bestIdx, bestScore := -1, -1.0
	for i, p := range state.Class {
		score := p.Overall()
		if p.Prospect != nil {
			score += 0.5 * p.Prospect.Potential
		}
		if draftFocusMatches(focus, p.Position) {
			score += 0.25
		}
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		state.NextPick++
		return
	}
	l.makePick(state, bestIdx)
}

func draftFocusMatches(focus string, pos models.Position) bool {
	switch focus {
	case gmai.NeedStarterG:
		return pos == models.Goalie
	case gmai.NeedTop4D, gmai.NeedDepthD:
		return pos == models.Defense
	case gmai.NeedTop6F, gmai.NeedDepthF:
		return pos.IsForward()
	}
	return false
}

// makePick assigns class index idx to the on-clock team and advances
// the clock.
func (l *League) makePick(state *DraftState, idx int) {
	teamName := state.OnClock()
	team := l.TeamByName(teamName)
	p := state.Class[idx]
	state.Class = append(state.Class[:idx], state.Class[idx+1:]...)

	overall := state.NextPick + 1
	p.Draft = models.DraftInfo{
		Season:  l.SeasonNumber,
		Round:   1,
		Overall: overall,
		Team:    teamName,
	}
	p.TeamName = teamName
	team.MinorRoster = append(team.MinorRoster, p)
	l.assignJerseyNumbers(team)

	state.Picks[teamName] = append(state.Picks[teamName], DraftPick{
		Overall:  overall,
		Round:    1,
		Team:     teamName,
		PlayerID: p.ID,
		Player:   p.Name,
		Position: p.Position,
	})
	state.NextPick++

	if l.log != nil {
		l.log.WithField("team", teamName).WithField("player", p.Name).
			WithField("overall", overall).Info("Draft pick made")
	}
}

// autoPickToUser runs CPU picks until the user is on the clock or the
// round ends.
func (l *League) autoPickToUser() {
	state := l.PendingDraft
	for state.OnClock() != "" && state.OnClock() != l.UserTeam {
		l.cpuPick(state)
	}
	if state.OnClock() == "" {
		l.completeDraft()
	}
}

// PickProspect makes the user's selection by player ID.
func (l *League) PickProspect(playerID string) (*DraftPick, error) {
	state := l.PendingDraft
	if state == nil {
		return nil, models.NewSimError(models.ErrDraftInactive, "no draft in progress")
	}
	if state.OnClock() != l.UserTeam {
		return nil, models.NewSimError(models.ErrNotUserTeam,
			"%s is on the clock", state.OnClock())
	}

	idx := -1
	for i, p := range state.Class {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, models.NewSimError(models.ErrPlayerNotFound, "prospect %s not in class", playerID)
	}

	l.makePick(state, idx)
	pick := state.Picks[l.UserTeam][len(state.Picks[l.UserTeam])-1]
	l.autoPickToUser()
	return &pick, nil
}

// SimToUserPick fast-forwards CPU picks until the user is on the clock
// (a no-op when already there) or the round ends.
func (l *League) SimToUserPick() error {
	if l.PendingDraft == nil {
		return models.NewSimError(models.ErrDraftInactive, "no draft in progress")
	}
	l.autoPickToUser()
	return nil
}

// completeDraft resumes the offseason pipeline once every pick is in.
func (l *League) completeDraft() {
	state := l.PendingDraft
	summary := l.LastOffseason
	if summary == nil {
		summary = &OffseasonSummary{CompletedSeason: l.SeasonNumber}
	}
	summary.Drafted = state.Picks
	summary.DraftPending = false
	l.PendingDraft = nil
	l.finishOffseason(summary)
}
