package league

import (
	"sort"

	"github.com/openice/rinkrat/internal/gmai"
	"github.com/openice/rinkrat/internal/models"
)

// Promote moves a player from a team's minors to its active roster. The
// whole transition is applied or nothing is.
func (l *League) Promote(teamName, playerName string) error {
	t := l.TeamByName(teamName)
	if t == nil {
		return models.NewSimError(models.ErrTeamNotFound, "%s", teamName)
	}
	p := t.MinorPlayerByName(playerName)
	if p == nil {
		return models.NewSimError(models.ErrPlayerNotFound, "%s is not on %s's minor roster", playerName, teamName)
	}
	if len(t.Roster) >= models.MaxRoster {
		return models.NewSimError(models.ErrRosterFull, "%s has %d active players", teamName, len(t.Roster))
	}
	t.RemoveFromMinors(playerName)
	t.Roster = append(t.Roster, p)
	l.arrivePlayer(t, p)
	return nil
}

// Demote moves a player from the active roster to the minors.
func (l *League) Demote(teamName, playerName string) error {
	t := l.TeamByName(teamName)
	if t == nil {
		return models.NewSimError(models.ErrTeamNotFound, "%s", teamName)
	}
	p := t.PlayerByName(playerName)
	if p == nil {
		return models.NewSimError(models.ErrPlayerNotFound, "%s is not on %s's roster", playerName, teamName)
	}
	if p.Position == models.Goalie && t.HealthyAtPosition(models.Goalie) <= 1 && p.Available() {
		return models.NewSimError(models.ErrLastHealthyGoalie, "%s is %s's last healthy goalie", playerName, teamName)
	}
	t.RemoveFromRoster(playerName)
	t.MinorRoster = append(t.MinorRoster, p)
	return nil
}

// SignFreeAgent signs a pool player to the team on the given terms.
func (l *League) SignFreeAgent(teamName, playerName string, years int, capHit float64) error {
	t := l.TeamByName(teamName)
	if t == nil {
		return models.NewSimError(models.ErrTeamNotFound, "%s", teamName)
	}
	if len(t.Roster) >= models.MaxRoster {
		return models.NewSimError(models.ErrRosterFull, "%s has %d active players", teamName, len(t.Roster))
	}
	idx := -1
	for i, p := range l.FreeAgents {
		if p.Name == playerName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.NewSimError(models.ErrPlayerNotFound, "%s is not a free agent", playerName)
	}
	if capHit > capSpace(t) {
		return models.NewSimError(models.ErrNoCapSpace, "%s cannot fit %.2f", teamName, capHit)
	}

	p := l.FreeAgents[idx]
	l.FreeAgents = append(l.FreeAgents[:idx], l.FreeAgents[idx+1:]...)

	p.Contract.YearsLeft = years
	p.Contract.CapHit = capHit
	p.Contract.Type = contractTypeFor(p)
	p.Contract.FreeAgentOriginTeam = ""
	t.Roster = append(t.Roster, p)
	l.arrivePlayer(t, p)
	return nil
}

// ExtendContract re-signs a rostered player before expiry.
func (l *League) ExtendContract(teamName, playerName string, years int, capHit float64) error {
	t := l.TeamByName(teamName)
	if t == nil {
		return models.NewSimError(models.ErrTeamNotFound, "%s", teamName)
	}
	p := t.AnyPlayerByName(playerName)
	if p == nil {
		return models.NewSimError(models.ErrPlayerNotFound, "%s is not on %s", playerName, teamName)
	}
	extra := capHit - p.Contract.CapHit
	if extra > 0 && extra > capSpace(t) {
		return models.NewSimError(models.ErrNoCapSpace, "%s cannot fit %.2f", teamName, capHit)
	}
	p.Contract.YearsLeft = years
	p.Contract.CapHit = capHit
	p.Contract.Type = contractTypeFor(p)
	p.Contract.FreeAgentOriginTeam = ""
	// Clear any pending-resign reservation.
	for i, pending := range l.PendingUserResigns {
		if pending.ID == p.ID {
			l.PendingUserResigns = append(l.PendingUserResigns[:i], l.PendingUserResigns[i+1:]...)
			break
		}
	}
	return nil
}

// ExecuteTrade swaps two players between teams. Validation is the
// caller's job; this is the atomic transition.
func (l *League) ExecuteTrade(teamA *models.Team, give *models.Player, teamB *models.Team, receive *models.Player) {
	teamA.RemoveFromRoster(give.Name)
	teamB.RemoveFromRoster(receive.Name)

	teamA.Roster = append(teamA.Roster, receive)
	teamB.Roster = append(teamB.Roster, give)

	l.arrivePlayer(teamA, receive)
	l.arrivePlayer(teamB, give)

	if l.log != nil {
		l.log.WithField("give", give.Name).WithField("receive", receive.Name).
			WithField("team_a", teamA.Name).WithField("team_b", teamB.Name).
			Info("Trade executed")
	}
}

// arrivePlayer finishes any transition that lands a player on a team:
// ownership, jersey number, and lineup coherence.
func (l *League) arrivePlayer(t *models.Team, p *models.Player) {
	p.TeamName = t.Name
	if p.JerseyNumber == 0 || t.NumberRetired(p.JerseyNumber) || duplicateNumber(t, p) {
		p.JerseyNumber = 0
		l.assignJerseyNumbers(t)
	}
}

func duplicateNumber(t *models.Team, p *models.Player) bool {
	for _, other := range t.Roster {
		if other != p && other.JerseyNumber == p.JerseyNumber {
			return true
		}
	}
	for _, other := range t.MinorRoster {
		if other != p && other.JerseyNumber == p.JerseyNumber {
			return true
		}
	}
	return false
}

func contractTypeFor(p *models.Player) models.ContractType {
	switch {
	case p.Age <= 22:
		return models.ContractEntry
	case p.Age >= 31:
		return models.ContractVeteran
	case p.Overall() >= 3.3:
		return models.ContractCore
	default:
		return models.ContractBridge
	}
}

// salary cap for every franchise, in cap-hit units.
const SalaryCap = 83.5

func capSpace(t *models.Team) float64 {
	used := 0.0
	for _, p := range t.Roster {
		used += p.Contract.CapHit
	}
	return SalaryCap - used
}

// CapSpace exposes a team's remaining cap room.
func (l *League) CapSpace(t *models.Team) float64 {
	return capSpace(t)
}

// ensureDressedDepth promotes from the minors when healthy counts fall
// below the dressing requirements and trims the roster back down when a
// promotion overflows it.
func (l *League) ensureDressedDepth(t *models.Team) {
	type slotNeed struct {
		count func() int
		want  int
		match func(*models.Player) bool
	}
	needs := []slotNeed{
		{func() int { return t.HealthyForwards() }, models.DressedForwards,
			func(p *models.Player) bool { return p.Position.IsForward() }},
		{func() int { return t.HealthyAtPosition(models.Defense) }, models.DressedDefense,
			func(p *models.Player) bool { return p.Position == models.Defense }},
		{func() int { return t.HealthyAtPosition(models.Goalie) }, models.DressedGoalies,
			func(p *models.Player) bool { return p.Position == models.Goalie }},
	}

	for _, need := range needs {
		for need.count() < need.want {
			promoted := l.promoteBestMinor(t, need.match)
			if promoted == nil {
				break
			}
			promoted.ReplacementFor = firstInjuredAt(t, promoted.Position)
		}
	}

	for len(t.Roster) > models.MaxRoster {
		if !l.demoteLowestValue(t) {
			break
		}
	}
}

func firstInjuredAt(t *models.Team, pos models.Position) string {
	for _, p := range t.Roster {
		if p.IsInjured() && (p.Position == pos || (pos.IsForward() && p.Position.IsForward())) {
			return p.Name
		}
	}
	return ""
}

func (l *League) promoteBestMinor(t *models.Team, match func(*models.Player) bool) *models.Player {
	var best *models.Player
	for _, p := range t.MinorRoster {
		if !match(p) || !p.Available() {
			continue
		}
		if best == nil || p.Overall() > best.Overall() {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	t.RemoveFromMinors(best.Name)
	t.Roster = append(t.Roster, best)
	l.arrivePlayer(t, best)
	return best
}

// demoteLowestValue sends down the least valuable healthy player while
// protecting positional structure and emergency goalie coverage.
func (l *League) demoteLowestValue(t *models.Team) bool {
	candidates := append([]*models.Player{}, t.Roster...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Overall() < candidates[j].Overall()
	})
	for _, p := range candidates {
		if !p.Available() {
			continue // IR players don't count against the healthy cap
		}
		switch {
		case p.Position == models.Goalie && t.HealthyAtPosition(models.Goalie) <= models.DressedGoalies:
			continue
		case p.Position == models.Defense && t.HealthyAtPosition(models.Defense) <= models.DressedDefense:
			continue
		case p.Position.IsForward() && t.HealthyForwards() <= models.DressedForwards:
			continue
		}
		t.RemoveFromRoster(p.Name)
		t.MinorRoster = append(t.MinorRoster, p)
		return true
	}
	return false
}

// TrimRosterToCap demotes lowest-value players until the active roster
// fits the ceiling again.
func (l *League) TrimRosterToCap(t *models.Team) {
	for len(t.Roster) > models.MaxRoster {
		if !l.demoteLowestValue(t) {
			break
		}
	}
}

// RefreshTeamNeeds recomputes and caches the league-wide need vectors.
func (l *League) RefreshTeamNeeds() {
	if l.TeamNeedsByTeam == nil {
		l.TeamNeedsByTeam = make(map[string]map[string]float64)
	}
	for _, t := range l.Teams {
		l.TeamNeedsByTeam[t.Name] = gmai.TeamNeeds(t)
	}
}
