package league

import (
	"github.com/openice/rinkrat/internal/models"
)

// RepairAfterLoad normalizes a freshly loaded world. Legacy saves carried
// oversized rosters, missing contracts, colliding jersey numbers and
// detached career logs; each is corrected in place.
func (l *League) RepairAfterLoad() {
	for _, t := range l.Teams {
		for len(t.Roster) > models.MaxRoster {
			if !l.demoteLowestValue(t) {
				break
			}
		}

		// Emergency goalie coverage comes back first.
		for t.HealthyAtPosition(models.Goalie) < models.DressedGoalies {
			if l.promoteBestMinor(t, func(p *models.Player) bool {
				return p.Position == models.Goalie
			}) == nil {
				break
			}
		}

		l.repairJerseys(t)
	}

	l.AllPlayers(func(p *models.Player, _ string) {
		if p.Contract.CapHit <= 0 {
			p.Contract = l.rollContract(p)
		}
		if p.Contract.Type == "" {
			p.Contract.Type = contractTypeFor(p)
		}
		if p.InjuryStatus == "" {
			p.InjuryStatus = models.StatusHealthy
		}
		if len(p.CareerSeasons) == 0 && l.CareerIndex != nil {
			p.CareerSeasons = l.CareerIndex[p.ID]
		}
		p.ClampSkills()
	})

	for _, t := range l.Teams {
		_ = l.RecordOf(t.Name)
	}
	if l.DraftFocusByTeam == nil {
		l.DraftFocusByTeam = make(map[string]string)
	}
	l.RefreshTeamNeeds()
}

// repairJerseys strips retired or duplicated numbers and reassigns.
func (l *League) repairJerseys(t *models.Team) {
	seen := make(map[int]bool)
	for _, rn := range t.RetiredNumbers {
		seen[rn.Number] = true
	}
	fix := func(p *models.Player) {
		if p.JerseyNumber < 1 || p.JerseyNumber > 99 || seen[p.JerseyNumber] {
			p.JerseyNumber = 0
			return
		}
		seen[p.JerseyNumber] = true
	}
	for _, p := range t.Roster {
		fix(p)
	}
	for _, p := range t.MinorRoster {
		fix(p)
	}
	l.assignJerseyNumbers(t)
}
