package league

import (
	"sort"

	"github.com/openice/rinkrat/internal/gmai"
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/simrand"
)

// marketRounds bounds the offseason bidding.
const marketRounds = 10

// runContracts decrements every deal and routes expirations: CPU teams
// re-sign or release to the pool, user-team expirations wait on the user.
func (l *League) runContracts(summary *OffseasonSummary) {
	for _, t := range l.Teams {
		var expired []*models.Player
		forEachOnTeam(t, func(p *models.Player) {
			if p.Contract.YearsLeft > 0 {
				p.Contract.YearsLeft--
			}
			if p.Contract.YearsLeft == 0 {
				expired = append(expired, p)
			}
		})

		for _, p := range expired {
			if t.Name == l.UserTeam {
				// Reserved, not auto-signed. The player stays put until
				// the user extends or releases him.
				if !l.isPendingResign(p.ID) {
					l.PendingUserResigns = append(l.PendingUserResigns, p)
					summary.PendingResigns = append(summary.PendingResigns, p.Name)
				}
				continue
			}
			if l.rng.Chance(l.resignProb(p)) {
				p.Contract = l.rollContract(p)
				continue
			}
			l.releaseToPool(t, p)
		}
	}
}

func (l *League) isPendingResign(id string) bool {
	for _, p := range l.PendingUserResigns {
		if p.ID == id {
			return true
		}
	}
	return false
}

func forEachOnTeam(t *models.Team, fn func(*models.Player)) {
	for _, p := range t.Roster {
		fn(p)
	}
	for _, p := range t.MinorRoster {
		fn(p)
	}
}

// resignProb rises with value and youth.
func (l *League) resignProb(p *models.Player) float64 {
	prob := 0.30 + (p.Overall()-2.6)*0.22 + float64(27-p.Age)*0.015
	return simrand.Clamp(prob, 0.15, 0.90)
}

func (l *League) releaseToPool(t *models.Team, p *models.Player) {
	t.RemoveFromRoster(p.Name)
	t.RemoveFromMinors(p.Name)
	p.Contract.FreeAgentOriginTeam = t.Name
	p.TeamName = ""
	l.FreeAgents = append(l.FreeAgents, p)
}

// marketOffer is one team's bid in one bidding round.
type marketOffer struct {
	team   *models.Team
	target *models.Player
	score  float64
	years  int
	capHit float64
}

// runMarket clears the pool over up to marketRounds rounds. Each CPU
// team bids on its best affordable fit; each player takes the richest
// offer; a team lands at most one player per round.
func (l *League) runMarket() []SigningNews {
	var signings []SigningNews

	for round := 0; round < marketRounds && len(l.FreeAgents) > 0; round++ {
		offers := l.collectOffers()
		if len(offers) == 0 {
			break
		}

		// Best offers first so contested players resolve to the top bid.
		sort.SliceStable(offers, func(i, j int) bool {
			if offers[i].score != offers[j].score {
				return offers[i].score > offers[j].score
			}
			return offers[i].team.Name < offers[j].team.Name
		})

		signedTeam := make(map[string]bool)
		signedPlayer := make(map[string]bool)
		for _, offer := range offers {
			if signedTeam[offer.team.Name] || signedPlayer[offer.target.ID] {
				continue
			}
			if offer.capHit > capSpace(offer.team) || len(offer.team.Roster) >= models.MaxRoster {
				continue
			}

			l.signFromPool(offer)
			signedTeam[offer.team.Name] = true
			signedPlayer[offer.target.ID] = true
			signings = append(signings, SigningNews{
				Player: offer.target.Name,
				Team:   offer.team.Name,
				Years:  offer.years,
				CapHit: offer.capHit,
			})
		}
		if len(signedPlayer) == 0 {
			break
		}
	}
	return signings
}

// collectOffers produces each CPU team's single bid for this round.
func (l *League) collectOffers() []marketOffer {
	var offers []marketOffer
	for _, t := range l.Teams {
		if t.Name == l.UserTeam || len(t.Roster) >= models.MaxRoster {
			continue
		}
		space := capSpace(t)
		if space <= 0.75 {
			continue
		}

		var best *marketOffer
		for _, p := range l.FreeAgents {
			capHit := marketCapHit(p)
			if capHit > space {
				continue
			}
			score := gmai.ValuePlayer(p, t)
			if best == nil || score > best.score {
				best = &marketOffer{
					team:   t,
					target: p,
					score:  score,
					years:  marketYears(p),
					capHit: capHit,
				}
			}
		}
		if best != nil {
			offers = append(offers, *best)
		}
	}
	return offers
}

func marketCapHit(p *models.Player) float64 {
	return simrand.Clamp(0.8+(p.Overall()-1.5)*2.4, 0.75, 11.5)
}

func marketYears(p *models.Player) int {
	switch {
	case p.Age <= 25:
		return 4
	case p.Age <= 30:
		return 3
	case p.Age <= 34:
		return 2
	default:
		return 1
	}
}

func (l *League) signFromPool(offer marketOffer) {
	p := offer.target
	for i, fa := range l.FreeAgents {
		if fa.ID == p.ID {
			l.FreeAgents = append(l.FreeAgents[:i], l.FreeAgents[i+1:]...)
			break
		}
	}
	p.Contract.YearsLeft = offer.years
	p.Contract.CapHit = offer.capHit
	p.Contract.Type = contractTypeFor(p)
	p.Contract.FreeAgentOriginTeam = ""
	offer.team.Roster = append(offer.team.Roster, p)
	l.arrivePlayer(offer.team, p)
}
