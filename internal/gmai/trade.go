package gmai

import (
	"math"
	"sort"

	"github.com/openice/rinkrat/internal/models"
)

// Acceptance bounds.
const (
	maxNetImbalance   = 0.95
	relaxedNetFloor   = -0.20
	relaxedGapCeiling = 0.45
)

// acceptMargin shifts a team's floor with its standing: good teams demand
// more, struggling teams take risks.
func acceptMargin(rec models.TeamRecord) float64 {
	pct := rec.PointPct()
	switch {
	case pct >= 0.62:
		return 0.06
	case pct <= 0.44:
		return -0.04
	default:
		return 0
	}
}

// Accepts reports whether team t takes `receive` for `give`, and the net
// value it sees in the deal.
func Accepts(t *models.Team, rec models.TeamRecord, give, receive *models.Player) (bool, float64) {
	net := ValuePlayer(receive, t) - ValuePlayer(give, t)
	minNet := -0.08 + acceptMargin(rec)
	return net >= minNet && math.Abs(net) <= maxNetImbalance, net
}

// ValidateTradePlayers enforces the hard eligibility rules on both sides
// of a proposed 1-for-1 swap.
func ValidateTradePlayers(reqTeam *models.Team, give *models.Player, partnerTeam *models.Team, receive *models.Player) *models.SimError {
	if give.IsInjured() || receive.IsInjured() {
		name := give.Name
		if receive.IsInjured() {
			name = receive.Name
		}
		return models.NewSimError(models.ErrInjuredInTrade, "%s is injured", name)
	}
	if give.TradePref == models.TradeUntouchable {
		return models.NewSimError(models.ErrUntouchable, "%s is untouchable", give.Name)
	}
	if receive.TradePref == models.TradeUntouchable {
		return models.NewSimError(models.ErrUntouchable, "%s is untouchable", receive.Name)
	}
	if isLastHealthyGoalie(reqTeam, give) {
		return models.NewSimError(models.ErrLastHealthyGoalie, "%s is %s's last healthy goalie", give.Name, reqTeam.Name)
	}
	if isLastHealthyGoalie(partnerTeam, receive) {
		return models.NewSimError(models.ErrLastHealthyGoalie, "%s is %s's last healthy goalie", receive.Name, partnerTeam.Name)
	}
	return nil
}

func isLastHealthyGoalie(t *models.Team, p *models.Player) bool {
	if p.Position != models.Goalie {
		return false
	}
	for _, other := range t.Roster {
		if other != p && other.Position == models.Goalie && other.Available() {
			return false
		}
	}
	return true
}

// Proposal is a candidate 1-for-1 swap found by the search.
type Proposal struct {
	Give       *models.Player // leaves the requesting team
	Receive    *models.Player // comes back from the partner
	ReqNet     float64
	PartnerNet float64
	Score      float64
}

// FindTrade searches for the best mutually-acceptable 1-for-1 swap
// between requester and partner. The balanced pass enforces need
// discipline; when it finds nothing a relaxed pass only requires both
// nets above -0.20 with a gap under 0.45. Returns nil when no pair works.
func FindTrade(req *models.Team, reqRec models.TeamRecord, partner *models.Team, partnerRec models.TeamRecord) *Proposal {
	if p := searchTrade(req, reqRec, partner, partnerRec, false); p != nil {
		return p
	}
	return searchTrade(req, reqRec, partner, partnerRec, true)
}

func searchTrade(req *models.Team, reqRec models.TeamRecord, partner *models.Team, partnerRec models.TeamRecord, relaxed bool) *Proposal {
	reqNeed, reqSeverity := PrimaryNeed(req)
	partnerNeed, partnerSeverity := PrimaryNeed(partner)

	givePool := tradePool(req, reqNeed, reqSeverity)
	receivePool := tradePool(partner, partnerNeed, partnerSeverity)
	if len(givePool) > 12 {
		givePool = givePool[:12]
	}
	if len(receivePool) > 14 {
		receivePool = receivePool[:14]
	}

	var best *Proposal
	for _, give := range givePool {
		for _, receive := range receivePool {
			if ValidateTradePlayers(req, give, partner, receive) != nil {
				continue
			}

			reqOK, reqNet := Accepts(req, reqRec, give, receive)
			partnerOK, partnerNet := Accepts(partner, partnerRec, receive, give)

			if relaxed {
				if reqNet < relaxedNetFloor || partnerNet < relaxedNetFloor {
					continue
				}
				if math.Abs(reqNet-partnerNet) > relaxedGapCeiling {
					continue
				}
			} else {
				if !reqOK || !partnerOK {
					continue
				}
				// Never ship out of the primary need unless the return
				// is a clear upgrade on it.
				if NeedBucket(give) == reqNeed && reqSeverity >= 0.5 &&
					!(NeedBucket(receive) == reqNeed && receive.Overall() > give.Overall()+0.15) {
					continue
				}
				if NeedBucket(receive) == partnerNeed && partnerSeverity >= 0.5 {
					continue
				}
			}

			score := reqNet + partnerNet - 0.35*math.Abs(reqNet-partnerNet)
			if !relaxed {
				score += needAlignment(reqNeed, receive) + needAlignment(partnerNeed, give)
			}
			if best == nil || score > best.Score {
				best = &Proposal{
					Give:       give,
					Receive:    receive,
					ReqNet:     reqNet,
					PartnerNet: partnerNet,
					Score:      score,
				}
			}
		}
	}
	return best
}

func needAlignment(need string, incoming *models.Player) float64 {
	if NeedBucket(incoming) == need {
		return 0.10
	}
	return 0
}

// tradePool orders a team's movable players, biasing the front of the
// list away from its primary need and toward surplus positions.
func tradePool(t *models.Team, primaryNeed string, severity float64) []*models.Player {
	pool := make([]*models.Player, 0, len(t.Roster))
	for _, p := range t.Roster {
		if p.TradePref == models.TradeUntouchable || p.IsInjured() {
			continue
		}
		if isLastHealthyGoalie(t, p) {
			continue
		}
		pool = append(pool, p)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return poolRank(pool[i], primaryNeed, severity) > poolRank(pool[j], primaryNeed, severity)
	})
	return pool
}

func poolRank(p *models.Player, primaryNeed string, severity float64) float64 {
	rank := p.Overall()
	if p.TradePref == models.TradeShop {
		rank += 1.0
	}
	if NeedBucket(p) == primaryNeed {
		rank -= 0.8 * severity
	}
	return rank
}
