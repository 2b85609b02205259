package service

import (
	"fmt"

	"github.com/openice/rinkrat/internal/gmai"
	"github.com/openice/rinkrat/internal/models"
)

// TradeOutcome reports what happened to a user proposal. Rejections keep
// the world untouched and name the reason.
type TradeOutcome struct {
	Accepted   bool    `json:"accepted"`
	Reason     string  `json:"reason,omitempty"`
	PartnerNet float64 `json:"partner_net"`
}

// ProposeTrade offers a 1-for-1 swap from the user team to a partner.
func (s *SimService) ProposeTrade(give string, partnerTeam string, receive string) (*TradeOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.league.UserTeam == "" {
		return nil, models.NewSimError(models.ErrNotUserTeam, "no user team selected")
	}
	user := s.league.TeamByName(s.league.UserTeam)
	partner := s.league.TeamByName(partnerTeam)
	if partner == nil {
		return nil, models.NewSimError(models.ErrTeamNotFound, "%s", partnerTeam)
	}
	if partner.Name == user.Name {
		return nil, models.NewSimError(models.ErrInvariantViolation, "cannot trade with yourself")
	}

	giveP := user.PlayerByName(give)
	if giveP == nil {
		return nil, models.NewSimError(models.ErrPlayerNotFound, "%s is not on %s", give, user.Name)
	}
	receiveP := partner.PlayerByName(receive)
	if receiveP == nil {
		return nil, models.NewSimError(models.ErrPlayerNotFound, "%s is not on %s", receive, partner.Name)
	}

	if simErr := gmai.ValidateTradePlayers(user, giveP, partner, receiveP); simErr != nil {
		return &TradeOutcome{Accepted: false, Reason: string(simErr.Kind)}, nil
	}

	// The partner evaluates receiving the user's player for its own.
	ok, net := gmai.Accepts(partner, *s.league.RecordOf(partner.Name), receiveP, giveP)
	if !ok {
		return &TradeOutcome{
			Accepted:   false,
			Reason:     string(models.ErrTradeRejected),
			PartnerNet: net,
		}, nil
	}

	s.league.ExecuteTrade(user, giveP, partner, receiveP)
	s.pushNews(models.NewsTrade, user.Name, giveP.Name,
		fmt.Sprintf("%s trade %s to %s for %s", user.Name, giveP.Name, partner.Name, receiveP.Name))
	if err := s.persist(false); err != nil {
		return nil, err
	}
	return &TradeOutcome{Accepted: true, PartnerNet: net}, nil
}
