package service

import (
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/teamai"
)

// Promote moves a player up from the minors.
func (s *SimService) Promote(teamName, playerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.league.Promote(teamName, playerName); err != nil {
		return err
	}
	return s.persist(false)
}

// Demote sends a player down to the minors.
func (s *SimService) Demote(teamName, playerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.league.Demote(teamName, playerName); err != nil {
		return err
	}
	return s.persist(false)
}

// SignFreeAgent signs a pool player to the given terms.
func (s *SimService) SignFreeAgent(teamName, playerName string, years int, capHit float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.league.SignFreeAgent(teamName, playerName, years, capHit); err != nil {
		return err
	}
	s.pushNews(models.NewsSigning, teamName, playerName,
		playerName+" signs with "+teamName)
	return s.persist(false)
}

// ExtendContract re-signs a rostered player.
func (s *SimService) ExtendContract(teamName, playerName string, years int, capHit float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.league.ExtendContract(teamName, playerName, years, capHit); err != nil {
		return err
	}
	return s.persist(false)
}

// SetLines applies the user's requested slot assignments; out-of-position
// choices are allowed and charged as a penalty in the next game.
func (s *SimService) SetLines(teamName string, assignments map[string]string, startingGoalie string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.userTeamNamed(teamName)
	if err != nil {
		return err
	}

	teamai.SetLineAssignments(t, assignments, uint64(s.league.DayIndex))
	if startingGoalie != "" {
		if g := t.PlayerByName(startingGoalie); g != nil && g.Position == models.Goalie {
			t.StartingGoalie = startingGoalie
		}
	}
	return s.persist(false)
}

// AutoLines rebuilds the user team's lineup from scratch.
func (s *SimService) AutoLines(teamName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.userTeamNamed(teamName)
	if err != nil {
		return err
	}
	teamai.SetDefaultLineup(t, uint64(s.league.DayIndex))
	return s.persist(false)
}

// SetTradePreference flags how the user's player is shopped.
func (s *SimService) SetTradePreference(teamName, playerName string, pref models.TradePreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.userTeamNamed(teamName)
	if err != nil {
		return err
	}
	p := t.AnyPlayerByName(playerName)
	if p == nil {
		return models.NewSimError(models.ErrPlayerNotFound, "%s is not on %s", playerName, teamName)
	}
	p.TradePref = pref
	return s.persist(false)
}

func (s *SimService) userTeamNamed(teamName string) (*models.Team, error) {
	if teamName != s.league.UserTeam || s.league.UserTeam == "" {
		return nil, models.NewSimError(models.ErrNotUserTeam, "%s is not the user team", teamName)
	}
	t := s.league.TeamByName(teamName)
	if t == nil {
		return nil, models.NewSimError(models.ErrTeamNotFound, "%s", teamName)
	}
	return t, nil
}
