package service

import (
	"github.com/openice/rinkrat/internal/league"
	"github.com/openice/rinkrat/internal/models"
)

// DraftBoard projects the draft in progress.
type DraftBoard struct {
	OnClock string                        `json:"on_clock"`
	Order   []string                      `json:"order"`
	Next    int                           `json:"next_pick"`
	Class   []*models.Player              `json:"class"`
	Picks   map[string][]league.DraftPick `json:"picks"`
}

// Draft returns the live board, or an inactive error.
func (s *SimService) Draft() (*DraftBoard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.league.PendingDraft
	if state == nil {
		return nil, models.NewSimError(models.ErrDraftInactive, "no draft in progress")
	}
	return &DraftBoard{
		OnClock: state.OnClock(),
		Order:   state.Order,
		Next:    state.NextPick,
		Class:   state.Class,
		Picks:   state.Picks,
	}, nil
}

// DraftPick makes the user's selection by prospect ID.
func (s *SimService) DraftPick(playerID string) (*league.DraftPick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pick, err := s.league.PickProspect(playerID)
	if err != nil {
		return nil, err
	}
	if err := s.persist(false); err != nil {
		return nil, err
	}
	return pick, nil
}

// SimToUserPick fast-forwards CPU picks deterministically.
func (s *SimService) SimToUserPick() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.league.SimToUserPick(); err != nil {
		return err
	}
	return s.persist(false)
}
