package models

import "fmt"

// ErrorKind classifies core-boundary failures so the HTTP layer can map
// them without string matching.
type ErrorKind string

const (
	ErrVersionMismatch     ErrorKind = "version_mismatch"
	ErrTeamNotFound        ErrorKind = "team_not_found"
	ErrPlayerNotFound      ErrorKind = "player_not_found"
	ErrRosterFull          ErrorKind = "roster_full"
	ErrNoCapSpace          ErrorKind = "no_cap_space"
	ErrInjuredInTrade      ErrorKind = "injured_player_in_trade"
	ErrUntouchable         ErrorKind = "partner_player_untouchable"
	ErrLastHealthyGoalie   ErrorKind = "last_healthy_goalie"
	ErrTradeRejected       ErrorKind = "trade_rejected"
	ErrInvariantViolation  ErrorKind = "invariant_violation"
	ErrSchedulingDuplicate ErrorKind = "scheduling_duplicate"
	ErrDraftInactive       ErrorKind = "draft_inactive"
	ErrNotUserTeam         ErrorKind = "not_user_team"
)

// SimError is the typed result the core returns instead of raising.
type SimError struct {
	Kind    ErrorKind
	Message string
}

func (e *SimError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is match on kind via sentinel values.
func (e *SimError) Is(target error) bool {
	t, ok := target.(*SimError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewSimError builds a typed error with a formatted message.
func NewSimError(kind ErrorKind, format string, args ...interface{}) *SimError {
	return &SimError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from any error, empty when untyped.
func KindOf(err error) ErrorKind {
	if se, ok := err.(*SimError); ok {
		return se.Kind
	}
	return ""
}
