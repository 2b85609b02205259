package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An expired user-team player stays reserved across offseasons without
// being re-collected each time.
func TestRunContracts_ReservesUserExpirationsOnce(t *testing.T) {
	l := newTestLeague(3)
	l.UserTeam = l.Teams[0].Name
	p := l.Teams[0].Roster[0]
	p.Contract.YearsLeft = 0

	first := &OffseasonSummary{}
	l.runContracts(first)
	require.Contains(t, first.PendingResigns, p.Name)

	second := &OffseasonSummary{}
	l.runContracts(second)
	assert.NotContains(t, second.PendingResigns, p.Name)

	reserved := 0
	for _, pending := range l.PendingUserResigns {
		if pending.ID == p.ID {
			reserved++
		}
	}
	assert.Equal(t, 1, reserved)
}
