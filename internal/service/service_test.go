package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openice/rinkrat/internal/league"
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/storage"
)

func newTestService(t *testing.T, seed uint64) *SimService {
	t.Helper()
	store, err := storage.New(t.TempDir(), nil)
	require.NoError(t, err)
	s, err := New(store, nil, Options{Seed: seed, GamesPerMatchup: 2, Density: 0.60})
	require.NoError(t, err)
	return s
}

func readDataDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		out[e.Name()] = string(raw)
	}
	return out
}

func TestMeta_FreshWorld(t *testing.T) {
	s := newTestService(t, 1)
	meta := s.Meta()

	assert.Equal(t, storage.SaveVersion, meta.SaveVersion)
	assert.Equal(t, 1, meta.Season)
	assert.Equal(t, 0, meta.Day)
	assert.Equal(t, PhaseRegular, meta.Phase)
	assert.Equal(t, 24, meta.Teams)
	assert.Equal(t, "Founders Cup", meta.CupName)
	assert.Empty(t, meta.LastLoadError)
}

func TestAdvance_PersistsAfterSuccess(t *testing.T) {
	s := newTestService(t, 1)

	result, err := s.Advance(false)
	require.NoError(t, err)
	assert.Equal(t, league.AdvanceGames, result.Type)
	assert.NotEmpty(t, result.Games)

	files := readDataDir(t, s.store.Dir())
	assert.Contains(t, files, storage.LeagueStateFile)
	assert.Contains(t, files, storage.RuntimeStateFile)

	// A second service over the same directory resumes at day 1.
	s2, err := New(s.store, nil, Options{Seed: 1, GamesPerMatchup: 2, Density: 0.60})
	require.NoError(t, err)
	assert.Equal(t, 1, s2.Meta().Day)
}

// A corrupted record must stop the advance before any simulation and
// leave every save file untouched.
func TestAdvance_IntegrityFailureModifiesNothing(t *testing.T) {
	s := newTestService(t, 1)
	require.NoError(t, s.Save())

	before := readDataDir(t, s.store.Dir())

	var victim string
	s.Snapshot(func(l *league.League) {
		victim = l.Teams[3].Name
		l.RecordOf(victim).Wins = l.DayIndex + 1
	})

	_, err := s.Advance(false)
	require.Error(t, err)
	assert.Equal(t, models.ErrInvariantViolation, models.KindOf(err))
	assert.Contains(t, err.Error(), victim)

	assert.Equal(t, before, readDataDir(t, s.store.Dir()))
}

func TestAdvance_UserRosterCompliance(t *testing.T) {
	s := newTestService(t, 5)

	var user string
	s.Snapshot(func(l *league.League) {
		user = l.Teams[0].Name
		l.UserTeam = user
		team := l.Teams[0]
		// Overstuff the active roster by one.
		extra := team.MinorRoster[0]
		team.MinorRoster = team.MinorRoster[1:]
		team.Roster = append(team.Roster, extra)
	})

	_, err := s.Advance(false)
	require.Error(t, err)
	assert.Equal(t, models.ErrRosterFull, models.KindOf(err))

	// The auto flag demotes the lowest-value player and proceeds.
	_, err = s.Advance(true)
	require.NoError(t, err)
	s.Snapshot(func(l *league.League) {
		assert.Len(t, l.TeamByName(user).Roster, models.MaxRoster)
	})
}

func TestProposeTrade_AcceptedAndExecuted(t *testing.T) {
	s := newTestService(t, 9)

	var userTeam, partnerTeam string
	var give, receive string
	s.Snapshot(func(l *league.League) {
		user := l.Teams[0]
		partner := l.Teams[12]
		userTeam, partnerTeam = user.Name, partner.Name
		l.UserTeam = userTeam

		giveP := user.Roster[0]
		giveP.Position = models.RightWing
		giveP.Age = 30
		setSkills(giveP, 3.3)
		giveP.Contract = models.Contract{YearsLeft: 3, CapHit: 2.0, Type: models.ContractVeteran}

		receiveP := partner.Roster[0]
		receiveP.Position = models.RightWing
		receiveP.Age = 24
		setSkills(receiveP, 3.6)
		receiveP.Contract = models.Contract{YearsLeft: 1, CapHit: 9.5, Type: models.ContractCore}

		// A struggling partner lowers its acceptance floor.
		rec := l.RecordOf(partnerTeam)
		rec.Wins, rec.Losses, rec.OTLosses = 0, 0, 0
		give, receive = giveP.Name, receiveP.Name
	})

	outcome, err := s.ProposeTrade(give, partnerTeam, receive)
	require.NoError(t, err)
	require.True(t, outcome.Accepted, "partner net %.3f", outcome.PartnerNet)
	assert.Greater(t, outcome.PartnerNet, 0.0)

	s.Snapshot(func(l *league.League) {
		assert.Nil(t, l.TeamByName(userTeam).PlayerByName(give))
		assert.NotNil(t, l.TeamByName(userTeam).PlayerByName(receive))
		assert.NotNil(t, l.TeamByName(partnerTeam).PlayerByName(give))
		assert.Nil(t, l.TeamByName(partnerTeam).PlayerByName(receive))
	})
}

func TestProposeTrade_UntouchableRejectedWithoutMutation(t *testing.T) {
	s := newTestService(t, 9)

	var partnerTeam, give, receive string
	s.Snapshot(func(l *league.League) {
		user := l.Teams[0]
		partner := l.Teams[12]
		partnerTeam = partner.Name
		l.UserTeam = user.Name

		give = user.Roster[0].Name
		target := partner.Roster[0]
		target.TradePref = models.TradeUntouchable
		receive = target.Name
	})

	outcome, err := s.ProposeTrade(give, partnerTeam, receive)
	require.NoError(t, err)
	assert.False(t, outcome.Accepted)
	assert.Equal(t, "partner_player_untouchable", outcome.Reason)

	s.Snapshot(func(l *league.League) {
		assert.NotNil(t, l.TeamByName(l.UserTeam).PlayerByName(give))
		assert.NotNil(t, l.TeamByName(partnerTeam).PlayerByName(receive))
	})
}

func TestProposeTrade_RequiresUserTeam(t *testing.T) {
	s := newTestService(t, 2)
	_, err := s.ProposeTrade("Anyone", "Cascade Wolves", "Someone")
	require.Error(t, err)
	assert.Equal(t, models.ErrNotUserTeam, models.KindOf(err))
}

func TestSetUserTeam_Validation(t *testing.T) {
	s := newTestService(t, 2)

	err := s.SetUserTeam("No Such Club")
	require.Error(t, err)
	assert.Equal(t, models.ErrTeamNotFound, models.KindOf(err))

	var name string
	s.Snapshot(func(l *league.League) { name = l.Teams[7].Name })
	require.NoError(t, s.SetUserTeam(name))
	assert.Equal(t, name, s.Meta().UserTeam)
}

func TestReset_Reseeds(t *testing.T) {
	s := newTestService(t, 2)
	_, err := s.Advance(false)
	require.NoError(t, err)

	meta, err := s.Reset(77)
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Season)
	assert.Equal(t, 0, meta.Day)
	assert.Empty(t, s.News())
}

func TestAdvance_ProducesNews(t *testing.T) {
	s := newTestService(t, 3)
	result, err := s.Advance(false)
	require.NoError(t, err)

	news := s.News()
	require.NotEmpty(t, news)
	gameNews := 0
	for _, item := range news {
		if item.Kind == models.NewsGameResult {
			gameNews++
		}
	}
	assert.Equal(t, len(result.Games), gameNews)
}

func setSkills(p *models.Player, v float64) {
	p.Shooting = v
	p.Playmaking = v
	p.Defense = v
	p.Goaltending = v
	p.Physical = v
}
