package league

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openice/rinkrat/internal/models"
)

// runToOffseason advances through the regular season and every playoff
// reveal day until the offseason summary comes back.
func runToOffseason(t *testing.T, l *League) *OffseasonSummary {
	t.Helper()
	for i := 0; i < 600; i++ {
		result, err := l.Advance()
		require.NoError(t, err)
		if result.Type == AdvanceOffseason {
			return result.Offseason
		}
	}
	t.Fatal("offseason never reached")
	return nil
}

// Scenario: season 1 at seed 17 rolls all the way into season 2.
func TestOffseason_FullSeasonRoll(t *testing.T) {
	l := newTestLeague(17)
	sum := runToOffseason(t, l)

	require.NotNil(t, sum)
	assert.Equal(t, 1, sum.CompletedSeason)
	assert.Equal(t, "Founders Cup", sum.CupName)
	require.NotEmpty(t, sum.Champion)
	require.NotNil(t, l.TeamByName(sum.Champion), "champion is a real team")
	assert.False(t, sum.DraftPending)

	require.Len(t, l.History, 1)
	entry := l.History[0]
	assert.Equal(t, 1, entry.Season)
	assert.Equal(t, sum.Champion, entry.Champion)
	require.NotNil(t, entry.Bracket)
	assert.Equal(t, sum.Champion, entry.Bracket.CupChampion)

	final := entry.Bracket.RoundByName(RoundCupFinal)
	require.NotNil(t, final, "bracket holds a Cup Final round")
	require.Len(t, final.Series, 1)
	assert.Equal(t, sum.Champion, final.Series[0].Winner)

	assert.Equal(t, 2, l.SeasonNumber)
	assert.Equal(t, 0, l.DayIndex)
	assert.True(t, l.InRegularSeason())
	assert.Nil(t, l.PendingPlayoffs)
	for _, team := range l.Teams {
		assert.Equal(t, 0, l.RecordOf(team.Name).GamesPlayed(), "%s record reset", team.Name)
	}
}

// A world loaded from a save taken before its first offseason must still
// run the draft; empty bookkeeping maps are dropped by the save format.
func TestOffseason_RunsAfterSaveLoadRoundTrip(t *testing.T) {
	world := newTestLeague(17)
	raw, err := json.Marshal(world)
	require.NoError(t, err)

	var loaded League
	require.NoError(t, json.Unmarshal(raw, &loaded))
	loaded.Wire(nil)
	loaded.RepairAfterLoad()

	sum := runToOffseason(t, &loaded)
	require.NotNil(t, sum)
	assert.Equal(t, 2, loaded.SeasonNumber)
	assert.Len(t, loaded.DraftFocusByTeam, len(loaded.Teams))
}

func TestOffseason_DraftFollowsReverseStandings(t *testing.T) {
	l := newTestLeague(17)
	sum := runToOffseason(t, l)

	require.Len(t, sum.Drafted, 24, "every team drafted")

	standings := l.History[0].FinalStandings // best first
	require.Len(t, standings, 24)

	byOverall := make(map[int]DraftPick)
	for _, picks := range sum.Drafted {
		require.NotEmpty(t, picks)
		for _, pick := range picks {
			assert.Equal(t, 1, pick.Round)
			byOverall[pick.Overall] = pick
		}
	}
	require.Len(t, byOverall, 24)

	assert.Equal(t, standings[23], byOverall[1].Team, "worst team picks first")
	assert.Equal(t, standings[0], byOverall[24].Team, "best team picks last")

	// Drafted prospects land on the minor roster of their new club.
	first := byOverall[1]
	p, team := l.FindPlayerByID(first.PlayerID)
	require.NotNil(t, p)
	assert.Equal(t, first.Team, team)
	assert.NotNil(t, l.TeamByName(team).MinorPlayerByName(p.Name))
	assert.Equal(t, 1, p.Draft.Overall)
}

func TestOffseason_PlayoffRevealDays(t *testing.T) {
	l := newTestLeague(29)
	for l.InRegularSeason() {
		_, err := l.Advance()
		require.NoError(t, err)
	}

	// First post-season advance builds the bracket and reveals day one.
	result, err := l.Advance()
	require.NoError(t, err)
	require.Equal(t, AdvancePlayoffDay, result.Type)
	require.NotNil(t, l.PendingPlayoffs)
	assert.Equal(t, "Founders Cup", l.PendingPlayoffs.CupName)
	assert.NotEmpty(t, l.PendingPlayoffs.CupChampion, "bracket pre-simulated in full")
	assert.NotEmpty(t, l.PendingPlayoffs.MVP)

	// Eight qualifiers per conference, four first-round series each.
	opening := l.PendingPlayoffs.RoundByName(RoundOne)
	require.NotNil(t, opening)
	assert.Len(t, opening.Series, 8)
	for _, s := range opening.Series {
		require.NotEmpty(t, s.Winner)
		winnerWins := s.HigherWins
		if s.Winner == s.LowerSeed {
			winnerWins = s.LowerWins
		}
		assert.Equal(t, 4, winnerWins, "%s vs %s", s.HigherSeed, s.LowerSeed)
		assert.LessOrEqual(t, len(s.Games), 7)
		assert.GreaterOrEqual(t, len(s.Games), 4)
	}

	for !l.PlayoffsComplete() {
		result, err = l.Advance()
		require.NoError(t, err)
		require.Equal(t, AdvancePlayoffDay, result.Type)
		require.NotNil(t, result.PlayoffDay)
		assert.NotEmpty(t, result.PlayoffDay.Games)
	}
}

func TestOffseason_UserTeamPausesDraft(t *testing.T) {
	l := newTestLeague(31)
	l.UserTeam = l.Teams[0].Name

	sum := runToOffseason(t, l)
	require.True(t, sum.DraftPending)
	require.NotNil(t, l.PendingDraft)
	assert.Equal(t, l.UserTeam, l.PendingDraft.OnClock())
	assert.Equal(t, 1, l.SeasonNumber, "season waits on the pick")

	// Unknown prospect IDs are refused without burning the pick.
	_, err := l.PickProspect("nope")
	require.Error(t, err)
	assert.Equal(t, models.ErrPlayerNotFound, models.KindOf(err))
	assert.Equal(t, l.UserTeam, l.PendingDraft.OnClock())

	choice := l.PendingDraft.Class[0]
	pick, err := l.PickProspect(choice.ID)
	require.NoError(t, err)
	assert.Equal(t, l.UserTeam, pick.Team)
	assert.Equal(t, choice.Name, pick.Player)

	// One round means the pick completes the draft and the season rolls.
	assert.Nil(t, l.PendingDraft)
	assert.Equal(t, 2, l.SeasonNumber)
	assert.False(t, l.LastOffseason.DraftPending)
	require.Len(t, l.LastOffseason.Drafted, 24)
}

func TestOffseason_RequiresResolvedPlayoffs(t *testing.T) {
	l := newTestLeague(2)
	_, err := l.runOffseason()
	require.Error(t, err)
	assert.Equal(t, models.ErrInvariantViolation, models.KindOf(err))
}

func TestAgePlayers_DeclinesOldSkaters(t *testing.T) {
	l := newTestLeague(6)

	young := l.Teams[0].Roster[0]
	young.Age = 20
	old := l.Teams[0].Roster[1]
	old.Age = 38

	youngBefore := young.Overall()
	oldBefore := old.Overall()
	youngAge, oldAge := young.Age, old.Age

	l.agePlayers()

	assert.Equal(t, youngAge+1, young.Age)
	assert.Equal(t, oldAge+1, old.Age)
	assert.GreaterOrEqual(t, young.Overall(), youngBefore, "young players never regress")
	assert.Less(t, old.Overall(), oldBefore, "late-career players decline")
}

func TestRollsRetirement_AgeRamp(t *testing.T) {
	l := newTestLeague(7)

	p := l.Teams[0].Roster[0]
	p.Age = 28
	retired := 0
	for i := 0; i < 200; i++ {
		if l.rollsRetirement(p) {
			retired++
		}
	}
	assert.Zero(t, retired, "nobody retires before the ramp")

	p.Age = 42
	assert.True(t, l.rollsRetirement(p), "42 is mandatory")
}

func TestHonorNumber_FranchiseThresholds(t *testing.T) {
	l := newTestLeague(9)
	team := l.Teams[0]

	p := team.Roster[0]
	p.JerseyNumber = 91
	p.CareerSeasons = nil
	for s := 1; s <= 8; s++ {
		p.CareerSeasons = append(p.CareerSeasons, models.SeasonLine{
			Season: s, Team: team.Name, GamesPlayed: 80, Goals: 65, Assists: 60, Points: 125,
		})
	}

	require.True(t, l.honorNumber(team, p))
	assert.True(t, team.NumberRetired(91))

	// Retired numbers never come back into circulation.
	assert.True(t, team.UsedNumbers()[91])

	journeyman := team.Roster[1]
	journeyman.CareerSeasons = []models.SeasonLine{
		{Season: 1, Team: team.Name, GamesPlayed: 60, Goals: 5, Assists: 9, Points: 14},
	}
	assert.False(t, l.honorNumber(team, journeyman))
}

func TestCoachRetireProb_Ramp(t *testing.T) {
	young := models.Coach{Age: 45, Rating: 3.5}
	assert.Zero(t, coachRetireProb(young))

	old := models.Coach{Age: 71, Rating: 3.0, TenureSeasons: 10}
	assert.Greater(t, coachRetireProb(old), 0.9)
	assert.LessOrEqual(t, coachRetireProb(old), 0.95)
}
