package league

import (
	"github.com/sirupsen/logrus"

	"github.com/openice/rinkrat/internal/gamesim"
	"github.com/openice/rinkrat/internal/gmai"
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/teamai"
)

// Advance result types.
const (
	AdvanceGames      = "games"
	AdvancePlayoffDay = "playoff_day"
	AdvanceOffseason  = "offseason"
)

// TradeNews reports one executed swap for the feed.
type TradeNews struct {
	TeamA   string `json:"team_a"`
	TeamB   string `json:"team_b"`
	PlayerA string `json:"player_a"` // left TeamA
	PlayerB string `json:"player_b"` // left TeamB
}

// AdvanceResult is what one advance call produced.
type AdvanceResult struct {
	Type       string                `json:"type"`
	Games      []*models.GameResult  `json:"games,omitempty"`
	PlayoffDay *models.PlayoffDay    `json:"playoff_day,omitempty"`
	Offseason  *OffseasonSummary     `json:"offseason,omitempty"`
	Firings    []gmai.FiringEvent    `json:"firings,omitempty"`
	Trades     []TradeNews           `json:"trades,omitempty"`
}

// Advance moves the world exactly one step: a regular-season day, one
// playoff reveal day, or the full offseason pipeline.
func (l *League) Advance() (*AdvanceResult, error) {
	if l.InRegularSeason() {
		return l.advanceRegularDay()
	}
	if l.PendingPlayoffs == nil {
		if err := l.buildPlayoffs(); err != nil {
			return nil, err
		}
	}
	if l.PendingPlayoffDayIndex < len(l.PendingPlayoffDays) {
		return l.revealPlayoffDay(), nil
	}
	return l.runOffseason()
}

func (l *League) advanceRegularDay() (*AdvanceResult, error) {
	day := l.Days[l.DayIndex]

	// Preconditions: standings can never be ahead of the calendar, and a
	// day must not schedule a team twice.
	for _, t := range l.Teams {
		if gp := l.RecordOf(t.Name).GamesPlayed(); gp > l.DayIndex {
			return nil, models.NewSimError(models.ErrInvariantViolation,
				"%s has %d games played before day %d", t.Name, gp, l.DayIndex)
		}
	}
	seen := make(map[string]bool)
	for _, m := range day {
		if seen[m.Home] || seen[m.Away] {
			dup := m.Home
			if seen[m.Away] {
				dup = m.Away
			}
			return nil, models.NewSimError(models.ErrSchedulingDuplicate,
				"%s appears twice on day %d", dup, l.DayIndex)
		}
		seen[m.Home] = true
		seen[m.Away] = true
	}

	snapshot := l.snapshotRecords()
	l.decayInjuries()

	result := &AdvanceResult{Type: AdvanceGames}
	playing := day.TeamsPlaying()

	for _, m := range day {
		home := l.TeamByName(m.Home)
		away := l.TeamByName(m.Away)
		if home == nil || away == nil {
			l.restoreRecords(snapshot)
			return nil, models.NewSimError(models.ErrTeamNotFound, "scheduled team missing on day %d", l.DayIndex)
		}
		game := l.playRegularGame(home, away)
		result.Games = append(result.Games, game)
	}

	// Post-day integrity: exactly one GP gained per scheduled team, zero
	// otherwise, and nobody ahead of the calendar.
	for _, t := range l.Teams {
		before := snapshot[t.Name].GamesPlayed()
		after := l.RecordOf(t.Name).GamesPlayed()
		delta := after - before
		want := 0
		if playing[t.Name] {
			want = 1
		}
		if delta != want || after > l.DayIndex+1 {
			l.restoreRecords(snapshot)
			return nil, models.NewSimError(models.ErrInvariantViolation,
				"%s gained %d games on day %d (want %d)", t.Name, delta, l.DayIndex, want)
		}
	}

	l.DayIndex++

	// CPU front offices review weekly, once the sample is meaningful.
	if l.DayIndex >= gmai.WeeklyReviewMinDay && l.DayIndex%gmai.WeeklyReviewPeriod == 0 {
		l.weeklyReview(result)
	}

	if l.log != nil {
		l.log.WithFields(logrus.Fields{
			"season": l.SeasonNumber,
			"day":    l.DayIndex,
			"games":  len(result.Games),
		}).Info("Day advanced")
	}
	return result, nil
}

// playRegularGame prepares both benches and simulates one game, then
// applies the result to the standings.
func (l *League) playRegularGame(home, away *models.Team) *models.GameResult {
	l.ensureDressedDepth(home)
	l.ensureDressedDepth(away)

	homeB2B := l.playedYesterday(home.Name)
	awayB2B := l.playedYesterday(away.Name)

	prep := func(t, opp *models.Team, b2b bool) {
		if t.Name == l.UserTeam {
			// The user's lines and starter stand; only fill gaps.
			if len(t.LineAssignments) == 0 {
				teamai.SetDefaultLineup(t, uint64(l.DayIndex))
			}
			return
		}
		teamai.DecideDTD(t, l.rng, teamai.DTDContext{
			Underdog: l.RecordOf(t.Name).PointPct()+0.08 < l.RecordOf(opp.Name).PointPct(),
		})
		teamai.SetDefaultLineup(t, uint64(l.DayIndex))
		teamai.ChooseStarter(t, l.rng, teamai.StarterContext{BackToBack: b2b})
	}
	prep(home, away, homeB2B)
	prep(away, home, awayB2B)

	homeMods := teamai.Modifiers(home, away)
	awayMods := teamai.Modifiers(away, home)

	side := func(t *models.Team, mods teamai.CoachModifiers, context float64, b2b bool) gamesim.SideConfig {
		cfg := gamesim.SideConfig{
			Team:          t,
			Strategy:      mods.EffectiveStyle,
			CoachOffense:  mods.OffenseBonus,
			CoachDefense:  mods.DefenseBonus,
			InjuryMult:    mods.InjuryMult,
			ContextBonus:  context,
			LineupPenalty: 0,
		}
		if t.Name == l.UserTeam {
			cfg.LineupPenalty = t.LineupPositionPenalty
		}
		if b2b {
			// Travel on the second night of a back-to-back.
			cfg.LineupPenalty += 0.06
			cfg.InjuryMult += 0.06
		}
		return cfg
	}

	game := l.engine.Simulate(gamesim.Config{
		Home:              side(home, homeMods, gamesim.HomeBonusRegular, homeB2B),
		Away:              side(away, awayMods, gamesim.AwayBonusRegular, awayB2B),
		RandScale:         gamesim.RandScaleRegular,
		RecordPlayerStats: true,
		ApplyInjuries:     true,
	})

	l.applyGameToRecords(game)
	l.chargeGamesMissed(home)
	l.chargeGamesMissed(away)

	if home.Coach.HoneymoonGames > 0 {
		home.Coach.HoneymoonGames--
	}
	if away.Coach.HoneymoonGames > 0 {
		away.Coach.HoneymoonGames--
	}
	return game
}

func (l *League) applyGameToRecords(game *models.GameResult) {
	homeRec := l.RecordOf(game.Home)
	awayRec := l.RecordOf(game.Away)

	homeRec.GoalsFor += game.HomeGoals
	homeRec.GoalsAgainst += game.AwayGoals
	awayRec.GoalsFor += game.AwayGoals
	awayRec.GoalsAgainst += game.HomeGoals

	homeRec.PPGoals += game.HomeSpecialTeams.PPGoals
	homeRec.PPChances += game.HomeSpecialTeams.PPChances
	homeRec.PKGoalsAgainst += game.AwaySpecialTeams.PPGoals
	homeRec.PKChancesAgainst += game.AwaySpecialTeams.PPChances
	awayRec.PPGoals += game.AwaySpecialTeams.PPGoals
	awayRec.PPChances += game.AwaySpecialTeams.PPChances
	awayRec.PKGoalsAgainst += game.HomeSpecialTeams.PPGoals
	awayRec.PKChancesAgainst += game.HomeSpecialTeams.PPChances

	if game.HomeGoals > game.AwayGoals {
		homeRec.Wins++
		homeRec.HomeWins++
		homeRec.RecordResult("W")
		if game.Overtime {
			awayRec.OTLosses++
			awayRec.AwayOTLosses++
			awayRec.RecordResult("OTL")
		} else {
			awayRec.Losses++
			awayRec.AwayLosses++
			awayRec.RecordResult("L")
		}
	} else {
		awayRec.Wins++
		awayRec.AwayWins++
		awayRec.RecordResult("W")
		if game.Overtime {
			homeRec.OTLosses++
			homeRec.HomeOTLosses++
			homeRec.RecordResult("OTL")
		} else {
			homeRec.Losses++
			homeRec.HomeLosses++
			homeRec.RecordResult("L")
		}
	}
}

// chargeGamesMissed bumps the missed-game counter for rostered players
// who could not dress.
func (l *League) chargeGamesMissed(t *models.Team) {
	for _, p := range t.Roster {
		if !p.Available() {
			p.GamesMissed++
		}
	}
}

// decayInjuries ticks every recovery timer down one day and clears DTD
// play flags ahead of new decisions.
func (l *League) decayInjuries() {
	l.AllPlayers(func(p *models.Player, _ string) {
		if p.InjuredGamesRemaining > 0 {
			p.InjuredGamesRemaining--
			if p.InjuredGamesRemaining == 0 {
				p.InjuryStatus = models.StatusHealthy
				p.ReplacementFor = ""
			}
		}
		p.PlayingToday = false
	})
}

func (l *League) playedYesterday(team string) bool {
	if l.DayIndex == 0 || l.DayIndex-1 >= len(l.Days) {
		return false
	}
	return l.Days[l.DayIndex-1].HasTeam(team)
}

func (l *League) snapshotRecords() map[string]models.TeamRecord {
	snap := make(map[string]models.TeamRecord, len(l.Teams))
	for _, t := range l.Teams {
		rec := l.RecordOf(t.Name)
		copied := *rec
		copied.RecentResults = append([]string{}, rec.RecentResults...)
		snap[t.Name] = copied
	}
	return snap
}

func (l *League) restoreRecords(snap map[string]models.TeamRecord) {
	for name, rec := range snap {
		restored := rec
		l.Records[name] = &restored
	}
}

// weeklyReview runs CPU coach firings and market moves.
func (l *League) weeklyReview(result *AdvanceResult) {
	for _, t := range l.Teams {
		if t.Name == l.UserTeam {
			continue
		}
		divRank := l.divisionRank(t)
		if ev := gmai.ReviewCoach(t, *l.RecordOf(t.Name), divRank, &l.CoachPool, l.rng); ev != nil {
			result.Firings = append(result.Firings, *ev)
			if l.log != nil {
				l.log.WithField("team", ev.Team).WithField("new_coach", ev.NewCoach).Info("Coach fired")
			}
		}
	}

	for _, planned := range gmai.PlanCPUTrades(l.Teams, l.Records, l.UserTeam) {
		l.ExecuteTrade(planned.TeamA, planned.Deal.Give, planned.TeamB, planned.Deal.Receive)
		result.Trades = append(result.Trades, TradeNews{
			TeamA:   planned.TeamA.Name,
			TeamB:   planned.TeamB.Name,
			PlayerA: planned.Deal.Give.Name,
			PlayerB: planned.Deal.Receive.Name,
		})
	}
	l.RefreshTeamNeeds()
}
