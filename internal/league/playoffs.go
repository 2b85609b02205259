package league

import (
	"fmt"
	"sort"

	"github.com/openice/rinkrat/internal/gamesim"
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/teamai"
)

// Round names used in the bracket tree.
const (
	RoundOne       = "Round 1"
	RoundDivFinal  = "Division Finals"
	RoundConfFinal = "Conference Finals"
	RoundCupFinal  = "Cup Final"
)

// playoffLine accumulates one player's postseason work for the MVP race.
type playoffLine struct {
	team   string
	pos    models.Position
	gp     int
	goals  int
	points int
	wins   int
	shots  int
	saves  int
	ga     int
}

// buildPlayoffs constructs the bracket, pre-simulates every series to
// completion, and stores the reveal queue. Called once, on the first
// advance after the regular season ends.
func (l *League) buildPlayoffs() error {
	bracket := &models.PlayoffBracket{CupName: models.CupName}
	stats := make(map[string]*playoffLine)

	conferences := l.conferenceNames()
	if len(conferences) != 2 {
		return models.NewSimError(models.ErrInvariantViolation,
			"playoffs need exactly 2 conferences, have %d", len(conferences))
	}

	var days []models.PlayoffDay
	champions := make([]string, 0, 2)
	for _, conf := range conferences {
		champ, confDays, err := l.runConference(conf, bracket, stats)
		if err != nil {
			return err
		}
		days = mergeDays(days, confDays)
		champions = append(champions, champ)
	}

	// Cup Final: the better regular-season record hosts Game 1.
	ordered := append([]string{}, champions...)
	l.sortTeamNames(ordered)
	final := &models.Series{Round: RoundCupFinal, HigherSeed: ordered[0], LowerSeed: ordered[1]}
	l.simulateSeries(final, stats)
	bracket.Rounds = append(bracket.Rounds, &models.PlayoffRound{Name: RoundCupFinal, Series: []*models.Series{final}})
	days = append(days, seriesDays(RoundCupFinal, []*models.Series{final})...)

	bracket.CupChampion = final.Winner
	bracket.MVP, bracket.MVPRace = playoffMVP(stats)

	l.PendingPlayoffs = bracket
	l.PendingPlayoffDays = days
	l.PendingPlayoffDayIndex = 0

	if l.log != nil {
		l.log.WithField("champion", bracket.CupChampion).
			WithField("reveal_days", len(days)).
			Info("Playoff bracket pre-simulated")
	}
	return nil
}

func (l *League) conferenceNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range l.Teams {
		if !seen[t.Conference] {
			seen[t.Conference] = true
			out = append(out, t.Conference)
		}
	}
	sort.Strings(out)
	return out
}

// runConference plays a conference's rounds and returns its champion.
func (l *League) runConference(conf string, bracket *models.PlayoffBracket, stats map[string]*playoffLine) (string, []models.PlayoffDay, error) {
	divisions := l.conferenceDivisions(conf)

	var firstRound []*models.Series
	if len(divisions) == 2 {
		firstRound = l.divisionalFirstRound(conf, divisions)
	} else {
		firstRound = l.seededFirstRound(conf)
	}
	if len(firstRound) != 4 {
		return "", nil, models.NewSimError(models.ErrInvariantViolation,
			"conference %s produced %d first-round series", conf, len(firstRound))
	}

	var days []models.PlayoffDay
	for _, s := range firstRound {
		l.simulateSeries(s, stats)
	}
	appendRound(bracket, RoundOne, firstRound)
	days = append(days, seriesDays(RoundOne, firstRound)...)

	// Division finals pair each division's two first-round winners (the
	// seeded path reseeds 1-4 here, which collapses to the same pairing
	// order).
	semi1 := l.newSeries(RoundDivFinal, firstRound[0].Winner, firstRound[1].Winner)
	semi2 := l.newSeries(RoundDivFinal, firstRound[2].Winner, firstRound[3].Winner)
	l.simulateSeries(semi1, stats)
	l.simulateSeries(semi2, stats)
	appendRound(bracket, RoundDivFinal, []*models.Series{semi1, semi2})
	days = append(days, seriesDays(RoundDivFinal, []*models.Series{semi1, semi2})...)

	confFinal := l.newSeries(RoundConfFinal, semi1.Winner, semi2.Winner)
	l.simulateSeries(confFinal, stats)
	appendRound(bracket, RoundConfFinal, []*models.Series{confFinal})
	days = append(days, seriesDays(RoundConfFinal, []*models.Series{confFinal})...)

	return confFinal.Winner, days, nil
}

// divisionalFirstRound applies the 3+wildcard format: the division winner
// with the better record draws the first wildcard.
func (l *League) divisionalFirstRound(conf string, divisions []string) []*models.Series {
	topByDiv, remaining := l.conferenceSplit(conf)
	wc1, wc2 := remaining[0], remaining[1]

	d1, d2 := divisions[0], divisions[1]
	// Order divisions so d1 holds the better #1 seed.
	pair := []string{topByDiv[d1][0], topByDiv[d2][0]}
	l.sortTeamNames(pair)
	if pair[0] != topByDiv[d1][0] {
		d1, d2 = d2, d1
	}

	return []*models.Series{
		l.newSeries(RoundOne, topByDiv[d1][0], wc1),
		l.newSeries(RoundOne, topByDiv[d1][1], topByDiv[d1][2]),
		l.newSeries(RoundOne, topByDiv[d2][0], wc2),
		l.newSeries(RoundOne, topByDiv[d2][1], topByDiv[d2][2]),
	}
}

// seededFirstRound is the 1-8 fallback for unusual league shapes.
func (l *League) seededFirstRound(conf string) []*models.Series {
	names := l.teamNamesWhere(func(t *models.Team) bool { return t.Conference == conf })
	if len(names) > 8 {
		names = names[:8]
	}
	var out []*models.Series
	for i := 0; i < len(names)/2; i++ {
		out = append(out, l.newSeries(RoundOne, names[i], names[len(names)-1-i]))
	}
	return out
}

func (l *League) newSeries(round, higher, lower string) *models.Series {
	// Guard the seed order against upsets feeding back in.
	pair := []string{higher, lower}
	l.sortTeamNames(pair)
	return &models.Series{Round: round, HigherSeed: pair[0], LowerSeed: pair[1]}
}

func appendRound(bracket *models.PlayoffBracket, name string, series []*models.Series) {
	if round := bracket.RoundByName(name); round != nil {
		round.Series = append(round.Series, series...)
		return
	}
	bracket.Rounds = append(bracket.Rounds, &models.PlayoffRound{Name: name, Series: series})
}

// simulateSeries plays a best-of-7 to its conclusion.
func (l *League) simulateSeries(s *models.Series, stats map[string]*playoffLine) {
	higher := l.TeamByName(s.HigherSeed)
	lower := l.TeamByName(s.LowerSeed)
	benched := map[string]bool{}

	for gameNo := 1; gameNo <= 7 && !s.Decided(); gameNo++ {
		homeName := s.HomeTeamForGame(gameNo)
		home, away := higher, lower
		if homeName != s.HigherSeed {
			home, away = lower, higher
		}

		elimination := s.HigherWins == 3 || s.LowerWins == 3
		randScale := gamesim.RandScalePlayoff
		if gameNo == 7 {
			randScale = gamesim.RandScaleGame7
		}

		game := l.playPlayoffGame(home, away, s, gameNo, elimination, randScale, benched)
		recordPlayoffStats(game, home, away, stats)

		sg := models.SeriesGame{
			GameNo:     gameNo,
			Home:       home.Name,
			Away:       away.Name,
			HomeGoals:  game.HomeGoals,
			AwayGoals:  game.AwayGoals,
			Overtime:   game.Overtime,
			HomeGoalie: game.HomeGoalie,
			AwayGoalie: game.AwayGoalie,
			Attendance: game.Attendance,
			ThreeStars: game.ThreeStars,
			Winner:     game.Winner(),
		}
		s.Games = append(s.Games, sg)
		if sg.Winner == s.HigherSeed {
			s.HigherWins++
		} else {
			s.LowerWins++
		}
	}

	if s.HigherWins >= 4 {
		s.Winner = s.HigherSeed
	} else {
		s.Winner = s.LowerSeed
	}
}

func (l *League) playPlayoffGame(home, away *models.Team, s *models.Series, gameNo int, elimination bool, randScale float64, benched map[string]bool) *models.GameResult {
	l.ensureDressedDepth(home)
	l.ensureDressedDepth(away)

	prep := func(t *models.Team) {
		teamai.DecideDTD(t, l.rng, teamai.DTDContext{Playoffs: true, Elimination: elimination})
		teamai.SetDefaultLineup(t, uint64(gameNo)*31+uint64(l.DayIndex))
		starter := teamai.ChooseStarter(t, l.rng, teamai.StarterContext{
			Playoffs:      true,
			SeriesBenched: benched[t.Name],
		})
		// Remember a pulled nominal starter for the rest of the series.
		if best := bestGoalieName(t); best != "" && starter != best {
			benched[t.Name] = true
		}
	}
	prep(home)
	prep(away)

	homeMods := teamai.Modifiers(home, away)
	awayMods := teamai.Modifiers(away, home)

	homeContext, awayContext := 0.0, 0.0
	if elimination {
		if home.Name == s.HigherSeed {
			homeContext += 0.010
		} else {
			awayContext += 0.010
		}
	}

	return l.engine.Simulate(gamesim.Config{
		Home: gamesim.SideConfig{
			Team: home, Strategy: homeMods.EffectiveStyle,
			CoachOffense: homeMods.OffenseBonus, CoachDefense: homeMods.DefenseBonus,
			InjuryMult: homeMods.InjuryMult, ContextBonus: homeContext,
		},
		Away: gamesim.SideConfig{
			Team: away, Strategy: awayMods.EffectiveStyle,
			CoachOffense: awayMods.OffenseBonus, CoachDefense: awayMods.DefenseBonus,
			InjuryMult: awayMods.InjuryMult, ContextBonus: awayContext,
		},
		RandScale:         randScale,
		RecordPlayerStats: false, // playoff tallies live on the bracket
		ApplyInjuries:     true,
	})
}

func bestGoalieName(t *models.Team) string {
	var best *models.Player
	for _, p := range t.Roster {
		if p.Position == models.Goalie && p.Available() {
			if best == nil || p.Goaltending > best.Goaltending {
				best = p
			}
		}
	}
	if best == nil {
		return ""
	}
	return best.Name
}

func recordPlayoffStats(game *models.GameResult, home, away *models.Team, stats map[string]*playoffLine) {
	line := func(name, team string, pos models.Position) *playoffLine {
		pl, ok := stats[name]
		if !ok {
			pl = &playoffLine{team: team, pos: pos}
			stats[name] = pl
		}
		return pl
	}

	for _, t := range []*models.Team{home, away} {
		for _, p := range t.Dressed() {
			line(p.Name, t.Name, p.Position).gp++
		}
	}
	for _, ev := range game.Goals {
		teamOf := home
		if ev.Team == away.Name {
			teamOf = away
		}
		if p := teamOf.PlayerByName(ev.Scorer); p != nil {
			pl := line(ev.Scorer, teamOf.Name, p.Position)
			pl.goals++
			pl.points++
		}
		for _, a := range ev.Assists {
			if p := teamOf.PlayerByName(a); p != nil {
				line(a, teamOf.Name, p.Position).points++
			}
		}
	}

	goalie := func(name, team string, shots, ga int, won bool) {
		if name == "" {
			return
		}
		pl := line(name, team, models.Goalie)
		pl.shots += shots
		pl.saves += shots - ga
		pl.ga += ga
		if won {
			pl.wins++
		}
	}
	homeWon := game.HomeGoals > game.AwayGoals
	goalie(game.HomeGoalie, home.Name, game.HomeShotsAgainst, game.AwayGoals, homeWon)
	goalie(game.AwayGoalie, away.Name, game.AwayShotsAgainst, game.HomeGoals, !homeWon)
}

// playoffMVP ranks the race and returns the winner plus the top lines.
func playoffMVP(stats map[string]*playoffLine) (string, []models.MVPEntry) {
	var entries []models.MVPEntry
	for name, pl := range stats {
		if pl.gp == 0 {
			continue
		}
		var score float64
		var lineStr string
		if pl.pos == models.Goalie {
			if pl.shots == 0 {
				continue
			}
			svPct := float64(pl.saves) / float64(pl.shots)
			gaa := float64(pl.ga) / float64(pl.gp)
			score = 7.5*float64(pl.wins) + 75*svPct - 1.8*gaa + 0.8*float64(pl.gp)
			lineStr = fmt.Sprintf("%dW .%03.0f", pl.wins, svPct*1000)
		} else {
			score = 6*float64(pl.points) + 2.2*float64(pl.goals) + 2*float64(pl.points)/float64(pl.gp)
			lineStr = fmt.Sprintf("%dG %dP in %dGP", pl.goals, pl.points, pl.gp)
		}
		entries = append(entries, models.MVPEntry{Player: name, Team: pl.team, Line: lineStr, Score: score})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Player < entries[j].Player
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}
	if len(entries) == 0 {
		return "", nil
	}
	return entries[0].Player, entries
}

// seriesDays slices a simulated round into reveal days: day k releases
// game k of every series still alive at that length.
func seriesDays(round string, series []*models.Series) []models.PlayoffDay {
	var days []models.PlayoffDay
	for gameNo := 1; gameNo <= 7; gameNo++ {
		var games []models.SeriesGame
		for _, s := range series {
			if gameNo <= len(s.Games) {
				games = append(games, s.Games[gameNo-1])
			}
		}
		if len(games) > 0 {
			days = append(days, models.PlayoffDay{Round: round, Games: games})
		}
	}
	return days
}

// mergeDays zips two conferences' reveal queues so both sides of the
// bracket progress together.
func mergeDays(a, b []models.PlayoffDay) []models.PlayoffDay {
	if len(a) == 0 {
		return b
	}
	var out []models.PlayoffDay
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		if i < len(a) && j < len(b) && a[i].Round == b[j].Round {
			merged := models.PlayoffDay{Round: a[i].Round}
			merged.Games = append(merged.Games, a[i].Games...)
			merged.Games = append(merged.Games, b[j].Games...)
			out = append(out, merged)
			i++
			j++
			continue
		}
		if i < len(a) {
			out = append(out, a[i])
			i++
			continue
		}
		out = append(out, b[j])
		j++
	}
	return out
}

// revealPlayoffDay releases the next pre-simulated day. Injury timers
// still tick so roster status stays coherent in projections.
func (l *League) revealPlayoffDay() *AdvanceResult {
	l.decayInjuries()
	day := l.PendingPlayoffDays[l.PendingPlayoffDayIndex]
	l.PendingPlayoffDayIndex++
	return &AdvanceResult{Type: AdvancePlayoffDay, PlayoffDay: &day}
}
