// Package gamesim simulates single games: strength models, goal sampling,
// special teams, injuries and three-stars attribution.
package gamesim

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/simrand"
)

// Context bonuses applied by the league layer.
const (
	HomeBonusRegular = 0.012
	AwayBonusRegular = -0.006

	RandScaleRegular = 1.0
	RandScalePlayoff = 1.32
	RandScaleGame7   = 1.40

	otHomeWinProb = 0.52
)

// SideConfig carries one side's inputs into a simulation.
type SideConfig struct {
	Team          *models.Team
	Strategy      models.CoachStyle
	CoachOffense  float64
	CoachDefense  float64
	InjuryMult    float64
	LineupPenalty float64
	ContextBonus  float64
}

// Config is the full input for one game.
type Config struct {
	Home SideConfig
	Away SideConfig

	RandScale         float64
	RecordPlayerStats bool
	ApplyInjuries     bool
}

// Engine simulates games against the shared seeded RNG.
type Engine struct {
	rng *simrand.RNG
	log *logrus.Logger
}

// New creates a game engine.
func New(rng *simrand.RNG, log *logrus.Logger) *Engine {
	return &Engine{rng: rng, log: log}
}

// Simulate plays one game to completion.
func (e *Engine) Simulate(cfg Config) *models.GameResult {
	if cfg.RandScale <= 0 {
		cfg.RandScale = RandScaleRegular
	}
	if cfg.Home.InjuryMult <= 0 {
		cfg.Home.InjuryMult = 1.0
	}
	if cfg.Away.InjuryMult <= 0 {
		cfg.Away.InjuryMult = 1.0
	}

	homeLU := resolveLineup(cfg.Home.Team)
	awayLU := resolveLineup(cfg.Away.Team)

	homeStrength := sideStrength(homeLU, awayLU, cfg.Home, cfg.Away, true, cfg.Home.ContextBonus)
	awayStrength := sideStrength(awayLU, homeLU, cfg.Away, cfg.Home, false, cfg.Away.ContextBonus)

	jitter := 0.18 * cfg.RandScale
	homeGoals := e.rng.Poisson(clampGoalLambda(homeStrength, e.rng.Range(-jitter, jitter)))
	awayGoals := e.rng.Poisson(clampGoalLambda(awayStrength, e.rng.Range(-jitter, jitter)))

	result := &models.GameResult{
		Home: cfg.Home.Team.Name,
		Away: cfg.Away.Team.Name,
	}

	// Special teams stack on top of even-strength totals.
	homePP := e.specialTeams(homeLU, awayLU, cfg.Home, cfg.Away, result, true)
	awayPP := e.specialTeams(awayLU, homeLU, cfg.Away, cfg.Home, result, false)
	homeGoals += homePP
	awayGoals += awayPP

	overtime := false
	if homeGoals == awayGoals {
		overtime = true
		if e.rng.Chance(otHomeWinProb) {
			homeGoals++
		} else {
			awayGoals++
		}
	}

	result.HomeGoals = homeGoals
	result.AwayGoals = awayGoals
	result.Overtime = overtime

	e.attributeGoals(result, homeLU, awayLU, homePP, awayPP)
	e.goalieStats(result, homeLU, awayLU, cfg)
	if cfg.ApplyInjuries {
		e.rollInjuries(result, cfg.Home, homeLU)
		e.rollInjuries(result, cfg.Away, awayLU)
	}
	result.ThreeStars = e.threeStars(result, homeLU, awayLU)
	result.Attendance = e.attendance(cfg.Home.Team)

	if cfg.RecordPlayerStats {
		recordSkaterStats(result, cfg.Home.Team, cfg.Away.Team)
	}

	if e.log != nil {
		e.log.WithFields(logrus.Fields{
			"home":       result.Home,
			"away":       result.Away,
			"home_goals": result.HomeGoals,
			"away_goals": result.AwayGoals,
			"overtime":   result.Overtime,
		}).Debug("Game simulated")
	}
	return result
}

// specialTeams rolls one side's power plays and returns its PP goals.
func (e *Engine) specialTeams(own, opp *dressedLineup, cfg, oppCfg SideConfig, result *models.GameResult, home bool) int {
	// Penalties the opponent takes give this side its chances.
	discipline := avg(opp.Skaters, func(p *models.Player) float64 { return p.Physical })
	stratMod := 0.0
	switch oppCfg.Strategy {
	case models.StyleAggressive:
		stratMod = 0.95
	case models.StyleDefensive:
		stratMod = -0.45
	}
	chances := int(math.Round(2.4 + (discipline-3.0)*0.7 + stratMod + e.rng.Range(-1.1, 1.1)))
	if chances < 0 {
		chances = 0
	}

	ppRating := top6Offense(own)
	oppPK := teamDefense(opp)
	oppGoalie := 0.0
	if opp.Starter != nil {
		oppGoalie = opp.Starter.Goaltending
	}
	rate := simrand.Clamp(
		0.135+0.024*(ppRating-3.0)-0.020*(oppPK-3.0)-0.015*(oppGoalie-3.0)+0.05*cfg.CoachOffense,
		0.05, 0.31,
	)

	goals := 0
	for i := 0; i < chances; i++ {
		if e.rng.Chance(rate) {
			goals++
		}
	}

	side := models.SideStats{PPGoals: goals, PPChances: chances}
	if home {
		result.HomeSpecialTeams = side
	} else {
		result.AwaySpecialTeams = side
	}
	return goals
}

// attributeGoals samples scorers and assists for every goal.
func (e *Engine) attributeGoals(result *models.GameResult, homeLU, awayLU *dressedLineup, homePP, awayPP int) {
	build := func(team string, lu *dressedLineup, total, pp int) {
		for i := 0; i < total; i++ {
			ev := e.goalEvent(team, lu)
			ev.PowerPlay = i < pp
			result.Goals = append(result.Goals, ev)
		}
	}
	build(result.Home, homeLU, result.HomeGoals, homePP)
	build(result.Away, awayLU, result.AwayGoals, awayPP)
}

func (e *Engine) goalEvent(team string, lu *dressedLineup) models.GoalEvent {
	skaters, usages := skatersWithUsage(lu)
	if len(skaters) == 0 {
		return models.GoalEvent{Team: team, Scorer: "unknown"}
	}

	weights := make([]float64, len(skaters))
	for i, p := range skaters {
		roleMod := 0.68
		if p.Position.IsForward() {
			roleMod = 1.10
		}
		scoring := 0.70*p.Shooting + 0.30*p.Playmaking
		weights[i] = math.Pow(maxf(scoring*roleMod*usages[i], 0.01), 2.25)
	}
	scorerIdx := e.rng.WeightedIndex(weights)
	scorer := skaters[scorerIdx]

	ev := models.GoalEvent{Team: team, Scorer: scorer.Name}

	assistWeights := func(exclude map[string]bool) ([]float64, []*models.Player) {
		ws := make([]float64, 0, len(skaters))
		ps := make([]*models.Player, 0, len(skaters))
		for _, p := range skaters {
			if exclude[p.Name] {
				continue
			}
			posMod := 0.92
			if p.Position.IsForward() {
				posMod = 1.0
			}
			ws = append(ws, math.Pow(maxf(p.Playmaking*posMod+0.05*p.Defense, 0.01), 1.55))
			ps = append(ps, p)
		}
		return ws, ps
	}

	used := map[string]bool{scorer.Name: true}
	if e.rng.Chance(0.79) {
		ws, ps := assistWeights(used)
		if len(ps) > 0 {
			a1 := ps[e.rng.WeightedIndex(ws)]
			ev.Assists = append(ev.Assists, a1.Name)
			used[a1.Name] = true
			if e.rng.Chance(0.43) {
				ws2, ps2 := assistWeights(used)
				if len(ps2) > 0 {
					ev.Assists = append(ev.Assists, ps2[e.rng.WeightedIndex(ws2)].Name)
				}
			}
		}
	}
	return ev
}

func skatersWithUsage(lu *dressedLineup) ([]*models.Player, []float64) {
	var skaters []*models.Player
	var usages []float64
	for li, line := range lu.Forwards {
		for _, p := range line {
			skaters = append(skaters, p)
			usages = append(usages, forwardLineUsage[li])
		}
	}
	for pi, pair := range lu.Pairs {
		for _, p := range pair {
			skaters = append(skaters, p)
			usages = append(usages, defensePairUsage[pi])
		}
	}
	return skaters, usages
}

// goalieStats derives shot volume and updates both starters' lines.
func (e *Engine) goalieStats(result *models.GameResult, homeLU, awayLU *dressedLineup, cfg Config) {
	apply := func(lu *dressedLineup, ga int, won, otLoss bool, shotsOut *int) string {
		if lu.Starter == nil {
			return ""
		}
		g := lu.Starter
		shots := int(math.Max(
			float64(ga+8),
			22.0+1.6*float64(ga)+e.rng.Range(0, 10)+(3.5-g.Goaltending)*1.0,
		))
		*shotsOut = shots
		if cfg.RecordPlayerStats {
			gs := &g.GoalieStats
			gs.GamesPlayed++
			gs.ShotsAgainst += shots
			gs.Saves += shots - ga
			gs.GoalsAgainst += ga
			switch {
			case won:
				gs.Wins++
				if ga == 0 {
					gs.Shutouts++
				}
			case otLoss:
				gs.OTLosses++
			default:
				gs.Losses++
			}
		}
		// Form tracking updates every game, including playoff games where
		// the season counters stay frozen; starter selection reads it.
		start := models.GoalieStart{GoalsAgainst: ga, Won: won}
		if shots > 0 {
			start.SavePct = float64(shots-ga) / float64(shots)
		}
		g.RecentStarts = append(g.RecentStarts, start)
		if len(g.RecentStarts) > 5 {
			g.RecentStarts = g.RecentStarts[len(g.RecentStarts)-5:]
		}
		return g.Name
	}

	homeWon := result.HomeGoals > result.AwayGoals
	result.HomeGoalie = apply(homeLU, result.AwayGoals, homeWon, !homeWon && result.Overtime, &result.HomeShotsAgainst)
	result.AwayGoalie = apply(awayLU, result.HomeGoals, !homeWon, homeWon && result.Overtime, &result.AwayShotsAgainst)
}

// rollInjuries checks every dressed player for a new injury.
func (e *Engine) rollInjuries(result *models.GameResult, cfg SideConfig, lu *dressedLineup) {
	stratMult := strategyInjuryMult(cfg.Strategy)
	players := append([]*models.Player{}, lu.Skaters...)
	if lu.Starter != nil {
		players = append(players, lu.Starter)
	}
	for _, p := range players {
		rate := 0.01357 * stratMult * (1.35 - p.Durability/10.0) * cfg.InjuryMult
		if p.Position == models.Goalie {
			rate *= 0.65
		}
		if !e.rng.Chance(rate) {
			continue
		}
		mean := 8.04 * (0.92 + 0.16*stratMult)
		gamesOut := e.rng.ExpDuration(mean, 30)
		if gamesOut > p.InjuredGamesRemaining {
			p.InjuredGamesRemaining = gamesOut
		}
		if gamesOut <= 3 {
			p.InjuryStatus = models.StatusDayToDay
		} else {
			p.InjuryStatus = models.StatusIR
		}
		p.PlayingToday = false
		p.Injuries++
		result.Injuries = append(result.Injuries, models.InjuryEvent{
			Team:     cfg.Team.Name,
			Player:   p.Name,
			GamesOut: gamesOut,
		})
	}
}

func (e *Engine) attendance(home *models.Team) int {
	if home.ArenaCapacity == 0 {
		return 0
	}
	fill := e.rng.Range(0.82, 1.0)
	return int(float64(home.ArenaCapacity) * fill)
}

// recordSkaterStats writes the game's goal events into season counters.
func recordSkaterStats(result *models.GameResult, home, away *models.Team) {
	credit := func(teamName, scorer string, assists []string) {
		team := home
		if teamName == away.Name {
			team = away
		}
		if p := team.PlayerByName(scorer); p != nil {
			p.Goals++
		}
		for _, a := range assists {
			if p := team.PlayerByName(a); p != nil {
				p.Assists++
			}
		}
	}
	for _, ev := range result.Goals {
		credit(ev.Team, ev.Scorer, ev.Assists)
	}
	for _, t := range []*models.Team{home, away} {
		for _, p := range t.Dressed() {
			p.GamesPlayed++
		}
	}
}
