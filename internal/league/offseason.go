package league

import (
	"sort"

	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/simrand"
)

// RetirementNews reports one player hanging them up.
type RetirementNews struct {
	Player        string          `json:"player"`
	Team          string          `json:"team,omitempty"`
	Position      models.Position `json:"position"`
	Age           int             `json:"age"`
	NumberRetired bool            `json:"number_retired,omitempty"`
	Number        int             `json:"number,omitempty"`
}

// SigningNews reports one free-agent signing.
type SigningNews struct {
	Player string  `json:"player"`
	Team   string  `json:"team"`
	Years  int     `json:"years"`
	CapHit float64 `json:"cap_hit"`
}

// CoachChange reports one offseason bench succession.
type CoachChange struct {
	Team    string `json:"team"`
	Retired string `json:"retired"`
	Hired   string `json:"hired"`
}

// OffseasonSummary is the completed-season report returned by the
// offseason advance.
type OffseasonSummary struct {
	CompletedSeason int    `json:"completed_season"`
	Champion        string `json:"champion"`
	CupName         string `json:"cup_name"`
	PlayoffMVP      string `json:"playoff_mvp,omitempty"`

	Retirements  []RetirementNews       `json:"retirements,omitempty"`
	Drafted      map[string][]DraftPick `json:"drafted,omitempty"`
	Signings     []SigningNews          `json:"signings,omitempty"`
	CoachChanges []CoachChange          `json:"coach_changes,omitempty"`

	// DraftPending marks that the user holds an unmade pick; the rest of
	// the pipeline waits on the draft operations.
	DraftPending bool `json:"draft_pending,omitempty"`

	PendingResigns []string `json:"pending_resigns,omitempty"`
}

// runOffseason executes the end-of-season pipeline: history snapshot,
// career logging, aging, retirement, draft, free agency, coach turnover,
// then the season reset.
func (l *League) runOffseason() (*AdvanceResult, error) {
	if !l.PlayoffsComplete() {
		return nil, models.NewSimError(models.ErrInvariantViolation,
			"offseason requested with playoffs unresolved")
	}
	bracket := l.PendingPlayoffs

	summary := &OffseasonSummary{
		CompletedSeason: l.SeasonNumber,
		Champion:        bracket.CupChampion,
		CupName:         bracket.CupName,
		PlayoffMVP:      bracket.MVP,
	}

	l.recordPlayoffFinishes(bracket)
	l.snapshotSeasonHistory(bracket)
	l.snapshotCareers(bracket.CupChampion)
	l.agePlayers()
	summary.Retirements = l.runRetirements()

	if l.UserTeam != "" {
		l.PendingDraft = l.newDraftState()
		l.autoPickToUser()
		summary.DraftPending = true
		summary.Drafted = l.PendingDraft.Picks
		l.LastOffseason = summary
		if l.log != nil {
			l.log.WithField("season", l.SeasonNumber).
				WithField("on_clock", l.UserTeam).
				Info("Draft paused for user pick")
		}
		return &AdvanceResult{Type: AdvanceOffseason, Offseason: summary}, nil
	}

	state := l.newDraftState()
	for state.NextPick < len(state.Order) {
		l.cpuPick(state)
	}
	summary.Drafted = state.Picks
	l.finishOffseason(summary)
	return &AdvanceResult{Type: AdvanceOffseason, Offseason: summary}, nil
}

// finishOffseason runs everything after the draft: roster top-ups, the
// market, coach turnover and the new-season reset.
func (l *League) finishOffseason(summary *OffseasonSummary) {
	for _, t := range l.Teams {
		l.topUpRoster(t)
		l.replenishMinors(t)
	}

	l.runContracts(summary)
	summary.Signings = l.runMarket()
	summary.CoachChanges = l.runCoachTurnover()

	l.resetForNewSeason()
	l.LastOffseason = summary

	if l.log != nil {
		l.log.WithField("season", l.SeasonNumber).
			WithField("champion", summary.Champion).
			Info("Offseason complete, new season scheduled")
	}
}

// recordPlayoffFinishes prepends this year's run label to every team and
// credits the champion's coach.
func (l *League) recordPlayoffFinishes(bracket *models.PlayoffBracket) {
	labels := make(map[string]string, len(l.Teams))
	for _, t := range l.Teams {
		labels[t.Name] = "missed"
	}
	roundLabel := map[string]string{
		RoundOne:       "round1",
		RoundDivFinal:  "round2",
		RoundConfFinal: "conf_final",
		RoundCupFinal:  "cup_final",
	}
	for _, name := range []string{RoundOne, RoundDivFinal, RoundConfFinal, RoundCupFinal} {
		round := bracket.RoundByName(name)
		if round == nil {
			continue
		}
		for _, s := range round.Series {
			labels[s.HigherSeed] = roundLabel[name]
			labels[s.LowerSeed] = roundLabel[name]
		}
	}
	labels[bracket.CupChampion] = "champion"

	for _, t := range l.Teams {
		t.PlayoffFinishes = append([]string{labels[t.Name]}, t.PlayoffFinishes...)
		if len(t.PlayoffFinishes) > 5 {
			t.PlayoffFinishes = t.PlayoffFinishes[:5]
		}
		if t.Name == bracket.CupChampion {
			t.Coach.CupsWon++
		}
	}
}

func (l *League) snapshotSeasonHistory(bracket *models.PlayoffBracket) {
	standings := l.teamNamesWhere(func(*models.Team) bool { return true })

	records := make(map[string]models.TeamRecord, len(l.Teams))
	coaches := make(map[string]string, len(l.Teams))
	captains := make(map[string]string, len(l.Teams))
	for _, t := range l.Teams {
		records[t.Name] = *l.RecordOf(t.Name)
		coaches[t.Name] = t.Coach.Name
		captains[t.Name] = t.Captain
	}

	l.History = append(l.History, models.SeasonHistoryEntry{
		Season:         l.SeasonNumber,
		CupName:        bracket.CupName,
		Champion:       bracket.CupChampion,
		PlayoffMVP:     bracket.MVP,
		FinalStandings: standings,
		Records:        records,
		TopScorers:     l.topScorers(10),
		TopGoalies:     l.topGoalies(10),
		CoachesByTeam:  coaches,
		CaptainsByTeam: captains,
		Bracket:        bracket,
	})
}

func (l *League) topScorers(n int) []models.SkaterLeader {
	var out []models.SkaterLeader
	for _, t := range l.Teams {
		for _, p := range t.Roster {
			if p.Position == models.Goalie || p.GamesPlayed == 0 {
				continue
			}
			out = append(out, models.SkaterLeader{
				Player: p.Name, Team: t.Name,
				GP: p.GamesPlayed, Goals: p.Goals, Points: p.Points(),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		return out[i].Player < out[j].Player
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (l *League) topGoalies(n int) []models.GoalieLeader {
	var out []models.GoalieLeader
	for _, t := range l.Teams {
		for _, p := range t.Roster {
			if p.Position != models.Goalie || p.GoalieStats.GamesPlayed == 0 {
				continue
			}
			out = append(out, models.GoalieLeader{
				Player: p.Name, Team: t.Name,
				GP: p.GoalieStats.GamesPlayed, Wins: p.GoalieStats.Wins,
				SavePct: p.GoalieStats.SavePct(), GAA: p.GoalieStats.GAA(),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].SavePct != out[j].SavePct {
			return out[i].SavePct > out[j].SavePct
		}
		return out[i].Player < out[j].Player
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// snapshotCareers appends this season's line to every player's career log
// and to the global career index.
func (l *League) snapshotCareers(champion string) {
	if l.CareerIndex == nil {
		l.CareerIndex = make(map[string][]models.SeasonLine)
	}
	for _, t := range l.Teams {
		wonCup := t.Name == champion
		for _, p := range t.Roster {
			l.appendCareerLine(p, wonCup)
		}
		for _, p := range t.MinorRoster {
			l.appendCareerLine(p, false)
		}
	}
	for _, p := range l.FreeAgents {
		if p.GamesPlayed > 0 || p.GoalieStats.GamesPlayed > 0 {
			l.appendCareerLine(p, false)
		}
	}
}

func (l *League) appendCareerLine(p *models.Player, wonCup bool) {
	line := p.SeasonSnapshot(l.SeasonNumber, wonCup)
	p.CareerSeasons = append(p.CareerSeasons, line)
	l.CareerIndex[p.ID] = append(l.CareerIndex[p.ID], line)
}

// agePlayers advances every player one year: injury wear, the aging
// curve, and prospect resolution.
func (l *League) agePlayers() {
	seasonLen := len(l.Days)
	l.AllPlayers(func(p *models.Player, _ string) {
		p.Age++

		// Injury wear scales with how banged-up the season was.
		wear := 0.015*float64(p.Injuries) + 0.003*float64(p.GamesMissed)
		if wear > 0.30 {
			wear = 0.30
		}
		p.Durability -= wear

		declineAge := 30
		if p.Position == models.Goalie {
			declineAge = 32
		}

		var delta float64
		switch {
		case p.Age < 23:
			delta = l.rng.Range(0.02, 0.10)
		case p.Age <= 29:
			delta = l.rng.Range(-0.02, 0.04)
		case p.Age <= declineAge:
			delta = l.rng.Range(-0.04, 0.01)
		default:
			delta = -(0.02 + 0.014*float64(p.Age-declineAge)) + l.rng.Range(-0.02, 0.02)
		}

		// Heavy usage by a player playing up to his rating earns a push.
		if seasonLen > 0 && p.GamesPlayed >= seasonLen*3/4 && p.Overall() >= 3.0 {
			delta += 0.03
		}

		l.applySkillDelta(p, delta)
		l.resolveProspect(p)
		p.ClampSkills()
	})
}

func (l *League) applySkillDelta(p *models.Player, delta float64) {
	jitter := func() float64 { return l.rng.Range(-0.015, 0.015) }
	if p.Position == models.Goalie {
		p.Goaltending += delta + jitter()
		p.Defense += delta * 0.4
		return
	}
	p.Shooting += delta + jitter()
	p.Playmaking += delta + jitter()
	p.Defense += delta + jitter()
	p.Physical += delta * 0.5
}

// resolveProspect ticks development and rolls boom/bust when the clock
// hits zero.
func (l *League) resolveProspect(p *models.Player) {
	pr := p.Prospect
	if pr == nil || pr.Resolved {
		return
	}
	if pr.SeasonsToNHL > 0 {
		pr.SeasonsToNHL--
	}
	if pr.SeasonsToNHL > 0 {
		return
	}

	roll := l.rng.Float64()
	switch {
	case roll < pr.BoomChance:
		l.applySkillDelta(p, l.rng.Range(0.25, 0.55)*pr.Potential)
	case roll < pr.BoomChance+pr.BustChance:
		l.applySkillDelta(p, -l.rng.Range(0.20, 0.45))
	default:
		l.applySkillDelta(p, (pr.Potential-0.5)*0.30)
	}
	pr.Resolved = true
	pr.Tier = models.TierNHL
}

// runRetirements rolls every player's retirement and produces the Hall
// entries and jersey honors.
func (l *League) runRetirements() []RetirementNews {
	var news []RetirementNews

	for _, t := range l.Teams {
		var retiring []*models.Player
		for _, p := range append(append([]*models.Player{}, t.Roster...), t.MinorRoster...) {
			if l.rollsRetirement(p) {
				retiring = append(retiring, p)
			}
		}
		for _, p := range retiring {
			honored := l.honorNumber(t, p)
			number := p.JerseyNumber
			t.RemoveFromRoster(p.Name)
			t.RemoveFromMinors(p.Name)
			l.HallOfFame = append(l.HallOfFame, l.hallEntry(p, t.Name, honored))
			news = append(news, RetirementNews{
				Player: p.Name, Team: t.Name, Position: p.Position,
				Age: p.Age, NumberRetired: honored, Number: number,
			})
		}
	}

	kept := l.FreeAgents[:0]
	for _, p := range l.FreeAgents {
		if l.rollsRetirement(p) {
			l.HallOfFame = append(l.HallOfFame, l.hallEntry(p, "", false))
			news = append(news, RetirementNews{Player: p.Name, Position: p.Position, Age: p.Age})
			continue
		}
		kept = append(kept, p)
	}
	l.FreeAgents = kept

	return news
}

func (l *League) rollsRetirement(p *models.Player) bool {
	rampAge := 34
	if p.Position == models.Goalie {
		rampAge = 36
	}
	if p.Age >= 42 {
		return true
	}
	prob := simrand.Clamp(float64(p.Age-rampAge)*0.11, 0, 0.92)
	if p.Age >= 31 && p.Overall() < 2.2 {
		prob += 0.25
	}
	if prob <= 0 {
		return false
	}
	return l.rng.Chance(simrand.Clamp(prob, 0, 0.95))
}

// honorNumber retires the jersey when the franchise thresholds are met.
func (l *League) honorNumber(t *models.Team, p *models.Player) bool {
	seasonsWith, cupsWith := 0, 0
	gpWith, goalsWith, pointsWith := 0, 0, 0
	goalieWith := models.GoalieRecord{}
	for _, s := range p.CareerSeasons {
		if s.Team != t.Name {
			continue
		}
		seasonsWith++
		gpWith += s.GamesPlayed
		goalsWith += s.Goals
		pointsWith += s.Points
		goalieWith.Wins += s.Goalie.Wins
		goalieWith.Shutouts += s.Goalie.Shutouts
		if s.WonCup {
			cupsWith++
		}
	}
	if seasonsWith < 6 {
		return false
	}

	qualifies := false
	if p.Position == models.Goalie {
		qualifies = goalieWith.Wins >= 350 || goalieWith.Shutouts >= 55
	} else {
		qualifies = pointsWith >= 950 ||
			goalsWith >= 500 ||
			(gpWith >= 700 && (pointsWith >= 650 || goalsWith >= 280)) ||
			(cupsWith >= 2 && pointsWith >= 620)
	}
	if !qualifies || p.JerseyNumber == 0 {
		return false
	}

	t.RetiredNumbers = append(t.RetiredNumbers, models.RetiredNumber{
		Number:        p.JerseyNumber,
		PlayerName:    p.Name,
		SeasonRetired: l.SeasonNumber,
	})
	if l.log != nil {
		l.log.WithField("team", t.Name).WithField("player", p.Name).
			WithField("number", p.JerseyNumber).Info("Jersey number retired")
	}
	return true
}

func (l *League) hallEntry(p *models.Player, lastTeam string, honored bool) models.HallOfFameEntry {
	gp, goals, assists, points := p.CareerTotals()
	cups := 0
	for _, s := range p.CareerSeasons {
		if s.WonCup {
			cups++
		}
	}
	return models.HallOfFameEntry{
		PlayerID:      p.ID,
		Name:          p.Name,
		Position:      p.Position,
		RetiredSeason: l.SeasonNumber,
		RetiredAge:    p.Age,
		LastTeam:      lastTeam,
		Seasons:       len(p.CareerSeasons),
		GamesPlayed:   gp,
		Goals:         goals,
		Assists:       assists,
		Points:        points,
		Goalie:        p.CareerGoalieTotals(),
		CupsWon:       cups,
		NumberRetired: honored,
		CareerSeasons: p.CareerSeasons,
	}
}

// topUpRoster promotes the best minors until the active roster is full
// again after retirements.
func (l *League) topUpRoster(t *models.Team) {
	for len(t.Roster) < models.MaxRoster {
		if l.promoteBestMinor(t, func(*models.Player) bool { return true }) == nil {
			break
		}
	}
}

// replenishMinors generates filler until the farm floor is met.
func (l *League) replenishMinors(t *models.Team) {
	fillPlan := []models.Position{
		models.Center, models.LeftWing, models.RightWing,
		models.Defense, models.Defense, models.Goalie,
	}
	i := 0
	for len(t.MinorRoster) < models.MinMinor {
		p := l.GeneratePlayer(fillPlan[i%len(fillPlan)], -0.5)
		p.TeamName = t.Name
		t.MinorRoster = append(t.MinorRoster, p)
		i++
	}
	l.assignJerseyNumbers(t)
}

// runCoachTurnover ages the benches and replaces retirees.
func (l *League) runCoachTurnover() []CoachChange {
	var changes []CoachChange
	for _, t := range l.Teams {
		t.Coach.Age++
		t.Coach.TenureSeasons++

		if l.rng.Chance(coachRetireProb(t.Coach)) {
			old := t.Coach.Name
			hire := l.generateCoach(0.2)
			hire.HoneymoonGames = 24
			t.Coach = hire
			changes = append(changes, CoachChange{Team: t.Name, Retired: old, Hired: hire.Name})
		}

		if t.CoachChangesRecent > 0 {
			t.CoachChangesRecent--
		}
	}

	// Refill the hiring pool for next season's midyear firings.
	for i := 0; i < len(l.CoachPool); i++ {
		l.CoachPool[i].Age++
	}
	for len(l.CoachPool) < 12 {
		l.CoachPool = append(l.CoachPool, l.generateCoach(0))
	}
	return changes
}

// coachRetireProb stays near zero until 58 and approaches certainty in
// the early 70s.
func coachRetireProb(c models.Coach) float64 {
	if c.Age < 58 {
		return 0
	}
	return simrand.Clamp(
		0.05+float64(c.Age-58)*0.075+float64(c.TenureSeasons)*0.004-(c.Rating-3.0)*0.04,
		0, 0.95)
}

// resetForNewSeason clears the season counters and rolls the calendar.
func (l *League) resetForNewSeason() {
	l.AllPlayers(func(p *models.Player, _ string) {
		p.ResetSeasonStats()
		p.RecentStarts = nil
		p.PlayingToday = false
		p.ReplacementFor = ""
	})

	l.Records = make(map[string]*models.TeamRecord, len(l.Teams))
	for _, t := range l.Teams {
		l.Records[t.Name] = &models.TeamRecord{}
		t.DressedPlayerNames = nil
		t.LineAssignments = nil
		t.StartingGoalie = ""
		t.LineupPositionPenalty = 0
	}

	l.SeasonNumber++
	l.DayIndex = 0
	l.PendingPlayoffs = nil
	l.PendingPlayoffDays = nil
	l.PendingPlayoffDayIndex = 0
	l.PendingDraft = nil
	l.rebuildSchedule()
	l.RefreshTeamNeeds()
}
