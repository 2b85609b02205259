package league

import (
	"github.com/sirupsen/logrus"

	"github.com/openice/rinkrat/internal/gamesim"
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/names"
	"github.com/openice/rinkrat/internal/schedule"
	"github.com/openice/rinkrat/internal/simrand"
)

// franchise seeds for a fresh 24-team world: 2 conferences, 4 divisions.
type franchiseSeed struct {
	name       string
	abbrev     string
	division   string
	conference string
}

var defaultFranchises = []franchiseSeed{
	{"Harborview Admirals", "HVA", "Atlantic", "East"},
	{"Granite Bay Miners", "GBM", "Atlantic", "East"},
	{"Port Caldwell Mariners", "PCM", "Atlantic", "East"},
	{"Redstone Chargers", "RSC", "Atlantic", "East"},
	{"Black River Otters", "BRO", "Atlantic", "East"},
	{"Fairbanks Aurora", "FBA", "Atlantic", "East"},
	{"Ironwood Lumberjacks", "IWL", "Metropolitan", "East"},
	{"Coventry Kings", "CVK", "Metropolitan", "East"},
	{"Stonebridge Bears", "SBB", "Metropolitan", "East"},
	{"Marrow Falls Phantoms", "MFP", "Metropolitan", "East"},
	{"Easton Royals", "ETR", "Metropolitan", "East"},
	{"Violet Hill Vipers", "VHV", "Metropolitan", "East"},
	{"Cascade Wolves", "CSW", "Central", "West"},
	{"Dunmore Bison", "DNB", "Central", "West"},
	{"Silver Creek Scouts", "SCS", "Central", "West"},
	{"Larkspur Stampede", "LKS", "Central", "West"},
	{"North Hollow Glaciers", "NHG", "Central", "West"},
	{"Prairie Gate Hawks", "PGH", "Central", "West"},
	{"Westport Breakers", "WPB", "Pacific", "West"},
	{"Sundance Rattlers", "SDR", "Pacific", "West"},
	{"Kodiak Point Grizzlies", "KPG", "Pacific", "West"},
	{"Bayshore Barracudas", "BSB", "Pacific", "West"},
	{"Monarch Summit Eagles", "MSE", "Pacific", "West"},
	{"Tidewater Storm", "TWS", "Pacific", "West"},
}

// GenesisOptions tune a fresh world.
type GenesisOptions struct {
	Seed            uint64
	GamesPerMatchup int
	Density         float64
}

// NewLeague seeds a fresh world at season 1, day 0.
func NewLeague(opts GenesisOptions, log *logrus.Logger) *League {
	if opts.GamesPerMatchup < 1 {
		opts.GamesPerMatchup = 2
	}
	if opts.Density == 0 {
		opts.Density = schedule.DefaultDensity
	}

	l := &League{
		Seed:             opts.Seed,
		SeasonNumber:     1,
		DayIndex:         0,
		Records:          make(map[string]*models.TeamRecord),
		GamesPerMatchup:  opts.GamesPerMatchup,
		Density:          opts.Density,
		DraftFocusByTeam: make(map[string]string),
		TeamNeedsByTeam:  make(map[string]map[string]float64),
	}
	l.rng = simrand.New(opts.Seed)
	l.gen = names.NewGenerator(l.rng)
	l.log = log
	l.engine = gamesim.New(l.rng, log)

	for _, fs := range defaultFranchises {
		t := l.generateTeam(fs)
		l.Teams = append(l.Teams, t)
		l.Records[t.Name] = &models.TeamRecord{}
	}
	for i := 0; i < 12; i++ {
		l.CoachPool = append(l.CoachPool, l.generateCoach(0))
	}

	l.rebuildSchedule()
	l.RefreshTeamNeeds()

	if log != nil {
		log.WithFields(logrus.Fields{
			"teams": len(l.Teams),
			"days":  len(l.Days),
			"seed":  opts.Seed,
		}).Info("New league world seeded")
	}
	return l
}

func (l *League) rebuildSchedule() {
	teamNames := make([]string, len(l.Teams))
	for i, t := range l.Teams {
		teamNames[i] = t.Name
	}
	l.Days = schedule.Build(teamNames, l.GamesPerMatchup, l.Density)
}

func (l *League) generateTeam(fs franchiseSeed) *models.Team {
	t := &models.Team{
		Name:          fs.name,
		Abbrev:        fs.abbrev,
		Division:      fs.division,
		Conference:    fs.conference,
		ArenaCapacity: 9500 + l.rng.Intn(12500),
		Coach:         l.generateCoach(0),
	}

	// 22-man active roster: 13 forwards, 7 defensemen, 2 goalies.
	rosterPlan := []models.Position{
		models.Center, models.Center, models.Center, models.Center,
		models.LeftWing, models.LeftWing, models.LeftWing, models.LeftWing,
		models.RightWing, models.RightWing, models.RightWing, models.RightWing,
		models.Center,
		models.Defense, models.Defense, models.Defense, models.Defense,
		models.Defense, models.Defense, models.Defense,
		models.Goalie, models.Goalie,
	}
	for _, pos := range rosterPlan {
		p := l.GeneratePlayer(pos, 0)
		p.TeamName = t.Name
		t.Roster = append(t.Roster, p)
	}

	// 10-man minor roster: 6 forwards, 3 defensemen, 1 goalie.
	minorPlan := []models.Position{
		models.Center, models.LeftWing, models.RightWing,
		models.Center, models.LeftWing, models.RightWing,
		models.Defense, models.Defense, models.Defense,
		models.Goalie,
	}
	for _, pos := range minorPlan {
		p := l.GeneratePlayer(pos, -0.5)
		p.TeamName = t.Name
		t.MinorRoster = append(t.MinorRoster, p)
	}

	l.assignJerseyNumbers(t)
	return t
}

// GeneratePlayer mints a new player at a position. Bias shifts the rating
// center: negative for minor-league filler, positive for draft steals.
func (l *League) GeneratePlayer(pos models.Position, bias float64) *models.Player {
	age := 19 + l.rng.Intn(17)
	prime := 24 + l.rng.Intn(7)
	center := 2.7 + bias + l.rng.Range(-0.5, 0.6)

	roll := func(spread float64) float64 {
		return simrand.Clamp(center+l.rng.Range(-spread, spread), models.SkillMin, models.SkillMax)
	}

	p := &models.Player{
		ID:           names.NewID(),
		Name:         l.gen.PlayerName(),
		Position:     pos,
		Age:          age,
		PrimeAge:     prime,
		InjuryStatus: models.StatusHealthy,
		Shooting:     roll(0.55),
		Playmaking:   roll(0.55),
		Defense:      roll(0.55),
		Goaltending:  simrand.Clamp(0.6+l.rng.Range(0, 0.5), models.SkillMin, models.SkillMax),
		Physical:     roll(0.6),
		Durability:   simrand.Clamp(2.4+l.rng.Range(0, 2.2), models.SkillMin, models.SkillMax),
	}
	if pos == models.Goalie {
		p.Goaltending = roll(0.5)
		p.Shooting = simrand.Clamp(0.5+l.rng.Range(0, 0.4), models.SkillMin, models.SkillMax)
		p.Playmaking = simrand.Clamp(0.6+l.rng.Range(0, 0.5), models.SkillMin, models.SkillMax)
	} else if pos == models.Defense {
		p.Defense = simrand.Clamp(p.Defense+0.25, models.SkillMin, models.SkillMax)
	}
	p.ClampSkills()
	p.Contract = l.rollContract(p)
	return p
}

func (l *League) rollContract(p *models.Player) models.Contract {
	years := 1 + l.rng.Intn(5)
	capHit := simrand.Clamp(0.8+(p.Overall()-1.5)*2.4+l.rng.Range(-0.4, 0.6), 0.75, 11.5)
	ctype := models.ContractBridge
	switch {
	case p.Age <= 22:
		ctype = models.ContractEntry
		capHit = simrand.Clamp(capHit*0.45, 0.75, 3.0)
	case p.Overall() >= 3.3 && p.Age <= 30:
		ctype = models.ContractCore
	case p.Age >= 31:
		ctype = models.ContractVeteran
	}
	return models.Contract{
		YearsLeft: years,
		CapHit:    capHit,
		Type:      ctype,
		IsRFA:     p.Age <= 24,
	}
}

func (l *League) generateCoach(extraRating float64) models.Coach {
	styles := []models.CoachStyle{models.StyleAggressive, models.StyleBalanced, models.StyleDefensive}
	return models.Coach{
		ID:               names.NewID(),
		Name:             l.gen.CoachName(),
		Age:              38 + l.rng.Intn(26),
		Rating:           simrand.Clamp(2.0+l.rng.Range(0, 2.6)+extraRating, 2.0, 5.0),
		Style:            styles[l.rng.Intn(len(styles))],
		OffenseSpecialty: l.rng.Range(-0.5, 1.0),
		DefenseSpecialty: l.rng.Range(-0.5, 1.0),
	}
}

// assignJerseyNumbers gives every unnumbered player a unique number in
// [1,99], honoring the retired set.
func (l *League) assignJerseyNumbers(t *models.Team) {
	used := t.UsedNumbers()
	assign := func(p *models.Player) {
		if p.JerseyNumber > 0 && !t.NumberRetired(p.JerseyNumber) {
			return
		}
		for attempt := 0; attempt < 200; attempt++ {
			n := 1 + l.rng.Intn(99)
			if !used[n] {
				p.JerseyNumber = n
				used[n] = true
				return
			}
		}
		for n := 1; n <= 99; n++ {
			if !used[n] {
				p.JerseyNumber = n
				used[n] = true
				return
			}
		}
	}
	for _, p := range t.Roster {
		assign(p)
	}
	for _, p := range t.MinorRoster {
		assign(p)
	}
}
