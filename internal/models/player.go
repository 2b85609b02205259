package models

// Position is a player's natural position.
type Position string

const (
	Center     Position = "C"
	LeftWing   Position = "LW"
	RightWing  Position = "RW"
	Defense    Position = "D"
	Goalie     Position = "G"
)

// IsForward reports whether the position is C, LW or RW.
func (p Position) IsForward() bool {
	return p == Center || p == LeftWing || p == RightWing
}

// IsSkater reports whether the position is any non-goalie position.
func (p Position) IsSkater() bool {
	return p != Goalie
}

// InjuryStatus is the roster availability state of a player.
type InjuryStatus string

const (
	StatusHealthy  InjuryStatus = "Healthy"
	StatusDayToDay InjuryStatus = "DTD"
	StatusIR       InjuryStatus = "IR"
)

// ContractType classifies the deal a player is on.
type ContractType string

const (
	ContractEntry   ContractType = "entry"
	ContractBridge  ContractType = "bridge"
	ContractCore    ContractType = "core"
	ContractVeteran ContractType = "veteran"
)

// Contract is the player's current deal.
type Contract struct {
	YearsLeft           int          `json:"years_left"`
	CapHit              float64      `json:"cap_hit"`
	Type                ContractType `json:"type"`
	IsRFA               bool         `json:"is_rfa"`
	FreeAgentOriginTeam string       `json:"free_agent_origin_team,omitempty"`
}

// DraftInfo records where a player was drafted, if anywhere.
type DraftInfo struct {
	Season  int    `json:"season,omitempty"`
	Round   int    `json:"round,omitempty"`
	Overall int    `json:"overall,omitempty"`
	Team    string `json:"team,omitempty"`
}

// ProspectTier is a prospect's current development level.
type ProspectTier string

const (
	TierNHL    ProspectTier = "NHL"
	TierAHL    ProspectTier = "AHL"
	TierJunior ProspectTier = "Junior"
)

// Prospect carries the development attributes of a drafted player that has
// not yet resolved into his NHL form.
type Prospect struct {
	Tier         ProspectTier `json:"tier"`
	SeasonsToNHL int          `json:"seasons_to_nhl"`
	Potential    float64      `json:"potential"`
	BoomChance   float64      `json:"boom_chance"`
	BustChance   float64      `json:"bust_chance"`
	Resolved     bool         `json:"resolved"`
}

// GoalieRecord is a goaltender's per-season counting line.
type GoalieRecord struct {
	GamesPlayed  int `json:"games_played"`
	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
	OTLosses     int `json:"ot_losses"`
	Shutouts     int `json:"shutouts"`
	ShotsAgainst int `json:"shots_against"`
	Saves        int `json:"saves"`
	GoalsAgainst int `json:"goals_against"`
}

// SavePct returns the save percentage, 0 when no shots were faced.
func (g GoalieRecord) SavePct() float64 {
	if g.ShotsAgainst == 0 {
		return 0
	}
	return float64(g.Saves) / float64(g.ShotsAgainst)
}

// GAA returns goals against per game played.
func (g GoalieRecord) GAA() float64 {
	if g.GamesPlayed == 0 {
		return 0
	}
	return float64(g.GoalsAgainst) / float64(g.GamesPlayed)
}

// GoalieStart is one start's line, kept in a short recency window for
// starter-selection decisions.
type GoalieStart struct {
	SavePct      float64 `json:"save_pct"`
	GoalsAgainst int     `json:"goals_against"`
	Won          bool    `json:"won"`
}

// SeasonLine is one season's snapshot appended to a player's career log.
type SeasonLine struct {
	Season      int          `json:"season"`
	Team        string       `json:"team"`
	Position    Position     `json:"position"`
	Age         int          `json:"age"`
	GamesPlayed int          `json:"games_played"`
	Goals       int          `json:"goals"`
	Assists     int          `json:"assists"`
	Points      int          `json:"points"`
	Goalie      GoalieRecord `json:"goalie,omitempty"`
	WonCup      bool         `json:"won_cup,omitempty"`
}

// TradePreference marks how the owning GM treats a player on the market.
type TradePreference string

const (
	TradeOpen        TradePreference = ""
	TradeUntouchable TradePreference = "untouchable"
	TradeShop        TradePreference = "shop"
)

// Skill rating bounds. Every mutation of a rating clamps to this range.
const (
	SkillMin = 0.3
	SkillMax = 5.0
)

// Player is a league player. Players live on exactly one of: a team's
// active roster, a team's minor roster, or the free-agent pool.
type Player struct {
	ID           string   `json:"player_id"`
	Name         string   `json:"name"`
	TeamName     string   `json:"team_name,omitempty"`
	Position     Position `json:"position"`
	JerseyNumber int      `json:"jersey_number,omitempty"` // 0 means unassigned

	Shooting    float64 `json:"shooting"`
	Playmaking  float64 `json:"playmaking"`
	Defense     float64 `json:"defense"`
	Goaltending float64 `json:"goaltending"`
	Physical    float64 `json:"physical"`
	Durability  float64 `json:"durability"`

	Age      int `json:"age"`
	PrimeAge int `json:"prime_age"`

	GamesPlayed int `json:"games_played"`
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`

	Injuries              int          `json:"injuries"`
	GamesMissed           int          `json:"games_missed"`
	InjuredGamesRemaining int          `json:"injured_games_remaining"`
	InjuryStatus          InjuryStatus `json:"injury_status"`
	PlayingToday          bool         `json:"playing_today,omitempty"` // DTD coach call, reset daily
	ReplacementFor        string       `json:"replacement_for,omitempty"`

	GoalieStats  GoalieRecord  `json:"goalie_stats"`
	RecentStarts []GoalieStart `json:"recent_starts,omitempty"` // last 5, newest last

	Draft     DraftInfo       `json:"draft,omitempty"`
	Prospect  *Prospect       `json:"prospect,omitempty"`
	Contract  Contract        `json:"contract"`
	TradePref TradePreference `json:"trade_preference,omitempty"`

	CareerSeasons []SeasonLine `json:"career_seasons,omitempty"`
}

// Points is always goals + assists.
func (p *Player) Points() int {
	return p.Goals + p.Assists
}

// IsInjured reports whether the player cannot dress today without a DTD
// call: true iff a recovery timer is running and the status is not DTD.
func (p *Player) IsInjured() bool {
	return p.InjuredGamesRemaining > 0 && p.InjuryStatus != StatusDayToDay
}

// Available reports whether the player can be dressed for today's game.
func (p *Player) Available() bool {
	if p.InjuredGamesRemaining <= 0 {
		return true
	}
	return p.InjuryStatus == StatusDayToDay && p.PlayingToday
}

// ClampSkills bounds every rating to [SkillMin, SkillMax].
func (p *Player) ClampSkills() {
	clamp := func(v *float64) {
		if *v < SkillMin {
			*v = SkillMin
		}
		if *v > SkillMax {
			*v = SkillMax
		}
	}
	clamp(&p.Shooting)
	clamp(&p.Playmaking)
	clamp(&p.Defense)
	clamp(&p.Goaltending)
	clamp(&p.Physical)
	clamp(&p.Durability)
}

// SkaterOverall is the blended rating used for valuation and depth sorting.
func (p *Player) SkaterOverall() float64 {
	if p.Position == Defense {
		return 0.30*p.Shooting + 0.25*p.Playmaking + 0.35*p.Defense + 0.10*p.Physical
	}
	return 0.40*p.Shooting + 0.32*p.Playmaking + 0.18*p.Defense + 0.10*p.Physical
}

// Overall dispatches to the positional rating.
func (p *Player) Overall() float64 {
	if p.Position == Goalie {
		return p.Goaltending
	}
	return p.SkaterOverall()
}

// ResetSeasonStats clears the per-season counters after the offseason has
// snapshotted them into CareerSeasons.
func (p *Player) ResetSeasonStats() {
	p.GamesPlayed = 0
	p.Goals = 0
	p.Assists = 0
	p.Injuries = 0
	p.GamesMissed = 0
	p.GoalieStats = GoalieRecord{}
}

// SeasonSnapshot captures the current season counters into a SeasonLine.
func (p *Player) SeasonSnapshot(season int, wonCup bool) SeasonLine {
	return SeasonLine{
		Season:      season,
		Team:        p.TeamName,
		Position:    p.Position,
		Age:         p.Age,
		GamesPlayed: p.GamesPlayed,
		Goals:       p.Goals,
		Assists:     p.Assists,
		Points:      p.Points(),
		Goalie:      p.GoalieStats,
		WonCup:      wonCup,
	}
}

// CareerTotals sums the career log plus the running season.
func (p *Player) CareerTotals() (gp, goals, assists, points int) {
	for _, s := range p.CareerSeasons {
		gp += s.GamesPlayed
		goals += s.Goals
		assists += s.Assists
		points += s.Points
	}
	gp += p.GamesPlayed
	goals += p.Goals
	assists += p.Assists
	points += p.Points()
	return gp, goals, assists, points
}

// CareerGoalieTotals sums goalie counters across the career log plus the
// running season.
func (p *Player) CareerGoalieTotals() GoalieRecord {
	total := GoalieRecord{}
	add := func(g GoalieRecord) {
		total.GamesPlayed += g.GamesPlayed
		total.Wins += g.Wins
		total.Losses += g.Losses
		total.OTLosses += g.OTLosses
		total.Shutouts += g.Shutouts
		total.ShotsAgainst += g.ShotsAgainst
		total.Saves += g.Saves
		total.GoalsAgainst += g.GoalsAgainst
	}
	for _, s := range p.CareerSeasons {
		add(s.Goalie)
	}
	add(p.GoalieStats)
	return total
}
