package models

// GoalEvent is one scored goal with its attribution.
type GoalEvent struct {
	Team      string   `json:"team"`
	Scorer    string   `json:"scorer"`
	Assists   []string `json:"assists,omitempty"`
	PowerPlay bool     `json:"power_play,omitempty"`
}

// Star is one of the game's three stars.
type Star struct {
	Rank   int     `json:"rank"`
	Player string  `json:"player"`
	Team   string  `json:"team"`
	Line   string  `json:"line"`
	Score  float64 `json:"-"`
}

// InjuryEvent is a new injury suffered during a game.
type InjuryEvent struct {
	Team     string `json:"team"`
	Player   string `json:"player"`
	GamesOut int    `json:"games_out"`
}

// SideStats is one side's special-teams line for a game.
type SideStats struct {
	PPGoals   int `json:"pp_goals"`
	PPChances int `json:"pp_chances"`
}

// GameResult is the full outcome of one simulated game.
type GameResult struct {
	Home string `json:"home"`
	Away string `json:"away"`

	HomeGoals int  `json:"home_goals"`
	AwayGoals int  `json:"away_goals"`
	Overtime  bool `json:"overtime"`

	HomeSpecialTeams SideStats `json:"home_special_teams"`
	AwaySpecialTeams SideStats `json:"away_special_teams"`

	HomeGoalie string `json:"home_goalie,omitempty"`
	AwayGoalie string `json:"away_goalie,omitempty"`

	// Shots faced by each side's starter.
	HomeShotsAgainst int `json:"home_shots_against,omitempty"`
	AwayShotsAgainst int `json:"away_shots_against,omitempty"`

	Goals      []GoalEvent   `json:"goals,omitempty"`
	Injuries   []InjuryEvent `json:"injuries,omitempty"`
	ThreeStars []Star        `json:"three_stars,omitempty"`

	Attendance int `json:"attendance,omitempty"`
}

// Winner returns the winning team name.
func (g GameResult) Winner() string {
	if g.HomeGoals > g.AwayGoals {
		return g.Home
	}
	return g.Away
}

// Loser returns the losing team name.
func (g GameResult) Loser() string {
	if g.HomeGoals > g.AwayGoals {
		return g.Away
	}
	return g.Home
}
