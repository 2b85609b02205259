package models

// SkaterLeader is one line of a season's scoring race.
type SkaterLeader struct {
	Player string `json:"player"`
	Team   string `json:"team"`
	GP     int    `json:"gp"`
	Goals  int    `json:"goals"`
	Points int    `json:"points"`
}

// GoalieLeader is one line of a season's goaltending leaderboard.
type GoalieLeader struct {
	Player  string  `json:"player"`
	Team    string  `json:"team"`
	GP      int     `json:"gp"`
	Wins    int     `json:"wins"`
	SavePct float64 `json:"save_pct"`
	GAA     float64 `json:"gaa"`
}

// SeasonHistoryEntry is one completed season's permanent record.
type SeasonHistoryEntry struct {
	Season         int                   `json:"season"`
	CupName        string                `json:"cup_name"`
	Champion       string                `json:"champion"`
	PlayoffMVP     string                `json:"playoff_mvp,omitempty"`
	FinalStandings []string              `json:"final_standings"` // best first
	Records        map[string]TeamRecord `json:"records"`
	TopScorers     []SkaterLeader        `json:"top_scorers,omitempty"`
	TopGoalies     []GoalieLeader        `json:"top_goalies,omitempty"`
	CoachesByTeam  map[string]string     `json:"coaches_by_team,omitempty"`
	CaptainsByTeam map[string]string     `json:"captains_by_team,omitempty"`
	Bracket        *PlayoffBracket       `json:"bracket,omitempty"`
}

// HallOfFameEntry is the permanent record of a retired player.
type HallOfFameEntry struct {
	PlayerID      string       `json:"player_id"`
	Name          string       `json:"name"`
	Position      Position     `json:"position"`
	RetiredSeason int          `json:"retired_season"`
	RetiredAge    int          `json:"retired_age"`
	LastTeam      string       `json:"last_team,omitempty"`
	Seasons       int          `json:"seasons"`
	GamesPlayed   int          `json:"games_played"`
	Goals         int          `json:"goals"`
	Assists       int          `json:"assists"`
	Points        int          `json:"points"`
	Goalie        GoalieRecord `json:"goalie,omitempty"`
	CupsWon       int          `json:"cups_won"`
	NumberRetired bool         `json:"number_retired,omitempty"`
	CareerSeasons []SeasonLine `json:"career_seasons,omitempty"`
}
