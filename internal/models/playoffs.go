package models

// CupName is the trophy awarded to the playoff champion.
const CupName = "Founders Cup"

// SeriesGame is one game inside a playoff series.
type SeriesGame struct {
	GameNo     int    `json:"game_no"`
	Home       string `json:"home"`
	Away       string `json:"away"`
	HomeGoals  int    `json:"home_goals"`
	AwayGoals  int    `json:"away_goals"`
	Overtime   bool   `json:"overtime"`
	HomeGoalie string `json:"home_goalie,omitempty"`
	AwayGoalie string `json:"away_goalie,omitempty"`
	Attendance int    `json:"attendance,omitempty"`
	ThreeStars []Star `json:"three_stars,omitempty"`
	Winner     string `json:"winner"`
}

// Series is a best-of-7 with 2-2-1-1-1 home pattern.
type Series struct {
	Round      string       `json:"round"`
	HigherSeed string       `json:"higher_seed"`
	LowerSeed  string       `json:"lower_seed"`
	Games      []SeriesGame `json:"games"`
	HigherWins int          `json:"higher_wins"`
	LowerWins  int          `json:"lower_wins"`
	Winner     string       `json:"winner,omitempty"`
}

// HomeTeamForGame applies the 2-2-1-1-1 pattern (games are 1-based).
func (s *Series) HomeTeamForGame(gameNo int) string {
	switch gameNo {
	case 1, 2, 5, 7:
		return s.HigherSeed
	default:
		return s.LowerSeed
	}
}

// Decided reports whether a side has reached 4 wins.
func (s *Series) Decided() bool {
	return s.HigherWins >= 4 || s.LowerWins >= 4
}

// PlayoffRound groups the series of one round.
type PlayoffRound struct {
	Name   string    `json:"name"`
	Series []*Series `json:"series"`
}

// MVPEntry is one candidate line in the playoff MVP race.
type MVPEntry struct {
	Player string  `json:"player"`
	Team   string  `json:"team"`
	Line   string  `json:"line"`
	Score  float64 `json:"score"`
}

// PlayoffBracket is the whole postseason tree.
type PlayoffBracket struct {
	CupName     string          `json:"cup_name"`
	Rounds      []*PlayoffRound `json:"rounds"`
	CupChampion string          `json:"cup_champion,omitempty"`
	MVP         string          `json:"mvp,omitempty"`
	MVPRace     []MVPEntry      `json:"mvp_race,omitempty"`
}

// RoundByName finds a round.
func (b *PlayoffBracket) RoundByName(name string) *PlayoffRound {
	for _, r := range b.Rounds {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// PlayoffDay is one reveal-day: the games across all series played on it.
type PlayoffDay struct {
	Round string       `json:"round"`
	Games []SeriesGame `json:"games"`
}
