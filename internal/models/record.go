package models

import "fmt"

// TeamRecord is a team's per-season running tally.
type TeamRecord struct {
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
	OTLosses int `json:"ot_losses"`

	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`

	HomeWins     int `json:"home_wins"`
	HomeLosses   int `json:"home_losses"`
	HomeOTLosses int `json:"home_ot_losses"`
	AwayWins     int `json:"away_wins"`
	AwayLosses   int `json:"away_losses"`
	AwayOTLosses int `json:"away_ot_losses"`

	PPGoals          int `json:"pp_goals"`
	PPChances        int `json:"pp_chances"`
	PKGoalsAgainst   int `json:"pk_goals_against"`
	PKChancesAgainst int `json:"pk_chances_against"`

	// RecentResults keeps the last 10 outcomes, oldest first: "W", "L", "OTL".
	RecentResults []string `json:"recent_results,omitempty"`
}

// GamesPlayed is the total of all decisions.
func (r TeamRecord) GamesPlayed() int {
	return r.Wins + r.Losses + r.OTLosses
}

// Points is 2 per win plus 1 per overtime loss.
func (r TeamRecord) Points() int {
	return 2*r.Wins + r.OTLosses
}

// PointPct is points over points available.
func (r TeamRecord) PointPct() float64 {
	gp := r.GamesPlayed()
	if gp == 0 {
		return 0
	}
	return float64(r.Points()) / float64(2*gp)
}

// GoalDiff is goals for minus goals against.
func (r TeamRecord) GoalDiff() int {
	return r.GoalsFor - r.GoalsAgainst
}

// PPPct is power-play conversion.
func (r TeamRecord) PPPct() float64 {
	if r.PPChances == 0 {
		return 0
	}
	return float64(r.PPGoals) / float64(r.PPChances)
}

// PKPct is penalty-kill success.
func (r TeamRecord) PKPct() float64 {
	if r.PKChancesAgainst == 0 {
		return 0
	}
	return 1 - float64(r.PKGoalsAgainst)/float64(r.PKChancesAgainst)
}

// RecordResult appends an outcome, trimming the window to the last 10.
func (r *TeamRecord) RecordResult(result string) {
	r.RecentResults = append(r.RecentResults, result)
	if len(r.RecentResults) > 10 {
		r.RecentResults = r.RecentResults[len(r.RecentResults)-10:]
	}
}

// Last10 counts the recent window as W-L-OTL.
func (r TeamRecord) Last10() (w, l, otl int) {
	for _, res := range r.RecentResults {
		switch res {
		case "W":
			w++
		case "OTL":
			otl++
		default:
			l++
		}
	}
	return w, l, otl
}

// Streak derives the current run from the recent window: consecutive wins
// form "Wk", any run of non-wins forms "Lk".
func (r TeamRecord) Streak() string {
	if len(r.RecentResults) == 0 {
		return "-"
	}
	last := r.RecentResults[len(r.RecentResults)-1]
	winning := last == "W"
	n := 0
	for i := len(r.RecentResults) - 1; i >= 0; i-- {
		isWin := r.RecentResults[i] == "W"
		if isWin != winning {
			break
		}
		n++
	}
	if winning {
		return fmt.Sprintf("W%d", n)
	}
	return fmt.Sprintf("L%d", n)
}
