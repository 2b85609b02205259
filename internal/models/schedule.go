package models

// Matchup is one scheduled game.
type Matchup struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// ScheduleDay is the set of games on one calendar day. A team appears at
// most once per day.
type ScheduleDay []Matchup

// TeamsPlaying returns the set of team names scheduled on the day.
func (d ScheduleDay) TeamsPlaying() map[string]bool {
	out := make(map[string]bool, len(d)*2)
	for _, m := range d {
		out[m.Home] = true
		out[m.Away] = true
	}
	return out
}

// HasTeam reports whether a team plays on the day.
func (d ScheduleDay) HasTeam(name string) bool {
	for _, m := range d {
		if m.Home == name || m.Away == name {
			return true
		}
	}
	return false
}
