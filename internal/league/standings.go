package league

import (
	"fmt"
	"sort"

	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/schedule"
)

// StandingsRow is one projected line of a standings table.
type StandingsRow struct {
	Team       string  `json:"team"`
	Abbrev     string  `json:"abbrev"`
	Division   string  `json:"division"`
	Conference string  `json:"conference"`
	GP         int     `json:"gp"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	OTLosses   int     `json:"ot_losses"`
	Points     int     `json:"points"`
	PointPct   float64 `json:"point_pct"`
	GoalsFor   int     `json:"goals_for"`
	GoalsAgnst int     `json:"goals_against"`
	GoalDiff   int     `json:"goal_diff"`
	Last10     string  `json:"last_10"`
	Streak     string  `json:"streak"`
	Clinch     string  `json:"clinch,omitempty"` // x, y, z, p
}

// Standings modes.
const (
	StandingsLeague     = "league"
	StandingsConference = "conference"
	StandingsDivision   = "division"
	StandingsWildcard   = "wildcard"
)

// sortTeamNames orders team names by (points desc, goal diff desc, goals
// for desc), with name as the stable final tiebreak.
func (l *League) sortTeamNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		a, b := l.RecordOf(names[i]), l.RecordOf(names[j])
		if a.Points() != b.Points() {
			return a.Points() > b.Points()
		}
		if a.GoalDiff() != b.GoalDiff() {
			return a.GoalDiff() > b.GoalDiff()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return names[i] < names[j]
	})
}

func (l *League) teamNamesWhere(match func(*models.Team) bool) []string {
	var out []string
	for _, t := range l.Teams {
		if match(t) {
			out = append(out, t.Name)
		}
	}
	l.sortTeamNames(out)
	return out
}

// Standings builds the requested standings view.
func (l *League) Standings(mode, value string) []StandingsRow {
	var names []string
	switch mode {
	case StandingsConference:
		names = l.teamNamesWhere(func(t *models.Team) bool { return t.Conference == value })
	case StandingsDivision:
		names = l.teamNamesWhere(func(t *models.Team) bool { return t.Division == value })
	case StandingsWildcard:
		names = l.wildcardOrder(value)
	default:
		names = l.teamNamesWhere(func(t *models.Team) bool { return true })
	}

	clinches := l.clinchTags()
	rows := make([]StandingsRow, 0, len(names))
	for _, name := range names {
		t := l.TeamByName(name)
		rec := l.RecordOf(name)
		w, lo, otl := rec.Last10()
		rows = append(rows, StandingsRow{
			Team:       name,
			Abbrev:     t.Abbrev,
			Division:   t.Division,
			Conference: t.Conference,
			GP:         rec.GamesPlayed(),
			Wins:       rec.Wins,
			Losses:     rec.Losses,
			OTLosses:   rec.OTLosses,
			Points:     rec.Points(),
			PointPct:   rec.PointPct(),
			GoalsFor:   rec.GoalsFor,
			GoalsAgnst: rec.GoalsAgainst,
			GoalDiff:   rec.GoalDiff(),
			Last10:     formatLast10(w, lo, otl),
			Streak:     rec.Streak(),
			Clinch:     clinches[name],
		})
	}
	return rows
}

func formatLast10(w, l, otl int) string {
	return fmt.Sprintf("%d-%d-%d", w, l, otl)
}

// wildcardOrder lists a conference's non-top-3 teams in wildcard order,
// after the two division blocks.
func (l *League) wildcardOrder(conference string) []string {
	qualifiedByDiv, remaining := l.conferenceSplit(conference)
	var out []string
	for _, div := range l.conferenceDivisions(conference) {
		out = append(out, qualifiedByDiv[div]...)
	}
	out = append(out, remaining...)
	return out
}

// conferenceDivisions lists the division names of a conference in a
// stable order.
func (l *League) conferenceDivisions(conference string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range l.Teams {
		if t.Conference == conference && !seen[t.Division] {
			seen[t.Division] = true
			out = append(out, t.Division)
		}
	}
	sort.Strings(out)
	return out
}

// conferenceSplit returns each division's top 3 plus the remaining
// conference teams in order.
func (l *League) conferenceSplit(conference string) (map[string][]string, []string) {
	topByDiv := make(map[string][]string)
	var remaining []string
	for _, div := range l.conferenceDivisions(conference) {
		divNames := l.teamNamesWhere(func(t *models.Team) bool { return t.Division == div && t.Conference == conference })
		cut := 3
		if cut > len(divNames) {
			cut = len(divNames)
		}
		topByDiv[div] = divNames[:cut]
		remaining = append(remaining, divNames[cut:]...)
	}
	l.sortTeamNames(remaining)
	return topByDiv, remaining
}

// divisionRank is a team's 1-based rank within its division.
func (l *League) divisionRank(t *models.Team) int {
	divNames := l.teamNamesWhere(func(other *models.Team) bool { return other.Division == t.Division })
	for i, name := range divNames {
		if name == t.Name {
			return i + 1
		}
	}
	return len(divNames)
}

// clinchTags derives x/y/z/p markers from remaining possible points:
// p = best record in league, z = conference, y = division, x = playoff
// berth. A tag only appears once the math is settled.
func (l *League) clinchTags() map[string]string {
	total := schedule.TotalGamesPerTeam(len(l.Teams), l.GamesPerMatchup)
	maxPoints := func(name string) int {
		rec := l.RecordOf(name)
		remaining := total - rec.GamesPlayed()
		if remaining < 0 {
			remaining = 0
		}
		return rec.Points() + 2*remaining
	}

	tags := make(map[string]string)
	for _, t := range l.Teams {
		pts := l.RecordOf(t.Name).Points()

		beats := func(match func(*models.Team) bool) bool {
			for _, other := range l.Teams {
				if other.Name == t.Name || !match(other) {
					continue
				}
				if maxPoints(other.Name) >= pts {
					return false
				}
			}
			return true
		}

		switch {
		case beats(func(*models.Team) bool { return true }):
			tags[t.Name] = "p"
		case beats(func(o *models.Team) bool { return o.Conference == t.Conference }):
			tags[t.Name] = "z"
		case beats(func(o *models.Team) bool { return o.Division == t.Division }):
			tags[t.Name] = "y"
		case l.clinchedBerth(t, maxPoints):
			tags[t.Name] = "x"
		}
	}
	return tags
}

// clinchedBerth checks whether at most 7 other conference teams can still
// reach this team's point total.
func (l *League) clinchedBerth(t *models.Team, maxPoints func(string) int) bool {
	pts := l.RecordOf(t.Name).Points()
	canCatch := 0
	for _, other := range l.Teams {
		if other.Name == t.Name || other.Conference != t.Conference {
			continue
		}
		if maxPoints(other.Name) >= pts {
			canCatch++
		}
	}
	return canCatch <= 7
}

// finalStandingsWorstFirst orders all teams for draft purposes.
func (l *League) finalStandingsWorstFirst() []string {
	names := l.teamNamesWhere(func(*models.Team) bool { return true })
	// reverse
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}
