package models

// Roster limits enforced on every transition.
const (
	MaxRoster = 22
	MinMinor  = 10

	DressedForwards = 12
	DressedDefense  = 6
	DressedGoalies  = 2
	DressedTotal    = DressedForwards + DressedDefense + DressedGoalies
)

// CoachStyle is a bench boss's system.
type CoachStyle string

const (
	StyleAggressive CoachStyle = "aggressive"
	StyleBalanced   CoachStyle = "balanced"
	StyleDefensive  CoachStyle = "defensive"
)

// Coach is a team's head coach.
type Coach struct {
	ID               string     `json:"coach_id"`
	Name             string     `json:"name"`
	Age              int        `json:"age"`
	Rating           float64    `json:"rating"`
	Style            CoachStyle `json:"style"`
	OffenseSpecialty float64    `json:"offense_specialty"`
	DefenseSpecialty float64    `json:"defense_specialty"`
	TenureSeasons    int        `json:"tenure_seasons"`
	CupsWon          int        `json:"cups_won"`
	HoneymoonGames   int        `json:"honeymoon_games"`
}

// Quality maps the coach rating to [0,1] for decision weighting.
func (c Coach) Quality() float64 {
	q := (c.Rating - 2.0) / 3.0
	if q < 0 {
		return 0
	}
	if q > 1 {
		return 1
	}
	return q
}

// RetiredNumber is a jersey number a franchise never reissues.
type RetiredNumber struct {
	Number        int    `json:"number"`
	PlayerName    string `json:"player_name"`
	SeasonRetired int    `json:"season_retired"`
}

// Line assignment slots, in fill order. Four forward lines, three defense
// pairs, two goalies.
var LineupSlots = []string{
	"L1-LW", "L1-C", "L1-RW",
	"L2-LW", "L2-C", "L2-RW",
	"L3-LW", "L3-C", "L3-RW",
	"L4-LW", "L4-C", "L4-RW",
	"P1-LD", "P1-RD",
	"P2-LD", "P2-RD",
	"P3-LD", "P3-RD",
	"G1", "G2",
}

// SlotPosition returns the natural position a slot calls for.
func SlotPosition(slot string) Position {
	switch {
	case len(slot) >= 2 && slot[:2] == "G1", len(slot) >= 2 && slot[:2] == "G2":
		return Goalie
	}
	switch slot[len(slot)-2:] {
	case "LW":
		return LeftWing
	case "RW":
		return RightWing
	case "LD", "RD":
		return Defense
	}
	if slot[len(slot)-1:] == "C" {
		return Center
	}
	return Center
}

// Team is a franchise: identity, rosters, bench staff and leadership.
type Team struct {
	Name          string `json:"name"`
	Abbrev        string `json:"abbrev"`
	Division      string `json:"division"`
	Conference    string `json:"conference"`
	PrimaryColor  string `json:"primary_color,omitempty"`
	ArenaCapacity int    `json:"arena_capacity"`

	Roster      []*Player `json:"roster"`
	MinorRoster []*Player `json:"minor_roster"`

	DressedPlayerNames []string          `json:"dressed_player_names,omitempty"`
	LineAssignments    map[string]string `json:"line_assignments,omitempty"`
	StartingGoalie     string            `json:"starting_goalie,omitempty"`

	// LineupPositionPenalty is charged against the user team when manual
	// lines put players out of position.
	LineupPositionPenalty float64 `json:"lineup_position_penalty,omitempty"`

	Coach Coach `json:"coach"`
	// CoachChangesRecent decays each season; feeds instability penalties.
	CoachChangesRecent int `json:"coach_changes_recent,omitempty"`

	Captain    string   `json:"captain,omitempty"`
	Assistants []string `json:"assistants,omitempty"`

	RetiredNumbers []RetiredNumber `json:"retired_numbers,omitempty"`

	// PlayoffFinishes holds round-reached labels for recent seasons,
	// newest first ("champion", "cup_final", "conf_final", "round2",
	// "round1", "missed").
	PlayoffFinishes []string `json:"playoff_finishes,omitempty"`
}

// PlayerByName finds a player on the active roster.
func (t *Team) PlayerByName(name string) *Player {
	for _, p := range t.Roster {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// MinorPlayerByName finds a player on the minor roster.
func (t *Team) MinorPlayerByName(name string) *Player {
	for _, p := range t.MinorRoster {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// AnyPlayerByName searches both rosters.
func (t *Team) AnyPlayerByName(name string) *Player {
	if p := t.PlayerByName(name); p != nil {
		return p
	}
	return t.MinorPlayerByName(name)
}

// HealthyRoster returns active-roster players who can dress today.
func (t *Team) HealthyRoster() []*Player {
	out := make([]*Player, 0, len(t.Roster))
	for _, p := range t.Roster {
		if p.Available() {
			out = append(out, p)
		}
	}
	return out
}

// HealthyAtPosition counts available active-roster players at a position.
func (t *Team) HealthyAtPosition(pos Position) int {
	n := 0
	for _, p := range t.Roster {
		if p.Position == pos && p.Available() {
			n++
		}
	}
	return n
}

// HealthyForwards counts available forwards of any wing.
func (t *Team) HealthyForwards() int {
	n := 0
	for _, p := range t.Roster {
		if p.Position.IsForward() && p.Available() {
			n++
		}
	}
	return n
}

// Dressed returns the active-roster players named in the dressed set.
func (t *Team) Dressed() []*Player {
	out := make([]*Player, 0, len(t.DressedPlayerNames))
	for _, name := range t.DressedPlayerNames {
		if p := t.PlayerByName(name); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// UsedNumbers collects jersey numbers taken across both rosters and the
// retired set.
func (t *Team) UsedNumbers() map[int]bool {
	used := make(map[int]bool)
	for _, p := range t.Roster {
		if p.JerseyNumber > 0 {
			used[p.JerseyNumber] = true
		}
	}
	for _, p := range t.MinorRoster {
		if p.JerseyNumber > 0 {
			used[p.JerseyNumber] = true
		}
	}
	for _, rn := range t.RetiredNumbers {
		used[rn.Number] = true
	}
	return used
}

// NumberRetired reports whether a jersey number is in the retired set.
func (t *Team) NumberRetired(n int) bool {
	for _, rn := range t.RetiredNumbers {
		if rn.Number == n {
			return true
		}
	}
	return false
}

// RemoveFromRoster detaches a player from the active roster. Returns false
// when the player is not on it.
func (t *Team) RemoveFromRoster(name string) bool {
	for i, p := range t.Roster {
		if p.Name == name {
			t.Roster = append(t.Roster[:i], t.Roster[i+1:]...)
			t.scrubName(name)
			return true
		}
	}
	return false
}

// RemoveFromMinors detaches a player from the minor roster.
func (t *Team) RemoveFromMinors(name string) bool {
	for i, p := range t.MinorRoster {
		if p.Name == name {
			t.MinorRoster = append(t.MinorRoster[:i], t.MinorRoster[i+1:]...)
			return true
		}
	}
	return false
}

// scrubName clears every lineup reference to a departed player.
func (t *Team) scrubName(name string) {
	for i, dn := range t.DressedPlayerNames {
		if dn == name {
			t.DressedPlayerNames = append(t.DressedPlayerNames[:i], t.DressedPlayerNames[i+1:]...)
			break
		}
	}
	for slot, assigned := range t.LineAssignments {
		if assigned == name {
			delete(t.LineAssignments, slot)
		}
	}
	if t.StartingGoalie == name {
		t.StartingGoalie = ""
	}
	if t.Captain == name {
		t.Captain = ""
	}
	for i, a := range t.Assistants {
		if a == name {
			t.Assistants = append(t.Assistants[:i], t.Assistants[i+1:]...)
			break
		}
	}
}
