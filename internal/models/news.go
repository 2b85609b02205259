package models

// News item kinds surfaced in the feed.
const (
	NewsGameResult = "game_result"
	NewsInjury     = "injury"
	NewsTrade      = "trade"
	NewsFiring     = "firing"
	NewsRetirement = "retirement"
	NewsMilestone  = "milestone"
	NewsChampion   = "champion"
	NewsSigning    = "signing"
)

// NewsItem is one feed entry.
type NewsItem struct {
	ID       string `json:"id"`
	Season   int    `json:"season"`
	Day      int    `json:"day"`
	Kind     string `json:"kind"`
	Headline string `json:"headline"`
	Body     string `json:"body,omitempty"`
	Team     string `json:"team,omitempty"`
	Player   string `json:"player,omitempty"`
}

// InboxItem is a pending decision surfaced to the user. Unresolved items
// past their expiry day auto-resolve on the next advance.
type InboxItem struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Team       string `json:"team,omitempty"`
	Player     string `json:"player,omitempty"`
	Message    string `json:"message"`
	CreatedDay int    `json:"created_day"`
	ExpiresDay int    `json:"expires_day"`
	Resolved   bool   `json:"resolved"`
}

// Career milestone thresholds that generate news.
const (
	MilestoneGoals      = 500
	MilestonePoints     = 1000
	MilestoneGoalieWins = 300
)

// Milestone records a career threshold crossing.
type Milestone struct {
	PlayerID string `json:"player_id"`
	Player   string `json:"player"`
	Team     string `json:"team,omitempty"`
	Kind     string `json:"kind"` // "goals", "points", "goalie_wins"
	Value    int    `json:"value"`
	Season   int    `json:"season"`
}
