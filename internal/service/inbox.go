package service

import (
	"fmt"

	"github.com/openice/rinkrat/internal/league"
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/names"
)

// maxNewsItems bounds the persisted feed.
const maxNewsItems = 200

// pushNews appends one feed entry, trimming the oldest past the cap.
func (s *SimService) pushNews(kind, team, player, headline string) {
	s.runtime.News = append(s.runtime.News, models.NewsItem{
		ID:       names.NewID(),
		Season:   s.league.SeasonNumber,
		Day:      s.league.DayIndex,
		Kind:     kind,
		Team:     team,
		Player:   player,
		Headline: headline,
	})
	if over := len(s.runtime.News) - maxNewsItems; over > 0 {
		s.runtime.News = s.runtime.News[over:]
	}
}

// projectNews turns one advance result into feed and inbox entries.
func (s *SimService) projectNews(result *league.AdvanceResult) {
	switch result.Type {
	case league.AdvanceGames:
		for _, g := range result.Games {
			s.projectGame(g)
		}
	case league.AdvancePlayoffDay:
		for _, g := range result.PlayoffDay.Games {
			s.pushNews(models.NewsGameResult, g.Winner, "",
				fmt.Sprintf("%s: %s %d, %s %d%s", result.PlayoffDay.Round,
					g.Away, g.AwayGoals, g.Home, g.HomeGoals, otSuffix(g.Overtime)))
		}
	case league.AdvanceOffseason:
		s.projectOffseason(result.Offseason)
	}

	for _, tr := range result.Trades {
		s.pushNews(models.NewsTrade, tr.TeamA, tr.PlayerA,
			fmt.Sprintf("%s trade %s to %s for %s", tr.TeamA, tr.PlayerA, tr.TeamB, tr.PlayerB))
	}
	for _, f := range result.Firings {
		s.pushNews(models.NewsFiring, f.Team, f.OldCoach,
			fmt.Sprintf("%s fire %s, hire %s", f.Team, f.OldCoach, f.NewCoach))
	}
}

func (s *SimService) projectGame(g *models.GameResult) {
	interesting := s.league.UserTeam == "" ||
		g.Home == s.league.UserTeam || g.Away == s.league.UserTeam
	if interesting {
		s.pushNews(models.NewsGameResult, g.Winner(), "",
			fmt.Sprintf("%s %d, %s %d%s", g.Away, g.AwayGoals, g.Home, g.HomeGoals, otSuffix(g.Overtime)))
	}

	for _, inj := range g.Injuries {
		s.pushNews(models.NewsInjury, inj.Team, inj.Player,
			fmt.Sprintf("%s (%s) out %d games", inj.Player, inj.Team, inj.GamesOut))
		if inj.Team == s.league.UserTeam {
			s.runtime.Inbox = append(s.runtime.Inbox, models.InboxItem{
				ID:         names.NewID(),
				Kind:       "injury",
				Team:       inj.Team,
				Player:     inj.Player,
				Message:    fmt.Sprintf("%s is injured for %d games; adjust the roster", inj.Player, inj.GamesOut),
				CreatedDay: s.league.DayIndex,
				ExpiresDay: s.league.DayIndex + 3,
			})
		}
	}
}

func (s *SimService) projectOffseason(sum *league.OffseasonSummary) {
	if sum == nil {
		return
	}
	s.pushNews(models.NewsChampion, sum.Champion, sum.PlayoffMVP,
		fmt.Sprintf("%s win the %s", sum.Champion, sum.CupName))
	for _, r := range sum.Retirements {
		headline := fmt.Sprintf("%s retires at %d", r.Player, r.Age)
		if r.NumberRetired {
			headline = fmt.Sprintf("%s retires at %d; %s retire #%d", r.Player, r.Age, r.Team, r.Number)
		}
		s.pushNews(models.NewsRetirement, r.Team, r.Player, headline)
	}
	for _, sg := range sum.Signings {
		s.pushNews(models.NewsSigning, sg.Team, sg.Player,
			fmt.Sprintf("%s sign %s (%d years, %.2f)", sg.Team, sg.Player, sg.Years, sg.CapHit))
	}
}

func otSuffix(overtime bool) string {
	if overtime {
		return " (OT)"
	}
	return ""
}

// recordMilestones announces crossed career thresholds exactly once.
func (s *SimService) recordMilestones() {
	if s.runtime.Reached == nil {
		s.runtime.Reached = make(map[string]bool)
	}
	for _, t := range s.league.Teams {
		for _, p := range t.Roster {
			s.checkMilestones(p, t.Name)
		}
	}
}

func (s *SimService) checkMilestones(p *models.Player, team string) {
	_, goals, _, points := p.CareerTotals()

	s.announce(p, team, "goals", goals, models.MilestoneGoals)
	s.announce(p, team, "points", points, models.MilestonePoints)
	if p.Position == models.Goalie {
		s.announce(p, team, "goalie_wins", p.CareerGoalieTotals().Wins, models.MilestoneGoalieWins)
	}
}

func (s *SimService) announce(p *models.Player, team, kind string, value, threshold int) {
	if value < threshold {
		return
	}
	key := p.ID + ":" + kind
	if s.runtime.Reached[key] {
		return
	}
	s.runtime.Reached[key] = true
	s.runtime.Milestones = append(s.runtime.Milestones, models.Milestone{
		PlayerID: p.ID,
		Player:   p.Name,
		Team:     team,
		Kind:     kind,
		Value:    value,
		Season:   s.league.SeasonNumber,
	})
	s.pushNews(models.NewsMilestone, team, p.Name,
		fmt.Sprintf("%s reaches %d career %s", p.Name, threshold, milestoneNoun(kind)))
}

func milestoneNoun(kind string) string {
	switch kind {
	case "goals":
		return "goals"
	case "points":
		return "points"
	case "goalie_wins":
		return "wins"
	}
	return kind
}

// resolveInbox expires pending items whose decision window has passed.
func (s *SimService) resolveInbox() {
	for i := range s.runtime.Inbox {
		item := &s.runtime.Inbox[i]
		if !item.Resolved && s.league.DayIndex >= item.ExpiresDay {
			item.Resolved = true
		}
	}
	// Drop resolved items older than a week to keep the envelope small.
	kept := s.runtime.Inbox[:0]
	for _, item := range s.runtime.Inbox {
		if item.Resolved && s.league.DayIndex-item.CreatedDay > 7 {
			continue
		}
		kept = append(kept, item)
	}
	s.runtime.Inbox = kept
}

// News returns the persisted feed, newest last.
func (s *SimService) News() []models.NewsItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runtime.News
}

// Inbox returns pending and recently resolved items.
func (s *SimService) Inbox() []models.InboxItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runtime.Inbox
}

// Milestones returns the crossed-threshold log.
func (s *SimService) Milestones() []models.Milestone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runtime.Milestones
}
