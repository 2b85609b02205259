// Package handlers exposes the simulation service over HTTP. Handlers
// only bind requests, call the facade, and map error kinds to statuses.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openice/rinkrat/internal/league"
	"github.com/openice/rinkrat/internal/models"
	"github.com/openice/rinkrat/internal/service"
)

// SimHandler carries the facade into gin.
type SimHandler struct {
	sim    *service.SimService
	logger *logrus.Logger
}

// NewSimHandler builds the handler set.
func NewSimHandler(sim *service.SimService, logger *logrus.Logger) *SimHandler {
	return &SimHandler{sim: sim, logger: logger}
}

// RegisterRoutes mounts every simulation endpoint under the group.
func (h *SimHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/meta", h.GetMeta)
	api.GET("/standings", h.GetStandings)
	api.POST("/advance", h.Advance)
	api.POST("/reset", h.Reset)
	api.POST("/save", h.Save)
	api.POST("/user-team", h.SetUserTeam)

	api.GET("/teams", h.ListTeams)
	api.GET("/teams/:name", h.GetTeam)
	api.GET("/free-agents", h.ListFreeAgents)

	api.POST("/roster/promote", h.Promote)
	api.POST("/roster/demote", h.Demote)
	api.POST("/contracts/sign", h.Sign)
	api.POST("/contracts/extend", h.Extend)
	api.POST("/trades/propose", h.ProposeTrade)
	api.POST("/trades/preference", h.SetTradePreference)
	api.POST("/lines/set", h.SetLines)
	api.POST("/lines/auto", h.AutoLines)

	api.GET("/draft", h.GetDraft)
	api.POST("/draft/pick", h.DraftPick)
	api.POST("/draft/sim-to-user-pick", h.SimToUserPick)

	api.GET("/playoffs", h.GetPlayoffs)
	api.GET("/news", h.GetNews)
	api.GET("/inbox", h.GetInbox)
	api.GET("/milestones", h.GetMilestones)
	api.GET("/history", h.GetHistory)
	api.GET("/hall-of-fame", h.GetHallOfFame)
}

// statusForKind maps the core error taxonomy onto HTTP.
func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.ErrTeamNotFound, models.ErrPlayerNotFound:
		return http.StatusNotFound
	case models.ErrVersionMismatch,
		models.ErrRosterFull, models.ErrNoCapSpace,
		models.ErrInjuredInTrade, models.ErrUntouchable,
		models.ErrLastHealthyGoalie, models.ErrTradeRejected,
		models.ErrDraftInactive, models.ErrNotUserTeam:
		return http.StatusConflict
	case models.ErrInvariantViolation, models.ErrSchedulingDuplicate:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func (h *SimHandler) fail(c *gin.Context, err error) {
	kind := models.KindOf(err)
	h.logger.WithError(err).WithField("kind", kind).Warn("Request failed")
	c.JSON(statusForKind(kind), gin.H{"error": err.Error(), "kind": kind})
}

// GetMeta returns the world descriptor.
func (h *SimHandler) GetMeta(c *gin.Context) {
	c.JSON(http.StatusOK, h.sim.Meta())
}

// GetStandings returns the requested standings table.
func (h *SimHandler) GetStandings(c *gin.Context) {
	mode := c.DefaultQuery("mode", league.StandingsLeague)
	value := c.Query("value")
	c.JSON(http.StatusOK, gin.H{"mode": mode, "rows": h.sim.Standings(mode, value)})
}

type advanceRequest struct {
	AutoInjuryMoves bool `json:"auto_injury_moves"`
}

// Advance steps the world one day (or reveal day, or offseason).
func (h *SimHandler) Advance(c *gin.Context) {
	var req advanceRequest
	_ = c.ShouldBindJSON(&req) // empty body means defaults

	result, err := h.sim.Advance(req.AutoInjuryMoves)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type resetRequest struct {
	Seed uint64 `json:"seed"`
}

// Reset reseeds the world.
func (h *SimHandler) Reset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seed is required"})
		return
	}
	meta, err := h.sim.Reset(req.Seed)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

// Save flushes the world with backups.
func (h *SimHandler) Save(c *gin.Context) {
	if err := h.sim.Save(); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

type userTeamRequest struct {
	Team string `json:"team"`
}

// SetUserTeam claims a franchise.
func (h *SimHandler) SetUserTeam(c *gin.Context) {
	var req userTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team is required"})
		return
	}
	if err := h.sim.SetUserTeam(req.Team); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_team": req.Team})
}

// teamSummary is the list projection.
type teamSummary struct {
	Name       string `json:"name"`
	Abbrev     string `json:"abbrev"`
	Division   string `json:"division"`
	Conference string `json:"conference"`
	Coach      string `json:"coach"`
	RosterSize int    `json:"roster_size"`
}

// ListTeams returns every franchise.
func (h *SimHandler) ListTeams(c *gin.Context) {
	var out []teamSummary
	h.sim.Snapshot(func(l *league.League) {
		for _, t := range l.Teams {
			out = append(out, teamSummary{
				Name:       t.Name,
				Abbrev:     t.Abbrev,
				Division:   t.Division,
				Conference: t.Conference,
				Coach:      t.Coach.Name,
				RosterSize: len(t.Roster),
			})
		}
	})
	c.JSON(http.StatusOK, gin.H{"teams": out})
}

// GetTeam returns one franchise in full.
func (h *SimHandler) GetTeam(c *gin.Context) {
	name := c.Param("name")
	var team *models.Team
	var record *models.TeamRecord
	var capSpace float64
	h.sim.Snapshot(func(l *league.League) {
		if t := l.TeamByName(name); t != nil {
			team = t
			record = l.RecordOf(name)
			capSpace = l.CapSpace(t)
		}
	})
	if team == nil {
		h.fail(c, models.NewSimError(models.ErrTeamNotFound, "%s", name))
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team, "record": record, "cap_space": capSpace})
}

// ListFreeAgents returns the open market.
func (h *SimHandler) ListFreeAgents(c *gin.Context) {
	var out []*models.Player
	h.sim.Snapshot(func(l *league.League) {
		out = append(out, l.FreeAgents...)
	})
	c.JSON(http.StatusOK, gin.H{"free_agents": out})
}

type rosterMoveRequest struct {
	Team   string `json:"team"`
	Player string `json:"player"`
}

// Promote calls a player up.
func (h *SimHandler) Promote(c *gin.Context) {
	var req rosterMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team and player are required"})
		return
	}
	if err := h.sim.Promote(req.Team, req.Player); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"promoted": req.Player})
}

// Demote sends a player down.
func (h *SimHandler) Demote(c *gin.Context) {
	var req rosterMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team and player are required"})
		return
	}
	if err := h.sim.Demote(req.Team, req.Player); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"demoted": req.Player})
}

type contractRequest struct {
	Team   string  `json:"team"`
	Player string  `json:"player"`
	Years  int     `json:"years"`
	CapHit float64 `json:"cap_hit"`
}

// Sign adds a free agent on the given terms.
func (h *SimHandler) Sign(c *gin.Context) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team, player, years, cap_hit are required"})
		return
	}
	if err := h.sim.SignFreeAgent(req.Team, req.Player, req.Years, req.CapHit); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"signed": req.Player})
}

// Extend re-signs a rostered player.
func (h *SimHandler) Extend(c *gin.Context) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team, player, years, cap_hit are required"})
		return
	}
	if err := h.sim.ExtendContract(req.Team, req.Player, req.Years, req.CapHit); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"extended": req.Player})
}

type tradeRequest struct {
	Give        string `json:"give"`
	PartnerTeam string `json:"partner_team"`
	Receive     string `json:"receive"`
}

// ProposeTrade offers a 1-for-1 swap; rejections return 200 with the
// reason since the proposal itself succeeded.
func (h *SimHandler) ProposeTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "give, partner_team, receive are required"})
		return
	}
	outcome, err := h.sim.ProposeTrade(req.Give, req.PartnerTeam, req.Receive)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

type tradePrefRequest struct {
	Team       string `json:"team"`
	Player     string `json:"player"`
	Preference string `json:"preference"`
}

// SetTradePreference flags a user player for the market.
func (h *SimHandler) SetTradePreference(c *gin.Context) {
	var req tradePrefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team and player are required"})
		return
	}
	if err := h.sim.SetTradePreference(req.Team, req.Player, models.TradePreference(req.Preference)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"player": req.Player, "preference": req.Preference})
}

type setLinesRequest struct {
	Team           string            `json:"team"`
	Assignments    map[string]string `json:"assignments"`
	StartingGoalie string            `json:"starting_goalie"`
}

// SetLines applies the user's lineup.
func (h *SimHandler) SetLines(c *gin.Context) {
	var req setLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team and assignments are required"})
		return
	}
	if err := h.sim.SetLines(req.Team, req.Assignments, req.StartingGoalie); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": req.Team})
}

type autoLinesRequest struct {
	Team string `json:"team"`
}

// AutoLines rebuilds the user's lineup automatically.
func (h *SimHandler) AutoLines(c *gin.Context) {
	var req autoLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team is required"})
		return
	}
	if err := h.sim.AutoLines(req.Team); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": req.Team})
}

// GetDraft returns the live draft board.
func (h *SimHandler) GetDraft(c *gin.Context) {
	board, err := h.sim.Draft()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

type draftPickRequest struct {
	PlayerID string `json:"player_id"`
}

// DraftPick makes the user's selection.
func (h *SimHandler) DraftPick(c *gin.Context) {
	var req draftPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player_id is required"})
		return
	}
	pick, err := h.sim.DraftPick(req.PlayerID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pick)
}

// SimToUserPick fast-forwards CPU picks.
func (h *SimHandler) SimToUserPick(c *gin.Context) {
	if err := h.sim.SimToUserPick(); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"done": true})
}

// GetPlayoffs projects the bracket revealed so far.
func (h *SimHandler) GetPlayoffs(c *gin.Context) {
	var bracket *models.PlayoffBracket
	var revealed []models.PlayoffDay
	var totalDays int
	h.sim.Snapshot(func(l *league.League) {
		bracket = l.PendingPlayoffs
		totalDays = len(l.PendingPlayoffDays)
		if l.PendingPlayoffDayIndex <= totalDays {
			revealed = l.PendingPlayoffDays[:l.PendingPlayoffDayIndex]
		}
	})
	if bracket == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"active":   true,
		"cup_name": bracket.CupName,
		"revealed": revealed,
		"complete": len(revealed) == totalDays,
	})
}

// GetNews returns the feed.
func (h *SimHandler) GetNews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"news": h.sim.News()})
}

// GetInbox returns pending decisions.
func (h *SimHandler) GetInbox(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"inbox": h.sim.Inbox()})
}

// GetMilestones returns crossed career thresholds.
func (h *SimHandler) GetMilestones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"milestones": h.sim.Milestones()})
}

// GetHistory returns the season archive.
func (h *SimHandler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.sim.History()})
}

// GetHallOfFame returns retired-player records.
func (h *SimHandler) GetHallOfFame(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hall_of_fame": h.sim.HallOfFame()})
}
