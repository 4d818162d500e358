package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/launchpool/launchpool/internal/models"
	"github.com/launchpool/launchpool/internal/services"
	"github.com/launchpool/launchpool/internal/utils"
)

type MatchHandler struct {
	svc services.MatchService
}

func NewMatchHandler(svc services.MatchService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

// Score returns the match between the authenticated user and one
// project. Missing user or project is a 404, not a crash.
func (h *MatchHandler) Score(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID := c.Param("project_id")

	score, err := h.svc.CalculateScore(c.Request.Context(), userID, projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *MatchHandler) Recommendations(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultLimit)))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MatchHandler.Recommendations", "limit must be an integer", err))
		return
	}
	minScore, err := strconv.Atoi(c.DefaultQuery("min_score", strconv.Itoa(services.DefaultMinScore)))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MatchHandler.Recommendations", "min_score must be an integer", err))
		return
	}

	matches, err := h.svc.FindTopMatches(c.Request.Context(), userID, limit, minScore)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "count": len(matches)})
}

type actionRequest struct {
	Action models.MatchAction `json:"action" binding:"required"`
}

// Action re-scores the pair and records the user's action against it.
// Recording is fire-and-forget; the response carries the fresh score.
func (h *MatchHandler) Action(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID := c.Param("project_id")

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MatchHandler.Action", "invalid request body", err))
		return
	}

	score, err := h.svc.CalculateScore(c.Request.Context(), userID, projectID)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.svc.RecordAction(c.Request.Context(), score, req.Action); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *MatchHandler) History(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	h.writeHistory(c, userID)
}

// AdminHistory exposes any user's match history to admins for
// analytics.
func (h *MatchHandler) AdminHistory(c *gin.Context) {
	h.writeHistory(c, c.Param("user_id"))
}

func (h *MatchHandler) writeHistory(c *gin.Context, userID string) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MatchHandler.History", "limit must be an integer", err))
		return
	}

	rows, err := h.svc.History(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": rows, "count": len(rows)})
}
