package handler

import (
	"net/http"
	"strconv"

	"github.com/tcullen/arcadehub/internal/api/middleware"
	"github.com/tcullen/arcadehub/internal/api/response"
	"github.com/tcullen/arcadehub/internal/services/leaderboard"
	"github.com/tcullen/arcadehub/internal/services/progress"
	"github.com/tcullen/arcadehub/internal/services/scoring"
)

// ScoresHandler handles score history, progress and leaderboard endpoints
type ScoresHandler struct {
	scoringService     scoring.ServiceInterface
	leaderboardService leaderboard.ServiceInterface
	progressService    progress.ServiceInterface
}

// NewScoresHandler creates a new scores handler
func NewScoresHandler(
	scoringService scoring.ServiceInterface,
	leaderboardService leaderboard.ServiceInterface,
	progressService progress.ServiceInterface,
) *ScoresHandler {
	return &ScoresHandler{
		scoringService:     scoringService,
		leaderboardService: leaderboardService,
		progressService:    progressService,
	}
}

// GetMyScores handles GET /api/v1/players/me/scores
func (h *ScoresHandler) GetMyScores(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	records, err := h.scoringService.History(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	total, err := h.scoringService.TotalPoints(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreHistoryFromModel(records, total))
}

// GetMyProgress handles GET /api/v1/players/me/progress
func (h *ScoresHandler) GetMyProgress(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	p, err := h.progressService.ForPlayer(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, p)
}

// GetLeaderboard handles GET /api/v1/leaderboard
func (h *ScoresHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, NewInvalidRequestError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.leaderboardService.Top(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}
