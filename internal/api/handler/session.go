package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tcullen/arcadehub/internal/api/middleware"
	"github.com/tcullen/arcadehub/internal/api/request"
	"github.com/tcullen/arcadehub/internal/api/response"
	"github.com/tcullen/arcadehub/internal/games"
	"github.com/tcullen/arcadehub/internal/model"
	"github.com/tcullen/arcadehub/internal/services/arcade"
)

// SessionHandler handles play session endpoints. Sessions work with or
// without authentication: anonymous players get a full game that never
// submits scores.
type SessionHandler struct {
	manager arcade.ManagerInterface
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(manager arcade.ManagerInterface) *SessionHandler {
	return &SessionHandler{
		manager: manager,
	}
}

// requestPlayerID resolves the acting player, empty for anonymous requests
func requestPlayerID(r *http.Request) model.PlayerID {
	if player := middleware.GetPlayer(r.Context()); player != nil {
		return player.ID
	}
	return ""
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.GameID == "" {
		WriteError(w, NewInvalidRequestError("game_id is required"))
		return
	}

	playerID := requestPlayerID(r)
	session, err := h.manager.CreateSession(playerID, model.GameID(req.GameID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlaySessionFromModel(session, session.Engine.Snapshot()))
}

// Get handles GET /api/v1/sessions/{session_id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])
	playerID := requestPlayerID(r)

	session, err := h.manager.Get(sessionID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlaySessionFromModel(session, session.Engine.Snapshot()))
}

// Input handles POST /api/v1/sessions/{session_id}/input
func (h *SessionHandler) Input(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])
	playerID := requestPlayerID(r)

	var req request.InputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Action == "" {
		WriteError(w, NewInvalidRequestError("action is required"))
		return
	}

	input := games.Input{
		Action: req.Action,
		Index:  req.Index,
		Text:   req.Text,
	}
	if err := h.manager.Apply(sessionID, playerID, input); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.manager.Get(sessionID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlaySessionFromModel(session, session.Engine.Snapshot()))
}

// Reset handles POST /api/v1/sessions/{session_id}/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])
	playerID := requestPlayerID(r)

	if err := h.manager.Reset(sessionID, playerID); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.manager.Get(sessionID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlaySessionFromModel(session, session.Engine.Snapshot()))
}

// Dispose handles DELETE /api/v1/sessions/{session_id}
func (h *SessionHandler) Dispose(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])
	playerID := requestPlayerID(r)

	if err := h.manager.Dispose(sessionID, playerID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
