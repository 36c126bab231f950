package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tcullen/arcadehub/internal/api/handler"
	"github.com/tcullen/arcadehub/internal/api/middleware"
	"github.com/tcullen/arcadehub/internal/events"
	"github.com/tcullen/arcadehub/internal/services/arcade"
	"github.com/tcullen/arcadehub/internal/services/auth"
	"github.com/tcullen/arcadehub/internal/services/catalog"
	"github.com/tcullen/arcadehub/internal/services/leaderboard"
	"github.com/tcullen/arcadehub/internal/services/progress"
	"github.com/tcullen/arcadehub/internal/services/scoring"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	CatalogService     catalog.ServiceInterface
	SessionManager     arcade.ManagerInterface
	ScoringService     scoring.ServiceInterface
	LeaderboardService leaderboard.ServiceInterface
	ProgressService    progress.ServiceInterface
	EventHub           *events.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	catalogHandler := handler.NewCatalogHandler(cfg.CatalogService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionManager)
	scoresHandler := handler.NewScoresHandler(cfg.ScoringService, cfg.LeaderboardService, cfg.ProgressService)
	eventsHandler := handler.NewEventsHandler(cfg.EventHub)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/me", playerHandler.UpdateProfile).Methods(http.MethodPatch)
	playerProtected.HandleFunc("/me/password", playerHandler.ChangePassword).Methods(http.MethodPost)
	playerProtected.HandleFunc("/me/scores", scoresHandler.GetMyScores).Methods(http.MethodGet)
	playerProtected.HandleFunc("/me/progress", scoresHandler.GetMyProgress).Methods(http.MethodGet)

	// Catalog routes (public)
	api.HandleFunc("/games", catalogHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{game_id}", catalogHandler.Get).Methods(http.MethodGet)

	// Play session routes; anonymous sessions are allowed and never score
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(optionalAuthMiddleware)
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("/{session_id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{session_id}", sessionHandler.Dispose).Methods(http.MethodDelete)
	sessions.HandleFunc("/{session_id}/input", sessionHandler.Input).Methods(http.MethodPost)
	sessions.HandleFunc("/{session_id}/reset", sessionHandler.Reset).Methods(http.MethodPost)

	// Leaderboard (public)
	api.HandleFunc("/leaderboard", scoresHandler.GetLeaderboard).Methods(http.MethodGet)

	// Event stream (public; auth only attributes the connection)
	eventsRoute := api.PathPrefix("/events").Subrouter()
	eventsRoute.Use(optionalAuthMiddleware)
	eventsRoute.HandleFunc("", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
