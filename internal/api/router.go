package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpslsgame/internal/api/handler"
	"github.com/mcoot/rpslsgame/internal/api/middleware"
	"github.com/mcoot/rpslsgame/internal/events"
	"github.com/mcoot/rpslsgame/internal/metrics"
	sharedmw "github.com/mcoot/rpslsgame/internal/middleware"
	"github.com/mcoot/rpslsgame/internal/services/game"
	"github.com/mcoot/rpslsgame/internal/services/move"
	"github.com/mcoot/rpslsgame/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	PlayerService  player.ServiceInterface
	MoveService    move.ServiceInterface
	GameController game.ControllerInterface
	Metrics        *metrics.Metrics
	Events         *events.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	moveHandler := handler.NewMoveHandler(cfg.MoveService)
	playHandler := handler.NewPlayHandler(cfg.GameController)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	if cfg.Metrics != nil {
		api.Use(sharedmw.Metrics(cfg.Metrics))
	}

	// Player registry
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/{name}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{name}", playerHandler.Delete).Methods(http.MethodDelete)

	// Move registry
	api.HandleFunc("/moves", moveHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/moves", moveHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/moves/{name}", moveHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/moves/{name}", moveHandler.Delete).Methods(http.MethodDelete)

	// Commands and archive
	api.HandleFunc("/play", playHandler.Play).Methods(http.MethodPost)
	api.HandleFunc("/play", playHandler.ListGames).Methods(http.MethodGet)
	api.HandleFunc("/play/{id}", playHandler.GetGame).Methods(http.MethodGet)
	api.HandleFunc("/play/{id}", playHandler.DeleteGame).Methods(http.MethodDelete)

	// Open round
	api.HandleFunc("/round", playHandler.Round).Methods(http.MethodGet)
	api.HandleFunc("/round", playHandler.ResetRound).Methods(http.MethodDelete)

	// Server-sent event stream
	if cfg.Events != nil {
		api.HandleFunc("/events", handler.NewEventsHandler(cfg.Events).Stream).Methods(http.MethodGet)
	}

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Prometheus scrape endpoint, outside the API prefix
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
