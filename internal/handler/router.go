/*
Package handler provides the HTTP handlers and routing setup for the room server.

This file defines the main Router, applying middleware like logging, CORS,
and IP-based rate limiting before delegating requests to specific handlers
(health, catalog, and the WebSocket endpoint).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"vibehotel/internal/app/room"
	"vibehotel/internal/configs"
	"vibehotel/internal/pkg/limiter"
	"vibehotel/internal/pkg/logx"
	"vibehotel/internal/pkg/resp"
)

const (
	// ConnectRate and ConnectBurst bound how often a single IP may open
	// WebSocket connections.
	ConnectRate  = 0.5
	ConnectBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It configures CORS, global middleware, the liveness endpoint, the catalog
// endpoint, and the rate-limited WebSocket endpoint.
func Router(r *room.Room, cfg *configs.AppConfig) http.Handler {
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	router := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(req *http.Request) bool {
			if cfg.Environment == "development" {
				return true
			}

			origin := req.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if cfg.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(cfg.AllowedOrigins) > 0 {
		corsAllowedOrigins = cfg.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	router.Use(c.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logx.RequestLogger())
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		data := map[string]string{
			"status": "ok",
		}
		resp.RespondSuccess(w, req, data)
	})

	router.Get("/api/catalog", HandleGetCatalog(r))

	router.Get("/ws", HandleWebSocket(r, wsUpgrader, connectLimiter))

	return router
}

// HandleGetCatalog returns the fixed catalog of purchasable item types, so
// the presentation layer can render the shop without hardcoding it.
func HandleGetCatalog(r *room.Room) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		resp.RespondSuccess(w, req, r.Catalog().Entries())
	}
}
