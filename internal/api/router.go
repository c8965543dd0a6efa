package api

import (
	"net/http"
	"time"

	"github.com/rampart-sec/rampart/internal/engine"
	"github.com/rampart-sec/rampart/internal/storage"
	"github.com/rampart-sec/rampart/internal/store"
	"go.uber.org/zap"
)

// Dependencies holds shared state injected into all HTTP handlers.
// Store may be nil: the server then runs single-tenant against GuardConfig
// and Mode, with no authentication.
type Dependencies struct {
	Store       *store.Store
	Writer      storage.DecisionWriter
	GuardConfig *engine.Config
	Mode        string // single-tenant mode: "enforce" or "shadow"
	Logger      *zap.Logger
	CacheTTL    time.Duration
}

// NewRouter builds the HTTP mux with all routes wired up.
func NewRouter(deps *Dependencies) http.Handler {
	mux := http.NewServeMux()

	// Hook endpoints (auth required via Bearer rsk_ token, unless single-tenant)
	mux.HandleFunc("POST /v1/hooks/tool-call", deps.authMiddleware(deps.handleToolCall))
	mux.HandleFunc("POST /v1/hooks/output", deps.authMiddleware(deps.handleOutput))
	mux.HandleFunc("GET /v1/hooks/context", deps.authMiddleware(deps.handleContext))

	// Project CRUD (no auth — dashboard auth added later)
	mux.HandleFunc("POST /api/rampart/projects", deps.handleCreateProject)
	mux.HandleFunc("GET /api/rampart/projects", deps.handleListProjects)
	mux.HandleFunc("GET /api/rampart/projects/{project_id}", deps.handleGetProject)
	mux.HandleFunc("PATCH /api/rampart/projects/{project_id}", deps.handleUpdateProject)
	mux.HandleFunc("DELETE /api/rampart/projects/{project_id}", deps.handleDeleteProject)
	mux.HandleFunc("POST /api/rampart/projects/{project_id}/rotate-key", deps.handleRotateKey)

	// Guard config CRUD (no auth)
	mux.HandleFunc("GET /api/rampart/projects/{project_id}/config", deps.handleGetConfig)
	mux.HandleFunc("PUT /api/rampart/projects/{project_id}/config", deps.handleReplaceConfig)

	// Health check
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return corsMiddleware(requestLogging(mux, deps.Logger))
}
