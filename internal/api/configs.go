package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rampart-sec/rampart/internal/config"
	"github.com/rampart-sec/rampart/internal/store"
	"go.uber.org/zap"
)

func (d *Dependencies) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	if d.noStore(w) {
		return
	}

	projectID := r.PathValue("project_id")
	gc, err := d.Store.GetConfig(r.Context(), projectID)
	if err != nil {
		d.Logger.Error("failed to get guard config", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResp{Detail: "Failed to get guard config"})
		return
	}
	if gc == nil {
		writeJSON(w, http.StatusNotFound, ErrorResp{Detail: "Project not found."})
		return
	}
	writeJSON(w, http.StatusOK, configToResp(gc))
}

// handleReplaceConfig validates the document against the config schema
// before persisting, so the store never holds a config the guard cannot load.
func (d *Dependencies) handleReplaceConfig(w http.ResponseWriter, r *http.Request) {
	if d.noStore(w) {
		return
	}

	projectID := r.PathValue("project_id")

	body, err := io.ReadAll(r.Body)
	r.Body.Close() //nolint:errcheck
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "Failed to read body"})
		return
	}
	if !json.Valid(body) {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "Invalid JSON body"})
		return
	}

	if _, err := config.FromJSON(body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: err.Error()})
		return
	}

	gc, err := d.Store.ReplaceConfig(r.Context(), projectID, body)
	if err != nil {
		d.Logger.Error("failed to replace guard config", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResp{Detail: "Failed to replace guard config"})
		return
	}
	if gc == nil {
		writeJSON(w, http.StatusNotFound, ErrorResp{Detail: "Project not found."})
		return
	}
	writeJSON(w, http.StatusOK, configToResp(gc))
}

func configToResp(gc *store.GuardConfig) GuardConfigResp {
	return GuardConfigResp{
		ID:        gc.ID,
		ProjectID: gc.ProjectID,
		Config:    gc.Config,
		CreatedAt: gc.CreatedAt,
		UpdatedAt: gc.UpdatedAt,
	}
}
