package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// GuardConfig represents a row in the guard_configs table. Config is the
// project's guard configuration document, stored as JSONB and validated
// against the config schema on write.
type GuardConfig struct {
	ID        string
	ProjectID string
	Config    json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetConfig returns the guard config for a project, or nil if not found.
func (s *Store) GetConfig(ctx context.Context, projectID string) (*GuardConfig, error) {
	var gc GuardConfig
	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, config, created_at, updated_at
		FROM guard_configs WHERE project_id = $1`, projectID,
	).Scan(&gc.ID, &gc.ProjectID, &gc.Config, &gc.CreatedAt, &gc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetConfig: %w", err)
	}
	return &gc, nil
}

// ReplaceConfig fully replaces a project's guard config document.
func (s *Store) ReplaceConfig(ctx context.Context, projectID string, config json.RawMessage) (*GuardConfig, error) {
	if config == nil {
		config = json.RawMessage(`{}`)
	}

	var gc GuardConfig
	err := s.db.QueryRowContext(ctx, `
		UPDATE guard_configs SET
			config     = $2,
			updated_at = now()
		WHERE project_id = $1
		RETURNING id, project_id, config, created_at, updated_at`,
		projectID, config,
	).Scan(&gc.ID, &gc.ProjectID, &gc.Config, &gc.CreatedAt, &gc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ReplaceConfig: %w", err)
	}
	return &gc, nil
}
