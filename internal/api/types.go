package api

import (
	"encoding/json"
	"time"
)

// --- POST /v1/hooks/tool-call request/response ---

// ToolCallRequest is the JSON body for POST /v1/hooks/tool-call.
type ToolCallRequest struct {
	ToolName  string         `json:"tool_name"`
	Params    map[string]any `json:"params,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
}

// ToolCallResponse reports the verdict for one tool invocation. Params is
// present only when the call must proceed with modified parameters.
type ToolCallResponse struct {
	Decision            string         `json:"decision"`
	State               string         `json:"state"`
	RequestID           string         `json:"request_id"`
	IsShadow            bool           `json:"is_shadow"`
	Reason              *string        `json:"reason"`
	Params              map[string]any `json:"params,omitempty"`
	RequireApproval     bool           `json:"require_approval,omitempty"`
	PendingConfirmation bool           `json:"pending_confirmation,omitempty"`
	Detection           *string        `json:"detection"`
	Severity            *string        `json:"severity"`
	LatencyMs           float64        `json:"latency_ms"`
}

// --- POST /v1/hooks/output request/response ---

// OutputRequest is the JSON body for POST /v1/hooks/output.
type OutputRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
}

// OutputResponse carries the (possibly redacted) text, or a refusal.
type OutputResponse struct {
	Decision  string  `json:"decision"`
	Text      string  `json:"text"`
	RequestID string  `json:"request_id"`
	IsShadow  bool    `json:"is_shadow"`
	Reason    *string `json:"reason"`
	LatencyMs float64 `json:"latency_ms"`
}

// --- GET /v1/hooks/context response ---

// ContextResponse holds the prompt text a host prepends to the agent's
// initial context.
type ContextResponse struct {
	Prompt          string `json:"prompt"`
	ConfirmParamKey string `json:"confirm_param_key"`
}

// --- Project CRUD ---

// CreateProjectReq is the JSON body for POST /api/rampart/projects.
type CreateProjectReq struct {
	Name string `json:"name"`
}

// CreateProjectResp includes the plaintext API key (shown once).
type CreateProjectResp struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	APIKey       string    `json:"api_key"`
	APIKeyPrefix string    `json:"api_key_prefix"`
	Mode         string    `json:"mode"`
	CreatedAt    time.Time `json:"created_at"`
}

// UpdateProjectReq is the JSON body for PATCH /api/rampart/projects/{id}.
type UpdateProjectReq struct {
	Name *string `json:"name,omitempty"`
	Mode *string `json:"mode,omitempty"`
}

// ProjectResp is a project without its plaintext key.
type ProjectResp struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	APIKeyPrefix string    `json:"api_key_prefix"`
	Mode         string    `json:"mode"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RotateKeyResp includes the new plaintext API key (shown once).
type RotateKeyResp struct {
	APIKey       string `json:"api_key"`
	APIKeyPrefix string `json:"api_key_prefix"`
}

// --- Guard config CRUD ---

// GuardConfigResp is a project's guard config document.
type GuardConfigResp struct {
	ID        string          `json:"id"`
	ProjectID string          `json:"project_id"`
	Config    json.RawMessage `json:"config"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ErrorResp is a standard error response body.
type ErrorResp struct {
	Detail string `json:"detail"`
}
