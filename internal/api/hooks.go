package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rampart-sec/rampart/internal/engine/resolver"
	"github.com/rampart-sec/rampart/internal/storage"
)

// handleToolCall implements POST /v1/hooks/tool-call.
// Auth middleware has already validated the Bearer token and injected the
// project.
func (d *Dependencies) handleToolCall(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ToolCallRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "Invalid JSON body"})
		return
	}
	if req.ToolName == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "tool_name is required"})
		return
	}

	proj := projectFromContext(r.Context())
	if proj == nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResp{Detail: "missing project context"})
		return
	}

	res := resolver.New(proj.Config, d.Logger)
	verdict := res.EvaluateToolCall(req.ToolName, req.Params, req.SessionID)

	// Shadow mode override: record the real verdict, report allow.
	responseDecision := verdict.Decision
	isShadow := false
	if proj.Mode == "shadow" && verdict.Decision == resolver.DecisionBlock {
		isShadow = true
		responseDecision = resolver.DecisionAllow
	}

	requestID := uuid.New().String()
	latencyMs := float64(time.Since(start)) / float64(time.Millisecond)

	payload, _ := json.Marshal(req.Params)
	d.writeDecisionEvent("tool_call", requestID, proj.ID, req.ToolName, req.SessionID,
		verdict.Decision.String(), verdict.State.String(), verdict.Action.String(),
		verdict.Severity.String(), verdict.Detection, verdict.Reason,
		string(payload), isShadow, float32(latencyMs))

	writeJSON(w, http.StatusOK, ToolCallResponse{
		Decision:            responseDecision.String(),
		State:               verdict.State.String(),
		RequestID:           requestID,
		IsShadow:            isShadow,
		Reason:              optString(verdict.Reason),
		Params:              verdict.Params,
		RequireApproval:     verdict.RequireApproval,
		PendingConfirmation: verdict.PendingConfirmation && !isShadow,
		Detection:           optString(verdict.Detection),
		Severity:            severityString(verdict),
		LatencyMs:           latencyMs,
	})
}

// handleOutput implements POST /v1/hooks/output.
func (d *Dependencies) handleOutput(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req OutputRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "Invalid JSON body"})
		return
	}

	proj := projectFromContext(r.Context())
	if proj == nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResp{Detail: "missing project context"})
		return
	}

	res := resolver.New(proj.Config, d.Logger)
	text, decision, reason := res.EvaluateOutput(req.Text)

	responseDecision := decision
	responseText := text
	isShadow := false
	if proj.Mode == "shadow" && decision == resolver.DecisionBlock {
		isShadow = true
		responseDecision = resolver.DecisionAllow
		responseText = req.Text
	}

	requestID := uuid.New().String()
	latencyMs := float64(time.Since(start)) / float64(time.Millisecond)

	d.writeDecisionEvent("output", requestID, proj.ID, "", req.SessionID,
		decision.String(), "", "", "", "", reason,
		req.Text, isShadow, float32(latencyMs))

	writeJSON(w, http.StatusOK, OutputResponse{
		Decision:  responseDecision.String(),
		Text:      responseText,
		RequestID: requestID,
		IsShadow:  isShadow,
		Reason:    optString(reason),
		LatencyMs: latencyMs,
	})
}

// handleContext implements GET /v1/hooks/context.
func (d *Dependencies) handleContext(w http.ResponseWriter, r *http.Request) {
	proj := projectFromContext(r.Context())
	if proj == nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResp{Detail: "missing project context"})
		return
	}

	res := resolver.New(proj.Config, d.Logger)
	writeJSON(w, http.StatusOK, ContextResponse{
		Prompt:          res.ContextPrompt(),
		ConfirmParamKey: resolver.ConfirmParamKey,
	})
}

// writeDecisionEvent builds a DecisionEvent and fires it to the async writer.
func (d *Dependencies) writeDecisionEvent(
	surface, requestID, projectID, toolName, sessionID string,
	decision, state, action, severity, detection, reason string,
	payload string,
	isShadow bool,
	latencyMs float32,
) {
	hashBytes := sha256.Sum256([]byte(payload))

	d.Writer.Write(&storage.DecisionEvent{
		RequestID:      requestID,
		ProjectID:      projectID,
		Timestamp:      time.Now(),
		Surface:        surface,
		ToolName:       toolName,
		SessionID:      sessionID,
		Decision:       decision,
		State:          state,
		Action:         action,
		Severity:       severity,
		Detection:      detection,
		Reason:         reason,
		PayloadPreview: storage.TruncatePayload(payload, storage.PayloadPreviewLength),
		PayloadHash:    hex.EncodeToString(hashBytes[:]),
		PayloadSize:    uint32(len(payload)),
		IsShadow:       isShadow,
		LatencyMs:      latencyMs,
	})
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func severityString(v resolver.Verdict) *string {
	if v.Severity == 0 {
		return nil
	}
	s := v.Severity.String()
	return &s
}
