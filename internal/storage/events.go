package storage

import "time"

// DecisionWriter is the interface for persisting guard decisions.
// Write() must NEVER block the caller.
type DecisionWriter interface {
	Write(event *DecisionEvent)
	Close()
}

// DecisionEvent represents one evaluated tool call or output filter pass.
type DecisionEvent struct {
	RequestID      string
	ProjectID      string
	Timestamp      time.Time
	Surface        string // "tool_call" or "output"
	ToolName       string
	SessionID      string
	Decision       string
	State          string
	Action         string
	Severity       string
	Detection      string
	Reason         string
	PayloadPreview string // first 500 chars
	PayloadHash    string // SHA256 of full payload
	PayloadSize    uint32
	IsShadow       bool
	LatencyMs      float32
}

// PayloadPreviewLength is the max chars stored in payload_preview.
const PayloadPreviewLength = 500

// TruncatePayload returns the first N characters (runes) of a payload for
// preview storage. It never splits a multi-byte UTF-8 character.
func TruncatePayload(payload string, maxLen int) string {
	runes := []rune(payload)
	if len(runes) <= maxLen {
		return payload
	}
	return string(runes[:maxLen])
}
