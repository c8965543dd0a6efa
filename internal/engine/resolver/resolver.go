// Package resolver turns detections into enforcement verdicts and drives
// the two-round confirmation handshake.
package resolver

import (
	"encoding/json"
	"fmt"

	"github.com/rampart-sec/rampart/internal/engine"
	"github.com/rampart-sec/rampart/internal/engine/command"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConfirmParamKey is the caller-supplied confirmation flag. It is consumed
// and stripped before the call proceeds; the wrapped tool never sees it.
const ConfirmParamKey = "__rampart_confirm"

// Decision is the binary outcome handed back to the host.
type Decision int

const (
	DecisionAllow Decision = iota + 1
	DecisionBlock
)

// String returns the lowercase decision name.
func (d Decision) String() string {
	if d == DecisionBlock {
		return "block"
	}
	return "allow"
}

// State records where a call landed in the confirmation state machine.
type State int

const (
	StateUnseen State = iota
	StateAllowed
	StateBlocked
	StateBlockedPendingConfirm
	StateRedactedAllowed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateAllowed:
		return "allowed"
	case StateBlocked:
		return "blocked"
	case StateBlockedPendingConfirm:
		return "blocked_pending_confirm"
	case StateRedactedAllowed:
		return "redacted_allowed"
	default:
		return "unseen"
	}
}

// Verdict is the resolver's output: proceed (possibly with modified
// parameters) or block with a reason.
type Verdict struct {
	Decision Decision
	State    State
	// Params is non-nil when the call may proceed only with these modified
	// parameters (redaction applied or confirmation flag stripped).
	Params map[string]any
	Reason string
	// RequireApproval asks the host to route the call through its own
	// interactive approval channel before executing.
	RequireApproval bool
	// PendingConfirmation marks a round-1 agent-confirm block: resubmitting
	// with the confirmation flag set lets the call through.
	PendingConfirmation bool
	// Detection labels what fired, for event logging.
	Detection string
	Severity  engine.Severity
	Action    engine.Action
}

// Tools that execute through an interactive surface the host can gate
// itself; for these a "confirm" action annotates instead of blocking.
var interactiveTools = map[string]bool{
	"bash":            true,
	"exec":            true,
	"shell":           true,
	"terminal":        true,
	"run_command":     true,
	"execute_command": true,
}

// Resolver applies the configured policy to tool calls and output text. It
// holds only the immutable config and a logger, so a single Resolver is
// safe for concurrent use.
type Resolver struct {
	cfg    *engine.Config
	logger *zap.Logger
}

// New creates a Resolver for the given configuration.
func New(cfg *engine.Config, logger *zap.Logger) *Resolver {
	return &Resolver{cfg: cfg, logger: logger}
}

// EvaluateToolCall inspects one tool invocation and produces a verdict.
// Destructive-command detections take priority: when one is flagged and not
// allowed outright, its verdict is returned before the secret scan runs.
// Detection failures are never fatal; the worst case is "no match", which
// fails open by design.
func (r *Resolver) EvaluateToolCall(toolName string, params map[string]any, sessionKey string) Verdict {
	if engine.IsAllowlisted(r.cfg.Allowlist, toolName, sessionKey) {
		return Verdict{Decision: DecisionAllow, State: StateAllowed}
	}

	confirmed := extractConfirmFlag(params)

	if r.cfg.Destructive.Enabled {
		if m := command.Detect(toolName, params); m != nil && r.cfg.Destructive.SubEnabled(m.Category.String()) {
			action := r.cfg.Destructive.ActionForSeverity(m.Severity)
			v, final := r.apply(action, detection{
				label:    m.Category.String() + ":" + m.Pattern,
				reason:   m.Reason,
				severity: m.Severity,
				isSecret: false,
			}, toolName, params, confirmed)
			if final {
				return v
			}
		}
	}

	if r.cfg.FilterInputs {
		if res := r.scanParams(params); res != nil {
			v, final := r.apply(res.Action, detection{
				label:    res.Match.Type,
				reason:   fmt.Sprintf("%s value detected in parameters", res.Match.Type),
				severity: res.Match.Severity,
				isSecret: true,
			}, toolName, params, confirmed)
			if final {
				return v
			}
		}
	}

	// Nothing actionable; strip a stray confirmation flag so it never
	// reaches the tool.
	if confirmed {
		return Verdict{
			Decision: DecisionAllow,
			State:    StateAllowed,
			Params:   stripConfirmFlag(params),
		}
	}
	return Verdict{Decision: DecisionAllow, State: StateAllowed}
}

// detection is the internal shape handed to apply.
type detection struct {
	label    string
	reason   string
	severity engine.Severity
	isSecret bool
}

// apply maps a resolved action onto the state machine. The second return is
// false when the call should continue to later scans (log/warn outcomes).
func (r *Resolver) apply(action engine.Action, det detection, toolName string, params map[string]any, confirmed bool) (Verdict, bool) {
	switch action {
	case engine.ActionLog:
		r.record(zap.InfoLevel, det, toolName)
		return Verdict{Decision: DecisionAllow, State: StateAllowed}, false

	case engine.ActionWarn:
		r.record(zap.WarnLevel, det, toolName)
		return Verdict{Decision: DecisionAllow, State: StateAllowed}, false

	case engine.ActionRedact:
		if !det.isSecret {
			// Redaction cannot neutralize a destructive command; a
			// misconfigured redact on the destructive category blocks.
			return r.blockVerdict(det), true
		}
		redacted, _ := engine.RedactParams(params, r.cfg).(map[string]any)
		return Verdict{
			Decision:  DecisionAllow,
			State:     StateRedactedAllowed,
			Params:    redacted,
			Reason:    det.reason,
			Detection: det.label,
			Severity:  det.severity,
			Action:    action,
		}, true

	case engine.ActionConfirm:
		if interactiveTools[toolName] {
			return Verdict{
				Decision:        DecisionAllow,
				State:           StateAllowed,
				Reason:          det.reason,
				RequireApproval: true,
				Detection:       det.label,
				Severity:        det.severity,
				Action:          action,
			}, true
		}
		return r.agentConfirm(det, params, confirmed), true

	case engine.ActionAgentConfirm:
		return r.agentConfirm(det, params, confirmed), true

	case engine.ActionBlock:
		return r.blockVerdict(det), true

	default:
		return Verdict{Decision: DecisionAllow, State: StateAllowed}, false
	}
}

// agentConfirm implements the two-round handshake: round 1 blocks with
// resubmission instructions, round 2 (flag present) strips the flag,
// redacts if the detection was a secret, and allows.
func (r *Resolver) agentConfirm(det detection, params map[string]any, confirmed bool) Verdict {
	if !confirmed {
		return Verdict{
			Decision: DecisionBlock,
			State:    StateBlockedPendingConfirm,
			Reason: fmt.Sprintf(
				"%s (%s severity). To proceed anyway, resubmit the identical call with %q set to true.",
				det.reason, det.severity, ConfirmParamKey),
			PendingConfirmation: true,
			Detection:           det.label,
			Severity:            det.severity,
			Action:              engine.ActionAgentConfirm,
		}
	}

	stripped := stripConfirmFlag(params)
	state := StateAllowed
	if det.isSecret {
		stripped, _ = engine.RedactParams(stripped, r.cfg).(map[string]any)
		state = StateRedactedAllowed
	}
	return Verdict{
		Decision:  DecisionAllow,
		State:     state,
		Params:    stripped,
		Reason:    det.reason,
		Detection: det.label,
		Severity:  det.severity,
		Action:    engine.ActionAgentConfirm,
	}
}

func (r *Resolver) blockVerdict(det detection) Verdict {
	return Verdict{
		Decision:  DecisionBlock,
		State:     StateBlocked,
		Reason:    det.reason + " (" + det.severity.String() + " severity)",
		Detection: det.label,
		Severity:  det.severity,
		Action:    engine.ActionBlock,
	}
}

// record logs a non-enforcing detection when detection logging is on.
func (r *Resolver) record(level zapcore.Level, det detection, toolName string) {
	if r.logger == nil || !r.cfg.Logging.LogDetections {
		return
	}
	r.logger.Log(level, "detection",
		zap.String("tool", toolName),
		zap.String("detection", det.label),
		zap.String("severity", det.severity.String()),
		zap.String("reason", det.reason),
	)
}

// scanParams serializes the parameter tree and runs the secret scan over it.
func (r *Resolver) scanParams(params map[string]any) *engine.MatchResult {
	if len(params) == 0 {
		return nil
	}
	buf, err := json.Marshal(params)
	if err != nil {
		return nil
	}
	return engine.DetectSecret(string(buf), r.cfg)
}

// EvaluateOutput filters outgoing text. Block-resolved detections refuse
// the content; everything else redacts.
func (r *Resolver) EvaluateOutput(text string) (string, Decision, string) {
	if !r.cfg.FilterOutputs {
		return text, DecisionAllow, ""
	}
	res := engine.DetectSecret(text, r.cfg)
	if res == nil {
		return text, DecisionAllow, ""
	}
	if res.Action == engine.ActionBlock {
		return "", DecisionBlock, res.Match.Type + " detected in output"
	}
	if res.Action == engine.ActionLog || res.Action == engine.ActionWarn {
		return text, DecisionAllow, ""
	}
	return engine.RedactText(text, r.cfg), DecisionAllow, ""
}

// ContextPrompt returns the text prepended to the agent's initial context,
// describing the confirmation protocol.
func (r *Resolver) ContextPrompt() string {
	return fmt.Sprintf(
		"Some tool calls are screened before execution. A call refused with a "+
			"pending-confirmation notice may be retried once, unchanged, with the "+
			"boolean parameter %q set to true to acknowledge the risk. Never set "+
			"this flag preemptively.", ConfirmParamKey)
}

func extractConfirmFlag(params map[string]any) bool {
	v, ok := params[ConfirmParamKey]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// stripConfirmFlag returns a copy of params without the confirmation flag.
func stripConfirmFlag(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		if k == ConfirmParamKey {
			continue
		}
		out[k] = v
	}
	return out
}
