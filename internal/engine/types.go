package engine

import "regexp"

// Severity is the risk tier of a detection, independent of the action taken.
// Values are ordered so that direct comparison works: critical > high > medium > low.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	case SeverityLow:
		return "low"
	default:
		return "unspecified"
	}
}

// ParseSeverity maps a config string to a Severity. Returns 0 for unknown input.
func ParseSeverity(s string) Severity {
	switch s {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	case "low":
		return SeverityLow
	default:
		return 0
	}
}

// Action is the policy outcome applied to a detection. It is not ordered;
// precedence between detections is decided by Severity, never by Action.
type Action int

const (
	ActionUnspecified Action = iota
	ActionLog
	ActionWarn
	ActionConfirm
	ActionAgentConfirm
	ActionRedact
	ActionBlock
)

// String returns the config-file spelling of the action.
func (a Action) String() string {
	switch a {
	case ActionLog:
		return "log"
	case ActionWarn:
		return "warn"
	case ActionConfirm:
		return "confirm"
	case ActionAgentConfirm:
		return "agent-confirm"
	case ActionRedact:
		return "redact"
	case ActionBlock:
		return "block"
	default:
		return "unspecified"
	}
}

// ParseAction maps a config string to an Action. Returns ActionUnspecified
// for unknown input.
func ParseAction(s string) Action {
	switch s {
	case "log":
		return ActionLog
	case "warn":
		return ActionWarn
	case "confirm":
		return ActionConfirm
	case "agent-confirm":
		return ActionAgentConfirm
	case "redact":
		return ActionRedact
	case "block":
		return ActionBlock
	default:
		return ActionUnspecified
	}
}

// Category classifies which rule family produced a secret match.
type Category int

const (
	CategorySecrets Category = iota + 1
	CategoryPII
	CategoryCustom
)

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case CategorySecrets:
		return "secrets"
	case CategoryPII:
		return "pii"
	case CategoryCustom:
		return "custom"
	default:
		return "unspecified"
	}
}

// DestructiveCategory classifies a destructive command detection.
type DestructiveCategory int

const (
	DestructiveFileDelete DestructiveCategory = iota + 1
	DestructiveGit
	DestructiveSQL
	DestructiveSystem
	DestructiveProcess
	DestructiveNetwork
	DestructivePrivEsc
	DestructiveDangerousPath
)

// String returns the config-file spelling of the destructive category.
func (c DestructiveCategory) String() string {
	switch c {
	case DestructiveFileDelete:
		return "file_delete"
	case DestructiveGit:
		return "git"
	case DestructiveSQL:
		return "sql"
	case DestructiveSystem:
		return "system"
	case DestructiveProcess:
		return "process"
	case DestructiveNetwork:
		return "network"
	case DestructivePrivEsc:
		return "privilege_escalation"
	case DestructiveDangerousPath:
		return "dangerous_path"
	default:
		return "unspecified"
	}
}

// PatternRule is a single compiled detection rule. Immutable once built.
type PatternRule struct {
	Type      string
	Re        *regexp.Regexp
	Validator func(string) bool // nil means no structural validation
	Severity  Severity
	Category  Category
}

// SecretMatch is a located detection within a specific text buffer.
// Offsets are byte offsets into the scanned text.
type SecretMatch struct {
	Type     string
	Start    int
	Length   int
	Severity Severity
	Category Category
}

// DestructiveMatch is produced by the command classifier. It is keyed by
// command semantics rather than a text offset.
type DestructiveMatch struct {
	Category DestructiveCategory
	Reason   string
	Severity Severity
	Pattern  string
}

// MatchResult pairs the worst surviving secret match with its resolved action.
type MatchResult struct {
	Match  SecretMatch
	Action Action
}
