package engine

import (
	"regexp"
	"strings"
)

// Config is the immutable guard configuration. It is constructed once at
// startup (or per project, from the store) and only ever read by the core.
type Config struct {
	FilterInputs  bool
	FilterOutputs bool

	Secrets     CategoryConfig
	PII         CategoryConfig
	Destructive CategoryConfig

	CustomPatterns []CustomPattern
	Allowlist      Allowlist
	Logging        LoggingConfig

	// PhoneRegion is the default region for phone-number validation ("US"
	// unless configured otherwise).
	PhoneRegion string
}

// CategoryConfig controls one detection family (secrets, pii, destructive).
type CategoryConfig struct {
	Enabled bool
	// Action is the default action when no severity-specific action is set.
	Action Action
	// SeverityActions maps a severity to its action, overriding Action.
	SeverityActions map[Severity]Action
	// Categories toggles sub-categories by name. A missing entry means enabled.
	Categories map[string]bool
}

// ActionForSeverity resolves the action for a detection of the given
// severity: the severity-specific action if set, else the default action.
func (c CategoryConfig) ActionForSeverity(sev Severity) Action {
	if a, ok := c.SeverityActions[sev]; ok && a != ActionUnspecified {
		return a
	}
	return c.Action
}

// SubEnabled reports whether a sub-category is enabled. Sub-categories are
// opt-out: anything not explicitly disabled is on.
func (c CategoryConfig) SubEnabled(name string) bool {
	if c.Categories == nil {
		return true
	}
	v, ok := c.Categories[name]
	if !ok {
		return true
	}
	return v
}

// CustomPattern is a user-supplied detection rule. Severity and Action are
// optional: zero values mean "unset". An Action override bypasses
// severity-based resolution entirely for this pattern's matches.
type CustomPattern struct {
	Name     string
	Pattern  string
	Severity Severity
	Action   Action
}

// Allowlist holds configured exemptions, evaluated at two granularities:
// Tools and Sessions exempt a whole call, Patterns exempt individual matches.
type Allowlist struct {
	Tools    []string
	Patterns []string
	Sessions []string
}

// LoggingConfig controls detection logging.
type LoggingConfig struct {
	LogDetections bool
	LogLevel      string
}

// IsAllowlisted reports whether the whole call is exempt, by tool name or
// session key. Text content is not consulted here.
func IsAllowlisted(al Allowlist, toolName, sessionKey string) bool {
	for _, t := range al.Tools {
		if strings.EqualFold(t, toolName) {
			return true
		}
	}
	if sessionKey != "" {
		for _, s := range al.Sessions {
			if s == sessionKey {
				return true
			}
		}
	}
	return false
}

// IsMatchAllowlisted reports whether a matched substring is exempted by any
// allowlist pattern. A pattern that fails to compile is treated as
// non-matching rather than raising.
func IsMatchAllowlisted(matchText string, patterns []string) bool {
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		if re.MatchString(matchText) {
			return true
		}
	}
	return false
}

// customActionFor returns the explicit action override for a custom rule
// type (as produced by BuildPatterns), or ActionUnspecified.
func (c *Config) customActionFor(ruleType string) Action {
	name, ok := strings.CutPrefix(ruleType, customTypePrefix)
	if !ok {
		return ActionUnspecified
	}
	for _, cp := range c.CustomPatterns {
		if cp.Name == name {
			return cp.Action
		}
	}
	return ActionUnspecified
}

// customSeverityDefault is applied to custom patterns without an explicit
// severity override.
const customSeverityDefault = SeverityMedium

// DefaultConfig returns the configuration used when no config file or
// per-project config is present.
func DefaultConfig() *Config {
	return &Config{
		FilterInputs:  true,
		FilterOutputs: true,
		Secrets: CategoryConfig{
			Enabled: true,
			Action:  ActionRedact,
			SeverityActions: map[Severity]Action{
				SeverityCritical: ActionBlock,
			},
		},
		PII: CategoryConfig{
			Enabled: true,
			Action:  ActionRedact,
		},
		Destructive: CategoryConfig{
			Enabled: true,
			Action:  ActionAgentConfirm,
			SeverityActions: map[Severity]Action{
				SeverityMedium: ActionWarn,
				SeverityLow:    ActionLog,
			},
		},
		Logging: LoggingConfig{
			LogDetections: true,
			LogLevel:      "info",
		},
		PhoneRegion: "US",
	}
}
