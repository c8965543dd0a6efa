// Package config loads the guard configuration from a file (with
// RAMPART_-prefixed environment overrides) or from a raw JSON document, and
// maps it onto the immutable engine.Config consumed by the core.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rampart-sec/rampart/internal/engine"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/viper"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "rampart-config.schema.json"

// fileConfig mirrors the document shape. Pointer fields distinguish "unset"
// from explicit false so defaults survive partial configs.
type fileConfig struct {
	FilterInputs   *bool          `mapstructure:"filter_inputs" json:"filter_inputs,omitempty"`
	FilterOutputs  *bool          `mapstructure:"filter_outputs" json:"filter_outputs,omitempty"`
	PhoneRegion    string         `mapstructure:"phone_region" json:"phone_region,omitempty"`
	Secrets        *categoryFile  `mapstructure:"secrets" json:"secrets,omitempty"`
	PII            *categoryFile  `mapstructure:"pii" json:"pii,omitempty"`
	Destructive    *categoryFile  `mapstructure:"destructive" json:"destructive,omitempty"`
	CustomPatterns []customFile   `mapstructure:"custom_patterns" json:"custom_patterns,omitempty"`
	Allowlist      *allowlistFile `mapstructure:"allowlist" json:"allowlist,omitempty"`
	Logging        *loggingFile   `mapstructure:"logging" json:"logging,omitempty"`
}

type categoryFile struct {
	Enabled         *bool             `mapstructure:"enabled" json:"enabled,omitempty"`
	Action          string            `mapstructure:"action" json:"action,omitempty"`
	SeverityActions map[string]string `mapstructure:"severity_actions" json:"severity_actions,omitempty"`
	Categories      map[string]bool   `mapstructure:"categories" json:"categories,omitempty"`
}

type customFile struct {
	Name     string `mapstructure:"name" json:"name"`
	Pattern  string `mapstructure:"pattern" json:"pattern"`
	Severity string `mapstructure:"severity" json:"severity,omitempty"`
	Action   string `mapstructure:"action" json:"action,omitempty"`
}

type allowlistFile struct {
	Tools    []string `mapstructure:"tools" json:"tools,omitempty"`
	Patterns []string `mapstructure:"patterns" json:"patterns,omitempty"`
	Sessions []string `mapstructure:"sessions" json:"sessions,omitempty"`
}

type loggingFile struct {
	LogDetections *bool  `mapstructure:"log_detections" json:"log_detections,omitempty"`
	LogLevel      string `mapstructure:"log_level" json:"log_level,omitempty"`
}

// Load reads the config file at path, validates it against the embedded
// schema, and returns the resulting engine.Config layered over the
// defaults. An empty path returns the defaults untouched.
func Load(path string) (*engine.Config, error) {
	if path == "" {
		return engine.DefaultConfig(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("RAMPART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	raw, err := json.Marshal(v.AllSettings())
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return fc.apply(engine.DefaultConfig())
}

// FromJSON maps a raw JSON document (a per-project config from the store)
// onto the defaults. The document is schema-validated first.
func FromJSON(raw []byte) (*engine.Config, error) {
	if len(raw) == 0 || string(raw) == "{}" || string(raw) == "null" {
		return engine.DefaultConfig(), nil
	}
	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var fc fileConfig
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return fc.apply(engine.DefaultConfig())
}

func validateSchema(raw []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return err
	}
	sch, err := compiler.Compile(schemaURL)
	if err != nil {
		return err
	}
	return sch.Validate(inst)
}

// apply layers the document over base and returns the result.
func (fc *fileConfig) apply(base *engine.Config) (*engine.Config, error) {
	cfg := base

	if fc.FilterInputs != nil {
		cfg.FilterInputs = *fc.FilterInputs
	}
	if fc.FilterOutputs != nil {
		cfg.FilterOutputs = *fc.FilterOutputs
	}
	if fc.PhoneRegion != "" {
		cfg.PhoneRegion = strings.ToUpper(fc.PhoneRegion)
	}

	if err := applyCategory(&cfg.Secrets, fc.Secrets, "secrets"); err != nil {
		return nil, err
	}
	if err := applyCategory(&cfg.PII, fc.PII, "pii"); err != nil {
		return nil, err
	}
	if err := applyCategory(&cfg.Destructive, fc.Destructive, "destructive"); err != nil {
		return nil, err
	}

	for _, cp := range fc.CustomPatterns {
		p := engine.CustomPattern{Name: cp.Name, Pattern: cp.Pattern}
		if cp.Severity != "" {
			if p.Severity = engine.ParseSeverity(cp.Severity); p.Severity == 0 {
				return nil, fmt.Errorf("config: custom pattern %q: unknown severity %q", cp.Name, cp.Severity)
			}
		}
		if cp.Action != "" {
			if p.Action = engine.ParseAction(cp.Action); p.Action == engine.ActionUnspecified {
				return nil, fmt.Errorf("config: custom pattern %q: unknown action %q", cp.Name, cp.Action)
			}
		}
		cfg.CustomPatterns = append(cfg.CustomPatterns, p)
	}

	if fc.Allowlist != nil {
		cfg.Allowlist = engine.Allowlist{
			Tools:    fc.Allowlist.Tools,
			Patterns: fc.Allowlist.Patterns,
			Sessions: fc.Allowlist.Sessions,
		}
	}
	if fc.Logging != nil {
		if fc.Logging.LogDetections != nil {
			cfg.Logging.LogDetections = *fc.Logging.LogDetections
		}
		if fc.Logging.LogLevel != "" {
			cfg.Logging.LogLevel = fc.Logging.LogLevel
		}
	}

	return cfg, nil
}

func applyCategory(dst *engine.CategoryConfig, src *categoryFile, name string) error {
	if src == nil {
		return nil
	}
	if src.Enabled != nil {
		dst.Enabled = *src.Enabled
	}
	if src.Action != "" {
		a := engine.ParseAction(src.Action)
		if a == engine.ActionUnspecified {
			return fmt.Errorf("config: %s: unknown action %q", name, src.Action)
		}
		dst.Action = a
	}
	if len(src.SeverityActions) > 0 {
		m := make(map[engine.Severity]engine.Action, len(src.SeverityActions))
		for sevStr, actStr := range src.SeverityActions {
			sev := engine.ParseSeverity(sevStr)
			if sev == 0 {
				return fmt.Errorf("config: %s: unknown severity %q", name, sevStr)
			}
			a := engine.ParseAction(actStr)
			if a == engine.ActionUnspecified {
				return fmt.Errorf("config: %s: unknown action %q for severity %q", name, actStr, sevStr)
			}
			m[sev] = a
		}
		dst.SeverityActions = m
	}
	if src.Categories != nil {
		dst.Categories = src.Categories
	}
	return nil
}
