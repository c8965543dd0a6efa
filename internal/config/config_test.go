package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rampart-sec/rampart/internal/engine"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rampart.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	def := engine.DefaultConfig()
	if cfg.FilterInputs != def.FilterInputs || cfg.Secrets.Action != def.Secrets.Action {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_FullDocument(t *testing.T) {
	path := writeConfig(t, `
filter_outputs: false
phone_region: gb
secrets:
  action: warn
  severity_actions:
    critical: block
pii:
  enabled: false
destructive:
  categories:
    git: false
custom_patterns:
  - name: ticket
    pattern: 'TICKET-\d+'
    severity: high
    action: log
allowlist:
  tools:
    - trusted
  patterns:
    - 'sk-test-.*'
logging:
  log_detections: false
  log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.FilterInputs {
		t.Error("filter_inputs default should survive a partial document")
	}
	if cfg.FilterOutputs {
		t.Error("filter_outputs should be false")
	}
	if cfg.PhoneRegion != "GB" {
		t.Errorf("phone_region = %q, want GB", cfg.PhoneRegion)
	}
	if cfg.Secrets.Action != engine.ActionWarn {
		t.Errorf("secrets action = %s, want warn", cfg.Secrets.Action)
	}
	if cfg.Secrets.SeverityActions[engine.SeverityCritical] != engine.ActionBlock {
		t.Error("secrets critical severity action should be block")
	}
	if cfg.PII.Enabled {
		t.Error("pii should be disabled")
	}
	if cfg.Destructive.SubEnabled("git") {
		t.Error("git sub-category should be disabled")
	}
	if cfg.Destructive.SubEnabled("file_delete") != true {
		t.Error("unlisted sub-categories stay enabled")
	}
	if len(cfg.CustomPatterns) != 1 {
		t.Fatalf("custom patterns = %d, want 1", len(cfg.CustomPatterns))
	}
	cp := cfg.CustomPatterns[0]
	if cp.Name != "ticket" || cp.Severity != engine.SeverityHigh || cp.Action != engine.ActionLog {
		t.Errorf("custom pattern = %+v", cp)
	}
	if len(cfg.Allowlist.Tools) != 1 || cfg.Allowlist.Tools[0] != "trusted" {
		t.Errorf("allowlist tools = %v", cfg.Allowlist.Tools)
	}
	if cfg.Logging.LogDetections {
		t.Error("log_detections should be false")
	}
	if cfg.Logging.LogLevel != "debug" {
		t.Errorf("log_level = %q", cfg.Logging.LogLevel)
	}
}

func TestLoad_RejectsUnknownAction(t *testing.T) {
	path := writeConfig(t, `
secrets:
  action: explode
`)
	if _, err := Load(path); err == nil {
		t.Error("unknown action should fail validation")
	}
}

func TestLoad_RejectsUnknownField(t *testing.T) {
	path := writeConfig(t, `
detectors:
  pii: true
`)
	if _, err := Load(path); err == nil {
		t.Error("unknown top-level field should fail validation")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file should be an error")
	}
}

func TestFromJSON(t *testing.T) {
	t.Run("empty document yields defaults", func(t *testing.T) {
		for _, raw := range [][]byte{nil, []byte("{}"), []byte("null")} {
			cfg, err := FromJSON(raw)
			if err != nil {
				t.Fatalf("%s: %v", raw, err)
			}
			if cfg.Secrets.Action != engine.ActionRedact {
				t.Errorf("%s: expected default secrets action", raw)
			}
		}
	})

	t.Run("valid document", func(t *testing.T) {
		cfg, err := FromJSON([]byte(`{
			"destructive": {"action": "block"},
			"allowlist": {"sessions": ["sess-ci"]}
		}`))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Destructive.Action != engine.ActionBlock {
			t.Errorf("destructive action = %s", cfg.Destructive.Action)
		}
		if len(cfg.Allowlist.Sessions) != 1 {
			t.Errorf("allowlist sessions = %v", cfg.Allowlist.Sessions)
		}
	})

	t.Run("invalid severity rejected", func(t *testing.T) {
		_, err := FromJSON([]byte(`{
			"custom_patterns": [{"name": "x", "pattern": "y", "severity": "extreme"}]
		}`))
		if err == nil {
			t.Error("invalid severity should fail validation")
		}
	})

	t.Run("custom pattern requires name and pattern", func(t *testing.T) {
		_, err := FromJSON([]byte(`{"custom_patterns": [{"name": "x"}]}`))
		if err == nil {
			t.Error("pattern-less entry should fail validation")
		}
	})

	t.Run("malformed json rejected", func(t *testing.T) {
		if _, err := FromJSON([]byte(`{"secrets":`)); err == nil {
			t.Error("malformed json should be an error")
		}
	})
}
