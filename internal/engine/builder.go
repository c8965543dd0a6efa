package engine

import "regexp"

// Sub-category names recognized in the secrets Categories map.
const (
	subAPIKeys          = "api_keys"
	subCloudCredentials = "cloud_credentials"
	subTokens           = "tokens"
	subPrivateKeys      = "private_keys"
)

const customTypePrefix = "custom:"

// BuildPatterns assembles the active rule set for the given configuration:
// enabled secret sub-categories, enabled PII sub-categories, then compiled
// custom patterns. It is called on every detection so the rule set always
// reflects the configuration handed in; callers must not cache the result
// across config changes.
func BuildPatterns(cfg *Config) []PatternRule {
	var rules []PatternRule

	if cfg.Secrets.Enabled {
		if cfg.Secrets.SubEnabled(subAPIKeys) {
			rules = append(rules, apiKeyRules...)
		}
		if cfg.Secrets.SubEnabled(subCloudCredentials) {
			rules = append(rules, cloudRules...)
		}
		if cfg.Secrets.SubEnabled(subTokens) {
			rules = append(rules, tokenRules...)
		}
		if cfg.Secrets.SubEnabled(subPrivateKeys) {
			rules = append(rules, privateKeyRules...)
		}
	}

	if cfg.PII.Enabled {
		region := cfg.PhoneRegion
		if region == "" {
			region = "US"
		}
		for _, r := range piiRules(region) {
			if cfg.PII.SubEnabled(r.Type) {
				rules = append(rules, r)
			}
		}
	}

	// Custom patterns compile with case-insensitive semantics. An invalid
	// pattern is dropped, not an error: the engine keeps running on the
	// remaining rules.
	for _, cp := range cfg.CustomPatterns {
		re, err := regexp.Compile("(?i)" + cp.Pattern)
		if err != nil {
			continue
		}
		sev := cp.Severity
		if sev == 0 {
			sev = customSeverityDefault
		}
		rules = append(rules, PatternRule{
			Type:     customTypePrefix + cp.Name,
			Re:       re,
			Severity: sev,
			Category: CategoryCustom,
		})
	}

	return rules
}
