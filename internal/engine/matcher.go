package engine

// DetectAll runs every rule over the text and returns all validator-passing
// matches. Results are ordered by rule registration, not by text position.
// Scanning within a rule continues past candidates its validator rejects.
func DetectAll(text string, rules []PatternRule) []SecretMatch {
	var matches []SecretMatch
	for _, r := range rules {
		off := 0
		for off < len(text) {
			loc := r.Re.FindStringIndex(text[off:])
			if loc == nil {
				break
			}
			start, end := off+loc[0], off+loc[1]
			if r.Validator == nil || r.Validator(text[start:end]) {
				matches = append(matches, SecretMatch{
					Type:     r.Type,
					Start:    start,
					Length:   end - start,
					Severity: r.Severity,
					Category: r.Category,
				})
			}
			if end == start {
				end++ // zero-width match, step forward
			}
			off = end
		}
	}
	return matches
}

// DetectFirst returns the first validator-passing match in rule-registration
// order, or nil if nothing matched.
func DetectFirst(text string, rules []PatternRule) *SecretMatch {
	for _, r := range rules {
		off := 0
		for off < len(text) {
			loc := r.Re.FindStringIndex(text[off:])
			if loc == nil {
				break
			}
			start, end := off+loc[0], off+loc[1]
			if r.Validator == nil || r.Validator(text[start:end]) {
				return &SecretMatch{
					Type:     r.Type,
					Start:    start,
					Length:   end - start,
					Severity: r.Severity,
					Category: r.Category,
				}
			}
			if end == start {
				end++
			}
			off = end
		}
	}
	return nil
}

// DetectSecret builds the active rule set, scans the text, drops matches
// exempted by allowlist text patterns, and returns the worst surviving match
// with its resolved action. Severity strictly determines "worst"; ties keep
// the earliest-registered rule's match. Returns nil when nothing survives.
func DetectSecret(text string, cfg *Config) *MatchResult {
	rules := BuildPatterns(cfg)
	matches := DetectAll(text, rules)

	var best *SecretMatch
	for i := range matches {
		m := &matches[i]
		if IsMatchAllowlisted(text[m.Start:m.Start+m.Length], cfg.Allowlist.Patterns) {
			continue
		}
		if best == nil || m.Severity > best.Severity {
			best = m
		}
	}
	if best == nil {
		return nil
	}

	return &MatchResult{
		Match:  *best,
		Action: resolveAction(*best, cfg),
	}
}

// resolveAction maps a match to its action: an explicit custom-pattern
// override wins outright, otherwise the owning category config decides by
// severity. Custom patterns without an override resolve through the secrets
// category config.
func resolveAction(m SecretMatch, cfg *Config) Action {
	switch m.Category {
	case CategoryPII:
		return cfg.PII.ActionForSeverity(m.Severity)
	case CategoryCustom:
		if a := cfg.customActionFor(m.Type); a != ActionUnspecified {
			return a
		}
		return cfg.Secrets.ActionForSeverity(m.Severity)
	default:
		return cfg.Secrets.ActionForSeverity(m.Severity)
	}
}

// HasSecret reports whether any non-allowlisted secret or PII value is
// present in the text.
func HasSecret(text string, cfg *Config) bool {
	return DetectSecret(text, cfg) != nil
}

// ActionForFirstMatch returns the resolved action for the worst match in the
// text, or ActionUnspecified when the text is clean.
func ActionForFirstMatch(text string, cfg *Config) Action {
	res := DetectSecret(text, cfg)
	if res == nil {
		return ActionUnspecified
	}
	return res.Action
}
