package engine

import (
	"regexp"

	"github.com/rampart-sec/rampart/internal/validate"
)

// Static rule tables. Registration order is part of the contract: API keys,
// then cloud credentials, then tokens, then private keys, then PII, then
// custom patterns. Severity ties between matches are broken by this order.

var apiKeyRules = []PatternRule{
	{
		Type:     "anthropic_api_key",
		Re:       regexp.MustCompile(`\bsk-ant-[A-Za-z0-9_-]{20,}`),
		Severity: SeverityCritical,
		Category: CategorySecrets,
	},
	{
		Type:     "openai_api_key",
		Re:       regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{16,}`),
		Severity: SeverityCritical,
		Category: CategorySecrets,
	},
	{
		Type:     "github_token",
		Re:       regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}\b`),
		Severity: SeverityCritical,
		Category: CategorySecrets,
	},
	{
		Type:     "gitlab_token",
		Re:       regexp.MustCompile(`\bglpat-[A-Za-z0-9_-]{20,}`),
		Severity: SeverityHigh,
		Category: CategorySecrets,
	},
	{
		Type:     "google_api_key",
		Re:       regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{35}\b`),
		Severity: SeverityHigh,
		Category: CategorySecrets,
	},
	{
		Type:     "stripe_secret_key",
		Re:       regexp.MustCompile(`\bsk_(?:live|test)_[A-Za-z0-9]{24,}\b`),
		Severity: SeverityCritical,
		Category: CategorySecrets,
	},
	{
		Type:     "slack_token",
		Re:       regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}`),
		Severity: SeverityHigh,
		Category: CategorySecrets,
	},
	{
		Type:     "sendgrid_api_key",
		Re:       regexp.MustCompile(`\bSG\.[A-Za-z0-9_-]{22}\.[A-Za-z0-9_-]{43}\b`),
		Severity: SeverityHigh,
		Category: CategorySecrets,
	},
	{
		Type:     "npm_token",
		Re:       regexp.MustCompile(`\bnpm_[A-Za-z0-9]{36}\b`),
		Severity: SeverityHigh,
		Category: CategorySecrets,
	},
	{
		Type:     "huggingface_token",
		Re:       regexp.MustCompile(`\bhf_[A-Za-z0-9]{30,}\b`),
		Severity: SeverityHigh,
		Category: CategorySecrets,
	},
}

var cloudRules = []PatternRule{
	{
		Type:     "aws_access_key_id",
		Re:       regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`),
		Severity: SeverityCritical,
		Category: CategorySecrets,
	},
	{
		Type:     "aws_secret_access_key",
		Re:       regexp.MustCompile(`(?i)aws[^\n]{0,20}['"][0-9A-Za-z/+]{40}['"]`),
		Severity: SeverityCritical,
		Category: CategorySecrets,
	},
	{
		Type:     "azure_storage_key",
		Re:       regexp.MustCompile(`(?i)AccountKey=[A-Za-z0-9+/=]{60,}`),
		Severity: SeverityCritical,
		Category: CategorySecrets,
	},
	{
		Type:     "gcp_oauth_token",
		Re:       regexp.MustCompile(`\bya29\.[0-9A-Za-z_-]{20,}`),
		Severity: SeverityHigh,
		Category: CategorySecrets,
	},
}

// Token rules carry the generic shapes: JWTs, bearer headers, env-style
// assignments, CLI flags, and JSON fields. Value character classes exclude
// '[' so redaction placeholders can never re-match.
var tokenRules = []PatternRule{
	{
		Type:     "jwt",
		Re:       regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{5,}`),
		Severity: SeverityHigh,
		Category: CategorySecrets,
	},
	{
		Type:     "bearer_token",
		Re:       regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._~+/-]{16,}=*`),
		Severity: SeverityHigh,
		Category: CategorySecrets,
	},
	{
		Type:     "env_secret",
		Re:       regexp.MustCompile(`(?i)\b(?:api[_-]?key|apikey|secret|token|password|passwd)\s*[=:]\s*['"][^'"\n]{8,}['"]`),
		Severity: SeverityHigh,
		Category: CategorySecrets,
	},
	{
		Type:     "cli_flag_secret",
		Re:       regexp.MustCompile(`(?i)--(?:api[_-]?key|token|password|secret)[=\s][A-Za-z0-9._~+/-]{8,}`),
		Severity: SeverityMedium,
		Category: CategorySecrets,
	},
	{
		Type:     "json_field_secret",
		Re:       regexp.MustCompile(`(?i)"(?:api[_-]?key|apikey|secret|token|password|access[_-]?token)"\s*:\s*"[^"\n]{8,}"`),
		Severity: SeverityHigh,
		Category: CategorySecrets,
	},
}

var privateKeyRules = []PatternRule{
	{
		Type:     "private_key_block",
		Re:       regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY( BLOCK)?-----[\s\S]*?-----END [A-Z ]*PRIVATE KEY( BLOCK)?-----`),
		Severity: SeverityCritical,
		Category: CategorySecrets,
	},
}

// piiRules builds the PII table. It is rebuilt per call because the phone
// validator closes over the configured default region.
func piiRules(phoneRegion string) []PatternRule {
	return []PatternRule{
		{
			Type:      "credit_card",
			Re:        regexp.MustCompile(`\b\d(?:[ -]?\d){12,18}\b`),
			Validator: validate.IsValidCreditCard,
			Severity:  SeverityHigh,
			Category:  CategoryPII,
		},
		{
			Type:      "ssn",
			Re:        regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			Validator: validate.IsValidSSN,
			Severity:  SeverityHigh,
			Category:  CategoryPII,
		},
		{
			Type:      "email",
			Re:        regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
			Validator: validate.IsValidEmail,
			Severity:  SeverityMedium,
			Category:  CategoryPII,
		},
		{
			Type: "phone",
			Re:   regexp.MustCompile(`\+?\d{0,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),
			Validator: func(s string) bool {
				return validate.IsValidPhone(s, phoneRegion)
			},
			Severity: SeverityMedium,
			Category: CategoryPII,
		},
		{
			Type:     "iban",
			Re:       regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`),
			Severity: SeverityHigh,
			Category: CategoryPII,
		},
	}
}
