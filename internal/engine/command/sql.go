package command

import (
	"regexp"

	"github.com/rampart-sec/rampart/internal/engine"
)

var (
	sqlDropRe        = regexp.MustCompile(`(?i)\b(DROP|TRUNCATE)\s+(TABLE|DATABASE|INDEX|SCHEMA|VIEW)\b`)
	sqlDeleteRe      = regexp.MustCompile(`(?i)\bDELETE\s+FROM\s+\S+`)
	sqlUpdateRe      = regexp.MustCompile(`(?i)\bUPDATE\s+\S+\s+SET\b`)
	sqlAlterDropRe   = regexp.MustCompile(`(?i)\bALTER\s+TABLE\s+\S+\s+DROP\b`)
	sqlWhereClauseRe = regexp.MustCompile(`(?i)\bWHERE\b`)
)

// checkSQL flags destructive SQL in free text: DROP/TRUNCATE, DELETE or
// UPDATE without a WHERE clause, and ALTER ... DROP.
func checkSQL(s string) *engine.DestructiveMatch {
	sql := func(sev engine.Severity, reason, pattern string) *engine.DestructiveMatch {
		return &engine.DestructiveMatch{
			Category: engine.DestructiveSQL,
			Reason:   reason,
			Severity: sev,
			Pattern:  pattern,
		}
	}

	if m := sqlDropRe.FindString(s); m != "" {
		return sql(engine.SeverityCritical, "drops or truncates a database object", m)
	}
	if sqlDeleteRe.MatchString(s) && !sqlWhereClauseRe.MatchString(s) {
		return sql(engine.SeverityCritical, "DELETE without WHERE clause", "DELETE FROM")
	}
	if sqlUpdateRe.MatchString(s) && !sqlWhereClauseRe.MatchString(s) {
		return sql(engine.SeverityHigh, "UPDATE without WHERE clause", "UPDATE SET")
	}
	if m := sqlAlterDropRe.FindString(s); m != "" {
		return sql(engine.SeverityHigh, "ALTER drops a column or constraint", m)
	}
	return nil
}
