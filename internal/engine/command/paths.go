package command

import (
	"strings"

	"github.com/rampart-sec/rampart/internal/engine"
)

// Denylisted paths and identifiers. An argument matching any entry produces
// a dangerous_path detection regardless of which command issued it.
var dangerousExact = map[string]bool{
	"/":     true,
	"/*":    true,
	"*":     true,
	"~":     true,
	"~/":    true,
	"$HOME": true,
	"/root": true,
}

var dangerousPrefixes = []string{
	"/etc",
	"/usr",
	"/bin",
	"/sbin",
	"/boot",
	"/dev",
	"/root/",
}

var dangerousWindowsPrefixes = []string{
	`c:\windows`,
	`c:\program files`,
	`c:\programdata`,
}

var dangerousConfigDirs = []string{
	".ssh",
	".gnupg",
}

// isDangerousPath reports whether a single argument names a denylisted path
// or identifier.
func isDangerousPath(arg string) bool {
	if arg == "" {
		return false
	}
	trimmed := strings.TrimSuffix(arg, "/")
	if trimmed == "" {
		trimmed = "/"
	}
	if dangerousExact[arg] || dangerousExact[trimmed] {
		return true
	}

	for _, p := range dangerousPrefixes {
		if trimmed == p || strings.HasPrefix(arg, p+"/") {
			return true
		}
	}

	lower := strings.ToLower(arg)
	for _, p := range dangerousWindowsPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}

	for _, d := range dangerousConfigDirs {
		if arg == d || strings.HasSuffix(trimmed, "/"+d) || strings.HasPrefix(arg, "~/"+d) {
			return true
		}
	}

	return false
}

// checkDangerousPaths scans an argument vector for denylisted paths. Root,
// bare wildcards, and Windows system paths are critical; the rest high.
func checkDangerousPaths(args []string) *engine.DestructiveMatch {
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			continue
		}
		if !isDangerousPath(a) {
			continue
		}
		sev := engine.SeverityHigh
		if a == "/" || a == "/*" || a == "*" || strings.HasPrefix(strings.ToLower(a), `c:\`) {
			sev = engine.SeverityCritical
		}
		return &engine.DestructiveMatch{
			Category: engine.DestructiveDangerousPath,
			Reason:   "argument targets protected path " + a,
			Severity: sev,
			Pattern:  a,
		}
	}
	return nil
}
