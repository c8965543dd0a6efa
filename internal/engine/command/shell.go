package command

import (
	"regexp"

	"github.com/rampart-sec/rampart/internal/engine"
)

// Piped remote execution: a downloader piped into a shell interpreter, or
// eval over a download substitution. Flagged critical regardless of any
// other check.
var remoteExecPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:curl|wget)\b[^|]*\|\s*(?:sudo\s+)?(?:ba|z|da|fi)?sh\b`),
	regexp.MustCompile(`\beval\s+\$\(\s*(?:curl|wget)\b`),
	regexp.MustCompile("\\beval\\s+`\\s*(?:curl|wget)\\b"),
}

func checkRemoteExec(cmdStr string) *engine.DestructiveMatch {
	for _, re := range remoteExecPatterns {
		if re.MatchString(cmdStr) {
			return &engine.DestructiveMatch{
				Category: engine.DestructiveNetwork,
				Reason:   "remote script piped into shell",
				Severity: engine.SeverityCritical,
				Pattern:  "curl|sh",
			}
		}
	}
	return nil
}

// Bare output redirection to an absolute path truncates the target file.
// The capture deliberately excludes append (">>") and fd duplication ("2>").
var truncationRe = regexp.MustCompile(`(?:^|[\s;])>\s*(/\S+)`)

func checkTruncation(cmdStr string) *engine.DestructiveMatch {
	m := truncationRe.FindStringSubmatch(cmdStr)
	if m == nil {
		return nil
	}
	target := m[1]
	sev := engine.SeverityHigh
	if isDangerousPath(target) {
		sev = engine.SeverityCritical
	}
	return &engine.DestructiveMatch{
		Category: engine.DestructiveFileDelete,
		Reason:   "output redirection truncates " + target,
		Severity: sev,
		Pattern:  "> " + target,
	}
}
