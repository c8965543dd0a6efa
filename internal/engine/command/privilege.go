package command

import (
	"strings"

	"github.com/rampart-sec/rampart/internal/engine"
)

func isPrivEsc(name string) bool {
	switch name {
	case "sudo", "doas", "pkexec", "su":
		return true
	}
	return false
}

// Wrapper flags that consume the following token.
var privEscFlagsWithValue = map[string]map[string]bool{
	"sudo":   {"-u": true, "-g": true, "-p": true, "-r": true, "-t": true, "-h": true, "-C": true},
	"doas":   {"-u": true, "-C": true},
	"pkexec": {"--user": true},
}

// checkPrivEsc recovers the inner command behind a privilege-escalation
// wrapper and re-runs it through the other sub-detectors. A destructive
// inner command escalates to critical, with the wrapper recorded in the
// reason and pattern. The unwrap goes exactly one level deep: a wrapper
// inside a wrapper is reported as the bare privilege-escalation match.
func checkPrivEsc(name string, args []string) *engine.DestructiveMatch {
	inner, innerArgs := unwrapPrivEsc(name, args)

	if inner != "" {
		m := checkCommand(inner, innerArgs, false)
		if m == nil {
			m = checkDangerousPaths(innerArgs)
		}
		if m != nil {
			return &engine.DestructiveMatch{
				Category: m.Category,
				Reason:   name + " escalation: " + m.Reason,
				Severity: engine.SeverityCritical,
				Pattern:  name + " " + m.Pattern,
			}
		}
	}

	return &engine.DestructiveMatch{
		Category: engine.DestructivePrivEsc,
		Reason:   "privilege escalation via " + name,
		Severity: engine.SeverityHigh,
		Pattern:  name,
	}
}

// unwrapPrivEsc extracts the wrapped command and arguments. For sudo, doas,
// and pkexec the wrapper's own flags are skipped; for su the command is the
// -c string, split on whitespace.
func unwrapPrivEsc(name string, args []string) (string, []string) {
	if name == "su" {
		for i, a := range args {
			if a == "-c" && i+1 < len(args) {
				inner := strings.Trim(args[i+1], `"'`)
				fields := strings.Fields(inner)
				if len(fields) == 0 {
					return "", nil
				}
				return normalizeExe(fields[0]), fields[1:]
			}
		}
		return "", nil
	}

	valued := privEscFlagsWithValue[name]
	for i := 0; i < len(args); i++ {
		a := args[i]
		if valued[a] {
			i++
			continue
		}
		if strings.HasPrefix(a, "-") {
			continue
		}
		return normalizeExe(a), args[i+1:]
	}
	return "", nil
}
