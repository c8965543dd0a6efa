package command

import (
	"strings"

	"github.com/rampart-sec/rampart/internal/engine"
)

// gitGlobalFlagsWithValue are git flags that consume the following token,
// and must be skipped to find the real subcommand.
var gitGlobalFlagsWithValue = map[string]bool{
	"-C": true,
	"-c": true,
}

// checkGit classifies history-destroying git subcommands. Global flags
// before the subcommand are skipped.
func checkGit(args []string) *engine.DestructiveMatch {
	sub := ""
	var rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if gitGlobalFlagsWithValue[a] {
			i++
			continue
		}
		if strings.HasPrefix(a, "-") {
			continue
		}
		sub = a
		rest = args[i+1:]
		break
	}
	if sub == "" {
		return nil
	}

	git := func(sev engine.Severity, reason, pattern string) *engine.DestructiveMatch {
		return &engine.DestructiveMatch{
			Category: engine.DestructiveGit,
			Reason:   reason,
			Severity: sev,
			Pattern:  pattern,
		}
	}

	switch sub {
	case "reset", "revert", "checkout", "restore":
		if hasArg(rest, "--hard") {
			return git(engine.SeverityCritical, "discards uncommitted work", "git "+sub+" --hard")
		}
		return git(engine.SeverityHigh, "rewrites or discards working state", "git "+sub)

	case "clean":
		if hasForce(rest) {
			return git(engine.SeverityHigh, "removes untracked files", "git clean -f")
		}

	case "switch":
		if hasForce(rest) || hasArg(rest, "--discard-changes") {
			return git(engine.SeverityHigh, "discards local changes on switch", "git switch --force")
		}

	case "stash":
		if len(rest) > 0 {
			switch rest[0] {
			case "drop", "pop":
				return git(engine.SeverityHigh, "discards stashed changes", "git stash "+rest[0])
			case "clear":
				return git(engine.SeverityCritical, "discards all stashed changes", "git stash clear")
			}
		}

	case "push":
		if hasArg(rest, "--force") || hasArg(rest, "-f") {
			return git(engine.SeverityCritical, "force push rewrites remote history", "git push --force")
		}

	case "branch":
		if hasArg(rest, "-d") || hasArg(rest, "-D") || hasArg(rest, "--delete") {
			return git(engine.SeverityMedium, "deletes a branch", "git branch -d")
		}

	case "reflog":
		if len(rest) > 0 && (rest[0] == "expire" || rest[0] == "delete") {
			return git(engine.SeverityCritical, "destroys reflog recovery points", "git reflog "+rest[0])
		}
	}

	return nil
}

func hasArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

// hasForce detects -f, --force, and combined short flags carrying 'f'
// (e.g. git clean -fd).
func hasForce(args []string) bool {
	for _, a := range args {
		if a == "--force" {
			return true
		}
		if strings.HasPrefix(a, "-") && !strings.HasPrefix(a, "--") && strings.Contains(a, "f") {
			return true
		}
	}
	return false
}
