// Package command classifies shell invocations that could destroy data or
// damage the host. Unlike the secret scanner it is not regex-table driven:
// each sub-detector inspects a normalized command name and its argument
// vector. Tokenization is best-effort whitespace splitting with no quoting
// awareness; arguments containing quoted spaces split incorrectly. That is a
// documented precision limit of the classifier, kept deliberately so results
// stay stable.
package command

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/rampart-sec/rampart/internal/engine"
)

// Detect extracts a command string from the conventional parameter shapes
// (a "command"/"cmd" string, an "args" list, or an "input" string checked
// only for SQL) and classifies it. Checks run in a fixed priority order:
// remote execution and truncation against the full string, then privilege
// unwrap and per-command sub-detectors, then the generic system table, then
// dangerous paths, then SQL against every string parameter. The first match
// wins; nil means not destructive.
func Detect(toolName string, params map[string]any) *engine.DestructiveMatch {
	cmdStr, args := extractCommand(params)

	if cmdStr != "" {
		if m := checkRemoteExec(cmdStr); m != nil {
			return m
		}
		if m := checkTruncation(cmdStr); m != nil {
			return m
		}
		if len(args) > 0 {
			name := normalizeExe(args[0])
			if m := checkCommand(name, args[1:], true); m != nil {
				return m
			}
			if m := checkDangerousPaths(args[1:]); m != nil {
				return m
			}
		}
	}

	// SQL applies to any string-valued parameter, not just a designated
	// field. Keys are visited in sorted order so the decision is
	// deterministic when several parameters contain SQL.
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s, ok := params[k].(string); ok {
			if m := checkSQL(s); m != nil {
				return m
			}
		}
	}

	return nil
}

// MightBeDestructive reports whether the call would be flagged at all.
func MightBeDestructive(toolName string, params map[string]any) bool {
	return Detect(toolName, params) != nil
}

// extractCommand pulls the raw command string and its whitespace-split
// tokens out of whichever conventional parameter shape is present.
func extractCommand(params map[string]any) (string, []string) {
	for _, key := range []string{"command", "cmd"} {
		if s, ok := params[key].(string); ok && s != "" {
			return s, strings.Fields(s)
		}
	}
	if raw, ok := params["args"]; ok {
		var args []string
		switch t := raw.(type) {
		case []string:
			args = t
		case []any:
			for _, el := range t {
				if s, ok := el.(string); ok {
					args = append(args, s)
				}
			}
		}
		if len(args) > 0 {
			return strings.Join(args, " "), args
		}
	}
	return "", nil
}

// normalizeExe reduces an executable token to its bare name.
func normalizeExe(tok string) string {
	return strings.ToLower(filepath.Base(tok))
}

// checkCommand dispatches a normalized command through the sub-detectors.
// unwrap limits privilege-escalation unwrapping to a single level: a
// privilege-escalation command wrapping another one is not unwrapped again.
func checkCommand(name string, args []string, unwrap bool) *engine.DestructiveMatch {
	if unwrap && isPrivEsc(name) {
		return checkPrivEsc(name, args)
	}

	switch name {
	case "rm":
		return IsDestructiveRm(args)
	case "git":
		return checkGit(args)
	case "find":
		return checkFind(args)
	case "xargs":
		return checkXargs(args)
	}

	return checkSystem(name, args)
}

// IsDestructiveRm flags the recursive+force flag combination, including
// combined short flags and the long-form pair. Recursive or force alone is
// not flagged.
func IsDestructiveRm(args []string) *engine.DestructiveMatch {
	recursive, force := false, false
	for _, a := range args {
		switch {
		case a == "--recursive":
			recursive = true
		case a == "--force":
			force = true
		case strings.HasPrefix(a, "-") && !strings.HasPrefix(a, "--"):
			if strings.ContainsAny(a, "rR") {
				recursive = true
			}
			if strings.Contains(a, "f") {
				force = true
			}
		}
	}
	if recursive && force {
		return &engine.DestructiveMatch{
			Category: engine.DestructiveFileDelete,
			Reason:   "recursive force deletion",
			Severity: engine.SeverityCritical,
			Pattern:  "rm -rf",
		}
	}
	return nil
}

// checkFind flags find invocations that delete in bulk. Severity escalates
// to critical when the starting path is on the denylist.
func checkFind(args []string) *engine.DestructiveMatch {
	deletes := false
	for i, a := range args {
		if a == "-delete" {
			deletes = true
			break
		}
		if a == "-exec" && i+1 < len(args) && normalizeExe(args[i+1]) == "rm" {
			deletes = true
			break
		}
	}
	if !deletes {
		return nil
	}

	sev := engine.SeverityHigh
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			break // options begin; start paths precede them
		}
		if isDangerousPath(a) {
			sev = engine.SeverityCritical
			break
		}
	}
	return &engine.DestructiveMatch{
		Category: engine.DestructiveFileDelete,
		Reason:   "bulk deletion via find",
		Severity: sev,
		Pattern:  "find -delete/-exec rm",
	}
}

// checkXargs flags xargs feeding rm. Severity escalates to critical when
// any argument is a denylisted path.
func checkXargs(args []string) *engine.DestructiveMatch {
	feedsRm := false
	for _, a := range args {
		if normalizeExe(a) == "rm" {
			feedsRm = true
			break
		}
	}
	if !feedsRm {
		return nil
	}

	sev := engine.SeverityHigh
	for _, a := range args {
		if isDangerousPath(a) {
			sev = engine.SeverityCritical
			break
		}
	}
	return &engine.DestructiveMatch{
		Category: engine.DestructiveFileDelete,
		Reason:   "bulk deletion via xargs",
		Severity: sev,
		Pattern:  "xargs rm",
	}
}
