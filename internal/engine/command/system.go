package command

import (
	"strings"

	"github.com/rampart-sec/rampart/internal/engine"
)

var shutdownCommands = map[string]bool{
	"shutdown": true,
	"reboot":   true,
	"halt":     true,
	"poweroff": true,
	"init":     true,
}

var diskCommands = map[string]bool{
	"fdisk":    true,
	"parted":   true,
	"format":   true,
	"dd":       true,
	"mkswap":   true,
	"diskpart": true,
}

var killCommands = map[string]bool{
	"kill":    true,
	"killall": true,
	"pkill":   true,
}

var firewallCommands = map[string]bool{
	"iptables":     true,
	"ip6tables":    true,
	"nft":          true,
	"ufw":          true,
	"firewall-cmd": true,
}

// checkSystem is the generic table covering shutdown, disk, process-kill,
// firewall, and recursive permission changes.
func checkSystem(name string, args []string) *engine.DestructiveMatch {
	switch {
	case shutdownCommands[name]:
		return &engine.DestructiveMatch{
			Category: engine.DestructiveSystem,
			Reason:   "halts or restarts the host",
			Severity: engine.SeverityCritical,
			Pattern:  name,
		}

	case diskCommands[name] || strings.HasPrefix(name, "mkfs"):
		return &engine.DestructiveMatch{
			Category: engine.DestructiveSystem,
			Reason:   "rewrites disk or partition data",
			Severity: engine.SeverityCritical,
			Pattern:  name,
		}

	case killCommands[name]:
		sev := engine.SeverityMedium
		if hasKillSignal(args) {
			sev = engine.SeverityHigh
		}
		return &engine.DestructiveMatch{
			Category: engine.DestructiveProcess,
			Reason:   "terminates processes",
			Severity: sev,
			Pattern:  name,
		}

	case firewallCommands[name]:
		return &engine.DestructiveMatch{
			Category: engine.DestructiveSystem,
			Reason:   "modifies firewall rules",
			Severity: engine.SeverityHigh,
			Pattern:  name,
		}

	case name == "chmod" || name == "chown":
		if hasRecursiveFlag(args) && hasSystemPathArg(args) {
			return &engine.DestructiveMatch{
				Category: engine.DestructiveSystem,
				Reason:   "recursive permission change on a system path",
				Severity: engine.SeverityCritical,
				Pattern:  name + " -R",
			}
		}
	}

	return nil
}

// hasKillSignal reports whether the argument vector requests SIGKILL.
func hasKillSignal(args []string) bool {
	for i, a := range args {
		switch a {
		case "-9", "-KILL", "-SIGKILL":
			return true
		case "-s", "--signal":
			if i+1 < len(args) {
				sig := strings.TrimPrefix(strings.ToUpper(args[i+1]), "SIG")
				if sig == "KILL" || sig == "9" {
					return true
				}
			}
		}
	}
	return false
}

func hasRecursiveFlag(args []string) bool {
	for _, a := range args {
		if a == "--recursive" {
			return true
		}
		if strings.HasPrefix(a, "-") && !strings.HasPrefix(a, "--") && strings.ContainsAny(a, "rR") {
			return true
		}
	}
	return false
}

func hasSystemPathArg(args []string) bool {
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			continue
		}
		if isDangerousPath(a) {
			return true
		}
	}
	return false
}
