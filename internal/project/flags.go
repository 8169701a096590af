// Package project handles the project side of setup: locating the project
// root, installing its dependencies and running its package scripts.
//
// Every operation takes the project root explicitly; nothing here changes
// the process working directory.
package project

import "strings"

// Flags are the command-line mode switches.
type Flags struct {
	// Install auto-installs the runtime without prompting.
	Install bool
	// Run starts the development server without showing the menu.
	Run bool
	// Build runs the production build without showing the menu.
	Build bool
}

// Interactive reports whether no mode switch was given.
func (f Flags) Interactive() bool {
	return !f.Install && !f.Run && !f.Build
}

// RunAction is what happens once dependencies are in place.
type RunAction int

const (
	ActionMenu RunAction = iota
	ActionDev
	ActionBuild
	ActionExit
)

func (a RunAction) String() string {
	switch a {
	case ActionMenu:
		return "menu"
	case ActionDev:
		return "dev"
	case ActionBuild:
		return "build"
	case ActionExit:
		return "exit"
	default:
		return "unknown"
	}
}

// DecideRun picks the run action for f. Build wins over run.
func DecideRun(f Flags) RunAction {
	switch {
	case f.Build:
		return ActionBuild
	case f.Run:
		return ActionDev
	default:
		return ActionMenu
	}
}

// DecideReinstallPrompt reports whether to offer reinstalling dependencies
// that are already present.
func DecideReinstallPrompt(f Flags) bool {
	return f.Interactive()
}

// ParseMenuChoice maps a menu answer to an action. Anything other than "1"
// or "2" exits.
func ParseMenuChoice(s string) RunAction {
	switch strings.TrimSpace(s) {
	case "1":
		return ActionDev
	case "2":
		return ActionBuild
	default:
		return ActionExit
	}
}
