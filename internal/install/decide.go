package install

import "github.com/frameforge/frameforge-setup/internal/probe"

// State is the runtime's condition relative to the required minimum.
type State int

const (
	StateNotInstalled State = iota
	StateBelowMinimum
	StateOK
)

func (s State) String() string {
	switch s {
	case StateNotInstalled:
		return "not installed"
	case StateBelowMinimum:
		return "below minimum"
	case StateOK:
		return "ok"
	default:
		return "unknown"
	}
}

// Decision is what the runtime stage does next.
type Decision int

const (
	DecisionProceed Decision = iota
	DecisionInstall
	DecisionAsk
	DecisionAbort
)

func (d Decision) String() string {
	switch d {
	case DecisionProceed:
		return "proceed"
	case DecisionInstall:
		return "install"
	case DecisionAsk:
		return "ask"
	case DecisionAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Classify maps a probe result onto a State.
func Classify(v probe.VersionInfo, minMajor int) State {
	switch {
	case !v.Installed:
		return StateNotInstalled
	case !v.Meets(minMajor):
		return StateBelowMinimum
	default:
		return StateOK
	}
}

// Decide picks the next step. Not installed and below minimum are handled
// identically.
func Decide(s State, autoInstall bool) Decision {
	switch {
	case s == StateOK:
		return DecisionProceed
	case autoInstall:
		return DecisionInstall
	default:
		return DecisionAsk
	}
}

// Resolve turns the user's answer to the install question into a Decision.
func Resolve(yes bool) Decision {
	if yes {
		return DecisionInstall
	}
	return DecisionAbort
}

// Question returns the install prompt for s.
func Question(s State, label string) string {
	if s == StateBelowMinimum {
		return "Install newer version?"
	}
	return "Would you like to install " + label + "?"
}
