package install

import (
	"testing"

	"github.com/frameforge/frameforge-setup/internal/probe"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		info probe.VersionInfo
		want State
	}{
		{"absent", probe.VersionInfo{}, StateNotInstalled},
		{"below", probe.VersionInfo{Installed: true, Raw: "v16.20.2", Major: 16}, StateBelowMinimum},
		{"exactly minimum", probe.VersionInfo{Installed: true, Raw: "v18.0.0", Major: 18}, StateOK},
		{"above", probe.VersionInfo{Installed: true, Raw: "v20.10.0", Major: 20}, StateOK},
		{"unparseable counts as below", probe.VersionInfo{Installed: true, Raw: "node", Major: 0}, StateBelowMinimum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.info, 18); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		state State
		auto  bool
		want  Decision
	}{
		{StateOK, false, DecisionProceed},
		{StateOK, true, DecisionProceed},
		{StateNotInstalled, true, DecisionInstall},
		{StateBelowMinimum, true, DecisionInstall},
		{StateNotInstalled, false, DecisionAsk},
		{StateBelowMinimum, false, DecisionAsk},
	}

	for _, tt := range tests {
		if got := Decide(tt.state, tt.auto); got != tt.want {
			t.Errorf("Decide(%v, %v) = %v, want %v", tt.state, tt.auto, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	if Resolve(true) != DecisionInstall {
		t.Error("Resolve(true) should install")
	}
	if Resolve(false) != DecisionAbort {
		t.Error("Resolve(false) should abort")
	}
}

func TestQuestion(t *testing.T) {
	if got := Question(StateNotInstalled, "Node.js"); got != "Would you like to install Node.js?" {
		t.Errorf("Question(not installed) = %q", got)
	}
	if got := Question(StateBelowMinimum, "Node.js"); got != "Install newer version?" {
		t.Errorf("Question(below) = %q", got)
	}
}
