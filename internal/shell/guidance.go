package shell

// Guidance returns the lines telling the user how to continue after the
// runtime was installed. restartRequired means the current terminal cannot
// see the new runtime at all.
func Guidance(s ShellType, restartRequired bool) []string {
	if restartRequired {
		lines := []string{"After restarting, run this script again to continue setup."}
		switch s {
		case ShellPowerShell:
			lines = append(lines, "Close every PowerShell window first; existing sessions keep the old PATH.")
		case ShellCmd:
			lines = append(lines, "Close every Command Prompt window first; existing sessions keep the old PATH.")
		}
		return lines
	}

	lines := []string{"Run this script again to continue setup."}
	switch s {
	case ShellBash:
		lines = append(lines, "If node is still not found, run 'hash -r' or open a new terminal.")
	case ShellZsh:
		lines = append(lines, "If node is still not found, run 'rehash' or open a new terminal.")
	case ShellFish, ShellUnknown, "":
		lines = append(lines, "If node is still not found, open a new terminal.")
	}
	return lines
}
