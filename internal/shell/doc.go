// Package shell detects the user's interactive shell so post-install
// guidance can name the right way to pick up a freshly installed runtime.
//
// # Shell Detection
//
// Shell detection tries multiple methods:
//  1. $SHELL environment variable (most reliable on Unix)
//  2. Parent process name via gopsutil (Windows, or when $SHELL is unset)
//
// # Guidance
//
// A runtime installed by an MSI on Windows is not on the PATH of shells that
// were already open, so the user must restart the terminal. On Unix the
// binary lands in a directory already on PATH, but bash and zsh cache
// command lookups; Guidance tells the user how to refresh that cache.
//
//	result := shell.NewDetector().Detect(ctx)
//	for _, line := range shell.Guidance(result.Shell, restartRequired) {
//	    printer.Info("%s", line)
//	}
package shell
