package main

import "github.com/leo/creators-guide/internal/ui"

func main() {
	// Must run before any charmbracelet package touches the terminal.
	ui.InitTerminal()

	Execute()
}
