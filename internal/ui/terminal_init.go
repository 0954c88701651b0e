package ui

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"
)

var terminalInitialized bool

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// TerminalWidth returns the stdout width, or fallback when unknown.
func TerminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// InitTerminal must run before the first lipgloss or bubbletea call.
// termenv otherwise sends an OSC 11 background query whose reply
// (\033]11;rgb:...\033\\) lands in stdout. Presetting COLORFGBG skips it.
func InitTerminal() {
	if terminalInitialized {
		return
	}
	terminalInitialized = true

	if os.Getenv("COLORFGBG") == "" {
		_ = os.Setenv("COLORFGBG", "0;15")
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		// focus reporting off
		fmt.Fprint(os.Stdout, "\033[?1004l")
		time.Sleep(20 * time.Millisecond)
		FlushStdinWithTimeout(150 * time.Millisecond)
	}
}

// ResetTerminalAfterTUI restores cursor and input modes after a bubbletea
// program exits and swallows late terminal replies (cursor position reports,
// OSC responses, focus events).
func ResetTerminalAfterTUI() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}

	fmt.Fprint(os.Stdout, "\033[?1004l") // focus reporting
	fmt.Fprint(os.Stdout, "\033[?1003l") // all mouse tracking
	fmt.Fprint(os.Stdout, "\033[?1000l") // X10 mouse
	fmt.Fprint(os.Stdout, "\033[?1006l") // SGR mouse
	fmt.Fprint(os.Stdout, "\033[?25h")   // show cursor
	fmt.Fprint(os.Stdout, "\r")

	time.Sleep(30 * time.Millisecond)
	FlushStdinWithTimeout(150 * time.Millisecond)
}

// FlushStdinWithTimeout reads and discards stdin for the given duration.
// It never touches stdin unless it is a terminal, so piped input survives.
func FlushStdinWithTimeout(timeout time.Duration) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	if err := syscall.SetNonblock(fd, true); err != nil {
		return
	}
	defer func() { _ = syscall.SetNonblock(fd, false) }()

	buf := make([]byte, 256)
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if n, _ := os.Stdin.Read(buf); n <= 0 {
			time.Sleep(5 * time.Millisecond)
		}
	}
}
