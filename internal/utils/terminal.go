package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Confirm asks a yes/no question on stderr and reads the answer from stdin.
// It returns false without prompting when stdin is not a terminal.
func Confirm(prompt string) bool {
	if !IsTerminal() {
		return false
	}
	return ConfirmFrom(os.Stdin, os.Stderr, prompt)
}

// ConfirmFrom asks prompt on w and reads one line from r. Only "y" and "yes"
// (any case) confirm.
func ConfirmFrom(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprint(w, prompt+" [y/N]: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
