package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// terminalPrompter asks yes/no confirmations on the controlling terminal.
// --yes answers every question without asking. When stdin is not a terminal
// the prompter declines, so unattended runs fail fast instead of pushing
// past a warning nobody read.
type terminalPrompter struct {
	assumeYes  bool
	in         *bufio.Reader
	out        io.Writer
	isTerminal func() bool
}

func newPrompter(assumeYes bool) *terminalPrompter {
	return &terminalPrompter{
		assumeYes: assumeYes,
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stderr,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

func (p *terminalPrompter) Confirm(question string) bool {
	if p.assumeYes {
		return true
	}
	if !p.isTerminal() {
		return false
	}

	fmt.Fprintf(p.out, "%s [y/N] ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
