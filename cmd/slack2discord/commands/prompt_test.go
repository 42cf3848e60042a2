package commands

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name      string
		assumeYes bool
		tty       bool
		input     string
		want      bool
	}{
		{name: "assume yes skips the prompt", assumeYes: true, want: true},
		{name: "no terminal declines", tty: false, input: "y\n", want: false},
		{name: "y accepts", tty: true, input: "y\n", want: true},
		{name: "yes accepts", tty: true, input: "Yes\n", want: true},
		{name: "n declines", tty: true, input: "n\n", want: false},
		{name: "empty answer declines", tty: true, input: "\n", want: false},
		{name: "eof declines", tty: true, input: "", want: false},
		{name: "answer without newline accepts", tty: true, input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := &terminalPrompter{
				assumeYes:  tt.assumeYes,
				in:         bufio.NewReader(strings.NewReader(tt.input)),
				out:        &out,
				isTerminal: func() bool { return tt.tty },
			}

			if got := p.Confirm("Continue?"); got != tt.want {
				t.Errorf("Confirm: got %v, want %v", got, tt.want)
			}
			if tt.assumeYes || !tt.tty {
				if out.Len() != 0 {
					t.Errorf("prompt written without a terminal: %q", out.String())
				}
			} else if !strings.Contains(out.String(), "Continue?") {
				t.Errorf("prompt not written: %q", out.String())
			}
		})
	}
}
