package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// TTY puts the terminal in raw mode on an alternate screen
type TTY struct {
	in    *os.File
	out   *os.File
	state *term.State
}

// OpenTTY switches stdin to raw mode. Close restores it.
func OpenTTY(in, out *os.File) (*TTY, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("error entering raw mode: %w", err)
	}
	// alternate screen, hidden cursor
	fmt.Fprint(out, "\x1b[?1049h\x1b[?25l")
	return &TTY{in: in, out: out, state: state}, nil
}

// Close leaves raw mode and the alternate screen
func (t *TTY) Close() error {
	fmt.Fprint(t.out, "\x1b[?25h\x1b[?1049l")
	return term.Restore(int(t.in.Fd()), t.state)
}

// Width returns the terminal width, or 80 when it cannot be read
func Width(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
