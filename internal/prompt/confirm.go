package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"storeadmin/catman/internal/manager"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	confirmStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dd5555"))
	cancelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// TerminalConfirmer asks on a line-oriented terminal. Only "y" or "yes"
// confirms; anything else, including end of input, cancels.
type TerminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminalConfirmer(in io.Reader, out io.Writer) *TerminalConfirmer {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &TerminalConfirmer{in: br, out: out}
}

func (c *TerminalConfirmer) Confirm(ctx context.Context, dialog manager.Dialog) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	buttons := []string{cancelStyle.Render("[N] " + dialog.CancelLabel), confirmStyle.Render("[y] " + dialog.ConfirmLabel)}
	if dialog.ReverseButtons {
		buttons[0], buttons[1] = buttons[1], buttons[0]
	}

	fmt.Fprintln(c.out, titleStyle.Render(dialog.Title))
	fmt.Fprintln(c.out, dialog.Text)
	fmt.Fprintf(c.out, "%s  %s: ", buttons[0], buttons[1])

	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		fmt.Fprintln(c.out, "Operation canceled.")
		return false, nil
	}
}

// AlwaysConfirm approves every dialog; used for --force.
type AlwaysConfirm struct{}

func (AlwaysConfirm) Confirm(context.Context, manager.Dialog) (bool, error) {
	return true, nil
}
