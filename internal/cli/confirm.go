package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/controller"
)

// promptConfirmer asks on out and reads a y/N answer from in. Anything but
// y or yes declines, including EOF.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *promptConfirmer) Ask(message string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", message)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

var _ controller.Confirmer = (*promptConfirmer)(nil)
