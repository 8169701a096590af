// Package prompt asks the user yes/no and menu questions on a line-based
// console.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks questions and returns the answers.
type Prompter interface {
	// Confirm asks a yes/no question. Only "y" (any case) is yes; closed
	// input and a cancelled ctx are no.
	Confirm(ctx context.Context, question string) bool
	// Choose asks for a free-form choice and returns the trimmed answer,
	// or "" when input is closed or ctx is cancelled.
	Choose(ctx context.Context, question string) string
}

type line struct {
	text string
	ok   bool
}

// Console prompts on a writer and reads answers line by line.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	// pending holds a read abandoned by a cancelled prompt; the next
	// prompt takes its answer instead of reading concurrently.
	pending chan line
}

// NewConsole creates a Console reading from in and writing prompts to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Confirm implements Prompter.
func (c *Console) Confirm(ctx context.Context, question string) bool {
	fmt.Fprintf(c.out, "    %s [y/N]: ", question)
	answer, ok := c.readLine(ctx)
	return ok && strings.EqualFold(answer, "y")
}

// Choose implements Prompter.
func (c *Console) Choose(ctx context.Context, question string) string {
	fmt.Fprintf(c.out, "%s: ", question)
	answer, _ := c.readLine(ctx)
	return answer
}

// readLine returns the next trimmed line. A final line without a newline
// still counts; ok is false when nothing could be read or ctx ended first.
func (c *Console) readLine(ctx context.Context) (string, bool) {
	if c.pending == nil {
		ch := make(chan line, 1)
		c.pending = ch
		go func() {
			text, err := c.in.ReadString('\n')
			ch <- line{text: strings.TrimSpace(text), ok: err == nil || text != ""}
		}()
	}

	select {
	case l := <-c.pending:
		c.pending = nil
		if !l.ok {
			// keep the terminal tidy when input ends mid-prompt
			fmt.Fprintln(c.out)
		}
		return l.text, l.ok
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", false
	}
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
