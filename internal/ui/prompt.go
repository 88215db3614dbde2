package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter gathers interactive input. Implementations must honor context
// cancellation so an interrupt at any prompt aborts the session.
type Prompter interface {
	Line(ctx context.Context, prompt string) (string, error)
	Password(ctx context.Context, prompt string) (string, error)
}

// Console prompts on stdin/stdout.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
	stdinFd int
}

func NewConsole() *Console {
	return &Console{
		scanner: bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
		stdinFd: int(os.Stdin.Fd()),
	}
}

func newConsoleFrom(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
		stdinFd: -1,
	}
}

// Line prints prompt and reads one trimmed line. The read runs in a
// goroutine so a cancelled context aborts the wait even while the read is
// blocked on the terminal.
func (c *Console) Line(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)

	inputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		if c.scanner.Scan() {
			inputCh <- strings.TrimSpace(c.scanner.Text())
			return
		}
		if err := c.scanner.Err(); err != nil {
			errCh <- err
			return
		}
		errCh <- io.EOF
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case err := <-errCh:
		return "", err
	case line := <-inputCh:
		return line, nil
	}
}

// Password reads without echo when stdin is a terminal, falling back to a
// plain line read otherwise (piped input).
func (c *Console) Password(ctx context.Context, prompt string) (string, error) {
	if c.stdinFd < 0 || !term.IsTerminal(c.stdinFd) {
		return c.Line(ctx, prompt)
	}

	fmt.Fprint(c.out, prompt)

	inputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		raw, err := term.ReadPassword(c.stdinFd)
		if err != nil {
			errCh <- err
			return
		}
		inputCh <- strings.TrimSpace(string(raw))
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case err := <-errCh:
		return "", err
	case line := <-inputCh:
		fmt.Fprintln(c.out)
		return line, nil
	}
}
