// Package cli implements the interactive review session and the terminal
// views of the garden and the review queue.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
)

// InteractiveSessionCLI contains the terminal plumbing shared by the
// interactive commands.
type InteractiveSessionCLI struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	green        *color.Color
	red          *color.Color
	yellow       *color.Color
}

func newInteractiveSessionCLI() *InteractiveSessionCLI {
	return &InteractiveSessionCLI{
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
		yellow:       color.New(color.FgYellow),
	}
}

// promptKey prints the prompt and reads one line, trimmed and lowercased.
func (cli *InteractiveSessionCLI) promptKey(prompt string) (string, error) {
	fmt.Fprint(cli.stdoutWriter, prompt)
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(input)), nil
}

// Session is one round of an interactive loop. Implementations return
// errEnd to leave the loop.
type Session interface {
	Session(ctx context.Context) error
}

var errEnd = errors.New("end")

// Run drives a session until it ends or an interrupt arrives.
func (cli *InteractiveSessionCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}
