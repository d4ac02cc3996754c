package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"ccaviewer/internal/config"
)

const clearScreen = "\033[2J\033[H"

// Interactor runs the acknowledgement step after a successful extraction.
type Interactor interface {
	// Pauses reports whether Acknowledge waits for the user.
	Pauses() bool
	Acknowledge(ctx context.Context) error
}

type terminalInteractor struct {
	in  io.Reader
	out io.Writer
}

func (terminalInteractor) Pauses() bool { return true }

// Acknowledge reads and discards one line, then clears the terminal. EOF on
// the input counts as an acknowledgement.
func (t terminalInteractor) Acknowledge(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(t.in).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		done <- err
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("read acknowledgement: %w", err)
		}
	}
	_, err := io.WriteString(t.out, clearScreen)
	return err
}

type nopInteractor struct{}

func (nopInteractor) Pauses() bool { return false }

func (nopInteractor) Acknowledge(context.Context) error { return nil }

func newInteractor(mode string, noPause bool, in io.Reader, out io.Writer) Interactor {
	if noPause {
		return nopInteractor{}
	}
	switch mode {
	case config.PauseNever:
		return nopInteractor{}
	case config.PauseAuto:
		if !isTerminal(in) || !isTerminal(out) {
			return nopInteractor{}
		}
	}
	return terminalInteractor{in: in, out: out}
}

func isTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
