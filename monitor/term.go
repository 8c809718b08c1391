package monitor

import (
	"bufio"
	"context"
	"io"
	"os"

	"golang.org/x/term"
)

const prompt = "> "

// Interactive reads commands from stdin until 'q', end of input or ctx is done.
// When stdin is a terminal, it is put in raw mode and lines are edited with
// history support. Otherwise commands are read line by line.
func (m *Monitor) Interactive(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return m.Script(ctx, os.Stdin)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return m.Script(ctx, os.Stdin)
	}

	defer term.Restore(fd, oldState)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, prompt)

	out := m.out
	m.out = t
	defer func() { m.out = out }()

	for ctx.Err() == nil {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		quit, err := m.Exec(line)
		if err != nil {
			t.Write([]byte(err.Error() + "\n"))
		}

		if quit {
			return nil
		}
	}

	return ctx.Err()
}

// Script executes commands read from r, one per line, until 'q' or end of input.
// Command errors are written to the output and do not stop the script.
func (m *Monitor) Script(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := m.Exec(scanner.Text())
		if err != nil {
			io.WriteString(m.out, err.Error()+"\n")
		}

		if quit {
			return nil
		}
	}

	return scanner.Err()
}
