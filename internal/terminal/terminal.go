// Package terminal implements the interactive prompts on top of the
// process's standard streams.
package terminal

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/term"

	"gibberish/internal/gibberish"
)

var (
	yesPattern = regexp.MustCompile(`^(?i:y|yes|yep|yup|yeah|hell yes|1|true)$|^$`)
	noPattern  = regexp.MustCompile(`^(?i:n|no|nope|nah|go away|0|false)$`)
)

// ErrNoInput is returned when input ends before the user answered.
var ErrNoInput = errors.New("no input")

// Terminal reads answers from in and writes prompts to out. Secrets are read
// without echo when in is a terminal.
type Terminal struct {
	in           *bufio.Reader
	out          io.Writer
	fd           int
	readPassword func(fd int) ([]byte, error)
}

// New creates a Terminal for f, typically os.Stdin. Echo is disabled for
// secrets only when f is a terminal.
func New(f *os.File, out io.Writer) *Terminal {
	t := NewFromReader(f, out)
	if fd := int(f.Fd()); term.IsTerminal(fd) {
		t.fd = fd
		t.readPassword = term.ReadPassword
	}
	return t
}

// NewFromReader creates a Terminal that reads plain lines from r.
func NewFromReader(r io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(r), out: out, fd: -1}
}

// ReadSecret shows prompt and reads one line. The line is not echoed when
// reading from a terminal.
func (t *Terminal) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)

	if t.fd < 0 {
		return t.readLine()
	}

	// Bytes already pulled into in by Confirm are gone from the fd, so
	// they are consumed before reading raw from the terminal.
	var prefix string
	if n := t.in.Buffered(); n > 0 {
		pending, _ := t.in.Peek(n)
		if bytes.IndexByte(pending, '\n') >= 0 {
			return t.readLine()
		}
		prefix = string(pending)
		t.in.Discard(n)
	}

	secret, err := t.readPassword(t.fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("reading from terminal: %w", err)
	}
	return strings.TrimRight(prefix+string(secret), "\r"), nil
}

func (t *Terminal) Notice(msg string) {
	fmt.Fprintln(t.out, msg)
}

// Confirm asks question until the answer is recognized as yes or no.
// An empty answer means yes.
func (t *Terminal) Confirm(question string) (bool, error) {
	for {
		fmt.Fprint(t.out, question)

		answer, err := t.readLine()
		if err != nil {
			return false, err
		}
		answer = strings.TrimSpace(answer)

		switch {
		case yesPattern.MatchString(answer):
			return true, nil
		case noPattern.MatchString(answer):
			return false, nil
		}
		fmt.Fprintln(t.out, "Failed to recognize input")
	}
}

// readLine returns the next line without its terminator. A final line with
// no newline is still returned; input that is already exhausted is ErrNoInput.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			return "", ErrNoInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var (
	_ gibberish.Prompter  = (*Terminal)(nil)
	_ gibberish.Confirmer = (*Terminal)(nil)
)
