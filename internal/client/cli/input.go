package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// LineReader is the input side of the REPL; *bufio.Reader satisfies it.
type LineReader interface {
	ReadString(delim byte) (string, error)
}

// readPassword and stdinIsTerminal are test seams around the terminal.
var (
	readPassword    = term.ReadPassword
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader LineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password without echo. When
// stdin is not a terminal (piped input) the next line of reader is used.
func GetPassword(reader LineReader, prompt string, w io.Writer) (string, error) {
	if !stdinIsTerminal() {
		return GetSimpleText(reader, prompt, w)
	}

	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
func GetMultiline(reader LineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetOptionalText is GetSimpleText that returns nil for an empty answer.
func GetOptionalText(reader LineReader, prompt string, w io.Writer) (*string, error) {
	s, err := GetSimpleText(reader, prompt+" (empty to keep)", w)
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}

// Confirm asks a yes/no question; only "y" and "yes" count as yes.
func Confirm(reader LineReader, prompt string, w io.Writer) (bool, error) {
	s, err := GetSimpleText(reader, prompt+" [y/N]", w)
	if err != nil {
		return false, err
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes", nil
}

func parseID(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return v, nil
}

func parseCount(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return v, nil
}

type lineResult struct {
	line string
	err  error
}

// contextReader reads newline-terminated lines from r on demand and gives
// up with io.EOF once ctx is done, so a blocked prompt does not outlive
// the REPL. A line is only read when asked for, which keeps the terminal
// free for password input in between.
type contextReader struct {
	ctx context.Context
	req chan struct{}
	res chan lineResult
}

func newContextReader(ctx context.Context, r LineReader) *contextReader {
	c := &contextReader{ctx: ctx, req: make(chan struct{}), res: make(chan lineResult, 1)}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.req:
			}
			line, err := r.ReadString('\n')
			c.res <- lineResult{line: line, err: err}
		}
	}()
	return c
}

func (c *contextReader) ReadString(byte) (string, error) {
	select {
	case c.req <- struct{}{}:
	case <-c.ctx.Done():
		return "", io.EOF
	}
	select {
	case r := <-c.res:
		return r.line, r.err
	case <-c.ctx.Done():
		return "", io.EOF
	}
}
