package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPrompter asks for the API key without echo and for an optional
// base URL. Prompts are written to out, never to stdout.
type TerminalPrompter struct {
	in  *os.File
	out io.Writer

	readSecret func(fd int) ([]byte, error)
}

func NewTerminalPrompter(in *os.File, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:  in,
		out: out,

		readSecret: term.ReadPassword,
	}
}

func (p *TerminalPrompter) Prompt(ctx context.Context, defaults Values) (Values, error) {
	type result struct {
		values Values
		err    error
	}

	ch := make(chan result, 1)

	go func() {
		v, err := p.prompt(defaults)
		ch <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		return Values{}, ctx.Err()

	case r := <-ch:
		return r.values, r.err
	}
}

func (p *TerminalPrompter) prompt(defaults Values) (Values, error) {
	fmt.Fprintln(p.out, "EmailBison is not configured yet.")
	fmt.Fprint(p.out, "API key: ")

	secret, err := p.readSecret(int(p.in.Fd()))

	fmt.Fprintln(p.out)

	if err != nil {
		return Values{}, err
	}

	key := strings.TrimSpace(string(secret))

	if key == "" {
		return Values{}, errors.New("no api key entered")
	}

	base := defaults.BaseURL

	if base == "" {
		base = defaultBaseURL
	}

	fmt.Fprintf(p.out, "Base URL [%s]: ", base)

	line, err := bufio.NewReader(p.in).ReadString('\n')

	if err != nil && !errors.Is(err, io.EOF) {
		return Values{}, err
	}

	if line = strings.TrimSpace(line); line != "" {
		base = line
	}

	return Values{
		APIKey:  key,
		BaseURL: base,
	}, nil
}
