package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/sahilm/fuzzy"

	"github.com/zephyrtronium/lucidmath"
	"github.com/zephyrtronium/lucidmath/internal/log"
)

const (
	promptMain = "> "
	promptCont = "… "
)

// Repl reads and evaluates formulas interactively.
type Repl struct {
	History string `default:"${history}" help:"History file. Empty disables history." type:"path"`
	Fmt     string `default:"%g" help:"Result formatting verb."`
	Echo    bool   `help:"Print each formula in postfix form before its result."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context, s *session) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string { return complete(line, s.names) })
	if r.History != "" {
		if f, err := os.Open(r.History); err == nil {
			_, _ = ln.ReadHistory(f)
			f.Close()
		}
		defer r.save(ctx, ln)
	}
	return r.loop(ctx, s, ln.Prompt, ln.AppendHistory)
}

func (r *Repl) save(ctx context.Context, ln *liner.State) {
	if err := os.MkdirAll(filepath.Dir(r.History), 0o755); err != nil {
		log.DebugContext(ctx, "no history directory", slog.String("error", err.Error()))
		return
	}
	f, err := os.Create(r.History)
	if err != nil {
		log.DebugContext(ctx, "saving history failed", slog.String("error", err.Error()))
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		log.DebugContext(ctx, "saving history failed", slog.String("error", err.Error()))
	}
}

// loop runs the read-eval-print loop until end of input or :quit.
func (r *Repl) loop(ctx context.Context, s *session, prompt func(string) (string, error), remember func(string)) error {
	for ctx.Err() == nil {
		text, err := read(s, prompt)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		remember(strings.ReplaceAll(text, "\n", " "))
		if strings.HasPrefix(text, ":") {
			if r.command(s, text) {
				return nil
			}
			continue
		}
		s.eval(text, r.Fmt, r.Echo)
	}
	return nil
}

// read reads one formula, continuing onto more lines while parentheses are
// left open.
func read(s *session, prompt func(string) (string, error)) (string, error) {
	var b strings.Builder
	p := promptMain
	for {
		line, err := prompt(p)
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !unclosed(b.String(), s.opts) {
			return b.String(), nil
		}
		p = promptCont
	}
}

// unclosed reports whether text fails to compile only for lack of close
// parentheses.
func unclosed(text string, opts []lucidmath.Option) bool {
	if strings.HasPrefix(strings.TrimSpace(text), ":") {
		return false
	}
	_, err := lucidmath.Compile(text, opts...)
	var d *lucidmath.Diagnostic
	return errors.As(err, &d) && d.Kind == lucidmath.KindParen && d.Token == "" && d.Index == len(text)
}

// command runs a colon command. It reports whether the loop should end.
func (r *Repl) command(s *session, text string) bool {
	f := strings.Fields(text)
	switch f[0] {
	case ":q", ":quit", ":exit":
		return true
	case ":funcs":
		names := s.names
		if len(f) > 1 {
			names = nil
			for _, m := range fuzzy.Find(f[1], s.names) {
				names = append(names, m.Str)
			}
		}
		fmt.Fprintln(s.out, strings.Join(names, " "))
	case ":echo":
		r.Echo = !r.Echo
		fmt.Fprintln(s.out, "echo", r.Echo)
	case ":fmt":
		if len(f) > 1 {
			r.Fmt = strings.TrimSpace(strings.TrimPrefix(text, ":fmt"))
		}
		fmt.Fprintln(s.out, "fmt", r.Fmt)
	case ":help", ":h", ":?":
		fmt.Fprint(s.out, replHelp)
	default:
		fmt.Fprintf(s.err, "unknown command %s; try :help\n", f[0])
	}
	return false
}

const replHelp = `:funcs [pattern]  list names, optionally fuzzy matching pattern
:echo             toggle printing postfix forms
:fmt [verb]       show or set the result formatting verb
:quit             leave
`

// complete completes the name at the end of line.
func complete(line string, names []string) []string {
	i := len(line)
	for i > 0 && nameByte(line[i-1]) {
		i--
	}
	// Skip what can't start a name, like the digits of 2pi.
	for i < len(line) && !lucidmath.IsName(line[i:]) {
		i++
	}
	word := strings.ToLower(line[i:])
	if word == "" {
		return nil
	}
	m := fuzzy.Find(word, names)
	r := make([]string, 0, len(m))
	for _, x := range m {
		r = append(r, line[:i]+x.Str)
	}
	return r
}

func nameByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return c == '.' || c == '_' || c == '\''
}
