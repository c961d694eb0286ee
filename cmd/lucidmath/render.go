package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/zephyrtronium/lucidmath"
)

// maxSuggestions is the most names suggested for an undefined name.
const maxSuggestions = 3

// render writes err to w. A diagnostic is shown under its formula with a
// caret at the offending column, and undefined names come with suggestions
// from names.
func render(w io.Writer, err error, names []string) {
	r := lipgloss.NewRenderer(w)
	errStyle := r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	caretStyle := r.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle := r.NewStyle().Foreground(lipgloss.Color("8"))
	nameStyle := r.NewStyle().Foreground(lipgloss.Color("4"))

	var d *lucidmath.Diagnostic
	if !errors.As(err, &d) {
		fmt.Fprintln(w, errStyle.Render("error:"), err)
		return
	}
	line, col := excerpt(d.Text, d.Index)
	fmt.Fprintln(w, errStyle.Render(d.Kind.String()+" error:"), d.Error())
	fmt.Fprintln(w, "  "+line)
	fmt.Fprintln(w, "  "+strings.Repeat(" ", col)+caretStyle.Render("^"))
	if d.Kind != lucidmath.KindUndefined {
		return
	}
	if s := suggest(d.Token, names); len(s) > 0 {
		for i, n := range s {
			s[i] = nameStyle.Render(n)
		}
		fmt.Fprintln(w, hintStyle.Render("did you mean"), strings.Join(s, ", ")+hintStyle.Render("?"))
	}
}

// excerpt returns the line of text containing index and the display column
// of index within it.
func excerpt(text string, index int) (string, int) {
	index = min(max(index, 0), len(text))
	start := strings.LastIndexByte(text[:index], '\n') + 1
	end := strings.IndexByte(text[index:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += index
	}
	line := strings.ReplaceAll(text[start:end], "\t", " ")
	col := lipgloss.Width(strings.ReplaceAll(text[start:index], "\t", " "))
	return line, col
}

// suggest finds the names most like name.
func suggest(name string, names []string) []string {
	m := fuzzy.Find(name, names)
	r := make([]string, 0, maxSuggestions)
	for _, x := range m {
		if len(r) == maxSuggestions {
			break
		}
		r = append(r, x.Str)
	}
	if len(r) > 0 {
		return r
	}
	// fuzzy only finds names containing every rune of name. Fall back to
	// names sharing its first letter.
	for _, n := range names {
		if len(r) == maxSuggestions {
			break
		}
		if name != "" && strings.HasPrefix(n, name[:1]) {
			r = append(r, n)
		}
	}
	return r
}
