// Package libdiff compares documents, either as text line by line or
// structurally by key path.
package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
	Replace
	Retag
)

var opNames = map[Op]string{
	Equal:   "equal",
	Insert:  "insert",
	Delete:  "delete",
	Replace: "replace",
	Retag:   "retag",
}

func (o Op) String() string {
	return opNames[o]
}

type Line struct {
	Op   Op
	Text string
}

// Lines diffs from and to by line. Only Equal, Insert and Delete occur.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	c1, c2, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lines)
	var res []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			res = append(res, Line{Op: op, Text: strings.TrimSuffix(ln, "\n")})
		}
	}
	return res
}

// Changed reports whether lines has any insertion or deletion.
func Changed(lines []Line) bool {
	for _, ln := range lines {
		if ln.Op != Equal {
			return true
		}
	}
	return false
}

type RenderOption func(*renderOpts)

type renderOpts struct {
	context int
	colors  bool
}

// Context limits output to n unchanged lines around each change. A
// negative n, the default, shows every line.
func Context(n int) RenderOption {
	return func(o *renderOpts) { o.context = n }
}

func Colors(v bool) RenderOption {
	return func(o *renderOpts) { o.colors = v }
}

// Render writes lines prefixed with "+", "-" or " ". Skipped runs of
// unchanged lines are written as "@@ n lines @@".
func Render(w io.Writer, lines []Line, opts ...RenderOption) error {
	ro := &renderOpts{context: -1}
	for _, opt := range opts {
		opt(ro)
	}
	ins, del := fmt.Sprint, fmt.Sprint
	if ro.colors {
		ins = color.New(color.FgGreen).Sprint
		del = color.New(color.FgRed).Sprint
	}
	keep := visible(lines, ro.context)
	skipped := 0
	for i, ln := range lines {
		if !keep[i] {
			skipped++
			continue
		}
		if skipped != 0 {
			if _, err := fmt.Fprintf(w, "@@ %d lines @@\n", skipped); err != nil {
				return err
			}
			skipped = 0
		}
		var s string
		switch ln.Op {
		case Insert:
			s = ins("+" + ln.Text)
		case Delete:
			s = del("-" + ln.Text)
		default:
			s = " " + ln.Text
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	if skipped != 0 {
		_, err := fmt.Fprintf(w, "@@ %d lines @@\n", skipped)
		return err
	}
	return nil
}

func visible(lines []Line, context int) []bool {
	keep := make([]bool, len(lines))
	for i, ln := range lines {
		if context < 0 || ln.Op != Equal {
			keep[i] = true
			for j := max(0, i-context); context >= 0 && j <= min(len(lines)-1, i+context); j++ {
				keep[j] = true
			}
		}
	}
	return keep
}
