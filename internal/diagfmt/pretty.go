package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"skc/internal/diag"
	"skc/internal/source"
)

// Pretty prints every diagnostic of bag in the order it holds them:
//
//	[CHECKER]: non declared identifier used x in file prog.ld at 3
//	let a = x;
//	        ^
//
// The tag comes from the code range. Warnings and notes carry their
// severity after the tag. The underline is red when opts.Color is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		PrettyOne(w, d, fs, opts)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... %d more diagnostics not shown\n", n)
	}
}

// PrettyOne prints a single diagnostic.
func PrettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	tag := d.Code.Tag()
	if !d.Severity.Fails() {
		tag += " " + d.Severity.Label()
	}
	msg := d.Message
	if d.Subject != "" {
		msg += " " + d.Subject
	}

	file := lookup(fs, d.Primary.File)
	if file == nil {
		fmt.Fprintf(w, "%s: %s\n", tag, msg)
		return
	}
	lc := file.LineCol(d.Primary.Start)
	fmt.Fprintf(w, "%s: %s in file %s at %d\n", tag, msg, displayPath(file, opts.PathMode), lc.Line)
	underline(w, file, d.Primary, opts.Color)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := lookup(fs, n.Span.File)
		if nf == nil {
			fmt.Fprintf(w, "  note: %s\n", n.Msg)
			continue
		}
		nlc := nf.LineCol(n.Span.Start)
		fmt.Fprintf(w, "  note: %s in file %s at %d\n", n.Msg, displayPath(nf, opts.PathMode), nlc.Line)
		underline(w, nf, n.Span, opts.Color)
	}
}

func lookup(fs *source.FileSet, id source.FileID) *source.File {
	if fs == nil || int(id) >= fs.Len() {
		return nil
	}
	return fs.Get(id)
}

func displayPath(f *source.File, mode PathMode) string {
	if mode == PathModeBasename {
		return source.BaseName(f.Path)
	}
	return f.Path
}

// underline prints the line holding sp.Start and a caret under the span.
// A span that runs past the end of the line is cut there; a zero width
// span still gets one caret.
func underline(w io.Writer, f *source.File, sp source.Span, colored bool) {
	lc := f.LineCol(sp.Start)
	line := f.GetLine(lc.Line)
	fmt.Fprintln(w, line)

	startCol := min(int(lc.Col)-1, len(line))
	end := startCol + int(sp.Len())
	end = min(max(end, startCol), len(line))

	var pad strings.Builder
	for _, r := range line[:startCol] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	width := max(runewidth.StringWidth(line[startCol:end]), 1)
	mark := "^" + strings.Repeat("~", width-1)

	c := color.New(color.FgRed)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	fmt.Fprintf(w, "%s%s\n", pad.String(), c.Sprint(mark))
}
