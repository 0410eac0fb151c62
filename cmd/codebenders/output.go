package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	switch format {
	case "text", "json", "yaml":
		return &printer{w: w, format: format}, nil
	}
	return nil, fmt.Errorf("unknown output format %q: use text, json or yaml", format)
}

// data writes v as JSON or YAML, or calls text for the human format.
func (p *printer) data(v interface{}, text func(w io.Writer)) error {
	switch p.format {
	case "json":
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	text(p.w)
	return nil
}

// success prints a confirmation line. Structured formats stay machine
// readable, so it is dropped there.
func (p *printer) success(format string, args ...interface{}) {
	if p.format != "text" {
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

func (p *printer) warn(format string, args ...interface{}) {
	if p.format != "text" {
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", color.YellowString("!"), fmt.Sprintf(format, args...))
}

func (p *printer) table(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	for i, h := range header {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, bold.Sprint(h))
	}
	fmt.Fprintln(tw)
	for _, row := range rows {
		for i, col := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, col)
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()
}
