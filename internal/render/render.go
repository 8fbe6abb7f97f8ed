// Package render formats a finished recommendation for the terminal, for
// markdown reports, and as YAML.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/mirrorplan/mirrorplan/internal/recommend"
	"github.com/mirrorplan/mirrorplan/internal/strategy"
	"github.com/mirrorplan/mirrorplan/templates"
)

// Result is a terminal session outcome ready for display.
type Result struct {
	Strategy   strategy.ID          `yaml:"strategy,omitempty"`
	Descriptor *strategy.Descriptor `yaml:"descriptor,omitempty"`
	Reasoning  []string             `yaml:"reasoning"`
	Answers    recommend.Answers    `yaml:"answers"`
	Failed     bool                 `yaml:"failed"`
}

// FromSnapshot builds a Result from a terminal snapshot.
func FromSnapshot(snap recommend.Snapshot) (Result, error) {
	r := Result{
		Reasoning: append([]string{}, snap.Reasoning...),
		Answers:   snap.Answers.Clone(),
	}
	switch {
	case snap.Resolved():
		d := strategy.Describe(snap.Strategy)
		r.Strategy = snap.Strategy
		r.Descriptor = &d
	case snap.Failed():
		r.Failed = true
	default:
		return Result{}, fmt.Errorf("render: session is still at %s", snap.Step)
	}
	return r, nil
}

var markdownTmpl = template.Must(template.New("recommendation").Parse(templates.RecommendationMarkdown))

// CheckFormat reports whether Write accepts format.
func CheckFormat(format string) error {
	switch format {
	case "", "text", "markdown", "md", "yaml":
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, markdown or yaml)", format)
}

// Write renders r in the named format (text, markdown or yaml).
func Write(w io.Writer, format string, r Result) error {
	if err := CheckFormat(format); err != nil {
		return err
	}
	switch format {
	case "markdown", "md":
		return Markdown(w, r)
	case "yaml":
		return YAML(w, r)
	default:
		return Text(w, r)
	}
}

// Text writes a plain terminal rendering.
func Text(w io.Writer, r Result) error {
	var b strings.Builder
	if r.Failed {
		b.WriteString("No strategy fits these answers.\n\n")
		b.WriteString("What to do next:\n")
		writeBullets(&b, r.Reasoning)
	} else {
		d := r.descriptor()
		fmt.Fprintf(&b, "Recommended strategy: %s (%s)\n\n", d.Title(), r.Strategy)
		b.WriteString("Why:\n")
		writeBullets(&b, r.Reasoning)
		b.WriteString("\nFeatures:\n")
		writeBullets(&b, d.Features)
		b.WriteString("\nRequirements:\n")
		writeBullets(&b, d.Requirements)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Markdown writes the recommendation as a markdown document.
func Markdown(w io.Writer, r Result) error {
	if !r.Failed {
		d := r.descriptor()
		r.Descriptor = &d
	}
	if err := markdownTmpl.Execute(w, r); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	return nil
}

// YAML writes r as a YAML document.
func YAML(w io.Writer, r Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// Strategy writes one catalog entry.
func Strategy(w io.Writer, d strategy.Descriptor) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", d.Title(), d.ID)
	b.WriteString("Features:\n")
	writeBullets(&b, d.Features)
	b.WriteString("Requirements:\n")
	writeBullets(&b, d.Requirements)
	_, err := io.WriteString(w, b.String())
	return err
}

func (r Result) descriptor() strategy.Descriptor {
	if r.Descriptor != nil {
		return *r.Descriptor
	}
	return strategy.Describe(r.Strategy)
}

func writeBullets(b *strings.Builder, lines []string) {
	if len(lines) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, l := range lines {
		b.WriteString("  - ")
		b.WriteString(l)
		b.WriteString("\n")
	}
}
