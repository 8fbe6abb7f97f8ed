package render

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/google/go-cmp/cmp"

	"github.com/mirrorplan/mirrorplan/internal/recommend"
	"github.com/mirrorplan/mirrorplan/internal/strategy"
)

func snapshotAfter(t *testing.T, answers ...string) recommend.Snapshot {
	t.Helper()
	c := recommend.New()
	for _, a := range answers {
		if err := c.Answer(a); err != nil {
			t.Fatalf("Answer(%q): %v", a, err)
		}
	}
	return c.Snapshot()
}

func TestFromSnapshot(t *testing.T) {
	r, err := FromSnapshot(snapshotAfter(t, "schemas-data", "yes", "mixed"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Failed || r.Strategy != strategy.Hybrid || r.Descriptor == nil || r.Descriptor.Label != "Hybrid" {
		t.Errorf("FromSnapshot = %+v", r)
	}

	r, err = FromSnapshot(snapshotAfter(t, "schemas-data", "no"))
	if err != nil {
		t.Fatal(err)
	}
	if !r.Failed || r.Strategy != "" || r.Descriptor != nil || len(r.Reasoning) != 2 {
		t.Errorf("FromSnapshot(failed) = %+v", r)
	}

	if _, err := FromSnapshot(snapshotAfter(t, "schemas-data")); err == nil {
		t.Error("FromSnapshot accepted a non-terminal snapshot")
	}
}

func TestWriteFormats(t *testing.T) {
	r, err := FromSnapshot(snapshotAfter(t, "schemas-data", "intermediate"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"Recommended strategy: ", "(SQL)", "Why:", "  - You need to migrate both schemas and data", "Requirements:"}},
		{"markdown", []string{"# Recommended strategy: ", "`SQL`", "## Why", "- The clusters cannot reach each other's storage directly", "| DETAIL | intermediate |"}},
		{"yaml", []string{"strategy: SQL", "failed: false", "- step: GOAL"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tt.format, r); err != nil {
				t.Fatalf("Write: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}

	if err := Write(&bytes.Buffer{}, "html", r); err == nil {
		t.Error("Write accepted an unknown format")
	}
}

func TestFailedRendering(t *testing.T) {
	r, err := FromSnapshot(snapshotAfter(t, "schemas-data", "no"))
	if err != nil {
		t.Fatal(err)
	}

	var text, md bytes.Buffer
	if err := Text(&text, r); err != nil {
		t.Fatal(err)
	}
	if err := Markdown(&md, r); err != nil {
		t.Fatal(err)
	}
	for _, out := range []string{text.String(), md.String()} {
		if strings.Contains(out, "Recommended strategy") {
			t.Errorf("failed result rendered a strategy:\n%s", out)
		}
		for _, line := range r.Reasoning {
			if !strings.Contains(out, line) {
				t.Errorf("output missing remediation %q:\n%s", line, out)
			}
		}
	}
}

func TestYAMLDecodes(t *testing.T) {
	r, err := FromSnapshot(snapshotAfter(t, "iceberg-conversion", "same-cluster"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := YAML(&buf, r); err != nil {
		t.Fatal(err)
	}

	var got Result
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if diff := cmp.Diff(r, got); diff != "" {
		t.Errorf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestStrategyUnknown(t *testing.T) {
	var buf bytes.Buffer
	if err := Strategy(&buf, strategy.Describe("NOPE")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Unknown strategy") || !strings.Contains(buf.String(), "(none)") {
		t.Errorf("Strategy(unknown) = %q", buf.String())
	}
}

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{"", "text", "markdown", "md", "yaml"} {
		if err := CheckFormat(f); err != nil {
			t.Errorf("CheckFormat(%q) = %v", f, err)
		}
	}
	for _, f := range []string{"html", "TEXT", "json"} {
		if err := CheckFormat(f); err == nil {
			t.Errorf("CheckFormat(%q) accepted an unknown format", f)
		}
	}
}
