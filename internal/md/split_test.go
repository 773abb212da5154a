package md

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractSectionsBasic(t *testing.T) {
	lines := strings.Split("# First\ntext1\n# Second\ntext2", "\n")
	sections := ExtractSections(lines, "")

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Header != "First" || !reflect.DeepEqual(sections[0].Lines, []string{"text1"}) {
		t.Errorf("first section = %+v", sections[0])
	}
	if sections[1].Header != "Second" || !reflect.DeepEqual(sections[1].Lines, []string{"text2"}) {
		t.Errorf("second section = %+v", sections[1])
	}
}

func TestExtractSectionsLeadingContent(t *testing.T) {
	lines := strings.Split("intro text\n\n# A\nbody", "\n")
	sections := ExtractSections(lines, "")

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Header != "" || !reflect.DeepEqual(sections[0].Lines, []string{"intro text"}) {
		t.Errorf("leading section = %+v", sections[0])
	}
	if sections[1].Header != "A" {
		t.Errorf("second section = %+v", sections[1])
	}
}

func TestExtractSectionsNoHeader(t *testing.T) {
	sections := ExtractSections([]string{"just", "content"}, "")
	if len(sections) != 0 {
		t.Errorf("a document without headers yields no sections, got %+v", sections)
	}
}

func TestExtractSectionsFilter(t *testing.T) {
	lines := strings.Split("# Part One\na\n# Interlude\nb\n# Part Two\nc", "\n")
	sections := ExtractSections(lines, "part")

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d: %+v", len(sections), sections)
	}
	if sections[0].Header != "Part One" {
		t.Errorf("first = %+v", sections[0])
	}
	// The non-matching header stays inside the preceding section.
	if !reflect.DeepEqual(sections[0].Lines, []string{"a", "# Interlude", "b"}) {
		t.Errorf("first lines = %v", sections[0].Lines)
	}
	if sections[1].Header != "Part Two" {
		t.Errorf("second = %+v", sections[1])
	}
}

func TestExtractSectionsStripsAnchorTag(t *testing.T) {
	sections := ExtractSections([]string{"# Hello {#hi}", "x"}, "")
	if len(sections) != 1 || sections[0].Header != "Hello" {
		t.Errorf("sections = %+v", sections)
	}
}

func TestExtractSectionsBlankLinesTrimmed(t *testing.T) {
	lines := strings.Split("# A\n\n\ntext\n\n\n# B\nmore", "\n")
	sections := ExtractSections(lines, "")
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if !reflect.DeepEqual(sections[0].Lines, []string{"text"}) {
		t.Errorf("lines = %v", sections[0].Lines)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"First", "first"},
		{"Hello, World?/Q", "hello_world-q"},
		{"A (short) note.", "a_short_note"},
		{"Some: Thing*", "some_thing"},
	}
	for _, tc := range tests {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIndentHeaders(t *testing.T) {
	lines := []string{"# A", "text", "## B"}
	out, changed := IndentHeaders(lines)
	if !changed {
		t.Fatal("expected a change")
	}
	if !reflect.DeepEqual(out, []string{"## A", "text", "## B"}) {
		t.Errorf("out = %v", out)
	}
}

func TestIndentHeadersNoTopLevel(t *testing.T) {
	lines := []string{"## A", "text"}
	out, changed := IndentHeaders(lines)
	if changed {
		t.Errorf("no top-level header, nothing to do, got %v", out)
	}
}

func TestStripBlankLines(t *testing.T) {
	in := []string{"", "  ", "a", "", "b", "", "\t"}
	want := []string{"a", "", "b"}
	if got := StripBlankLines(in); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestHasTopLevelHeader(t *testing.T) {
	if HasTopLevelHeader([]string{"## no", "text"}) {
		t.Error("false positive")
	}
	if !HasTopLevelHeader([]string{"text", "# yes"}) {
		t.Error("false negative")
	}
}
