package md

import (
	"regexp"
	"strings"
)

var (
	// A top-level header line, including ones glued to the marker.
	topHeaderRe = regexp.MustCompile(`^#[^#]* `)
	// A trailing {#anchor} attribute on a header.
	headerTagRe = regexp.MustCompile(`\{#[^}]+\}`)
)

// Section is one partition of a document split at its top-level headers.
// A leading section with no header keeps an empty Header.
type Section struct {
	Header string
	Lines  []string
}

// StripBlankLines removes leading and trailing blank lines.
func StripBlankLines(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

func lineContains(line, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(line), strings.ToLower(filter))
}

// ExtractSections partitions lines at every top-level header that contains
// filter (an empty filter matches every header). Content before the first
// matching header becomes a headerless leading section. When no filter is
// given, header lines glued to their marker lose one leading '#' so the
// result is normalized to single-marker headers. Empty sections are
// dropped.
func ExtractSections(lines []string, filter string) []Section {
	var out []Section
	var cur []string
	header := ""
	headerSeen := false

	flush := func() {
		stripped := StripBlankLines(cur)
		if len(stripped) > 0 {
			out = append(out, Section{Header: header, Lines: stripped})
		}
		cur = nil
	}

	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t\r\n")
		if strings.HasPrefix(line, "# ") && lineContains(line, filter) {
			flush()
			header = strings.TrimSpace(headerTagRe.ReplaceAllString(strings.TrimSpace(line[1:]), ""))
			headerSeen = true
			continue
		}
		if filter == "" && topHeaderRe.MatchString(line) {
			line = line[1:]
		}
		cur = append(cur, line)
	}
	// A document with no matching header yields nothing; its content is
	// not a section.
	if headerSeen {
		flush()
	}
	return out
}

// HasTopLevelHeader reports whether any line is a top-level header.
func HasTopLevelHeader(lines []string) bool {
	for _, line := range lines {
		if strings.HasPrefix(line, "# ") {
			return true
		}
	}
	return false
}

// IndentHeaders demotes every top-level header one level. It reports
// whether anything changed; documents without a "# " header are left
// alone.
func IndentHeaders(lines []string) ([]string, bool) {
	if !HasTopLevelHeader(lines) {
		return lines, false
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if topHeaderRe.MatchString(line) {
			out[i] = "#" + line
		} else {
			out[i] = line
		}
	}
	return out, true
}

// Slugify derives a filesystem-safe name from a header or title.
func Slugify(title string) string {
	t := strings.ToLower(title)
	t = strings.ReplaceAll(t, " ", "_")
	for _, drop := range []string{".", "*", ":", ",", "(", ")", "?"} {
		t = strings.ReplaceAll(t, drop, "")
	}
	return strings.ReplaceAll(t, "/", "-")
}
