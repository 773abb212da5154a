// Package frontmatter reads and writes the TOML metadata header embedded at
// the top of a markdown document, separated from the body by a line of '+'
// characters.
package frontmatter

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/madeso/book/internal/console"
	"github.com/madeso/book/internal/paths"
)

const (
	// SeparatorChar repeated SeparatorMinLength or more times on its own
	// line ends the frontmatter header.
	SeparatorChar      = '+'
	SeparatorMinLength = 3
)

// TitleKey is the only key the tool itself interprets; everything else in
// the header is preserved verbatim.
const TitleKey = "title"

// Map holds the parsed header. A nil Map means the document has no
// frontmatter at all, which is distinct from an empty one.
type Map map[string]any

// isSeparator reports whether the trimmed line consists solely of at least
// SeparatorMinLength separator characters.
func isSeparator(line string) bool {
	s := strings.TrimSpace(line)
	if len(s) < SeparatorMinLength {
		return false
	}
	for _, r := range s {
		if r != SeparatorChar {
			return false
		}
	}
	return true
}

// Read splits the file at path into frontmatter and body. If no separator
// line is found the whole file is body and the returned Map is nil. When
// required is false a missing file yields (nil, "", nil). A header that
// fails to parse as TOML is reported on con and treated as empty, so a
// broken header never aborts a whole command.
func Read(con *console.Console, path string, required bool) (Map, string, error) {
	if !required && !paths.FileExists(path) {
		return nil, "", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not read %s: %w", path, err)
	}
	defer f.Close()

	var first, second strings.Builder
	hasFrontmatter := false

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !hasFrontmatter {
			if isSeparator(line) {
				hasFrontmatter = true
			} else {
				first.WriteString(line)
				first.WriteString("\n")
			}
		} else {
			second.WriteString(line)
			second.WriteString("\n")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, "", fmt.Errorf("could not read %s: %w", path, err)
	}

	if !hasFrontmatter {
		return nil, first.String(), nil
	}

	fm := Map{}
	if err := toml.Unmarshal([]byte(first.String()), &fm); err != nil {
		con.Errorf("Parse error: %s: %v", path, err)
		fm = Map{}
	}
	return fm, second.String(), nil
}

// String serializes the frontmatter without its separator. Key order is
// deterministic, so comparing the output before and after an edit tells
// whether the header actually changed. A nil map yields "".
func String(fm Map) string {
	if fm == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]any(fm)); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

// Write stores frontmatter and body at path, creating parent directories as
// needed. The body is written trimmed of trailing whitespace with a single
// final newline; a nil frontmatter writes the body alone.
func Write(path string, fm Map, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %s: %w", path, err)
	}

	var buf bytes.Buffer
	if fm != nil {
		buf.WriteString(String(fm))
		buf.WriteString("\n")
		buf.WriteString(strings.Repeat(string(SeparatorChar), SeparatorMinLength))
		buf.WriteString("\n")
	}
	buf.WriteString(strings.TrimRight(body, " \t\r\n"))
	buf.WriteString("\n")

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return nil
}

// Title resolves the display title of a document: the explicit title key
// when present, else the guessed one.
func Title(fm Map, guessed string) string {
	if fm != nil {
		if t, ok := fm[TitleKey].(string); ok {
			return t
		}
	}
	return guessed
}

// ApplyTitle materializes the resolved title back into the map so it
// becomes explicit and survives renames.
func ApplyTitle(fm Map, title string) {
	fm[TitleKey] = title
}
