// Package book models the persisted document tree: chapters backed by JSON
// sidecar files, the distinguished book root, and the metadata that keeps
// every listed document titled.
package book

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/madeso/book/internal/console"
	"github.com/madeso/book/internal/frontmatter"
	"github.com/madeso/book/internal/md"
	"github.com/madeso/book/internal/paths"
)

const (
	// BookFile is the sidecar marking the root of a book; one per project.
	BookFile = ".book.json"
	// ChapterFile is the sidecar of a section folder.
	ChapterFile = ".chapter.json"
	// IndexFile is the implicit first document of every chapter. It is
	// never listed in the chapter's own entries.
	IndexFile = "index.md"
	// TOCFile is the reserved entry name rendered as a generated table of
	// contents.
	TOCFile = "toc.md"
)

// Chapter is an ordered list of entries backed by a sidecar file. A book is
// the root chapter, stored with its copyright in the book sidecar; IsBook
// selects which on-disk shape Save uses.
type Chapter struct {
	// FilePath is the sidecar location; SourceFolder is its directory,
	// which every entry name is relative to.
	FilePath     string
	SourceFolder string
	Entries      []string

	IsBook    bool
	Copyright string
}

type chapterJSON struct {
	Chapters []string `json:"chapters"`
}

type bookJSON struct {
	Chapter   chapterJSON `json:"chapter"`
	Copyright string      `json:"copyright"`
}

// NewChapter creates an empty section chapter that has not been saved yet.
func NewChapter(filePath string) *Chapter {
	return &Chapter{
		FilePath:     filePath,
		SourceFolder: filepath.Dir(filePath),
	}
}

// NewBook creates a fresh book whose only entry is the TOC marker, so a
// newly initialized book renders a table of contents right after its index.
func NewBook(filePath string) *Chapter {
	c := NewChapter(filePath)
	c.IsBook = true
	c.Entries = []string{TOCFile}
	return c
}

// Load reads a sidecar file. The base name decides whether it holds a book
// or a plain chapter.
func Load(filePath string) (*Chapter, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", filePath, err)
	}

	c := NewChapter(filePath)
	if filepath.Base(filePath) == BookFile {
		var bj bookJSON
		if err := json.Unmarshal(data, &bj); err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", filePath, err)
		}
		c.IsBook = true
		c.Entries = bj.Chapter.Chapters
		c.Copyright = bj.Copyright
	} else {
		var cj chapterJSON
		if err := json.Unmarshal(data, &cj); err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", filePath, err)
		}
		c.Entries = cj.Chapters
	}
	if c.Entries == nil {
		c.Entries = []string{}
	}
	return c, nil
}

// Save writes the sidecar back, pretty-printed with deterministic key
// order.
func (c *Chapter) Save() error {
	if c.Entries == nil {
		c.Entries = []string{}
	}
	var payload any
	if c.IsBook {
		payload = bookJSON{Chapter: chapterJSON{Chapters: c.Entries}, Copyright: c.Copyright}
	} else {
		payload = chapterJSON{Chapters: c.Entries}
	}

	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return fmt.Errorf("could not serialize %s: %w", c.FilePath, err)
	}
	if err := os.MkdirAll(filepath.Dir(c.FilePath), 0755); err != nil {
		return fmt.Errorf("could not create directory for %s: %w", c.FilePath, err)
	}
	if err := os.WriteFile(c.FilePath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", c.FilePath, err)
	}
	return nil
}

// AddEntry appends an entry, or inserts it first when atStart is set.
func (c *Chapter) AddEntry(name string, atStart bool) {
	if atStart {
		c.Entries = append([]string{name}, c.Entries...)
	} else {
		c.Entries = append(c.Entries, name)
	}
}

// HasEntry reports whether name is listed.
func (c *Chapter) HasEntry(name string) bool {
	return c.IndexOfEntry(name) >= 0
}

// IndexOfEntry returns the position of name, or -1.
func (c *Chapter) IndexOfEntry(name string) int {
	for i, e := range c.Entries {
		if e == name {
			return i
		}
	}
	return -1
}

// RemoveEntry removes name from the list; it reports whether the entry was
// found. The caller decides whether a missing entry aborts the operation.
func (c *Chapter) RemoveEntry(name string) bool {
	i := c.IndexOfEntry(name)
	if i < 0 {
		return false
	}
	c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
	return true
}

// InsertEntry places name at position i, clamped to the list bounds.
func (c *Chapter) InsertEntry(name string, i int) {
	if i < 0 {
		i = 0
	}
	if i > len(c.Entries) {
		i = len(c.Entries)
	}
	c.Entries = append(c.Entries[:i], append([]string{name}, c.Entries[i:]...)...)
}

// IndexPath returns the chapter's implicit index document.
func (c *Chapter) IndexPath() string {
	return filepath.Join(c.SourceFolder, IndexFile)
}

// EntryPath resolves an entry name against the chapter folder.
func (c *Chapter) EntryPath(name string) string {
	return filepath.Join(c.SourceFolder, name)
}

// GuessTitle infers a display title from a document path: the base name
// without extension, except for a chapter index where the parent folder
// names the chapter.
func GuessTitle(source string) string {
	base := filepath.Base(source)
	if base == IndexFile {
		return filepath.Base(filepath.Dir(absPath(source)))
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// PathInFolder returns where the book sidecar would live in folder.
func PathInFolder(folder string) string {
	return filepath.Join(folder, BookFile)
}

// FindBookFile walks upward from folder until it finds a book sidecar.
func FindBookFile(folder string) (string, bool) {
	f := absPath(folder)
	for {
		candidate := PathInFolder(f)
		if paths.FileExists(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(f)
		if parent == f {
			return "", false
		}
		f = parent
	}
}

// UpdateFrontmatter makes sure the document at path carries an explicit
// title, writing the file only when the header is absent or would change.
// A non-empty titleOverride replaces the guessed title; a non-nil
// extraContent is appended to the body and forces a write.
func UpdateFrontmatter(con *console.Console, path string, titleOverride string, extraContent *string) error {
	fm, content, err := frontmatter.Read(con, path, false)
	if err != nil {
		return err
	}

	guessed := titleOverride
	if guessed == "" {
		guessed = GuessTitle(path)
	}

	write := false
	if fm == nil {
		write = true
		fm = frontmatter.Map{}
		frontmatter.ApplyTitle(fm, frontmatter.Title(fm, guessed))
	} else {
		before := frontmatter.String(fm)
		frontmatter.ApplyTitle(fm, frontmatter.Title(fm, guessed))
		if before != frontmatter.String(fm) {
			write = true
		}
	}

	if !write && extraContent == nil {
		return nil
	}

	lines := md.StripBlankLines(strings.Split(content, "\n"))
	if extraContent != nil {
		lines = append(lines, "")
		lines = append(lines, md.StripBlankLines(strings.Split(*extraContent, "\n"))...)
		lines = md.StripBlankLines(lines)
	}
	return frontmatter.Write(path, fm, strings.Join(lines, "\n"))
}

// UpdateFrontmatters walks the chapter and gives its index and every listed
// document an explicit title. Running it twice writes nothing the second
// time. Section folders are recursed into; the TOC marker has no backing
// file and is skipped.
func (c *Chapter) UpdateFrontmatters(con *console.Console) error {
	if err := UpdateFrontmatter(con, c.IndexPath(), "", nil); err != nil {
		return err
	}
	for _, entry := range c.ResolveEntries() {
		switch entry.Kind {
		case EntryFile:
			if err := UpdateFrontmatter(con, entry.Path, "", nil); err != nil {
				return err
			}
		case EntrySection:
			section, err := Load(entry.SidecarPath)
			if err != nil {
				con.Errorf("%v", err)
				continue
			}
			if err := section.UpdateFrontmatters(con); err != nil {
				return err
			}
		case EntryTOC:
			// implicit, no file
		default:
			con.Warnf("%s: no such file, skipping frontmatter update", entry.Path)
		}
	}
	return nil
}

// MarkdownFiles lists every markdown document the tree owns, index files
// first, in entry order. Broken sections are reported and skipped.
func (c *Chapter) MarkdownFiles(con *console.Console) []string {
	files := []string{c.IndexPath()}
	for _, entry := range c.ResolveEntries() {
		switch entry.Kind {
		case EntryFile:
			files = append(files, entry.Path)
		case EntrySection:
			section, err := Load(entry.SidecarPath)
			if err != nil {
				con.Errorf("%v", err)
				continue
			}
			files = append(files, section.MarkdownFiles(con)...)
		}
	}
	return files
}
