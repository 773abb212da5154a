package book

import (
	"path/filepath"

	"github.com/madeso/book/internal/paths"
)

// EntryKind classifies what a chapter entry resolves to on disk. Kinds are
// resolved once when the entry list is inspected instead of re-probing the
// filesystem throughout rendering.
type EntryKind int

const (
	// EntryFile is an existing markdown page.
	EntryFile EntryKind = iota
	// EntryTOC is the reserved table-of-contents marker.
	EntryTOC
	// EntrySection is a sub-folder carrying its own chapter sidecar.
	EntrySection
	// EntryBrokenSection is a sub-folder without a chapter sidecar.
	EntryBrokenSection
	// EntryMissing names neither an existing file nor a folder.
	EntryMissing
)

// Entry is a resolved chapter entry.
type Entry struct {
	Name string
	Kind EntryKind
	// Path is the entry resolved against the chapter folder.
	Path string
	// SidecarPath is set for sections (and for broken ones, where it names
	// the missing file).
	SidecarPath string
}

// ResolveEntries probes each listed entry once and tags it. The TOC marker
// is recognized by name before any filesystem check, so it works whether
// or not a file by that name exists.
func (c *Chapter) ResolveEntries() []Entry {
	entries := make([]Entry, 0, len(c.Entries))
	for _, name := range c.Entries {
		source := c.EntryPath(name)
		e := Entry{Name: name, Path: source}
		switch {
		case name == TOCFile:
			e.Kind = EntryTOC
		case paths.FileExists(source):
			e.Kind = EntryFile
		case paths.FolderExists(source):
			e.SidecarPath = filepath.Join(source, ChapterFile)
			if paths.FileExists(e.SidecarPath) {
				e.Kind = EntrySection
			} else {
				e.Kind = EntryBrokenSection
			}
		default:
			e.Kind = EntryMissing
		}
		entries = append(entries, e)
	}
	return entries
}
