package ops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/madeso/book/internal/book"
	"github.com/madeso/book/internal/console"
	"github.com/madeso/book/internal/frontmatter"
	"github.com/madeso/book/internal/md"
	"github.com/madeso/book/internal/paths"
)

// Split partitions documents at their top-level headers (optionally only
// headers containing filter) into new pages. Splitting the index keeps
// the headerless leading content in the index and lists the new pages in
// the book; splitting any other page replaces it with a new section
// holding the pieces. With print set, the partition is listed and nothing
// is written.
func Split(con *console.Console, root string, files []string, filter string, print bool) error {
	bk, err := loadBookOrChapter(root)
	if err != nil {
		return fmt.Errorf("this is not a book, consider using import instead: %w", err)
	}

	// A fresh book lists only the TOC marker; pages split out of it can be
	// appended in reading order. A populated book gets them inserted at
	// the start instead.
	bookHasOnlyTOC := len(bk.Entries) == 1 && bk.HasEntry(book.TOCFile)

	for _, file := range files {
		fromPath := bk.EntryPath(file)
		fm, content, err := frontmatter.Read(con, fromPath, true)
		if err != nil {
			return err
		}
		sections := md.ExtractSections(strings.Split(content, "\n"), filter)

		if print {
			for _, s := range sections {
				name := "<unchanged>"
				if len(s.Header) > 0 {
					name = md.Slugify(s.Header) + ".md"
				}
				con.Infof("%s (%d) -> %s", s.Header, len(s.Lines), name)
			}
			return nil
		}
		if len(sections) == 0 {
			return errors.New("zero pages found")
		}

		remaining := ""
		if strings.TrimSpace(sections[0].Header) == "" {
			remaining = strings.Join(sections[0].Lines, "\n")
			sections = sections[1:]
		}
		if len(sections) == 0 {
			return errors.New("only title page found... aborting")
		}

		if file == book.IndexFile {
			if err := splitIndex(con, bk, fromPath, fm, remaining, sections, bookHasOnlyTOC); err != nil {
				return err
			}
		} else {
			if err := splitPage(con, bk, file, fromPath, fm, remaining, sections); err != nil {
				return err
			}
		}
	}
	return nil
}

// splitIndex leaves the remaining content in the index and adds every
// segment as a new page in the book's list.
func splitIndex(con *console.Console, bk *book.Chapter, fromPath string, fm frontmatter.Map, remaining string, sections []md.Section, bookHasOnlyTOC bool) error {
	if err := frontmatter.Write(fromPath, fm, remaining); err != nil {
		return err
	}

	// Pages go in at the start of a populated book, so repeated inserts
	// leave them reversed relative to encounter order.
	for _, s := range sections {
		if _, err := newPage(con, bk, s.Header, strings.Join(s.Lines, "\n"), !bookHasOnlyTOC); err != nil {
			return err
		}
	}
	return bk.Save()
}

// splitPage replaces the page's entry with a new section folder: the
// remaining content becomes the section index, each segment a page inside
// it, and all image references are rewritten for their new locations.
func splitPage(con *console.Console, bk *book.Chapter, file, fromPath string, fm frontmatter.Map, remaining string, sections []md.Section) error {
	if !bk.HasEntry(file) {
		return errors.New("this is not a page in a chapter")
	}

	dirName := strings.TrimSuffix(file, filepath.Ext(file))
	dirPath := bk.EntryPath(dirName)

	for i, entry := range bk.Entries {
		if entry == file {
			bk.Entries[i] = dirName
		}
	}

	if err := os.Remove(fromPath); err != nil {
		return fmt.Errorf("could not delete %s: %w", fromPath, err)
	}
	if !paths.FolderExists(dirPath) {
		if err := os.Mkdir(dirPath, 0755); err != nil {
			return fmt.Errorf("could not create %s: %w", dirPath, err)
		}
	}

	section := book.NewChapter(filepath.Join(dirPath, book.ChapterFile))

	indexPath := filepath.Join(dirPath, book.IndexFile)
	title := frontmatter.Title(fm, book.GuessTitle(indexPath))
	indexContent := UpdateImages(con, fromPath, indexPath, remaining)
	if err := book.UpdateFrontmatter(con, indexPath, title, &indexContent); err != nil {
		return err
	}

	for _, s := range sections {
		pageFile := section.EntryPath(md.Slugify(s.Header) + ".md")
		body := UpdateImages(con, fromPath, pageFile, strings.Join(s.Lines, "\n"))
		if _, err := newPage(con, section, s.Header, body, false); err != nil {
			return err
		}
	}

	if err := section.Save(); err != nil {
		return err
	}
	return bk.Save()
}

// Indent demotes every top-level header in the given pages one level, so
// a standalone document can be merged into a larger section without
// competing titles.
func Indent(con *console.Console, root string, files []string) error {
	bk, err := loadBookOrChapter(root)
	if err != nil {
		return fmt.Errorf("this is not a book, consider using import instead: %w", err)
	}

	for _, file := range files {
		path := bk.EntryPath(file)
		fm, content, err := frontmatter.Read(con, path, true)
		if err != nil {
			return err
		}
		lines, changed := md.IndentHeaders(strings.Split(content, "\n"))
		if !changed {
			continue
		}
		if err := frontmatter.Write(path, fm, strings.Join(lines, "\n")); err != nil {
			return err
		}
	}
	return nil
}

// Import bootstraps a new book in root from a flat markdown document. A
// document with more than one top-level header is ambiguous (it would
// need a split first) and is rejected, as is a root that already belongs
// to a book.
func Import(con *console.Console, root, file string, print bool) error {
	path, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	if !paths.FileExists(path) {
		return fmt.Errorf("%s: missing file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}
	sections := md.ExtractSections(strings.Split(string(data), "\n"), "")

	if print {
		for _, s := range sections {
			con.Infof("%s (%d)", s.Header, len(s.Lines))
		}
		return nil
	}

	if len(sections) == 0 {
		return errors.New("zero pages found")
	}
	if len(sections) > 1 {
		return fmt.Errorf("unable to create a book from %s", path)
	}
	if existing, found := book.FindBookFile(root); found {
		return fmt.Errorf("this is a book (%s), importing would create a new one", existing)
	}

	indexFile := filepath.Join(root, book.IndexFile)
	s := sections[0]
	title := s.Header
	if title == "" {
		title = book.GuessTitle(indexFile)
	}
	fm := frontmatter.Map{}
	frontmatter.ApplyTitle(fm, title)
	if err := frontmatter.Write(indexFile, fm, strings.Join(s.Lines, "\n")); err != nil {
		return err
	}

	bk := book.NewBook(book.PathInFolder(root))
	if err := bk.Save(); err != nil {
		return err
	}
	return bk.UpdateFrontmatters(con)
}
