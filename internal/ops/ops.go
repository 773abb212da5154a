// Package ops implements the commands that inspect or restructure a book:
// everything the CLI dispatches to, one function per operation.
package ops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/madeso/book/internal/book"
	"github.com/madeso/book/internal/console"
	"github.com/madeso/book/internal/md"
	"github.com/madeso/book/internal/paths"
)

// loadBookOrChapter resolves the chapter owning folder: the book sidecar
// when folder is the book root, else the folder's own chapter sidecar,
// provided a book exists somewhere above.
func loadBookOrChapter(folder string) (*book.Chapter, error) {
	path := book.PathInFolder(folder)
	if paths.FileExists(path) {
		return book.Load(path)
	}
	if _, found := book.FindBookFile(folder); found {
		p := filepath.Join(folder, book.ChapterFile)
		if paths.FileExists(p) {
			return book.Load(p)
		}
		return nil, fmt.Errorf("%s: missing file, this is not a valid chapter folder", p)
	}
	return nil, errors.New("this is not a book")
}

// loadBook finds and loads the book owning folder.
func loadBook(folder string) (*book.Chapter, error) {
	path, found := book.FindBookFile(folder)
	if !found {
		return nil, errors.New("this is not a book")
	}
	return book.Load(path)
}

// Init creates a new book in root, or refreshes frontmatter titles across
// an existing one when update is set.
func Init(con *console.Console, root string, update bool) error {
	if path, found := book.FindBookFile(root); found {
		if !update {
			return fmt.Errorf("book is already defined in %s", path)
		}
		bk, err := book.Load(path)
		if err != nil {
			return err
		}
		return bk.UpdateFrontmatters(con)
	}

	bk := book.NewBook(book.PathInFolder(root))
	if err := bk.Save(); err != nil {
		return err
	}
	if err := bk.UpdateFrontmatters(con); err != nil {
		return err
	}
	con.Infof("Created book!")
	return nil
}

// Add appends existing files or folders to the chapter's entry list. A new
// section folder gets an empty chapter sidecar and a titled index; the
// chapter's own index file is implicit and adding it is a no-op.
func Add(con *console.Console, root string, entries []string) error {
	bk, err := loadBookOrChapter(root)
	if err != nil {
		return err
	}

	indexSource := bk.IndexPath()
	changed := false
	for _, entry := range entries {
		path := bk.EntryPath(entry)
		switch {
		case paths.FileExists(path):
			if path == indexSource {
				con.Infof("%s evaluates to the index file, this is always added, so ignoring...", entry)
				continue
			}
			bk.AddEntry(entry, false)
			con.Infof("Adding %s", entry)
			if err := book.UpdateFrontmatter(con, path, "", nil); err != nil {
				return err
			}
			changed = true
		case paths.FolderExists(path):
			sectionPath := filepath.Join(path, book.ChapterFile)
			if paths.FileExists(sectionPath) {
				con.Errorf("Existing section %s already added", entry)
				continue
			}
			con.Infof("Adding section %s", entry)
			section := book.NewChapter(sectionPath)
			if err := section.Save(); err != nil {
				return err
			}
			if err := book.UpdateFrontmatter(con, filepath.Join(path, book.IndexFile), "", nil); err != nil {
				return err
			}
			bk.AddEntry(entry, false)
			changed = true
		default:
			con.Errorf("File '%s' doesn't exist", path)
		}
	}

	if changed {
		return bk.Save()
	}
	return nil
}

// Remove takes entries out of the chapter list and deletes their backing
// file or folder. An unknown entry aborts before the list is saved;
// deletion failures are reported but not fatal.
func Remove(con *console.Console, root string, entries []string) error {
	bk, err := loadBookOrChapter(root)
	if err != nil {
		return err
	}

	changed := false
	for _, entry := range entries {
		if !bk.HasEntry(entry) {
			return fmt.Errorf("unable to find %s in book", entry)
		}
		path := bk.EntryPath(entry)
		if bk.RemoveEntry(entry) {
			changed = true
			con.Infof("Removed %s", entry)
		}
		if paths.FileExists(path) {
			if err := os.Remove(path); err != nil {
				con.Warnf("could not delete %s: %v", path, err)
			}
		} else if paths.FolderExists(path) {
			if err := os.RemoveAll(path); err != nil {
				con.Warnf("could not delete %s: %v", path, err)
			}
		}
	}

	if changed {
		return bk.Save()
	}
	return nil
}

// newPage creates an entry named after the slugged title, with frontmatter
// holding the title verbatim. It reports whether a page was created; an
// existing file is left alone.
func newPage(con *console.Console, c *book.Chapter, title, content string, atStart bool) (bool, error) {
	entry := md.Slugify(title) + ".md"
	path := c.EntryPath(entry)
	if paths.FileExists(path) {
		con.Infof("%s already exists, so ignoring...", entry)
		return false, nil
	}
	c.AddEntry(entry, atStart)
	if err := book.UpdateFrontmatter(con, path, title, &content); err != nil {
		return false, err
	}
	return true, nil
}

// NewPages creates one empty page per title in the current chapter.
func NewPages(con *console.Console, root string, titles []string) error {
	bk, err := loadBookOrChapter(root)
	if err != nil {
		return err
	}

	changed := false
	for _, title := range titles {
		added, err := newPage(con, bk, title, "", false)
		if err != nil {
			return err
		}
		if added {
			changed = true
		}
	}

	if changed {
		return bk.Save()
	}
	return nil
}
