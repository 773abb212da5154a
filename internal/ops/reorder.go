package ops

import (
	"fmt"

	"github.com/madeso/book/internal/book"
	"github.com/madeso/book/internal/console"
)

// ReorderPolicy decides where a reordered entry lands.
type ReorderPolicy string

const (
	// ReorderLast appends the entry.
	ReorderLast ReorderPolicy = "last"
	// ReorderBeforeTOC inserts immediately before the TOC marker.
	ReorderBeforeTOC ReorderPolicy = "before_toc"
	// ReorderAfterTOC inserts immediately after the TOC marker.
	ReorderAfterTOC ReorderPolicy = "after_toc"
)

// ParseReorderPolicy validates a policy name from the CLI.
func ParseReorderPolicy(s string) (ReorderPolicy, error) {
	switch ReorderPolicy(s) {
	case ReorderLast, ReorderBeforeTOC, ReorderAfterTOC:
		return ReorderPolicy(s), nil
	}
	return "", fmt.Errorf("unknown reorder policy %q (expected last/before_toc/after_toc)", s)
}

// Reorder moves named entries within the chapter list. The TOC-relative
// policies fall back to appending, with a warning, when no TOC marker
// exists. An unknown entry aborts without saving.
func Reorder(con *console.Console, root string, policy ReorderPolicy, entries []string) error {
	bk, err := loadBookOrChapter(root)
	if err != nil {
		return err
	}

	// Inserting several entries right after the marker would reverse them,
	// so they are walked back to front.
	ordered := append([]string(nil), entries...)
	if policy == ReorderAfterTOC {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}

	changed := false
	for _, entry := range ordered {
		if !bk.HasEntry(entry) {
			return fmt.Errorf("unable to find %s in book", entry)
		}
		bk.RemoveEntry(entry)
		changed = true

		switch policy {
		case ReorderLast:
			bk.AddEntry(entry, false)
		case ReorderBeforeTOC:
			if toc := bk.IndexOfEntry(book.TOCFile); toc >= 0 {
				bk.InsertEntry(entry, toc)
			} else {
				con.Warnf("missing toc, adding last")
				bk.AddEntry(entry, false)
			}
		case ReorderAfterTOC:
			if toc := bk.IndexOfEntry(book.TOCFile); toc >= 0 {
				bk.InsertEntry(entry, toc+1)
			} else {
				con.Warnf("missing toc, adding last")
				bk.AddEntry(entry, false)
			}
		}
	}

	if changed {
		return bk.Save()
	}
	return nil
}
