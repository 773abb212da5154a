package ops

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/madeso/book/internal/book"
	"github.com/madeso/book/internal/frontmatter"
	"github.com/madeso/book/internal/paths"
)

// makeSection creates a saved section folder inside the book at dir and
// lists it there.
func makeSection(t *testing.T, dir, name string) string {
	t.Helper()
	sectionDir := filepath.Join(dir, name)
	section := book.NewChapter(filepath.Join(sectionDir, book.ChapterFile))
	if err := section.Save(); err != nil {
		t.Fatal(err)
	}
	writeDoc(t, filepath.Join(sectionDir, book.IndexFile), "title = \""+name+"\"\n+++\n")
	bk, err := book.Load(book.PathInFolder(dir))
	if err != nil {
		t.Fatal(err)
	}
	bk.AddEntry(name, false)
	if err := bk.Save(); err != nil {
		t.Fatal(err)
	}
	return sectionDir
}

func TestMove(t *testing.T) {
	con, _ := testConsole()
	dir := makeBook(t, "page.md")
	writeDoc(t, filepath.Join(dir, "img.png"), "png\n")
	writeDoc(t, filepath.Join(dir, "page.md"), "title = \"Page\"\n+++\n\nlook ![pic](img.png)\n")
	sectionDir := makeSection(t, dir, "part")

	if err := Move(con, sectionDir, []string{filepath.Join(dir, "page.md")}); err != nil {
		t.Fatal(err)
	}

	if paths.FileExists(filepath.Join(dir, "page.md")) {
		t.Error("source file must be deleted")
	}
	if got := loadEntries(t, dir); bkHas(got, "page.md") {
		t.Errorf("source chapter must drop the entry: %v", got)
	}

	section, err := book.Load(filepath.Join(sectionDir, book.ChapterFile))
	if err != nil {
		t.Fatal(err)
	}
	if !section.HasEntry("page.md") {
		t.Errorf("destination entries = %v", section.Entries)
	}

	fm, body, err := frontmatter.Read(con, filepath.Join(sectionDir, "page.md"), true)
	if err != nil {
		t.Fatal(err)
	}
	if title := frontmatter.Title(fm, ""); title != "Page" {
		t.Errorf("title = %q", title)
	}
	if !strings.Contains(body, "../img.png") {
		t.Errorf("image reference not rewritten: %q", body)
	}
}

func TestMoveIntoOwnChapterIsSkipped(t *testing.T) {
	con, buf := testConsole()
	dir := makeBook(t, "page.md")
	writeDoc(t, filepath.Join(dir, "page.md"), "title = \"Page\"\n+++\n\nbody\n")

	if err := Move(con, dir, []string{filepath.Join(dir, "page.md")}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "already in the destination") {
		t.Errorf("skip not reported: %s", buf.String())
	}
	if !paths.FileExists(filepath.Join(dir, "page.md")) {
		t.Error("a skipped move must not delete the file")
	}
}

func TestMoveUnlistedFileAborts(t *testing.T) {
	con, _ := testConsole()
	dir := makeBook(t)
	writeDoc(t, filepath.Join(dir, "loose.md"), "x\n")
	sectionDir := makeSection(t, dir, "part")

	if err := Move(con, sectionDir, []string{filepath.Join(dir, "loose.md")}); err == nil {
		t.Error("moving an unlisted file must fail")
	}
	if !paths.FileExists(filepath.Join(dir, "loose.md")) {
		t.Error("aborted move must leave the file in place")
	}
}

func TestUpdateImagesLeavesUnresolvable(t *testing.T) {
	con, buf := testConsole()
	dir := t.TempDir()
	from := filepath.Join(dir, "a", "doc.md")
	to := filepath.Join(dir, "b", "doc.md")

	content := "![gone](missing.png) and ![web](https://example.com/x.png)"
	got := UpdateImages(con, from, to, content)
	if got != content {
		t.Errorf("unresolvable references must stay untouched: %q", got)
	}
	if !strings.Contains(buf.String(), "missing image") {
		t.Errorf("missing image not reported: %s", buf.String())
	}
}

func TestParseReorderPolicy(t *testing.T) {
	for _, name := range []string{"last", "before_toc", "after_toc"} {
		if _, err := ParseReorderPolicy(name); err != nil {
			t.Errorf("ParseReorderPolicy(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseReorderPolicy("sideways"); err == nil {
		t.Error("unknown policy must be rejected")
	}
}

func reorderBook(t *testing.T, entries ...string) string {
	t.Helper()
	dir := t.TempDir()
	bk := book.NewBook(book.PathInFolder(dir))
	bk.Entries = entries
	if err := bk.Save(); err != nil {
		t.Fatal(err)
	}
	writeDoc(t, filepath.Join(dir, book.IndexFile), "title = \"b\"\n+++\n")
	for _, e := range entries {
		if e != book.TOCFile {
			writeDoc(t, filepath.Join(dir, e), "x\n")
		}
	}
	return dir
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name    string
		start   []string
		policy  ReorderPolicy
		entries []string
		want    []string
	}{
		{
			name:    "last",
			start:   []string{book.TOCFile, "a.md", "b.md"},
			policy:  ReorderLast,
			entries: []string{"a.md"},
			want:    []string{book.TOCFile, "b.md", "a.md"},
		},
		{
			name:    "before toc",
			start:   []string{book.TOCFile, "a.md", "b.md"},
			policy:  ReorderBeforeTOC,
			entries: []string{"b.md"},
			want:    []string{"b.md", book.TOCFile, "a.md"},
		},
		{
			name:    "after toc keeps argument order",
			start:   []string{book.TOCFile, "x.md", "a.md", "b.md"},
			policy:  ReorderAfterTOC,
			entries: []string{"a.md", "b.md"},
			want:    []string{book.TOCFile, "a.md", "b.md", "x.md"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			con, _ := testConsole()
			dir := reorderBook(t, tc.start...)
			if err := Reorder(con, dir, tc.policy, tc.entries); err != nil {
				t.Fatal(err)
			}
			got := loadEntries(t, dir)
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Errorf("entries = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReorderWithoutTOCFallsBack(t *testing.T) {
	con, buf := testConsole()
	dir := reorderBook(t, "a.md", "b.md")

	if err := Reorder(con, dir, ReorderBeforeTOC, []string{"a.md"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "missing toc") {
		t.Errorf("fallback not reported: %s", buf.String())
	}
	got := loadEntries(t, dir)
	if strings.Join(got, ",") != "b.md,a.md" {
		t.Errorf("entries = %v, want the entry appended", got)
	}
}

func TestReorderUnknownEntryAborts(t *testing.T) {
	con, _ := testConsole()
	dir := reorderBook(t, book.TOCFile, "a.md")

	if err := Reorder(con, dir, ReorderLast, []string{"ghost.md"}); err == nil {
		t.Error("unknown entry must abort")
	}
}
