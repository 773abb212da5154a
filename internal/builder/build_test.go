package builder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/madeso/book/internal/book"
	"github.com/madeso/book/internal/config"
)

func TestBuild(t *testing.T) {
	con, _ := testConsole()
	dir := t.TempDir()

	writeDoc(t, filepath.Join(dir, book.IndexFile), "title = \"My Book\"\n+++\n\nwelcome text\n")
	writeDoc(t, filepath.Join(dir, "one.md"), "title = \"One\"\n+++\n\nsee ![pic](img.png)\n")
	writeDoc(t, filepath.Join(dir, "img.png"), "png\n")

	bk := book.NewBook(book.PathInFolder(dir))
	bk.AddEntry("one.md", false)
	bk.Copyright = "© somebody"
	if err := bk.Save(); err != nil {
		t.Fatal(err)
	}

	count, err := Build(con, bk, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("page count = %d, want 3 (index, toc, one)", count)
	}

	out := filepath.Join(dir, "html")
	for _, f := range []string{"index.html", "toc.html", "one.html", "style.css", "img.png"} {
		if _, err := os.Stat(filepath.Join(out, f)); err != nil {
			t.Errorf("missing output %s: %v", f, err)
		}
	}

	toc, err := os.ReadFile(filepath.Join(out, "toc.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(toc), `<a href="one.html">One</a>`) {
		t.Errorf("toc listing missing page: %s", toc)
	}
	if !strings.Contains(string(toc), "© somebody") {
		t.Errorf("copyright missing: %s", toc)
	}

	one, err := os.ReadFile(filepath.Join(out, "one.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(one), "img.png") {
		t.Errorf("image reference missing: %s", one)
	}
	if !strings.Contains(string(one), "My Book") {
		t.Errorf("book title missing from page chrome: %s", one)
	}
}

func TestBuildCustomTemplateAndOutput(t *testing.T) {
	con, _ := testConsole()
	dir := t.TempDir()

	writeDoc(t, filepath.Join(dir, book.IndexFile), "title = \"My Book\"\n+++\n\nhello\n")
	writeDoc(t, filepath.Join(dir, "page.mustache"), "custom:{{title}}")

	bk := book.NewBook(book.PathInFolder(dir))
	bk.Entries = nil
	if err := bk.Save(); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{Output: "out", Template: "page.mustache"}
	if _, err := Build(con, bk, cfg); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "custom:My Book\n" {
		t.Errorf("rendered = %q", got)
	}
}

func TestBuildCustomStylesheet(t *testing.T) {
	con, _ := testConsole()
	dir := t.TempDir()

	writeDoc(t, filepath.Join(dir, book.IndexFile), "title = \"b\"\n+++\n\nx\n")
	writeDoc(t, filepath.Join(dir, "style.css"), "body { color: red }\n")

	bk := book.NewBook(book.PathInFolder(dir))
	bk.Entries = nil
	if err := bk.Save(); err != nil {
		t.Fatal(err)
	}

	if _, err := Build(con, bk, config.Default()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "html", "style.css"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "body { color: red }\n" {
		t.Errorf("stylesheet = %q", data)
	}
}
