package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbroglie/mustache"

	"github.com/madeso/book/internal/console"
	"github.com/madeso/book/internal/paths"
)

// Generated holds the book-wide values every page render needs.
type Generated struct {
	Extension string
	BookTitle string
	Root      string
	TOC       string
	StyleCSS  string
	IndexHTML string
	TOCHTML   string
	Copyright string
}

// Render assembles the template context for the page and writes the
// rendered result to its target, creating directories as needed.
func (p *Page) Render(con *console.Console, tmpl *mustache.Template, gen *Generated) error {
	titles := []map[string]any{{"title": p.Title}}
	sectionHeaders := []map[string]any{}
	for q := p.Parent; q != nil; q = q.Parent {
		// The forest root is the book itself; it is not a breadcrumb.
		if q.Parent == nil {
			continue
		}
		titles = append(titles, map[string]any{"title": q.Title})
		sectionHeaders = append(sectionHeaders, map[string]any{
			"title": q.Title,
			"href":  paths.Relative(p.Target, q.Target),
		})
	}
	for i, j := 0, len(sectionHeaders)-1; i < j; i, j = i+1, j-1 {
		sectionHeaders[i], sectionHeaders[j] = sectionHeaders[j], sectionHeaders[i]
	}

	prev := ""
	if p.Prev != nil {
		prev = paths.Relative(p.Target, p.Prev.Target)
	}
	next := ""
	if p.Next != nil {
		next = paths.Relative(p.Target, p.Next.Target)
	}

	body := p.Body
	if body == TOCBody {
		body = gen.TOC
	}

	data := map[string]any{
		"body":            body,
		"no_title_page":   p.Title != "Colophon",
		"title":           p.Title,
		"titles":          titles,
		"section_headers": sectionHeaders,
		"header":          p.Title,
		"prev":            prev,
		"next":            next,
		"index_html":      paths.Relative(p.Target, gen.IndexHTML),
		"toc_html":        paths.Relative(p.Target, gen.TOCHTML),
		"style_css":       paths.Relative(p.Target, gen.StyleCSS),
		"book_title":      gen.BookTitle,
		"copyright":       gen.Copyright,
	}

	rendered := renderTemplate(con, p.Source, tmpl, data)

	if err := os.MkdirAll(filepath.Dir(p.Target), 0755); err != nil {
		return fmt.Errorf("could not create directory for %s: %w", p.Target, err)
	}
	if err := os.WriteFile(p.Target, []byte(rendered+"\n"), 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", p.Target, err)
	}
	return nil
}

// renderTemplate renders strictly first so every missing key is reported
// against the page that triggered it, then falls back to a lenient render
// where unresolved fragments come out empty instead of failing the build.
func renderTemplate(con *console.Console, name string, tmpl *mustache.Template, data map[string]any) string {
	mustache.AllowMissingVariables = false
	out, err := tmpl.Render(data)
	if err == nil {
		return out
	}
	con.Warnf("%s: %v", name, err)

	mustache.AllowMissingVariables = true
	defer func() { mustache.AllowMissingVariables = false }()
	out, err = tmpl.Render(data)
	if err != nil {
		con.Errorf("%s: %v", name, err)
		return ""
	}
	return out
}
