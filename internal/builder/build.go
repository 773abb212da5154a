package builder

import (
	_ "embed"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/cbroglie/mustache"

	"github.com/madeso/book/internal/book"
	"github.com/madeso/book/internal/config"
	"github.com/madeso/book/internal/console"
	"github.com/madeso/book/internal/frontmatter"
	"github.com/madeso/book/internal/md"
	"github.com/madeso/book/internal/paths"
)

//go:embed templates/template.mustache
var defaultTemplate string

//go:embed templates/style.css
var defaultStyle string

// LoadTemplate parses the page template: the one named in the config when
// set, else the default shipped in the binary.
func LoadTemplate(bookFolder string, cfg config.Config) (*mustache.Template, error) {
	text := defaultTemplate
	if cfg.Template != "" {
		path := filepath.Join(bookFolder, cfg.Template)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read template %s: %w", path, err)
		}
		text = string(data)
	}
	tmpl, err := mustache.ParseString(text)
	if err != nil {
		return nil, fmt.Errorf("could not parse template: %w", err)
	}
	return tmpl, nil
}

// Build renders the whole book into its output subfolder: every page in
// pre-order with navigation links resolved, the stylesheet, and a mirrored
// copy of every locally referenced image. It returns the number of pages
// written.
func Build(con *console.Console, bk *book.Chapter, cfg config.Config) (int, error) {
	const ext = "html"

	bookFolder := bk.SourceFolder
	htmlDir := filepath.Join(bookFolder, cfg.Output)
	indexSource := bk.IndexPath()
	indexTarget := paths.ChangeExtension(filepath.Join(htmlDir, book.IndexFile), ext)

	tmpl, err := LoadTemplate(bookFolder, cfg)
	if err != nil {
		return 0, err
	}

	stat := &Stat{}
	opts := md.Options{Unsafe: cfg.Unsafe}
	root, pages, err := BuildPages(con, bk, htmlDir, ext, stat, opts)
	if err != nil {
		return 0, err
	}

	gen := &Generated{
		Extension: ext,
		BookTitle: root.Title,
		Root:      bookFolder,
		TOC:       GenerateTOC(append([]*Page{root}, root.Children...), indexSource, indexTarget),
		StyleCSS:  filepath.Join(htmlDir, "style.css"),
		IndexHTML: filepath.Join(htmlDir, "index.html"),
		TOCHTML:   filepath.Join(htmlDir, "toc.html"),
		Copyright: bk.Copyright,
	}
	LinkPages(pages)

	if err := writeStylesheet(bookFolder, gen.StyleCSS); err != nil {
		return 0, err
	}

	for _, page := range pages {
		if err := page.Render(con, tmpl, gen); err != nil {
			return 0, err
		}
	}

	copyLocalImages(con, bk, bookFolder, htmlDir)

	stat.Print(con)
	return len(pages), nil
}

// writeStylesheet installs style.css in the output tree; a style.css in
// the book root overrides the built-in one.
func writeStylesheet(bookFolder, dest string) error {
	style := defaultStyle
	custom := filepath.Join(bookFolder, "style.css")
	if paths.FileExists(custom) {
		data, err := os.ReadFile(custom)
		if err != nil {
			return fmt.Errorf("could not read %s: %w", custom, err)
		}
		style = string(data)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(style), 0644)
}

// copyLocalImages walks every markdown document the tree owns and mirrors
// each image reference without a url scheme into the output tree. Missing
// images are reported and skipped.
func copyLocalImages(con *console.Console, bk *book.Chapter, bookFolder, htmlDir string) {
	for _, mdFile := range bk.MarkdownFiles(con) {
		_, content, err := frontmatter.Read(con, mdFile, true)
		if err != nil {
			con.Errorf("%v", err)
			continue
		}
		mdFolder := filepath.Dir(mdFile)
		relFolder, err := filepath.Rel(bookFolder, mdFolder)
		if err != nil {
			relFolder = "."
		}
		for _, image := range md.ListImages(content) {
			u, err := url.Parse(image)
			if err != nil || u.Scheme != "" {
				continue
			}
			source := filepath.Clean(filepath.Join(mdFolder, filepath.FromSlash(u.Path)))
			target := filepath.Clean(filepath.Join(htmlDir, relFolder, filepath.FromSlash(u.Path)))
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				con.Warnf("could not create %s: %v", filepath.Dir(target), err)
				continue
			}
			con.Debugf("Copying %s", filepath.Base(target))
			if err := copyFile(source, target); err != nil {
				con.Warnf("%s: %v", mdFile, err)
			}
		}
	}
}

func copyFile(source, dest string) error {
	src, err := os.Open(source)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}
