package builder

import (
	"fmt"
	"path/filepath"

	"github.com/madeso/book/internal/book"
	"github.com/madeso/book/internal/console"
	"github.com/madeso/book/internal/frontmatter"
	"github.com/madeso/book/internal/md"
	"github.com/madeso/book/internal/paths"
)

// BuildPages walks the chapter and the filesystem together, producing the
// root page of the chapter and the flattened list of every page in
// pre-order. Entry order in the sidecar is authoritative; directory
// iteration order is never consulted. Broken entries are reported on con
// and skipped, so one bad entry cannot sink the build.
func BuildPages(con *console.Console, chap *book.Chapter, targetFolder, ext string, stat *Stat, opts md.Options) (*Page, []*Page, error) {
	g := &graphBuilder{
		con:     con,
		stat:    stat,
		ext:     ext,
		opts:    opts,
		visited: map[string]bool{},
	}
	root, err := g.generate(chap, targetFolder)
	if err != nil {
		return nil, nil, err
	}
	return root, g.pages, nil
}

type graphBuilder struct {
	con  *console.Console
	stat *Stat
	ext  string
	opts md.Options

	pages []*Page
	// visited guards against a chapter entry pointing back at an ancestor
	// folder.
	visited map[string]bool
}

func (g *graphBuilder) pageFromFile(entryName, source, target string, isChapter bool) (*Page, error) {
	fm, content, err := frontmatter.Read(g.con, source, true)
	if err != nil {
		return nil, err
	}
	title := frontmatter.Title(fm, book.GuessTitle(source))
	body, err := md.Render(content, g.opts)
	if err != nil {
		return nil, fmt.Errorf("could not render %s: %w", source, err)
	}
	g.stat.Update(g.con, content, entryName, isChapter)
	return &Page{
		Entry:  entryName,
		Source: source,
		Target: target,
		Title:  md.RenderTitle(title, g.opts),
		Body:   body,
	}, nil
}

func attach(parent, child *Page) {
	parent.Children = append(parent.Children, child)
	child.Parent = parent
}

func (g *graphBuilder) generate(c *book.Chapter, targetFolder string) (*Page, error) {
	g.visited[absolute(c.SourceFolder)] = true

	indexSource := c.IndexPath()
	indexTarget := paths.ChangeExtension(filepath.Join(targetFolder, book.IndexFile), g.ext)

	var root *Page
	if paths.FileExists(indexSource) {
		page, err := g.pageFromFile(book.IndexFile, indexSource, indexTarget, true)
		if err != nil {
			return nil, err
		}
		root = page
	} else {
		g.con.Errorf("%s: file not found", indexSource)
		root = &Page{
			Entry:  book.IndexFile,
			Source: indexSource,
			Target: indexTarget,
			Title:  book.GuessTitle(indexSource),
		}
	}
	g.pages = append(g.pages, root)

	for _, entry := range c.ResolveEntries() {
		switch entry.Kind {
		case book.EntryTOC:
			child := &Page{
				Entry:  entry.Name,
				Source: entry.Path,
				Target: paths.ChangeExtension(filepath.Join(targetFolder, entry.Name), g.ext),
				Title:  "Table of Contents",
				Body:   TOCBody,
			}
			g.pages = append(g.pages, child)
			attach(root, child)
		case book.EntryFile:
			target := paths.ChangeExtension(filepath.Join(targetFolder, entry.Name), g.ext)
			child, err := g.pageFromFile(entry.Name, entry.Path, target, entry.Name == book.IndexFile)
			if err != nil {
				g.con.Errorf("%v", err)
				continue
			}
			g.pages = append(g.pages, child)
			attach(root, child)
		case book.EntrySection:
			if g.visited[absolute(entry.Path)] {
				g.con.Errorf("%s: section points back at an ancestor chapter, skipping", entry.Path)
				continue
			}
			section, err := book.Load(entry.SidecarPath)
			if err != nil {
				g.con.Errorf("%v", err)
				continue
			}
			child, err := g.generate(section, filepath.Join(targetFolder, entry.Name))
			if err != nil {
				g.con.Errorf("%v", err)
				continue
			}
			attach(root, child)
		case book.EntryBrokenSection:
			g.con.Errorf("%s: missing file", entry.SidecarPath)
		default:
			g.con.Errorf("%s: neither file nor folder", entry.Path)
		}
	}
	return root, nil
}

func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
