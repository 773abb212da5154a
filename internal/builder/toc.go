package builder

import (
	"fmt"

	"github.com/madeso/book/internal/paths"
)

// GenerateTOC derives the nested HTML listing from the flattened page
// list. When a TOC marker page is present only pages after it are listed,
// so a cover section before the marker stays out of the contents;
// otherwise every page except the index itself is listed. target is the
// output location of the listing, which every link is made relative to.
func GenerateTOC(pages []*Page, indexSource, target string) string {
	var children []*Page
	foundTOC := false
	for _, p := range pages {
		if foundTOC {
			children = append(children, p)
		}
		if p.Body == TOCBody {
			foundTOC = true
		}
	}
	if len(children) == 0 && !foundTOC {
		children = pages
	}

	html := ""
	for _, page := range children {
		if page.Source != indexSource {
			html += page.htmlListItem("  ", target)
		}
	}
	return html
}

// htmlListItem renders the page as a list item with a nested sub-list for
// its children.
func (p *Page) htmlListItem(indent, target string) string {
	html := indent + fmt.Sprintf("<li><a href=\"%s\">%s</a>", paths.Relative(target, p.Target), p.Title)
	if len(p.Children) > 0 {
		html += "\n" + indent + "    <ul>\n"
		for _, c := range p.Children {
			html += c.htmlListItem(indent+"    ", target) + "\n"
		}
		html += indent + "    </ul>\n" + indent
	}
	return html + "</li>"
}
