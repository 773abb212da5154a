// Package builder walks the document tree into a page graph and renders it
// to the linked HTML output tree.
package builder

// TOCBody is the sentinel body of the table-of-contents marker page; the
// render driver substitutes the generated listing for it.
const TOCBody = "__toc_html_body__"

// Page is one renderable document. Pages are transient: rebuilt on every
// run and never persisted.
type Page struct {
	// Entry is the chapter-entry name this page was built from.
	Entry  string
	Source string
	Target string
	// Title is the resolved display title, already rendered inline (so it
	// may carry emphasis).
	Title string
	// Body is the rendered HTML, or TOCBody for the marker page.
	Body string

	Parent   *Page
	Children []*Page
	// Prev and Next thread the pre-order traversal of the whole tree into
	// one continue-reading sequence; they are assigned after all pages
	// exist.
	Prev *Page
	Next *Page
}

// LinkPages assigns the prev/next links over pages in construction order.
// It runs as a separate pass because the first and last page are only
// known once the whole forest is built.
func LinkPages(pages []*Page) {
	var last *Page
	for _, page := range pages {
		page.Prev = last
		if last != nil {
			last.Next = page
		}
		last = page
	}
}
