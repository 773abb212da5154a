// Package md holds the markdown-level utilities: rendering to HTML,
// image reference handling, and header-based document splitting.
package md

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Options control the rendering pipeline for one build.
type Options struct {
	// Unsafe disables HTML sanitization of the rendered output.
	Unsafe bool
}

var (
	renderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote, extension.DefinitionList),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(newMDLinkTransformer(), 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	sanitizer = bluemonday.UGCPolicy()

	subscriptRe   = regexp.MustCompile(`\[([^\]]+)\]\{\.subscript\}`)
	superscriptRe = regexp.MustCompile(`\[([^\]]+)\]\{\.superscript\}`)
)

func spanToHTML(content string, re *regexp.Regexp, tag string) string {
	return re.ReplaceAllString(content, "<"+tag+">$1</"+tag+">")
}

// Render converts a markdown body to HTML. The [x]{.subscript} and
// [x]{.superscript} spans are rewritten before conversion since markdown
// has no syntax for them.
func Render(content string, opts Options) (string, error) {
	cc := spanToHTML(content, subscriptRe, "sub")
	cc = spanToHTML(cc, superscriptRe, "sup")

	var buf bytes.Buffer
	if err := renderer.Convert([]byte(cc), &buf); err != nil {
		return "", err
	}
	if opts.Unsafe {
		return buf.String(), nil
	}
	return string(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// RenderTitle runs a title through markdown so it may carry emphasis, and
// drops the wrapping paragraph tag. On render failure the raw title is
// returned unchanged.
func RenderTitle(title string, opts Options) string {
	rendered, err := Render(title, opts)
	if err != nil {
		return title
	}
	return DropParagraph(rendered)
}

// DropParagraph removes a single wrapping <p> tag, if present.
func DropParagraph(html string) string {
	s := strings.TrimSpace(html)
	if strings.HasPrefix(s, "<p>") && strings.HasSuffix(s, "</p>") {
		return s[3 : len(s)-4]
	}
	return s
}
