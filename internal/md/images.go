package md

import (
	"regexp"

	"github.com/madeso/book/internal/paths"
)

// Markdown image syntax: ![alt text](url)
var imageRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

// ListImages returns the url of every image reference in the markdown, in
// document order.
func ListImages(content string) []string {
	var urls []string
	for _, match := range imageRe.FindAllStringSubmatch(content, -1) {
		urls = append(urls, match[2])
	}
	return urls
}

// ReplaceImages rewrites image references whose url appears in
// replacements. The replacement value is a filesystem path; the written
// url is that path made relative to the document at docPath. References
// not in the map are left untouched.
func ReplaceImages(content string, docPath string, replacements map[string]string) string {
	return imageRe.ReplaceAllStringFunc(content, func(orig string) string {
		match := imageRe.FindStringSubmatch(orig)
		alt, url := match[1], match[2]
		target, ok := replacements[url]
		if !ok {
			return orig
		}
		return "![" + alt + "](" + paths.Relative(docPath, target) + ")"
	})
}
