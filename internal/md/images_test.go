package md

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestListImages(t *testing.T) {
	content := "text ![one](a.png) more\n![two](../b/c.jpg)\nnot an image [link](x.md)\n"
	want := []string{"a.png", "../b/c.jpg"}
	if got := ListImages(content); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestListImagesEmptyAlt(t *testing.T) {
	if got := ListImages("![](pic.png)"); !reflect.DeepEqual(got, []string{"pic.png"}) {
		t.Errorf("got %v", got)
	}
}

func TestReplaceImages(t *testing.T) {
	doc := filepath.Join("book", "sub", "page.md")
	replacements := map[string]string{
		"img.png": filepath.Join("book", "img.png"),
	}
	content := "before ![alt](img.png) after ![other](missing.png)"
	got := ReplaceImages(content, doc, replacements)

	want := "before ![alt](../img.png) after ![other](missing.png)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReplaceImagesKeepsUntouchedReferences(t *testing.T) {
	content := "![a](x.png)"
	if got := ReplaceImages(content, "doc.md", map[string]string{}); got != content {
		t.Errorf("got %q, want unchanged", got)
	}
}
