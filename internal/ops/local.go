package ops

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/madeso/book/internal/console"
	"github.com/madeso/book/internal/frontmatter"
	"github.com/madeso/book/internal/md"
	"github.com/madeso/book/internal/paths"
)

// ListMarkdown prints every markdown document the book owns, in reading
// order.
func ListMarkdown(con *console.Console, root string) error {
	bk, err := loadBook(root)
	if err != nil {
		return err
	}
	for _, file := range bk.MarkdownFiles(con) {
		con.Infof("%s", file)
	}
	return nil
}

// ListImages prints every image reference found in the book's documents.
func ListImages(con *console.Console, root string) error {
	bk, err := loadBook(root)
	if err != nil {
		return err
	}
	for _, file := range bk.MarkdownFiles(con) {
		_, content, err := frontmatter.Read(con, file, true)
		if err != nil {
			con.Errorf("%v", err)
			continue
		}
		for _, image := range md.ListImages(content) {
			con.Infof("%s", image)
		}
	}
	return nil
}

// MakeLocal downloads every remote image into the folder of the document
// referencing it and rewrites the references to the local copies. Already
// downloaded images are not fetched again.
func MakeLocal(con *console.Console, root string) error {
	bk, err := loadBook(root)
	if err != nil {
		return err
	}

	files := bk.MarkdownFiles(con)

	// remote url -> local destination, gathered before any rewrite so
	// duplicate references across documents share one download
	images := map[string]string{}
	for _, file := range files {
		_, content, err := frontmatter.Read(con, file, true)
		if err != nil {
			con.Errorf("%v", err)
			continue
		}
		folder := filepath.Dir(file)
		for _, image := range md.ListImages(content) {
			u, err := url.Parse(image)
			if err != nil || u.Scheme == "" {
				continue
			}
			name := path.Base(u.Path)
			target := filepath.Join(folder, name)
			if paths.FileExists(target) {
				con.Errorf("%s: image %s already exists", file, name)
			}
			images[image] = target
		}
	}

	for _, file := range files {
		fm, content, err := frontmatter.Read(con, file, true)
		if err != nil {
			con.Errorf("%v", err)
			continue
		}
		content = md.ReplaceImages(content, file, images)
		if err := frontmatter.Write(file, fm, content); err != nil {
			return err
		}
	}

	for source, dest := range images {
		if paths.FileExists(dest) {
			continue
		}
		if err := download(source, dest); err != nil {
			return fmt.Errorf("could not download %s: %w", source, err)
		}
	}

	con.Infof("%d replacements made", len(images))
	return nil
}

func download(source, dest string) error {
	resp, err := http.Get(source)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, resp.Body)
	return err
}
