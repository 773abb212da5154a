package ops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/madeso/book/internal/console"
	"github.com/madeso/book/internal/frontmatter"
	"github.com/madeso/book/internal/md"
	"github.com/madeso/book/internal/paths"
)

// UpdateImages rewrites every locally-resolvable image reference in
// content so it still points at the same file once the document lives at
// toPath instead of fromPath. References that do not resolve on disk are
// left untouched and reported.
func UpdateImages(con *console.Console, fromPath, toPath, content string) string {
	fromFolder := filepath.Dir(fromPath)
	replacements := map[string]string{}
	for _, image := range md.ListImages(content) {
		imagePath := filepath.Join(fromFolder, filepath.FromSlash(image))
		if paths.FileExists(imagePath) {
			replacements[image] = imagePath
			con.Debugf("replacing %s with %s", image, imagePath)
		} else {
			con.Warnf("ignoring missing image %s", imagePath)
		}
	}
	con.Debugf("   replaced %d images", len(replacements))
	return md.ReplaceImages(content, toPath, replacements)
}

// Move relocates page files into the chapter at destination: the source
// file is deleted, image references are rewritten for the new location,
// and both chapter lists are updated. An entry missing from its source
// chapter aborts the command.
func Move(con *console.Console, destination string, files []string) error {
	dest, err := loadBookOrChapter(destination)
	if err != nil {
		return err
	}

	changed := false
	for _, file := range files {
		path, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		folder := filepath.Dir(path)
		name := filepath.Base(path)

		src, err := loadBookOrChapter(folder)
		if err != nil {
			return err
		}
		if src.FilePath == dest.FilePath {
			con.Warnf("%s is already in the destination chapter", name)
			continue
		}
		if !src.HasEntry(name) {
			return fmt.Errorf("unable to find %s in book %s", name, folder)
		}

		fm, content, err := frontmatter.Read(con, path, true)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("could not delete %s: %w", path, err)
		}

		newPath := filepath.Join(destination, name)
		content = UpdateImages(con, path, newPath, content)
		if err := frontmatter.Write(newPath, fm, content); err != nil {
			return err
		}

		dest.AddEntry(name, false)
		src.RemoveEntry(name)
		if err := src.Save(); err != nil {
			return err
		}
		changed = true
	}

	if changed {
		return dest.Save()
	}
	return nil
}
