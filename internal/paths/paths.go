package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// FolderExists reports whether path names an existing directory.
func FolderExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ChangeExtension swaps the extension of file for ext (without a dot).
func ChangeExtension(file string, ext string) string {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	return base + "." + ext
}

// Relative returns dst expressed relative to the folder containing src,
// with forward slashes so it is usable inside markdown and HTML.
// Links between generated files are always computed this way so the
// output tree can be served from any root.
func Relative(src, dst string) string {
	rel, err := filepath.Rel(filepath.Dir(src), dst)
	if err != nil {
		return dst
	}
	return filepath.ToSlash(rel)
}
