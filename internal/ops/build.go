package ops

import (
	"github.com/madeso/book/internal/builder"
	"github.com/madeso/book/internal/config"
	"github.com/madeso/book/internal/console"
)

// Build renders the book owning root into its output tree and returns the
// number of pages generated.
func Build(con *console.Console, root string) (int, error) {
	bk, err := loadBook(root)
	if err != nil {
		return 0, err
	}
	cfg, err := config.Load(bk.SourceFolder)
	if err != nil {
		return 0, err
	}
	return builder.Build(con, bk, cfg)
}
