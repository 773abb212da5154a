package builder

import (
	"strings"

	"github.com/madeso/book/internal/console"
)

// Stat accumulates per-page word counts while the graph is built. Only
// chapter documents (index pages) count toward the completion estimate;
// anything under 2000 words is considered unfinished.
type Stat struct {
	NumChapters   int
	EmptyChapters int
	TotalWords    int
}

// Update records one document.
func (s *Stat) Update(con *console.Console, contents, name string, isChapter bool) {
	words := len(strings.Fields(contents))
	if !isChapter {
		// Section header pages aren't counted like regular chapters.
		con.Debugf("• %s (%d words)", name, words)
		return
	}
	s.NumChapters++
	switch {
	case words < 50:
		s.EmptyChapters++
		con.Debugf("    %s", name)
	case words < 2000:
		s.EmptyChapters++
		con.Debugf("- %s (%d words)", name, words)
	default:
		s.TotalWords += words
		con.Debugf("✓ %s (%d words)", name, words)
	}
}

// Estimate projects the finished size of the book: unfinished chapters are
// assumed to grow to the average size of the finished ones.
func (s *Stat) Estimate() (total int, estimated float64, percent float64) {
	valid := s.NumChapters - s.EmptyChapters
	average := 0.0
	if valid > 0 {
		average = float64(s.TotalWords) / float64(valid)
	}
	estimated = float64(s.TotalWords) + float64(s.EmptyChapters)*average
	if estimated > 0 {
		percent = float64(s.TotalWords) * 100 / estimated
	}
	return s.TotalWords, estimated, percent
}

// Print reports the estimate on the console.
func (s *Stat) Print(con *console.Console) {
	total, estimated, percent := s.Estimate()
	con.Infof("%d/~%.0f words (%.0f%%)", total, estimated, percent)
}
