// Package progress wraps progress bars for the long-running passes.
package progress

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Bar is the subset of a progress bar the passes use. Implementations must
// be safe for concurrent use.
type Bar interface {
	Add(n int) error
	Finish() error
}

// New returns a progress bar over total units written to w. If w is nil the
// bar is invisible.
func New(w io.Writer, total int, description string) Bar {
	if w == nil {
		return progressbar.NewOptions(total, progressbar.OptionSetVisibility(false))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(25),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
