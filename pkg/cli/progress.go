package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"mercator-hq/modellint/pkg/linter"
)

var _ linter.Progress = (*LocaleBar)(nil)

const barWidth = 24

// LocaleBar redraws a single terminal line as locales finish linting.
// It is safe for concurrent use by the runner's workers.
type LocaleBar struct {
	out io.Writer

	mu      sync.Mutex
	total   int
	done    int
	latest  string
	started time.Time
}

// NewLocaleBar returns a LocaleBar drawing on out, or on stderr when out
// is nil.
func NewLocaleBar(out io.Writer) *LocaleBar {
	if out == nil {
		out = os.Stderr
	}
	return &LocaleBar{out: out}
}

func (b *LocaleBar) Start(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total, b.done, b.latest = total, 0, ""
	b.started = time.Now()
	b.draw()
}

func (b *LocaleBar) Advance(locale string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done++
	b.latest = locale
	b.draw()
}

// Finish terminates the line with the elapsed time. Nothing is written
// for an empty run.
func (b *LocaleBar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.total > 0 {
		fmt.Fprintf(b.out, " %s\n", time.Since(b.started).Round(time.Millisecond))
	}
}

func (b *LocaleBar) draw() {
	if b.total == 0 {
		return
	}
	filled := barWidth * b.done / b.total
	fmt.Fprintf(b.out, "\rlocales %s%s %3d%% %d/%d %-8s",
		strings.Repeat("#", filled),
		strings.Repeat(".", barWidth-filled),
		100*b.done/b.total, b.done, b.total, b.latest)
}
