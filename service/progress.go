package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/ludo-technologies/cobscan/domain"
)

// ProgressReporterImpl implements the ProgressReporter interface with a
// terminal progress bar. Non-interactive writers get no bar at all.
type ProgressReporterImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	bar         *progressbar.ProgressBar
	interactive bool
}

// NewProgressReporter creates a progress reporter writing to stderr
func NewProgressReporter() *ProgressReporterImpl {
	return &ProgressReporterImpl{
		writer:      os.Stderr,
		interactive: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// StartProgress begins tracking a batch of the given size
func (p *ProgressReporterImpl) StartProgress(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.interactive || total <= 0 {
		return
	}

	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Analyzing"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(p.writer)
		}),
	)
}

// UpdateProgress advances the bar to the given processed count
func (p *ProgressReporterImpl) UpdateProgress(processed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		_ = p.bar.Set(processed)
	}
}

// FinishProgress completes and clears the bar
func (p *ProgressReporterImpl) FinishProgress() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

var _ domain.ProgressReporter = (*ProgressReporterImpl)(nil)
