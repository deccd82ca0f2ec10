package queue

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Progress is told about every finished job.
type Progress interface {
	Done(finished, total int, name string, err error)
	Close()
}

type nopProgress struct{}

func (nopProgress) Done(int, int, string, error) {}
func (nopProgress) Close()                       {}

// NewProgress returns a progress bar on out when out is a terminal and a
// logging reporter otherwise.
func NewProgress(out *os.File, label string, logger *zap.Logger) Progress {
	if out != nil && term.IsTerminal(int(out.Fd())) {
		width := 30
		if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 60 {
			width = w - len(label) - 30
			width = min(max(width, 10), 50)
		}
		return &barProgress{out: out, label: label, width: width}
	}
	return &logProgress{label: label, logger: logger}
}

// barProgress draws a progressbar sized on the first finished job.
type barProgress struct {
	mu     sync.Mutex
	out    io.Writer
	label  string
	width  int
	bar    *progressbar.ProgressBar
	failed int
}

func (b *barProgress) Done(finished, total int, _ string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar == nil {
		b.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(b.out),
			progressbar.OptionSetDescription(b.label),
			progressbar.OptionSetWidth(b.width),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(false),
		)
	}
	if err != nil {
		b.failed++
		b.bar.Describe(fmt.Sprintf("%s (%d failed)", b.label, b.failed))
	}
	b.bar.Add(1)
}

func (b *barProgress) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil {
		return
	}
	b.bar.Finish()
	fmt.Fprintln(b.out)
}

type logProgress struct {
	label  string
	logger *zap.Logger
}

func (l *logProgress) Done(finished, total int, name string, err error) {
	fields := []zap.Field{
		zap.String("job", name),
		zap.Int("finished", finished),
		zap.Int("total", total),
	}
	if err != nil {
		l.logger.Warn(l.label, append(fields, zap.Error(err))...)
		return
	}
	l.logger.Info(l.label, fields...)
}

func (l *logProgress) Close() {}
