package download

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Progress is a reader that reports how much of a transfer has been read.
type Progress interface {
	io.Reader
	// Finish stops rendering. It is safe to call once per Progress.
	Finish()
}

// Reporter creates a Progress for each transfer.
type Reporter interface {
	// Track wraps r. total is the expected size in bytes; total <= 0 means
	// unknown.
	Track(total int64, r io.Reader) Progress
}

// NopReporter renders nothing.
type NopReporter struct{}

// Track returns r unchanged.
func (NopReporter) Track(total int64, r io.Reader) Progress {
	return nopProgress{r}
}

type nopProgress struct {
	io.Reader
}

func (nopProgress) Finish() {}

// BarReporter renders a percentage bar to a terminal.
type BarReporter struct {
	w io.Writer
}

// NewBarReporter creates a BarReporter writing to w.
func NewBarReporter(w io.Writer) *BarReporter {
	return &BarReporter{w: w}
}

// barTemplate shows the bar, percentage and transferred bytes.
const barTemplate pb.ProgressBarTemplate = `    {{bar . "[" "█" "█" "░" "]"}} {{percent .}} {{counters .}}`

// Track starts a bar when the size is known; otherwise rendering is skipped.
func (b *BarReporter) Track(total int64, r io.Reader) Progress {
	if total <= 0 {
		return nopProgress{r}
	}

	bar := pb.New64(total)
	bar.SetTemplate(barTemplate)
	bar.SetWriter(b.w)
	bar.Set(pb.Bytes, true)
	bar.Start()

	return &barProgress{Reader: bar.NewProxyReader(r), bar: bar}
}

type barProgress struct {
	io.Reader
	bar *pb.ProgressBar
}

func (p *barProgress) Finish() {
	p.bar.Finish()
}
