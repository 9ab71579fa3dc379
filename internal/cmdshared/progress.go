package cmdshared

import (
	"github.com/leocov-dev/packlaunch/core"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// ProgressBar renders sync progress in the terminal.
type ProgressBar struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func NewProgressBar(name string) *ProgressBar {
	p := mpb.New(mpb.WithWidth(50))
	bar := p.AddBar(100,
		mpb.PrependDecorators(decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DidentRight})),
		mpb.AppendDecorators(decor.Percentage()),
	)
	return &ProgressBar{p: p, bar: bar}
}

// Sink adapts the bar to a core progress callback.
func (b *ProgressBar) Sink() core.ProgressFunc {
	return func(percent float64, _ string) {
		b.bar.SetCurrent(int64(percent))
	}
}

// Finish completes the bar, or aborts it when the sync failed, and waits for
// the final render.
func (b *ProgressBar) Finish(ok bool) {
	if ok {
		b.bar.SetTotal(100, true)
	} else {
		b.bar.Abort(false)
	}
	b.p.Wait()
}
