package main

import (
	"github.com/gosuri/uiprogress"
)

// bar is a progress bar on the error stream. A nil bar does nothing.
type bar struct {
	p *uiprogress.Progress
	b *uiprogress.Bar
}

// startBar starts a bar of total steps. With names, the name of the current
// step is appended to the bar.
func (a *app) startBar(total int, names []string) *bar {
	if a.quiet || total == 0 {
		return nil
	}

	p := uiprogress.New()
	p.SetOut(a.ui.Err)
	p.Start()

	b := p.AddBar(total)
	b.AppendCompleted()
	b.PrependElapsed()

	if len(names) == total {
		b.AppendFunc(func(b *uiprogress.Bar) string {
			i := b.Current()
			if i >= total {
				i = total - 1
			}
			return names[i]
		})
	}

	return &bar{p: p, b: b}
}

func (b *bar) Incr() {
	if b == nil {
		return
	}
	b.b.Incr()
}

func (b *bar) Set(n int) {
	if b == nil {
		return
	}
	_ = b.b.Set(n)
}

func (b *bar) Stop() {
	if b == nil {
		return
	}
	b.p.Stop()
}
