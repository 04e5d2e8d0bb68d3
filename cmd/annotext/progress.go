package main

import (
	"sync"

	"github.com/gosuri/uiprogress"
)

// progress is a single bar showing the name of the item being processed.
// Each one owns its uiprogress.Progress so it can be started and stopped
// more than once per run. The bar is created on the first step, once the
// total is known.
type progress struct {
	p   *uiprogress.Progress
	bar *uiprogress.Bar

	mu      sync.Mutex
	current string
}

func newProgress() *progress {
	return &progress{p: uiprogress.New()}
}

// step marks item n of total, named name, as being processed.
func (pr *progress) step(n, total int, name string) {
	if pr.bar == nil {
		pr.bar = pr.p.AddBar(max(total, 1))
		pr.bar.AppendCompleted()
		pr.bar.PrependElapsed()
		pr.bar.AppendFunc(func(b *uiprogress.Bar) string {
			return pr.label()
		})
		pr.p.Start()
	}

	pr.mu.Lock()
	pr.current = name
	pr.mu.Unlock()

	_ = pr.bar.Set(n)
}

func (pr *progress) label() string {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.current
}

// stop stops rendering. It is a no-op when no step was made.
func (pr *progress) stop() {
	if pr.bar != nil {
		pr.p.Stop()
	}
}
