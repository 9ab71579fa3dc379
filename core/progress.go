package core

import "sync"

// ProgressFunc receives the overall percentage (0-100) and a status text.
type ProgressFunc func(percent float64, text string)

type progressSection struct {
	label  string
	weight float64
	done   float64
}

// Progress folds a stack of weighted sections into a single overall
// percentage. Each section's weight is expressed in percent of its parent
// and is added to the parent exactly once, when the section ends.
type Progress struct {
	mu    sync.Mutex
	stack []*progressSection
	sink  ProgressFunc
}

func NewProgress(sink ProgressFunc) *Progress {
	return &Progress{
		stack: []*progressSection{{weight: 100}},
		sink:  sink,
	}
}

// Start opens a section worth weight percent of the current section.
func (p *Progress) Start(label string, weight float64) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.stack = append(p.stack, &progressSection{label: label, weight: clampPercent(weight)})
	percent, text := p.snapshot()
	p.mu.Unlock()
	p.emit(percent, text)
}

// Add advances the current section by delta percent of itself.
func (p *Progress) Add(delta float64) {
	p.AddWithText(delta, "")
}

func (p *Progress) AddWithText(delta float64, text string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	top := p.stack[len(p.stack)-1]
	top.done = clampPercent(top.done + delta)
	percent, label := p.snapshot()
	p.mu.Unlock()
	if text == "" {
		text = label
	}
	p.emit(percent, text)
}

// End closes the current section, crediting its full weight to the parent.
func (p *Progress) End() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if len(p.stack) > 1 {
		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		parent := p.stack[len(p.stack)-1]
		parent.done = clampPercent(parent.done + top.weight)
	}
	percent, text := p.snapshot()
	p.mu.Unlock()
	p.emit(percent, text)
}

// Percent returns the overall completion.
func (p *Progress) Percent() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	percent, _ := p.snapshot()
	return percent
}

func (p *Progress) snapshot() (float64, string) {
	acc := 0.0
	for i := len(p.stack) - 1; i > 0; i-- {
		s := p.stack[i]
		acc = s.weight * clampPercent(s.done+acc) / 100
	}
	label := ""
	for i := len(p.stack) - 1; i > 0 && label == ""; i-- {
		label = p.stack[i].label
	}
	return clampPercent(p.stack[0].done + acc), label
}

func (p *Progress) emit(percent float64, text string) {
	if p.sink != nil {
		p.sink(percent, text)
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
