package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressSections(t *testing.T) {
	var last float64
	var lastText string
	p := NewProgress(func(percent float64, text string) {
		last = percent
		lastText = text
	})

	p.Start("mods", 50)
	assert.Equal(t, "mods", lastText)
	p.Add(20)
	assert.InDelta(t, 10, last, 0.0001)

	p.Start("nested", 50)
	p.Add(50)
	assert.InDelta(t, 22.5, last, 0.0001)
	p.End()
	assert.InDelta(t, 35, last, 0.0001)
	p.End()
	assert.InDelta(t, 50, p.Percent(), 0.0001)

	p.Start("configs", 50)
	p.AddWithText(10, "configs/a.cfg")
	assert.Equal(t, "configs/a.cfg", lastText)
	p.End()
	assert.InDelta(t, 100, p.Percent(), 0.0001)
}

func TestProgressClamps(t *testing.T) {
	p := NewProgress(nil)
	p.Start("all", 150)
	p.Add(500)
	p.End()
	p.End()
	assert.InDelta(t, 100, p.Percent(), 0.0001)
}

func TestProgressConcurrentAdds(t *testing.T) {
	p := NewProgress(func(float64, string) {})
	p.Start("bulk", 100)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Add(1)
		}()
	}
	wg.Wait()
	assert.InDelta(t, 100, p.Percent(), 0.0001)
}

func TestNilProgressIsNoop(t *testing.T) {
	var p *Progress
	p.Start("x", 10)
	p.Add(10)
	p.End()
}
