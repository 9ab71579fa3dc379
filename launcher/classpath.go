package launcher

import (
	"strings"

	"github.com/leocov-dev/packlaunch/sources"
)

// ClasspathBuilder collects classpath elements in insertion order. A path
// added twice keeps its first position.
type ClasspathBuilder struct {
	separator string
	seen      map[string]bool
	paths     []string
}

func NewClasspathBuilder(separator string) *ClasspathBuilder {
	return &ClasspathBuilder{separator: separator, seen: make(map[string]bool)}
}

func (b *ClasspathBuilder) Add(paths ...string) *ClasspathBuilder {
	for _, p := range paths {
		if p == "" || b.seen[p] {
			continue
		}
		b.seen[p] = true
		b.paths = append(b.paths, p)
	}
	return b
}

// AddLibraries adds the classpath (non native) entries.
func (b *ClasspathBuilder) AddLibraries(entries []sources.LibraryEntry) *ClasspathBuilder {
	for _, e := range entries {
		if !e.Native {
			b.Add(e.LocalPath())
		}
	}
	return b
}

func (b *ClasspathBuilder) Paths() []string {
	return b.paths
}

func (b *ClasspathBuilder) String() string {
	return strings.Join(b.paths, b.separator)
}
