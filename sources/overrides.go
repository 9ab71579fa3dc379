package sources

import (
	_ "embed"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed overrides.toml
var defaultOverrides []byte

// Overrides is the data table of repository rewrites and per-coordinate URL
// substitutions used when deriving library download URLs.
type Overrides struct {
	DefaultRepository string            `toml:"default-repository"`
	Repositories      map[string]string `toml:"repositories"`
	Coordinates       map[string]string `toml:"coordinates"`
}

var (
	shippedOnce sync.Once
	shipped     *Overrides
)

// DefaultOverrides returns the table shipped with packlaunch. The table is
// parsed once and shared, callers must not modify it.
func DefaultOverrides() *Overrides {
	shippedOnce.Do(func() {
		o, err := ParseOverrides(defaultOverrides)
		if err != nil {
			panic(err)
		}
		shipped = o
	})
	return shipped
}

func ParseOverrides(raw []byte) (*Overrides, error) {
	var o Overrides
	if err := toml.Unmarshal(raw, &o); err != nil {
		return nil, err
	}
	if o.DefaultRepository == "" {
		o.DefaultRepository = MojangLibraries
	}
	return &o, nil
}

// LoadOverrides reads a table from path, or returns the shipped table when
// path is empty.
func LoadOverrides(path string) (*Overrides, error) {
	if path == "" {
		return DefaultOverrides(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOverrides(raw)
}

// Repository normalizes a declared repository base URL.
func (o *Overrides) Repository(base string) string {
	if base == "" {
		return o.DefaultRepository
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if rewritten, ok := o.Repositories[base]; ok {
		return rewritten
	}
	return base
}

// CoordinateURL returns the substituted URL for a coordinate, if listed.
func (o *Overrides) CoordinateURL(c Coordinate) (string, bool) {
	u, ok := o.Coordinates[c.String()]
	return u, ok
}
