package sources

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"github.com/leocov-dev/packlaunch/core"
)

// VersionLookup fetches a Modrinth version by id.
type VersionLookup func(versionID string) (*modrinthApi.Version, error)

// ModrinthFile is the download chosen out of a Modrinth version.
type ModrinthFile struct {
	URL      string
	Filename string
	Hash     *core.Hash
}

// ModrinthResolver resolves pack entries that reference a Modrinth version
// instead of a URL. Lookups are cached for the lifetime of the resolver.
type ModrinthResolver struct {
	lookup VersionLookup

	mu    sync.Mutex
	cache map[string]ModrinthFile
}

func NewModrinthResolver(lookup VersionLookup) *ModrinthResolver {
	return &ModrinthResolver{lookup: lookup, cache: make(map[string]ModrinthFile)}
}

// NewModrinthAPIResolver uses the public Modrinth API.
func NewModrinthAPIResolver(client *http.Client) *ModrinthResolver {
	mr := modrinthApi.NewClient(client)
	mr.UserAgent = core.UserAgent
	return NewModrinthResolver(mr.Versions.Get)
}

func (r *ModrinthResolver) PrimaryFile(versionID string) (ModrinthFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.cache[versionID]; ok {
		return f, nil
	}
	version, err := r.lookup(versionID)
	if err != nil {
		return ModrinthFile{}, fmt.Errorf("failed to get modrinth version %s: %w", versionID, err)
	}
	file := primaryFile(version)
	if file == nil || file.URL == nil {
		return ModrinthFile{}, errors.New("modrinth version " + versionID + " has no files")
	}

	f := ModrinthFile{URL: *file.URL, Hash: core.BestHash(file.Hashes)}
	if file.Filename != nil {
		f.Filename = *file.Filename
	}
	r.cache[versionID] = f
	return f, nil
}

func primaryFile(version *modrinthApi.Version) *modrinthApi.File {
	if version == nil || len(version.Files) == 0 {
		return nil
	}
	file := version.Files[0]
	for _, v := range version.Files {
		if v.Primary != nil && *v.Primary {
			file = v
		}
	}
	return file
}
