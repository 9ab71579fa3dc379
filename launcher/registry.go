package launcher

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/leocov-dev/packlaunch/core"
	"github.com/leocov-dev/packlaunch/sources"
	"github.com/sahilm/fuzzy"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// ManifestStore persists the manifest URLs the registry is built from.
type ManifestStore interface {
	InstalledManifestURLs() ([]string, error)
	SetInstalledManifestURLs(urls []string) error
	AvailableManifestURLs() ([]string, error)
}

// PackSource fetches and resolves one pack manifest.
type PackSource interface {
	Fetch(ctx context.Context, manifestURL string) (*core.ModPack, error)
}

// ResolverSource fetches manifests over a Fetcher.
type ResolverSource struct {
	Fetcher  core.Fetcher
	Resolver *sources.PackResolver
}

func (s ResolverSource) Fetch(ctx context.Context, manifestURL string) (*core.ModPack, error) {
	return s.Resolver.Fetch(ctx, s.Fetcher, manifestURL)
}

// Registry holds the installed and available packs. Every method takes the
// same lock, so installs, uninstalls and refetches never interleave.
type Registry struct {
	store   ManifestStore
	source  PackSource
	Workers int
	Logger  *log.Logger

	mu        sync.Mutex
	loaded    bool
	installed []*core.ModPack
	available []*core.ModPack
}

func NewRegistry(store ManifestStore, source PackSource) *Registry {
	return &Registry{store: store, source: source}
}

// Installed returns the installed packs, fetching them on first use.
func (r *Registry) Installed(ctx context.Context) ([]*core.ModPack, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(r.installed), nil
}

// Available returns the packs that can be installed.
func (r *Registry) Available(ctx context.Context) ([]*core.ModPack, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(r.available), nil
}

func (r *Registry) Install(ctx context.Context, manifestURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	urls, err := r.store.InstalledManifestURLs()
	if err != nil {
		return err
	}
	if slices.Contains(urls, manifestURL) {
		return nil
	}
	if err := r.store.SetInstalledManifestURLs(append(urls, manifestURL)); err != nil {
		return err
	}
	return r.refetch(ctx)
}

// Uninstall forgets a pack. Its files stay on disk.
func (r *Registry) Uninstall(ctx context.Context, manifestURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	urls, err := r.store.InstalledManifestURLs()
	if err != nil {
		return err
	}
	idx := slices.Index(urls, manifestURL)
	if idx < 0 {
		return errors.New("pack " + manifestURL + " is not installed")
	}
	if err := r.store.SetInstalledManifestURLs(slices.Delete(urls, idx, idx+1)); err != nil {
		return err
	}
	return r.refetch(ctx)
}

// Refetch fetches every manifest again and replaces the packs.
func (r *Registry) Refetch(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.refetch(ctx)
}

// Find fuzzy matches query against the names of installed and available
// packs, best match first.
func (r *Registry) Find(ctx context.Context, query string) ([]*core.ModPack, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	all := append(slices.Clone(r.installed), r.available...)
	matches := fuzzy.FindFrom(query, packList(all))
	found := make([]*core.ModPack, len(matches))
	for i, m := range matches {
		found[i] = all[m.Index]
	}
	return found, nil
}

// Lookup returns the installed pack with the given manifest URL, slug or
// name.
func (r *Registry) Lookup(ctx context.Context, key string) (*core.ModPack, bool, error) {
	packs, err := r.Installed(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, p := range packs {
		if p.ManifestURL == key || (!p.IsPlaceholder() && (p.Slug() == key || strings.EqualFold(p.Name, key))) {
			return p, true, nil
		}
	}
	return nil, false, nil
}

func (r *Registry) ensureLoaded(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	return r.refetch(ctx)
}

func (r *Registry) refetch(ctx context.Context) error {
	installedURLs, err := r.store.InstalledManifestURLs()
	if err != nil {
		return err
	}
	availableURLs, err := r.store.AvailableManifestURLs()
	if err != nil {
		return err
	}
	availableURLs = slices.DeleteFunc(slices.Clone(availableURLs), func(u string) bool {
		return slices.Contains(installedURLs, u)
	})

	installed := make([]*core.ModPack, len(installedURLs))
	available := make([]*core.ModPack, len(availableURLs))

	var g errgroup.Group
	g.SetLimit(r.workers())
	fetch := func(dst []*core.ModPack, urls []string) {
		for i, u := range urls {
			i, u := i, u
			g.Go(func() error {
				pack, err := r.source.Fetch(ctx, u)
				if err != nil {
					r.logger().Error("failed to fetch pack manifest", "url", u, "err", err)
					pack = core.Placeholder(u)
				}
				dst[i] = pack
				return nil
			})
		}
	}
	fetch(installed, installedURLs)
	fetch(available, availableURLs)
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	r.installed, r.available, r.loaded = installed, available, true
	return nil
}

func (r *Registry) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return 4
}

func (r *Registry) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// DisplayName is the pack name, or a name derived from the manifest URL for
// a placeholder.
func DisplayName(p *core.ModPack) string {
	if !p.IsPlaceholder() {
		return p.Name
	}
	return core.DisplayNameFromURL(p.ManifestURL)
}

// packList adapts packs for fuzzy matching.
type packList []*core.ModPack

func (l packList) String(i int) string {
	return DisplayName(l[i])
}

func (l packList) Len() int {
	return len(l)
}
