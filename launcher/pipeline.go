package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/leocov-dev/packlaunch/core"
	"github.com/leocov-dev/packlaunch/fileio"
	"github.com/leocov-dev/packlaunch/sources"
)

// Stage weights of a pack sync. They add up to 100.
const (
	WeightMods          = 25
	WeightConfigs       = 5
	WeightResourcePacks = 5
	WeightShaderPacks   = 5
	WeightInitialFiles  = 2
	WeightImages        = 3
	WeightLoader        = 15
	WeightGame          = 20
	WeightAssets        = 20
)

// Prepared is a synced pack, ready to build a launch command for.
type Prepared struct {
	Pack     *core.ModPack
	Mode     core.RunMode
	Platform core.Platform

	PackDir      string
	NativesDir   string
	AssetsDir    string
	LibrariesDir string
	LogoPath     string

	Game      *sources.GameVersion
	Loader    *sources.LoaderDescriptor
	GameJar   *core.ManagedFile
	Classpath string
	// Updated counts downloaded files
	Updated int
}

// MainClass is the entry point for the prepared run mode.
func (p *Prepared) MainClass() string {
	if p.Loader != nil {
		return p.Loader.MainClassFor(p.Mode)
	}
	if p.Mode == core.ServerMode {
		return sources.VanillaServerMainClass
	}
	return p.Game.MainClass
}

// Syncer brings a pack directory and the shared game files up to date.
type Syncer struct {
	Layout    Layout
	Bulk      *core.BulkSyncer
	Versions  *sources.GameVersions
	Platform  core.Platform
	Overrides *sources.Overrides
	Logger    *log.Logger
}

func NewSyncer(layout Layout, bulk *core.BulkSyncer, fetcher core.Fetcher) *Syncer {
	return &Syncer{
		Layout: layout,
		Bulk:   bulk,
		Versions: &sources.GameVersions{
			Fetcher:    fetcher,
			Downloader: bulk.Downloader,
			Dir:        layout.VersionsDir(),
		},
		Platform:  core.HostPlatform(),
		Overrides: sources.DefaultOverrides(),
		Logger:    bulk.Logger,
	}
}

// Sync runs every stage in order. Each stage waits for its downloads to
// finish before the next one starts.
func (s *Syncer) Sync(ctx context.Context, pack *core.ModPack, mode core.RunMode, progress *core.Progress) (*Prepared, error) {
	if pack.IsPlaceholder() {
		return nil, errors.New("pack manifest is unavailable, refetch it first")
	}

	packDir := s.Layout.PackDir(pack)
	if err := os.MkdirAll(packDir, os.ModePerm); err != nil {
		return nil, err
	}
	preserve, custom := fileio.LoadPreserveRules(packDir)
	if custom {
		s.logger().Debug("using pack preserve rules", "file", fileio.PreserveFile)
	}

	prep := &Prepared{
		Pack:         pack,
		Mode:         mode,
		Platform:     s.Platform,
		PackDir:      packDir,
		NativesDir:   s.Layout.NativesDir(pack),
		AssetsDir:    s.Layout.AssetsDir(),
		LibrariesDir: s.Layout.LibrariesDir(),
		LogoPath:     s.Layout.LogoPath(pack),
	}

	sections := []struct {
		label  string
		weight float64
		files  []*core.ManagedFile
	}{
		{"mods", WeightMods, core.FilterArtifacts(pack.Mods, mode)},
		{"configs", WeightConfigs, core.FilterArtifacts(pack.Configs, mode)},
		{"resource packs", WeightResourcePacks, pack.ResourcePacks},
		{"shader packs", WeightShaderPacks, pack.ShaderPacks},
		{"initial files", WeightInitialFiles, missing(core.FilterArtifacts(pack.InitialFiles, mode), packDir)},
	}
	for _, sec := range sections {
		files := s.packFiles(packDir, sec.files, preserve)
		res, err := s.Bulk.SyncAll(ctx, sec.label, files, sec.weight, progress)
		if err != nil {
			return nil, fmt.Errorf("failed to sync %s: %w", sec.label, err)
		}
		prep.Updated += len(res.Changed)
	}

	if _, err := s.Bulk.SyncAll(ctx, "images", s.Layout.Images(pack), WeightImages, progress); err != nil {
		s.logger().Warn("failed to download pack images", "pack", pack.GetPackName(), "err", err)
	}

	resolver := &sources.LibraryResolver{
		Platform:  s.Platform,
		Overrides: s.Overrides,
		Dir:       prep.LibrariesDir,
		Logger:    s.logger(),
	}

	loaderLibs, err := s.syncLoader(ctx, prep, resolver, progress)
	if err != nil {
		return nil, err
	}
	gameLibs, err := s.syncGame(ctx, prep, resolver, progress)
	if err != nil {
		return nil, err
	}
	if err := s.syncAssets(ctx, prep, progress); err != nil {
		return nil, err
	}

	prep.Classpath = NewClasspathBuilder(s.Platform.PathListSeparator()).
		AddLibraries(loaderLibs).
		AddLibraries(gameLibs).
		Add(prep.GameJar.LocalPath()).
		String()

	state := fileio.SyncState{
		PackName:    pack.Name,
		PackVersion: pack.Version,
		GameVersion: prep.Game.ID,
		Mode:        string(mode),
		SyncedAt:    time.Now().UTC(),
	}
	if err := fileio.WriteSyncState(packDir, state); err != nil {
		s.logger().Warn("failed to write sync state", "pack", pack.GetPackName(), "err", err)
	}

	s.logger().Info("pack synced", "pack", pack.GetPackName(), "mode", mode, "updated", prep.Updated)
	return prep, nil
}

func (s *Syncer) syncLoader(ctx context.Context, prep *Prepared, resolver *sources.LibraryResolver, progress *core.Progress) ([]sources.LibraryEntry, error) {
	progress.Start("loader", WeightLoader)
	defer progress.End()

	loader := s.Layout.LoaderFile(prep.Pack)
	if loader == nil {
		return nil, nil
	}

	progress.Start("loader jar", 20)
	desc, err := sources.LoadForge(ctx, loader, s.Bulk.Downloader)
	progress.End()
	if err != nil {
		return nil, fmt.Errorf("failed to load mod loader: %w", err)
	}
	prep.Loader = desc

	_, entries, err := desc.BuildClasspath(ctx, prep.Mode, resolver, s.Bulk, 80, progress)
	if err != nil {
		return nil, fmt.Errorf("failed to sync loader libraries: %w", err)
	}
	return entries, nil
}

func (s *Syncer) syncGame(ctx context.Context, prep *Prepared, resolver *sources.LibraryResolver, progress *core.Progress) ([]sources.LibraryEntry, error) {
	progress.Start("game", WeightGame)
	defer progress.End()

	id := prep.Pack.GameVersion
	if prep.Loader != nil && prep.Loader.GameVersion != "" {
		id = prep.Loader.GameVersion
	}
	if id == "" {
		return nil, errors.New("pack declares no game version")
	}

	progress.Start("game manifest", 10)
	game, err := s.Versions.Get(ctx, id)
	progress.End()
	if err != nil {
		return nil, fmt.Errorf("failed to get game version %s: %w", id, err)
	}
	prep.Game = game

	jar, err := game.GameJar(prep.Mode, s.Layout.VersionsDir())
	if err != nil {
		return nil, err
	}
	prep.GameJar = jar

	libs := resolver.Resolve(game.Libraries, prep.Mode)
	if prep.Mode == core.ServerMode {
		libs = withoutNatives(libs)
	}
	files := append(sources.Files(libs), jar)
	res, err := s.Bulk.SyncAll(ctx, "game libraries", files, 90, progress)
	if err != nil {
		return nil, fmt.Errorf("failed to sync game libraries: %w", err)
	}
	prep.Updated += len(res.Changed)

	if err := s.extractNatives(libs, res, prep.NativesDir); err != nil {
		return nil, err
	}
	return libs, nil
}

// extractNatives unpacks native archives that changed. When the natives
// directory is missing every archive is unpacked, but only failures of
// changed archives are fatal.
func (s *Syncer) extractNatives(libs []sources.LibraryEntry, res core.SyncResult, dir string) error {
	rebuild := !fileio.Exists(dir)
	for _, lib := range libs {
		if !lib.Native {
			continue
		}
		changed := res.IsChanged(lib.ManagedFile)
		if !changed && !rebuild {
			continue
		}
		if err := fileio.Extract(lib.LocalPath(), dir, lib.Exclude); err != nil {
			if changed {
				return fmt.Errorf("failed to extract natives %s: %w", lib.Name, err)
			}
			s.logger().Warn("failed to extract natives", "library", lib.Name, "err", err)
		}
	}
	return nil
}

func (s *Syncer) syncAssets(ctx context.Context, prep *Prepared, progress *core.Progress) error {
	progress.Start("assets", WeightAssets)
	defer progress.End()

	if prep.Mode == core.ServerMode || prep.Game.AssetIndex.URL == "" {
		return nil
	}

	index := prep.Game.AssetIndexFile(prep.AssetsDir)
	if _, err := index.VerifyAndUpdate(ctx, s.Bulk.Downloader); err != nil {
		return fmt.Errorf("failed to get asset index: %w", err)
	}
	idx, err := sources.ReadAssetIndex(index.LocalPath())
	if err != nil {
		return err
	}
	res, err := s.Bulk.SyncAll(ctx, "assets", idx.Files(prep.AssetsDir), 100, progress)
	if err != nil {
		return fmt.Errorf("failed to sync assets: %w", err)
	}
	prep.Updated += len(res.Changed)
	return nil
}

// packFiles anchors files to the pack directory and drops preserved files
// that already exist.
func (s *Syncer) packFiles(packDir string, files []*core.ManagedFile, preserve *fileio.PreserveRules) []*core.ManagedFile {
	out := make([]*core.ManagedFile, 0, len(files))
	for _, f := range files {
		f.Prefix = packDir
		if preserve.Preserved(f.Path) && fileio.Exists(f.LocalPath()) {
			s.logger().Debug("keeping preserved file", "path", f.Path)
			continue
		}
		out = append(out, f)
	}
	return out
}

// missing keeps the files that do not exist yet in packDir.
func missing(files []*core.ManagedFile, packDir string) []*core.ManagedFile {
	out := make([]*core.ManagedFile, 0, len(files))
	for _, f := range files {
		f.Prefix = packDir
		if !fileio.Exists(f.LocalPath()) {
			out = append(out, f)
		}
	}
	return out
}

func withoutNatives(libs []sources.LibraryEntry) []sources.LibraryEntry {
	out := libs[:0:0]
	for _, l := range libs {
		if !l.Native {
			out = append(out, l)
		}
	}
	return out
}

func (s *Syncer) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}
