package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/leocov-dev/packlaunch/core"
	"golang.org/x/exp/slices"
)

// VanillaServerMainClass is the entry point of the game server jar.
const VanillaServerMainClass = "net.minecraft.server.MinecraftServer"

// VersionListURL is the Mojang list of every game version.
const VersionListURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

type versionJson struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []versionDef `json:"versions"`
}

type versionDef struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	SHA1        string `json:"sha1"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
}

// Arguments holds structured launch arguments. Elements are strings or
// rule-guarded objects {rules, value}, decoded when the command is built.
type Arguments struct {
	Game []interface{} `json:"game,omitempty"`
	JVM  []interface{} `json:"jvm,omitempty"`
}

func (a *Arguments) Empty() bool {
	return a == nil || (len(a.Game) == 0 && len(a.JVM) == 0)
}

// GameVersion is a game version manifest.
type GameVersion struct {
	ID                 string     `json:"id"`
	Type               string     `json:"type"`
	MainClass          string     `json:"mainClass"`
	MinecraftArguments string     `json:"minecraftArguments,omitempty"`
	Arguments          *Arguments `json:"arguments,omitempty"`
	Assets             string     `json:"assets"`
	AssetIndex         struct {
		ID        string `json:"id"`
		URL       string `json:"url"`
		SHA1      string `json:"sha1"`
		Size      int64  `json:"size"`
		TotalSize int64  `json:"totalSize"`
	} `json:"assetIndex"`
	Downloads   map[string]DownloadInfo `json:"downloads"`
	JavaVersion struct {
		Component    string `json:"component"`
		MajorVersion int    `json:"majorVersion"`
	} `json:"javaVersion"`
	Libraries []Library `json:"libraries"`
}

// GameVersions resolves game version manifests through the version list.
// Version manifests are cached on disk under Dir.
type GameVersions struct {
	Fetcher    core.Fetcher
	Downloader *core.Downloader
	ListURL    string
	// Dir is the versions directory
	Dir string

	list *versionJson
}

// Manifest returns the version list entry of a game version as a managed
// file at versions/<id>/<id>.json.
func (g *GameVersions) Manifest(ctx context.Context, id string) (*core.ManagedFile, error) {
	if g.list == nil {
		var list versionJson
		if err := core.FetchJSON(ctx, g.Fetcher, g.listURL(), &list); err != nil {
			return nil, err
		}
		g.list = &list
	}

	idx := slices.IndexFunc(g.list.Versions, func(v versionDef) bool { return v.ID == id })
	if idx < 0 {
		return nil, &core.ManifestFetchError{URL: g.listURL(), Err: fmt.Errorf("unknown game version %s", id)}
	}
	def := g.list.Versions[idx]
	f := core.NewManagedFile(def.URL, path.Join(id, id+".json"), core.NewHash(core.HashSHA1, def.SHA1))
	f.Prefix = g.Dir
	return f, nil
}

func (g *GameVersions) listURL() string {
	if g.ListURL == "" {
		return VersionListURL
	}
	return g.ListURL
}

// Get syncs and parses the manifest of a game version.
func (g *GameVersions) Get(ctx context.Context, id string) (*GameVersion, error) {
	f, err := g.Manifest(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := f.VerifyAndUpdate(ctx, g.Downloader); err != nil {
		return nil, err
	}
	return ReadGameVersion(f.LocalPath())
}

func ReadGameVersion(file string) (*GameVersion, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, &core.ManifestFetchError{URL: file, Err: err}
	}
	var v GameVersion
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &core.ManifestFetchError{URL: file, Err: err}
	}
	return &v, nil
}

// GameJar is the client or server jar of the version, stored next to its
// manifest.
func (v *GameVersion) GameJar(mode core.RunMode, versionsDir string) (*core.ManagedFile, error) {
	d, ok := v.Downloads[string(mode)]
	if !ok {
		return nil, fmt.Errorf("game version %s has no %s download", v.ID, mode)
	}
	f := core.NewManagedFile(d.URL, path.Join(v.ID, v.ID+"-"+string(mode)+".jar"), core.NewHash(core.HashSHA1, d.SHA1))
	f.Prefix = versionsDir
	return f, nil
}

// AssetIndexFile is the asset index as a managed file at
// indexes/<id>.json.
func (v *GameVersion) AssetIndexFile(assetsDir string) *core.ManagedFile {
	id := v.AssetIndexName()
	f := core.NewManagedFile(v.AssetIndex.URL, path.Join("indexes", id+".json"), core.NewHash(core.HashSHA1, v.AssetIndex.SHA1))
	f.Prefix = assetsDir
	return f
}

func (v *GameVersion) AssetIndexName() string {
	if v.AssetIndex.ID != "" {
		return v.AssetIndex.ID
	}
	return v.Assets
}
