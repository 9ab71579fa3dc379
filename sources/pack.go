package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/leocov-dev/packlaunch/core"
	"github.com/mitchellh/mapstructure"
)

// Manifest section keys, in resolution order.
const (
	SectionMods          = "packMods"
	SectionConfigs       = "packConfigs"
	SectionResourcePacks = "packResourcePacks"
	SectionShaderPacks   = "packShaderPacks"
	SectionInitialFiles  = "packInitialFiles"
)

// packHeader is the top level of a pack manifest without its artifact lists.
type packHeader struct {
	Name          string `mapstructure:"packName"`
	Version       string `mapstructure:"packVersion"`
	WebsiteURL    string `mapstructure:"packURL"`
	LogoURL       string `mapstructure:"packLogoURL"`
	BackgroundURL string `mapstructure:"packBackgroundURL"`
	MinRAMGB      int    `mapstructure:"packMinRAMGB"`
	ForgeURL      string `mapstructure:"packForgeURL"`
	ForgeHash     string `mapstructure:"packForgeHash"`
	GameVersion   string `mapstructure:"packGameVersion"`
	Format        string `mapstructure:"packFormat"`
}

// artifactEntry is one element of an artifact section. Exactly one of URL or
// Modrinth locates the file.
type artifactEntry struct {
	Name      string `mapstructure:"name"`
	URL       string `mapstructure:"url"`
	Modrinth  string `mapstructure:"modrinth"`
	LocalPath string `mapstructure:"localPath"`
	ClientReq *bool  `mapstructure:"clientReq"`
	ServerReq *bool  `mapstructure:"serverReq"`

	SHA1    string `mapstructure:"sha1"`
	MD5     string `mapstructure:"md5"`
	SHA256  string `mapstructure:"sha256"`
	SHA512  string `mapstructure:"sha512"`
	Murmur2 string `mapstructure:"murmur2"`
	Hash    string `mapstructure:"hash"`
}

func (e artifactEntry) hash() *core.Hash {
	h := core.BestHash(map[string]string{
		core.HashSHA1:    e.SHA1,
		core.HashMD5:     e.MD5,
		core.HashSHA256:  e.SHA256,
		core.HashSHA512:  e.SHA512,
		core.HashMurmur2: e.Murmur2,
	})
	if h == nil {
		h = GuessHash(e.Hash)
	}
	return h
}

func (e artifactEntry) requirement() core.Requirement {
	r := core.BothSides
	if e.ClientReq != nil {
		r.Client = *e.ClientReq
	}
	if e.ServerReq != nil {
		r.Server = *e.ServerReq
	}
	return r
}

// GuessHash infers the algorithm of a bare hex digest from its length.
func GuessHash(value string) *core.Hash {
	switch len(value) {
	case 32:
		return core.NewHash(core.HashMD5, value)
	case 40:
		return core.NewHash(core.HashSHA1, value)
	case 64:
		return core.NewHash(core.HashSHA256, value)
	case 128:
		return core.NewHash(core.HashSHA512, value)
	}
	return nil
}

// PackResolver turns pack manifests into ModPack values.
type PackResolver struct {
	// Modrinth resolves entries given as a Modrinth version id. Optional.
	Modrinth *ModrinthResolver
	Logger   *log.Logger
}

// Fetch downloads and resolves the manifest at manifestURL.
func (r *PackResolver) Fetch(ctx context.Context, fetcher core.Fetcher, manifestURL string) (*core.ModPack, error) {
	var raw map[string]interface{}
	if err := core.FetchJSON(ctx, fetcher, manifestURL, &raw); err != nil {
		return nil, err
	}
	return r.ResolveMap(manifestURL, raw)
}

// Resolve parses a manifest document.
func (r *PackResolver) Resolve(manifestURL string, data []byte) (*core.ModPack, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &core.ManifestFetchError{URL: manifestURL, Err: err}
	}
	return r.ResolveMap(manifestURL, raw)
}

// ResolveMap resolves an already decoded manifest. Only missing pack
// metadata is an error; broken sections and entries are logged and skipped.
func (r *PackResolver) ResolveMap(manifestURL string, raw map[string]interface{}) (*core.ModPack, error) {
	var header packHeader
	if err := weakDecode(raw, &header); err != nil {
		return nil, &core.ManifestFetchError{URL: manifestURL, Err: err}
	}
	if header.Name == "" {
		return nil, &core.ManifestFetchError{URL: manifestURL, Err: errors.New("manifest has no packName")}
	}
	if err := core.CheckPackFormat(header.Format); err != nil {
		return nil, &core.ManifestFetchError{URL: manifestURL, Err: err}
	}

	pack := &core.ModPack{
		Name:          header.Name,
		Version:       header.Version,
		WebsiteURL:    header.WebsiteURL,
		LogoURL:       header.LogoURL,
		BackgroundURL: header.BackgroundURL,
		MinRAMGB:      header.MinRAMGB,
		LoaderURL:     header.ForgeURL,
		LoaderHash:    GuessHash(header.ForgeHash),
		GameVersion:   header.GameVersion,
		ManifestURL:   manifestURL,
	}

	pack.Mods = r.section(raw, SectionMods, "mods")
	pack.Configs = r.section(raw, SectionConfigs, "")
	pack.ResourcePacks = files(r.section(raw, SectionResourcePacks, "resourcepacks"))
	pack.ShaderPacks = files(r.section(raw, SectionShaderPacks, "shaderpacks"))
	pack.InitialFiles = r.section(raw, SectionInitialFiles, "")

	if pack.GameVersion == "" && pack.LoaderURL != "" {
		pack.GameVersion = gameVersionFromLoaderURL(pack.LoaderURL)
	}

	r.logger().Debug("resolved pack manifest", "pack", pack.GetPackName(),
		"mods", len(pack.Mods), "configs", len(pack.Configs), "initial", len(pack.InitialFiles))
	return pack, nil
}

// section resolves one artifact list. defaultDir, when set, is used to place
// entries that omit localPath.
func (r *PackResolver) section(raw map[string]interface{}, key, defaultDir string) []core.Artifact {
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}
	list, ok := value.([]interface{})
	if !ok {
		r.logger().Warn("skipping manifest section", "section", key, "err", fmt.Sprintf("expected a list, got %T", value))
		return nil
	}

	artifacts := make([]core.Artifact, 0, len(list))
	for i, item := range list {
		a, err := r.entry(item, defaultDir)
		if err != nil {
			r.logger().Warn("skipping manifest entry", "section", key, "index", i, "err", err)
			continue
		}
		artifacts = append(artifacts, a)
	}
	return artifacts
}

func (r *PackResolver) entry(item interface{}, defaultDir string) (core.Artifact, error) {
	var e artifactEntry
	if err := weakDecode(item, &e); err != nil {
		return core.Artifact{}, err
	}

	url, hash := e.URL, e.hash()
	if url == "" && e.Modrinth != "" {
		if r.Modrinth == nil {
			return core.Artifact{}, fmt.Errorf("modrinth version %s cannot be resolved offline", e.Modrinth)
		}
		file, err := r.Modrinth.PrimaryFile(e.Modrinth)
		if err != nil {
			return core.Artifact{}, err
		}
		url = file.URL
		if hash == nil {
			hash = file.Hash
		}
		if e.LocalPath == "" && defaultDir != "" {
			e.LocalPath = path.Join(defaultDir, file.Filename)
		}
	}
	if url == "" {
		return core.Artifact{}, errors.New("missing url")
	}

	local := e.LocalPath
	if local == "" && defaultDir != "" {
		local = path.Join(defaultDir, path.Base(strings.SplitN(url, "?", 2)[0]))
	}
	local = cleanRelative(local)
	if local == "" {
		return core.Artifact{}, errors.New("missing localPath")
	}

	return core.Artifact{
		ManagedFile: core.NewManagedFile(url, local, hash),
		Name:        e.Name,
		Requirement: e.requirement(),
	}, nil
}

// cleanRelative normalizes a manifest path to forward slash form and rejects
// paths that escape the pack directory.
func cleanRelative(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimLeft(path.Clean("/"+p), "/")
	if p == "" || p == "." {
		return ""
	}
	return p
}

func files(artifacts []core.Artifact) []*core.ManagedFile {
	out := make([]*core.ManagedFile, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, a.ManagedFile)
	}
	return out
}

// gameVersionFromLoaderURL reads the game version out of a forge artifact
// name such as forge-1.12.2-14.23.5.2854-universal.jar.
func gameVersionFromLoaderURL(loaderURL string) string {
	base := path.Base(strings.SplitN(loaderURL, "?", 2)[0])
	base = strings.TrimSuffix(base, path.Ext(base))
	parts := strings.Split(base, "-")
	if len(parts) >= 3 && parts[0] == "forge" {
		return parts[1]
	}
	return ""
}

func weakDecode(input, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func (r *PackResolver) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
