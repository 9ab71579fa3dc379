package sources

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/leocov-dev/packlaunch/core"
)

// Known repository base URLs.
const (
	MojangLibraries = "https://libraries.minecraft.net/"
	ForgeMaven      = "https://maven.minecraftforge.net/"
	MavenCentral    = "https://repo1.maven.org/maven2/"
)

// DownloadInfo is a single downloadable file in a game or loader manifest.
type DownloadInfo struct {
	Path string `json:"path,omitempty"`
	URL  string `json:"url"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// Library is a library declaration as found in the game version manifest and
// in loader descriptors.
type Library struct {
	Name      string `json:"name"`
	Downloads *struct {
		Artifact    *DownloadInfo           `json:"artifact,omitempty"`
		Classifiers map[string]DownloadInfo `json:"classifiers,omitempty"`
	} `json:"downloads,omitempty"`
	// URL is a repository base, used by loader descriptors
	URL     string            `json:"url,omitempty"`
	Natives map[string]string `json:"natives,omitempty"`
	Extract *struct {
		Exclude []string `json:"exclude,omitempty"`
	} `json:"extract,omitempty"`
	Rules     core.Rules `json:"rules,omitempty"`
	ClientReq *bool      `json:"clientreq,omitempty"`
	ServerReq *bool      `json:"serverreq,omitempty"`
	Checksums []string   `json:"checksums,omitempty"`
}

// LibraryEntry is a resolved library file.
type LibraryEntry struct {
	*core.ManagedFile
	Name    string
	Native  bool
	Exclude []string
	core.Requirement
}

// LibraryResolver resolves library declarations for one host platform.
type LibraryResolver struct {
	Platform  core.Platform
	Overrides *Overrides
	// Dir is the libraries directory, applied as each entry's prefix
	Dir    string
	Logger *log.Logger
}

// requirement defaults each missing flag to true, so only an explicit false
// excludes a side.
func (r *LibraryResolver) requirement(lib Library) core.Requirement {
	return core.Requirement{
		Client: lib.ClientReq == nil || *lib.ClientReq,
		Server: lib.ServerReq == nil || *lib.ServerReq,
	}
}

// Resolve returns the entries of libs that apply to the host and mode, in
// declaration order. A library with natives yields its classpath artifact
// (when it has one) followed by the native archive.
func (r *LibraryResolver) Resolve(libs []Library, mode core.RunMode) []LibraryEntry {
	entries := make([]LibraryEntry, 0, len(libs))
	for _, lib := range libs {
		if !lib.Rules.Allows(r.Platform, nil) {
			continue
		}
		req := r.requirement(lib)
		if !req.Applies(mode) {
			continue
		}
		coord, err := ParseCoordinate(lib.Name)
		if err != nil {
			r.logger().Warn("skipping library", "name", lib.Name, "err", err)
			continue
		}

		if lib.Natives != nil {
			if lib.Downloads != nil && lib.Downloads.Artifact != nil {
				entries = append(entries, r.entry(lib, coord, lib.Downloads.Artifact, req, false))
			}
			classifier := r.Platform.Classifier(lib.Natives)
			if classifier == "" {
				continue
			}
			var info *DownloadInfo
			if lib.Downloads != nil {
				if d, ok := lib.Downloads.Classifiers[classifier]; ok {
					info = &d
				}
			}
			entries = append(entries, r.entry(lib, coord.WithClassifier(classifier), info, req, true))
			continue
		}

		var info *DownloadInfo
		if lib.Downloads != nil {
			info = lib.Downloads.Artifact
		}
		entries = append(entries, r.entry(lib, coord, info, req, false))
	}
	return entries
}

func (r *LibraryResolver) entry(lib Library, coord Coordinate, info *DownloadInfo, req core.Requirement, native bool) LibraryEntry {
	name := coord.String()
	var local, url string
	var hash *core.Hash
	if info != nil {
		local, url = info.Path, info.URL
		hash = core.NewHash(core.HashSHA1, info.SHA1)
	}
	if local == "" {
		if info == nil && isForgeUniversal(coord) {
			coord = coord.WithClassifier("universal")
		}
		local = coord.Path()
	}
	if url == "" {
		url = r.URL(coord, lib.URL)
	}
	if hash == nil && len(lib.Checksums) == 1 {
		hash = core.NewHash(core.HashSHA1, lib.Checksums[0])
	}

	f := core.NewManagedFile(url, local, hash)
	f.Prefix = r.Dir
	e := LibraryEntry{ManagedFile: f, Name: name, Native: native, Requirement: req}
	if native && lib.Extract != nil {
		e.Exclude = lib.Extract.Exclude
	}
	return e
}

// URL derives the download location of a coordinate. Listed overrides win,
// then the declared repository, then the default repository.
func (r *LibraryResolver) URL(coord Coordinate, repository string) string {
	overrides := r.overrides()
	if u, ok := overrides.CoordinateURL(coord); ok {
		return u
	}
	return coord.URL(overrides.Repository(repository))
}

// isForgeUniversal matches the forge main artifact, which is published
// with a universal classifier.
func isForgeUniversal(c Coordinate) bool {
	if c.Classifier != "" {
		return false
	}
	return (c.Group == "net.minecraftforge" && (c.Artifact == "forge" || c.Artifact == "minecraftforge")) &&
		!strings.HasSuffix(c.Version, "-universal")
}

func (r *LibraryResolver) overrides() *Overrides {
	if r.Overrides == nil {
		return DefaultOverrides()
	}
	return r.Overrides
}

func (r *LibraryResolver) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// JoinClasspath joins the local paths of the non-native entries in order,
// keeping the first occurrence of a path.
func JoinClasspath(entries []LibraryEntry, separator string) string {
	seen := make(map[string]bool, len(entries))
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Native {
			continue
		}
		p := e.LocalPath()
		if seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return strings.Join(paths, separator)
}

// Files returns the managed files of entries.
func Files(entries []LibraryEntry) []*core.ManagedFile {
	out := make([]*core.ManagedFile, len(entries))
	for i, e := range entries {
		out[i] = e.ManagedFile
	}
	return out
}
