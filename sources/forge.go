package sources

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/leocov-dev/packlaunch/core"
	"github.com/leocov-dev/packlaunch/fileio"
)

// ForgeDescriptorEntry is the version descriptor embedded in a forge jar.
const ForgeDescriptorEntry = "version.json"

// ForgeServerMainClass launches a forge server from its universal jar.
const ForgeServerMainClass = "net.minecraftforge.fml.relauncher.ServerLaunchWrapper"

type forgeVersionJson struct {
	ID                 string     `json:"id"`
	InheritsFrom       string     `json:"inheritsFrom"`
	Jar                string     `json:"jar"`
	MainClass          string     `json:"mainClass"`
	MinecraftArguments string     `json:"minecraftArguments"`
	Arguments          *Arguments `json:"arguments"`
	Libraries          []Library  `json:"libraries"`
}

// LoaderDescriptor is the launch description embedded in a loader jar.
type LoaderDescriptor struct {
	LoaderVersion   string
	GameVersion     string
	GameArguments   string
	Arguments       *Arguments
	MainClass       string
	ServerMainClass string
	Libraries       []Library
}

// LoadForge makes sure the loader jar is present and valid, then reads the
// descriptor out of it.
func LoadForge(ctx context.Context, loader *core.ManagedFile, d *core.Downloader) (*LoaderDescriptor, error) {
	if _, err := loader.VerifyAndUpdate(ctx, d); err != nil {
		return nil, err
	}
	return ReadForgeDescriptor(loader.LocalPath())
}

func ReadForgeDescriptor(jar string) (*LoaderDescriptor, error) {
	data, err := fileio.ReadEntry(jar, ForgeDescriptorEntry)
	if err != nil {
		return nil, err
	}
	var v forgeVersionJson
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &core.ManifestFetchError{URL: jar + "!/" + ForgeDescriptorEntry, Err: err}
	}

	desc := &LoaderDescriptor{
		GameVersion:     v.InheritsFrom,
		GameArguments:   v.MinecraftArguments,
		Arguments:       v.Arguments,
		MainClass:       v.MainClass,
		ServerMainClass: ForgeServerMainClass,
		Libraries:       v.Libraries,
	}
	if desc.GameVersion == "" {
		desc.GameVersion = v.Jar
	}
	for _, lib := range v.Libraries {
		c, err := ParseCoordinate(lib.Name)
		if err == nil && c.Group == "net.minecraftforge" && (c.Artifact == "forge" || c.Artifact == "minecraftforge") {
			desc.LoaderVersion = GetRawForgeVersion(c.Version)
			if desc.GameVersion == "" && strings.Contains(c.Version, "-") {
				desc.GameVersion = strings.Split(c.Version, "-")[0]
			}
			break
		}
	}
	if desc.LoaderVersion == "" {
		if i := strings.LastIndex(v.ID, "forge"); i >= 0 {
			desc.LoaderVersion = GetRawForgeVersion(strings.TrimPrefix(v.ID[i+len("forge"):], "-"))
		}
	}
	return desc, nil
}

// GetRawForgeVersion strips the game version from a mcVersion-loaderVersion
// pair.
func GetRawForgeVersion(version string) string {
	var wantedVersion string
	// Check if we have a "-" in the version
	if strings.Contains(version, "-") {
		wantedVersion = strings.Split(version, "-")[1]
	} else {
		wantedVersion = version
	}
	return wantedVersion
}

// MainClassFor returns the entry point for the run mode.
func (l *LoaderDescriptor) MainClassFor(mode core.RunMode) string {
	if mode == core.ServerMode && l.ServerMainClass != "" {
		return l.ServerMainClass
	}
	return l.MainClass
}

// BuildClasspath resolves and syncs the loader libraries needed for mode and
// returns their joined local paths in declaration order.
func (l *LoaderDescriptor) BuildClasspath(ctx context.Context, mode core.RunMode, resolver *LibraryResolver, syncer *core.BulkSyncer, weight float64, progress *core.Progress) (string, []LibraryEntry, error) {
	entries := resolver.Resolve(l.Libraries, mode)
	if _, err := syncer.SyncAll(ctx, "loader libraries", Files(entries), weight, progress); err != nil {
		return "", nil, err
	}
	return JoinClasspath(entries, resolver.Platform.PathListSeparator()), entries, nil
}
