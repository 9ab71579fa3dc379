package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/unascribed/FlexVer/go/flexver"
)

// ModPack is a pack resolved from its manifest. It is replaced as a whole
// when the manifest is fetched again.
type ModPack struct {
	Name          string
	Version       string
	WebsiteURL    string
	LogoURL       string
	BackgroundURL string
	MinRAMGB      int
	LoaderURL     string
	LoaderHash    *Hash
	GameVersion   string
	ManifestURL   string

	Mods          []Artifact
	Configs       []Artifact
	ResourcePacks []*ManagedFile
	ShaderPacks   []*ManagedFile
	InitialFiles  []Artifact
}

// Placeholder stands in for a pack whose manifest could not be fetched.
func Placeholder(manifestURL string) *ModPack {
	return &ModPack{ManifestURL: manifestURL}
}

func (p *ModPack) IsPlaceholder() bool {
	return p == nil || p.Name == ""
}

func (p *ModPack) GetPackName() string {
	if p.Name == "" {
		return "unknown"
	} else if p.Version == "" {
		return p.Name
	} else {
		return p.Name + "-" + p.Version
	}
}

// Slug is the directory name used for the pack on disk.
func (p *ModPack) Slug() string {
	return SlugifyName(p.Name)
}

// NewerThan reports whether the pack version is newer than an installed one.
func (p *ModPack) NewerThan(installed string) bool {
	if installed == "" {
		return true
	}
	return flexver.Compare(p.Version, installed) > 0
}

const CurrentPackFormat = "1.0.0"

var PackFormatConstraintAccepted = mustParseConstraint("~1")

func mustParseConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// CheckPackFormat validates the optional manifest format version. An empty
// format is treated as the current one.
func CheckPackFormat(format string) error {
	if format == "" {
		return nil
	}
	ver, err := semver.NewVersion(strings.TrimPrefix(format, "v"))
	if err != nil {
		return fmt.Errorf("pack format field is not valid semver: %w", err)
	}
	if !PackFormatConstraintAccepted.Check(ver) {
		return errors.New("the mod pack manifest is incompatible with this version of packlaunch; please update")
	}
	return nil
}
