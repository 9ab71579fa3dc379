package launcher

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/leocov-dev/packlaunch/core"
)

// Layout places packs and shared game files under one launcher directory:
//
//	<root>/packs/<slug>/       pack directory, the game working directory
//	<root>/packs/<slug>/bin/   loader jar, pack images and natives
//	<root>/libraries/          shared libraries
//	<root>/versions/           game version manifests and jars
//	<root>/assets/             asset indexes and objects
type Layout struct {
	Root string
}

func (l Layout) PackDir(pack *core.ModPack) string {
	return filepath.Join(l.Root, "packs", pack.Slug())
}

func (l Layout) LibrariesDir() string {
	return filepath.Join(l.Root, "libraries")
}

func (l Layout) VersionsDir() string {
	return filepath.Join(l.Root, "versions")
}

func (l Layout) AssetsDir() string {
	return filepath.Join(l.Root, "assets")
}

func (l Layout) NativesDir(pack *core.ModPack) string {
	return filepath.Join(l.PackDir(pack), "bin", "natives")
}

// LoaderFile is the loader jar of the pack, or nil when it has none.
func (l Layout) LoaderFile(pack *core.ModPack) *core.ManagedFile {
	if pack.LoaderURL == "" {
		return nil
	}
	f := core.NewManagedFile(pack.LoaderURL, "bin/modpack.jar", pack.LoaderHash)
	f.Prefix = l.PackDir(pack)
	return f
}

// Images are the logo and background of the pack.
func (l Layout) Images(pack *core.ModPack) []*core.ManagedFile {
	var images []*core.ManagedFile
	for _, img := range [][2]string{{"logo", pack.LogoURL}, {"background", pack.BackgroundURL}} {
		name, u := img[0], img[1]
		if u == "" {
			continue
		}
		f := core.NewManagedFile(u, "bin/"+name+imageExt(u), nil)
		f.Prefix = l.PackDir(pack)
		images = append(images, f)
	}
	return images
}

// LogoPath is where the logo is stored, or "" when the pack has none.
func (l Layout) LogoPath(pack *core.ModPack) string {
	if pack.LogoURL == "" {
		return ""
	}
	return filepath.Join(l.PackDir(pack), "bin", "logo"+imageExt(pack.LogoURL))
}

func imageExt(u string) string {
	ext := path.Ext(strings.SplitN(u, "?", 2)[0])
	if ext == "" || len(ext) > 5 {
		return ".png"
	}
	return ext
}
