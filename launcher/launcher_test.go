package launcher

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/leocov-dev/packlaunch/core"
	"github.com/leocov-dev/packlaunch/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineIdentity(t *testing.T) {
	id := OfflineIdentity("Steve")
	assert.Equal(t, "Steve", id.Name)
	assert.Len(t, id.UUID, 32)
	assert.Equal(t, id, OfflineIdentity("Steve"))
	assert.NotEqual(t, id.UUID, OfflineIdentity("Alex").UUID)

	parsed, err := uuid.Parse(id.UUID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(3), parsed.Version())
	assert.Equal(t, uuid.RFC4122, parsed.Variant())
}

func TestClasspathBuilderKeepsFirstOccurrence(t *testing.T) {
	lib := func(p string, native bool) sources.LibraryEntry {
		f := core.NewManagedFile("", p, nil)
		f.Prefix = "/libs"
		return sources.LibraryEntry{ManagedFile: f, Native: native}
	}
	loader := []sources.LibraryEntry{lib("forge.jar", false), lib("asm.jar", false)}
	game := []sources.LibraryEntry{lib("asm.jar", false), lib("lwjgl-natives.jar", true), lib("guava.jar", false)}

	cp := NewClasspathBuilder(";").AddLibraries(loader).AddLibraries(game).Add("/versions/client.jar", "").String()
	assert.Equal(t, filepath.Join("/libs", "forge.jar")+";"+filepath.Join("/libs", "asm.jar")+";"+
		filepath.Join("/libs", "guava.jar")+";/versions/client.jar", cp)
}

type recordingLauncher struct {
	args []string
	dir  string
}

func (l *recordingLauncher) Execute(_ context.Context, args []string, dir string) error {
	l.args, l.dir = args, dir
	return nil
}

func TestLaunch(t *testing.T) {
	l := &recordingLauncher{}
	require.NoError(t, Launch(context.Background(), l, Command{Args: []string{"java", "-version"}, Dir: "/packs/a"}))
	assert.Equal(t, []string{"java", "-version"}, l.args)
	assert.Equal(t, "/packs/a", l.dir)
}

func TestExecLauncherStartFailure(t *testing.T) {
	l := &ExecLauncher{}
	err := l.Execute(context.Background(), []string{filepath.Join(t.TempDir(), "no-such-java")}, t.TempDir())
	assert.ErrorIs(t, err, core.ErrProcessLaunch)

	err = l.Execute(context.Background(), nil, "")
	assert.ErrorIs(t, err, core.ErrProcessLaunch)
}

func TestLayout(t *testing.T) {
	l := Layout{Root: "/root"}
	pack := &core.ModPack{Name: "Sky Factory", LoaderURL: "https://x/forge.jar", LogoURL: "https://x/logo.jpg?v=2", BackgroundURL: "https://x/bg"}

	assert.Equal(t, filepath.Join("/root", "packs", "sky-factory"), l.PackDir(pack))
	assert.Equal(t, filepath.Join("/root", "packs", "sky-factory", "bin", "logo.jpg"), l.LogoPath(pack))
	images := l.Images(pack)
	require.Len(t, images, 2)
	assert.Equal(t, "bin/logo.jpg", images[0].Path)
	assert.Equal(t, "bin/background.png", images[1].Path)
	assert.Equal(t, filepath.Join("/root", "packs", "sky-factory", "bin", "modpack.jar"), l.LoaderFile(pack).LocalPath())
	assert.Nil(t, l.LoaderFile(&core.ModPack{Name: "x"}))
}
