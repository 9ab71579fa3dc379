package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/leocov-dev/packlaunch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGameVersion = `{
	"id": "1.12.2",
	"type": "release",
	"mainClass": "net.minecraft.client.main.Main",
	"minecraftArguments": "--username ${auth_player_name} --version ${version_name}",
	"assets": "1.12",
	"assetIndex": {"id": "1.12", "url": "https://example.com/1.12.json", "sha1": "aa", "size": 1, "totalSize": 2},
	"downloads": {
		"client": {"url": "https://example.com/client.jar", "sha1": "bb", "size": 3},
		"server": {"url": "https://example.com/server.jar", "sha1": "cc", "size": 4}
	},
	"javaVersion": {"component": "jre-legacy", "majorVersion": 8},
	"libraries": [{"name": "com.mojang:patchy:1.1"}]
}`

func gameVersionServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	mux.HandleFunc("/list.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"latest": {"release": "1.12.2"}, "versions": [
			{"id": "1.12.2", "type": "release", "url": "%s/1.12.2.json"},
			{"id": "1.7.10", "type": "release", "url": "%s/missing.json"}
		]}`, srv.URL, srv.URL)
	})
	mux.HandleFunc("/1.12.2.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testGameVersion))
	})
	return srv
}

func TestGameVersionsGet(t *testing.T) {
	srv := gameVersionServer(t)
	defer srv.Close()

	dir := t.TempDir()
	d := testDownloader()
	g := &GameVersions{Fetcher: d.Fetcher, Downloader: d, ListURL: srv.URL + "/list.json", Dir: dir}

	v, err := g.Get(context.Background(), "1.12.2")
	require.NoError(t, err)
	assert.Equal(t, "net.minecraft.client.main.Main", v.MainClass)
	assert.Equal(t, 8, v.JavaVersion.MajorVersion)
	assert.True(t, v.Arguments.Empty())
	assert.FileExists(t, filepath.Join(dir, "1.12.2", "1.12.2.json"))

	jar, err := v.GameJar(core.ServerMode, dir)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/server.jar", jar.URL)
	assert.Equal(t, filepath.Join(dir, "1.12.2", "1.12.2-server.jar"), jar.LocalPath())

	idx := v.AssetIndexFile("/assets")
	assert.Equal(t, "indexes/1.12.json", idx.Path)
	assert.Equal(t, "1.12", v.AssetIndexName())

	_, err = g.Get(context.Background(), "1.0.0")
	assert.ErrorIs(t, err, core.ErrManifestFetch)

	_, err = g.Get(context.Background(), "1.7.10")
	assert.ErrorIs(t, err, core.ErrDownload)
}

func TestGameJarMissingDownload(t *testing.T) {
	v := &GameVersion{ID: "x"}
	_, err := v.GameJar(core.ClientMode, "")
	assert.Error(t, err)
}
