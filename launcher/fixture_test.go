package launcher

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/leocov-dev/packlaunch/core"
	"github.com/stretchr/testify/require"
)

var linux64 = core.Platform{OS: core.OSLinux, Version: "6.1.0", Arch: "amd64"}

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

func zipBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// gameServer serves files by URL path, whatever host they were requested
// from.
type gameServer struct {
	*httptest.Server

	mu    sync.Mutex
	files map[string][]byte
	hits  map[string]int
}

func newGameServer(t *testing.T) *gameServer {
	s := &gameServer{files: make(map[string][]byte), hits: make(map[string]int)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		data, ok := s.files[r.URL.Path]
		s.hits[r.URL.Path]++
		s.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *gameServer) put(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
}

func (s *gameServer) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *gameServer) totalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

// Fetch routes every URL to the test server by path.
func (s *gameServer) Fetch(ctx context.Context, u string) (io.ReadCloser, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return nil, err
	}
	return core.NewHTTPFetcher(5*time.Second).Fetch(ctx, s.URL+parsed.Path)
}

const (
	modContent    = "mod jar content"
	configContent = "config content"
	clientJar     = "client jar"
	serverJar     = "server jar"
	patchyJar     = "patchy jar"
	assetContent  = "asset object"
)

// registerGame publishes game version 1.12.2 with one library, one native
// archive and one asset.
func registerGame(t *testing.T, s *gameServer) {
	natives := zipBytes(t, map[string]string{"liblwjgl.so": "native", "META-INF/MANIFEST.MF": "x"})
	assetHash := sha1Hex([]byte(assetContent))
	index := []byte(fmt.Sprintf(`{"objects": {"minecraft/lang/en_us.lang": {"hash": %q, "size": 12}}}`, assetHash))

	version := fmt.Sprintf(`{
		"id": "1.12.2",
		"type": "release",
		"mainClass": "net.minecraft.client.main.Main",
		"minecraftArguments": "--username ${auth_player_name} --version ${version_name} --gameDir ${game_directory} --assetsDir ${assets_root} --assetIndex ${assets_index_name} --uuid ${auth_uuid} --accessToken ${auth_access_token} --userType ${user_type}",
		"assets": "1.12",
		"assetIndex": {"id": "1.12", "url": "https://launchermeta.mojang.com/v1/indexes/1.12.json", "sha1": %q},
		"downloads": {
			"client": {"url": "https://launcher.mojang.com/v1/client.jar", "sha1": %q},
			"server": {"url": "https://launcher.mojang.com/v1/server.jar", "sha1": %q}
		},
		"libraries": [
			{"name": "com.mojang:patchy:1.1", "downloads": {"artifact": {"path": "com/mojang/patchy/1.1/patchy-1.1.jar", "url": "https://libraries.minecraft.net/com/mojang/patchy/1.1/patchy-1.1.jar", "sha1": %q}}},
			{"name": "org.lwjgl.lwjgl:lwjgl-platform:2.9.4", "natives": {"linux": "natives-linux"}, "extract": {"exclude": ["META-INF/"]},
			 "downloads": {"classifiers": {"natives-linux": {"path": "org/lwjgl/lwjgl/lwjgl-platform/2.9.4/lwjgl-platform-2.9.4-natives-linux.jar", "url": "https://libraries.minecraft.net/natives-linux.jar", "sha1": %q}}}},
			{"name": "ca.weblite:java-objc-bridge:1.0.0", "rules": [{"action": "allow", "os": {"name": "osx"}}]}
		]
	}`, sha1Hex(index), sha1Hex([]byte(clientJar)), sha1Hex([]byte(serverJar)), sha1Hex([]byte(patchyJar)), sha1Hex(natives))

	s.put("/mc/game/version_manifest_v2.json", []byte(`{"versions": [{"id": "1.12.2", "type": "release", "url": "https://piston-meta.mojang.com/v1/1.12.2.json"}]}`))
	s.put("/v1/1.12.2.json", []byte(version))
	s.put("/v1/indexes/1.12.json", index)
	s.put("/v1/client.jar", []byte(clientJar))
	s.put("/v1/server.jar", []byte(serverJar))
	s.put("/com/mojang/patchy/1.1/patchy-1.1.jar", []byte(patchyJar))
	s.put("/natives-linux.jar", natives)
	s.put("/"+assetHash[:2]+"/"+assetHash, []byte(assetContent))
}

// testPack declares a client only mod with a hash and a config without one.
func testPack(t *testing.T, s *gameServer) *core.ModPack {
	s.put("/mods/jei.jar", []byte(modContent))
	s.put("/configs/jei.cfg", []byte(configContent))
	s.put("/initial/servers.dat", []byte("servers"))
	return &core.ModPack{
		Name:        "Test Pack",
		Version:     "1.0.0",
		GameVersion: "1.12.2",
		ManifestURL: "https://packs.example.com/test.json",
		Mods: []core.Artifact{{
			ManagedFile: core.NewManagedFile("https://packs.example.com/mods/jei.jar", "mods/jei.jar", core.NewHash(core.HashSHA1, sha1Hex([]byte(modContent)))),
			Name:        "JEI",
			Requirement: core.Requirement{Client: true, Server: false},
		}},
		Configs: []core.Artifact{{
			ManagedFile: core.NewManagedFile("https://packs.example.com/configs/jei.cfg", "config/jei.cfg", nil),
			Requirement: core.BothSides,
		}},
		InitialFiles: []core.Artifact{{
			ManagedFile: core.NewManagedFile("https://packs.example.com/initial/servers.dat", "servers.dat", nil),
			Requirement: core.BothSides,
		}},
	}
}

func testSyncer(s *gameServer, root string) *Syncer {
	d := core.NewDownloader(s)
	d.Interval = time.Millisecond
	syncer := NewSyncer(Layout{Root: root}, &core.BulkSyncer{Downloader: d, Workers: 4}, s)
	syncer.Platform = linux64
	return syncer
}
