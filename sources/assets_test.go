package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leocov-dev/packlaunch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetIndexFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "index.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"objects": {
		"minecraft/sounds/a.ogg": {"hash": "bdf48ef6b5d0d23bbb02e17d04865216179f510a", "size": 10},
		"minecraft/lang/en_us.json": {"hash": "0b9fa55bae4e57f4b981a9cf69e3bc3a000f4f55", "size": 20},
		"duplicate": {"hash": "0b9fa55bae4e57f4b981a9cf69e3bc3a000f4f55", "size": 20},
		"broken": {"hash": "", "size": 1}
	}}`), 0o644))

	idx, err := ReadAssetIndex(file)
	require.NoError(t, err)

	files := idx.Files("/assets")
	require.Len(t, files, 2)
	assert.Equal(t, "objects/0b/0b9fa55bae4e57f4b981a9cf69e3bc3a000f4f55", files[0].Path)
	assert.Equal(t, AssetsURL+"0b/0b9fa55bae4e57f4b981a9cf69e3bc3a000f4f55", files[0].URL)
	assert.Equal(t, core.HashSHA1, files[0].Hash.Algorithm)
	assert.Equal(t, filepath.Join("/assets", "objects", "bd", "bdf48ef6b5d0d23bbb02e17d04865216179f510a"), files[1].LocalPath())
}

func TestReadAssetIndexErrors(t *testing.T) {
	_, err := ReadAssetIndex(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, core.ErrManifestFetch)
}
