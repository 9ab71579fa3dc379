package sources

import (
	"encoding/json"
	"os"
	"path"
	"sort"

	"github.com/leocov-dev/packlaunch/core"
)

const AssetsURL = "https://resources.download.minecraft.net/"

type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// AssetIndex maps logical asset names to content hashes.
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
}

func ReadAssetIndex(file string) (*AssetIndex, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, &core.ManifestFetchError{URL: file, Err: err}
	}
	var idx AssetIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, &core.ManifestFetchError{URL: file, Err: err}
	}
	return &idx, nil
}

// Files returns one managed file per distinct object, stored content
// addressed as objects/<hash[0:2]>/<hash> under assetsDir. Files are sorted
// by hash.
func (idx *AssetIndex) Files(assetsDir string) []*core.ManagedFile {
	hashes := make([]string, 0, len(idx.Objects))
	seen := make(map[string]bool, len(idx.Objects))
	for _, obj := range idx.Objects {
		if len(obj.Hash) < 2 || seen[obj.Hash] {
			continue
		}
		seen[obj.Hash] = true
		hashes = append(hashes, obj.Hash)
	}
	sort.Strings(hashes)

	files := make([]*core.ManagedFile, len(hashes))
	for i, h := range hashes {
		rel := path.Join(h[:2], h)
		f := core.NewManagedFile(AssetsURL+rel, path.Join("objects", rel), core.NewHash(core.HashSHA1, h))
		f.Prefix = assetsDir
		files[i] = f
	}
	return files
}
