package fileio

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// StateFile is written into a pack directory after a successful sync.
const StateFile = "packlaunch-state.toml"

type SyncState struct {
	PackName    string    `toml:"pack-name"`
	PackVersion string    `toml:"pack-version"`
	GameVersion string    `toml:"game-version,omitempty"`
	Mode        string    `toml:"mode"`
	SyncedAt    time.Time `toml:"synced-at"`
}

// LoadSyncState returns the zero state when the pack was never synced.
func LoadSyncState(packDir string) (SyncState, error) {
	var state SyncState
	raw, err := os.ReadFile(filepath.Join(packDir, StateFile))
	if errors.Is(err, os.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return state, err
	}
	if err := toml.Unmarshal(raw, &state); err != nil {
		return SyncState{}, err
	}
	return state, nil
}

func WriteSyncState(packDir string, state SyncState) error {
	raw, err := toml.Marshal(state)
	if err != nil {
		return err
	}
	return WriteFileAtomic(filepath.Join(packDir, StateFile), raw)
}
