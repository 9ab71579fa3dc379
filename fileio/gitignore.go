package fileio

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// PreserveFile lists, in gitignore syntax, pack files that are never
// overwritten once they exist locally.
const PreserveFile = ".packignore"

var preserveDefaults = []string{
	// Worlds and screenshots belong to the player
	"saves/**",
	"screenshots/**",

	// Keybindings and video settings
	"options.txt",
}

// PreserveRules decides which files in a pack directory keep local edits.
type PreserveRules struct {
	matcher *gitignore.GitIgnore
}

// LoadPreserveRules reads the pack's preserve file, if any, on top of the
// defaults. Negated patterns (!path) can re-enable defaults.
func LoadPreserveRules(packDir string) (*PreserveRules, bool) {
	data, err := os.ReadFile(filepath.Join(packDir, PreserveFile))
	if err != nil {
		return &PreserveRules{gitignore.CompileIgnoreLines(preserveDefaults...)}, false
	}

	s := strings.Split(string(data), "\n")
	var lines []string
	lines = append(lines, preserveDefaults...)
	lines = append(lines, s...)
	return &PreserveRules{gitignore.CompileIgnoreLines(lines...)}, true
}

// Preserved reports whether the pack-relative, forward slash path matches.
func (p *PreserveRules) Preserved(relPath string) bool {
	if p == nil || p.matcher == nil {
		return false
	}
	return p.matcher.MatchesPath(relPath)
}
