package core

import "fmt"

// RunMode is the side a pack is synced and launched for.
type RunMode string

const (
	ClientMode RunMode = "client"
	ServerMode RunMode = "server"
)

func ParseRunMode(s string) (RunMode, error) {
	switch RunMode(s) {
	case ClientMode, ServerMode:
		return RunMode(s), nil
	case "":
		return ClientMode, nil
	}
	return "", fmt.Errorf("invalid run mode %q, must be one of client or server", s)
}

// Requirement states on which sides an artifact is needed.
type Requirement struct {
	Client bool
	Server bool
}

var BothSides = Requirement{Client: true, Server: true}

func (r Requirement) Applies(mode RunMode) bool {
	switch mode {
	case ServerMode:
		return r.Server
	default:
		return r.Client
	}
}

// Artifact is a ManagedFile that is only synced for the sides that require it.
type Artifact struct {
	*ManagedFile
	Name string
	Requirement
}

// FilterArtifacts returns the files of the artifacts required by mode.
func FilterArtifacts(artifacts []Artifact, mode RunMode) []*ManagedFile {
	files := make([]*ManagedFile, 0, len(artifacts))
	for _, a := range artifacts {
		if a.Applies(mode) {
			files = append(files, a.ManagedFile)
		}
	}
	return files
}
