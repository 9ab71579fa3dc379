package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRunMode(t *testing.T) {
	mode, err := ParseRunMode("server")
	require.NoError(t, err)
	assert.Equal(t, ServerMode, mode)

	mode, err = ParseRunMode("")
	require.NoError(t, err)
	assert.Equal(t, ClientMode, mode)

	_, err = ParseRunMode("both")
	assert.Error(t, err)
}

func TestFilterArtifacts(t *testing.T) {
	clientOnly := Artifact{ManagedFile: NewManagedFile("", "mods/client.jar", nil), Requirement: Requirement{Client: true}}
	serverOnly := Artifact{ManagedFile: NewManagedFile("", "mods/server.jar", nil), Requirement: Requirement{Server: true}}
	both := Artifact{ManagedFile: NewManagedFile("", "config/both.cfg", nil), Requirement: BothSides}
	artifacts := []Artifact{clientOnly, serverOnly, both}

	assert.Equal(t, []*ManagedFile{clientOnly.ManagedFile, both.ManagedFile}, FilterArtifacts(artifacts, ClientMode))
	assert.Equal(t, []*ManagedFile{serverOnly.ManagedFile, both.ManagedFile}, FilterArtifacts(artifacts, ServerMode))
}
