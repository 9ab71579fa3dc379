package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackNames(t *testing.T) {
	pack := &ModPack{Name: "Sky Factory", Version: "4.2.1"}
	assert.Equal(t, "Sky Factory-4.2.1", pack.GetPackName())
	assert.Equal(t, "sky-factory", pack.Slug())
	assert.False(t, pack.IsPlaceholder())

	placeholder := Placeholder("https://example.com/pack.json")
	assert.True(t, placeholder.IsPlaceholder())
	assert.Equal(t, "unknown", placeholder.GetPackName())
	assert.Equal(t, "https://example.com/pack.json", placeholder.ManifestURL)
}

func TestPackNewerThan(t *testing.T) {
	pack := &ModPack{Name: "A", Version: "1.10.0"}
	assert.True(t, pack.NewerThan(""))
	assert.True(t, pack.NewerThan("1.9.2"))
	assert.False(t, pack.NewerThan("1.10.0"))
	assert.False(t, pack.NewerThan("2.0"))
}

func TestCheckPackFormat(t *testing.T) {
	assert.NoError(t, CheckPackFormat(""))
	assert.NoError(t, CheckPackFormat("1.0.0"))
	assert.NoError(t, CheckPackFormat("1.4"))
	assert.Error(t, CheckPackFormat("2.0.0"))
	assert.Error(t, CheckPackFormat("not-a-version"))
}
