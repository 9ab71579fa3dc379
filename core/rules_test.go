package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	windowsHost = Platform{OS: OSWindows, Version: "10.0", Arch: "amd64"}
	macHost     = Platform{OS: OSMac, Version: "10.5.8", Arch: "amd64"}
	linuxHost   = Platform{OS: OSLinux, Version: "6.1.0", Arch: "386"}
)

func TestRulesAllowOnlyWindows(t *testing.T) {
	rules := Rules{{Action: ActionAllow, OS: &OSRule{Name: "windows"}}}

	assert.True(t, rules.Allows(windowsHost, nil))
	assert.False(t, rules.Allows(macHost, nil))
	assert.False(t, rules.Allows(linuxHost, nil))
}

func TestRulesEmptyAlwaysApplies(t *testing.T) {
	assert.True(t, Rules(nil).Allows(linuxHost, nil))
	assert.True(t, Rules{}.Allows(macHost, nil))
}

func TestRulesLastMatchWins(t *testing.T) {
	rules := Rules{
		{Action: ActionAllow},
		{Action: ActionDisallow, OS: &OSRule{Name: "osx"}},
	}

	assert.True(t, rules.Allows(windowsHost, nil))
	assert.True(t, rules.Allows(linuxHost, nil))
	assert.False(t, rules.Allows(macHost, nil))

	reversed := Rules{
		{Action: ActionDisallow, OS: &OSRule{Name: "osx"}},
		{Action: ActionAllow},
	}
	assert.True(t, reversed.Allows(macHost, nil))
}

func TestRulesVersionRegex(t *testing.T) {
	rules := Rules{
		{Action: ActionAllow},
		{Action: ActionDisallow, OS: &OSRule{Name: "osx", Version: `^10\.5\.\d$`}},
	}

	assert.False(t, rules.Allows(macHost, nil))
	assert.True(t, rules.Allows(Platform{OS: OSMac, Version: "14.2", Arch: "arm64"}, nil))

	broken := Rules{{Action: ActionAllow, OS: &OSRule{Version: `(`}}}
	assert.False(t, broken.Allows(macHost, nil))
}

func TestRulesArch(t *testing.T) {
	rules := Rules{{Action: ActionAllow, OS: &OSRule{Arch: "x86"}}}

	assert.True(t, rules.Allows(linuxHost, nil))
	assert.False(t, rules.Allows(windowsHost, nil))
}

func TestRulesFeatures(t *testing.T) {
	rules := Rules{{Action: ActionAllow, Features: map[string]bool{"is_demo_user": true}}}

	assert.False(t, rules.Allows(windowsHost, nil))
	assert.False(t, rules.Allows(windowsHost, Features{"is_demo_user": false}))
	assert.True(t, rules.Allows(windowsHost, Features{"is_demo_user": true}))
}

func TestPlatformClassifier(t *testing.T) {
	natives := map[string]string{
		"windows": "natives-windows-${arch}",
		"osx":     "natives-osx",
	}

	assert.Equal(t, "natives-windows-64", windowsHost.Classifier(natives))
	assert.Equal(t, "natives-osx", macHost.Classifier(natives))
	assert.Equal(t, "", linuxHost.Classifier(natives))
	assert.Equal(t, "natives-windows-32", Platform{OS: OSWindows, Arch: "386"}.Classifier(natives))
}

func TestPlatformPathListSeparator(t *testing.T) {
	assert.Equal(t, ";", windowsHost.PathListSeparator())
	assert.Equal(t, ":", linuxHost.PathListSeparator())
}
