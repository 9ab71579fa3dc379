package core

import (
	"runtime"
	"strings"
)

// OS names as used by game manifests.
const (
	OSWindows = "windows"
	OSMac     = "osx"
	OSLinux   = "linux"
)

// Platform describes the host a pack is synced for.
type Platform struct {
	OS      string
	Version string
	Arch    string
}

// HostPlatform detects the current host.
func HostPlatform() Platform {
	return Platform{
		OS:      osName(runtime.GOOS),
		Version: hostOSVersion(),
		Arch:    runtime.GOARCH,
	}
}

func osName(goos string) string {
	switch goos {
	case "windows":
		return OSWindows
	case "darwin":
		return OSMac
	default:
		return OSLinux
	}
}

func (p Platform) Is64Bit() bool {
	switch p.Arch {
	case "386", "arm", "mips", "mipsle":
		return false
	}
	return true
}

func (p Platform) IsMac() bool {
	return p.OS == OSMac
}

// PathListSeparator is the classpath separator for the platform.
func (p Platform) PathListSeparator() string {
	if p.OS == OSWindows {
		return ";"
	}
	return ":"
}

// Classifier selects the native classifier for this platform out of a
// manifest's natives map, or "" when the library has none for it.
func (p Platform) Classifier(natives map[string]string) string {
	classifier, ok := natives[p.OS]
	if !ok && p.OS == OSMac {
		classifier, ok = natives["macos"]
	}
	if !ok {
		return ""
	}
	bits := "32"
	if p.Is64Bit() {
		bits = "64"
	}
	return strings.ReplaceAll(classifier, "${arch}", bits)
}

func (p Platform) matchesName(name string) bool {
	name = strings.ToLower(name)
	if name == "macos" || name == "darwin" {
		name = OSMac
	}
	return name == p.OS
}

func (p Platform) matchesArch(arch string) bool {
	switch strings.ToLower(arch) {
	case "x86", "i386", "i686", "386":
		return p.Arch == "386"
	case "x64", "x86_64", "amd64":
		return p.Arch == "amd64"
	case "arm64", "aarch64":
		return p.Arch == "arm64"
	case "arm", "arm32":
		return p.Arch == "arm"
	}
	return strings.EqualFold(arch, p.Arch)
}
