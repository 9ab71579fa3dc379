//go:build !linux && !darwin && !windows

package core

func hostOSVersion() string {
	return ""
}
