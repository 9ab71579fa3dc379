package core

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func hostOSVersion() string {
	v := windows.RtlGetVersion()
	return fmt.Sprintf("%d.%d", v.MajorVersion, v.MinorVersion)
}
