package main

import (
	"github.com/leocov-dev/packlaunch/cmd"
	"github.com/leocov-dev/packlaunch/config"
)

var Version string

func main() {
	config.SetVersion(Version)
	cmd.Execute()
}
