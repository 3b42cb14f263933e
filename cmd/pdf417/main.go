package main

import (
	"github.com/Ahrimdon/pdf417-decoder/cmd/pdf417/cmd"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
