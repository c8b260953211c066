// Package main is the rostersync entry point.
package main

import "github.com/dtroode/rostersync/cmd/rostersync/cmd"

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	cmd.Execute(buildVersion, buildDate, buildCommit)
}
