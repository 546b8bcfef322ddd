// Package version holds build metadata, overridable with -ldflags -X.
package version

import "runtime"

var (
	AppName        = "Styrobot"
	AppDescription = "A plugin-driven chat bot with text commands"
	Version        = "dev"
	BuildDate      = ""
	GoVersion      = runtime.Version()
)
