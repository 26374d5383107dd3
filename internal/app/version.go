package app

import (
	"github.com/webmarks/webmarks-service/global"
	pkgapp "github.com/webmarks/webmarks-service/pkg/app"
)

// Version returns the build information stamped into the binary
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   global.Version,
		GitTag:    global.GitTag,
		BuildTime: global.BuildTime,
	}
}
