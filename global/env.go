package global

import (
	"github.com/webmarks/webmarks-service/pkg/fileurl"
)

var (
	// executable directory
	ROOT string
	Name string = "Webmarks Service"
)

func init() {
	filename := fileurl.GetExePath()
	ROOT = filename + "/"
}
