package global

// populated by -ldflags at build time
var (
	Version   = "dev"
	GitTag    = ""
	BuildTime = ""
)
