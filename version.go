package pocket

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the library version, sourced from the VERSION file at build time.
var Version = strings.TrimSpace(rawVersion)
