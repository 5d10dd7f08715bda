package scrolly

import _ "embed"

// Version is the release of the scrolly module.
//
//go:embed VERSION
var Version string
