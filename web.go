package loteria

import "embed"

// WebFS holds the browser table served by cmd/server.
//
//go:embed web
var WebFS embed.FS
