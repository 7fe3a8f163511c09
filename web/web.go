// Package web embeds the browser frontend served under /static/.
package web

import "embed"

// Assets holds the static/ directory.
//
//go:embed static
var Assets embed.FS
