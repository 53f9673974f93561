// Package web holds the templates and static assets embedded into the
// annotator binary.
package web

import "embed"

//go:embed assets
var Assets embed.FS

//go:embed templates
var Templates embed.FS
