package render

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// DefaultTemplates exposes the built-in generic templates so the tools work
// without a templates directory. Pass it to NewEngine via WithFS; an on-disk
// base dir configured alongside it wins for any name it can resolve.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// Should never happen, but fall back to the raw FS so the
		// defaults remain usable.
		return embeddedTemplates
	}
	return sub
}
