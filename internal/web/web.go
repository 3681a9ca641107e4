package web

import (
	"embed"
	"io/fs"
)

// Embed the 'static' directory.
// It is served in place of the display client when no build of it exists.
//
//go:embed static
var Assets embed.FS

// GetStaticFS returns the embedded placeholder site rooted at 'static'.
func GetStaticFS() fs.FS {
	sub, err := fs.Sub(Assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
