// Package web embeds the page templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static templates
var content embed.FS

func sub(dir string) fs.FS {
	s, err := fs.Sub(content, dir)
	if err != nil {
		// Only fails for an invalid path, which the embed directive rules out.
		panic(err)
	}
	return s
}

// StaticFS returns the stylesheet and other assets served under /static/.
func StaticFS() fs.FS { return sub("static") }

// TemplatesFS returns the page templates.
func TemplatesFS() fs.FS { return sub("templates") }
