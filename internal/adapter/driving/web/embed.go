package web

import "embed"

// StaticFS holds the embedded static assets (stylesheet).
//
//go:embed static/*
var StaticFS embed.FS

// helpFS holds the Markdown help blurbs shown on each view, one file per view name.
//
//go:embed help/*.md
var helpFS embed.FS
