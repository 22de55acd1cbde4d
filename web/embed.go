package web

import "embed"

// Static embeds the query explorer page and its assets.
//
//go:embed static/*
var Static embed.FS
