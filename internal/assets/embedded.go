package assets

import "embed"

//go:embed templates/*
var templates embed.FS

//go:embed styles/*
var styles embed.FS
