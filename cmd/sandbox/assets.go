package main

import "io/fs"

// subFS roots the embedded files at assets/ so loaders see shaders/...
func subFS() (fs.FS, error) {
	return fs.Sub(assetFS, "assets")
}
