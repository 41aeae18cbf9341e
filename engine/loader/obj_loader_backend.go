package loader

import (
	"io"
)

// objLoaderBackendImpl is a loaderBackend for Wavefront OBJ files.
type objLoaderBackendImpl struct{}

var _ loaderBackend = &objLoaderBackendImpl{}

func newOBJLoaderBackend() loaderBackend {
	return &objLoaderBackendImpl{}
}

func (b *objLoaderBackendImpl) Load(path string) (*Mesh, error) {
	return LoadOBJ(path)
}

func (b *objLoaderBackendImpl) LoadReader(r io.Reader) (*Mesh, error) {
	return ParseOBJ(r)
}
