package loader

import (
	"io"
)

// loaderBackend defines the generic interface for loading meshes from files or streams.
// Concrete implementations (e.g., objLoaderBackendImpl) handle format-specific details.
type loaderBackend interface {
	// Load imports a mesh from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *Mesh: the imported mesh
	//   - error: error if loading fails
	Load(path string) (*Mesh, error)

	// LoadReader imports a mesh from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing mesh data
	//
	// Returns:
	//   - *Mesh: the imported mesh
	//   - error: error if loading fails
	LoadReader(r io.Reader) (*Mesh, error)
}
