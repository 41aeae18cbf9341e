package loader

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithMesh is an option builder that pre-populates the mesh cache with a mesh.
//
// Parameters:
//   - key: the cache key for the mesh
//   - mesh: the mesh to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the mesh option to a loader
func WithMesh(key string, mesh *Mesh) LoaderBuilderOption {
	return func(l *loader) {
		l.meshCache[key] = mesh
	}
}

// WithWorkers sets how many workers LoadAssets uses. Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}
