// Package loader imports meshes and textures from disk and caches the meshes by path.
package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// AssetSpec names a mesh file and the texture drawn on it.
type AssetSpec struct {
	Name        string
	MeshPath    string
	TexturePath string
}

// Asset is a loaded AssetSpec. Texture is owned by the caller and should be handed to the
// renderer, which releases it after upload.
type Asset struct {
	Name    string
	Mesh    *Mesh
	Texture *common.TextureBuffer
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	meshCache map[string]*Mesh
	backends  map[string]loaderBackend

	workers int
}

// Loader defines the public-facing interface for loading meshes and textures.
// Mesh formats are resolved by file extension; loaded meshes are cached by path.
// All methods are safe for concurrent use.
type Loader interface {
	// LoadMesh imports a mesh file and caches the result.
	// If the mesh is already cached (by file path), the cached version is returned.
	//
	// Parameters:
	//   - path: the file path to the mesh file
	//
	// Returns:
	//   - *Mesh: the loaded and cached mesh
	//   - error: error if loading fails or the format is unsupported
	LoadMesh(path string) (*Mesh, error)

	// LoadReader imports an OBJ mesh from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded mesh
	//   - r: the reader providing mesh data
	//
	// Returns:
	//   - *Mesh: the loaded mesh
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (*Mesh, error)

	// LoadTexture decodes an image file into a texture buffer. Textures are not cached
	// because their pixels are released once uploaded.
	//
	// Parameters:
	//   - path: the file path to the image
	//
	// Returns:
	//   - *common.TextureBuffer: the decoded pixels
	//   - error: error if decoding fails or the format is unsupported
	LoadTexture(path string) (*common.TextureBuffer, error)

	// LoadAssets loads every spec on a worker pool and waits for all of them.
	// On failure every texture already decoded is released and the first error is returned.
	//
	// Parameters:
	//   - specs: the assets to load
	//
	// Returns:
	//   - []Asset: loaded assets in the order of specs
	//   - error: the first error encountered
	LoadAssets(specs []AssetSpec) ([]Asset, error)

	// Get retrieves a cached mesh by name. Returns nil if not found.
	Get(name string) *Mesh

	// Meshes returns a copy of the mesh cache.
	Meshes() map[string]*Mesh
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the OBJ backend registered and options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:        sync.RWMutex{},
		meshCache: make(map[string]*Mesh),
		backends: map[string]loaderBackend{
			".obj": newOBJLoaderBackend(),
		},
		workers: 2,
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) LoadMesh(path string) (*Mesh, error) {
	l.mu.RLock()
	if cached, ok := l.meshCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	m, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.mu.Lock()
	l.meshCache[path] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) LoadReader(name string, r io.Reader) (*Mesh, error) {
	l.mu.RLock()
	if cached, ok := l.meshCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	m, err := l.backends[".obj"].LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	m.Name = name

	l.mu.Lock()
	l.meshCache[name] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) LoadTexture(path string) (*common.TextureBuffer, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".bmp":
		return LoadBMP(path)
	default:
		return nil, fmt.Errorf("loader: unsupported texture format %q: %w", ext, common.ErrInvalidArgument)
	}
}

func (l *loader) LoadAssets(specs []AssetSpec) ([]Asset, error) {
	assets := make([]Asset, len(specs))
	errs := make([]error, len(specs))

	// The WaitGroup is the barrier; the pool only lives for this batch.
	pool := worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	defer pool.Stop()
	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		idx := i
		s := spec
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				assets[idx], errs[idx] = l.loadAsset(s)
				return nil, errs[idx]
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			for _, a := range assets {
				a.Texture.Release()
			}
			return nil, err
		}
	}
	return assets, nil
}

func (l *loader) loadAsset(spec AssetSpec) (Asset, error) {
	a := Asset{Name: spec.Name}
	mesh, err := l.LoadMesh(spec.MeshPath)
	if err != nil {
		return a, fmt.Errorf("asset %q: %w", spec.Name, err)
	}
	a.Mesh = mesh
	if spec.TexturePath == "" {
		return a, nil
	}
	tex, err := l.LoadTexture(spec.TexturePath)
	if err != nil {
		return a, fmt.Errorf("asset %q: %w", spec.Name, err)
	}
	a.Texture = tex
	return a, nil
}

func (l *loader) Get(name string) *Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.meshCache[name]
}

func (l *loader) Meshes() map[string]*Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]*Mesh, len(l.meshCache))
	for k, v := range l.meshCache {
		result[k] = v
	}
	return result
}

// resolveBackend selects the backend registered for the file extension of path.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	backend, ok := l.backends[ext]
	if !ok {
		return nil, fmt.Errorf("loader: unsupported mesh format %q: %w", ext, common.ErrInvalidArgument)
	}
	return backend, nil
}
