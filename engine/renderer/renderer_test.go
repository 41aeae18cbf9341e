package renderer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/loader"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// recordingBackend is an in-memory rendererBackend that records the calls made on it.
type recordingBackend struct {
	calls    []string
	draws    []string
	writes   [][]byte
	surfaces [][2]int
	textures []common.TextureBuffer
	samplers []common.SamplerStagingData
	present  PresentMode
	released bool

	failMesh    error
	failTexture error
	failSampler error
	failWrite   error
	failBegin   error
	failEnd     error
}

var _ rendererBackend = &recordingBackend{}

func (b *recordingBackend) ConfigureSurface(width, height int) error {
	b.calls = append(b.calls, "configure")
	b.surfaces = append(b.surfaces, [2]int{width, height})
	return nil
}

func (b *recordingBackend) SetPresentMode(mode PresentMode) { b.present = mode }

func (b *recordingBackend) InitCamera(provider bind_group_provider.BindGroupProvider) error {
	b.calls = append(b.calls, "camera")
	return nil
}

func (b *recordingBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte) error {
	b.calls = append(b.calls, "mesh:"+provider.Label())
	return b.failMesh
}

func (b *recordingBackend) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, tex *common.TextureBuffer) error {
	b.calls = append(b.calls, "texture:"+provider.Label())
	b.textures = append(b.textures, common.TextureBuffer{
		Pixels: append([]byte(nil), tex.Pixels...),
		Width:  tex.Width,
		Height: tex.Height,
	})
	return b.failTexture
}

func (b *recordingBackend) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, data common.SamplerStagingData) error {
	b.calls = append(b.calls, "sampler:"+provider.Label())
	b.samplers = append(b.samplers, data)
	return b.failSampler
}

func (b *recordingBackend) InitMaterialBindGroup(provider bind_group_provider.BindGroupProvider) error {
	b.calls = append(b.calls, "material:"+provider.Label())
	return nil
}

func (b *recordingBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) error {
	if b.failWrite != nil {
		return b.failWrite
	}
	for _, w := range writes {
		b.writes = append(b.writes, w.Data)
	}
	return nil
}

func (b *recordingBackend) BeginFrame() error {
	b.calls = append(b.calls, "begin")
	return b.failBegin
}

func (b *recordingBackend) DrawCall(cam, mesh bind_group_provider.BindGroupProvider) {
	b.draws = append(b.draws, mesh.Label())
}

func (b *recordingBackend) EndFrame() error {
	b.calls = append(b.calls, "end")
	return b.failEnd
}

func (b *recordingBackend) Present() { b.calls = append(b.calls, "present") }

func (b *recordingBackend) Release() { b.released = true }

func newTestRenderer(t *testing.T, options ...RendererBuilderOption) (*renderer, *recordingBackend) {
	t.Helper()
	r := newRenderer(options...)
	b := &recordingBackend{}
	if err := r.attach(b, 640, 480); err != nil {
		t.Fatalf("attach: %v", err)
	}
	return r, b
}

func triangle() *loader.Mesh {
	return &loader.Mesh{
		Name: "tri",
		Vertices: []loader.Vertex{
			{Position: [3]float32{0, 0, 0}},
			{Position: [3]float32{1, 0, 0}},
			{Position: [3]float32{0, 1, 0}},
		},
		Indices: []uint32{0, 1, 2},
	}
}

func texture() *common.TextureBuffer {
	return &common.TextureBuffer{Pixels: []byte{1, 2, 3, 4}, Width: 1, Height: 1}
}

func TestAttach(t *testing.T) {
	r, b := newTestRenderer(t, WithPresentMode(PresentModeUncapped))
	if !reflect.DeepEqual(b.calls, []string{"configure", "camera"}) {
		t.Errorf("unexpected attach calls %v", b.calls)
	}
	if b.surfaces[0] != [2]int{640, 480} {
		t.Errorf("expected 640x480 surface, got %v", b.surfaces[0])
	}
	if b.present != PresentModeUncapped {
		t.Errorf("expected uncapped present mode, got %v", b.present)
	}
	if r.camera == nil || r.camera.Label() != "Camera" {
		t.Error("expected a camera provider")
	}
}

func TestAddMeshUploadsAndReleasesTexture(t *testing.T) {
	r, b := newTestRenderer(t)
	tex := texture()

	if err := r.AddMesh("crate", triangle(), tex); err != nil {
		t.Fatalf("AddMesh: %v", err)
	}
	if !tex.Released() {
		t.Error("expected texture pixels released after upload")
	}
	want := []string{"configure", "camera", "mesh:crate", "texture:crate", "sampler:crate", "material:crate"}
	if !reflect.DeepEqual(b.calls, want) {
		t.Errorf("expected calls %v, got %v", want, b.calls)
	}
	if !reflect.DeepEqual(b.textures[0].Pixels, []byte{1, 2, 3, 4}) {
		t.Errorf("backend saw pixels %v", b.textures[0].Pixels)
	}
	if !r.HasMesh("crate") || r.meshes["crate"].IndexCount() != 3 {
		t.Error("expected crate registered with 3 indices")
	}
}

func TestAddMeshNilTextureDrawsWhite(t *testing.T) {
	r, b := newTestRenderer(t)
	if err := r.AddMesh("plain", triangle(), nil); err != nil {
		t.Fatalf("AddMesh: %v", err)
	}
	got := b.textures[0]
	if got.Width != 1 || got.Height != 1 || !reflect.DeepEqual(got.Pixels, []byte{255, 255, 255, 255}) {
		t.Errorf("expected 1x1 white texture, got %+v", got)
	}
}

func TestAddMeshErrors(t *testing.T) {
	tests := map[string]struct {
		name    string
		mesh    *loader.Mesh
		wantErr error
	}{
		"empty name": {
			name:    "",
			mesh:    triangle(),
			wantErr: common.ErrInvalidArgument,
		},
		"nil mesh": {
			name:    "crate",
			mesh:    nil,
			wantErr: common.ErrInvalidArgument,
		},
		"no triangles": {
			name:    "crate",
			mesh:    &loader.Mesh{Vertices: []loader.Vertex{{}}},
			wantErr: common.ErrInvalidArgument,
		},
		"duplicate": {
			name:    "existing",
			mesh:    triangle(),
			wantErr: common.ErrInvalidArgument,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r, _ := newTestRenderer(t)
			if err := r.AddMesh("existing", triangle(), nil); err != nil {
				t.Fatalf("seed mesh: %v", err)
			}
			tex := texture()
			err := r.AddMesh(tt.name, tt.mesh, tex)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !tex.Released() {
				t.Error("expected texture released on failure")
			}
			if len(r.Meshes()) != 1 {
				t.Errorf("expected only the seed mesh, got %v", r.Meshes())
			}
		})
	}
}

func TestAddMeshUploadFailure(t *testing.T) {
	uploadErr := errors.New("queue write failed")
	tests := map[string]struct {
		fail      func(b *recordingBackend)
		lastCall  string
		sawPixels bool
	}{
		"vertex upload": {
			fail:     func(b *recordingBackend) { b.failMesh = uploadErr },
			lastCall: "mesh:crate",
		},
		"texture write": {
			fail:      func(b *recordingBackend) { b.failTexture = uploadErr },
			lastCall:  "texture:crate",
			sawPixels: true,
		},
		"sampler": {
			fail:      func(b *recordingBackend) { b.failSampler = uploadErr },
			lastCall:  "sampler:crate",
			sawPixels: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r, b := newTestRenderer(t)
			tt.fail(b)

			tex := texture()
			err := r.AddMesh("crate", triangle(), tex)
			if !errors.Is(err, uploadErr) {
				t.Fatalf("expected upload error, got %v", err)
			}
			if got := b.calls[len(b.calls)-1]; got != tt.lastCall {
				t.Errorf("expected upload to stop at %s, got %s", tt.lastCall, got)
			}
			if (len(b.textures) > 0) != tt.sawPixels {
				t.Errorf("texture upload attempted = %v, want %v", len(b.textures) > 0, tt.sawPixels)
			}
			if !tex.Released() {
				t.Error("expected texture released after failed upload")
			}
			if r.HasMesh("crate") || len(r.Meshes()) != 0 {
				t.Error("failed mesh must not be registered")
			}
			if err := r.AddMesh("crate", triangle(), nil); !errors.Is(err, uploadErr) {
				t.Errorf("expected the name to stay free after a failed upload, got %v", err)
			}
		})
	}
}

func TestSampler(t *testing.T) {
	nearest := common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeNearest,
		MinFilter:    wgpu.FilterModeNearest,
	}
	tests := map[string]struct {
		options []RendererBuilderOption
		want    common.SamplerStagingData
	}{
		"default is linear repeat": {
			want: common.DefaultSampler(),
		},
		"nearest is kept": {
			options: []RendererBuilderOption{WithSampler(nearest)},
			want:    nearest,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r, b := newTestRenderer(t, tt.options...)
			if err := r.AddMesh("crate", triangle(), nil); err != nil {
				t.Fatalf("AddMesh: %v", err)
			}
			if len(b.samplers) != 1 || b.samplers[0] != tt.want {
				t.Errorf("expected sampler %+v, got %v", tt.want, b.samplers)
			}
		})
	}
}

func TestRenderFrame(t *testing.T) {
	tests := map[string]struct {
		names     []string
		wantDraws []string
		wantErr   error
	}{
		"no names only clears": {
			names:     nil,
			wantDraws: nil,
		},
		"explicit order": {
			names:     []string{"chassis", "crate"},
			wantDraws: []string{"chassis", "crate"},
		},
		"subset": {
			names:     []string{"chassis"},
			wantDraws: []string{"chassis"},
		},
		"unknown name draws nothing": {
			names:   []string{"crate", "humvee"},
			wantErr: common.ErrInvalidArgument,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r, b := newTestRenderer(t)
			for _, mesh := range []string{"crate", "chassis"} {
				if err := r.AddMesh(mesh, triangle(), nil); err != nil {
					t.Fatalf("AddMesh(%s): %v", mesh, err)
				}
			}
			b.calls = nil

			uniform := camera.NewGPUCameraUniform(common.Identity4(), common.Translate(0, 0, -2))
			err := r.RenderFrame(uniform, tt.names...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				if len(b.draws) != 0 || len(b.writes) != 0 || len(b.calls) != 0 {
					t.Errorf("expected no GPU work, got calls %v draws %v", b.calls, b.draws)
				}
				return
			}

			if !reflect.DeepEqual(b.draws, tt.wantDraws) {
				t.Errorf("expected draws %v, got %v", tt.wantDraws, b.draws)
			}
			if !reflect.DeepEqual(b.calls, []string{"begin", "end", "present"}) {
				t.Errorf("unexpected frame calls %v", b.calls)
			}
			if len(b.writes) != 1 || !reflect.DeepEqual(b.writes[0], uniform.Marshal()) {
				t.Error("expected the marshaled camera uniform to be written once")
			}
		})
	}
}

func TestRenderFrameFailures(t *testing.T) {
	gpuErr := errors.New("device lost")
	tests := map[string]struct {
		fail      func(b *recordingBackend)
		wantCalls []string
		wantErr   error
	}{
		"camera write": {
			fail:      func(b *recordingBackend) { b.failWrite = gpuErr },
			wantCalls: nil,
			wantErr:   gpuErr,
		},
		"begin frame": {
			fail:      func(b *recordingBackend) { b.failBegin = common.ErrInvalidState },
			wantCalls: []string{"begin"},
			wantErr:   common.ErrInvalidState,
		},
		"end frame": {
			fail:      func(b *recordingBackend) { b.failEnd = gpuErr },
			wantCalls: []string{"begin", "end"},
			wantErr:   gpuErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r, b := newTestRenderer(t)
			if err := r.AddMesh("crate", triangle(), nil); err != nil {
				t.Fatal(err)
			}
			b.calls = nil
			tt.fail(b)

			err := r.RenderFrame(camera.GPUCameraUniform{}, "crate")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !reflect.DeepEqual(b.calls, tt.wantCalls) {
				t.Errorf("expected calls %v, got %v", tt.wantCalls, b.calls)
			}
		})
	}
}

func TestResize(t *testing.T) {
	r, b := newTestRenderer(t)

	if err := r.Resize(0, 300); err != nil {
		t.Fatal(err)
	}
	if err := r.Resize(1024, 768); err != nil {
		t.Fatal(err)
	}
	want := [][2]int{{640, 480}, {1024, 768}}
	if !reflect.DeepEqual(b.surfaces, want) {
		t.Errorf("expected surfaces %v, got %v", want, b.surfaces)
	}
}

func TestClose(t *testing.T) {
	r, b := newTestRenderer(t)
	if err := r.AddMesh("crate", triangle(), nil); err != nil {
		t.Fatal(err)
	}

	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if !b.released {
		t.Error("expected backend released")
	}
	if len(r.Meshes()) != 0 {
		t.Errorf("expected no meshes after close, got %v", r.Meshes())
	}
	if err := r.RenderFrame(camera.GPUCameraUniform{}); !errors.Is(err, common.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState rendering after close, got %v", err)
	}
	tex := texture()
	if err := r.AddMesh("chassis", triangle(), tex); !errors.Is(err, common.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState adding after close, got %v", err)
	}
	if !tex.Released() {
		t.Error("expected texture released when add is rejected")
	}
}
