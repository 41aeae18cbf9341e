package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/config"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/Carmen-Shannon/oxy-orbit/engine/loader"
)

// scriptedDisplay replays one batch of events per PollEvents call and requests a close once
// the script runs out.
type scriptedDisplay struct {
	script   [][]input.Event
	polls    int
	sink     func(input.Event)
	width    int
	height   int
	closing  bool
	closeErr error
	log      *[]string
}

func (d *scriptedDisplay) SetEventSink(sink func(input.Event)) { d.sink = sink }

func (d *scriptedDisplay) PollEvents() {
	if d.polls >= len(d.script) {
		d.RequestClose()
		return
	}
	for _, ev := range d.script[d.polls] {
		d.sink(ev)
	}
	d.polls++
}

func (d *scriptedDisplay) IsRunning() bool { return !d.closing }
func (d *scriptedDisplay) RequestClose()   { d.closing = true }
func (d *scriptedDisplay) Width() int      { return d.width }
func (d *scriptedDisplay) Height() int     { return d.height }

func (d *scriptedDisplay) Close() error {
	if d.log != nil {
		*d.log = append(*d.log, "window")
	}
	return d.closeErr
}

type renderedFrame struct {
	uniform camera.GPUCameraUniform
	names   []string
}

// recordingRenderer keeps every call made on it.
type recordingRenderer struct {
	added   []string
	frames  []renderedFrame
	resizes [][2]int

	addErr    error
	renderErr error
	closeErr  error
	log       *[]string
}

func (r *recordingRenderer) AddMesh(name string, mesh *loader.Mesh, texture *common.TextureBuffer) error {
	defer texture.Release()
	if r.addErr != nil {
		return r.addErr
	}
	r.added = append(r.added, name)
	return nil
}

func (r *recordingRenderer) Resize(width, height int) error {
	r.resizes = append(r.resizes, [2]int{width, height})
	return nil
}

func (r *recordingRenderer) RenderFrame(uniform camera.GPUCameraUniform, names ...string) error {
	if r.renderErr != nil {
		return r.renderErr
	}
	r.frames = append(r.frames, renderedFrame{uniform: uniform, names: append([]string(nil), names...)})
	return nil
}

func (r *recordingRenderer) Close() error {
	if r.log != nil {
		*r.log = append(*r.log, "renderer")
	}
	return r.closeErr
}

func newTestEngine(t *testing.T, d *scriptedDisplay, r *recordingRenderer, options ...EngineBuilderOption) *engine {
	t.Helper()
	if d.width == 0 {
		d.width, d.height = 800, 800
	}
	e, err := NewEngine(append([]EngineBuilderOption{WithWindow(d), WithRenderer(r)}, options...)...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e.(*engine)
}

// meshAt returns a small triangle around center.
func meshAt(center common.Vector3) *loader.Mesh {
	positions := []common.Vector3{
		center.Add(common.Vec3(-0.5, -0.5, 0)),
		center.Add(common.Vec3(0.5, -0.5, 0)),
		center.Add(common.Vec3(0, 0.5, 0)),
	}
	m := &loader.Mesh{Indices: []uint32{0, 1, 2}, Positions: positions}
	for _, p := range positions {
		m.Vertices = append(m.Vertices, loader.Vertex{Position: p.Array()})
	}
	return m
}

func TestNewEngineRequiresWindowAndRenderer(t *testing.T) {
	tests := map[string]struct {
		options []EngineBuilderOption
	}{
		"nothing": {
			options: nil,
		},
		"no renderer": {
			options: []EngineBuilderOption{WithWindow(&scriptedDisplay{width: 1, height: 1})},
		},
		"no window": {
			options: []EngineBuilderOption{WithRenderer(&recordingRenderer{})},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e, err := NewEngine(tt.options...)
			if !errors.Is(err, common.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if e != nil {
				t.Error("expected no engine")
			}
		})
	}
}

func TestNewEngineUsesWindowAspect(t *testing.T) {
	d := &scriptedDisplay{width: 800, height: 400}
	e := newTestEngine(t, d, &recordingRenderer{})

	if got := e.Projection().Aspect(); got != 2 {
		t.Errorf("expected aspect 2, got %v", got)
	}
	if d.sink == nil {
		t.Error("expected the engine to install an event sink")
	}
}

func TestWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Pan = 30
	cfg.Camera.Radius = 5
	cfg.Projection.Fov = 60
	cfg.Engine.Profiling = true

	e := newTestEngine(t, &scriptedDisplay{}, &recordingRenderer{}, WithConfig(cfg))

	if e.Manipulator().Pan() != 30 || e.Manipulator().Radius() != 5 {
		t.Errorf("expected pan 30 radius 5, got %v %v", e.Manipulator().Pan(), e.Manipulator().Radius())
	}
	if e.Manipulator().Sensitivity() != cfg.Camera.Sensitivity {
		t.Errorf("expected sensitivity %v, got %v", cfg.Camera.Sensitivity, e.Manipulator().Sensitivity())
	}
	if e.Projection().Fov() != 60 {
		t.Errorf("expected fov 60, got %v", e.Projection().Fov())
	}
	if !e.profilingEnabled {
		t.Error("expected profiling enabled")
	}
	if e.renderFrameLimit != time.Second/60 {
		t.Errorf("expected 60 FPS limit, got %v", e.renderFrameLimit)
	}
}

func TestFrameUploadsMatrices(t *testing.T) {
	r := &recordingRenderer{}
	e := newTestEngine(t, &scriptedDisplay{}, r)
	if err := e.AddAsset(loader.Asset{Name: "crate", Mesh: meshAt(common.Vector3{})}); err != nil {
		t.Fatal(err)
	}
	if err := e.Manipulator().SetPanTiltRadius(40, 20, 3); err != nil {
		t.Fatal(err)
	}

	if err := e.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(r.frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(r.frames))
	}
	want := camera.NewGPUCameraUniform(e.Projection().Matrix(), e.Manipulator().View())
	if r.frames[0].uniform != want {
		t.Errorf("expected uniform %+v, got %+v", want, r.frames[0].uniform)
	}
	if !reflect.DeepEqual(r.frames[0].names, []string{"crate"}) {
		t.Errorf("expected crate drawn, got %v", r.frames[0].names)
	}
}

func TestFrameCulling(t *testing.T) {
	tests := map[string]struct {
		culling    bool
		wantNames  []string
		wantCulled int
	}{
		"culling on": {
			culling:    true,
			wantNames:  []string{"crate", "chassis"},
			wantCulled: 2,
		},
		"culling off": {
			culling:    false,
			wantNames:  []string{"crate", "behind", "chassis", "beyond far"},
			wantCulled: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := &recordingRenderer{}
			e := newTestEngine(t, &scriptedDisplay{}, r, WithCulling(tt.culling))
			assets := []loader.Asset{
				{Name: "crate", Mesh: meshAt(common.Vector3{})},
				{Name: "behind", Mesh: meshAt(common.Vec3(0, 0, 50))},
				{Name: "chassis", Mesh: meshAt(common.Vec3(0.5, 0, -1))},
				{Name: "beyond far", Mesh: meshAt(common.Vec3(0, 0, -500))},
			}
			for _, a := range assets {
				if err := e.AddAsset(a); err != nil {
					t.Fatal(err)
				}
			}

			if err := e.Frame(); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(r.frames[0].names, tt.wantNames) {
				t.Errorf("expected %v, got %v", tt.wantNames, r.frames[0].names)
			}
			if e.culled != tt.wantCulled || e.drawn != len(tt.wantNames) {
				t.Errorf("expected %d drawn %d culled, got %d/%d", len(tt.wantNames), tt.wantCulled, e.drawn, e.culled)
			}
		})
	}
}

func TestAddAsset(t *testing.T) {
	uploadErr := errors.New("device lost")
	tests := map[string]struct {
		asset   loader.Asset
		addErr  error
		wantErr error
	}{
		"no mesh": {
			asset:   loader.Asset{Name: "crate"},
			wantErr: common.ErrInvalidArgument,
		},
		"renderer failure": {
			asset:   loader.Asset{Name: "crate", Mesh: meshAt(common.Vector3{})},
			addErr:  uploadErr,
			wantErr: uploadErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := &recordingRenderer{addErr: tt.addErr}
			e := newTestEngine(t, &scriptedDisplay{}, r)
			tex := &common.TextureBuffer{Pixels: []byte{1, 2, 3, 4}, Width: 1, Height: 1}
			tt.asset.Texture = tex

			if err := e.AddAsset(tt.asset); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !tex.Released() {
				t.Error("expected texture released")
			}
			if len(e.drawables) != 0 {
				t.Errorf("expected empty draw list, got %v", e.drawables)
			}
		})
	}
}

func TestRunOrbitsAndQuitsOnEscape(t *testing.T) {
	d := &scriptedDisplay{script: [][]input.Event{
		{input.ButtonEvent{Button: common.MouseButtonLeft, Action: common.ActionPress, X: 100, Y: 100}},
		{input.MotionEvent{X: 150, Y: 100}},
		{input.ButtonEvent{Button: common.MouseButtonLeft, Action: common.ActionRelease, X: 150, Y: 100}},
		{input.KeyEvent{Key: common.KeyEscape, Action: common.ActionPress}},
	}}
	r := &recordingRenderer{}
	e := newTestEngine(t, d, r)

	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	m := e.Manipulator()
	if m.Pan() != 25 || m.Tilt() != 0 {
		t.Errorf("expected pan 25 tilt 0, got %v %v", m.Pan(), m.Tilt())
	}
	if m.Interaction() != camera.InteractionIdle {
		t.Errorf("expected idle after release, got %v", m.Interaction())
	}
	if len(r.frames) != 3 {
		t.Errorf("expected 3 frames before escape, got %d", len(r.frames))
	}
	if !d.closing {
		t.Error("expected escape to request a window close")
	}
	if !e.Keys().Down(common.KeyEscape) {
		t.Error("expected escape recorded as held")
	}
	if want := m.View(); len(r.frames) == 3 && r.frames[2].uniform.ModelView != [16]float32(want) {
		t.Error("expected the last frame to use the orbited view")
	}
}

func TestRunLogsInputErrors(t *testing.T) {
	d := &scriptedDisplay{script: [][]input.Event{
		{input.KeyEvent{Key: common.KeyA, Action: common.ActionPress}},
	}}
	r := &recordingRenderer{}
	e := newTestEngine(t, d, r)
	e.Dispatcher().OnKey(func(input.KeyEvent) error {
		return errors.New("key handler failed")
	})

	if err := e.Run(); err != nil {
		t.Fatalf("expected input errors to be logged, got %v", err)
	}
	if len(r.frames) != 2 {
		t.Errorf("expected 2 frames, got %d", len(r.frames))
	}
	if !e.Keys().Down(common.KeyA) {
		t.Error("expected built-in key handler to still run")
	}
}

func TestRunReturnsFrameError(t *testing.T) {
	d := &scriptedDisplay{script: [][]input.Event{{}, {}}}
	r := &recordingRenderer{renderErr: common.ErrInvalidState}
	e := newTestEngine(t, d, r)

	if err := e.Run(); !errors.Is(err, common.ErrInvalidState) {
		t.Errorf("expected frame error, got %v", err)
	}
	if d.polls != 1 {
		t.Errorf("expected the loop to stop after the first frame, got %d polls", d.polls)
	}
}

func TestResizeEvents(t *testing.T) {
	d := &scriptedDisplay{script: [][]input.Event{
		{input.ResizeEvent{Width: 1024, Height: 512}},
		{input.ResizeEvent{Width: 0, Height: 0}},
	}}
	r := &recordingRenderer{}
	e := newTestEngine(t, d, r)

	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r.resizes, [][2]int{{1024, 512}}) {
		t.Errorf("expected a single resize, got %v", r.resizes)
	}
	if got := e.Projection().Aspect(); got != 2 {
		t.Errorf("expected aspect 2, got %v", got)
	}
}

func TestPost(t *testing.T) {
	d := &scriptedDisplay{script: [][]input.Event{{}}}
	e := newTestEngine(t, d, &recordingRenderer{})
	e.Post(input.KeyEvent{Key: common.KeyW, Action: common.ActionPress})

	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if !e.Keys().Down(common.KeyW) {
		t.Error("expected posted key event to be dispatched")
	}
}

func TestClose(t *testing.T) {
	var order []string
	d := &scriptedDisplay{log: &order, closeErr: errors.New("window busy")}
	r := &recordingRenderer{log: &order, closeErr: errors.New("device busy")}
	e := newTestEngine(t, d, r)

	err := e.Close()
	if err == nil || !errors.Is(err, d.closeErr) || !errors.Is(err, r.closeErr) {
		t.Errorf("expected both close errors, got %v", err)
	}
	if !reflect.DeepEqual(order, []string{"renderer", "window"}) {
		t.Errorf("expected renderer closed before window, got %v", order)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if len(order) != 2 {
		t.Errorf("expected close to run once, got %v", order)
	}
	if err := e.Run(); !errors.Is(err, common.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState running after close, got %v", err)
	}
}
