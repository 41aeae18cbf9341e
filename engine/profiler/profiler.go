// Package profiler logs frame rate, draw counts and memory statistics at a fixed interval.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Report is one interval's worth of frame and memory statistics.
type Report struct {
	Frames       int
	FPS          float64
	AvgFrameTime time.Duration
	MaxFrameTime time.Duration

	// Drawn and Culled are the mesh counts of the most recent frame.
	Drawn  int
	Culled int

	HeapMB      float64
	AllocRateMB float64 // MB allocated per second over the interval
	SysMB       float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	clock          func() time.Time
	updateInterval time.Duration
	readMemStats   bool

	frameCount   int
	lastTime     time.Time
	lastFrame    time.Time
	maxFrameTime time.Duration

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second and the clock to time.Now.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		clock:          time.Now,
		updateInterval: time.Second,
		readMemStats:   true,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.clock()
	p.lastFrame = p.lastTime
	return p
}

// Tick should be called once per frame after it has been drawn.
// When the update interval has elapsed the interval's statistics are logged and returned.
//
// Parameters:
//   - drawn: meshes drawn this frame
//   - culled: meshes skipped by frustum culling this frame
//
// Returns:
//   - Report: the statistics for the finished interval
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(drawn, culled int) (Report, bool) {
	now := p.clock()
	p.frameCount++
	if ft := now.Sub(p.lastFrame); ft > p.maxFrameTime {
		p.maxFrameTime = ft
	}
	p.lastFrame = now

	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return Report{}, false
	}

	r := Report{
		Frames:       p.frameCount,
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		AvgFrameTime: elapsed / time.Duration(p.frameCount),
		MaxFrameTime: p.maxFrameTime,
		Drawn:        drawn,
		Culled:       culled,
	}
	if p.readMemStats {
		p.sampleMemory(&r, elapsed)
	}

	log.Printf("[Profiler] FPS: %.2f | Frame: avg %v max %v | Meshes: %d drawn %d culled | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		r.FPS, r.AvgFrameTime, r.MaxFrameTime, r.Drawn, r.Culled, r.HeapMB, r.AllocRateMB, r.GCCount, r.LastPauseUs, r.MaxPauseUs, r.SysMB)

	p.frameCount = 0
	p.maxFrameTime = 0
	p.lastTime = now
	return r, true
}

// sampleMemory fills the memory fields of r from runtime.MemStats.
func (p *Profiler) sampleMemory(r *Report, elapsed time.Duration) {
	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	r.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	r.SysMB = float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	r.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	r.GCCount = gcCount
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		r.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > r.MaxPauseUs {
				r.MaxPauseUs = pause
			}
		}
	}

	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}
