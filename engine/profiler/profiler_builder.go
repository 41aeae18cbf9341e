package profiler

import "time"

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are logged. Values <= 0 are ignored.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces time.Now as the profiler's time source.
func WithClock(clock func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithMemStats enables or disables reading runtime.MemStats on each report.
// Reading them stops the world briefly; it is enabled by default.
func WithMemStats(enabled bool) ProfilerOption {
	return func(p *Profiler) {
		p.readMemStats = enabled
	}
}
