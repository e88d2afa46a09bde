package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics tracks session counters and frame timing. Counters are atomic so
// a snapshot can be taken from any goroutine.
type Metrics struct {
	// Frame timing
	frameCount    atomic.Uint64
	frameTotalNs  atomic.Int64
	frameMinNs    atomic.Int64
	frameMaxNs    atomic.Int64
	framesSkipped atomic.Uint64

	// Input handling
	keyCount     atomic.Uint64
	commandCount atomic.Uint64
	commandErrs  atomic.Uint64

	// Session actions
	saveCount   atomic.Uint64
	reloadCount atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records the time taken to render and draw one frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordSkippedFrame records a frame that matched the previous one and
// was not painted.
func (m *Metrics) RecordSkippedFrame() {
	m.framesSkipped.Add(1)
}

// RecordKey records a key event.
func (m *Metrics) RecordKey() {
	m.keyCount.Add(1)
}

// RecordCommand records an applied engine command and whether it failed.
func (m *Metrics) RecordCommand(err error) {
	m.commandCount.Add(1)
	if err != nil {
		m.commandErrs.Add(1)
	}
}

// RecordSave records a successful save.
func (m *Metrics) RecordSave() {
	m.saveCount.Add(1)
}

// RecordReload records a configuration reload.
func (m *Metrics) RecordReload() {
	m.reloadCount.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frameCount,
		FramesSkipped:  m.framesSkipped.Load(),
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		KeyCount:       m.keyCount.Load(),
		CommandCount:   m.commandCount.Load(),
		CommandErrors:  m.commandErrs.Load(),
		SaveCount:      m.saveCount.Load(),
		ReloadCount:    m.reloadCount.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	FramesSkipped  uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	KeyCount       uint64
	CommandCount   uint64
	CommandErrors  uint64
	SaveCount      uint64
	ReloadCount    uint64
}

// String formats the snapshot for the session summary log line.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("uptime=%s keys=%d commands=%d errors=%d frames=%d skipped=%d avg_frame=%s saves=%d reloads=%d",
		s.Uptime.Round(time.Millisecond), s.KeyCount, s.CommandCount, s.CommandErrors,
		s.FrameCount, s.FramesSkipped, time.Duration(s.AvgFrameTimeNs), s.SaveCount, s.ReloadCount)
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
