package monitor

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"
)

// Thresholds are the limits checked on every sample; zero disables a check
type Thresholds struct {
	MaxMemory     uint64
	MaxGoroutines int
}

// Metrics is one runtime sample
type Metrics struct {
	Memory     uint64    `json:"memory"`     // Allocated heap bytes
	Goroutines int       `json:"goroutines"` // Number of goroutines
	HeapSys    uint64    `json:"heap_sys"`   // Heap system memory in bytes
	HeapIdle   uint64    `json:"heap_idle"`  // Heap idle memory in bytes
	GCCount    uint32    `json:"gc_count"`   // Number of completed GC cycles
	GCPause    uint64    `json:"gc_pause"`   // Total GC pause in nanoseconds
	SampledAt  time.Time `json:"sampled_at"`
}

// RuntimeStats keeps the latest and peak runtime samples
type RuntimeStats struct {
	thresholds Thresholds

	current atomic.Pointer[Metrics]

	peakMemory     atomic.Uint64
	peakGoroutines atomic.Int64
}

// NewRuntimeStats creates runtime stats checked against t
func NewRuntimeStats(t Thresholds) *RuntimeStats {
	return &RuntimeStats{thresholds: t}
}

// Sample reads the runtime and stores the result
func (s *RuntimeStats) Sample() Metrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	m := Metrics{
		Memory:     memStats.Alloc,
		Goroutines: runtime.NumGoroutine(),
		HeapSys:    memStats.HeapSys,
		HeapIdle:   memStats.HeapIdle,
		GCCount:    memStats.NumGC,
		GCPause:    memStats.PauseTotalNs,
		SampledAt:  time.Now(),
	}
	s.current.Store(&m)

	for {
		peak := s.peakMemory.Load()
		if m.Memory <= peak || s.peakMemory.CompareAndSwap(peak, m.Memory) {
			break
		}
	}
	for {
		peak := s.peakGoroutines.Load()
		if int64(m.Goroutines) <= peak || s.peakGoroutines.CompareAndSwap(peak, int64(m.Goroutines)) {
			break
		}
	}
	return m
}

// GetMetrics returns the latest sample, taking one if none exists
func (s *RuntimeStats) GetMetrics() Metrics {
	if m := s.current.Load(); m != nil {
		return *m
	}
	return s.Sample()
}

// GetPeakUsage gets peak runtime usage
func (s *RuntimeStats) GetPeakUsage() Metrics {
	return Metrics{
		Memory:     s.peakMemory.Load(),
		Goroutines: int(s.peakGoroutines.Load()),
	}
}

// CheckThresholds checks if the latest sample exceeds thresholds
func (s *RuntimeStats) CheckThresholds() []error {
	m := s.GetMetrics()

	var errs []error
	if s.thresholds.MaxMemory > 0 && m.Memory > s.thresholds.MaxMemory {
		errs = append(errs, fmt.Errorf("memory usage exceeded: %d > %d", m.Memory, s.thresholds.MaxMemory))
	}
	if s.thresholds.MaxGoroutines > 0 && m.Goroutines > s.thresholds.MaxGoroutines {
		errs = append(errs, fmt.Errorf("goroutine count exceeded: %d > %d", m.Goroutines, s.thresholds.MaxGoroutines))
	}
	return errs
}

// Reset resets peak usage metrics
func (s *RuntimeStats) Reset() {
	s.peakMemory.Store(0)
	s.peakGoroutines.Store(0)
}
