package profiler

import "runtime"

// RuntimeStats is a snapshot of Go runtime counters shown by debug overlays.
type RuntimeStats struct {
	HeapAlloc  uint64
	Mallocs    uint64
	Goroutines int
	CPUs       int
}

func ReadRuntimeStats() RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeStats{
		HeapAlloc:  m.Alloc,
		Mallocs:    m.Mallocs,
		Goroutines: runtime.NumGoroutine(),
		CPUs:       runtime.NumCPU(),
	}
}
