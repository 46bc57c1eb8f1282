package object

import (
	"runtime"
	"runtime/debug"
)

// PointSize is the memory used by one plotted point (x and y float64).
const PointSize = 16

// FreeMemory returns the memory left before GOMEMLIMIT, in bytes.
// Can be negative.
func FreeMemory() int64 {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	currentAlloc := memStats.HeapAlloc
	gomemlimit := debug.SetMemoryLimit(-1)
	return gomemlimit - int64(currentAlloc) //nolint:gosec // HeapAlloc fits.
}

// SizeOk tells whether n elements of elemSize bytes fit in the free memory.
// Small requests aren't checked.
func SizeOk(n int, elemSize int64) (bool, int64) {
	if n <= 4096 {
		return true, 0
	}
	free := FreeMemory()
	ok := free >= 0 && int64(n) <= free/elemSize
	if !ok {
		runtime.GC()
		free = FreeMemory()
		ok = free >= 0 && int64(n) <= free/elemSize
	}
	return ok, free
}
