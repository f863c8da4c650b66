package prof

import (
	"os"
	"runtime"
	"runtime/pprof"
	"sync"

	"github.com/pkg/errors"
)

// CPU profiling state. The runtime supports one active CPU profile per
// process.
var (
	cpuMu     sync.Mutex
	cpuFile   *os.File
	cpuActive bool
)

// ErrCPUActive indicates a CPU profile is already being collected.
var ErrCPUActive = errors.New("cpu profile already active")

// StartCPU begins CPU profiling into the file at path.
func StartCPU(path string) error {
	cpuMu.Lock()
	defer cpuMu.Unlock()

	if cpuActive {
		return ErrCPUActive
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create cpu profile")
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return errors.Wrap(err, "start cpu profile")
	}
	cpuFile = f
	cpuActive = true
	return nil
}

// StopCPU stops CPU profiling and closes the profile file. Safe to
// call when profiling is not active.
func StopCPU() {
	cpuMu.Lock()
	defer cpuMu.Unlock()

	if !cpuActive {
		return
	}
	pprof.StopCPUProfile()
	cpuFile.Close()
	cpuFile = nil
	cpuActive = false
}

// WriteHeap writes a heap profile to the file at path, running a GC
// first so the profile reflects live allocations.
func WriteHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create heap profile")
	}
	defer f.Close()

	runtime.GC()
	return errors.Wrap(pprof.WriteHeapProfile(f), "write heap profile")
}
