package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStartStopCPU(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.prof")

	if err := StartCPU(path); err != nil {
		t.Fatalf("StartCPU: %v", err)
	}
	if err := StartCPU(path); err != ErrCPUActive {
		t.Errorf("second StartCPU = %v, want ErrCPUActive", err)
	}
	StopCPU()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("profile file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("profile file is empty")
	}

	// Stop is idempotent.
	StopCPU()
}

func TestStartCPU_BadPath(t *testing.T) {
	if err := StartCPU(filepath.Join(t.TempDir(), "no", "such", "dir", "cpu.prof")); err == nil {
		StopCPU()
		t.Fatal("StartCPU into missing directory succeeded")
	}
}

func TestWriteHeap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.prof")
	if err := WriteHeap(path); err != nil {
		t.Fatalf("WriteHeap: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("profile file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("profile file is empty")
	}
}
