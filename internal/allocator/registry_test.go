package allocator

import (
	"errors"
	"testing"

	"github.com/cellarius-io/regionpool/internal/allocerr"
)

func TestRegistryInitShutdownLifecycle(t *testing.T) {
	r := NewRegistry()

	if err := r.Init(newTestAllocator()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if err := r.Init(newTestAllocator()); !errors.Is(err, allocerr.ErrCalledAgain) {
		t.Fatalf("second Init: err = %v, want CalledAgain", err)
	}

	if err := r.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if err := r.Shutdown(); !errors.Is(err, allocerr.ErrCalledAgain) {
		t.Fatalf("second Shutdown: err = %v, want CalledAgain", err)
	}
}

func TestRegistryOpenCloseRoundTrip(t *testing.T) {
	r := NewRegistry()
	_ = r.Init(newTestAllocator())

	h, err := r.Open(64, FirstFit)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	a, err := r.Alloc(h, 16)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}

	if err := r.Free(h, a); err != nil {
		t.Fatalf("Free: %v", err)
	}

	if err := r.Close(h); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := r.Close(h); !errors.Is(err, allocerr.ErrCalledAgain) {
		t.Fatalf("second Close: err = %v, want CalledAgain", err)
	}
}

func TestRegistryClosedSlotsAreNeverReused(t *testing.T) {
	r := NewRegistry()
	_ = r.Init(newTestAllocator())

	h1, _ := r.Open(32, FirstFit)
	_ = r.Close(h1)

	h2, _ := r.Open(32, FirstFit)
	if h2 == h1 {
		t.Fatalf("Open after Close reused handle %d; handles must never be reassigned", h1)
	}

	handles := r.Handles()
	if len(handles) != 1 || handles[0] != h2 {
		t.Fatalf("Handles() = %v, want only %v (the still-open pool)", handles, h2)
	}
}

func TestRegistryOperationsRequireInit(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Open(16, FirstFit); !errors.Is(err, allocerr.ErrFail) {
		t.Fatalf("Open before Init: err = %v, want Fail", err)
	}
}
