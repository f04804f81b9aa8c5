package regionpool_test

import (
	"testing"

	"github.com/cellarius-io/regionpool"
)

func TestRegistryEndToEnd(t *testing.T) {
	reg := regionpool.NewRegistry()

	if err := reg.Init(regionpool.NewSystemAllocator()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	defer func() {
		if err := reg.Shutdown(); err != nil {
			t.Fatalf("Shutdown: %v", err)
		}
	}()

	h, err := reg.Open(256, regionpool.BestFit)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	a, err := reg.Alloc(h, 64)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}

	segs, err := reg.Inspect(h)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}

	if len(segs) != 2 || segs[0].Size != 64 || !segs[0].Allocated {
		t.Fatalf("Inspect = %+v, want a 64-byte allocated segment first", segs)
	}

	if err := reg.Free(h, a); err != nil {
		t.Fatalf("Free: %v", err)
	}

	if err := reg.Close(h); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestDirectPoolWithoutRegistry(t *testing.T) {
	p, err := regionpool.Open(regionpool.NewSystemAllocator(), 64, regionpool.FirstFit)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	a, err := regionpool.Alloc(p, 16)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}

	if err := regionpool.Free(p, a); err != nil {
		t.Fatalf("Free: %v", err)
	}

	if err := regionpool.Close(p); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
