package allocator

import (
	"errors"
	"testing"

	"github.com/cellarius-io/regionpool/internal/allocerr"
)

func newTestAllocator() *SystemAllocator {
	return NewSystemAllocator(WithAlignment(1))
}

func segSizes(segs []Segment) []int {
	out := make([]int, len(segs))
	for i, s := range segs {
		out[i] = s.Size
	}

	return out
}

// S1: two allocations fill a 100-byte pool exactly; no gaps remain.
func TestScenarioS1FillsPoolExactly(t *testing.T) {
	p, err := Open(newTestAllocator(), 100, FirstFit)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := Alloc(p, 40); err != nil {
		t.Fatalf("Alloc(40): %v", err)
	}

	if _, err := Alloc(p, 60); err != nil {
		t.Fatalf("Alloc(60): %v", err)
	}

	got := Inspect(p)
	if len(got) != 2 || got[0].Size != 40 || !got[0].Allocated || got[1].Size != 60 || !got[1].Allocated {
		t.Fatalf("Inspect = %+v, want [(40 true) (60 true)]", got)
	}

	st := p.Stats()
	if st.NumGaps != 0 || st.AllocSize != 100 {
		t.Fatalf("Stats = %+v, want NumGaps=0 AllocSize=100", st)
	}
}

// S2/S3: freeing both allocations coalesces back to a single whole gap.
func TestScenarioS2S3FreeCoalescesFully(t *testing.T) {
	p, _ := Open(newTestAllocator(), 100, FirstFit)

	a1, _ := Alloc(p, 40)
	a2, _ := Alloc(p, 60)

	if err := Free(p, a1); err != nil {
		t.Fatalf("Free(a1): %v", err)
	}

	got := Inspect(p)
	if len(got) != 2 || got[0] != (Segment{Offset: 0, Size: 40, Allocated: false}) || got[1].Size != 60 || !got[1].Allocated {
		t.Fatalf("Inspect after Free(a1) = %+v", got)
	}

	if p.Stats().NumGaps != 1 {
		t.Fatalf("NumGaps = %d, want 1", p.Stats().NumGaps)
	}

	if err := Free(p, a2); err != nil {
		t.Fatalf("Free(a2): %v", err)
	}

	got = Inspect(p)
	if len(got) != 1 || got[0] != (Segment{Offset: 0, Size: 100, Allocated: false}) {
		t.Fatalf("Inspect after both frees = %+v, want single whole gap", got)
	}

	if p.Stats().NumGaps != 1 {
		t.Fatalf("NumGaps = %d, want 1 after full coalesce", p.Stats().NumGaps)
	}
}

// S4: best-fit prefers the 10-byte gap left by a freed middle
// allocation over the larger trailing gap.
func TestScenarioS4BestFitPrefersSmallerGap(t *testing.T) {
	p, _ := Open(newTestAllocator(), 100, BestFit)

	a, _ := Alloc(p, 10)
	b, _ := Alloc(p, 10)
	c, _ := Alloc(p, 10)

	if err := Free(p, b); err != nil {
		t.Fatalf("Free(b): %v", err)
	}

	d, err := Alloc(p, 5)
	if err != nil {
		t.Fatalf("Alloc(5): %v", err)
	}

	if d.Offset != a.Offset+a.Size {
		t.Fatalf("d.Offset = %d, want %d (the gap left by b)", d.Offset, a.Offset+a.Size)
	}

	got := Inspect(p)
	wantSizes := []int{10, 5, 5, 10, 70}
	if !equalInts(segSizes(got), wantSizes) {
		t.Fatalf("Inspect sizes = %v, want %v", segSizes(got), wantSizes)
	}

	_ = c
}

// S5: first-fit reuses the address of a freed earlier allocation.
func TestScenarioS5FirstFitReusesFreedAddress(t *testing.T) {
	p, _ := Open(newTestAllocator(), 100, FirstFit)

	a, _ := Alloc(p, 10)
	_, _ = Alloc(p, 10)

	if err := Free(p, a); err != nil {
		t.Fatalf("Free(a): %v", err)
	}

	c, err := Alloc(p, 10)
	if err != nil {
		t.Fatalf("Alloc(10): %v", err)
	}

	if c.Offset != a.Offset {
		t.Fatalf("c.Offset = %d, want %d (a's freed address)", c.Offset, a.Offset)
	}
}

// S6: close refuses NotFreed while a live allocation remains, then
// succeeds once it is freed.
func TestScenarioS6CloseRequiresFullyFreed(t *testing.T) {
	p, _ := Open(newTestAllocator(), 100, FirstFit)

	a, _ := Alloc(p, 100)

	err := Close(p)
	if !errors.Is(err, allocerr.ErrNotFreed) {
		t.Fatalf("Close with live allocation: err = %v, want NotFreed", err)
	}

	if err := Free(p, a); err != nil {
		t.Fatalf("Free: %v", err)
	}

	if err := Close(p); err != nil {
		t.Fatalf("Close after Free: %v", err)
	}
}

// S7: an allocation that cannot fit leaves the pool's state unchanged
// and reports NotFound.
func TestScenarioS7NoFittingGapLeavesStateUnchanged(t *testing.T) {
	p, _ := Open(newTestAllocator(), 100, FirstFit)

	if _, err := Alloc(p, 60); err != nil {
		t.Fatalf("Alloc(60): %v", err)
	}

	before := p.Stats()
	beforeInspect := Inspect(p)

	if _, err := Alloc(p, 50); !errors.Is(err, allocerr.ErrNotFound) {
		t.Fatalf("Alloc(50) on an 40-byte remaining pool: err = %v, want NotFound", err)
	}

	after := p.Stats()
	if before != after {
		t.Fatalf("Stats changed after failed Alloc: before=%+v after=%+v", before, after)
	}

	if !equalSegments(beforeInspect, Inspect(p)) {
		t.Fatal("segment list changed after failed Alloc")
	}
}

func TestAllocRejectsNonPositiveSize(t *testing.T) {
	p, _ := Open(newTestAllocator(), 10, FirstFit)

	if _, err := Alloc(p, 0); !errors.Is(err, allocerr.ErrFail) {
		t.Fatalf("Alloc(0): err = %v, want Fail", err)
	}
}

func TestFreeRejectsUnknownHandle(t *testing.T) {
	p, _ := Open(newTestAllocator(), 10, FirstFit)
	a, _ := Alloc(p, 10)

	if err := Free(p, a); err != nil {
		t.Fatalf("first Free: %v", err)
	}

	if err := Free(p, a); !errors.Is(err, allocerr.ErrFail) {
		t.Fatalf("second Free of the same handle: err = %v, want Fail", err)
	}
}

func TestAllocFreeRoundTripRestoresState(t *testing.T) {
	p, _ := Open(newTestAllocator(), 256, BestFit)

	before := p.Stats()
	beforeInspect := Inspect(p)

	a, err := Alloc(p, 64)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}

	if err := Free(p, a); err != nil {
		t.Fatalf("Free: %v", err)
	}

	if p.Stats() != before {
		t.Fatalf("Stats after round-trip = %+v, want %+v", p.Stats(), before)
	}

	if !equalSegments(beforeInspect, Inspect(p)) {
		t.Fatal("segment list after round-trip does not match the pre-alloc state")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func equalSegments(a, b []Segment) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
