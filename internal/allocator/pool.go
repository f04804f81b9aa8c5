package allocator

import "github.com/cellarius-io/regionpool/internal/allocerr"

// Policy selects how Alloc picks among the free segments of a pool.
type Policy int

const (
	// FirstFit chooses the lowest-address free segment large enough.
	FirstFit Policy = iota
	// BestFit chooses the smallest free segment large enough, tie-broken
	// by lowest address.
	BestFit
)

func (p Policy) String() string {
	switch p {
	case FirstFit:
		return "FirstFit"
	case BestFit:
		return "BestFit"
	default:
		return "Policy(?)"
	}
}

func nodeHeapConfig() VectorConfig {
	return VectorConfig{InitialCapacity: 40, FillFactor: 0.75, ExpandFactor: 2}
}

func gapIndexConfig() VectorConfig {
	return VectorConfig{InitialCapacity: 40, FillFactor: 0.75, ExpandFactor: 2}
}

// openOptions holds Open's tunables, defaulting to the node-heap and
// gap-index sizing above.
type openOptions struct {
	nodeHeap VectorConfig
	gapIndex VectorConfig
}

func defaultOpenOptions() openOptions {
	return openOptions{nodeHeap: nodeHeapConfig(), gapIndex: gapIndexConfig()}
}

// PoolOption overrides one of Open's dynamic-vector tunables.
type PoolOption func(*openOptions)

// WithNodeHeapConfig overrides the node heap's growth policy.
func WithNodeHeapConfig(c VectorConfig) PoolOption {
	return func(o *openOptions) { o.nodeHeap = c }
}

// WithGapIndexConfig overrides the gap index's growth policy.
func WithGapIndexConfig(c VectorConfig) PoolOption {
	return func(o *openOptions) { o.gapIndex = c }
}

// Allocation identifies one live sub-allocation within a Pool. Its
// identity is the underlying segment for the lifetime of the
// allocation; Offset and Size describe its byte range within the
// pool's region.
type Allocation struct {
	Offset int
	Size   int

	slot int32
}

// Stats is a read-only snapshot of a pool's bookkeeping counters.
type Stats struct {
	TotalSize int
	AllocSize int
	NumAllocs int
	NumGaps   int
	Policy    Policy
}

// Pool owns one backing byte region plus the segment list and gap index
// describing its layout, and implements the allocation state machine
// over them.
type Pool struct {
	allocator Allocator
	region    []byte

	segs   *SegmentList
	gaps   *GapIndex
	policy Policy

	totalSize int
	allocSize int
	numAllocs int
}

// Open acquires a backing region of size bytes from allocator and
// initializes it as a single free segment, ready for Alloc. Open is
// transactional: if any step fails, every resource already acquired is
// released before the error is returned.
func Open(allocator Allocator, size int, policy Policy, opts ...PoolOption) (*Pool, error) {
	if size <= 0 {
		return nil, allocerr.New(allocerr.Fail, "Open", "size must be > 0, got %d", size)
	}

	if policy != FirstFit && policy != BestFit {
		return nil, allocerr.New(allocerr.Fail, "Open", "policy must be FirstFit or BestFit")
	}

	options := defaultOpenOptions()
	for _, opt := range opts {
		opt(&options)
	}

	region, err := allocator.AllocateBytes(size)
	if err != nil {
		return nil, allocerr.New(allocerr.Fail, "Open", "backing allocation failed: %v", err)
	}

	segs, err := NewSegmentList(options.nodeHeap, size)
	if err != nil {
		_ = allocator.FreeBytes(region)

		return nil, allocerr.New(allocerr.Fail, "Open", "node heap init failed: %v", err)
	}

	gaps := NewGapIndex(options.gapIndex)
	if err := gaps.Insert(size, 0, segs.Head()); err != nil {
		_ = allocator.FreeBytes(region)

		return nil, allocerr.New(allocerr.Fail, "Open", "gap index init failed: %v", err)
	}

	return &Pool{
		allocator: allocator,
		region:    region,
		segs:      segs,
		gaps:      gaps,
		policy:    policy,
		totalSize: size,
	}, nil
}

// Close releases a pool's backing region, node heap, and gap index. It
// refuses with NotFreed unless every allocation has been freed and
// exactly one gap (the whole region) remains.
func Close(p *Pool) error {
	if p.numAllocs != 0 || p.gaps.Len() != 1 {
		return allocerr.New(allocerr.NotFreed, "Close", "pool has %d live allocations and %d gaps", p.numAllocs, p.gaps.Len())
	}

	if err := p.allocator.FreeBytes(p.region); err != nil {
		return allocerr.New(allocerr.Fail, "Close", "backing release failed: %v", err)
	}

	p.region = nil

	return nil
}

// Alloc carves a k-byte sub-allocation out of p according to its
// policy. It returns NotFound if no free segment is large enough, and
// Fail if node-heap or gap-index growth fails mid-operation.
func Alloc(p *Pool, k int) (*Allocation, error) {
	if k <= 0 {
		return nil, allocerr.New(allocerr.Fail, "Alloc", "size must be > 0, got %d", k)
	}

	if p.gaps.Len() == 0 {
		return nil, allocerr.New(allocerr.NotFound, "Alloc", "pool has no free gap")
	}

	slot, ok := p.selectGap(k)
	if !ok {
		return nil, allocerr.New(allocerr.NotFound, "Alloc", "no gap of size >= %d under %s", k, p.policy)
	}

	if !p.gaps.Remove(slot) {
		return nil, allocerr.New(allocerr.Fail, "Alloc", "selected gap missing from gap index")
	}

	residue, hasResidue, err := p.segs.Split(slot, k)
	if err != nil {
		return nil, allocerr.New(allocerr.Fail, "Alloc", "node heap growth failed: %v", err)
	}

	if hasResidue {
		if err := p.gaps.Insert(p.segs.Size(residue), p.segs.Offset(residue), residue); err != nil {
			return nil, allocerr.New(allocerr.Fail, "Alloc", "gap index growth failed: %v", err)
		}
	}

	p.numAllocs++
	p.allocSize += k

	return &Allocation{Offset: p.segs.Offset(slot), Size: k, slot: slot}, nil
}

// selectGap picks a free segment of size >= k according to p.policy.
// FirstFit scans the segment list in address order rather than the node
// heap in slot order, since the heap itself is not address-ordered
// storage. BestFit defers to the gap index's sorted search.
func (p *Pool) selectGap(k int) (int32, bool) {
	if p.policy == BestFit {
		return p.gaps.SearchBestFit(k)
	}

	for s := p.segs.Head(); s != noSlot; s = p.segs.Next(s) {
		if !p.segs.IsAllocated(s) && p.segs.Size(s) >= k {
			return s, true
		}
	}

	return noSlot, false
}

// Free returns a's bytes to p, coalescing with any free neighbors and
// re-indexing the resulting gap. It fails if a does not identify a
// currently live allocation of this pool.
func Free(p *Pool, a *Allocation) error {
	if a == nil {
		return allocerr.New(allocerr.Fail, "Free", "nil allocation handle")
	}

	seg := p.segs.Segment(a.slot)
	if !seg.Allocated || seg.Offset != a.Offset || seg.Size != a.Size {
		return allocerr.New(allocerr.Fail, "Free", "handle does not identify a live allocation")
	}

	slot := a.slot
	p.segs.MarkFree(slot)
	p.numAllocs--
	p.allocSize -= seg.Size

	if next := p.segs.Next(slot); next != noSlot && !p.segs.IsAllocated(next) {
		p.gaps.Remove(next)
	}

	p.segs.MergeForward(slot)

	if prev := p.segs.Prev(slot); prev != noSlot && !p.segs.IsAllocated(prev) {
		p.gaps.Remove(prev)
	}

	if survivor, merged := p.segs.MergeBackward(slot); merged {
		slot = survivor
	}

	if err := p.gaps.Insert(p.segs.Size(slot), p.segs.Offset(slot), slot); err != nil {
		return allocerr.New(allocerr.Fail, "Free", "gap index growth failed: %v", err)
	}

	return nil
}

// Inspect returns a snapshot of p's segment list from head to tail.
func Inspect(p *Pool) []Segment {
	return p.segs.Walk()
}

// Stats reports p's current bookkeeping counters.
func (p *Pool) Stats() Stats {
	return Stats{
		TotalSize: p.totalSize,
		AllocSize: p.allocSize,
		NumAllocs: p.numAllocs,
		NumGaps:   p.gaps.Len(),
		Policy:    p.policy,
	}
}
