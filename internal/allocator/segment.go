package allocator

import "fmt"

// noSlot marks the absence of a neighbor or a node-heap reference.
const noSlot int32 = -1

// segNode is one node-heap record: a segment's geometry plus its address-
// ordered neighbors, expressed as stable slot indices rather than pointers
// so that growing the backing vector never invalidates a live reference.
type segNode struct {
	offset    int
	size      int
	allocated bool
	used      bool
	prev      int32
	next      int32
}

// Segment is a read-only snapshot of one segment's geometry.
type Segment struct {
	Offset    int
	Size      int
	Allocated bool
}

// nodeHeap is the node-heap vector, indexed by int32 slot.
type nodeHeap struct{ *Vector[segNode] }

func (h nodeHeap) At(slot int32) segNode { return h.Vector.At(int(slot)) }

func (h nodeHeap) Set(slot int32, n segNode) { h.Vector.Set(int(slot), n) }

// SegmentList is the node heap plus the address-ordered doubly-linked
// segment list over it. Segment identity is the node-heap slot index,
// stable across heap growth.
type SegmentList struct {
	heap      nodeHeap
	freeSlots []int32
	usedNodes int
	head      int32
}

// NewSegmentList creates a segment list covering [0, totalSize) as a
// single free segment occupying slot 0.
func NewSegmentList(heapConfig VectorConfig, totalSize int) (*SegmentList, error) {
	sl := &SegmentList{
		heap: nodeHeap{NewVector[segNode](heapConfig)},
		head: noSlot,
	}

	slot, err := sl.acquireSlot()
	if err != nil {
		return nil, fmt.Errorf("segment list: initial slot: %w", err)
	}

	sl.heap.Set(slot, segNode{
		offset: 0,
		size:   totalSize,
		used:   true,
		prev:   noSlot,
		next:   noSlot,
	})
	sl.head = slot

	return sl, nil
}

// UsedNodes reports how many slots currently belong to the segment list.
func (sl *SegmentList) UsedNodes() int { return sl.usedNodes }

// Head returns the first segment in address order.
func (sl *SegmentList) Head() int32 { return sl.head }

// Next returns slot's successor in address order, or noSlot at the tail.
func (sl *SegmentList) Next(slot int32) int32 { return sl.heap.At(slot).next }

// Prev returns slot's predecessor in address order, or noSlot at the head.
func (sl *SegmentList) Prev(slot int32) int32 { return sl.heap.At(slot).prev }

// Offset returns slot's starting byte offset.
func (sl *SegmentList) Offset(slot int32) int { return sl.heap.At(slot).offset }

// Size returns slot's byte length.
func (sl *SegmentList) Size(slot int32) int { return sl.heap.At(slot).size }

// IsAllocated reports whether slot is currently allocated.
func (sl *SegmentList) IsAllocated(slot int32) bool { return sl.heap.At(slot).allocated }

// Segment returns a read-only snapshot of slot's geometry.
func (sl *SegmentList) Segment(slot int32) Segment {
	n := sl.heap.At(slot)

	return Segment{Offset: n.offset, Size: n.size, Allocated: n.allocated}
}

// Walk returns every segment from head to tail, in address order.
func (sl *SegmentList) Walk() []Segment {
	out := make([]Segment, 0, sl.usedNodes)

	for slot := sl.head; slot != noSlot; slot = sl.Next(slot) {
		out = append(out, sl.Segment(slot))
	}

	return out
}

func (sl *SegmentList) acquireSlot() (int32, error) {
	if n := len(sl.freeSlots); n > 0 {
		slot := sl.freeSlots[n-1]
		sl.freeSlots = sl.freeSlots[:n-1]
		sl.usedNodes++

		return slot, nil
	}

	idx, err := sl.heap.Append(segNode{prev: noSlot, next: noSlot})
	if err != nil {
		return noSlot, err
	}

	sl.usedNodes++

	return int32(idx), nil
}

func (sl *SegmentList) releaseSlot(slot int32) {
	sl.heap.Set(slot, segNode{prev: noSlot, next: noSlot})
	sl.freeSlots = append(sl.freeSlots, slot)
	sl.usedNodes--
}

// Split shrinks the free segment at slot to size k and marks it allocated.
// If a non-zero residue remains, a fresh node slot is acquired for it,
// spliced in immediately after slot, and its index is returned. Split
// fails, leaving slot untouched, only if a residue slot is needed but the
// node heap could not grow to provide one.
func (sl *SegmentList) Split(slot int32, k int) (residueSlot int32, hasResidue bool, err error) {
	n := sl.heap.At(slot)
	residue := n.size - k

	n.size = k
	n.allocated = true

	if residue <= 0 {
		sl.heap.Set(slot, n)

		return noSlot, false, nil
	}

	rSlot, err := sl.acquireSlot()
	if err != nil {
		return noSlot, false, fmt.Errorf("segment list: split residue: %w", err)
	}

	sl.heap.Set(rSlot, segNode{
		offset: n.offset + k,
		size:   residue,
		used:   true,
		prev:   slot,
		next:   n.next,
	})

	if n.next != noSlot {
		next := sl.heap.At(n.next)
		next.prev = rSlot
		sl.heap.Set(n.next, next)
	}

	n.next = rSlot
	sl.heap.Set(slot, n)

	return rSlot, true, nil
}

// MarkFree flips slot's allocated flag to false. The caller is responsible
// for the gap-index bookkeeping and coalescing this implies.
func (sl *SegmentList) MarkFree(slot int32) {
	n := sl.heap.At(slot)
	n.allocated = false
	sl.heap.Set(slot, n)
}

func (sl *SegmentList) unlink(slot int32) {
	n := sl.heap.At(slot)

	if n.prev != noSlot {
		prev := sl.heap.At(n.prev)
		prev.next = n.next
		sl.heap.Set(n.prev, prev)
	} else {
		sl.head = n.next
	}

	if n.next != noSlot {
		next := sl.heap.At(n.next)
		next.prev = n.prev
		sl.heap.Set(n.next, next)
	}
}

// MergeForward merges slot's successor into slot, provided the successor
// exists and is free: the successor's bytes are absorbed into slot, the
// successor is unlinked, and its node slot is released. It reports the
// released slot (so the caller can remove it from the gap index) and
// whether a merge happened.
func (sl *SegmentList) MergeForward(slot int32) (removedSlot int32, merged bool) {
	next := sl.Next(slot)
	if next == noSlot || sl.IsAllocated(next) {
		return noSlot, false
	}

	nextSize := sl.Size(next)
	sl.unlink(next)
	sl.releaseSlot(next)

	n := sl.heap.At(slot)
	n.size += nextSize
	sl.heap.Set(slot, n)

	return next, true
}

// MergeBackward merges slot into its predecessor, provided the predecessor
// exists and is free: slot's bytes are absorbed into the predecessor, slot
// is unlinked, and its node slot is released. It returns the surviving
// slot (the predecessor) and whether a merge happened; if none happened,
// slot itself is returned unchanged.
func (sl *SegmentList) MergeBackward(slot int32) (survivor int32, merged bool) {
	prev := sl.Prev(slot)
	if prev == noSlot || sl.IsAllocated(prev) {
		return slot, false
	}

	size := sl.Size(slot)
	sl.unlink(slot)
	sl.releaseSlot(slot)

	p := sl.heap.At(prev)
	p.size += size
	sl.heap.Set(prev, p)

	return prev, true
}
