package allocator

import "fmt"

// gapEntry is one free-segment record in the gap index: its size and
// offset (both copied from the segment list at insertion time) plus the
// node-heap slot it refers back to.
type gapEntry struct {
	size   int
	offset int
	slot   int32
}

// GapIndex is the size-ordered index over free segments. It is kept
// sorted ascending by size, ties broken by ascending offset, so a
// best-fit search is a single linear scan from the front.
type GapIndex struct {
	entries *Vector[gapEntry]
}

// NewGapIndex builds an empty GapIndex with the given growth policy.
func NewGapIndex(config VectorConfig) *GapIndex {
	return &GapIndex{entries: NewVector[gapEntry](config)}
}

// Len reports how many free segments are currently indexed.
func (g *GapIndex) Len() int { return g.entries.Len() }

func gapLess(a, b gapEntry) bool {
	if a.size != b.size {
		return a.size < b.size
	}

	return a.offset < b.offset
}

// Insert records a free segment of the given size and offset, owned by
// slot. The entry is appended and bubbled into sorted position.
func (g *GapIndex) Insert(size, offset int, slot int32) error {
	idx, err := g.entries.Append(gapEntry{size: size, offset: offset, slot: slot})
	if err != nil {
		return fmt.Errorf("gap index: insert: %w", err)
	}

	for idx > 0 {
		cur := g.entries.At(idx)
		prev := g.entries.At(idx - 1)

		if !gapLess(cur, prev) {
			break
		}

		g.entries.Set(idx, prev)
		g.entries.Set(idx-1, cur)
		idx--
	}

	return nil
}

// Remove drops the entry for slot, shifting later entries down to keep
// the index contiguous and sorted. It reports whether slot was found.
func (g *GapIndex) Remove(slot int32) bool {
	pos := -1

	for i := 0; i < g.entries.Len(); i++ {
		if g.entries.At(i).slot == slot {
			pos = i

			break
		}
	}

	if pos < 0 {
		return false
	}

	for i := pos; i < g.entries.Len()-1; i++ {
		g.entries.Set(i, g.entries.At(i+1))
	}

	g.entries.RemoveLast()

	return true
}

// SearchBestFit returns the smallest indexed free segment whose size is
// at least k, preferring the lowest offset among equal sizes. ok is
// false if no segment large enough exists.
func (g *GapIndex) SearchBestFit(k int) (slot int32, ok bool) {
	for i := 0; i < g.entries.Len(); i++ {
		e := g.entries.At(i)
		if e.size >= k {
			return e.slot, true
		}
	}

	return noSlot, false
}
