// Package regionpool is a user-space region allocator: a fixed-base,
// variable-sized memory-pool manager that carves sub-allocations out of
// caller-owned byte regions. It does not read or write the bytes of a
// region; it only tracks their layout.
//
// A Registry must be initialized once before any pool is opened:
//
//	reg := regionpool.NewRegistry()
//	if err := reg.Init(regionpool.NewSystemAllocator()); err != nil { ... }
//	defer reg.Shutdown()
//
//	h, err := reg.Open(4096, regionpool.FirstFit)
//	a, err := reg.Alloc(h, 128)
//	err = reg.Free(h, a)
//	err = reg.Close(h)
package regionpool

import "github.com/cellarius-io/regionpool/internal/allocator"

// Policy selects how Alloc picks among the free segments of a pool.
type Policy = allocator.Policy

const (
	// FirstFit chooses the lowest-address free segment large enough.
	FirstFit = allocator.FirstFit
	// BestFit chooses the smallest free segment large enough, tie-broken
	// by lowest address.
	BestFit = allocator.BestFit
)

// Allocation identifies one live sub-allocation within a pool.
type Allocation = allocator.Allocation

// Segment is a read-only snapshot of one segment's geometry, as
// returned by Inspect.
type Segment = allocator.Segment

// Stats is a read-only snapshot of a pool's bookkeeping counters.
type Stats = allocator.Stats

// Handle identifies an open pool within a Registry.
type Handle = allocator.Handle

// Pool owns one backing byte region plus the segment list and gap
// index describing its layout.
type Pool = allocator.Pool

// PoolOption overrides one of a pool's dynamic-vector growth tunables
// (node heap, gap index) away from the spec's default table.
type PoolOption = allocator.PoolOption

// WithNodeHeapConfig overrides the node heap's growth policy for Open.
func WithNodeHeapConfig(c VectorConfig) PoolOption {
	return allocator.WithNodeHeapConfig(c)
}

// WithGapIndexConfig overrides the gap index's growth policy for Open.
func WithGapIndexConfig(c VectorConfig) PoolOption {
	return allocator.WithGapIndexConfig(c)
}

// VectorConfig parametrizes a dynamic vector's fill-factor growth
// policy (capacity, fill factor, expansion factor).
type VectorConfig = allocator.VectorConfig

// Allocator is the host allocator interface through which a pool
// acquires and releases its backing byte region.
type Allocator = allocator.Allocator

// NewSystemAllocator builds the default Allocator: a thin, tracked
// wrapper around Go's own allocator.
func NewSystemAllocator(options ...allocator.Option) *allocator.SystemAllocator {
	return allocator.NewSystemAllocator(options...)
}

// Registry is a table of open pools with an Init/Shutdown lifecycle.
// It is the caller's explicit alternative to a package-level global:
// construct one with NewRegistry and thread it through every operation.
type Registry = allocator.Registry

// NewRegistry constructs an uninitialized Registry; Init must run
// before any Open.
func NewRegistry() *Registry {
	return allocator.NewRegistry()
}

// Open opens a pool directly against an Allocator, bypassing a
// Registry. Most callers should prefer Registry.Open, which also
// assigns a stable Handle.
func Open(alloc Allocator, size int, policy Policy, opts ...PoolOption) (*Pool, error) {
	return allocator.Open(alloc, size, policy, opts...)
}

// Close closes a pool opened directly via Open.
func Close(p *Pool) error {
	return allocator.Close(p)
}

// Alloc carves a k-byte sub-allocation out of a pool opened directly
// via Open.
func Alloc(p *Pool, k int) (*Allocation, error) {
	return allocator.Alloc(p, k)
}

// Free returns a to a pool opened directly via Open.
func Free(p *Pool, a *Allocation) error {
	return allocator.Free(p, a)
}

// Inspect snapshots the segment list of a pool opened directly via
// Open.
func Inspect(p *Pool) []Segment {
	return allocator.Inspect(p)
}
