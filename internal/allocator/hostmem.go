// Package allocator implements the region allocator: a fixed-base,
// variable-sized memory-pool manager that carves user-requested
// sub-allocations out of caller-owned byte regions.
//
// The package is organized the way the spec separates concerns: a host
// allocator interface for acquiring/releasing backing byte regions
// (hostmem.go), a growable dynamic vector with fill-factor expansion
// (vector.go), a node heap plus address-ordered segment list
// (segment.go), a size-ordered gap index (gapindex.go), and the pool
// manager that ties them together into the allocation state machine
// (pool.go). An explicitly constructed pool registry lives in registry.go.
package allocator

import (
	"fmt"
	"sync"
)

// Allocator is the host allocator interface: the small boundary through
// which a pool manager acquires and releases its backing byte region. The
// pool never reads or writes the bytes it receives — it only tracks their
// layout.
type Allocator interface {
	// AllocateBytes returns a freshly acquired buffer of at least size
	// bytes. size must be > 0.
	AllocateBytes(size int) ([]byte, error)
	// FreeBytes releases a buffer previously returned by AllocateBytes or
	// ResizeBytes.
	FreeBytes(buf []byte) error
	// ResizeBytes grows or shrinks buf to newSize, returning the
	// (possibly relocated) buffer.
	ResizeBytes(buf []byte, newSize int) ([]byte, error)
	// TotalAllocated reports the cumulative bytes handed out.
	TotalAllocated() int
	// TotalFreed reports the cumulative bytes released.
	TotalFreed() int
}

// Config configures a host Allocator.
type Config struct {
	// AlignmentSize rounds every AllocateBytes/ResizeBytes request up to
	// the nearest multiple of this many bytes. Must be a power of two.
	AlignmentSize int
	// MemoryLimit caps the bytes a SystemAllocator will hand out at once.
	// Zero disables the limit.
	MemoryLimit int
	// EnableTracking keeps a live map of outstanding buffers so FreeBytes
	// can validate its argument and report accurate stats.
	EnableTracking bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the Config a SystemAllocator uses absent overrides.
func DefaultConfig() *Config {
	return &Config{
		AlignmentSize:  8,
		MemoryLimit:    0,
		EnableTracking: true,
	}
}

// WithAlignment overrides the alignment of a Config.
func WithAlignment(alignment int) Option {
	return func(c *Config) { c.AlignmentSize = alignment }
}

// WithMemoryLimit overrides the memory ceiling of a Config.
func WithMemoryLimit(limit int) Option {
	return func(c *Config) { c.MemoryLimit = limit }
}

// WithTracking toggles live-allocation tracking.
func WithTracking(enabled bool) Option {
	return func(c *Config) { c.EnableTracking = enabled }
}

// SystemAllocator is the default Allocator: a thin, tracked wrapper around
// Go's own allocator (make([]byte, n)).
type SystemAllocator struct {
	config *Config

	mu             sync.RWMutex
	live           map[*byte]int
	totalAllocated int
	totalFreed     int
}

// NewSystemAllocator builds a SystemAllocator from the given options.
func NewSystemAllocator(options ...Option) *SystemAllocator {
	config := DefaultConfig()
	for _, opt := range options {
		opt(config)
	}

	return &SystemAllocator{
		config: config,
		live:   make(map[*byte]int),
	}
}

func alignUp(size, alignment int) int {
	if alignment <= 0 {
		return size
	}

	return (size + alignment - 1) &^ (alignment - 1)
}

// AllocateBytes implements Allocator.
func (sa *SystemAllocator) AllocateBytes(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("allocator: allocate size must be > 0, got %d", size)
	}

	aligned := alignUp(size, sa.config.AlignmentSize)

	if sa.config.MemoryLimit > 0 {
		sa.mu.RLock()
		inUse := sa.totalAllocated - sa.totalFreed
		sa.mu.RUnlock()

		if inUse+aligned > sa.config.MemoryLimit {
			return nil, fmt.Errorf("allocator: memory limit exceeded: %d + %d > %d", inUse, aligned, sa.config.MemoryLimit)
		}
	}

	buf := make([]byte, aligned)

	sa.mu.Lock()
	if sa.config.EnableTracking {
		sa.live[&buf[0]] = len(buf)
	}
	sa.totalAllocated += len(buf)
	sa.mu.Unlock()

	return buf, nil
}

// FreeBytes implements Allocator.
func (sa *SystemAllocator) FreeBytes(buf []byte) error {
	if len(buf) == 0 {
		return fmt.Errorf("allocator: free of empty buffer")
	}

	key := &buf[0]

	sa.mu.Lock()
	defer sa.mu.Unlock()

	if sa.config.EnableTracking {
		size, ok := sa.live[key]
		if !ok {
			return fmt.Errorf("allocator: free of untracked buffer")
		}

		delete(sa.live, key)
		sa.totalFreed += size

		return nil
	}

	sa.totalFreed += len(buf)

	return nil
}

// ResizeBytes implements Allocator.
func (sa *SystemAllocator) ResizeBytes(buf []byte, newSize int) ([]byte, error) {
	if newSize <= 0 {
		return nil, fmt.Errorf("allocator: resize target must be > 0, got %d", newSize)
	}

	next, err := sa.AllocateBytes(newSize)
	if err != nil {
		return nil, err
	}

	copy(next, buf)

	if len(buf) > 0 {
		if err := sa.FreeBytes(buf); err != nil {
			return nil, err
		}
	}

	return next, nil
}

// TotalAllocated implements Allocator.
func (sa *SystemAllocator) TotalAllocated() int {
	sa.mu.RLock()
	defer sa.mu.RUnlock()

	return sa.totalAllocated
}

// TotalFreed implements Allocator.
func (sa *SystemAllocator) TotalFreed() int {
	sa.mu.RLock()
	defer sa.mu.RUnlock()

	return sa.totalFreed
}
