package allocator

import (
	"sync"

	"github.com/cellarius-io/regionpool/internal/allocerr"
)

func registryConfig() VectorConfig {
	return VectorConfig{InitialCapacity: 20, FillFactor: 0.75, ExpandFactor: 2}
}

// Handle identifies a pool within a Registry. It remains valid for the
// pool's lifetime; once closed it is never reassigned to a different
// pool (see §9: the registry only grows).
type Handle int

// Registry is a process-wide-in-spirit, but explicitly instantiated,
// table of open pools. Threading an explicit *Registry through callers
// (rather than a package-level singleton) avoids a hidden global while
// keeping the same init/open/close contract.
type Registry struct {
	mu        sync.Mutex
	allocator Allocator
	slots     *Vector[*Pool]
}

// NewRegistry constructs an uninitialized Registry; Init must run before
// any Open.
func NewRegistry() *Registry {
	return &Registry{}
}

// Init prepares r to accept Open calls, using allocator as the host
// allocator for every pool it opens. It fails with CalledAgain if r is
// already initialized.
func (r *Registry) Init(allocator Allocator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.allocator != nil {
		return allocerr.New(allocerr.CalledAgain, "Init", "registry already initialized")
	}

	r.allocator = allocator
	r.slots = NewVector[*Pool](registryConfig())

	return nil
}

// Shutdown tears down r. It fails with CalledAgain if r was never
// initialized or has already been shut down. Per §6, callers must
// ensure no pool is open first; Shutdown does not check this itself.
func (r *Registry) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.allocator == nil {
		return allocerr.New(allocerr.CalledAgain, "Shutdown", "registry not initialized")
	}

	r.allocator = nil
	r.slots = nil

	return nil
}

func (r *Registry) lookup(h Handle) (*Pool, bool) {
	if r.slots == nil || int(h) < 0 || int(h) >= r.slots.Len() {
		return nil, false
	}

	p := r.slots.At(int(h))

	return p, p != nil
}

// Open opens a new pool of size bytes under policy and returns its
// handle.
func (r *Registry) Open(size int, policy Policy, opts ...PoolOption) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.allocator == nil {
		return -1, allocerr.New(allocerr.Fail, "Open", "registry not initialized")
	}

	p, err := Open(r.allocator, size, policy, opts...)
	if err != nil {
		return -1, err
	}

	idx, err := r.slots.Append(p)
	if err != nil {
		_ = Close(p)

		return -1, allocerr.New(allocerr.Fail, "Open", "registry slot growth failed: %v", err)
	}

	return Handle(idx), nil
}

// Close closes the pool identified by h and clears its slot. Closed
// slots are left null rather than reused (§9); calling Close again on
// the same handle reports CalledAgain.
func (r *Registry) Close(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.allocator == nil {
		return allocerr.New(allocerr.Fail, "Close", "registry not initialized")
	}

	p, ok := r.lookup(h)
	if !ok {
		return allocerr.New(allocerr.CalledAgain, "Close", "pool handle %d already closed or unknown", h)
	}

	if err := Close(p); err != nil {
		return err
	}

	r.slots.Set(int(h), nil)

	return nil
}

// Alloc allocates size bytes from the pool identified by h.
func (r *Registry) Alloc(h Handle, size int) (*Allocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.lookup(h)
	if !ok {
		return nil, allocerr.New(allocerr.Fail, "Alloc", "unknown pool handle %d", h)
	}

	return Alloc(p, size)
}

// Free returns a to the pool identified by h.
func (r *Registry) Free(h Handle, a *Allocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.lookup(h)
	if !ok {
		return allocerr.New(allocerr.Fail, "Free", "unknown pool handle %d", h)
	}

	return Free(p, a)
}

// Inspect returns a snapshot of the segment list of the pool identified
// by h.
func (r *Registry) Inspect(h Handle) ([]Segment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.lookup(h)
	if !ok {
		return nil, allocerr.New(allocerr.Fail, "Inspect", "unknown pool handle %d", h)
	}

	return Inspect(p), nil
}

// Handles enumerates the handles of every pool currently open in r, in
// ascending order. This supplements the spec's registry contract for
// diagnostic enumeration (e.g. a demo CLI listing open pools).
func (r *Registry) Handles() []Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slots == nil {
		return nil
	}

	out := make([]Handle, 0, r.slots.Len())

	for i := 0; i < r.slots.Len(); i++ {
		if r.slots.At(i) != nil {
			out = append(out, Handle(i))
		}
	}

	return out
}
