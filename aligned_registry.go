package xmem

import (
	"math/bits"
	"sync"
	"unsafe"

	"go.uber.org/atomic"
)

// registryShardBits selects 64 shards.
const registryShardBits = 6

// alignedBlock keeps the Go allocation behind an AlignedMalloc address
// reachable until AlignedFree.
type alignedBlock struct {
	keep any
	size uintptr
}

// registryShard is one lock-striped slice of the registry.
type registryShard struct {
	mu     sync.Mutex
	blocks map[uintptr]alignedBlock

	//lint:ignore U1000 prevents false sharing
	pad [(CacheLineSize - unsafe.Sizeof(struct {
		mu     sync.Mutex
		blocks map[uintptr]alignedBlock
	}{})%CacheLineSize) % CacheLineSize]byte
}

// alignedRegistry maps every live aligned address to its backing
// allocation. It plays the role of the hidden header a C aligned_malloc
// stores in front of the block.
type alignedRegistry struct {
	shards [1 << registryShardBits]registryShard
	live   atomic.Int64
	bytes  atomic.Int64
}

var registry alignedRegistry

// RegistryStats is a snapshot of the live AlignedMalloc blocks.
type RegistryStats struct {
	Blocks int64
	Bytes  int64
}

// AlignedStats returns the number and total size of blocks obtained from
// AlignedMalloc and not yet released with AlignedFree.
func AlignedStats() RegistryStats {
	return RegistryStats{
		Blocks: registry.live.Load(),
		Bytes:  registry.bytes.Load(),
	}
}

func (r *alignedRegistry) shard(addr uintptr) *registryShard {
	h := (addr * hashPrime) >> (bits.UintSize - registryShardBits)
	return &r.shards[h]
}

func (r *alignedRegistry) insert(addr uintptr, b alignedBlock) {
	s := r.shard(addr)
	s.mu.Lock()
	if s.blocks == nil {
		s.blocks = make(map[uintptr]alignedBlock)
	}
	_, dup := s.blocks[addr]
	s.blocks[addr] = b
	s.mu.Unlock()

	Assert(!dup, "address already registered")
	r.live.Inc()
	r.bytes.Add(int64(b.size))
}

func (r *alignedRegistry) remove(addr uintptr) (alignedBlock, bool) {
	s := r.shard(addr)
	s.mu.Lock()
	b, ok := s.blocks[addr]
	if ok {
		delete(s.blocks, addr)
	}
	s.mu.Unlock()

	if ok {
		r.live.Dec()
		r.bytes.Sub(int64(b.size))
	}
	return b, ok
}

func (r *alignedRegistry) contains(addr uintptr) bool {
	s := r.shard(addr)
	s.mu.Lock()
	_, ok := s.blocks[addr]
	s.mu.Unlock()
	return ok
}
