package value

import (
	"sync/atomic"

	"github.com/funvibe/strata/internal/typesystem"
)

// Heap accounts for the slots handed out by strategy lifecycles.
// A nil *Heap is valid and behaves as an unlimited heap that tracks nothing.
type Heap struct {
	limit int64 // 0 = unlimited
	used  atomic.Int64
	live  atomic.Int64
}

// NewHeap creates a heap that refuses allocations beyond limit bytes.
// A limit of 0 disables the check.
func NewHeap(limit int64) *Heap {
	return &Heap{limit: limit}
}

// Alloc returns a zero-initialized slot of type t charged size bytes.
// It fails with OutOfMemory, leaving the heap unchanged, if the charge
// would exceed the limit.
func (h *Heap) Alloc(t typesystem.TypeID, size int) (*Slot, error) {
	if size < 0 {
		return nil, typesystem.Errorf(typesystem.KindOutOfMemory, "alloc", t.String(), "negative size %d", size)
	}
	if h != nil {
		n := int64(size)
		for {
			used := h.used.Load()
			if h.limit > 0 && used+n > h.limit {
				return nil, typesystem.Errorf(typesystem.KindOutOfMemory, "alloc", t.String(),
					"%d bytes requested, %d of %d in use", n, used, h.limit)
			}
			if h.used.CompareAndSwap(used, used+n) {
				break
			}
		}
		h.live.Add(1)
	}
	return &Slot{Type: t, size: size, heap: h}, nil
}

// Resize changes the charge of a live slot to size bytes. Growing past the
// limit fails with OutOfMemory and leaves the slot's charge unchanged.
// Shrinking always succeeds.
func (h *Heap) Resize(s *Slot, size int) error {
	if s == nil {
		return typesystem.NewError(typesystem.KindInvalidPointer, "resize", "")
	}
	if size < 0 {
		return typesystem.Errorf(typesystem.KindOutOfMemory, "resize", s.Type.String(), "negative size %d", size)
	}
	if h == nil || s.released.Load() {
		s.size = size
		return nil
	}
	delta := int64(size - s.size)
	for {
		used := h.used.Load()
		if delta > 0 && h.limit > 0 && used+delta > h.limit {
			return typesystem.Errorf(typesystem.KindOutOfMemory, "resize", s.Type.String(),
				"%d more bytes requested, %d of %d in use", delta, used, h.limit)
		}
		if h.used.CompareAndSwap(used, used+delta) {
			break
		}
	}
	s.size = size
	return nil
}

// Release returns the slot's charge to the heap. The slot must not be used afterwards.
func (h *Heap) Release(s *Slot) {
	if h == nil || s == nil || !s.released.CompareAndSwap(false, true) {
		return
	}
	h.used.Add(-int64(s.size))
	h.live.Add(-1)
}

// Used returns the bytes currently charged.
func (h *Heap) Used() int64 {
	if h == nil {
		return 0
	}
	return h.used.Load()
}

// Live returns the number of slots allocated and not yet released.
func (h *Heap) Live() int64 {
	if h == nil {
		return 0
	}
	return h.live.Load()
}

// Limit returns the configured byte limit, 0 if unlimited.
func (h *Heap) Limit() int64 {
	if h == nil {
		return 0
	}
	return h.limit
}
