package strategy

import (
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

// Lifecycle is the per-type set of storage callbacks. All four are required.
//
// Free must state whether it is shallow or deep. Reference-like types
// release only the slot holding the handle; the referenced object is owned
// elsewhere and must not be touched, or it will be leaked or freed twice.
type Lifecycle struct {
	// Alloc returns zero-initialized storage for one value.
	Alloc func(h *value.Heap) (*value.Slot, error)
	// Free releases the storage and clears the caller's pointer to it.
	Free func(h *value.Heap, slot **value.Slot) error
	// InitSize is the size of a freshly allocated value.
	InitSize func() int
	// CurrentSize is the size occupied by a live value.
	CurrentSize func(slot *value.Slot) int
}

// Complete reports whether every callback is set.
func (l Lifecycle) Complete() bool {
	return l.Alloc != nil && l.Free != nil && l.InitSize != nil && l.CurrentSize != nil
}

func (l Lifecycle) check(op, name string) error {
	var missing []string
	if l.Alloc == nil {
		missing = append(missing, "alloc")
	}
	if l.Free == nil {
		missing = append(missing, "free")
	}
	if l.InitSize == nil {
		missing = append(missing, "init_size")
	}
	if l.CurrentSize == nil {
		missing = append(missing, "current_size")
	}
	if len(missing) > 0 {
		return typesystem.Errorf(typesystem.KindIncompleteLifecycle, op, name, "missing %v", missing)
	}
	return nil
}

// FixedLifecycle builds the callbacks of a fixed-width type whose slots are
// always charged size bytes. Free is shallow: it drops the slot and its
// handle, never the referenced object.
func FixedLifecycle(t typesystem.TypeID, size int) Lifecycle {
	return Lifecycle{
		Alloc: func(h *value.Heap) (*value.Slot, error) {
			return h.Alloc(t, size)
		},
		Free: func(h *value.Heap, slot **value.Slot) error {
			if s := *slot; s != nil {
				s.Ref = nil
				s.Buf = nil
				h.Release(s)
				*slot = nil
			}
			return nil
		},
		InitSize: func() int {
			return size
		},
		CurrentSize: func(*value.Slot) int {
			return size
		},
	}
}
