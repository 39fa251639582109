package value

import (
	"sync/atomic"

	"github.com/funvibe/strata/internal/typesystem"
)

// Object is anything a reference slot can point at. The slot holds a
// handle to the object, never the object itself; the object's lifetime
// belongs to whichever subsystem created it.
//
// Handles are compared by identity, so implementations must be comparable
// (pointer types in practice).
type Object interface {
	Inspect() string
}

// Slot is the backing storage for one value. It is a tagged union: Type
// names the strategy that owns the slot, and only the payload fields that
// strategy uses are meaningful.
type Slot struct {
	Type typesystem.TypeID
	Bits uint64 // scalars: int32 bits, bool (0/1)
	Ref  Object // reference handle
	Buf  []byte // variable-width or fixed byte payload

	size     int   // bytes currently charged to heap
	heap     *Heap // nil for slots built outside a heap
	released atomic.Bool
}

// Accessors

func (s *Slot) Int32() int32 {
	return int32(uint32(s.Bits))
}

func (s *Slot) SetInt32(v int32) {
	s.Bits = uint64(uint32(v))
}

func (s *Slot) Bool() bool {
	return s.Bits == 1
}

func (s *Slot) SetBool(v bool) {
	if v {
		s.Bits = 1
	} else {
		s.Bits = 0
	}
}

func (s *Slot) Text() string {
	return string(s.Buf)
}

// SetText replaces the slot's bytes, reusing the buffer when it is large
// enough. The new length is charged to the slot's heap first; on
// OutOfMemory the slot keeps its old content.
func (s *Slot) SetText(v string) error {
	if err := s.heap.Resize(s, len(v)); err != nil {
		return err
	}
	if cap(s.Buf) >= len(v) {
		s.Buf = s.Buf[:len(v)]
	} else {
		s.Buf = make([]byte, len(v))
	}
	copy(s.Buf, v)
	return nil
}

// Charged returns the number of bytes currently charged for this slot.
func (s *Slot) Charged() int {
	return s.size
}

// SameRef reports whether two handles refer to the same object.
// Two nil handles are the same; distinct objects with equal content are not.
func SameRef(a, b Object) bool {
	return a == b
}
