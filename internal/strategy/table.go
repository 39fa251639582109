package strategy

import (
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

// Impl is the uniform calling shape of every method and operator.
//
// src is the receiver, args match the entry's parameter signature
// positionally, and dest is caller-owned storage already allocated for the
// entry's return type. An Impl writes its result into dest and returns nil,
// or returns an error and leaves dest untouched.
type Impl func(src *value.Slot, args []*value.Slot, dest *value.Slot) error

// Entry is one method or operator of a MethodTable.
type Entry struct {
	Name   string
	Params typesystem.Signature
	Return typesystem.TypeID
	Impl   Impl
}

// MethodTable is a per-type overload set keyed by (name, parameter signature).
// It is append-only until frozen; afterwards it is read-only and safe for
// concurrent readers.
type MethodTable struct {
	owner   string
	entries []Entry
	index   map[string]int // overload key -> position in entries
	names   map[string][]int
	frozen  bool
}

// NewMethodTable creates an empty table. owner is used in error messages.
func NewMethodTable(owner string) *MethodTable {
	return &MethodTable{
		owner: owner,
		index: make(map[string]int),
		names: make(map[string][]int),
	}
}

func overloadKey(name string, params typesystem.Signature) string {
	return name + "(" + params.Key() + ")"
}

// AddMethod appends an entry. It fails without touching the table if the
// overload key is already present, whatever the return type.
func (t *MethodTable) AddMethod(ret typesystem.TypeID, name string, params typesystem.Signature, impl Impl) error {
	const op = "add_method"
	if t == nil || impl == nil {
		return typesystem.NewError(typesystem.KindInvalidPointer, op, name)
	}
	if t.frozen {
		return typesystem.Errorf(typesystem.KindFrozen, op, name, "table of %s is published", t.owner)
	}
	if name == "" {
		return typesystem.Errorf(typesystem.KindInvalidSignature, op, "", "empty method name")
	}
	if !ret.Valid() {
		return typesystem.Errorf(typesystem.KindInvalidSignature, op, name, "invalid return type")
	}
	if i := params.InvalidIndex(); i >= 0 {
		return typesystem.Errorf(typesystem.KindInvalidSignature, op, name, "parameter %d has invalid type", i)
	}

	key := overloadKey(name, params)
	if i, ok := t.index[key]; ok {
		return typesystem.Errorf(typesystem.KindDuplicateRegistration, op, name,
			"%s%s already registered on %s returning %s", name, params, t.owner, t.entries[i].Return)
	}

	t.entries = append(t.entries, Entry{
		Name:   name,
		Params: params.Clone(),
		Return: ret,
		Impl:   impl,
	})
	t.index[key] = len(t.entries) - 1
	t.names[name] = append(t.names[name], len(t.entries)-1)
	return nil
}

// Has reports whether an entry matches name and args exactly.
func (t *MethodTable) Has(name string, args typesystem.Signature) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[overloadKey(name, args)]
	return ok
}

// HasName reports whether any overload of name exists.
func (t *MethodTable) HasName(name string) bool {
	if t == nil {
		return false
	}
	return len(t.names[name]) > 0
}

// Resolve finds the entry whose name and parameter signature match exactly.
// No coercion is attempted.
func (t *MethodTable) Resolve(name string, args typesystem.Signature) (Entry, error) {
	const op = "resolve"
	if t == nil {
		return Entry{}, typesystem.NewError(typesystem.KindInvalidPointer, op, name)
	}
	if i, ok := t.index[overloadKey(name, args)]; ok {
		return t.entries[i], nil
	}
	if !t.HasName(name) {
		return Entry{}, typesystem.Errorf(typesystem.KindNoSuchMethod, op, name, "on %s", t.owner)
	}
	return Entry{}, typesystem.Errorf(typesystem.KindNoSuchOverload, op, name, "%s%s on %s", name, args, t.owner)
}

// Overloads returns every entry named name, in registration order.
func (t *MethodTable) Overloads(name string) []Entry {
	if t == nil {
		return nil
	}
	idx := t.names[name]
	out := make([]Entry, len(idx))
	for i, j := range idx {
		out[i] = t.entries[j]
	}
	return out
}

// Entries returns a copy of the table in registration order.
func (t *MethodTable) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *MethodTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

func (t *MethodTable) Frozen() bool {
	return t != nil && t.frozen
}

func (t *MethodTable) freeze() {
	t.frozen = true
}
