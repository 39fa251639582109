// Package strategy implements the per-type behavioral contract of the value
// engine: lifecycle callbacks, the method/operator table, the uniform
// invocation convention and the process-wide type table.
//
// A strategy is built once by its type's factory, published into a
// Registry, and is read-only from then on. Published strategies may be
// shared by any number of goroutines without locking.
package strategy

import (
	"github.com/funvibe/strata/internal/config"
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

// Strategy is the behavioral descriptor of one value type.
type Strategy struct {
	id      typesystem.TypeID
	name    string
	life    Lifecycle
	methods *MethodTable
	shared  Behavior // not owned; shared between strategies
}

func (s *Strategy) ID() typesystem.TypeID { return s.id }
func (s *Strategy) Name() string          { return s.name }

// Lifecycle returns the raw callbacks. Calling them directly skips all
// validation; passing a nil or foreign slot is undefined behavior.
func (s *Strategy) Lifecycle() Lifecycle { return s.life }

func (s *Strategy) Methods() *MethodTable { return s.methods }
func (s *Strategy) Shared() Behavior      { return s.shared }

// Published reports whether the strategy has been frozen by a Registry.
func (s *Strategy) Published() bool { return s.methods.Frozen() }

// AddMethod registers a method or operator. It fails once the strategy is published.
func (s *Strategy) AddMethod(ret typesystem.TypeID, name string, params typesystem.Signature, impl Impl) error {
	if s == nil {
		return typesystem.NewError(typesystem.KindInvalidPointer, "add_method", name)
	}
	return s.methods.AddMethod(ret, name, params, impl)
}

// Checked lifecycle entry points

func (s *Strategy) Alloc(h *value.Heap) (*value.Slot, error) {
	if s == nil {
		return nil, typesystem.NewError(typesystem.KindInvalidPointer, "alloc", "")
	}
	return s.life.Alloc(h)
}

func (s *Strategy) Free(h *value.Heap, slot **value.Slot) error {
	const op = "free"
	if s == nil || slot == nil {
		return typesystem.NewError(typesystem.KindInvalidPointer, op, "")
	}
	if *slot != nil && (*slot).Type != s.id {
		return typesystem.Errorf(typesystem.KindTypeMismatch, op, s.name, "slot holds %s", (*slot).Type)
	}
	return s.life.Free(h, slot)
}

func (s *Strategy) InitSize() (int, error) {
	if s == nil {
		return 0, typesystem.NewError(typesystem.KindInvalidPointer, "get_init_size", "")
	}
	return s.life.InitSize(), nil
}

func (s *Strategy) CurrentSize(slot *value.Slot) (int, error) {
	const op = "get_current_size"
	if s == nil || slot == nil {
		return 0, typesystem.NewError(typesystem.KindInvalidPointer, op, "")
	}
	if slot.Type != s.id {
		return 0, typesystem.Errorf(typesystem.KindTypeMismatch, op, s.name, "slot holds %s", slot.Type)
	}
	return s.life.CurrentSize(slot), nil
}

// Invoke validates every slot against e and the receiver type, then calls
// e.Impl. On a validation failure nothing is written to dest.
func (s *Strategy) Invoke(e Entry, src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	if s == nil || e.Impl == nil || src == nil || dest == nil {
		return typesystem.NewError(typesystem.KindInvalidPointer, "invoke", e.Name)
	}
	if src.Type != s.id {
		return typesystem.Errorf(typesystem.KindTypeMismatch, "invoke", e.Name,
			"receiver is %s, want %s", src.Type, s.id)
	}
	if args == nil && len(e.Params) > 0 {
		return typesystem.Errorf(typesystem.KindInvalidPointer, "invoke", e.Name,
			"no argument vector, want %d arguments", len(e.Params))
	}
	if len(args) != len(e.Params) {
		return typesystem.Errorf(typesystem.KindTypeMismatch, "invoke", e.Name,
			"%d arguments, want %d", len(args), len(e.Params))
	}
	for i, a := range args {
		if a == nil {
			return typesystem.Errorf(typesystem.KindInvalidPointer, "invoke", e.Name, "argument %d is nil", i)
		}
		if a.Type != e.Params[i] {
			return typesystem.Errorf(typesystem.KindTypeMismatch, "invoke", e.Name,
				"argument %d is %s, want %s", i, a.Type, e.Params[i])
		}
	}
	if dest.Type != e.Return {
		return typesystem.Errorf(typesystem.KindTypeMismatch, "invoke", e.Name,
			"destination is %s, want %s", dest.Type, e.Return)
	}
	return e.Impl(src, args, dest)
}

// InvokeUnchecked calls e.Impl directly. The caller guarantees that every
// slot is non-nil and typed as e requires.
func (s *Strategy) InvokeUnchecked(e Entry, src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return e.Impl(src, args, dest)
}

// Method lookup and casting go through the shared behavior.

func (s *Strategy) IsMethod(name string, args typesystem.Signature) bool {
	return s != nil && s.shared.IsMethod(s, name, args)
}

func (s *Strategy) GetMethod(name string, args typesystem.Signature) (Entry, error) {
	if s == nil {
		return Entry{}, typesystem.NewError(typesystem.KindInvalidPointer, "get_method", name)
	}
	return s.shared.GetMethod(s, name, args)
}

// Call resolves name against the argument types and invokes it checked.
func (s *Strategy) Call(name string, src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	if s == nil {
		return typesystem.NewError(typesystem.KindInvalidPointer, "method", name)
	}
	return s.shared.Method(s, name, src, args, dest)
}

func (s *Strategy) IsCast(to typesystem.TypeID) bool {
	return s != nil && s.shared.IsCast(s, to)
}

func (s *Strategy) GetCast(to typesystem.TypeID) (Entry, error) {
	if s == nil {
		return Entry{}, typesystem.NewError(typesystem.KindInvalidPointer, "get_cast", "")
	}
	return s.shared.GetCast(s, to)
}

// Cast converts src into dest, whose Type selects the target.
func (s *Strategy) Cast(src *value.Slot, dest *value.Slot) error {
	if s == nil {
		return typesystem.NewError(typesystem.KindInvalidPointer, "cast", "")
	}
	return s.shared.Cast(s, src, dest)
}

// MissingArgs reports whether a call to name passes no argument vector
// although every overload of name takes arguments.
func (s *Strategy) MissingArgs(name string, args []*value.Slot) bool {
	return s != nil && args == nil && s.methods.HasName(name) && !s.methods.Has(name, nil)
}

// CastName is the method name under which a cast to t is registered.
func CastName(t typesystem.TypeID) string {
	return config.CastPrefix + t.String()
}

// ArgTypes returns the signature formed by the types of args.
func ArgTypes(args []*value.Slot) (typesystem.Signature, error) {
	sig := make(typesystem.Signature, len(args))
	for i, a := range args {
		if a == nil {
			return nil, typesystem.Errorf(typesystem.KindInvalidPointer, "args", "", "argument %d is nil", i)
		}
		sig[i] = a.Type
	}
	return sig, nil
}
