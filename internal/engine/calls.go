package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/funvibe/strata/internal/strategy"
	"github.com/funvibe/strata/internal/types"
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

// resolve finds the strategy of src and the entry matching name and the
// argument types.
func (e *Engine) resolve(src *value.Slot, name string, args []*value.Slot) (*strategy.Strategy, strategy.Entry, error) {
	if src == nil {
		return nil, strategy.Entry{}, typesystem.NewError(typesystem.KindInvalidPointer, "method", name)
	}
	s, err := e.reg.Lookup(src.Type)
	if err != nil {
		return nil, strategy.Entry{}, err
	}
	if s.MissingArgs(name, args) {
		return nil, strategy.Entry{}, typesystem.NewError(typesystem.KindInvalidPointer, "method", name)
	}
	sig, err := strategy.ArgTypes(args)
	if err != nil {
		return nil, strategy.Entry{}, err
	}
	entry, err := s.GetMethod(name, sig)
	if err != nil {
		return nil, strategy.Entry{}, err
	}
	return s, entry, nil
}

func (e *Engine) invoke(s *strategy.Strategy, entry strategy.Entry, src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	if e.checked {
		return s.Invoke(entry, src, args, dest)
	}
	return s.InvokeUnchecked(entry, src, args, dest)
}

// run allocates a result slot for entry's return type and invokes entry.
// The result slot is freed again if the call fails; a failing free is
// joined to the call's error.
func (e *Engine) run(s *strategy.Strategy, entry strategy.Entry, src *value.Slot, args []*value.Slot) (*value.Slot, error) {
	ret, err := e.reg.Lookup(entry.Return)
	if err != nil {
		return nil, fmt.Errorf("%s returns unpublished type: %w", entry.Name, err)
	}
	dest, err := e.alloc(ret)
	if err != nil {
		return nil, err
	}
	if err := e.invoke(s, entry, src, args, dest); err != nil {
		if ferr := e.free(ret, &dest); ferr != nil {
			e.logger.Printf("releasing %s result of %s: %v", ret.Name(), entry.Name, ferr)
			return nil, errors.Join(err, ferr)
		}
		return nil, err
	}
	return dest, nil
}

// Call invokes method or operator name on src and returns a new slot
// holding the result. The caller owns the result and frees it with Free.
func (e *Engine) Call(src *value.Slot, name string, args ...*value.Slot) (*value.Slot, error) {
	s, entry, err := e.resolve(src, name, args)
	if err != nil {
		return nil, err
	}
	return e.run(s, entry, src, args)
}

// CallInto invokes name on src writing the result into the caller's dest,
// which must already hold the entry's return type.
func (e *Engine) CallInto(src *value.Slot, name string, dest *value.Slot, args ...*value.Slot) error {
	s, entry, err := e.resolve(src, name, args)
	if err != nil {
		return err
	}
	return e.invoke(s, entry, src, args, dest)
}

// Cast converts src to type to and returns the converted value in a new slot.
func (e *Engine) Cast(src *value.Slot, to typesystem.TypeID) (*value.Slot, error) {
	if src == nil {
		return nil, typesystem.NewError(typesystem.KindInvalidPointer, "cast", "")
	}
	s, err := e.reg.Lookup(src.Type)
	if err != nil {
		return nil, err
	}
	entry, err := s.GetCast(to)
	if err != nil {
		return nil, err
	}
	return e.run(s, entry, src, nil)
}

// Constructors for builtin values.

func (e *Engine) NewFunction(obj value.Object) (*value.Slot, error) {
	slot, err := e.Alloc(typesystem.TypeFunction)
	if err != nil {
		return nil, err
	}
	slot.Ref = obj
	return slot, nil
}

func (e *Engine) NewInt32(v int32) (*value.Slot, error) {
	slot, err := e.Alloc(typesystem.TypeInteger32)
	if err != nil {
		return nil, err
	}
	slot.SetInt32(v)
	return slot, nil
}

func (e *Engine) NewBool(v bool) (*value.Slot, error) {
	slot, err := e.Alloc(typesystem.TypeBoolean)
	if err != nil {
		return nil, err
	}
	slot.SetBool(v)
	return slot, nil
}

func (e *Engine) NewText(v string) (*value.Slot, error) {
	slot, err := e.Alloc(typesystem.TypeText)
	if err != nil {
		return nil, err
	}
	if err := slot.SetText(v); err != nil {
		return nil, errors.Join(err, e.Free(&slot))
	}
	return slot, nil
}

func (e *Engine) NewUUID(u uuid.UUID) (*value.Slot, error) {
	slot, err := e.Alloc(typesystem.TypeUUID)
	if err != nil {
		return nil, err
	}
	types.SetUUID(slot, u)
	return slot, nil
}
