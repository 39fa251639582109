package types

import (
	"unsafe"

	"github.com/funvibe/strata/internal/config"
	"github.com/funvibe/strata/internal/strategy"
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

// HandleSize is the storage width of a function value: one reference.
const HandleSize = int(unsafe.Sizeof(uintptr(0)))

// Function builds the strategy for function values.
//
// A function slot holds a single handle (Slot.Ref) to a function object
// owned by the caller's runtime. Free is shallow: it clears the handle and
// releases the slot, and never releases the function object. assign copies
// the handle, and equal/inequal compare handles by identity, so two distinct
// function objects are unequal even when they behave the same.
func Function(opts Options) (*strategy.Strategy, error) {
	life := strategy.FixedLifecycle(typesystem.TypeFunction, HandleSize)
	fn := typesystem.Params(typesystem.TypeFunction)

	b := strategy.NewBuilder(typesystem.TypeFunction, config.FunctionTypeName).
		Lifecycle(life).
		Shared(strategy.Natural)
	withBuiltins(b, life, config.FunctionTypeName, opts)

	b.Method(typesystem.TypeFunction, config.AssignOpName, typesystem.Params(), functionAssign).
		Method(typesystem.TypeBoolean, config.EqualOpName, fn, functionEqual).
		Method(typesystem.TypeBoolean, config.InequalOpName, fn, functionInequal)

	return b.Build()
}

func functionAssign(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	dest.Ref = src.Ref
	return nil
}

func functionEqual(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, value.SameRef(src.Ref, args[0].Ref))
}

func functionInequal(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, !value.SameRef(src.Ref, args[0].Ref))
}
