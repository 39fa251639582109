package types

import (
	"strconv"

	"github.com/funvibe/strata/internal/config"
	"github.com/funvibe/strata/internal/strategy"
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

// Integer32 builds the strategy for 32-bit signed integers.
// Arithmetic wraps on overflow.
func Integer32(opts Options) (*strategy.Strategy, error) {
	life := strategy.FixedLifecycle(typesystem.TypeInteger32, 4)
	i32 := typesystem.Params(typesystem.TypeInteger32)

	b := strategy.NewBuilder(typesystem.TypeInteger32, config.Integer32TypeName).
		Lifecycle(life).
		Shared(strategy.Natural)
	withBuiltins(b, life, config.Integer32TypeName, opts)

	b.Method(typesystem.TypeInteger32, config.AssignOpName, typesystem.Params(), copyBits).
		Method(typesystem.TypeBoolean, config.EqualOpName, i32, bitsEqual).
		Method(typesystem.TypeBoolean, config.InequalOpName, i32, bitsInequal).
		Method(typesystem.TypeBoolean, config.LessOpName, i32, integerLess).
		Method(typesystem.TypeBoolean, config.GreaterOpName, i32, integerGreater).
		Method(typesystem.TypeInteger32, config.AddOpName, i32, integerArith(func(a, b int32) int32 { return a + b })).
		Method(typesystem.TypeInteger32, config.SubOpName, i32, integerArith(func(a, b int32) int32 { return a - b })).
		Method(typesystem.TypeInteger32, config.MulOpName, i32, integerArith(func(a, b int32) int32 { return a * b })).
		Method(typesystem.TypeText, strategy.CastName(typesystem.TypeText), typesystem.Params(), integerToText).
		Method(typesystem.TypeBoolean, strategy.CastName(typesystem.TypeBoolean), typesystem.Params(), integerToBoolean)

	return b.Build()
}

func integerLess(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, src.Int32() < args[0].Int32())
}

func integerGreater(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, src.Int32() > args[0].Int32())
}

func integerArith(op func(a, b int32) int32) strategy.Impl {
	return func(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
		dest.SetInt32(op(src.Int32(), args[0].Int32()))
		return nil
	}
}

func integerToText(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return dest.SetText(strconv.FormatInt(int64(src.Int32()), 10))
}

func integerToBoolean(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, src.Int32() != 0)
}
