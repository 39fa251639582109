package types

import (
	"strconv"

	"github.com/funvibe/strata/internal/config"
	"github.com/funvibe/strata/internal/strategy"
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

// Boolean builds the strategy for boolean values, stored in Slot.Bits as 0 or 1.
func Boolean(opts Options) (*strategy.Strategy, error) {
	life := strategy.FixedLifecycle(typesystem.TypeBoolean, 1)
	bl := typesystem.Params(typesystem.TypeBoolean)

	b := strategy.NewBuilder(typesystem.TypeBoolean, config.BooleanTypeName).
		Lifecycle(life).
		Shared(strategy.Natural)
	withBuiltins(b, life, config.BooleanTypeName, opts)

	b.Method(typesystem.TypeBoolean, config.AssignOpName, typesystem.Params(), copyBits).
		Method(typesystem.TypeBoolean, config.EqualOpName, bl, bitsEqual).
		Method(typesystem.TypeBoolean, config.InequalOpName, bl, bitsInequal).
		Method(typesystem.TypeBoolean, config.NotMethodName, typesystem.Params(), booleanNot).
		Method(typesystem.TypeBoolean, config.AndOpName, bl, booleanAnd).
		Method(typesystem.TypeBoolean, config.OrOpName, bl, booleanOr).
		Method(typesystem.TypeText, strategy.CastName(typesystem.TypeText), typesystem.Params(), booleanToText).
		Method(typesystem.TypeInteger32, strategy.CastName(typesystem.TypeInteger32), typesystem.Params(), booleanToInteger32)

	return b.Build()
}

// copyBits is the assign operator of scalar types.
func copyBits(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	dest.Bits = src.Bits
	return nil
}

func bitsEqual(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, src.Bits == args[0].Bits)
}

func bitsInequal(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, src.Bits != args[0].Bits)
}

func booleanNot(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, !src.Bool())
}

func booleanAnd(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, src.Bool() && args[0].Bool())
}

func booleanOr(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, src.Bool() || args[0].Bool())
}

func booleanToText(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return dest.SetText(strconv.FormatBool(src.Bool()))
}

func booleanToInteger32(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	if src.Bool() {
		dest.SetInt32(1)
	} else {
		dest.SetInt32(0)
	}
	return nil
}
