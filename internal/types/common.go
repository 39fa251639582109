// Package types holds one strategy factory per builtin value type.
//
// Adding a type means writing a Factory and its operator bodies; nothing in
// package strategy changes.
package types

import (
	"unicode/utf8"

	"github.com/funvibe/strata/internal/config"
	"github.com/funvibe/strata/internal/strategy"
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

// Options tune a factory.
type Options struct {
	// NameCapacity bounds the text written by the `type` method,
	// terminator included. Zero means config.TypeNameCapacity.
	NameCapacity int
}

func (o Options) nameCapacity() int {
	if o.NameCapacity <= 0 {
		return config.TypeNameCapacity
	}
	return o.NameCapacity
}

// Factory builds the strategy of one concrete type.
type Factory func(opts Options) (*strategy.Strategy, error)

// BoundName truncates name so that it fits a buffer of capacity bytes
// including a terminator, without splitting a UTF-8 sequence.
func BoundName(name string, capacity int) string {
	limit := capacity - 1
	if limit <= 0 {
		return ""
	}
	if len(name) <= limit {
		return name
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

// typeOf implements the `type` method: the bounded display name.
func typeOf(name string, capacity int) strategy.Impl {
	bounded := BoundName(name, capacity)
	return func(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
		return dest.SetText(bounded)
	}
}

// sizeOf implements the `sizeof` method from the lifecycle's current size.
func sizeOf(current func(*value.Slot) int) strategy.Impl {
	return func(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
		dest.SetInt32(int32(current(src)))
		return nil
	}
}

// withBuiltins queues the sizeof and type methods every type exposes.
func withBuiltins(b *strategy.Builder, life strategy.Lifecycle, name string, opts Options) *strategy.Builder {
	return b.
		Method(typesystem.TypeInteger32, config.SizeofMethodName, typesystem.Params(), sizeOf(life.CurrentSize)).
		Method(typesystem.TypeText, config.TypeMethodName, typesystem.Params(), typeOf(name, opts.nameCapacity()))
}

func boolResult(dest *value.Slot, v bool) error {
	dest.SetBool(v)
	return nil
}
