package types

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/funvibe/strata/internal/config"
	"github.com/funvibe/strata/internal/strategy"
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

// textLifecycle is variable width: a fresh text is empty and its current
// size is the length of its bytes. The bytes belong to the slot, so Free
// drops them together with it.
func textLifecycle() strategy.Lifecycle {
	return strategy.Lifecycle{
		Alloc: func(h *value.Heap) (*value.Slot, error) {
			return h.Alloc(typesystem.TypeText, 0)
		},
		Free: func(h *value.Heap, slot **value.Slot) error {
			if s := *slot; s != nil {
				s.Buf = nil
				h.Release(s)
				*slot = nil
			}
			return nil
		},
		InitSize: func() int {
			return 0
		},
		CurrentSize: func(s *value.Slot) int {
			return len(s.Buf)
		},
	}
}

// Text builds the strategy for UTF-8 text values stored in Slot.Buf.
// Unlike function values, text compares and copies by content.
func Text(opts Options) (*strategy.Strategy, error) {
	life := textLifecycle()
	txt := typesystem.Params(typesystem.TypeText)

	b := strategy.NewBuilder(typesystem.TypeText, config.TextTypeName).
		Lifecycle(life).
		Shared(strategy.Natural)
	withBuiltins(b, life, config.TextTypeName, opts)

	b.Method(typesystem.TypeText, config.AssignOpName, typesystem.Params(), textAssign).
		Method(typesystem.TypeBoolean, config.EqualOpName, txt, textEqual).
		Method(typesystem.TypeBoolean, config.InequalOpName, txt, textInequal).
		Method(typesystem.TypeText, config.ConcatOpName, txt, textConcat).
		Method(typesystem.TypeInteger32, config.LengthMethodName, typesystem.Params(), textLength).
		Method(typesystem.TypeInteger32, strategy.CastName(typesystem.TypeInteger32), typesystem.Params(), textToInteger32).
		Method(typesystem.TypeUUID, strategy.CastName(typesystem.TypeUUID), typesystem.Params(), textToUUID)

	return b.Build()
}

func textAssign(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return dest.SetText(src.Text())
}

func textEqual(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, bytes.Equal(src.Buf, args[0].Buf))
}

func textInequal(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, !bytes.Equal(src.Buf, args[0].Buf))
}

func textConcat(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return dest.SetText(src.Text() + args[0].Text())
}

// textLength counts runes, not bytes; sizeof reports bytes.
func textLength(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	dest.SetInt32(int32(utf8.RuneCount(src.Buf)))
	return nil
}

func textToInteger32(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	n, err := strconv.ParseInt(src.Text(), 10, 32)
	if err != nil {
		return typesystem.Errorf(typesystem.KindTypeMismatch, "cast", config.TextTypeName,
			"%q is not an %s", src.Text(), config.Integer32TypeName)
	}
	dest.SetInt32(int32(n))
	return nil
}

func textToUUID(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	u, err := uuid.Parse(src.Text())
	if err != nil {
		return typesystem.Errorf(typesystem.KindTypeMismatch, "cast", config.TextTypeName,
			"%q is not a %s: %v", src.Text(), config.UUIDTypeName, err)
	}
	SetUUID(dest, u)
	return nil
}
