package types

import (
	"github.com/google/uuid"

	"github.com/funvibe/strata/internal/config"
	"github.com/funvibe/strata/internal/strategy"
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

// UUIDOf reads the uuid stored in s. An unset slot reads as uuid.Nil.
func UUIDOf(s *value.Slot) uuid.UUID {
	var u uuid.UUID
	if len(s.Buf) == len(u) {
		copy(u[:], s.Buf)
	}
	return u
}

// SetUUID stores u in s.
func SetUUID(s *value.Slot, u uuid.UUID) {
	if len(s.Buf) != len(u) {
		s.Buf = make([]byte, len(u))
	}
	copy(s.Buf, u[:])
}

// UUID builds the strategy for RFC 9562 identifiers. A uuid is a 16-byte
// value type: assign copies the bytes and equality compares them.
func UUID(opts Options) (*strategy.Strategy, error) {
	life := strategy.FixedLifecycle(typesystem.TypeUUID, len(uuid.UUID{}))
	id := typesystem.Params(typesystem.TypeUUID)

	b := strategy.NewBuilder(typesystem.TypeUUID, config.UUIDTypeName).
		Lifecycle(life).
		Shared(strategy.Natural)
	withBuiltins(b, life, config.UUIDTypeName, opts)

	b.Method(typesystem.TypeUUID, config.AssignOpName, typesystem.Params(), uuidAssign).
		Method(typesystem.TypeBoolean, config.EqualOpName, id, uuidEqual).
		Method(typesystem.TypeBoolean, config.InequalOpName, id, uuidInequal).
		Method(typesystem.TypeInteger32, config.VersionMethodName, typesystem.Params(), uuidVersion).
		Method(typesystem.TypeText, strategy.CastName(typesystem.TypeText), typesystem.Params(), uuidToText)

	return b.Build()
}

func uuidAssign(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	SetUUID(dest, UUIDOf(src))
	return nil
}

func uuidEqual(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, UUIDOf(src) == UUIDOf(args[0]))
}

func uuidInequal(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return boolResult(dest, UUIDOf(src) != UUIDOf(args[0]))
}

func uuidVersion(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	dest.SetInt32(int32(UUIDOf(src).Version()))
	return nil
}

func uuidToText(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	return dest.SetText(UUIDOf(src).String())
}
