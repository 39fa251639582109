package typesystem

import (
	"fmt"

	"github.com/funvibe/strata/internal/config"
)

// TypeID identifies a value type across a registry.
// The zero value is reserved and never names a type.
type TypeID uint16

const (
	TypeInvalid TypeID = iota
	TypeBoolean
	TypeInteger32
	TypeText
	TypeFunction
	TypeUUID
)

// TypeUser is the first id available to types defined outside this module.
const TypeUser TypeID = 0x100

var builtinNames = map[TypeID]string{
	TypeBoolean:   config.BooleanTypeName,
	TypeInteger32: config.Integer32TypeName,
	TypeText:      config.TextTypeName,
	TypeFunction:  config.FunctionTypeName,
	TypeUUID:      config.UUIDTypeName,
}

// BuiltinTypes returns the ids of every type shipped with the runtime, in id order.
func BuiltinTypes() []TypeID {
	return []TypeID{TypeBoolean, TypeInteger32, TypeText, TypeFunction, TypeUUID}
}

// BuiltinByName maps a display name back to its builtin id.
func BuiltinByName(name string) (TypeID, bool) {
	for id, n := range builtinNames {
		if n == name {
			return id, true
		}
	}
	return TypeInvalid, false
}

func (t TypeID) Valid() bool {
	return t != TypeInvalid
}

func (t TypeID) IsBuiltin() bool {
	_, ok := builtinNames[t]
	return ok
}

func (t TypeID) String() string {
	if t == TypeInvalid {
		return "invalid"
	}
	if name, ok := builtinNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type#%d", uint16(t))
}
