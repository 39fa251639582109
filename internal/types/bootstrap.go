package types

import (
	"fmt"

	"github.com/funvibe/strata/internal/strategy"
	"github.com/funvibe/strata/internal/typesystem"
)

var builtinFactories = map[typesystem.TypeID]Factory{
	typesystem.TypeBoolean:   Boolean,
	typesystem.TypeInteger32: Integer32,
	typesystem.TypeText:      Text,
	typesystem.TypeFunction:  Function,
	typesystem.TypeUUID:      UUID,
}

// FactoryFor returns the factory of a builtin type.
func FactoryFor(id typesystem.TypeID) (Factory, bool) {
	f, ok := builtinFactories[id]
	return f, ok
}

// Bootstrap builds and publishes the builtin types named in names, or all
// of them when names is empty, in id order. It does not seal reg.
func Bootstrap(reg *strategy.Registry, names []string, opts Options) error {
	ids, err := selectBuiltins(names)
	if err != nil {
		return err
	}
	for _, id := range ids {
		s, err := builtinFactories[id](opts)
		if err != nil {
			return fmt.Errorf("bootstrap %s: %w", id, err)
		}
		if err := reg.Publish(s); err != nil {
			return fmt.Errorf("bootstrap %s: %w", id, err)
		}
	}
	return nil
}

func selectBuiltins(names []string) ([]typesystem.TypeID, error) {
	all := typesystem.BuiltinTypes()
	if len(names) == 0 {
		return all, nil
	}
	want := make(map[typesystem.TypeID]bool, len(names))
	for _, name := range names {
		id, ok := typesystem.BuiltinByName(name)
		if !ok {
			return nil, typesystem.NewError(typesystem.KindUnknownType, "bootstrap", name)
		}
		want[id] = true
	}
	var out []typesystem.TypeID
	for _, id := range all {
		if want[id] {
			out = append(out, id)
		}
	}
	return out, nil
}
