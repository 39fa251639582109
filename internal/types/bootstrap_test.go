package types

import (
	"errors"
	"testing"

	"github.com/funvibe/strata/internal/strategy"
	"github.com/funvibe/strata/internal/typesystem"
)

func TestBootstrapAll(t *testing.T) {
	reg := strategy.NewRegistry()
	if err := Bootstrap(reg, nil, Options{}); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	all := reg.Strategies()
	if len(all) != len(typesystem.BuiltinTypes()) {
		t.Fatalf("%d types published, want %d", len(all), len(typesystem.BuiltinTypes()))
	}
	for i, id := range typesystem.BuiltinTypes() {
		if all[i].ID() != id {
			t.Errorf("strategy %d = %s, want %s", i, all[i].ID(), id)
		}
		if !all[i].Published() {
			t.Errorf("%s not frozen", id)
		}
	}
	if reg.Sealed() {
		t.Error("Bootstrap must leave sealing to the caller")
	}
}

func TestBootstrapSubset(t *testing.T) {
	reg := strategy.NewRegistry()
	if err := Bootstrap(reg, []string{"function", "boolean"}, Options{}); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reg.Len())
	}
	if _, err := reg.Lookup(typesystem.TypeText); !errors.Is(err, typesystem.ErrUnknownType) {
		t.Errorf("text should not be published: %v", err)
	}
}

func TestBootstrapErrors(t *testing.T) {
	reg := strategy.NewRegistry()
	if err := Bootstrap(reg, []string{"complex128"}, Options{}); !errors.Is(err, typesystem.ErrUnknownType) {
		t.Errorf("unknown name = %v, want unknown type", err)
	}

	if err := Bootstrap(reg, []string{"text"}, Options{}); err != nil {
		t.Fatal(err)
	}
	if err := Bootstrap(reg, []string{"text"}, Options{}); !errors.Is(err, typesystem.ErrDuplicateType) {
		t.Errorf("second bootstrap = %v, want duplicate type", err)
	}
}
