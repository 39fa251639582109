package strategy

import (
	"errors"
	"testing"

	"github.com/funvibe/strata/internal/config"
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

const widgetType = typesystem.TypeUser

// buildWidget builds a small integer-like strategy used across the tests.
func buildWidget(t *testing.T) *Strategy {
	t.Helper()
	w := typesystem.Params(widgetType)
	s, err := NewBuilder(widgetType, "widget").
		Lifecycle(FixedLifecycle(widgetType, 4)).
		Method(widgetType, config.AssignOpName, nil, func(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
			dest.Bits = src.Bits
			return nil
		}).
		Method(widgetType, config.AddOpName, w, func(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
			dest.Bits = src.Bits + args[0].Bits
			return nil
		}).
		Method(widgetType, "fail", nil, func(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
			return errors.New("boom")
		}).
		Method(typesystem.TypeInteger32, CastName(typesystem.TypeInteger32), nil, func(src *value.Slot, args []*value.Slot, dest *value.Slot) error {
			dest.SetInt32(int32(src.Bits))
			return nil
		}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func widget(bits uint64) *value.Slot {
	return &value.Slot{Type: widgetType, Bits: bits}
}

func TestCheckedLifecycle(t *testing.T) {
	s := buildWidget(t)
	h := value.NewHeap(0)

	slot, err := s.Alloc(h)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	initSize, err := s.InitSize()
	if err != nil || initSize != 4 {
		t.Fatalf("InitSize() = %d, %v; want 4", initSize, err)
	}
	cur, err := s.CurrentSize(slot)
	if err != nil || cur != initSize {
		t.Fatalf("CurrentSize() = %d, %v; want %d", cur, err, initSize)
	}

	if err := s.Free(h, &slot); err != nil {
		t.Fatalf("Free: %v", err)
	}
	if slot != nil {
		t.Error("Free did not clear the caller's pointer")
	}
	if h.Live() != 0 {
		t.Errorf("heap still has %d live slots", h.Live())
	}
	// Freeing a cleared pointer is a no-op.
	if err := s.Free(h, &slot); err != nil {
		t.Errorf("second Free: %v", err)
	}
}

func TestCheckedLifecycleRejectsInvalidInput(t *testing.T) {
	s := buildWidget(t)
	h := value.NewHeap(0)

	var nilStrategy *Strategy
	if _, err := nilStrategy.Alloc(h); !errors.Is(err, typesystem.ErrInvalidPointer) {
		t.Errorf("nil strategy Alloc = %v", err)
	}
	if _, err := nilStrategy.InitSize(); !errors.Is(err, typesystem.ErrInvalidPointer) {
		t.Errorf("nil strategy InitSize = %v", err)
	}
	if err := s.Free(h, nil); !errors.Is(err, typesystem.ErrInvalidPointer) {
		t.Errorf("Free(nil) = %v", err)
	}
	if _, err := s.CurrentSize(nil); !errors.Is(err, typesystem.ErrInvalidPointer) {
		t.Errorf("CurrentSize(nil) = %v", err)
	}

	foreign := &value.Slot{Type: typesystem.TypeText}
	if _, err := s.CurrentSize(foreign); !errors.Is(err, typesystem.ErrTypeMismatch) {
		t.Errorf("CurrentSize(foreign) = %v, want type mismatch", err)
	}
	if err := s.Free(h, &foreign); !errors.Is(err, typesystem.ErrTypeMismatch) {
		t.Errorf("Free(foreign) = %v, want type mismatch", err)
	}
	if foreign == nil {
		t.Error("rejected Free cleared the pointer")
	}
}

func TestCallWritesResult(t *testing.T) {
	s := buildWidget(t)
	dest := widget(0)
	if err := s.Call(config.AddOpName, widget(2), []*value.Slot{widget(3)}, dest); err != nil {
		t.Fatalf("Call(add): %v", err)
	}
	if dest.Bits != 5 {
		t.Errorf("add result = %d, want 5", dest.Bits)
	}
}

func TestInvokeValidation(t *testing.T) {
	s := buildWidget(t)
	add, err := s.GetMethod(config.AddOpName, typesystem.Params(widgetType))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		src  *value.Slot
		args []*value.Slot
		dest *value.Slot
		want error
	}{
		{"nil src", nil, []*value.Slot{widget(1)}, widget(7), typesystem.ErrInvalidPointer},
		{"nil dest", widget(1), []*value.Slot{widget(1)}, nil, typesystem.ErrInvalidPointer},
		{"nil arg", widget(1), []*value.Slot{nil}, widget(7), typesystem.ErrInvalidPointer},
		{"nil args vector", widget(1), nil, widget(7), typesystem.ErrInvalidPointer},
		{"empty args", widget(1), []*value.Slot{}, widget(7), typesystem.ErrTypeMismatch},
		{"wrong receiver", &value.Slot{Type: typesystem.TypeText}, []*value.Slot{widget(1)}, widget(7), typesystem.ErrTypeMismatch},
		{"wrong arg", widget(1), []*value.Slot{{Type: typesystem.TypeText}}, widget(7), typesystem.ErrTypeMismatch},
		{"wrong dest", widget(1), []*value.Slot{widget(1)}, &value.Slot{Type: typesystem.TypeBoolean, Bits: 7}, typesystem.ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Invoke(add, tt.src, tt.args, tt.dest)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Invoke() = %v, want %v", err, tt.want)
			}
			if tt.dest != nil && tt.dest.Bits != 7 {
				t.Errorf("rejected Invoke wrote %d into dest", tt.dest.Bits)
			}
		})
	}
}

func TestInvokeUncheckedSkipsValidation(t *testing.T) {
	s := buildWidget(t)
	add, err := s.GetMethod(config.AddOpName, typesystem.Params(widgetType))
	if err != nil {
		t.Fatal(err)
	}
	// A boolean destination is accepted without complaint in unchecked mode.
	dest := &value.Slot{Type: typesystem.TypeBoolean}
	if err := s.InvokeUnchecked(add, widget(1), []*value.Slot{widget(1)}, dest); err != nil {
		t.Fatalf("InvokeUnchecked: %v", err)
	}
	if dest.Bits != 2 {
		t.Errorf("dest = %d, want 2", dest.Bits)
	}
}

func TestCallWithoutArgsVector(t *testing.T) {
	s := buildWidget(t)
	dest := widget(7)
	if err := s.Call(config.AddOpName, widget(1), nil, dest); !errors.Is(err, typesystem.ErrInvalidPointer) {
		t.Errorf("Call(add, nil args) = %v, want invalid pointer", err)
	}
	if dest.Bits != 7 {
		t.Errorf("rejected Call wrote %d into dest", dest.Bits)
	}
	// A zero-argument overload still resolves without a vector.
	if err := s.Call(config.AssignOpName, widget(3), nil, dest); err != nil || dest.Bits != 3 {
		t.Errorf("Call(assign, nil args) = %v, dest %d", err, dest.Bits)
	}
	// Unknown names keep their own error.
	if err := s.Call("missing", widget(1), nil, dest); !errors.Is(err, typesystem.ErrNoSuchMethod) {
		t.Errorf("Call(missing) = %v, want no such method", err)
	}
}

func TestImplErrorPropagates(t *testing.T) {
	s := buildWidget(t)
	err := s.Call("fail", widget(1), nil, widget(0))
	if err == nil || err.Error() != "boom" {
		t.Errorf("Call(fail) = %v, want boom", err)
	}
}

func TestNaturalCasts(t *testing.T) {
	s := buildWidget(t)

	if !s.IsCast(widgetType) {
		t.Error("identity cast should be available through assign")
	}
	if !s.IsCast(typesystem.TypeInteger32) {
		t.Error("expected cast to integer32")
	}
	if s.IsCast(typesystem.TypeText) {
		t.Error("unexpected cast to text")
	}

	dest := &value.Slot{Type: typesystem.TypeInteger32}
	if err := s.Cast(widget(42), dest); err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if dest.Int32() != 42 {
		t.Errorf("cast result = %d, want 42", dest.Int32())
	}

	same := widget(0)
	if err := s.Cast(widget(9), same); err != nil {
		t.Fatalf("identity Cast: %v", err)
	}
	if same.Bits != 9 {
		t.Errorf("identity cast result = %d, want 9", same.Bits)
	}

	if _, err := s.GetCast(typesystem.TypeText); !errors.Is(err, typesystem.ErrNoSuchCast) {
		t.Errorf("GetCast(text) = %v, want no such cast", err)
	}
	if err := s.Cast(widget(1), nil); !errors.Is(err, typesystem.ErrInvalidPointer) {
		t.Errorf("Cast(nil dest) = %v, want invalid pointer", err)
	}
}
