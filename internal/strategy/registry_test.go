package strategy

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/funvibe/strata/internal/typesystem"
)

func TestPublishFreezesStrategy(t *testing.T) {
	reg := NewRegistry()
	s := buildWidget(t)
	if err := reg.Publish(s); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !s.Published() {
		t.Error("strategy not marked published")
	}
	if err := s.AddMethod(typesystem.TypeBoolean, "late", nil, noop); !errors.Is(err, typesystem.ErrFrozen) {
		t.Errorf("AddMethod after publish = %v, want frozen", err)
	}

	got, err := reg.Lookup(widgetType)
	if err != nil || got != s {
		t.Errorf("Lookup() = %v, %v", got, err)
	}
	got, err = reg.LookupName("widget")
	if err != nil || got != s {
		t.Errorf("LookupName() = %v, %v", got, err)
	}
}

func TestPublishRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Publish(buildWidget(t)); err != nil {
		t.Fatal(err)
	}

	if err := reg.Publish(buildWidget(t)); !errors.Is(err, typesystem.ErrDuplicateType) {
		t.Errorf("duplicate id = %v, want duplicate type", err)
	}

	sameName, err := NewBuilder(widgetType+1, "widget").Lifecycle(FixedLifecycle(widgetType+1, 4)).Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Publish(sameName); !errors.Is(err, typesystem.ErrDuplicateType) {
		t.Errorf("duplicate name = %v, want duplicate type", err)
	}
	if sameName.Published() {
		t.Error("rejected strategy was frozen")
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestPublishRejectsIncompleteLifecycle(t *testing.T) {
	reg := NewRegistry()
	s := &Strategy{id: widgetType, name: "broken", methods: NewMethodTable("broken"), shared: Natural}
	if err := reg.Publish(s); !errors.Is(err, typesystem.ErrIncompleteLifecycle) {
		t.Errorf("Publish() = %v, want incomplete lifecycle", err)
	}
	if err := reg.Publish(nil); !errors.Is(err, typesystem.ErrInvalidPointer) {
		t.Errorf("Publish(nil) = %v, want invalid pointer", err)
	}
}

func TestSealedRegistry(t *testing.T) {
	var buf bytes.Buffer
	reg := NewRegistry()
	reg.SetLogger(log.New(&buf, "", 0))

	if err := reg.Publish(buildWidget(t)); err != nil {
		t.Fatal(err)
	}
	reg.Seal()
	if !reg.Sealed() {
		t.Fatal("registry not sealed")
	}

	late, err := NewBuilder(widgetType+1, "gadget").Lifecycle(FixedLifecycle(widgetType+1, 4)).Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Publish(late); !errors.Is(err, typesystem.ErrFrozen) {
		t.Errorf("Publish after Seal = %v, want frozen", err)
	}
	if _, err := reg.Lookup(widgetType + 1); !errors.Is(err, typesystem.ErrUnknownType) {
		t.Errorf("Lookup(unpublished) = %v, want unknown type", err)
	}

	out := buf.String()
	if !strings.Contains(out, "published widget") || !strings.Contains(out, "sealed with 1 types") {
		t.Errorf("unexpected log output:\n%s", out)
	}
}

func TestConcurrentLookupAfterSeal(t *testing.T) {
	reg := NewRegistry()
	for i := 0; i < 8; i++ {
		id := widgetType + typesystem.TypeID(i)
		s, err := NewBuilder(id, id.String()).Lifecycle(FixedLifecycle(id, 4)).
			Method(id, "assign", nil, noop).
			Build()
		if err != nil {
			t.Fatal(err)
		}
		if err := reg.Publish(s); err != nil {
			t.Fatal(err)
		}
	}
	reg.Seal()

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := widgetType + typesystem.TypeID((g+i)%8)
				s, err := reg.Lookup(id)
				if err != nil {
					t.Errorf("Lookup(%s): %v", id, err)
					return
				}
				if !s.IsMethod("assign", nil) {
					t.Errorf("%s lost its assign operator", id)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	all := reg.Strategies()
	for i := 1; i < len(all); i++ {
		if all[i-1].ID() >= all[i].ID() {
			t.Fatalf("Strategies() not ordered by id")
		}
	}
}
