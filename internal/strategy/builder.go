package strategy

import (
	"fmt"
	"strings"

	"github.com/funvibe/strata/internal/typesystem"
)

// Builder assembles a Strategy. Registration errors are collected and
// reported by Build, which either returns a complete strategy or nothing.
type Builder struct {
	id      typesystem.TypeID
	name    string
	life    Lifecycle
	shared  Behavior
	pending []Entry
}

func NewBuilder(id typesystem.TypeID, name string) *Builder {
	return &Builder{id: id, name: name}
}

func (b *Builder) Lifecycle(l Lifecycle) *Builder {
	b.life = l
	return b
}

// Shared sets the cast/lookup behavior. Defaults to Natural.
func (b *Builder) Shared(sh Behavior) *Builder {
	b.shared = sh
	return b
}

// Method queues a method or operator for registration.
func (b *Builder) Method(ret typesystem.TypeID, name string, params typesystem.Signature, impl Impl) *Builder {
	b.pending = append(b.pending, Entry{Name: name, Params: params, Return: ret, Impl: impl})
	return b
}

// Build creates the strategy and registers every queued entry in order.
func (b *Builder) Build() (*Strategy, error) {
	if !b.id.Valid() {
		return nil, typesystem.Errorf(typesystem.KindUnknownType, "build", b.name, "invalid type id")
	}
	if b.name == "" {
		return nil, typesystem.Errorf(typesystem.KindInvalidSignature, "build", "", "empty type name for %s", b.id)
	}
	if err := b.life.check("build", b.name); err != nil {
		return nil, err
	}

	shared := b.shared
	if shared == nil {
		shared = Natural
	}

	name := strings.Clone(b.name)
	s := &Strategy{
		id:      b.id,
		name:    name,
		life:    b.life,
		methods: NewMethodTable(name),
		shared:  shared,
	}
	for _, e := range b.pending {
		if err := s.methods.AddMethod(e.Return, e.Name, e.Params, e.Impl); err != nil {
			return nil, fmt.Errorf("building %s: %w", name, err)
		}
	}
	return s, nil
}
