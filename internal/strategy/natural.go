package strategy

import (
	"github.com/funvibe/strata/internal/config"
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

// Behavior is the cast and method-lookup logic a strategy delegates to.
// One Behavior value is typically shared by many strategies.
type Behavior interface {
	IsCast(s *Strategy, to typesystem.TypeID) bool
	GetCast(s *Strategy, to typesystem.TypeID) (Entry, error)
	Cast(s *Strategy, src *value.Slot, dest *value.Slot) error

	IsMethod(s *Strategy, name string, args typesystem.Signature) bool
	GetMethod(s *Strategy, name string, args typesystem.Signature) (Entry, error)
	Method(s *Strategy, name string, src *value.Slot, args []*value.Slot, dest *value.Slot) error
}

// Natural is the default Behavior used by types without custom casting.
// Methods resolve by exact signature against the strategy's own table.
// A cast to the strategy's own type is its zero-argument assign operator;
// any other cast to t is the zero-argument entry named CastName(t).
var Natural Behavior = natural{}

type natural struct{}

func (natural) IsCast(s *Strategy, to typesystem.TypeID) bool {
	if to == s.id {
		return s.methods.Has(config.AssignOpName, nil)
	}
	return s.methods.Has(CastName(to), nil)
}

func (natural) GetCast(s *Strategy, to typesystem.TypeID) (Entry, error) {
	name := CastName(to)
	if to == s.id {
		name = config.AssignOpName
	}
	e, err := s.methods.Resolve(name, nil)
	if err != nil {
		return Entry{}, typesystem.Errorf(typesystem.KindNoSuchCast, "get_cast", s.name, "%s to %s", s.id, to)
	}
	if e.Return != to {
		return Entry{}, typesystem.Errorf(typesystem.KindNoSuchCast, "get_cast", s.name,
			"%s returns %s, want %s", e.Name, e.Return, to)
	}
	return e, nil
}

func (n natural) Cast(s *Strategy, src *value.Slot, dest *value.Slot) error {
	if dest == nil {
		return typesystem.NewError(typesystem.KindInvalidPointer, "cast", s.name)
	}
	e, err := n.GetCast(s, dest.Type)
	if err != nil {
		return err
	}
	return s.Invoke(e, src, nil, dest)
}

func (natural) IsMethod(s *Strategy, name string, args typesystem.Signature) bool {
	return s.methods.Has(name, args)
}

func (natural) GetMethod(s *Strategy, name string, args typesystem.Signature) (Entry, error) {
	return s.methods.Resolve(name, args)
}

func (n natural) Method(s *Strategy, name string, src *value.Slot, args []*value.Slot, dest *value.Slot) error {
	if s.MissingArgs(name, args) {
		return typesystem.NewError(typesystem.KindInvalidPointer, "method", name)
	}
	sig, err := ArgTypes(args)
	if err != nil {
		return err
	}
	e, err := n.GetMethod(s, name, sig)
	if err != nil {
		return err
	}
	return s.Invoke(e, src, args, dest)
}
