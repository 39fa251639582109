// Package engine is the value engine façade over the strategy registry.
// It allocates and frees slots, resolves method calls against the receiver's
// strategy, sizes result slots from the entry's return type, and invokes
// through the checked or unchecked entry points chosen by configuration.
package engine

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/funvibe/strata/internal/config"
	"github.com/funvibe/strata/internal/strategy"
	"github.com/funvibe/strata/internal/types"
	"github.com/funvibe/strata/internal/typesystem"
	"github.com/funvibe/strata/internal/value"
)

// Engine is safe for concurrent use once New returns.
type Engine struct {
	reg     *strategy.Registry
	heap    *value.Heap
	checked bool
	logger  *log.Logger
}

type options struct {
	factories []types.Factory
	logger    *log.Logger
}

// Option customizes New.
type Option func(*options)

// WithFactory publishes an extra type alongside the builtins.
func WithFactory(f types.Factory) Option {
	return func(o *options) {
		o.factories = append(o.factories, f)
	}
}

// WithLogger overrides the logger selected by cfg.Verbose.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New bootstraps the configured types, publishes any extra factories, and
// seals the registry. A nil cfg means config.Default().
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		if cfg.Verbose {
			logger = log.New(os.Stderr, "strata: ", 0)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	reg := strategy.NewRegistry()
	reg.SetLogger(logger)

	topts := types.Options{NameCapacity: cfg.TypeNameCapacity}
	if err := types.Bootstrap(reg, cfg.Types, topts); err != nil {
		return nil, err
	}
	for i, f := range o.factories {
		if f == nil {
			return nil, fmt.Errorf("extra factory %d: %w", i, typesystem.ErrInvalidPointer)
		}
		s, err := f(topts)
		if err != nil {
			return nil, fmt.Errorf("extra factory %d: %w", i, err)
		}
		if err := reg.Publish(s); err != nil {
			return nil, fmt.Errorf("extra factory %d: %w", i, err)
		}
	}
	reg.Seal()

	e := &Engine{
		reg:     reg,
		heap:    value.NewHeap(cfg.MemoryLimit),
		checked: cfg.Checked(),
		logger:  logger,
	}
	logger.Printf("engine ready: %d types, validation %s, memory limit %d", reg.Len(), cfg.Validation, cfg.MemoryLimit)
	return e, nil
}

func (e *Engine) Registry() *strategy.Registry { return e.reg }
func (e *Engine) Heap() *value.Heap            { return e.heap }
func (e *Engine) Checked() bool                { return e.checked }

// Strategy returns the published strategy of id.
func (e *Engine) Strategy(id typesystem.TypeID) (*strategy.Strategy, error) {
	return e.reg.Lookup(id)
}

// Alloc returns a fresh zero value of type id.
func (e *Engine) Alloc(id typesystem.TypeID) (*value.Slot, error) {
	s, err := e.reg.Lookup(id)
	if err != nil {
		return nil, err
	}
	return e.alloc(s)
}

func (e *Engine) alloc(s *strategy.Strategy) (*value.Slot, error) {
	if e.checked {
		return s.Alloc(e.heap)
	}
	return s.Lifecycle().Alloc(e.heap)
}

// Free releases *slot through its type's lifecycle and sets *slot to nil.
// Freeing a nil slot is a no-op.
func (e *Engine) Free(slot **value.Slot) error {
	if slot == nil {
		return typesystem.NewError(typesystem.KindInvalidPointer, "free", "")
	}
	if *slot == nil {
		return nil
	}
	s, err := e.reg.Lookup((*slot).Type)
	if err != nil {
		return err
	}
	return e.free(s, slot)
}

func (e *Engine) free(s *strategy.Strategy, slot **value.Slot) error {
	if e.checked {
		return s.Free(e.heap, slot)
	}
	return s.Lifecycle().Free(e.heap, slot)
}

// Size returns the current size of a live value.
func (e *Engine) Size(slot *value.Slot) (int, error) {
	if slot == nil {
		return 0, typesystem.NewError(typesystem.KindInvalidPointer, "get_current_size", "")
	}
	s, err := e.reg.Lookup(slot.Type)
	if err != nil {
		return 0, err
	}
	if e.checked {
		return s.CurrentSize(slot)
	}
	return s.Lifecycle().CurrentSize(slot), nil
}
