package strategy

import (
	"io"
	"log"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/funvibe/strata/internal/typesystem"
)

// Registry is the type table strategies are published into.
//
// Publication happens during bootstrap; Seal ends it. Lookups before Seal
// take the lock, lookups after Seal read the maps directly since nothing
// writes to them any more.
type Registry struct {
	mu     sync.Mutex
	sealed atomic.Bool
	byID   map[typesystem.TypeID]*Strategy
	byName map[string]*Strategy
	order  []*Strategy
	logger *log.Logger
}

func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[typesystem.TypeID]*Strategy),
		byName: make(map[string]*Strategy),
		logger: log.New(io.Discard, "", 0),
	}
}

// SetLogger directs publication messages to l.
func (r *Registry) SetLogger(l *log.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	r.logger = l
}

// Publish freezes s and makes it visible under its id and name.
// A strategy whose id or name is already taken is rejected and left unpublished.
func (r *Registry) Publish(s *Strategy) error {
	const op = "publish"
	if s == nil {
		return typesystem.NewError(typesystem.KindInvalidPointer, op, "")
	}
	if err := s.life.check(op, s.name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return typesystem.Errorf(typesystem.KindFrozen, op, s.name, "registry is sealed")
	}
	if cur, ok := r.byID[s.id]; ok {
		return typesystem.Errorf(typesystem.KindDuplicateType, op, s.name,
			"id %d already used by %s", uint16(s.id), cur.name)
	}
	if cur, ok := r.byName[s.name]; ok {
		return typesystem.Errorf(typesystem.KindDuplicateType, op, s.name,
			"name already used by id %d", uint16(cur.id))
	}

	s.methods.freeze()
	r.byID[s.id] = s
	r.byName[s.name] = s
	r.order = append(r.order, s)
	r.logger.Printf("published %s (id %d, %d methods)", s.name, uint16(s.id), s.methods.Len())
	return nil
}

// Seal ends bootstrap. Further Publish calls fail.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.sealed.Load() {
		r.sealed.Store(true)
		r.logger.Printf("registry sealed with %d types", len(r.order))
	}
}

func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

func (r *Registry) Lookup(id typesystem.TypeID) (*Strategy, error) {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	if s, ok := r.byID[id]; ok {
		return s, nil
	}
	return nil, typesystem.NewError(typesystem.KindUnknownType, "lookup", id.String())
}

func (r *Registry) LookupName(name string) (*Strategy, error) {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	if s, ok := r.byName[name]; ok {
		return s, nil
	}
	return nil, typesystem.NewError(typesystem.KindUnknownType, "lookup", name)
}

// Strategies returns the published strategies ordered by id.
func (r *Registry) Strategies() []*Strategy {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	out := make([]*Strategy, len(r.order))
	copy(out, r.order)
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (r *Registry) Len() int {
	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	return len(r.order)
}
