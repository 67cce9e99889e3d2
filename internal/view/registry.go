package view

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"github.com/google/uuid"

	"lawmap/internal/models"
)

type session struct {
	mu   sync.Mutex
	view View
	// closed is set under mu by Delete; a closed session is never re-stored.
	closed bool
}

// Registry keeps live views by id. Views idle for longer than the TTL are
// dropped, as are the least recently used ones once the size is reached.
type Registry struct {
	factory *Factory
	cache   gcache.Cache
}

// NewRegistry builds a registry. onEvict, if set, runs for every view that
// leaves the registry, whether deleted or expired.
func NewRegistry(factory *Factory, size int, ttl time.Duration, onEvict func(id string)) *Registry {
	builder := gcache.New(size).LRU().Expiration(ttl)
	if onEvict != nil {
		builder = builder.EvictedFunc(func(key, _ interface{}) {
			onEvict(key.(string))
		})
	}
	return &Registry{factory: factory, cache: builder.Build()}
}

func (r *Registry) Factory() *Factory { return r.factory }

// Create starts a new view in the given mode ("" for the default).
func (r *Registry) Create(mode string) (models.ViewState, error) {
	m, err := r.factory.ParseMode(mode)
	if err != nil {
		return models.ViewState{}, err
	}
	v, err := r.factory.New(m)
	if err != nil {
		return models.ViewState{}, err
	}
	id := uuid.NewString()
	if err := r.cache.Set(id, &session{view: v}); err != nil {
		return models.ViewState{}, fmt.Errorf("store view: %w", err)
	}
	st := v.State()
	st.ID = id
	return st, nil
}

// Do runs fn against the view with exclusive access and returns the state
// afterwards. Touching a view restarts its idle timer.
func (r *Registry) Do(id string, fn func(View) error) (models.ViewState, error) {
	s, err := r.get(id)
	if err != nil {
		return models.ViewState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.ViewState{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if fn != nil {
		if err := fn(s.view); err != nil {
			return models.ViewState{}, err
		}
	}
	if r.cache.Has(id) {
		_ = r.cache.Set(id, s)
	}

	st := s.view.State()
	st.ID = id
	return st, nil
}

// Delete tears a view down. It reports whether the view existed.
func (r *Registry) Delete(id string) bool {
	s, err := r.get(id)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return r.cache.Remove(id)
}

// Len counts live views.
func (r *Registry) Len() int {
	return r.cache.Len(true)
}

func (r *Registry) get(id string) (*session, error) {
	raw, err := r.cache.Get(id)
	if errors.Is(err, gcache.KeyNotFoundError) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return raw.(*session), nil
}
