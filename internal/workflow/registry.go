package workflow

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds DAGs by id.
type Registry struct {
	mu   sync.RWMutex
	dags map[string]*DAG
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{dags: map[string]*DAG{}}
}

// Register validates d and adds it. Ids must be unique.
func (r *Registry) Register(d *DAG) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dags[d.ID]; ok {
		return fmt.Errorf("workflow: dag %s already registered", d.ID)
	}
	r.dags[d.ID] = d
	return nil
}

// Get returns the DAG with id.
func (r *Registry) Get(id string) (*DAG, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dags[id]
	return d, ok
}

// List returns all DAGs sorted by id.
func (r *Registry) List() []*DAG {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*DAG, 0, len(r.dags))
	for _, d := range r.dags {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
