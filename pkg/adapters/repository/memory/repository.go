package memory

import (
	"context"
	"sync"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

// Repository keeps values in process memory. Nothing survives a restart.
type Repository struct {
	mu       sync.RWMutex
	values   map[string]string
	profiles map[string]domain.Profile
}

func NewRepository() *Repository {
	return &Repository{
		values:   make(map[string]string),
		profiles: make(map[string]domain.Profile),
	}
}

func (r *Repository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return "", ports.ErrKeyNotFound
	}
	return v, nil
}

func (r *Repository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *Repository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

func (r *Repository) Close() error { return nil }

func (r *Repository) SaveProfile(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Email] = *p
	return nil
}

func (r *Repository) GetProfile(_ context.Context, email string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[email]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

var (
	_ ports.KeyValueStore = (*Repository)(nil)
	_ ports.ProfileStore  = (*Repository)(nil)
)
