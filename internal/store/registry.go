// Package store keeps the regional bookkeeping of which retail stores exist.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ErrStoreNotFound indicates the requested store is not registered.
var ErrStoreNotFound = errors.New("store not found")

// Store identifies one retail location.
type Store struct {
	ID     string
	Name   string
	Region string
}

// Repository persists the store table wholesale on mutation.
type Repository interface {
	LoadAll() ([]Store, error)
	SaveAll([]Store) error
}

// Registry owns the known stores.
type Registry struct {
	repo   Repository
	stores map[string]Store
}

// NewRegistry loads the store table from the repository.
func NewRegistry(repo Repository) (*Registry, error) {
	if repo == nil {
		return nil, errors.New("store: repository is required")
	}
	loaded, err := repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("store: load stores: %w", err)
	}
	stores := make(map[string]Store, len(loaded))
	for _, s := range loaded {
		stores[s.ID] = s
	}
	return &Registry{repo: repo, stores: stores}, nil
}

// Create registers a new store and persists the table.
func (r *Registry) Create(name, region string) (Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Store{}, errors.New("store: name is required")
	}
	s := Store{ID: uuid.NewString(), Name: name, Region: strings.TrimSpace(region)}
	r.stores[s.ID] = s
	if err := r.persist(); err != nil {
		return Store{}, err
	}
	return s, nil
}

// Get looks up a store by ID.
func (r *Registry) Get(id string) (Store, error) {
	s, ok := r.stores[strings.TrimSpace(id)]
	if !ok {
		return Store{}, fmt.Errorf("store: %s: %w", id, ErrStoreNotFound)
	}
	return s, nil
}

// List returns all registered stores sorted by name.
func (r *Registry) List() []Store {
	out := make([]Store, 0, len(r.stores))
	for _, s := range r.stores {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Remove deletes a store; it reports whether anything was removed.
func (r *Registry) Remove(id string) (bool, error) {
	if _, ok := r.stores[strings.TrimSpace(id)]; !ok {
		return false, nil
	}
	delete(r.stores, strings.TrimSpace(id))
	return true, r.persist()
}

func (r *Registry) persist() error {
	if err := r.repo.SaveAll(r.List()); err != nil {
		return fmt.Errorf("store: persist: %w", err)
	}
	return nil
}
