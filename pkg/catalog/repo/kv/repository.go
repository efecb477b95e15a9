// Package kv implements the local list variant of catalog persistence: every
// record lives in one JSON array stored under a single key of a kv.Store.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/kv"
)

// DefaultKey is the well-known key of the record list
const DefaultKey = "REPOSITORIO_CM_CONTEUDOS_V1"

// Repository implements catalog.Repository over a key-value backend
type Repository struct {
	mu      sync.Mutex
	store   kv.Store
	key     string
	backend string
	logger  *slog.Logger
}

// Option configures a Repository
type Option func(*Repository)

// WithKey overrides the storage key of the record list
func WithKey(key string) Option {
	return func(r *Repository) {
		if key != "" {
			r.key = key
		}
	}
}

// WithBackendName sets the backend name reported in storage errors
func WithBackendName(name string) Option {
	return func(r *Repository) {
		r.backend = name
	}
}

// WithLogger sets the logger used to report unreadable data
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// New creates a repository that keeps its records in store
func New(store kv.Store, opts ...Option) *Repository {
	r := &Repository{
		store:   store,
		key:     DefaultKey,
		backend: "kv",
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// read loads the list. A missing key or corrupt JSON reads as an empty list;
// backend failures are returned as StorageError.
func (r *Repository) read(ctx context.Context) ([]catalog.ContentProject, error) {
	data, err := r.store.Get(ctx, r.key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return []catalog.ContentProject{}, nil
	}
	if err != nil {
		return nil, &catalog.StorageError{Backend: r.backend, Op: "read", Key: r.key, Err: err}
	}

	var projects []catalog.ContentProject
	if err := json.Unmarshal(data, &projects); err != nil {
		r.logger.WarnContext(ctx, "Discarding unreadable project list", "key", r.key, "error", err)
		return []catalog.ContentProject{}, nil
	}
	if projects == nil {
		projects = []catalog.ContentProject{}
	}
	return projects, nil
}

func (r *Repository) write(ctx context.Context, projects []catalog.ContentProject) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return &catalog.StorageError{Backend: r.backend, Op: "write", Key: r.key, Err: err}
	}
	if err := r.store.Put(ctx, r.key, data); err != nil {
		return &catalog.StorageError{Backend: r.backend, Op: "write", Key: r.key, Err: err}
	}
	return nil
}

func indexOf(projects []catalog.ContentProject, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateProject prepends the record, keeping the stored list newest first
func (r *Repository) CreateProject(ctx context.Context, project *catalog.ContentProject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.read(ctx)
	if err != nil {
		return err
	}
	projects = append([]catalog.ContentProject{*project}, projects...)
	return r.write(ctx, projects)
}

func (r *Repository) GetProject(ctx context.Context, id string) (*catalog.ContentProject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(projects, id)
	if i < 0 {
		return nil, catalog.ErrProjectNotFound
	}
	p := projects[i]
	return &p, nil
}

func (r *Repository) UpdateProject(ctx context.Context, project *catalog.ContentProject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.read(ctx)
	if err != nil {
		return err
	}
	i := indexOf(projects, project.ID)
	if i < 0 {
		return catalog.ErrProjectNotFound
	}
	projects[i] = *project
	return r.write(ctx, projects)
}

// DeleteProject removes the record; removing the last one deletes the key.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.read(ctx)
	if err != nil {
		return err
	}
	i := indexOf(projects, id)
	if i < 0 {
		return catalog.ErrProjectNotFound
	}
	projects = append(projects[:i], projects[i+1:]...)
	if len(projects) == 0 {
		if err := r.store.Delete(ctx, r.key); err != nil {
			return &catalog.StorageError{Backend: r.backend, Op: "delete", Key: r.key, Err: err}
		}
		return nil
	}
	return r.write(ctx, projects)
}

func (r *Repository) ListProjects(ctx context.Context, filter catalog.Filter) ([]catalog.ContentProject, error) {
	r.mu.Lock()
	projects, err := r.read(ctx)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return catalog.Query(projects, filter), nil
}
