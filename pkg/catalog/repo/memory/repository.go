package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// Repository implements catalog.Repository using in-memory storage
type Repository struct {
	mu       sync.RWMutex
	projects map[string]*catalog.ContentProject
	seq      map[string]uint64 // insertion order, kept across updates
	next     uint64
}

// New creates a new in-memory repository
func New() catalog.Repository {
	return &Repository{
		projects: make(map[string]*catalog.ContentProject),
		seq:      make(map[string]uint64),
	}
}

func (r *Repository) CreateProject(ctx context.Context, project *catalog.ContentProject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.seq[project.ID]; !exists {
		r.next++
		r.seq[project.ID] = r.next
	}
	r.projects[project.ID] = clone(project)
	return nil
}

func (r *Repository) GetProject(ctx context.Context, id string) (*catalog.ContentProject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, exists := r.projects[id]
	if !exists {
		return nil, catalog.ErrProjectNotFound
	}
	return clone(project), nil
}

func (r *Repository) UpdateProject(ctx context.Context, project *catalog.ContentProject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[project.ID]; !exists {
		return catalog.ErrProjectNotFound
	}
	r.projects[project.ID] = clone(project)
	return nil
}

func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[id]; !exists {
		return catalog.ErrProjectNotFound
	}
	delete(r.projects, id)
	delete(r.seq, id)
	return nil
}

// ListProjects snapshots the records latest-inserted first, so records with
// equal CreatedAt come back in the same order on every call.
func (r *Repository) ListProjects(ctx context.Context, filter catalog.Filter) ([]catalog.ContentProject, error) {
	r.mu.RLock()
	snapshot := make([]catalog.ContentProject, 0, len(r.projects))
	for _, p := range r.projects {
		snapshot = append(snapshot, *clone(p))
	}
	sort.Slice(snapshot, func(i, j int) bool {
		return r.seq[snapshot[i].ID] > r.seq[snapshot[j].ID]
	})
	r.mu.RUnlock()

	return catalog.Query(snapshot, filter), nil
}

// clone copies the record including its pointer fields so callers cannot
// mutate stored state.
func clone(p *catalog.ContentProject) *catalog.ContentProject {
	c := *p
	c.ViewCount = copyPtr(p.ViewCount)
	c.Segment = copyPtr(p.Segment)
	c.PublishedDate = copyPtr(p.PublishedDate)
	c.Client = copyPtr(p.Client)
	c.Description = copyPtr(p.Description)
	c.UpdatedAt = copyPtr(p.UpdatedAt)
	return &c
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
