package catalog

import "context"

// Store is the storage adapter used by handlers and the CLI. The local
// variant is built with New over a Repository; the remote variant lives in
// the client subpackage.
type Store interface {
	// List returns every record, newest first
	List(ctx context.Context) ([]ContentProject, error)

	// Query returns the records matching the filter, newest first
	Query(ctx context.Context, filter Filter) ([]ContentProject, error)

	// Get returns one record or ErrProjectNotFound
	Get(ctx context.Context, id string) (*ContentProject, error)

	// Create validates the draft, assigns id and creation time and persists it
	Create(ctx context.Context, draft ProjectDraft) (*ContentProject, error)

	// Update validates the draft and replaces every mutable field of the record
	Update(ctx context.Context, id string, draft ProjectDraft) (*ContentProject, error)

	// Remove deletes the record permanently
	Remove(ctx context.Context, id string) error
}

// Repository defines persistence for project records. Implementations store
// records as given; validation and id assignment happen in the service.
type Repository interface {
	CreateProject(ctx context.Context, project *ContentProject) error
	GetProject(ctx context.Context, id string) (*ContentProject, error)
	UpdateProject(ctx context.Context, project *ContentProject) error
	DeleteProject(ctx context.Context, id string) error

	// ListProjects returns the records matching filter ordered newest first
	ListProjects(ctx context.Context, filter Filter) ([]ContentProject, error)
}

// EventSink receives notifications about record lifecycle changes
type EventSink interface {
	ProjectCreated(ctx context.Context, project *ContentProject) error
	ProjectUpdated(ctx context.Context, project *ContentProject) error
	ProjectDeleted(ctx context.Context, id string) error
}
