package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// service implements Store over a Repository
type service struct {
	repository Repository
	eventSink  EventSink
	now        func() time.Time
	newID      func() string
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithClock overrides the time source used for CreatedAt/UpdatedAt
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithIDGenerator overrides record id generation
func WithIDGenerator(newID func() string) Option {
	return func(s *service) {
		s.newID = newID
	}
}

// New creates a Store backed by the configured repository
func New(options ...Option) (Store, error) {
	s := &service{
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, ErrRepositoryRequired
	}
	if s.eventSink == nil {
		s.eventSink = NewNoopEventSink()
	}

	return s, nil
}

func (s *service) List(ctx context.Context) ([]ContentProject, error) {
	return s.repository.ListProjects(ctx, Filter{})
}

func (s *service) Query(ctx context.Context, filter Filter) ([]ContentProject, error) {
	return s.repository.ListProjects(ctx, filter)
}

func (s *service) Get(ctx context.Context, id string) (*ContentProject, error) {
	return s.repository.GetProject(ctx, id)
}

func (s *service) Create(ctx context.Context, draft ProjectDraft) (*ContentProject, error) {
	fields, err := Validate(draft)
	if err != nil {
		return nil, err
	}

	project := &ContentProject{
		ID:            s.newID(),
		ProjectFields: fields,
		CreatedAt:     s.timestamp(),
	}

	if err := s.repository.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	if err := s.eventSink.ProjectCreated(ctx, project); err != nil {
		slog.WarnContext(ctx, "Event sink failed", "event", "created", "id", project.ID, "error", err)
	}

	return project, nil
}

func (s *service) Update(ctx context.Context, id string, draft ProjectDraft) (*ContentProject, error) {
	fields, err := Validate(draft)
	if err != nil {
		return nil, err
	}

	existing, err := s.repository.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	updatedAt := s.timestamp()
	existing.ProjectFields = fields
	existing.UpdatedAt = &updatedAt

	if err := s.repository.UpdateProject(ctx, existing); err != nil {
		return nil, err
	}

	if err := s.eventSink.ProjectUpdated(ctx, existing); err != nil {
		slog.WarnContext(ctx, "Event sink failed", "event", "updated", "id", id, "error", err)
	}

	return existing, nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	if err := s.repository.DeleteProject(ctx, id); err != nil {
		return err
	}

	if err := s.eventSink.ProjectDeleted(ctx, id); err != nil {
		slog.WarnContext(ctx, "Event sink failed", "event", "deleted", "id", id, "error", err)
	}

	return nil
}

// timestamp is the current UTC time truncated to microseconds
func (s *service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
