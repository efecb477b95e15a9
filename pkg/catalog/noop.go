package catalog

import (
	"context"
	"log/slog"
)

// NoopEventSink is a no-operation implementation of EventSink
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

func (n *NoopEventSink) ProjectCreated(ctx context.Context, project *ContentProject) error {
	return nil
}

func (n *NoopEventSink) ProjectUpdated(ctx context.Context, project *ContentProject) error {
	return nil
}

func (n *NoopEventSink) ProjectDeleted(ctx context.Context, id string) error {
	return nil
}

// LoggingEventSink logs lifecycle events but takes no other action
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates a logging event sink. A nil logger uses slog.Default().
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

func (l *LoggingEventSink) ProjectCreated(ctx context.Context, project *ContentProject) error {
	l.logger.InfoContext(ctx, "Project created",
		"id", project.ID, "name", project.Name, "channel", project.Channel, "type", project.Type)
	return nil
}

func (l *LoggingEventSink) ProjectUpdated(ctx context.Context, project *ContentProject) error {
	l.logger.InfoContext(ctx, "Project updated", "id", project.ID, "name", project.Name)
	return nil
}

func (l *LoggingEventSink) ProjectDeleted(ctx context.Context, id string) error {
	l.logger.InfoContext(ctx, "Project deleted", "id", id)
	return nil
}
