package catalog

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Validate checks a candidate payload and returns its normalized fields.
// It trims every text field, enforces the channel/type taxonomy and turns
// empty optional fields into nil. It has no side effects.
func Validate(d ProjectDraft) (ProjectFields, error) {
	var f ProjectFields

	f.Name = strings.TrimSpace(d.Name)
	if f.Name == "" {
		return ProjectFields{}, &ValidationError{Field: "name", Message: "is required"}
	}

	f.Link = strings.TrimSpace(d.Link)
	if f.Link == "" {
		return ProjectFields{}, &ValidationError{Field: "link", Message: "is required"}
	}

	f.Channel = Channel(strings.ToLower(strings.TrimSpace(d.Channel)))
	if f.Channel == "" {
		return ProjectFields{}, &ValidationError{Field: "channel", Message: "is required"}
	}
	if !IsValidChannel(f.Channel) {
		return ProjectFields{}, &ValidationError{Field: "channel", Message: "unknown channel " + strconv.Quote(string(f.Channel))}
	}

	f.Type = ContentType(strings.ToLower(strings.TrimSpace(d.Type)))
	if f.Type == "" {
		return ProjectFields{}, &ValidationError{Field: "type", Message: "is required"}
	}
	if !IsValidType(f.Channel, f.Type) {
		return ProjectFields{}, &ValidationError{
			Field:   "type",
			Message: strconv.Quote(string(f.Type)) + " is not a type of channel " + string(f.Channel),
		}
	}

	views, err := parseViewCount(d.ViewCount)
	if err != nil {
		return ProjectFields{}, err
	}
	f.ViewCount = views

	date, err := parsePublishedDate(d.PublishedDate)
	if err != nil {
		return ProjectFields{}, err
	}
	f.PublishedDate = date

	f.Segment = optional(d.Segment)
	f.Client = optional(d.Client)
	f.Description = optional(d.Description)

	return f, nil
}

func parseViewCount(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &ValidationError{Field: "viewCount", Message: "must be a whole number"}
	}
	if n < 0 {
		return nil, &ValidationError{Field: "viewCount", Message: "must not be negative"}
	}
	return &n, nil
}

// parsePublishedDate accepts a calendar date or an RFC 3339 timestamp and
// normalizes both to YYYY-MM-DD.
func parsePublishedDate(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		s := t.Format(dateLayout)
		return &s, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		s := t.Format(dateLayout)
		return &s, nil
	}
	return nil, &ValidationError{Field: "publishedDate", Message: "must be a date in YYYY-MM-DD format"}
}

func optional(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
