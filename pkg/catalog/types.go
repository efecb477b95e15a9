package catalog

import "time"

// Channel is a marketing distribution surface.
type Channel string

// ContentType is a content format scoped to a Channel.
type ContentType string

const (
	ChannelSite      Channel = "site"
	ChannelYouTube   Channel = "youtube"
	ChannelInstagram Channel = "instagram"
	ChannelTikTok    Channel = "tiktok"
	ChannelKwai      Channel = "kwai"
	ChannelFacebook  Channel = "facebook"
)

// ProjectDraft is a candidate payload as typed by a user. Every field is raw
// text; Validate turns it into ProjectFields.
type ProjectDraft struct {
	Name          string
	Channel       string
	Type          string
	ViewCount     string
	Segment       string
	PublishedDate string
	Client        string
	Link          string
	Description   string
}

// ProjectFields are the mutable, normalized fields of a project.
// Optional fields are nil when absent.
type ProjectFields struct {
	Name          string      `json:"name"`
	Channel       Channel     `json:"channel"`
	Type          ContentType `json:"type"`
	ViewCount     *int64      `json:"viewCount"`
	Segment       *string     `json:"segment"`
	PublishedDate *string     `json:"publishedDate"`
	Client        *string     `json:"client"`
	Link          string      `json:"link"`
	Description   *string     `json:"description"`
}

// ContentProject is one catalogued example of commercial content.
type ContentProject struct {
	ID string `json:"id"`
	ProjectFields
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Draft converts the record back into a raw payload, e.g. to prefill an edit form.
func (p ProjectFields) Draft() ProjectDraft {
	d := ProjectDraft{
		Name:          p.Name,
		Channel:       string(p.Channel),
		Type:          string(p.Type),
		Segment:       deref(p.Segment),
		PublishedDate: deref(p.PublishedDate),
		Client:        deref(p.Client),
		Link:          p.Link,
		Description:   deref(p.Description),
	}
	if p.ViewCount != nil {
		d.ViewCount = formatInt(*p.ViewCount)
	}
	return d
}

// Filter selects records in Query. Zero values mean "no constraint";
// Limit 0 means unbounded.
type Filter struct {
	Channel    Channel
	Type       ContentType
	SearchText string
	Limit      int
	Offset     int
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
