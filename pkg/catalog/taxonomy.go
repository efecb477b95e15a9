package catalog

import "strings"

const (
	fallbackChannelLabel = "Canal"
	fallbackTypeLabel    = "Tipo"
)

// TypeInfo is one entry of a channel's type list.
type TypeInfo struct {
	Key   ContentType `json:"key"`
	Label string      `json:"label"`
}

// ChannelInfo describes a channel and its ordered content types.
type ChannelInfo struct {
	Key   Channel    `json:"key"`
	Label string     `json:"label"`
	Types []TypeInfo `json:"types"`
}

// taxonomy is the closed channel -> type mapping. Order is significant: the
// first type of a channel is its default.
var taxonomy = []ChannelInfo{
	{Key: ChannelSite, Label: "Site/Portal", Types: []TypeInfo{
		{Key: "publieditorial", Label: "Publieditorial"},
		{Key: "manchete", Label: "Manchete"},
		{Key: "artigo-opiniao", Label: "Artigo de opinião"},
		{Key: "publicidade-nativa", Label: "Publicidade nativa"},
	}},
	{Key: ChannelYouTube, Label: "YouTube", Types: []TypeInfo{
		{Key: "talks", Label: "TALKS (Geral)"},
		{Key: "one-talk", Label: "ONE TALK"},
		{Key: "big-talk", Label: "BIG TALK"},
		{Key: "little-talk", Label: "LITTLE TALK"},
		{Key: "shorts", Label: "SHORTS"},
	}},
	{Key: ChannelInstagram, Label: "Instagram", Types: []TypeInfo{
		{Key: "feed-reels", Label: "Feed & Reels"},
		{Key: "stories", Label: "Stories"},
	}},
	{Key: ChannelTikTok, Label: "TikTok", Types: []TypeInfo{{Key: "feed", Label: "Feed"}}},
	{Key: ChannelKwai, Label: "Kwai", Types: []TypeInfo{{Key: "feed", Label: "Feed"}}},
	{Key: ChannelFacebook, Label: "Facebook", Types: []TypeInfo{{Key: "feed", Label: "Feed"}}},
}

// Channels returns a copy of the taxonomy in display order.
func Channels() []ChannelInfo {
	out := make([]ChannelInfo, len(taxonomy))
	for i, c := range taxonomy {
		out[i] = c
		out[i].Types = append([]TypeInfo(nil), c.Types...)
	}
	return out
}

// LookupChannel returns the taxonomy entry for c.
func LookupChannel(c Channel) (ChannelInfo, bool) {
	for _, info := range taxonomy {
		if info.Key == c {
			return info, true
		}
	}
	return ChannelInfo{}, false
}

func IsValidChannel(c Channel) bool {
	_, ok := LookupChannel(c)
	return ok
}

// IsValidType reports whether t belongs to the type set of channel c.
func IsValidType(c Channel, t ContentType) bool {
	info, ok := LookupChannel(c)
	if !ok {
		return false
	}
	for _, ti := range info.Types {
		if ti.Key == t {
			return true
		}
	}
	return false
}

// TypesFor returns the ordered type keys allowed for c, or nil for an unknown channel.
func TypesFor(c Channel) []ContentType {
	info, ok := LookupChannel(c)
	if !ok {
		return nil
	}
	keys := make([]ContentType, len(info.Types))
	for i, ti := range info.Types {
		keys[i] = ti.Key
	}
	return keys
}

// DefaultType returns the first type of channel c.
func DefaultType(c Channel) (ContentType, bool) {
	info, ok := LookupChannel(c)
	if !ok || len(info.Types) == 0 {
		return "", false
	}
	return info.Types[0].Key, true
}

// ResetType keeps t when it is valid for c and otherwise falls back to the
// channel's default type. Used when a record's channel changes.
func ResetType(c Channel, t ContentType) ContentType {
	if IsValidType(c, t) {
		return t
	}
	def, _ := DefaultType(c)
	return def
}

// ChannelLabel returns the display label of c, or "Canal" for unknown channels.
func ChannelLabel(c Channel) string {
	if info, ok := LookupChannel(c); ok {
		return info.Label
	}
	return fallbackChannelLabel
}

// TypeLabel returns the display label of t within c, or "Tipo" when the pair is unknown.
func TypeLabel(c Channel, t ContentType) string {
	info, ok := LookupChannel(c)
	if !ok {
		return fallbackTypeLabel
	}
	for _, ti := range info.Types {
		if ti.Key == t {
			return ti.Label
		}
	}
	return fallbackTypeLabel
}

// BuildPath returns the canonical view path "/{channel}/{type}".
func BuildPath(c Channel, t ContentType) string {
	return "/" + string(c) + "/" + string(t)
}

// ParsePath is the inverse of BuildPath. It only accepts known channel/type pairs.
func ParsePath(path string) (Channel, ContentType, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 {
		return "", "", false
	}
	c, t := Channel(parts[0]), ContentType(parts[1])
	if !IsValidType(c, t) {
		return "", "", false
	}
	return c, t, true
}
