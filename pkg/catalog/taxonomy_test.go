package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannels_OrderAndCopy(t *testing.T) {
	channels := Channels()
	keys := make([]Channel, len(channels))
	for i, c := range channels {
		keys[i] = c.Key
	}
	assert.Equal(t, []Channel{ChannelSite, ChannelYouTube, ChannelInstagram, ChannelTikTok, ChannelKwai, ChannelFacebook}, keys)

	channels[0].Types[0].Label = "mutated"
	assert.Equal(t, "Publieditorial", TypeLabel(ChannelSite, "publieditorial"))
}

func TestTypesFor(t *testing.T) {
	assert.Equal(t, []ContentType{"talks", "one-talk", "big-talk", "little-talk", "shorts"}, TypesFor(ChannelYouTube))
	assert.Equal(t, []ContentType{"feed-reels", "stories"}, TypesFor(ChannelInstagram))
	for _, c := range []Channel{ChannelTikTok, ChannelKwai, ChannelFacebook} {
		assert.Equal(t, []ContentType{"feed"}, TypesFor(c))
	}
	assert.Nil(t, TypesFor("orkut"))
}

func TestLabels(t *testing.T) {
	tests := []struct {
		channel  Channel
		typ      ContentType
		wantChan string
		wantType string
	}{
		{ChannelSite, "artigo-opiniao", "Site/Portal", "Artigo de opinião"},
		{ChannelYouTube, "talks", "YouTube", "TALKS (Geral)"},
		{ChannelInstagram, "feed-reels", "Instagram", "Feed & Reels"},
		{ChannelTikTok, "feed", "TikTok", "Feed"},
		{ChannelInstagram, "shorts", "Instagram", "Tipo"},
		{"orkut", "feed", "Canal", "Tipo"},
		{"", "", "Canal", "Tipo"},
	}

	for _, tt := range tests {
		t.Run(string(tt.channel)+"/"+string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.wantChan, ChannelLabel(tt.channel))
			assert.Equal(t, tt.wantType, TypeLabel(tt.channel, tt.typ))
		})
	}
}

func TestResetType(t *testing.T) {
	assert.Equal(t, ContentType("stories"), ResetType(ChannelInstagram, "stories"))
	assert.Equal(t, ContentType("feed-reels"), ResetType(ChannelInstagram, "shorts"))
	assert.Equal(t, ContentType("publieditorial"), ResetType(ChannelSite, ""))
	assert.Equal(t, ContentType(""), ResetType("orkut", "feed"))
}

func TestBuildAndParsePath(t *testing.T) {
	for _, c := range Channels() {
		for _, ti := range c.Types {
			path := BuildPath(c.Key, ti.Key)
			gotC, gotT, ok := ParsePath(path)
			assert.True(t, ok, path)
			assert.Equal(t, c.Key, gotC)
			assert.Equal(t, ti.Key, gotT)
		}
	}

	assert.Equal(t, "/youtube/shorts", BuildPath(ChannelYouTube, "shorts"))

	for _, bad := range []string{"", "/", "/site", "/site/shorts", "/orkut/feed", "/site/manchete/extra"} {
		_, _, ok := ParsePath(bad)
		assert.False(t, ok, bad)
	}
}
