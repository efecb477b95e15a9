package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/api"
	"github.com/tendant/simple-catalog/pkg/catalog/repo/memory"
)

// setupClientTest starts the real API over an in-memory store
func setupClientTest(t *testing.T, opts ...Option) *Client {
	t.Helper()
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	store, err := catalog.New(
		catalog.WithRepository(memory.New()),
		catalog.WithClock(func() time.Time {
			now = now.Add(time.Second)
			return now
		}),
	)
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(store, api.RouterConfig{}))
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", opts...)
}

func TestClient_Scenario(t *testing.T) {
	c := setupClientTest(t)
	ctx := context.Background()

	created, err := c.Create(ctx, catalog.ProjectDraft{Name: "Case X", Channel: "site", Type: "manchete", Link: "https://a.co"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.ViewCount)

	site, err := c.Query(ctx, catalog.Filter{Channel: catalog.ChannelSite})
	require.NoError(t, err)
	require.Len(t, site, 1)
	assert.Equal(t, *created, site[0])

	yt, err := c.Query(ctx, catalog.Filter{Channel: catalog.ChannelYouTube})
	require.NoError(t, err)
	assert.Empty(t, yt)
}

func TestClient_CRUD(t *testing.T) {
	c := setupClientTest(t)
	ctx := context.Background()

	p, err := c.Create(ctx, catalog.ProjectDraft{
		Name: "Case", Channel: "youtube", Type: "shorts", Link: "https://yt", ViewCount: "12", Client: "Banco Y", PublishedDate: "2024-05-02",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), *p.ViewCount)
	assert.Equal(t, "2024-05-02", *p.PublishedDate)

	got, err := c.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	found, err := c.Query(ctx, catalog.Filter{SearchText: "  banco "})
	require.NoError(t, err)
	require.Len(t, found, 1)

	updated, err := c.Update(ctx, p.ID, catalog.ProjectDraft{Name: "Case 2", Channel: "instagram", Type: "feed-reels", Link: "https://ig"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.NotNil(t, updated.UpdatedAt)
	assert.Nil(t, updated.Client)

	require.NoError(t, c.Remove(ctx, p.ID))
	found, err = c.Query(ctx, catalog.Filter{})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestClient_NotFoundIsStorageError(t *testing.T) {
	c := setupClientTest(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	var se *catalog.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Contains(t, se.Body, "Conteúdo não encontrado")
	assert.ErrorIs(t, err, catalog.ErrProjectNotFound)
	assert.Contains(t, err.Error(), "404 Not Found - ")

	assert.ErrorIs(t, c.Remove(ctx, "missing"), catalog.ErrProjectNotFound)
	_, err = c.Update(ctx, "missing", catalog.ProjectDraft{Name: "x", Channel: "site", Type: "manchete", Link: "l"})
	assert.ErrorIs(t, err, catalog.ErrProjectNotFound)
}

func TestClient_ValidatesBeforeRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Create(context.Background(), catalog.ProjectDraft{Name: "x", Channel: "site", Type: "manchete", Link: " "})
	assert.True(t, catalog.IsValidationError(err))
	_, err = c.Update(context.Background(), "id", catalog.ProjectDraft{Name: "x", Channel: "site", Type: "shorts", Link: "l"})
	assert.True(t, catalog.IsValidationError(err))
	assert.Zero(t, calls.Load())
}

func TestClient_ServerErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Query(context.Background(), catalog.Filter{})
	var se *catalog.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Status)
	assert.Equal(t, "database unavailable", se.Body)
	assert.Equal(t, "remote", se.Backend)
	assert.False(t, errors.Is(err, catalog.ErrProjectNotFound))
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, WithTimeout(time.Second)).List(context.Background())
	var se *catalog.StorageError
	require.True(t, errors.As(err, &se))
	assert.Zero(t, se.Status)
}

func TestClient_ListPagesThroughEverything(t *testing.T) {
	c := setupClientTest(t, WithPageSize(2))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.Create(ctx, catalog.ProjectDraft{Name: fmt.Sprintf("p%d", i), Channel: "kwai", Type: "feed", Link: "https://k"})
		require.NoError(t, err)
	}

	all, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, p := range all {
		assert.Equal(t, fmt.Sprintf("p%d", 4-i), p.Name)
	}
}

func TestClient_QueryEncodesFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	list, err := New(srv.URL).Query(context.Background(), catalog.Filter{
		Channel: "site", Type: "manchete", SearchText: "loja x", Limit: 10, Offset: 20,
	})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Equal(t, "canal=site&limit=10&offset=20&q=loja+x&tipo=manchete", gotQuery)
}

func TestClient_TimeoutDoesNotModifySharedClient(t *testing.T) {
	shared := &http.Client{Timeout: 5 * time.Second}

	c := New("", WithTimeout(time.Second), WithHTTPClient(shared))
	assert.Equal(t, 5*time.Second, shared.Timeout)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.NotSame(t, shared, c.httpClient)

	c = New("", WithHTTPClient(nil), WithTimeout(2*time.Second))
	require.NotNil(t, c.httpClient)
	assert.Equal(t, 2*time.Second, c.httpClient.Timeout)
	assert.Equal(t, DefaultBaseURL, c.baseURL)

	c = New("", WithHTTPClient(shared))
	assert.Same(t, shared, c.httpClient)
}
