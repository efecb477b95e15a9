package postgres

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-catalog/pkg/catalog"
)

func TestBuildListWhere(t *testing.T) {
	tests := []struct {
		name      string
		filter    catalog.Filter
		wantWhere string
		wantArgs  []interface{}
	}{
		{"empty", catalog.Filter{}, "", nil},
		{"channel", catalog.Filter{Channel: "site"}, " WHERE canal = $1", []interface{}{"site"}},
		{
			"channel and type",
			catalog.Filter{Channel: "youtube", Type: "shorts"},
			" WHERE canal = $1 AND tipo = $2",
			[]interface{}{"youtube", "shorts"},
		},
		{
			"search is trimmed and escaped",
			catalog.Filter{Type: "feed", SearchText: "  50%_off\\ "},
			" WHERE tipo = $1 AND " + searchExpr + ` ILIKE $2 ESCAPE '\'`,
			[]interface{}{"feed", `%50\%\_off\\%`},
		},
		{"blank search ignored", catalog.Filter{SearchText: "   "}, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildListWhere(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildListQuery(t *testing.T) {
	query, args := buildListQuery(catalog.Filter{Channel: "site", Limit: 10, Offset: 20})
	assert.Contains(t, query, " WHERE canal = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3")
	assert.Equal(t, []interface{}{"site", 10, 20}, args)

	query, args = buildListQuery(catalog.Filter{})
	assert.True(t, strings.HasSuffix(query, " ORDER BY created_at DESC, id DESC"))
	assert.Empty(t, args)
}

// setupPostgresTest connects to TEST_DATABASE_URL, migrates and truncates the table
func setupPostgresTest(t *testing.T) catalog.Repository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres test in short mode")
	}
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = Migrate(pool)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, "TRUNCATE conteudos")
	require.NoError(t, err)

	return NewWithPool(pool)
}

func TestPostgresRepository_CRUD(t *testing.T) {
	repo := setupPostgresTest(t)
	ctx := context.Background()

	var seq int
	svc, err := catalog.New(
		catalog.WithRepository(repo),
		catalog.WithClock(func() time.Time {
			seq++
			return time.Date(2024, 1, 1, 0, 0, seq, 0, time.UTC)
		}),
	)
	require.NoError(t, err)

	created, err := svc.Create(ctx, catalog.ProjectDraft{
		Name: "Case X", Channel: "site", Type: "manchete", Link: "https://a.co",
		ViewCount: "15", PublishedDate: "2024-03-05", Client: "Banco Y",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.Create(ctx, catalog.ProjectDraft{Name: "Loja", Channel: "youtube", Type: "shorts", Link: "https://b"})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Loja", all[0].Name)

	found, err := svc.Query(ctx, catalog.Filter{SearchText: "BANCO"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	page, err := svc.Query(ctx, catalog.Filter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, created.ID, page[0].ID)

	updated, err := svc.Update(ctx, created.ID, catalog.ProjectDraft{Name: "Case Z", Channel: "kwai", Type: "feed", Link: "https://z"})
	require.NoError(t, err)
	got, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Nil(t, got.PublishedDate)

	require.NoError(t, svc.Remove(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, catalog.ErrProjectNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, created.ID), catalog.ErrProjectNotFound)
	_, err = svc.Update(ctx, created.ID, catalog.ProjectDraft{Name: "x", Channel: "site", Type: "manchete", Link: "l"})
	assert.ErrorIs(t, err, catalog.ErrProjectNotFound)
}

func TestPostgresRepository_EqualTimestampsPageWithoutOverlap(t *testing.T) {
	repo := setupPostgresTest(t)
	ctx := context.Background()

	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	svc, err := catalog.New(
		catalog.WithRepository(repo),
		catalog.WithClock(func() time.Time { return fixed }),
		catalog.WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		_, err := svc.Create(ctx, catalog.ProjectDraft{Name: "Tie", Channel: "tiktok", Type: "feed", Link: "https://a.co"})
		require.NoError(t, err)
	}

	var paged []string
	for offset := 0; offset < 6; offset += 2 {
		page, err := svc.Query(ctx, catalog.Filter{Limit: 2, Offset: offset})
		require.NoError(t, err)
		for _, p := range page {
			paged = append(paged, p.ID)
		}
	}
	assert.Equal(t, []string{"id-6", "id-5", "id-4", "id-3", "id-2", "id-1"}, paged)
}
