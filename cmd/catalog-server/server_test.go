package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-catalog/pkg/catalog/config"
)

func newTestServer(t *testing.T) *http.Server {
	t.Helper()
	cfg, err := config.Load(
		config.WithEnvironment("testing"),
		config.WithPort("0"),
		config.WithEventLogging(false),
	)
	require.NoError(t, err)

	store, cleanup, err := cfg.BuildStore(context.Background())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return newHTTPServer(cfg, store)
}

func doJSON(t *testing.T, srv *http.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestServer_Address(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, ":0", srv.Addr)
}

func TestServer_CreateAndList(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/conteudos", map[string]any{
		"nome_projeto":  "Loja X",
		"canal":         "youtube",
		"tipo":          "shorts",
		"visualizacoes": 1500,
		"link":          "https://youtu.be/x",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doJSON(t, srv, http.MethodGet, "/conteudos?canal=youtube", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Loja X", got[0]["nome_projeto"])
	assert.EqualValues(t, 1500, got[0]["visualizacoes"])
}

func TestServer_CORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/conteudos", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}
