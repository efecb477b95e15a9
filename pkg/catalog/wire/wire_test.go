package wire

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-catalog/pkg/catalog"
)

func TestFromAPIToAPI_PreservesRecord(t *testing.T) {
	views := int64(900)
	segment, date := "Retail", "2024-01-31"
	updated := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	p := catalog.ContentProject{
		ID: "id-1",
		ProjectFields: catalog.ProjectFields{
			Name: "Case", Channel: catalog.ChannelInstagram, Type: "stories",
			ViewCount: &views, Segment: &segment, PublishedDate: &date, Link: "https://ig",
		},
		CreatedAt: time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC),
		UpdatedAt: &updated,
	}

	assert.Equal(t, p, FromAPI(ToAPI(p)))
}

func TestConteudo_SnakeCaseBody(t *testing.T) {
	views := int64(3)
	c := ToAPI(catalog.ContentProject{
		ID:            "x",
		ProjectFields: catalog.ProjectFields{Name: "N", Channel: "site", Type: "manchete", ViewCount: &views, Link: "L"},
		CreatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "N", body["nome_projeto"])
	assert.Equal(t, "site", body["canal"])
	assert.Equal(t, "manchete", body["tipo"])
	assert.EqualValues(t, 3, body["visualizacoes"])
	assert.Equal(t, "2024-01-01T00:00:00Z", body["created_at"])
	assert.Contains(t, body, "data_publicacao")
	assert.Nil(t, body["data_publicacao"])
	assert.Contains(t, body, "updated_at")
}

func TestConteudoInput_DraftValidatesLikeForm(t *testing.T) {
	views := int64(-4)
	client := "  Loja X "
	in := ConteudoInput{NomeProjeto: "Case", Canal: "site", Tipo: "manchete", Link: "https://a", Cliente: &client}

	f, err := catalog.Validate(in.Draft())
	require.NoError(t, err)
	assert.Equal(t, "Loja X", *f.Client)

	in.Visualizacoes = &views
	_, err = catalog.Validate(in.Draft())
	assert.True(t, catalog.IsValidationError(err))
}
