// Package wire defines the JSON bodies of the REST API. Field names are
// snake_case and map one to one onto catalog.ContentProject.
package wire

import (
	"strconv"
	"time"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// ConteudoInput is the request body of POST and PUT /conteudos
type ConteudoInput struct {
	NomeProjeto    string  `json:"nome_projeto"`
	Canal          string  `json:"canal"`
	Tipo           string  `json:"tipo"`
	Visualizacoes  *int64  `json:"visualizacoes"`
	Segmento       *string `json:"segmento"`
	DataPublicacao *string `json:"data_publicacao"`
	Cliente        *string `json:"cliente"`
	Link           string  `json:"link"`
	Descricao      *string `json:"descricao"`
}

// Conteudo is a stored record as returned by the API
type Conteudo struct {
	ID string `json:"id"`
	ConteudoInput
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// ToAPI maps a record onto its wire form
func ToAPI(p catalog.ContentProject) Conteudo {
	return Conteudo{
		ID:            p.ID,
		ConteudoInput: InputFromFields(p.ProjectFields),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToAPIList maps a slice of records, never returning nil
func ToAPIList(ps []catalog.ContentProject) []Conteudo {
	out := make([]Conteudo, len(ps))
	for i, p := range ps {
		out[i] = ToAPI(p)
	}
	return out
}

// FromAPI maps a wire record back onto the model
func FromAPI(c Conteudo) catalog.ContentProject {
	return catalog.ContentProject{
		ID: c.ID,
		ProjectFields: catalog.ProjectFields{
			Name:          c.NomeProjeto,
			Channel:       catalog.Channel(c.Canal),
			Type:          catalog.ContentType(c.Tipo),
			ViewCount:     c.Visualizacoes,
			Segment:       c.Segmento,
			PublishedDate: c.DataPublicacao,
			Client:        c.Cliente,
			Link:          c.Link,
			Description:   c.Descricao,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// InputFromFields builds a request body from validated fields
func InputFromFields(f catalog.ProjectFields) ConteudoInput {
	return ConteudoInput{
		NomeProjeto:    f.Name,
		Canal:          string(f.Channel),
		Tipo:           string(f.Type),
		Visualizacoes:  f.ViewCount,
		Segmento:       f.Segment,
		DataPublicacao: f.PublishedDate,
		Cliente:        f.Client,
		Link:           f.Link,
		Descricao:      f.Description,
	}
}

// Draft converts a request body into a raw payload for catalog.Validate
func (in ConteudoInput) Draft() catalog.ProjectDraft {
	d := catalog.ProjectDraft{
		Name:          in.NomeProjeto,
		Channel:       in.Canal,
		Type:          in.Tipo,
		Segment:       str(in.Segmento),
		PublishedDate: str(in.DataPublicacao),
		Client:        str(in.Cliente),
		Link:          in.Link,
		Description:   str(in.Descricao),
	}
	if in.Visualizacoes != nil {
		d.ViewCount = strconv.FormatInt(*in.Visualizacoes, 10)
	}
	return d
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
