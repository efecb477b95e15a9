package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-catalog/pkg/catalog"
)

// CanalResponse describes one channel of the taxonomy
type CanalResponse struct {
	Canal string         `json:"canal"`
	Label string         `json:"label"`
	Tipos []TipoResponse `json:"tipos"`
}

// TipoResponse describes one content type and the path of its view
type TipoResponse struct {
	Tipo  string `json:"tipo"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// CanaisRoutes serves the read-only channel/type taxonomy
func CanaisRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", ListCanais)
	r.Get("/{canal}", GetCanal)
	return r
}

// ListCanais handles GET /canais
func ListCanais(w http.ResponseWriter, r *http.Request) {
	channels := catalog.Channels()
	resp := make([]CanalResponse, len(channels))
	for i, c := range channels {
		resp[i] = canalResponse(c)
	}
	render.JSON(w, r, resp)
}

// GetCanal handles GET /canais/{canal}
func GetCanal(w http.ResponseWriter, r *http.Request) {
	info, ok := catalog.LookupChannel(catalog.Channel(chi.URLParam(r, "canal")))
	if !ok {
		writeError(w, r, http.StatusNotFound, "Canal não encontrado", "")
		return
	}
	render.JSON(w, r, canalResponse(info))
}

func canalResponse(c catalog.ChannelInfo) CanalResponse {
	resp := CanalResponse{Canal: string(c.Key), Label: c.Label, Tipos: make([]TipoResponse, len(c.Types))}
	for i, t := range c.Types {
		resp.Tipos[i] = TipoResponse{Tipo: string(t.Key), Label: t.Label, Path: catalog.BuildPath(c.Key, t.Key)}
	}
	return resp
}
