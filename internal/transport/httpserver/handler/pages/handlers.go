// Package pages serves the server rendered site.
package pages

import (
	"net/http"

	catalogdomain "chai-app-go/internal/domain/catalog"
	"chai-app-go/internal/media"
	"chai-app-go/internal/web"
	"chai-app-go/pkg/logger"
)

type Handlers struct {
	Catalog  *catalogdomain.Service
	images   media.ImageURLs
	renderer *web.Renderer
	log      logger.Logger
}

func New(catalog *catalogdomain.Service, images media.ImageURLs, renderer *web.Renderer, log logger.Logger) *Handlers {
	return &Handlers{
		Catalog:  catalog,
		images:   images,
		renderer: renderer,
		log:      log,
	}
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, web.PageHome, nil)
}

func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, web.PageAbout, nil)
}

func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, web.PageContact, nil)
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, web.PageNotFound, nil)
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := h.renderer.Render(w, status, page, data); err != nil {
		h.log.InternalError("pages.render: render failed", err, "page", page, "path", r.URL.Path)
		h.serverError(w, r)
	}
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, http.StatusInternalServerError, web.PageServerError, nil); err != nil {
		h.log.InternalError("pages.render: error page failed", err, "path", r.URL.Path)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
