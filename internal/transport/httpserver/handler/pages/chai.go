package pages

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	catalogdomain "chai-app-go/internal/domain/catalog"
	"chai-app-go/internal/web"
	"github.com/go-chi/chi/v5"
)

type varietyView struct {
	ID          uint
	Name        string
	ImageURL    string
	Price       int
	TypeLabel   string
	Description string
	DateAdded   time.Time
}

type reviewView struct {
	Title   string
	Rating  int
	Comment string
}

type certificateView struct {
	Title      string
	Number     string
	IssuedDate time.Time
	ValidUntil time.Time
}

type storeView struct {
	Name      string
	Location  string
	Varieties []varietyView
}

type allChaiPage struct {
	Varieties []varietyView
}

type chaiDetailPage struct {
	Variety     varietyView
	Reviews     []reviewView
	Stores      []storeView
	Certificate *certificateView
}

type chaiStoresPage struct {
	Stores []storeView
}

func (h *Handlers) AllChai(w http.ResponseWriter, r *http.Request) {
	varieties, err := h.Catalog.ListVarieties(r.Context())
	if err != nil {
		h.log.InternalError("pages.all_chai: list varieties failed", err)
		h.serverError(w, r)
		return
	}

	page := allChaiPage{Varieties: make([]varietyView, 0, len(varieties))}
	for i := range varieties {
		view, err := h.toVarietyView(r.Context(), &varieties[i])
		if err != nil {
			h.log.InternalError("pages.all_chai: image url failed", err, "chai_id", varieties[i].ID)
			h.serverError(w, r)
			return
		}
		page.Varieties = append(page.Varieties, view)
	}

	h.render(w, r, http.StatusOK, web.PageAllChai, page)
}

func (h *Handlers) ChaiDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "chaiID"), 10, 64)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	detail, err := h.Catalog.GetVarietyDetail(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, catalogdomain.ErrVarietyNotFound) {
			h.log.BusinessError("pages.chai_detail: variety not found", err, "chai_id", id)
			h.render(w, r, http.StatusNotFound, web.PageNotFound, "No chai with that id.")
			return
		}
		h.log.InternalError("pages.chai_detail: get detail failed", err, "chai_id", id)
		h.serverError(w, r)
		return
	}

	variety, err := h.toVarietyView(r.Context(), &detail.Variety)
	if err != nil {
		h.log.InternalError("pages.chai_detail: image url failed", err, "chai_id", id)
		h.serverError(w, r)
		return
	}

	page := chaiDetailPage{Variety: variety}
	for _, review := range detail.Reviews {
		page.Reviews = append(page.Reviews, reviewView{
			Title:   review.Describe(detail.Variety.Name),
			Rating:  review.Rating,
			Comment: review.Comment,
		})
	}
	for _, store := range detail.Stores {
		page.Stores = append(page.Stores, storeView{Name: store.Name, Location: store.Location})
	}
	if cert := detail.Certificate; cert != nil {
		page.Certificate = &certificateView{
			Title:      cert.Describe(detail.Variety.Name),
			Number:     cert.CertificateNumber,
			IssuedDate: cert.IssuedDate,
			ValidUntil: cert.ValidUntil,
		}
	}

	h.render(w, r, http.StatusOK, web.PageChaiDetail, page)
}

func (h *Handlers) ChaiStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.Catalog.ListStores(r.Context())
	if err != nil {
		h.log.InternalError("pages.chai_stores: list stores failed", err)
		h.serverError(w, r)
		return
	}

	page := chaiStoresPage{Stores: make([]storeView, 0, len(stores))}
	for _, store := range stores {
		view := storeView{Name: store.Name, Location: store.Location}
		for _, variety := range store.ChaiVarieties {
			view.Varieties = append(view.Varieties, varietyView{ID: variety.ID, Name: variety.Name})
		}
		page.Stores = append(page.Stores, view)
	}

	h.render(w, r, http.StatusOK, web.PageChaiStores, page)
}

func (h *Handlers) toVarietyView(ctx context.Context, variety *catalogdomain.ChaiVariety) (varietyView, error) {
	imageURL, err := h.images.ImageURL(ctx, variety.Image)
	if err != nil {
		return varietyView{}, err
	}
	return varietyView{
		ID:          variety.ID,
		Name:        variety.Name,
		ImageURL:    imageURL,
		Price:       variety.Price,
		TypeLabel:   variety.Type.Label(),
		Description: variety.Description,
		DateAdded:   variety.DateAdded,
	}, nil
}
