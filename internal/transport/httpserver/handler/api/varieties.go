package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	catalogdomain "chai-app-go/internal/domain/catalog"
)

type varietyRequest struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Price       int    `json:"price"`
	Type        string `json:"type"`
	Description string `json:"description"`
	DateAdded   string `json:"date_added"`
}

type varietyResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	ImageURL    string    `json:"image_url"`
	Price       int       `json:"price"`
	DateAdded   time.Time `json:"date_added"`
	Type        string    `json:"type"`
	TypeLabel   string    `json:"type_label"`
	Description string    `json:"description"`
}

type varietyDetailResponse struct {
	varietyResponse
	Reviews     []reviewResponse     `json:"reviews"`
	Stores      []storeSummary       `json:"stores"`
	Certificate *certificateResponse `json:"certificate"`
}

func (h *Handlers) ListVarieties(w http.ResponseWriter, r *http.Request) {
	varieties, err := h.Catalog.ListVarieties(r.Context())
	if err != nil {
		h.log.InternalError("varieties.list: list failed", err)
		writeInternalError(w)
		return
	}

	response := make([]varietyResponse, 0, len(varieties))
	for i := range varieties {
		item, err := h.toVarietyResponse(r.Context(), &varieties[i])
		if err != nil {
			h.log.InternalError("varieties.list: image url failed", err, "chai_id", varieties[i].ID)
			writeInternalError(w)
			return
		}
		response = append(response, item)
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetVariety(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	detail, err := h.Catalog.GetVarietyDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrVarietyNotFound) {
			h.log.BusinessError("varieties.get: variety not found", err, "chai_id", id)
			writeError(w, http.StatusNotFound, "variety_not_found", "chai variety not found")
			return
		}
		h.log.InternalError("varieties.get: get detail failed", err, "chai_id", id)
		writeInternalError(w)
		return
	}

	base, err := h.toVarietyResponse(r.Context(), &detail.Variety)
	if err != nil {
		h.log.InternalError("varieties.get: image url failed", err, "chai_id", id)
		writeInternalError(w)
		return
	}

	response := varietyDetailResponse{
		varietyResponse: base,
		Reviews:         make([]reviewResponse, 0, len(detail.Reviews)),
		Stores:          make([]storeSummary, 0, len(detail.Stores)),
	}
	for _, review := range detail.Reviews {
		response.Reviews = append(response.Reviews, toReviewResponse(review, detail.Variety.Name))
	}
	for _, store := range detail.Stores {
		response.Stores = append(response.Stores, toStoreSummary(store))
	}
	if detail.Certificate != nil {
		cert := toCertificateResponse(*detail.Certificate, detail.Variety.Name)
		response.Certificate = &cert
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateVariety(w http.ResponseWriter, r *http.Request) {
	input, ok := readVarietyInput(w, r)
	if !ok {
		return
	}

	variety, err := h.Catalog.CreateVariety(r.Context(), input)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrInvalidInput) {
			h.log.BusinessError("varieties.create: invalid input", err)
			writeError(w, http.StatusBadRequest, "invalid_request", invalidMessage(err, catalogdomain.ErrInvalidInput))
			return
		}
		h.log.InternalError("varieties.create: create failed", err)
		writeInternalError(w)
		return
	}

	h.writeVariety(w, r, http.StatusCreated, variety, "varieties.create")
}

func (h *Handlers) UpdateVariety(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	input, ok := readVarietyInput(w, r)
	if !ok {
		return
	}

	variety, err := h.Catalog.UpdateVariety(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, catalogdomain.ErrVarietyNotFound):
			h.log.BusinessError("varieties.update: variety not found", err, "chai_id", id)
			writeError(w, http.StatusNotFound, "variety_not_found", "chai variety not found")
		case errors.Is(err, catalogdomain.ErrInvalidInput):
			h.log.BusinessError("varieties.update: invalid input", err, "chai_id", id)
			writeError(w, http.StatusBadRequest, "invalid_request", invalidMessage(err, catalogdomain.ErrInvalidInput))
		default:
			h.log.InternalError("varieties.update: update failed", err, "chai_id", id)
			writeInternalError(w)
		}
		return
	}

	h.writeVariety(w, r, http.StatusOK, variety, "varieties.update")
}

func (h *Handlers) DeleteVariety(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Catalog.DeleteVariety(r.Context(), id); err != nil {
		if errors.Is(err, catalogdomain.ErrVarietyNotFound) {
			h.log.BusinessError("varieties.delete: variety not found", err, "chai_id", id)
			writeError(w, http.StatusNotFound, "variety_not_found", "chai variety not found")
			return
		}
		h.log.InternalError("varieties.delete: delete failed", err, "chai_id", id)
		writeInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func readVarietyInput(w http.ResponseWriter, r *http.Request) (catalogdomain.VarietyInput, bool) {
	var req varietyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return catalogdomain.VarietyInput{}, false
	}

	dateAdded, err := parseDateParam(req.DateAdded)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date_added must be YYYY-MM-DD")
		return catalogdomain.VarietyInput{}, false
	}

	return catalogdomain.VarietyInput{
		Name:        req.Name,
		Image:       req.Image,
		Price:       req.Price,
		Type:        req.Type,
		Description: req.Description,
		DateAdded:   dateAdded,
	}, true
}

func (h *Handlers) writeVariety(w http.ResponseWriter, r *http.Request, status int, variety *catalogdomain.ChaiVariety, op string) {
	response, err := h.toVarietyResponse(r.Context(), variety)
	if err != nil {
		h.log.InternalError(op+": image url failed", err, "chai_id", variety.ID)
		writeInternalError(w)
		return
	}
	writeJSON(w, status, response)
}

func (h *Handlers) toVarietyResponse(ctx context.Context, variety *catalogdomain.ChaiVariety) (varietyResponse, error) {
	imageURL, err := h.images.ImageURL(ctx, variety.Image)
	if err != nil {
		return varietyResponse{}, err
	}
	return varietyResponse{
		ID:          variety.ID,
		Name:        variety.Name,
		Image:       variety.Image,
		ImageURL:    imageURL,
		Price:       variety.Price,
		DateAdded:   variety.DateAdded,
		Type:        string(variety.Type),
		TypeLabel:   variety.Type.Label(),
		Description: variety.Description,
	}, nil
}
