package api

import (
	"errors"
	"net/http"

	catalogdomain "chai-app-go/internal/domain/catalog"
)

type storeRequest struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	VarietyIDs []uint `json:"variety_ids"`
}

type storeSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type storeVarietyResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type storeResponse struct {
	storeSummary
	Varieties []storeVarietyResponse `json:"varieties"`
}

func (h *Handlers) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.Catalog.ListStores(r.Context())
	if err != nil {
		h.log.InternalError("stores.list: list failed", err)
		writeInternalError(w)
		return
	}

	response := make([]storeResponse, 0, len(stores))
	for _, store := range stores {
		response = append(response, toStoreResponse(store))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetStore(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	store, err := h.Catalog.GetStore(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrStoreNotFound) {
			h.log.BusinessError("stores.get: store not found", err, "store_id", id)
			writeError(w, http.StatusNotFound, "store_not_found", "store not found")
			return
		}
		h.log.InternalError("stores.get: get failed", err, "store_id", id)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toStoreResponse(*store))
}

func (h *Handlers) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	store, err := h.Catalog.CreateStore(r.Context(), catalogdomain.StoreInput{
		Name:       req.Name,
		Location:   req.Location,
		VarietyIDs: req.VarietyIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalogdomain.ErrInvalidInput):
			h.log.BusinessError("stores.create: invalid input", err)
			writeError(w, http.StatusBadRequest, "invalid_request", invalidMessage(err, catalogdomain.ErrInvalidInput))
		case errors.Is(err, catalogdomain.ErrVarietyNotFound):
			h.log.BusinessError("stores.create: variety not found", err)
			writeError(w, http.StatusNotFound, "variety_not_found", "chai variety not found")
		default:
			h.log.InternalError("stores.create: create failed", err)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toStoreResponse(*store))
}

func (h *Handlers) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Catalog.DeleteStore(r.Context(), id); err != nil {
		if errors.Is(err, catalogdomain.ErrStoreNotFound) {
			h.log.BusinessError("stores.delete: store not found", err, "store_id", id)
			writeError(w, http.StatusNotFound, "store_not_found", "store not found")
			return
		}
		h.log.InternalError("stores.delete: delete failed", err, "store_id", id)
		writeInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AddStoreVariety(w http.ResponseWriter, r *http.Request) {
	storeID, chaiID, ok := parseStoreVarietyParams(w, r)
	if !ok {
		return
	}

	store, err := h.Catalog.AddVarietyToStore(r.Context(), storeID, chaiID)
	if err != nil {
		switch {
		case errors.Is(err, catalogdomain.ErrStoreNotFound):
			h.log.BusinessError("stores.add_variety: store not found", err, "store_id", storeID)
			writeError(w, http.StatusNotFound, "store_not_found", "store not found")
		case errors.Is(err, catalogdomain.ErrVarietyNotFound):
			h.log.BusinessError("stores.add_variety: variety not found", err, "store_id", storeID, "chai_id", chaiID)
			writeError(w, http.StatusNotFound, "variety_not_found", "chai variety not found")
		default:
			h.log.InternalError("stores.add_variety: add failed", err, "store_id", storeID, "chai_id", chaiID)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, toStoreResponse(*store))
}

func (h *Handlers) RemoveStoreVariety(w http.ResponseWriter, r *http.Request) {
	storeID, chaiID, ok := parseStoreVarietyParams(w, r)
	if !ok {
		return
	}

	store, err := h.Catalog.RemoveVarietyFromStore(r.Context(), storeID, chaiID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrStoreNotFound) {
			h.log.BusinessError("stores.remove_variety: store not found", err, "store_id", storeID)
			writeError(w, http.StatusNotFound, "store_not_found", "store not found")
			return
		}
		h.log.InternalError("stores.remove_variety: remove failed", err, "store_id", storeID, "chai_id", chaiID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toStoreResponse(*store))
}

func parseStoreVarietyParams(w http.ResponseWriter, r *http.Request) (uint, uint, bool) {
	storeID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return 0, 0, false
	}
	chaiID, err := parseIDParam(r, "variety_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return 0, 0, false
	}
	return storeID, chaiID, true
}

func toStoreSummary(store catalogdomain.Store) storeSummary {
	return storeSummary{ID: store.ID, Name: store.Name, Location: store.Location}
}

func toStoreResponse(store catalogdomain.Store) storeResponse {
	response := storeResponse{
		storeSummary: toStoreSummary(store),
		Varieties:    make([]storeVarietyResponse, 0, len(store.ChaiVarieties)),
	}
	for _, variety := range store.ChaiVarieties {
		response.Varieties = append(response.Varieties, storeVarietyResponse{
			ID:   variety.ID,
			Name: variety.Name,
			Type: string(variety.Type),
		})
	}
	return response
}
