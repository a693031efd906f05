package api

import (
	"errors"
	"net/http"
	"time"

	catalogdomain "chai-app-go/internal/domain/catalog"
)

type reviewRequest struct {
	UserID    uint   `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	DateAdded string `json:"date_added"`
}

type reviewResponse struct {
	ID        uint      `json:"id"`
	ChaiID    uint      `json:"chai_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	DateAdded time.Time `json:"date_added"`
	Title     string    `json:"title"`
}

func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	chaiID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	variety, err := h.Catalog.GetVariety(r.Context(), chaiID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrVarietyNotFound) {
			h.log.BusinessError("reviews.list: variety not found", err, "chai_id", chaiID)
			writeError(w, http.StatusNotFound, "variety_not_found", "chai variety not found")
			return
		}
		h.log.InternalError("reviews.list: get variety failed", err, "chai_id", chaiID)
		writeInternalError(w)
		return
	}

	reviews, err := h.Catalog.ListReviews(r.Context(), chaiID)
	if err != nil {
		h.log.InternalError("reviews.list: list failed", err, "chai_id", chaiID)
		writeInternalError(w)
		return
	}

	response := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		response = append(response, toReviewResponse(review, variety.Name))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	chaiID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
		return
	}
	dateAdded, err := parseDateParam(req.DateAdded)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date_added must be YYYY-MM-DD")
		return
	}

	review, err := h.Catalog.AddReview(r.Context(), catalogdomain.ReviewInput{
		ChaiID:    chaiID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		DateAdded: dateAdded,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalogdomain.ErrVarietyNotFound):
			h.log.BusinessError("reviews.create: variety not found", err, "chai_id", chaiID)
			writeError(w, http.StatusNotFound, "variety_not_found", "chai variety not found")
		case errors.Is(err, catalogdomain.ErrReviewerNotFound):
			h.log.BusinessError("reviews.create: reviewer not found", err, "chai_id", chaiID, "user_id", req.UserID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		default:
			h.log.InternalError("reviews.create: add review failed", err, "chai_id", chaiID, "user_id", req.UserID)
			writeInternalError(w)
		}
		return
	}

	if user, err := h.Users.GetUser(r.Context(), review.UserID); err == nil {
		review.User = user
	}
	chaiName := ""
	if variety, err := h.Catalog.GetVariety(r.Context(), chaiID); err == nil {
		chaiName = variety.Name
	}
	writeJSON(w, http.StatusCreated, toReviewResponse(*review, chaiName))
}

func (h *Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Catalog.DeleteReview(r.Context(), id); err != nil {
		if errors.Is(err, catalogdomain.ErrReviewNotFound) {
			h.log.BusinessError("reviews.delete: review not found", err, "review_id", id)
			writeError(w, http.StatusNotFound, "review_not_found", "review not found")
			return
		}
		h.log.InternalError("reviews.delete: delete failed", err, "review_id", id)
		writeInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toReviewResponse(review catalogdomain.ChaiReview, chaiName string) reviewResponse {
	response := reviewResponse{
		ID:        review.ID,
		ChaiID:    review.ChaiID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		DateAdded: review.DateAdded,
		Title:     review.Describe(chaiName),
	}
	if review.User != nil {
		response.Username = review.User.Username
	}
	return response
}
