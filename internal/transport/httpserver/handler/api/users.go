package api

import (
	"errors"
	"net/http"
	"time"

	userdomain "chai-app-go/internal/domain/user"
)

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type userResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	DateJoined time.Time `json:"date_joined"`
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, err := h.Users.CreateUser(r.Context(), userdomain.CreateUserInput{Username: req.Username, Email: req.Email})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrInvalidInput):
			h.log.BusinessError("users.create: invalid input", err)
			writeError(w, http.StatusBadRequest, "invalid_request", invalidMessage(err, userdomain.ErrInvalidInput))
		case errors.Is(err, userdomain.ErrUsernameTaken):
			h.log.BusinessError("users.create: username taken", err, "username", req.Username)
			writeError(w, http.StatusConflict, "username_taken", "username already exists")
		default:
			h.log.InternalError("users.create: create failed", err, "username", req.Username)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user, err := h.Users.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			h.log.BusinessError("users.get: user not found", err, "user_id", id)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("users.get: get failed", err, "user_id", id)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Users.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			h.log.BusinessError("users.delete: user not found", err, "user_id", id)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("users.delete: delete failed", err, "user_id", id)
		writeInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toUserResponse(user *userdomain.User) userResponse {
	return userResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		DateJoined: user.DateJoined,
	}
}
