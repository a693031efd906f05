package api

import (
	"errors"
	"net/http"
	"time"

	catalogdomain "chai-app-go/internal/domain/catalog"
)

type certificateRequest struct {
	CertificateNumber string `json:"certificate_number"`
	IssuedDate        string `json:"issued_date"`
	ValidUntil        string `json:"valid_until"`
}

type certificateResponse struct {
	ID                uint      `json:"id"`
	ChaiID            uint      `json:"chai_id"`
	CertificateNumber string    `json:"certificate_number"`
	IssuedDate        time.Time `json:"issued_date"`
	ValidUntil        time.Time `json:"valid_until"`
	Title             string    `json:"title"`
}

func (h *Handlers) IssueCertificate(w http.ResponseWriter, r *http.Request) {
	chaiID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req certificateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	validUntil, err := parseDateRequired(req.ValidUntil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "valid_until must be YYYY-MM-DD")
		return
	}
	issuedDate, err := parseDateParam(req.IssuedDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "issued_date must be YYYY-MM-DD")
		return
	}

	certificate, err := h.Catalog.IssueCertificate(r.Context(), catalogdomain.CertificateInput{
		ChaiID:            chaiID,
		CertificateNumber: req.CertificateNumber,
		IssuedDate:        issuedDate,
		ValidUntil:        validUntil,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalogdomain.ErrVarietyNotFound):
			h.log.BusinessError("certificates.issue: variety not found", err, "chai_id", chaiID)
			writeError(w, http.StatusNotFound, "variety_not_found", "chai variety not found")
		case errors.Is(err, catalogdomain.ErrCertificateExists):
			h.log.BusinessError("certificates.issue: certificate exists", err, "chai_id", chaiID)
			writeError(w, http.StatusConflict, "certificate_exists", "certificate already issued")
		case errors.Is(err, catalogdomain.ErrInvalidInput):
			h.log.BusinessError("certificates.issue: invalid input", err, "chai_id", chaiID)
			writeError(w, http.StatusBadRequest, "invalid_request", invalidMessage(err, catalogdomain.ErrInvalidInput))
		default:
			h.log.InternalError("certificates.issue: issue failed", err, "chai_id", chaiID)
			writeInternalError(w)
		}
		return
	}

	chaiName := ""
	if variety, err := h.Catalog.GetVariety(r.Context(), chaiID); err == nil {
		chaiName = variety.Name
	}
	writeJSON(w, http.StatusCreated, toCertificateResponse(*certificate, chaiName))
}

func (h *Handlers) RevokeCertificate(w http.ResponseWriter, r *http.Request) {
	chaiID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Catalog.RevokeCertificate(r.Context(), chaiID); err != nil {
		if errors.Is(err, catalogdomain.ErrCertificateNotFound) {
			h.log.BusinessError("certificates.revoke: certificate not found", err, "chai_id", chaiID)
			writeError(w, http.StatusNotFound, "certificate_not_found", "certificate not found")
			return
		}
		h.log.InternalError("certificates.revoke: revoke failed", err, "chai_id", chaiID)
		writeInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCertificateResponse(certificate catalogdomain.ChaiCertificate, chaiName string) certificateResponse {
	return certificateResponse{
		ID:                certificate.ID,
		ChaiID:            certificate.ChaiID,
		CertificateNumber: certificate.CertificateNumber,
		IssuedDate:        certificate.IssuedDate,
		ValidUntil:        certificate.ValidUntil,
		Title:             certificate.Describe(chaiName),
	}
}
