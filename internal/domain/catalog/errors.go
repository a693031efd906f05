package catalog

import "errors"

var (
	ErrVarietyNotFound     = errors.New("chai variety not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrStoreNotFound       = errors.New("store not found")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrCertificateExists   = errors.New("certificate already issued")
	ErrReviewerNotFound    = errors.New("reviewer not found")
	ErrInvalidInput        = errors.New("invalid input")
)
