package content

import (
	"net/http"

	"github.com/mediakite/catalogd/internal/common/apperrors"
)

// Base content error
var (
	ErrContent apperrors.Error = apperrors.New("content error").SetStatusCode(http.StatusInternalServerError)
)

// Validation errors
var (
	ErrInvalidQuery apperrors.Error = ErrContent.New("invalid query parameter").
			SetStatusCode(http.StatusBadRequest).
			SetExpandError(true)
	ErrMissingSearchQuery apperrors.Error = ErrContent.New("search query must not be empty").
				SetStatusCode(http.StatusBadRequest)
)

// Not found errors
var (
	ErrContentNotFound apperrors.Error = ErrContent.New("content not found").SetStatusCode(http.StatusNotFound)
)
