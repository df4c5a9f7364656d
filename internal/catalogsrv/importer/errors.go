package importer

import (
	"net/http"

	"github.com/mediakite/catalogd/internal/common/apperrors"
)

// Import errors carry their underlying cause in the message so a failed run
// surfaces a clear report instead of a silent partial import.
var (
	ErrImport apperrors.Error = apperrors.New("import error").
			SetStatusCode(http.StatusInternalServerError).
			SetExpandError(true)

	ErrFileUnreadable apperrors.Error = ErrImport.New("unable to read import file")
	ErrSchemaMismatch apperrors.Error = ErrImport.New("import file does not match the expected column schema")
	ErrBadRecord      apperrors.Error = ErrImport.New("malformed record in import file")
)
