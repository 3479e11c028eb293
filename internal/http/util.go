package httpx

import (
	"net/http"
	"strconv"

	apperrors "github.com/koherence/ui-api/internal/errors"
)

// pathID parses the {id} path segment. On failure it writes a validation
// error and returns false.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		WriteAppError(w, apperrors.ValidationField("id", "id must be an integer"))
		return 0, false
	}
	return id, true
}
