package article

import (
	"errors"
	"net/http"

	"blog-api/internal/domain/entity"
	"blog-api/internal/handler/http/pathutil"
	"blog-api/internal/handler/http/respond"
	artUC "blog-api/internal/usecase/article"
)

var errMalformedBody = errors.New("malformed JSON body")

// writeError maps use case errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	if verrs, ok := entity.AsValidationErrors(err); ok {
		respond.Validation(w, verrs)
		return
	}

	switch {
	case errors.Is(err, artUC.ErrUnauthenticated):
		respond.Error(w, http.StatusUnauthorized, artUC.ErrUnauthenticated)
	case errors.Is(err, artUC.ErrForbidden):
		respond.Error(w, http.StatusForbidden, artUC.ErrForbidden)
	case errors.Is(err, artUC.ErrArticleNotFound), errors.Is(err, pathutil.ErrInvalidID):
		respond.Error(w, http.StatusNotFound, artUC.ErrArticleNotFound)
	case errors.Is(err, errMalformedBody):
		respond.Error(w, http.StatusBadRequest, errMalformedBody)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
