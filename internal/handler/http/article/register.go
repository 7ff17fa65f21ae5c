package article

import (
	"net/http"

	"blog-api/internal/handler/http/auth"
	artUC "blog-api/internal/usecase/article"
)

// Register mounts the article routes. The mux must be wrapped with
// auth.Authenticate so handlers see the caller.
func Register(mux *http.ServeMux, svc *artUC.Service) {
	mux.Handle("GET /api/v1/articles", NewPublishedListHandler(svc))
	mux.Handle("GET /api/v1/articles/{id}", NewPublishedGetHandler(svc))

	mux.Handle("POST /api/v1/articles", auth.RequireUser(CreateHandler{svc}))
	mux.Handle("PATCH /api/v1/articles/{id}", auth.RequireUser(UpdateHandler{svc}))
	mux.Handle("PUT /api/v1/articles/{id}", auth.RequireUser(UpdateHandler{svc}))
	mux.Handle("DELETE /api/v1/articles/{id}", auth.RequireUser(DeleteHandler{svc}))

	mux.Handle("GET /api/v1/articles/drafts", auth.RequireUser(NewDraftListHandler(svc)))
	mux.Handle("GET /api/v1/articles/drafts/{id}", auth.RequireUser(NewDraftGetHandler(svc)))
	mux.Handle("GET /api/v1/current/articles", auth.RequireUser(NewOwnPublishedListHandler(svc)))
}
