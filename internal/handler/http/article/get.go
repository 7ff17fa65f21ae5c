package article

import (
	"context"
	"net/http"

	"blog-api/internal/domain/policy"
	"blog-api/internal/handler/http/auth"
	"blog-api/internal/handler/http/pathutil"
	"blog-api/internal/handler/http/respond"
	"blog-api/internal/repository"
	artUC "blog-api/internal/usecase/article"
)

type getFunc func(ctx context.Context, actor *policy.Actor, id int64) (*repository.ArticleWithOwner, error)

// GetHandler renders one article in detail.
type GetHandler struct {
	get getFunc
}

// NewPublishedGetHandler shows a published article. Drafts are 404 for
// everyone, their owner included.
//
// @Summary      記事詳細取得
// @Description  指定されたIDの公開記事を取得します
// @Tags         articles
// @Produce      json
// @Param        id path int true "記事ID"
// @Success      200 {object} DetailDTO "記事詳細"
// @Failure      404 {object} map[string]string "Not found"
// @Router       /articles/{id} [get]
func NewPublishedGetHandler(svc *artUC.Service) GetHandler {
	return GetHandler{get: svc.GetPublished}
}

// NewDraftGetHandler shows one of the caller's drafts.
//
// @Summary      下書き詳細取得
// @Description  指定されたIDの自分の下書きを取得します
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "記事ID"
// @Success      200 {object} DetailDTO "下書き詳細"
// @Failure      401 {object} map[string]string "Authentication required"
// @Failure      404 {object} map[string]string "Not found"
// @Router       /articles/drafts/{id} [get]
func NewDraftGetHandler(svc *artUC.Service) GetHandler {
	return GetHandler{get: svc.GetOwnDraft}
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	art, err := h.get(r.Context(), auth.ActorFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDetail(art))
}
