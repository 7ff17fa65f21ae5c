package article

import (
	"context"
	"net/http"

	"blog-api/internal/domain/policy"
	"blog-api/internal/handler/http/auth"
	"blog-api/internal/handler/http/respond"
	"blog-api/internal/repository"
	artUC "blog-api/internal/usecase/article"
)

type listFunc func(ctx context.Context, actor *policy.Actor) ([]repository.ArticleWithOwner, error)

// ListHandler renders a preview list. Which articles it shows depends on
// the use case method it was built with.
type ListHandler struct {
	list listFunc
}

// NewPublishedListHandler lists every published article.
//
// @Summary      公開記事一覧取得
// @Description  公開済みの記事を更新日時の新しい順に取得します
// @Tags         articles
// @Produce      json
// @Success      200 {array} PreviewDTO "公開記事一覧"
// @Failure      500 {object} map[string]string "サーバーエラー"
// @Router       /articles [get]
func NewPublishedListHandler(svc *artUC.Service) ListHandler {
	return ListHandler{list: svc.ListPublished}
}

// NewDraftListHandler lists the caller's drafts.
//
// @Summary      下書き一覧取得
// @Description  自分の下書き記事を更新日時の新しい順に取得します
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} PreviewDTO "下書き一覧"
// @Failure      401 {object} map[string]string "Authentication required"
// @Router       /articles/drafts [get]
func NewDraftListHandler(svc *artUC.Service) ListHandler {
	return ListHandler{list: svc.ListOwnDrafts}
}

// NewOwnPublishedListHandler lists the caller's published articles.
//
// @Summary      自分の公開記事一覧取得
// @Description  自分の公開済み記事を更新日時の新しい順に取得します
// @Tags         current
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} PreviewDTO "自分の公開記事一覧"
// @Failure      401 {object} map[string]string "Authentication required"
// @Router       /current/articles [get]
func NewOwnPublishedListHandler(svc *artUC.Service) ListHandler {
	return ListHandler{list: svc.ListOwnPublished}
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.list(r.Context(), auth.ActorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toPreviews(items))
}
