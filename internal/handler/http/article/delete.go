package article

import (
	"net/http"

	"blog-api/internal/handler/http/auth"
	"blog-api/internal/handler/http/pathutil"
	artUC "blog-api/internal/usecase/article"
)

type DeleteHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事削除
// @Summary      記事削除
// @Description  自分の記事をコメント・いいねと共に削除します
// @Tags         articles
// @Security     BearerAuth
// @Param        id path int true "記事ID"
// @Success      204 "No Content"
// @Failure      401 {object} map[string]string "Authentication required"
// @Failure      403 {object} map[string]string "Forbidden - not the owner"
// @Failure      404 {object} map[string]string "Not found"
// @Router       /articles/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), auth.ActorFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
