package article

import (
	"encoding/json"
	"net/http"

	"blog-api/internal/handler/http/auth"
	"blog-api/internal/handler/http/pathutil"
	"blog-api/internal/handler/http/respond"
	artUC "blog-api/internal/usecase/article"
)

type UpdateHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事更新
// @Summary      記事更新
// @Description  自分の記事を更新します。送信したフィールドのみ変更されます
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "記事ID"
// @Param        article body Params true "変更内容"
// @Success      200 {object} DetailDTO "更新後の記事"
// @Failure      400 {object} map[string]string "Bad request - malformed JSON"
// @Failure      401 {object} map[string]string "Authentication required"
// @Failure      403 {object} map[string]string "Forbidden - not the owner"
// @Failure      404 {object} map[string]string "Not found"
// @Failure      422 {object} respond.ValidationErrorsBody "Validation failed"
// @Router       /articles/{id} [patch]
// @Router       /articles/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body envelope
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, errMalformedBody)
		return
	}
	p := body.params()

	art, err := h.Svc.Update(r.Context(), auth.ActorFromContext(r.Context()), artUC.UpdateInput{
		ID:     id,
		Title:  p.Title,
		Body:   p.Body,
		Status: p.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDetail(art))
}
