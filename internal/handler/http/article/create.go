package article

import (
	"encoding/json"
	"net/http"

	"blog-api/internal/handler/http/auth"
	"blog-api/internal/handler/http/respond"
	artUC "blog-api/internal/usecase/article"
)

type CreateHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事作成
// @Summary      記事作成
// @Description  新しい記事を作成します。status を省略すると下書きになります
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        article body Params true "記事情報 ({\"article\": {...}} 形式も可)"
// @Success      201 {object} DetailDTO "作成された記事"
// @Failure      400 {object} map[string]string "Bad request - malformed JSON"
// @Failure      401 {object} map[string]string "Authentication required"
// @Failure      422 {object} respond.ValidationErrorsBody "Validation failed"
// @Router       /articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body envelope
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, errMalformedBody)
		return
	}
	p := body.params()

	art, err := h.Svc.Create(r.Context(), auth.ActorFromContext(r.Context()), artUC.CreateInput{
		Title:  deref(p.Title),
		Body:   deref(p.Body),
		Status: deref(p.Status),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDetail(art))
}
