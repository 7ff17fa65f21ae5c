package article

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"blog-api/internal/domain/entity"
	"blog-api/internal/handler/http/auth"
	"blog-api/internal/repository"
	authSvc "blog-api/internal/service/auth"
	artUC "blog-api/internal/usecase/article"
)

/* ───────── スタブ実装 ───────── */

// 最小限のインメモリ ArticleRepository
type stubRepo struct {
	data   map[int64]*entity.Article
	nextID int64
	err    error
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Article{}, nextID: 1}
}

func (s *stubRepo) seed(a entity.Article) *entity.Article {
	a.ID = s.nextID
	s.nextID++
	s.data[a.ID] = &a
	return &a
}

func (s *stubRepo) withOwner(a *entity.Article) repository.ArticleWithOwner {
	cp := *a
	id := strconv.FormatInt(a.UserID, 10)
	return repository.ArticleWithOwner{
		Article:       &cp,
		Owner:         repository.UserSummary{ID: a.UserID, Name: "user" + id, Email: "user" + id + "@example.com"},
		CommentsCount: 2,
		LikesCount:    3,
	}
}

func (s *stubRepo) List(_ context.Context, f repository.ArticleFilter) ([]repository.ArticleWithOwner, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []repository.ArticleWithOwner{}
	for _, a := range s.data {
		if (f.Status == "" || a.Status == f.Status) && (f.OwnerID == 0 || a.UserID == f.OwnerID) {
			out = append(out, s.withOwner(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Article.UpdatedAt.After(out[j].Article.UpdatedAt) })
	return out, nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *stubRepo) GetWithOwner(_ context.Context, id int64) (*repository.ArticleWithOwner, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	out := s.withOwner(a)
	return &out, nil
}

func (s *stubRepo) Create(_ context.Context, a *entity.Article) error {
	if s.err != nil {
		return s.err
	}
	a.ID = s.nextID
	s.nextID++
	cp := *a
	s.data[a.ID] = &cp
	return nil
}

func (s *stubRepo) Update(_ context.Context, a *entity.Article) error {
	cur, ok := s.data[a.ID]
	if !ok || cur.UserID != a.UserID {
		return entity.ErrNotFound
	}
	cp := *a
	s.data[a.ID] = &cp
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id, ownerID int64) error {
	cur, ok := s.data[id]
	if !ok || cur.UserID != ownerID {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *stubRepo) CountByStatus(context.Context) (map[entity.Status]int64, error) {
	return nil, errors.New("not used")
}

/* ───────── ヘルパ ───────── */

var (
	base = time.Date(2025, 9, 20, 9, 0, 0, 0, time.UTC)
	now  = base.Add(time.Hour)
)

// asUser stands in for auth.Authenticate: X-Test-User carries the user id.
func asUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := r.Header.Get("X-Test-User"); v != "" {
			id, _ := strconv.ParseInt(v, 10, 64)
			r = r.WithContext(auth.WithIdentity(r.Context(), &authSvc.Identity{
				User:    &entity.User{ID: id},
				TokenID: "jti",
			}))
		}
		next.ServeHTTP(w, r)
	})
}

type fixture struct {
	repo *stubRepo
	h    http.Handler
	arts map[string]*entity.Article
}

// user1 と user2 の公開記事・下書き
func newFixture() *fixture {
	repo := newStub()
	published := base.Add(-time.Hour)
	arts := map[string]*entity.Article{
		"p1": repo.seed(entity.Article{UserID: 1, Title: "p1", Body: "body p1", Status: entity.StatusPublished, PublishedAt: &published, UpdatedAt: base.Add(1 * time.Minute)}),
		"d1": repo.seed(entity.Article{UserID: 1, Title: "d1", Body: "body d1", Status: entity.StatusDraft, UpdatedAt: base.Add(2 * time.Minute)}),
		"p2": repo.seed(entity.Article{UserID: 2, Title: "p2", Body: "body p2", Status: entity.StatusPublished, PublishedAt: &published, UpdatedAt: base.Add(3 * time.Minute)}),
		"d2": repo.seed(entity.Article{UserID: 2, Title: "d2", Body: "body d2", Status: entity.StatusDraft, UpdatedAt: base.Add(4 * time.Minute)}),
	}

	svc := &artUC.Service{Repo: repo, Now: func() time.Time { return now }}
	mux := http.NewServeMux()
	Register(mux, svc)
	return &fixture{repo: repo, h: asUser(mux), arts: arts}
}

func (f *fixture) do(method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	return rec
}

func idPath(prefix string, a *entity.Article) string {
	return prefix + strconv.FormatInt(a.ID, 10)
}

func decodeTitles(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var items []PreviewDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}
