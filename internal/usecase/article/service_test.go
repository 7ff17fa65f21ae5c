package article_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-api/internal/domain/entity"
	"blog-api/internal/domain/policy"
	"blog-api/internal/repository"
	artUC "blog-api/internal/usecase/article"
)

/* ───────── スタブ実装 ───────── */

// 最小限のインメモリ ArticleRepository
type stubRepo struct {
	data   map[int64]*entity.Article
	nextID int64
	err    error // 強制的にエラーを返したいとき用

	updateErr error
	deleted   []int64
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Article{}, nextID: 1}
}

func (s *stubRepo) seed(a entity.Article) *entity.Article {
	cp := a
	cp.ID = s.nextID
	s.nextID++
	s.data[cp.ID] = &cp
	return &cp
}

func (s *stubRepo) withOwner(a *entity.Article) repository.ArticleWithOwner {
	cp := *a
	return repository.ArticleWithOwner{
		Article: &cp,
		Owner:   repository.UserSummary{ID: a.UserID, Name: "user", Email: "user@example.com"},
	}
}

// --- ArticleRepository を満たす ---

func (s *stubRepo) List(_ context.Context, f repository.ArticleFilter) ([]repository.ArticleWithOwner, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []repository.ArticleWithOwner
	for _, a := range s.data {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.OwnerID != 0 && a.UserID != f.OwnerID {
			continue
		}
		out = append(out, s.withOwner(a))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Article.UpdatedAt.After(out[j].Article.UpdatedAt)
	})
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
	if s.updateErr != nil {
		return s.updateErr
	}
	cur, ok := s.data[a.ID]
	if !ok || cur.UserID != a.UserID {
		return entity.ErrNotFound
	}
	cp := *a
	s.data[a.ID] = &cp
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id, ownerID int64) error {
	if s.err != nil {
		return s.err
	}
	cur, ok := s.data[id]
	if !ok || cur.UserID != ownerID {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubRepo) CountByStatus(_ context.Context) (map[entity.Status]int64, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := map[entity.Status]int64{entity.StatusDraft: 0, entity.StatusPublished: 0}
	for _, a := range s.data {
		out[a.Status]++
	}
	return out, nil
}

/* ───────── ヘルパ ───────── */

var (
	base  = time.Date(2025, 9, 20, 9, 0, 0, 0, time.UTC)
	alice = &policy.Actor{UserID: 1}
	bob   = &policy.Actor{UserID: 2}
)

func ptr[T any](v T) *T { return &v }

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

// 公開記事・下書きを所有者ごとに用意する
func seeded() (*stubRepo, map[string]*entity.Article) {
	repo := newStub()
	published := base.Add(-time.Hour)
	arts := map[string]*entity.Article{
		"alicePublished": repo.seed(entity.Article{UserID: 1, Title: "a-pub", Body: "b", Status: entity.StatusPublished, PublishedAt: &published, UpdatedAt: base.Add(1 * time.Minute)}),
		"aliceDraft":     repo.seed(entity.Article{UserID: 1, Title: "a-draft", Body: "b", Status: entity.StatusDraft, UpdatedAt: base.Add(2 * time.Minute)}),
		"bobPublished":   repo.seed(entity.Article{UserID: 2, Title: "b-pub", Body: "b", Status: entity.StatusPublished, PublishedAt: &published, UpdatedAt: base.Add(3 * time.Minute)}),
		"bobDraft":       repo.seed(entity.Article{UserID: 2, Title: "b-draft", Body: "b", Status: entity.StatusDraft, UpdatedAt: base.Add(4 * time.Minute)}),
	}
	return repo, arts
}

func titles(items []repository.ArticleWithOwner) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Article.Title)
	}
	return out
}

/* ───────── Reads ───────── */

func TestService_ListPublished(t *testing.T) {
	repo, _ := seeded()
	svc := artUC.Service{Repo: repo}

	for _, actor := range []*policy.Actor{nil, alice} {
		got, err := svc.ListPublished(context.Background(), actor)
		require.NoError(t, err)
		assert.Equal(t, []string{"b-pub", "a-pub"}, titles(got))
	}
}

func TestService_ListOwnDrafts(t *testing.T) {
	repo, _ := seeded()
	svc := artUC.Service{Repo: repo}

	got, err := svc.ListOwnDrafts(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-draft"}, titles(got))

	_, err = svc.ListOwnDrafts(context.Background(), nil)
	assert.ErrorIs(t, err, artUC.ErrUnauthenticated)
}

func TestService_ListOwnPublished(t *testing.T) {
	repo, _ := seeded()
	svc := artUC.Service{Repo: repo}

	got, err := svc.ListOwnPublished(context.Background(), bob)
	require.NoError(t, err)
	assert.Equal(t, []string{"b-pub"}, titles(got))

	_, err = svc.ListOwnPublished(context.Background(), nil)
	assert.ErrorIs(t, err, artUC.ErrUnauthenticated)
}

func TestService_ListRepoError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("db down")
	svc := artUC.Service{Repo: repo}

	_, err := svc.ListPublished(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list articles")
	assert.NotErrorIs(t, err, artUC.ErrArticleNotFound)
}

func TestService_GetPublished(t *testing.T) {
	repo, arts := seeded()
	svc := artUC.Service{Repo: repo}

	tests := []struct {
		name    string
		actor   *policy.Actor
		id      int64
		wantErr error
	}{
		{name: "anonymous reads published", id: arts["alicePublished"].ID},
		{name: "owner reads own published", actor: alice, id: arts["alicePublished"].ID},
		{name: "own draft is hidden", actor: alice, id: arts["aliceDraft"].ID, wantErr: artUC.ErrArticleNotFound},
		{name: "other draft is hidden", id: arts["bobDraft"].ID, wantErr: artUC.ErrArticleNotFound},
		{name: "missing id", id: 999, wantErr: artUC.ErrArticleNotFound},
		{name: "zero id", id: 0, wantErr: artUC.ErrArticleNotFound},
		{name: "negative id", id: -1, wantErr: artUC.ErrArticleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetPublished(context.Background(), tt.actor, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, got.Article.ID)
		})
	}
}

func TestService_GetOwnDraft(t *testing.T) {
	repo, arts := seeded()
	svc := artUC.Service{Repo: repo}

	tests := []struct {
		name    string
		actor   *policy.Actor
		id      int64
		wantErr error
	}{
		{name: "own draft", actor: alice, id: arts["aliceDraft"].ID},
		{name: "other user's draft", actor: alice, id: arts["bobDraft"].ID, wantErr: artUC.ErrArticleNotFound},
		{name: "own published", actor: alice, id: arts["alicePublished"].ID, wantErr: artUC.ErrArticleNotFound},
		{name: "missing", actor: alice, id: 999, wantErr: artUC.ErrArticleNotFound},
		{name: "anonymous", id: arts["aliceDraft"].ID, wantErr: artUC.ErrUnauthenticated},
		{name: "anonymous with bad id", id: 0, wantErr: artUC.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetOwnDraft(context.Background(), tt.actor, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entity.StatusDraft, got.Article.Status)
			assert.Equal(t, tt.actor.UserID, got.Owner.ID)
		})
	}
}

/* ───────── Create ───────── */

func TestService_Create(t *testing.T) {
	now := base.Add(time.Hour)

	t.Run("default draft owned by caller", func(t *testing.T) {
		repo := newStub()
		svc := artUC.Service{Repo: repo, Now: fixedClock(now)}

		got, err := svc.Create(context.Background(), alice, artUC.CreateInput{Title: "t", Body: "b"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.Article.UserID)
		assert.Equal(t, entity.StatusDraft, got.Article.Status)
		assert.Nil(t, got.Article.PublishedAt)
		assert.Equal(t, now, got.Article.UpdatedAt)
		assert.Len(t, repo.data, 1)
	})

	t.Run("published stamps published_at", func(t *testing.T) {
		repo := newStub()
		svc := artUC.Service{Repo: repo, Now: fixedClock(now)}

		got, err := svc.Create(context.Background(), alice, artUC.CreateInput{Title: "t", Body: "b", Status: "published"})
		require.NoError(t, err)
		require.NotNil(t, got.Article.PublishedAt)
		assert.Equal(t, now, *got.Article.PublishedAt)
	})

	t.Run("validation errors are not persisted", func(t *testing.T) {
		repo := newStub()
		svc := artUC.Service{Repo: repo}

		_, err := svc.Create(context.Background(), alice, artUC.CreateInput{
			Title:  strings.Repeat("a", 76),
			Body:   strings.Repeat("b", 201),
			Status: "published",
		})
		require.ErrorIs(t, err, entity.ErrValidationFailed)
		verrs, ok := entity.AsValidationErrors(err)
		require.True(t, ok)
		assert.Equal(t, []string{
			"Title is too long (maximum is 75 characters)",
			"Body is too long (maximum is 200 characters)",
		}, verrs.Messages())
		assert.Empty(t, repo.data)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := artUC.Service{Repo: newStub()}
		_, err := svc.Create(context.Background(), alice, artUC.CreateInput{Title: "t", Body: "b", Status: "archived"})
		verrs, ok := entity.AsValidationErrors(err)
		require.True(t, ok)
		assert.Equal(t, []string{"status"}, verrs.Fields())
	})

	t.Run("anonymous", func(t *testing.T) {
		repo := newStub()
		svc := artUC.Service{Repo: repo}
		_, err := svc.Create(context.Background(), nil, artUC.CreateInput{Title: "t", Body: "b"})
		assert.ErrorIs(t, err, artUC.ErrUnauthenticated)
		assert.Empty(t, repo.data)
	})

	t.Run("repository error is wrapped", func(t *testing.T) {
		repo := newStub()
		repo.err = errors.New("insert failed")
		svc := artUC.Service{Repo: repo}
		_, err := svc.Create(context.Background(), alice, artUC.CreateInput{Title: "t", Body: "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create article: insert failed")
	})
}

/* ───────── Update ───────── */

func TestService_Update_Authorization(t *testing.T) {
	tests := []struct {
		name    string
		actor   *policy.Actor
		key     string
		id      int64
		wantErr error
	}{
		{name: "owner", actor: alice, key: "aliceDraft"},
		{name: "other owner", actor: bob, key: "aliceDraft", wantErr: artUC.ErrForbidden},
		{name: "other owner published", actor: bob, key: "alicePublished", wantErr: artUC.ErrForbidden},
		{name: "missing before ownership", actor: bob, id: 999, wantErr: artUC.ErrArticleNotFound},
		{name: "non-positive id", actor: alice, id: -5, wantErr: artUC.ErrArticleNotFound},
		{name: "anonymous", key: "aliceDraft", wantErr: artUC.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, arts := seeded()
			svc := artUC.Service{Repo: repo}
			id := tt.id
			if tt.key != "" {
				id = arts[tt.key].ID
			}

			got, err := svc.Update(context.Background(), tt.actor, artUC.UpdateInput{ID: id, Title: ptr("changed")})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if a, ok := repo.data[id]; ok {
					assert.NotEqual(t, "changed", a.Title)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "changed", got.Article.Title)
			assert.Equal(t, "changed", repo.data[id].Title)
		})
	}
}

func TestService_Update_Lifecycle(t *testing.T) {
	t1 := base.Add(time.Hour)
	t2 := t1.Add(time.Hour)

	repo, arts := seeded()
	id := arts["aliceDraft"].ID
	svc := artUC.Service{Repo: repo, Now: fixedClock(t1)}

	// draft → published stamps published_at
	got, err := svc.Update(context.Background(), alice, artUC.UpdateInput{ID: id, Status: ptr("published")})
	require.NoError(t, err)
	require.NotNil(t, got.Article.PublishedAt)
	assert.Equal(t, t1, *got.Article.PublishedAt)
	assert.Equal(t, t1, got.Article.UpdatedAt)

	// re-save while published keeps it
	svc.Now = fixedClock(t2)
	got, err = svc.Update(context.Background(), alice, artUC.UpdateInput{ID: id, Body: ptr("new body")})
	require.NoError(t, err)
	assert.Equal(t, t1, *got.Article.PublishedAt)
	assert.Equal(t, t2, got.Article.UpdatedAt)

	// back to draft keeps published_at
	got, err = svc.Update(context.Background(), alice, artUC.UpdateInput{ID: id, Status: ptr("draft")})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, got.Article.Status)
	assert.Equal(t, t1, *got.Article.PublishedAt)
}

func TestService_Update_ValidatesResultingState(t *testing.T) {
	repo := newStub()
	long := repo.seed(entity.Article{UserID: 1, Title: strings.Repeat("a", 76), Body: "b", Status: entity.StatusDraft})
	svc := artUC.Service{Repo: repo}

	_, err := svc.Update(context.Background(), alice, artUC.UpdateInput{ID: long.ID, Status: ptr("published")})
	verrs, ok := entity.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"title"}, verrs.Fields())
	assert.Equal(t, entity.StatusDraft, repo.data[long.ID].Status)

	_, err = svc.Update(context.Background(), alice, artUC.UpdateInput{ID: long.ID, Title: ptr("")})
	verrs, ok = entity.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Title can't be blank"}, verrs.Messages())
}

func TestService_Update_RowVanished(t *testing.T) {
	repo, arts := seeded()
	repo.updateErr = entity.ErrNotFound
	svc := artUC.Service{Repo: repo}

	_, err := svc.Update(context.Background(), alice, artUC.UpdateInput{ID: arts["aliceDraft"].ID, Title: ptr("x")})
	assert.ErrorIs(t, err, artUC.ErrArticleNotFound)
}

/* ───────── Delete ───────── */

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		actor   *policy.Actor
		key     string
		id      int64
		wantErr error
	}{
		{name: "owner", actor: alice, key: "alicePublished"},
		{name: "other owner", actor: alice, key: "bobDraft", wantErr: artUC.ErrForbidden},
		{name: "missing", actor: alice, id: 999, wantErr: artUC.ErrArticleNotFound},
		{name: "anonymous", key: "alicePublished", wantErr: artUC.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, arts := seeded()
			svc := artUC.Service{Repo: repo}
			id := tt.id
			if tt.key != "" {
				id = arts[tt.key].ID
			}

			err := svc.Delete(context.Background(), tt.actor, id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.deleted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int64{id}, repo.deleted)
		})
	}
}

func TestService_CountByStatus(t *testing.T) {
	repo, _ := seeded()
	svc := artUC.Service{Repo: repo}

	got, err := svc.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[entity.Status]int64{entity.StatusDraft: 2, entity.StatusPublished: 2}, got)
}
