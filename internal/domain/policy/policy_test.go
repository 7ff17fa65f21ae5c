package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blog-api/internal/domain/entity"
)

func TestAuthorize(t *testing.T) {
	owner := &Actor{UserID: 1}
	other := &Actor{UserID: 2}

	published := &entity.Article{ID: 10, UserID: 1, Status: entity.StatusPublished}
	draft := &entity.Article{ID: 11, UserID: 1, Status: entity.StatusDraft}

	tests := []struct {
		name  string
		op    Operation
		actor *Actor
		art   *entity.Article
		want  Decision
	}{
		// public reads
		{name: "anonymous sees published", op: OpViewPublic, art: published, want: Allow},
		{name: "stranger sees published", op: OpViewPublic, actor: other, art: published, want: Allow},
		{name: "public draft is not found", op: OpViewPublic, actor: owner, art: draft, want: NotFound},
		{name: "public missing", op: OpViewPublic, want: NotFound},

		// own drafts
		{name: "draft needs identity", op: OpViewOwnDraft, art: draft, want: Unauthenticated},
		{name: "owner sees draft", op: OpViewOwnDraft, actor: owner, art: draft, want: Allow},
		{name: "other's draft is not found", op: OpViewOwnDraft, actor: other, art: draft, want: NotFound},
		{name: "published on drafts route", op: OpViewOwnDraft, actor: owner, art: published, want: NotFound},
		{name: "missing draft", op: OpViewOwnDraft, actor: owner, want: NotFound},

		// own published
		{name: "own published needs identity", op: OpListOwnPublished, want: Unauthenticated},
		{name: "own published allowed", op: OpListOwnPublished, actor: owner, art: published, want: Allow},

		// create
		{name: "create needs identity", op: OpCreate, want: Unauthenticated},
		{name: "create allowed", op: OpCreate, actor: other, want: Allow},

		// update / delete
		{name: "update needs identity", op: OpUpdate, art: published, want: Unauthenticated},
		{name: "update missing", op: OpUpdate, actor: owner, want: NotFound},
		{name: "update by stranger", op: OpUpdate, actor: other, art: published, want: Forbidden},
		{name: "update stranger's draft is forbidden", op: OpUpdate, actor: other, art: draft, want: Forbidden},
		{name: "update by owner", op: OpUpdate, actor: owner, art: draft, want: Allow},
		{name: "delete needs identity", op: OpDelete, art: published, want: Unauthenticated},
		{name: "delete missing", op: OpDelete, actor: other, want: NotFound},
		{name: "delete by stranger", op: OpDelete, actor: other, art: published, want: Forbidden},
		{name: "delete by owner", op: OpDelete, actor: owner, art: published, want: Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.op, tt.actor, tt.art)
			assert.Equal(t, tt.want, got, "Authorize(%s) = %s", tt.op, got)
		})
	}
}

func TestScopeFor(t *testing.T) {
	actor := &Actor{UserID: 5}

	tests := []struct {
		name      string
		op        Operation
		actor     *Actor
		wantScope Scope
		want      Decision
	}{
		{name: "public anonymous", op: OpViewPublic, wantScope: Scope{Status: entity.StatusPublished}, want: Allow},
		{name: "public ignores identity", op: OpViewPublic, actor: actor, wantScope: Scope{Status: entity.StatusPublished}, want: Allow},
		{name: "drafts", op: OpViewOwnDraft, actor: actor, wantScope: Scope{Status: entity.StatusDraft, OwnerID: 5}, want: Allow},
		{name: "drafts anonymous", op: OpViewOwnDraft, want: Unauthenticated},
		{name: "own published", op: OpListOwnPublished, actor: actor, wantScope: Scope{Status: entity.StatusPublished, OwnerID: 5}, want: Allow},
		{name: "own published anonymous", op: OpListOwnPublished, want: Unauthenticated},
		{name: "mutation has no scope", op: OpUpdate, actor: actor, want: Forbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, d := ScopeFor(tt.op, tt.actor)
			assert.Equal(t, tt.want, d)
			assert.Equal(t, tt.wantScope, scope)
		})
	}
}

func TestScope_Contains(t *testing.T) {
	s := Scope{Status: entity.StatusDraft, OwnerID: 1}
	assert.True(t, s.Contains(&entity.Article{UserID: 1, Status: entity.StatusDraft}))
	assert.False(t, s.Contains(&entity.Article{UserID: 2, Status: entity.StatusDraft}))
	assert.False(t, s.Contains(&entity.Article{UserID: 1, Status: entity.StatusPublished}))
	assert.False(t, s.Contains(nil))
	assert.True(t, Scope{}.Contains(&entity.Article{UserID: 9, Status: entity.StatusPublished}))
}
