package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
)

func mustUser(t *testing.T, repo *repository.Repository, username string) *model.User {
	t.Helper()
	u, err := repo.User.Create(context.Background(), model.User{Username: username})
	if err != nil {
		t.Fatalf("create user %s: %s", username, err.Error())
	}
	return u
}

func mustPost(t *testing.T, repo *repository.Repository, post model.Post) *model.Post {
	t.Helper()
	p, err := repo.Post.Create(context.Background(), post)
	if err != nil {
		t.Fatalf("create post: %s", err.Error())
	}
	return p
}

func TestFindOrdersNewestFirstWithStableTies(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := New(WithClock(func() time.Time { return fixed }))
	ctx := context.Background()
	author := mustUser(t, repo, "leo")

	for i := 0; i < 5; i++ {
		mustPost(t, repo, model.Post{AuthorID: author.ID, Text: "same instant"})
	}

	first, err := repo.Post.Find(ctx, model.PostFilter{}, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Post.ID < first[i].Post.ID {
			t.Fatalf("ties not broken newest-inserted first: %d before %d", first[i-1].Post.ID, first[i].Post.ID)
		}
	}

	second, _ := repo.Post.Find(ctx, model.PostFilter{}, 10, 0)
	for i := range first {
		if first[i].Post.ID != second[i].Post.ID {
			t.Fatalf("order changed between calls at %d", i)
		}
	}
}

func TestFindOrdersByPubDate(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	current := base
	repo := New(WithClock(func() time.Time { return current }))
	author := mustUser(t, repo, "leo")

	current = base.Add(2 * time.Hour)
	a := mustPost(t, repo, model.Post{AuthorID: author.ID, Text: "a"})
	current = base
	b := mustPost(t, repo, model.Post{AuthorID: author.ID, Text: "b"})
	current = base.Add(time.Hour)
	c := mustPost(t, repo, model.Post{AuthorID: author.ID, Text: "c"})

	posts, _ := repo.Post.Find(context.Background(), model.PostFilter{}, 10, 0)
	want := []int64{a.ID, c.ID, b.ID}
	for idx, id := range want {
		if posts[idx].Post.ID != id {
			t.Fatalf("position %d: got %d, want %d", idx, posts[idx].Post.ID, id)
		}
	}
}

func TestGroupDeleteDetachesPosts(t *testing.T) {
	repo := New()
	ctx := context.Background()
	author := mustUser(t, repo, "leo")
	group, err := repo.Group.Create(ctx, model.Group{Title: "Cats", Slug: "cats"})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		mustPost(t, repo, model.Post{AuthorID: author.ID, GroupID: &group.ID, Text: "in group"})
	}
	mustPost(t, repo, model.Post{AuthorID: author.ID, Text: "no group"})

	if err := repo.Group.Delete(ctx, group.ID); err != nil {
		t.Fatal(err)
	}

	count, _ := repo.Post.Count(ctx, model.PostFilter{})
	if count != 4 {
		t.Fatalf("post count after group delete = %d, want 4", count)
	}
	posts, _ := repo.Post.Find(ctx, model.PostFilter{}, 10, 0)
	for _, p := range posts {
		if p.Post.GroupID != nil || p.Group != nil {
			t.Errorf("post %d still references a group", p.Post.ID)
		}
	}
	if _, err := repo.Group.FindBySlug(ctx, "cats"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("group still present: %v", err)
	}
}

func TestUserDeleteCascades(t *testing.T) {
	repo := New()
	ctx := context.Background()
	author := mustUser(t, repo, "leo")
	reader := mustUser(t, repo, "mia")

	var postIDs []int64
	for i := 0; i < 3; i++ {
		p := mustPost(t, repo, model.Post{AuthorID: author.ID, Text: "by leo"})
		postIDs = append(postIDs, p.ID)
		if _, err := repo.Comment.Create(ctx, model.Comment{PostID: p.ID, AuthorID: reader.ID, Text: "nice"}); err != nil {
			t.Fatal(err)
		}
	}
	readerPost := mustPost(t, repo, model.Post{AuthorID: reader.ID, Text: "by mia"})
	if _, err := repo.Comment.Create(ctx, model.Comment{PostID: readerPost.ID, AuthorID: author.ID, Text: "from leo"}); err != nil {
		t.Fatal(err)
	}
	repo.Follow.Create(ctx, reader.ID, author.ID)
	repo.Follow.Create(ctx, author.ID, reader.ID)

	if err := repo.User.Delete(ctx, author.ID); err != nil {
		t.Fatal(err)
	}

	for _, id := range postIDs {
		if _, err := repo.Post.FindByID(ctx, id); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("post %d survived author delete", id)
		}
		comments, _ := repo.Comment.FindPostComments(ctx, id)
		if len(comments) != 0 {
			t.Errorf("comments on post %d survived", id)
		}
	}

	comments, _ := repo.Comment.FindPostComments(ctx, readerPost.ID)
	if len(comments) != 0 {
		t.Errorf("comment written by deleted user survived")
	}

	if ok, _ := repo.Follow.Exists(ctx, reader.ID, author.ID); ok {
		t.Errorf("follow edge to deleted user survived")
	}
	count, _ := repo.Post.Count(ctx, model.PostFilter{})
	if count != 1 {
		t.Errorf("post count = %d, want 1", count)
	}
}

func TestFollowCreateIsIdempotent(t *testing.T) {
	repo := New()
	ctx := context.Background()
	u := mustUser(t, repo, "mia")
	a := mustUser(t, repo, "leo")

	created, err := repo.Follow.Create(ctx, u.ID, a.ID)
	if err != nil || !created {
		t.Fatalf("first: %v %v", created, err)
	}
	created, err = repo.Follow.Create(ctx, u.ID, a.ID)
	if err != nil || created {
		t.Fatalf("second: %v %v", created, err)
	}

	if err := repo.Follow.Delete(ctx, u.ID, a.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.Follow.Delete(ctx, u.ID, a.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestPostUpdateKeepsPubDate(t *testing.T) {
	calls := 0
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := New(WithClock(func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}))
	ctx := context.Background()
	author := mustUser(t, repo, "leo")
	p := mustPost(t, repo, model.Post{AuthorID: author.ID, Text: "first"})

	updated, err := repo.Post.Update(ctx, model.Post{ID: p.ID, Text: "second"})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.PubDate.Equal(p.PubDate) || updated.AuthorID != author.ID {
		t.Errorf("update changed immutable fields: %+v", updated)
	}
}

func TestDuplicateUsernameAndSlug(t *testing.T) {
	repo := New()
	ctx := context.Background()
	mustUser(t, repo, "leo")
	if _, err := repo.User.Create(ctx, model.User{Username: "leo"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("duplicate username: %v", err)
	}

	repo.Group.Create(ctx, model.Group{Title: "Cats", Slug: "cats"})
	if _, err := repo.Group.Create(ctx, model.Group{Title: "More cats", Slug: "cats"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("duplicate slug: %v", err)
	}
}
