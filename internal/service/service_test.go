package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/memory"
	"github.com/BloggingApp/blog-service/pkg/utils"
	"go.uber.org/zap"
)

var testAuth = config.AuthConfig{
	AccessSecret: []byte("test-secret"),
	TokenTTL:     time.Hour,
}

type fakeImages struct {
	uploaded []string
	removed  []string
}

func (f *fakeImages) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	url := "http://images/" + filename
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeImages) Remove(ctx context.Context, url string) error {
	f.removed = append(f.removed, url)
	return nil
}

type fixture struct {
	repo     *repository.Repository
	services *Service
	images   *fakeImages
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.New()
	images := &fakeImages{}
	return &fixture{
		repo:     repo,
		services: New(zap.NewNop(), repo, images, testAuth),
		images:   images,
	}
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	user, err := f.services.User.SignUp(context.Background(), dto.SignUpRequest{Username: username, Password: "password123"})
	if err != nil {
		t.Fatalf("signup %s: %v", username, err)
	}
	return user
}

func (f *fixture) group(t *testing.T, slug string) *model.Group {
	t.Helper()
	group, err := f.services.Group.Create(context.Background(), dto.GroupRequest{Title: "Group " + slug, Slug: slug, Description: "about " + slug})
	if err != nil {
		t.Fatalf("create group %s: %v", slug, err)
	}
	return group
}

func (f *fixture) post(t *testing.T, author *model.User, text string, group *model.Group) *model.Post {
	t.Helper()
	input := dto.PostInput{Text: text}
	if group != nil {
		input.Group = strconv.FormatInt(group.ID, 10)
	}
	post, err := f.services.Post.Create(context.Background(), author, input)
	if err != nil {
		t.Fatalf("create post %q: %v", text, err)
	}
	return post
}

func postTexts(posts []*model.FullPost) []string {
	texts := make([]string, 0, len(posts))
	for _, p := range posts {
		texts = append(texts, p.Post.Text)
	}
	return texts
}

func TestGlobalFeedPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "leo")
	for i := 1; i <= 13; i++ {
		f.post(t, author, fmt.Sprintf("post %d", i), nil)
	}

	first, err := f.services.Feed.GlobalFeed(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Posts) != PostsPerPage {
		t.Fatalf("first page has %d posts, want %d", len(first.Posts), PostsPerPage)
	}
	if first.Posts[0].Post.Text != "post 13" {
		t.Errorf("first post = %q, want newest", first.Posts[0].Post.Text)
	}
	if first.Page.NumPages != 2 || !first.Page.HasNext {
		t.Errorf("page = %+v", first.Page)
	}

	second, err := f.services.Feed.GlobalFeed(ctx, "2")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(postTexts(second.Posts), ","); got != "post 3,post 2,post 1" {
		t.Errorf("second page = %s", got)
	}

	clamped, err := f.services.Feed.GlobalFeed(ctx, "99")
	if err != nil {
		t.Fatal(err)
	}
	if clamped.Page.Number != 2 || len(clamped.Posts) != 3 {
		t.Errorf("out of range page resolved to %d with %d posts", clamped.Page.Number, len(clamped.Posts))
	}
}

func TestGroupFeedScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "leo")
	cats := f.group(t, "cats")
	dogs := f.group(t, "dogs")
	f.post(t, author, "cat post", cats)
	f.post(t, author, "dog post", dogs)
	f.post(t, author, "no group", nil)

	feed, err := f.services.Feed.GroupFeed(ctx, "cats", "")
	if err != nil {
		t.Fatal(err)
	}
	if feed.Group.Slug != "cats" {
		t.Errorf("group = %s", feed.Group.Slug)
	}
	if got := postTexts(feed.Posts); len(got) != 1 || got[0] != "cat post" {
		t.Errorf("cats feed = %v", got)
	}

	if _, err := f.services.Feed.GroupFeed(ctx, "birds", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown group err = %v, want ErrNotFound", err)
	}
}

func TestAuthorFeedFollowingFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")
	reader := f.user(t, "reader")
	f.post(t, author, "hello", nil)
	f.post(t, reader, "not mine", nil)

	anon, err := f.services.Feed.AuthorFeed(ctx, "author", nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if anon.Following {
		t.Error("anonymous viewer reported as following")
	}
	if got := postTexts(anon.Posts); len(got) != 1 || got[0] != "hello" {
		t.Errorf("author feed = %v", got)
	}

	if err := f.services.Follow.Follow(ctx, reader, "author"); err != nil {
		t.Fatal(err)
	}
	feed, err := f.services.Feed.AuthorFeed(ctx, "author", reader, "")
	if err != nil {
		t.Fatal(err)
	}
	if !feed.Following {
		t.Error("follower not reported as following")
	}

	self, err := f.services.Feed.AuthorFeed(ctx, "author", author, "")
	if err != nil {
		t.Fatal(err)
	}
	if self.Following {
		t.Error("author reported as following themselves")
	}

	if _, err := f.services.Feed.AuthorFeed(ctx, "ghost", nil, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown author err = %v, want ErrNotFound", err)
	}
}

func TestFollowingFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	followed := f.user(t, "followed")
	other := f.user(t, "other")
	reader := f.user(t, "reader")
	f.post(t, followed, "from followed", nil)
	f.post(t, other, "from other", nil)

	empty, err := f.services.Feed.FollowingFeed(ctx, reader.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Posts) != 0 || empty.Page.NumPages != 1 {
		t.Errorf("feed without follows = %v, page %+v", postTexts(empty.Posts), empty.Page)
	}

	if err := f.services.Follow.Follow(ctx, reader, "followed"); err != nil {
		t.Fatal(err)
	}
	feed, err := f.services.Feed.FollowingFeed(ctx, reader.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := postTexts(feed.Posts); len(got) != 1 || got[0] != "from followed" {
		t.Errorf("following feed = %v", got)
	}

	if err := f.services.Follow.Unfollow(ctx, reader, "followed"); err != nil {
		t.Fatal(err)
	}
	after, err := f.services.Feed.FollowingFeed(ctx, reader.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Posts) != 0 {
		t.Errorf("feed after unfollow = %v", postTexts(after.Posts))
	}
}

func TestFollowingFeedMergesAuthorsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")
	reader := f.user(t, "reader")

	f.post(t, alice, "alice 1", nil)
	f.post(t, bob, "bob 1", nil)
	f.post(t, carol, "carol 1", nil)
	f.post(t, alice, "alice 2", nil)
	f.post(t, bob, "bob 2", nil)

	for _, author := range []string{"alice", "bob"} {
		if err := f.services.Follow.Follow(ctx, reader, author); err != nil {
			t.Fatal(err)
		}
	}

	feed, err := f.services.Feed.FollowingFeed(ctx, reader.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	want := "bob 2,alice 2,bob 1,alice 1"
	if got := strings.Join(postTexts(feed.Posts), ","); got != want {
		t.Errorf("following feed = %s, want %s", got, want)
	}
	if feed.Page.Count != 4 {
		t.Errorf("count = %d, want 4", feed.Page.Count)
	}
}

func TestFollowRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")
	reader := f.user(t, "reader")

	if err := f.services.Follow.Follow(ctx, reader, "author"); err != nil {
		t.Fatal(err)
	}
	if err := f.services.Follow.Follow(ctx, reader, "author"); err != nil {
		t.Fatalf("repeated follow: %v", err)
	}
	if err := f.services.Follow.Unfollow(ctx, reader, "author"); err != nil {
		t.Fatal(err)
	}
	if exists, _ := f.repo.Follow.Exists(ctx, reader.ID, author.ID); exists {
		t.Error("single unfollow left an edge behind")
	}
	if err := f.services.Follow.Unfollow(ctx, reader, "author"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unfollow without edge err = %v, want ErrNotFound", err)
	}

	if err := f.services.Follow.Follow(ctx, author, "author"); !errors.Is(err, ErrSelfFollow) {
		t.Errorf("self follow err = %v, want ErrSelfFollow", err)
	}
	if exists, _ := f.repo.Follow.Exists(ctx, author.ID, author.ID); exists {
		t.Error("self follow created an edge")
	}

	if err := f.services.Follow.Follow(ctx, reader, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("follow unknown err = %v, want ErrNotFound", err)
	}
}

func TestCreatePostValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "leo")

	_, err := f.services.Post.Create(ctx, author, dto.PostInput{Text: "   ", Group: "42"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Fields["text"] != msgRequired {
		t.Errorf("text message = %q", verr.Fields["text"])
	}
	if verr.Fields["group"] != msgInvalidChoice {
		t.Errorf("group message = %q", verr.Fields["group"])
	}

	_, err = f.services.Post.Create(ctx, author, dto.PostInput{
		Text:  "with file",
		Image: &dto.ImageUpload{Filename: "notes.txt", ContentType: "text/plain", Reader: strings.NewReader("x")},
	})
	if !errors.As(err, &verr) || verr.Fields["image"] != msgInvalidImage {
		t.Errorf("non-image upload err = %v", err)
	}

	count, _ := f.repo.Post.Count(ctx, model.PostFilter{})
	if count != 0 {
		t.Errorf("invalid forms stored %d posts", count)
	}
}

func TestCreatePostWithImage(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "leo")

	post, err := f.services.Post.Create(context.Background(), author, dto.PostInput{
		Text:  "picture",
		Image: &dto.ImageUpload{Filename: "cat.png", ContentType: "image/png", Size: 3, Reader: strings.NewReader("png")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if post.Image != "http://images/cat.png" {
		t.Errorf("image = %q", post.Image)
	}
}

func TestEditPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")
	stranger := f.user(t, "stranger")
	group := f.group(t, "cats")
	post := f.post(t, author, "original", nil)

	if _, err := f.services.Post.Edit(ctx, stranger, post.ID, dto.PostInput{Text: "hijacked"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-author edit err = %v, want ErrForbidden", err)
	}

	edited, err := f.services.Post.Edit(ctx, author, post.ID, dto.PostInput{Text: "edited", Group: strconv.FormatInt(group.ID, 10)})
	if err != nil {
		t.Fatal(err)
	}
	if edited.Text != "edited" || edited.GroupID == nil || *edited.GroupID != group.ID {
		t.Errorf("edited = %+v", edited)
	}
	if !edited.PubDate.Equal(post.PubDate) {
		t.Errorf("pub_date changed from %v to %v", post.PubDate, edited.PubDate)
	}

	if _, err := f.services.Post.Edit(ctx, author, 999, dto.PostInput{Text: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("edit missing post err = %v, want ErrNotFound", err)
	}
}

func TestEditReplacesImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")

	post, err := f.services.Post.Create(ctx, author, dto.PostInput{
		Text:  "picture",
		Image: &dto.ImageUpload{Filename: "old.png", ContentType: "image/png", Reader: strings.NewReader("a")},
	})
	if err != nil {
		t.Fatal(err)
	}

	kept, err := f.services.Post.Edit(ctx, author, post.ID, dto.PostInput{Text: "no new file"})
	if err != nil {
		t.Fatal(err)
	}
	if kept.Image != post.Image {
		t.Errorf("image = %q, want kept %q", kept.Image, post.Image)
	}

	replaced, err := f.services.Post.Edit(ctx, author, post.ID, dto.PostInput{
		Text:  "new file",
		Image: &dto.ImageUpload{Filename: "new.png", ContentType: "image/png", Reader: strings.NewReader("b")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if replaced.Image != "http://images/new.png" {
		t.Errorf("image = %q", replaced.Image)
	}
	if len(f.images.removed) != 1 || f.images.removed[0] != post.Image {
		t.Errorf("removed = %v, want old image", f.images.removed)
	}
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")
	stranger := f.user(t, "stranger")
	post := f.post(t, author, "doomed", nil)

	if err := f.services.Post.Delete(ctx, stranger, post.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-author delete err = %v, want ErrForbidden", err)
	}
	if err := f.services.Post.Delete(ctx, author, post.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.services.Post.FindByID(ctx, post.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("find deleted post err = %v, want ErrNotFound", err)
	}
}

func TestCommentsOnDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")
	reader := f.user(t, "reader")
	post := f.post(t, author, "discuss", nil)

	if _, err := f.services.Comment.Create(ctx, reader, post.ID, dto.CommentForm{Text: "first"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.services.Comment.Create(ctx, author, post.ID, dto.CommentForm{Text: "second"}); err != nil {
		t.Fatal(err)
	}

	var verr *ValidationError
	if _, err := f.services.Comment.Create(ctx, reader, post.ID, dto.CommentForm{Text: " "}); !errors.As(err, &verr) {
		t.Errorf("empty comment err = %v, want ValidationError", err)
	}
	if _, err := f.services.Comment.Create(ctx, reader, 999, dto.CommentForm{Text: "lost"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("comment on missing post err = %v, want ErrNotFound", err)
	}

	detail, err := f.services.Post.FindByID(ctx, post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if detail.Author.Username != "author" {
		t.Errorf("detail author = %s", detail.Author.Username)
	}
	if len(detail.Comments) != 2 || detail.Comments[0].Comment.Text != "second" {
		t.Errorf("comments not newest first: %+v", detail.Comments)
	}
}

func TestGroupAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")
	group := f.group(t, "cats")
	post := f.post(t, author, "in group", group)

	var verr *ValidationError
	if _, err := f.services.Group.Create(ctx, dto.GroupRequest{Title: "Again", Slug: "cats", Description: "dup"}); !errors.As(err, &verr) || verr.Fields["slug"] == "" {
		t.Errorf("duplicate slug err = %v", err)
	}
	if _, err := f.services.Group.Create(ctx, dto.GroupRequest{Title: "Bad", Slug: "not a slug", Description: "x"}); !errors.As(err, &verr) {
		t.Errorf("invalid slug err = %v", err)
	}

	updated, err := f.services.Group.Update(ctx, "cats", dto.GroupRequest{Title: "Cats", Slug: "felines", Description: "meow"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ID != group.ID || updated.Slug != "felines" {
		t.Errorf("updated = %+v", updated)
	}

	if err := f.services.Group.Delete(ctx, "felines"); err != nil {
		t.Fatal(err)
	}
	detail, err := f.services.Post.FindByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("post did not survive group deletion: %v", err)
	}
	if detail.Post.Group != nil || detail.Post.Post.GroupID != nil {
		t.Errorf("post still references group: %+v", detail.Post)
	}
	if err := f.services.Group.Delete(ctx, "felines"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete missing group err = %v, want ErrNotFound", err)
	}
}

func TestSignUpAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.user(t, "leo")

	var verr *ValidationError
	if _, err := f.services.User.SignUp(ctx, dto.SignUpRequest{Username: "leo", Password: "password123"}); !errors.As(err, &verr) {
		t.Errorf("duplicate username err = %v", err)
	}
	if _, err := f.services.User.SignUp(ctx, dto.SignUpRequest{Username: "bad name", Password: "short"}); !errors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Errorf("invalid signup err = %v", err)
	}

	if _, err := f.services.User.Login(ctx, dto.LoginRequest{Username: "leo", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := f.services.User.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v", err)
	}

	resp, err := f.services.User.Login(ctx, dto.LoginRequest{Username: "leo", Password: "password123"})
	if err != nil {
		t.Fatal(err)
	}
	claims, err := utils.DecodeJWT(resp.AccessToken, testAuth.AccessSecret)
	if err != nil {
		t.Fatal(err)
	}
	if claims["id"] != user.ID.String() || claims["role"] != model.RoleUser {
		t.Errorf("claims = %v", claims)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")
	reader := f.user(t, "reader")
	own := f.post(t, author, "by author", nil)
	other := f.post(t, reader, "by reader", nil)
	if _, err := f.services.Comment.Create(ctx, author, other.ID, dto.CommentForm{Text: "author comment"}); err != nil {
		t.Fatal(err)
	}
	if err := f.services.Follow.Follow(ctx, reader, "author"); err != nil {
		t.Fatal(err)
	}

	if err := f.services.User.DeleteByUsername(ctx, "author"); err != nil {
		t.Fatal(err)
	}

	if _, err := f.services.Post.FindByID(ctx, own.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("author post survived: %v", err)
	}
	detail, err := f.services.Post.FindByID(ctx, other.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Comments) != 0 {
		t.Errorf("author comments survived: %+v", detail.Comments)
	}
	if exists, _ := f.repo.Follow.Exists(ctx, reader.ID, author.ID); exists {
		t.Error("follow edge survived")
	}
	if err := f.services.User.DeleteByUsername(ctx, "author"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}
