package memory

import (
	"context"
	"sort"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
)

type commentRepo struct {
	s *store
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[comment.PostID]; !ok {
		return nil, repository.ErrNotFound
	}
	if _, ok := r.s.users[comment.AuthorID]; !ok {
		return nil, repository.ErrNotFound
	}

	r.s.nextCommentID++
	comment.ID = r.s.nextCommentID
	comment.Created = r.s.now()
	stored := comment
	r.s.comments[comment.ID] = &stored

	return &comment, nil
}

func (r *commentRepo) FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comments := []*model.FullComment{}
	for _, c := range r.s.comments {
		if c.PostID != postID {
			continue
		}
		full := &model.FullComment{Comment: *c}
		if author, ok := r.s.users[c.AuthorID]; ok {
			full.Author = model.UserAuthor{ID: author.ID, Username: author.Username}
		}
		comments = append(comments, full)
	}

	sort.Slice(comments, func(i, j int) bool {
		a, b := comments[i].Comment, comments[j].Comment
		if !a.Created.Equal(b.Created) {
			return a.Created.After(b.Created)
		}
		return a.ID > b.ID
	})

	return comments, nil
}
