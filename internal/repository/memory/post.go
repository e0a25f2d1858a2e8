package memory

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
)

type postRepo struct {
	s *store
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[post.AuthorID]; !ok {
		return nil, repository.ErrNotFound
	}
	if post.GroupID != nil {
		if _, ok := r.s.groups[*post.GroupID]; !ok {
			return nil, repository.ErrNotFound
		}
	}

	r.s.nextPostID++
	post.ID = r.s.nextPostID
	post.PubDate = r.s.now()
	stored := post
	r.s.posts[post.ID] = &stored

	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.posts[post.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if post.GroupID != nil {
		if _, ok := r.s.groups[*post.GroupID]; !ok {
			return nil, repository.ErrNotFound
		}
	}

	stored.Text = post.Text
	stored.GroupID = post.GroupID
	stored.Image = post.Image

	updated := *stored
	return &updated, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return r.s.fullPost(p), nil
}

func (r *postRepo) Find(ctx context.Context, filter model.PostFilter, limit int, offset int) ([]*model.FullPost, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := r.s.matching(filter)
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	posts := make([]*model.FullPost, 0, end-offset)
	for _, p := range matched[offset:end] {
		posts = append(posts, r.s.fullPost(p))
	}

	return posts, nil
}

func (r *postRepo) Count(ctx context.Context, filter model.PostFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.matching(filter)), nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.deletePost(id)

	return nil
}
