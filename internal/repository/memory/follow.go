package memory

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
)

type followRepo struct {
	s *store
}

func (r *followRepo) Create(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return false, repository.ErrNotFound
	}
	if _, ok := r.s.users[authorID]; !ok {
		return false, repository.ErrNotFound
	}

	edge := model.Follow{UserID: userID, AuthorID: authorID}
	if _, ok := r.s.follows[edge]; ok {
		return false, nil
	}
	r.s.follows[edge] = struct{}{}

	return true, nil
}

func (r *followRepo) Delete(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	edge := model.Follow{UserID: userID, AuthorID: authorID}
	if _, ok := r.s.follows[edge]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.follows, edge)

	return nil
}

func (r *followRepo) Exists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.follows[model.Follow{UserID: userID, AuthorID: authorID}]
	return ok, nil
}
