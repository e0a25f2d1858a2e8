package postgres

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
)

type followRepo struct {
	db DBTX
}

func newFollowRepo(db DBTX) repository.Follow {
	return &followRepo{
		db: db,
	}
}

func (r *followRepo) Create(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		"INSERT INTO follows(user_id, author_id) VALUES($1, $2) ON CONFLICT (user_id, author_id) DO NOTHING",
		userID,
		authorID,
	)
	if err != nil {
		return false, mapErr(err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *followRepo) Delete(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM follows WHERE user_id = $1 AND author_id = $2", userID, authorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *followRepo) Exists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)",
		userID,
		authorID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
