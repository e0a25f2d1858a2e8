package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
)

type userRepo struct {
	db DBTX
}

func newUserRepo(db DBTX) repository.User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	user.CreatedAt = time.Now().UTC()

	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO users(id, username, password_hash, role, created_at) VALUES($1, $2, $3, $4, $5)",
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
	); err != nil {
		return nil, mapErr(err)
	}

	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(
		ctx,
		"SELECT u.id, u.username, u.password_hash, u.role, u.created_at FROM users u WHERE u.id = $1",
		id,
	).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	); err != nil {
		return nil, mapErr(err)
	}

	return &user, nil
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(
		ctx,
		"SELECT u.id, u.username, u.password_hash, u.role, u.created_at FROM users u WHERE u.username = $1",
		username,
	).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	); err != nil {
		return nil, mapErr(err)
	}

	return &user, nil
}

// Delete runs the author cascade in one transaction: comments written by the
// user or attached to their posts, their posts, follow edges in both
// directions, then the user row.
func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		"DELETE FROM comments WHERE author_id = $1 OR post_id IN (SELECT id FROM posts WHERE author_id = $1)",
		id,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM posts WHERE author_id = $1", id); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM follows WHERE user_id = $1 OR author_id = $1", id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return tx.Commit(ctx)
}
