package repository

import (
	"context"
	"errors"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	// Update rewrites text, group and image. PubDate is never touched.
	Update(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	// Find returns posts matching filter ordered by pub_date DESC, id DESC.
	Find(ctx context.Context, filter model.PostFilter, limit int, offset int) ([]*model.FullPost, error)
	Count(ctx context.Context, filter model.PostFilter) (int, error)
	// Delete removes the post together with its comments.
	Delete(ctx context.Context, id int64) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	// FindPostComments returns comments ordered by created DESC, id DESC.
	FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error)
}

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// Delete removes the user with every post, comment and follow edge they own.
	Delete(ctx context.Context, id uuid.UUID) error
}

type Group interface {
	Create(ctx context.Context, group model.Group) (*model.Group, error)
	Update(ctx context.Context, group model.Group) (*model.Group, error)
	FindByID(ctx context.Context, id int64) (*model.Group, error)
	FindBySlug(ctx context.Context, slug string) (*model.Group, error)
	FindAll(ctx context.Context) ([]*model.Group, error)
	// Delete removes the group and detaches its posts.
	Delete(ctx context.Context, id int64) error
}

type Follow interface {
	// Create inserts the edge unless it already exists. created reports whether a row was added.
	Create(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (created bool, err error)
	// Delete returns ErrNotFound when there is no such edge.
	Delete(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) error
	Exists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error)
}

type Repository struct {
	Post    Post
	Comment Comment
	User    User
	Group   Group
	Follow  Follow
}

var ErrDuplicate = errors.New("record already exists")
