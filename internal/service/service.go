package service

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PostsPerPage is the page size of every feed.
const PostsPerPage = 10

type Feed interface {
	GlobalFeed(ctx context.Context, page string) (*dto.Feed, error)
	GroupFeed(ctx context.Context, slug string, page string) (*dto.GroupFeed, error)
	// AuthorFeed reports Following for viewer; a nil viewer never follows.
	AuthorFeed(ctx context.Context, username string, viewer *model.User, page string) (*dto.ProfileFeed, error)
	FollowingFeed(ctx context.Context, viewerID uuid.UUID, page string) (*dto.Feed, error)
}

type Post interface {
	Create(ctx context.Context, author *model.User, input dto.PostInput) (*model.Post, error)
	Edit(ctx context.Context, editor *model.User, postID int64, input dto.PostInput) (*model.Post, error)
	Delete(ctx context.Context, user *model.User, postID int64) error
	FindByID(ctx context.Context, postID int64) (*dto.PostDetail, error)
}

type Comment interface {
	Create(ctx context.Context, author *model.User, postID int64, form dto.CommentForm) (*model.Comment, error)
}

type Follow interface {
	Follow(ctx context.Context, user *model.User, authorUsername string) error
	Unfollow(ctx context.Context, user *model.User, authorUsername string) error
}

type Group interface {
	Create(ctx context.Context, req dto.GroupRequest) (*model.Group, error)
	Update(ctx context.Context, slug string, req dto.GroupRequest) (*model.Group, error)
	Delete(ctx context.Context, slug string) error
	FindAll(ctx context.Context) ([]*model.Group, error)
}

type User interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*model.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	DeleteByUsername(ctx context.Context, username string) error
}

type Service struct {
	Feed
	Post
	Comment
	Follow
	Group
	User
}

// New wires the services. images may be nil, in which case uploads are rejected.
func New(logger *zap.Logger, repo *repository.Repository, images storage.ImageStore, auth config.AuthConfig) *Service {
	return &Service{
		Feed:    newFeedService(logger, repo),
		Post:    newPostService(logger, repo, images),
		Comment: newCommentService(logger, repo),
		Follow:  newFollowService(logger, repo),
		Group:   newGroupService(logger, repo),
		User:    newUserService(logger, repo, auth),
	}
}
