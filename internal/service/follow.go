package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/monitoring"
	"github.com/BloggingApp/blog-service/internal/repository"
	"go.uber.org/zap"
)

type followService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newFollowService(logger *zap.Logger, repo *repository.Repository) Follow {
	return &followService{
		logger: logger,
		repo:   repo,
	}
}

func (s *followService) findAuthor(ctx context.Context, username string) (*model.User, error) {
	author, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	return author, nil
}

// Follow creates the edge user -> author. Repeating it is a no-op.
func (s *followService) Follow(ctx context.Context, user *model.User, authorUsername string) error {
	author, err := s.findAuthor(ctx, authorUsername)
	if err != nil {
		return err
	}
	if author.ID == user.ID {
		return ErrSelfFollow
	}

	created, err := s.repo.Follow.Create(ctx, user.ID, author.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create follow(%s -> %s): %s", user.ID.String(), author.ID.String(), err.Error())
		return ErrInternal
	}
	if created {
		monitoring.FollowsCreated.Inc()
	}

	return nil
}

// Unfollow removes the edge user -> author. ErrNotFound when there is none.
func (s *followService) Unfollow(ctx context.Context, user *model.User, authorUsername string) error {
	author, err := s.findAuthor(ctx, authorUsername)
	if err != nil {
		return err
	}
	if author.ID == user.ID {
		return ErrSelfFollow
	}

	if err := s.repo.Follow.Delete(ctx, user.ID, author.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to delete follow(%s -> %s): %s", user.ID.String(), author.ID.String(), err.Error())
		return ErrInternal
	}

	return nil
}
