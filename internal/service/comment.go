package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/monitoring"
	"github.com/BloggingApp/blog-service/internal/repository"
	"go.uber.org/zap"
)

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newCommentService(logger *zap.Logger, repo *repository.Repository) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
	}
}

func (s *commentService) Create(ctx context.Context, author *model.User, postID int64, form dto.CommentForm) (*model.Comment, error) {
	if _, err := s.repo.Post.FindByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	text := strings.TrimSpace(form.Text)
	if text == "" {
		verr := &ValidationError{}
		verr.add("text", msgRequired)
		return nil, verr
	}

	comment, err := s.repo.Comment.Create(ctx, model.Comment{
		PostID:   postID,
		AuthorID: author.ID,
		Text:     text,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to create comment on post(%d) by user(%s): %s", postID, author.ID.String(), err.Error())
		return nil, ErrInternal
	}
	monitoring.CommentsCreated.Inc()

	return comment, nil
}
