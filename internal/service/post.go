package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/monitoring"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/storage"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
	images storage.ImageStore
}

func newPostService(logger *zap.Logger, repo *repository.Repository, images storage.ImageStore) Post {
	return &postService{
		logger: logger,
		repo:   repo,
		images: images,
	}
}

// validate checks the form and resolves the group reference.
func (s *postService) validate(ctx context.Context, input dto.PostInput) (text string, groupID *int64, err error) {
	verr := &ValidationError{}

	text = strings.TrimSpace(input.Text)
	if text == "" {
		verr.add("text", msgRequired)
	}

	if raw := strings.TrimSpace(input.Group); raw != "" {
		id, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			verr.add("group", msgInvalidChoice)
		} else if _, findErr := s.repo.Group.FindByID(ctx, id); findErr != nil {
			if !errors.Is(findErr, repository.ErrNotFound) {
				s.logger.Sugar().Errorf("failed to find group(%d): %s", id, findErr.Error())
				return "", nil, ErrInternal
			}
			verr.add("group", msgInvalidChoice)
		} else {
			groupID = &id
		}
	}

	if input.Image != nil {
		if s.images == nil {
			verr.add("image", "Image uploads are disabled.")
		} else if !strings.HasPrefix(input.Image.ContentType, "image/") {
			verr.add("image", msgInvalidImage)
		}
	}

	return text, groupID, verr.orNil()
}

func (s *postService) upload(ctx context.Context, img *dto.ImageUpload) (string, error) {
	url, err := s.images.Upload(ctx, img.Filename, img.Reader, img.Size, img.ContentType)
	if err != nil {
		s.logger.Sugar().Errorf("failed to upload image(%s): %s", img.Filename, err.Error())
		return "", ErrInternal
	}
	return url, nil
}

func (s *postService) Create(ctx context.Context, author *model.User, input dto.PostInput) (*model.Post, error) {
	text, groupID, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	post := model.Post{
		AuthorID: author.ID,
		GroupID:  groupID,
		Text:     text,
	}
	if input.Image != nil {
		if post.Image, err = s.upload(ctx, input.Image); err != nil {
			return nil, err
		}
	}

	createdPost, err := s.repo.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", author.ID.String(), err.Error())
		return nil, ErrInternal
	}
	monitoring.PostsCreated.Inc()

	return createdPost, nil
}

func (s *postService) findPost(ctx context.Context, postID int64) (*model.FullPost, error) {
	post, err := s.repo.Post.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}
	return post, nil
}

// Edit rewrites text, group and image. Only the author may edit; without a
// new upload the current image is kept.
func (s *postService) Edit(ctx context.Context, editor *model.User, postID int64, input dto.PostInput) (*model.Post, error) {
	existing, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if existing.Post.AuthorID != editor.ID {
		return nil, ErrForbidden
	}

	text, groupID, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	post := existing.Post
	post.Text = text
	post.GroupID = groupID
	if input.Image != nil {
		if post.Image, err = s.upload(ctx, input.Image); err != nil {
			return nil, err
		}
	}

	updatedPost, err := s.repo.Post.Update(ctx, post)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to update post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	if input.Image != nil && existing.Post.Image != "" {
		s.removeImage(ctx, existing.Post.Image)
	}

	return updatedPost, nil
}

func (s *postService) Delete(ctx context.Context, user *model.User, postID int64) error {
	existing, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if existing.Post.AuthorID != user.ID {
		return ErrForbidden
	}

	if err := s.repo.Post.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to delete post(%d): %s", postID, err.Error())
		return ErrInternal
	}

	if existing.Post.Image != "" {
		s.removeImage(ctx, existing.Post.Image)
	}

	return nil
}

func (s *postService) removeImage(ctx context.Context, url string) {
	if s.images == nil {
		return
	}
	if err := s.images.Remove(ctx, url); err != nil {
		s.logger.Sugar().Errorf("failed to remove image(%s): %s", url, err.Error())
	}
}

func (s *postService) FindByID(ctx context.Context, postID int64) (*dto.PostDetail, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindPostComments(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return &dto.PostDetail{
		Post:     post,
		Author:   post.Author,
		Comments: comments,
	}, nil
}
