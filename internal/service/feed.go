package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/pagination"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type feedService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newFeedService(logger *zap.Logger, repo *repository.Repository) Feed {
	return &feedService{
		logger: logger,
		repo:   repo,
	}
}

// compose counts the scoped posts, resolves the requested page against that
// count and loads only the posts on it.
func (s *feedService) compose(ctx context.Context, filter model.PostFilter, rawPage string) (*dto.Feed, error) {
	count, err := s.repo.Post.Count(ctx, filter)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count posts(%+v): %s", filter, err.Error())
		return nil, ErrInternal
	}

	page := pagination.Resolve(count, PostsPerPage, rawPage)

	posts, err := s.repo.Post.Find(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts(%+v) page(%d): %s", filter, page.Number, err.Error())
		return nil, ErrInternal
	}

	return &dto.Feed{
		Page:  page,
		Posts: posts,
	}, nil
}

func (s *feedService) GlobalFeed(ctx context.Context, page string) (*dto.Feed, error) {
	return s.compose(ctx, model.PostFilter{}, page)
}

func (s *feedService) GroupFeed(ctx context.Context, slug string, page string) (*dto.GroupFeed, error) {
	group, err := s.repo.Group.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find group(%s): %s", slug, err.Error())
		return nil, ErrInternal
	}

	feed, err := s.compose(ctx, model.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, err
	}

	return &dto.GroupFeed{
		Group: group,
		Feed:  *feed,
	}, nil
}

func (s *feedService) AuthorFeed(ctx context.Context, username string, viewer *model.User, page string) (*dto.ProfileFeed, error) {
	author, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	feed, err := s.compose(ctx, model.PostFilter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, err
	}

	following := false
	if viewer != nil && viewer.ID != author.ID {
		following, err = s.repo.Follow.Exists(ctx, viewer.ID, author.ID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to check follow(%s -> %s): %s", viewer.ID.String(), author.ID.String(), err.Error())
			return nil, ErrInternal
		}
	}

	return &dto.ProfileFeed{
		Author:    model.UserAuthor{ID: author.ID, Username: author.Username},
		Following: following,
		Feed:      *feed,
	}, nil
}

func (s *feedService) FollowingFeed(ctx context.Context, viewerID uuid.UUID, page string) (*dto.Feed, error) {
	return s.compose(ctx, model.PostFilter{FollowerID: &viewerID}, page)
}
