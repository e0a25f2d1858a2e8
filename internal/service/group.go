package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

const (
	maxGroupTitle = 200
	maxGroupSlug  = 100
)

type groupService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newGroupService(logger *zap.Logger, repo *repository.Repository) Group {
	return &groupService{
		logger: logger,
		repo:   repo,
	}
}

func validateGroup(req dto.GroupRequest) (model.Group, error) {
	verr := &ValidationError{}
	group := model.Group{
		Title:       strings.TrimSpace(req.Title),
		Slug:        strings.TrimSpace(req.Slug),
		Description: strings.TrimSpace(req.Description),
	}

	switch {
	case group.Title == "":
		verr.add("title", msgRequired)
	case utf8.RuneCountInString(group.Title) > maxGroupTitle:
		verr.add("title", "Ensure this value has at most 200 characters.")
	}

	switch {
	case group.Slug == "":
		verr.add("slug", msgRequired)
	case len(group.Slug) > maxGroupSlug:
		verr.add("slug", "Ensure this value has at most 100 characters.")
	case !slugPattern.MatchString(group.Slug):
		verr.add("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
	}

	if group.Description == "" {
		verr.add("description", msgRequired)
	}

	return group, verr.orNil()
}

func slugTaken() error {
	verr := &ValidationError{}
	verr.add("slug", "Group with this slug already exists.")
	return verr
}

func (s *groupService) Create(ctx context.Context, req dto.GroupRequest) (*model.Group, error) {
	group, err := validateGroup(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Group.Create(ctx, group)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, slugTaken()
		}
		s.logger.Sugar().Errorf("failed to create group(%s): %s", group.Slug, err.Error())
		return nil, ErrInternal
	}

	return created, nil
}

func (s *groupService) findBySlug(ctx context.Context, slug string) (*model.Group, error) {
	group, err := s.repo.Group.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find group(%s): %s", slug, err.Error())
		return nil, ErrInternal
	}
	return group, nil
}

func (s *groupService) Update(ctx context.Context, slug string, req dto.GroupRequest) (*model.Group, error) {
	existing, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	group, err := validateGroup(req)
	if err != nil {
		return nil, err
	}
	group.ID = existing.ID

	updated, err := s.repo.Group.Update(ctx, group)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, slugTaken()
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to update group(%d): %s", group.ID, err.Error())
		return nil, ErrInternal
	}

	return updated, nil
}

// Delete removes the group; its posts stay with an empty group reference.
func (s *groupService) Delete(ctx context.Context, slug string) error {
	group, err := s.findBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.repo.Group.Delete(ctx, group.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to delete group(%d): %s", group.ID, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *groupService) FindAll(ctx context.Context) ([]*model.Group, error) {
	groups, err := s.repo.Group.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list groups: %s", err.Error())
		return nil, ErrInternal
	}
	return groups, nil
}
