package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]{1,150}$`)

const minPasswordLength = 8

type userService struct {
	logger *zap.Logger
	repo   *repository.Repository
	auth   config.AuthConfig
}

func newUserService(logger *zap.Logger, repo *repository.Repository, auth config.AuthConfig) User {
	return &userService{
		logger: logger,
		repo:   repo,
		auth:   auth,
	}
}

func (s *userService) SignUp(ctx context.Context, req dto.SignUpRequest) (*model.User, error) {
	verr := &ValidationError{}
	username := strings.TrimSpace(req.Username)

	switch {
	case username == "":
		verr.add("username", msgRequired)
	case !usernamePattern.MatchString(username):
		verr.add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
	if len(req.Password) < minPasswordLength {
		verr.add("password", "This password is too short. It must contain at least 8 characters.")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password: %s", err.Error())
		return nil, ErrInternal
	}

	user, err := s.repo.User.Create(ctx, model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			verr.add("username", "A user with that username already exists.")
			return nil, verr
		}
		s.logger.Sugar().Errorf("failed to create user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.User.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", req.Username, err.Error())
		return nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.NewJWT(jwt.MapClaims{
		"id":   user.ID.String(),
		"role": user.Role,
	}, s.auth.AccessSecret, s.auth.TokenTTL)
	if err != nil {
		s.logger.Sugar().Errorf("failed to sign token for user(%s): %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	return &dto.LoginResponse{
		AccessToken: token,
		Username:    user.Username,
	}, nil
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}
	return user, nil
}

// DeleteByUsername removes the user together with their posts, comments and follow edges.
func (s *userService) DeleteByUsername(ctx context.Context, username string) error {
	user, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", username, err.Error())
		return ErrInternal
	}

	if err := s.repo.User.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to delete user(%s): %s", user.ID.String(), err.Error())
		return ErrInternal
	}

	return nil
}
