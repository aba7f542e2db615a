package auth

import (
	"context"
	"errors"

	autherrors "github.com/juanesscobar/taskok/internal/auth/errors"
	"github.com/juanesscobar/taskok/internal/shared/contextutil"
	"github.com/juanesscobar/taskok/internal/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (accessToken string, resp UserResponse, err error)
	Login(ctx context.Context, email, password string) (accessToken string, resp UserResponse, err error)
	GetMe(ctx context.Context, userID string) (*UserResponse, error)
}

type service struct {
	repo   Repository
	tokens *token.Issuer
	logger *zap.Logger
}

func NewService(repo Repository, tokens *token.Issuer, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, tokens: tokens, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (string, UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	// Query-then-create keeps the common path friendly; the unique index on
	// email is the real arbiter when two registrations race.
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return "", UserResponse{}, autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("register lookup failed", zap.String("request_id", rid), zap.Error(err))
		return "", UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", UserResponse{}, err
	}

	user := &User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     RoleEmployee,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Warn("register persist failed", zap.String("request_id", rid), zap.Error(err))
		return "", UserResponse{}, mapRepositoryError(err)
	}

	accessToken, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		s.logger.Error("register token issue failed", zap.String("request_id", rid), zap.Error(err))
		return "", UserResponse{}, err
	}

	s.logger.Info("user registered",
		zap.String("request_id", rid),
		zap.String("user_id", user.ID.String()),
	)

	return accessToken, mapToResponse(*user), nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, UserResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password look identical to the caller.
		return "", UserResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", UserResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		s.logger.Error("login token issue failed", zap.Error(err))
		return "", UserResponse{}, err
	}

	return accessToken, mapToResponse(*user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := mapToResponse(*u)
	return &resp, nil
}
