package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/varadpoddar/blog-services/internal/auth/dto"
	"github.com/varadpoddar/blog-services/internal/auth/password"
	"github.com/varadpoddar/blog-services/internal/auth/repository"
	"github.com/varadpoddar/blog-services/internal/auth/token"
	customerrors "github.com/varadpoddar/blog-services/internal/customErrors"
	"github.com/varadpoddar/blog-services/internal/database"
	"github.com/varadpoddar/blog-services/internal/dbx"
	"github.com/varadpoddar/blog-services/internal/models"
)

type AuthService interface {
	Signup(ctx context.Context, req dto.AuthRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.AuthRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, claims *token.Claims) (*models.User, error)
	HealthCheck(ctx context.Context) (*dto.HealthResponse, error)
}

type AuthServiceImpl struct {
	db      *sql.DB
	hasher  password.Hasher
	token   token.Token
	newRepo func(dbx.DBTX) repository.UserRepository

	// compared against when the username is unknown, so both login
	// failures cost one bcrypt verification
	dummyHash string
}

func NewAuthService(db *sql.DB, hasher password.Hasher, tok token.Token) (AuthService, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	return &AuthServiceImpl{
		db:        db,
		hasher:    hasher,
		token:     tok,
		newRepo:   repository.NewUserRepository,
		dummyHash: dummy,
	}, nil
}

func (s *AuthServiceImpl) Signup(ctx context.Context, req dto.AuthRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, customerrors.ErrPasswordTooLong
		}
		return nil, err
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)

		exists, err := repo.ExistsByUsername(ctx, req.Username)
		if err != nil {
			return err
		}
		if exists {
			return customerrors.ErrUsernameAlreadyExists
		}

		user, err = repo.Create(ctx, req.Username, hash)
		if database.IsUniqueViolation(err) {
			return customerrors.ErrUsernameAlreadyExists
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User signed up")
	return s.respond(user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, req dto.AuthRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log := logrus.WithField("username", req.Username)

	user, err := s.newRepo(s.db).GetByUsername(ctx, req.Username)
	if errors.Is(err, customerrors.ErrNotFound) {
		s.hasher.Verify(s.dummyHash, req.Password)
		log.Warn("Login failed: unknown user")
		return nil, customerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		log.Warn("Login failed: wrong password")
		return nil, customerrors.ErrInvalidCredentials
	}

	return s.respond(user)
}

// Me resolves the token subject to a stored user. A user deleted after the
// token was issued is treated the same as a bad token.
func (s *AuthServiceImpl) Me(ctx context.Context, claims *token.Claims) (*models.User, error) {
	id, err := claims.UserID()
	if err != nil {
		return nil, customerrors.ErrUnauthorized
	}

	user, err := s.newRepo(s.db).GetByID(ctx, id)
	if errors.Is(err, customerrors.ErrNotFound) {
		logrus.WithFields(logrus.Fields{"user_id": id, "jti": claims.ID}).Warn("Token subject no longer exists")
		return nil, customerrors.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// HealthCheck is a liveness signal only; the database is not consulted.
func (s *AuthServiceImpl) HealthCheck(ctx context.Context) (*dto.HealthResponse, error) {
	return &dto.HealthResponse{Status: "ok"}, nil
}

func (s *AuthServiceImpl) respond(user *models.User) (*dto.AuthResponse, error) {
	tokenString, err := s.token.Issue(user)
	if err != nil {
		return nil, err
	}
	logrus.WithField("sub", strconv.FormatInt(user.ID, 10)).Debug("Token issued")
	return &dto.AuthResponse{Token: tokenString, User: user}, nil
}
