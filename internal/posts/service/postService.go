package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"
	customerrors "github.com/varadpoddar/blog-services/internal/customErrors"
	"github.com/varadpoddar/blog-services/internal/dbx"
	"github.com/varadpoddar/blog-services/internal/models"
	"github.com/varadpoddar/blog-services/internal/posts/dto"
	"github.com/varadpoddar/blog-services/internal/posts/repository"
)

type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, req dto.PostRequest) (*models.Post, error)
	Update(ctx context.Context, id int64, req dto.PostRequest) (*models.Post, error)
	Delete(ctx context.Context, id int64) (*dto.MessageResponse, error)
	HealthCheck(ctx context.Context) (*dto.HealthResponse, error)
}

type PostServiceImpl struct {
	db      *sql.DB
	newRepo func(dbx.DBTX) repository.PostRepository
}

func NewPostService(db *sql.DB) PostService {
	return &PostServiceImpl{db: db, newRepo: repository.NewPostRepository}
}

func (s *PostServiceImpl) List(ctx context.Context) ([]models.Post, error) {
	return s.newRepo(s.db).List(ctx)
}

func (s *PostServiceImpl) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.newRepo(s.db).GetByID(ctx, id)
	return post, notFound(err)
}

func (s *PostServiceImpl) Create(ctx context.Context, req dto.PostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post, err := s.newRepo(s.db).Create(ctx, req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	logrus.WithField("post_id", post.ID).Info("Post created")
	return post, nil
}

func (s *PostServiceImpl) Update(ctx context.Context, id int64, req dto.PostRequest) (*models.Post, error) {
	var post *models.Post
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return notFound(err)
		}
		if err := req.Validate(); err != nil {
			return err
		}
		if err := repo.Update(ctx, id, req.Title, req.Content); err != nil {
			return notFound(err)
		}

		var err error
		post, err = repo.GetByID(ctx, id)
		return notFound(err)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("post_id", id).Info("Post updated")
	return post, nil
}

// Delete reads the title before removing the row so the confirmation can
// name the post.
func (s *PostServiceImpl) Delete(ctx context.Context, id int64) (*dto.MessageResponse, error) {
	var title string
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)
		post, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		title = post.Title
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return nil, notFound(err)
	}

	logrus.WithField("post_id", id).Info("Post deleted")
	return dto.Deleted(title), nil
}

// HealthCheck is a liveness signal only; the database is not consulted.
func (s *PostServiceImpl) HealthCheck(ctx context.Context) (*dto.HealthResponse, error) {
	return &dto.HealthResponse{Status: "ok"}, nil
}

func notFound(err error) error {
	if errors.Is(err, customerrors.ErrNotFound) {
		return customerrors.ErrPostNotFound
	}
	return err
}
