package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	customerrors "github.com/varadpoddar/blog-services/internal/customErrors"
	"github.com/varadpoddar/blog-services/internal/dbx"
	"github.com/varadpoddar/blog-services/internal/models"
)

type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, title, content string) (*models.Post, error)
	Update(ctx context.Context, id int64, title, content string) error
	Delete(ctx context.Context, id int64) error
}

type PostRepositoryImpl struct {
	db dbx.DBTX
}

func NewPostRepository(db dbx.DBTX) PostRepository {
	return &PostRepositoryImpl{db: db}
}

// List returns the newest posts first; id breaks ties between posts
// created within the same timestamp.
func (r *PostRepositoryImpl) List(ctx context.Context) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, created FROM posts ORDER BY created DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Created); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return posts, nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, content, created FROM posts WHERE id = $1`, id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customerrors.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

func (r *PostRepositoryImpl) Create(ctx context.Context, title, content string) (*models.Post, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO posts (title, content, created) VALUES ($1, $2, $3) RETURNING id`,
		title, content, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *PostRepositoryImpl) Update(ctx context.Context, id int64, title, content string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = $1, content = $2 WHERE id = $3`, title, content, id,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return customerrors.ErrNotFound
	}
	return nil
}
