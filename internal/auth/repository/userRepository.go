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

type UserRepository interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type UserRepositoryImpl struct {
	db dbx.DBTX
}

func NewUserRepository(db dbx.DBTX) UserRepository {
	return &UserRepositoryImpl{db: db}
}

const selectUser = `SELECT id, username, password_hash, created FROM users`

func (r *UserRepositoryImpl) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Create inserts the user and reads the row back. A duplicate username
// surfaces as the driver's unique-violation error, wrapped.
func (r *UserRepositoryImpl) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, created) VALUES ($1, $2, $3) RETURNING id`,
		username, passwordHash, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUser+` WHERE username = $1`, username))
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUser+` WHERE id = $1`, id))
}

func (r *UserRepositoryImpl) scanOne(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customerrors.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}
