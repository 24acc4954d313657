package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerrors "github.com/varadpoddar/blog-services/internal/customErrors"
	"github.com/varadpoddar/blog-services/internal/posts/repository"
)

const (
	listQuery   = `SELECT id, title, content, created FROM posts ORDER BY created DESC, id DESC`
	byIDQuery   = `SELECT id, title, content, created FROM posts WHERE id = $1`
	insertQuery = `INSERT INTO posts (title, content, created) VALUES ($1, $2, $3) RETURNING id`
	updateQuery = `UPDATE posts SET title = $1, content = $2 WHERE id = $3`
	deleteQuery = `DELETE FROM posts WHERE id = $1`
)

var (
	columns = []string{"id", "title", "content", "created"}
	older   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer   = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
)

type testDependencies struct {
	repo    repository.PostRepository
	mock    sqlmock.Sqlmock
	cleanup func()
}

func setupTest(t *testing.T) *testDependencies {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err, "Error mocking DB")

	return &testDependencies{
		repo: repository.NewPostRepository(db),
		mock: mock,
		cleanup: func() {
			assert.NoError(t, mock.ExpectationsWereMet(), "Expectations were not met")
			db.Close()
		},
	}
}

func TestList(t *testing.T) {
	t.Run("ReturnsRowsInQueryOrder", func(t *testing.T) {
		deps := setupTest(t)
		defer deps.cleanup()

		deps.mock.ExpectQuery(listQuery).WillReturnRows(sqlmock.NewRows(columns).
			AddRow(2, "Second Post", "b", newer).
			AddRow(1, "First Post", "a", older))

		posts, err := deps.repo.List(context.Background())

		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "Second Post", posts[0].Title)
		assert.Equal(t, int64(1), posts[1].ID)
	})

	t.Run("EmptyIsNotNil", func(t *testing.T) {
		deps := setupTest(t)
		defer deps.cleanup()

		deps.mock.ExpectQuery(listQuery).WillReturnRows(sqlmock.NewRows(columns))

		posts, err := deps.repo.List(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("DatabaseError", func(t *testing.T) {
		deps := setupTest(t)
		defer deps.cleanup()

		deps.mock.ExpectQuery(listQuery).WillReturnError(sql.ErrConnDone)

		_, err := deps.repo.List(context.Background())

		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestGetByID(t *testing.T) {
	testCases := []struct {
		name        string
		mockSetup   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name: "Found",
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(byIDQuery).WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "First Post", "a", older))
			},
		},
		{
			name: "NotFound",
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(byIDQuery).WithArgs(int64(1)).WillReturnError(sql.ErrNoRows)
			},
			expectedErr: customerrors.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			deps := setupTest(t)
			defer deps.cleanup()
			tc.mockSetup(deps.mock)

			post, err := deps.repo.GetByID(context.Background(), 1)

			if tc.expectedErr != nil {
				assert.Nil(t, post)
				assert.Equal(t, tc.expectedErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "First Post", post.Title)
			assert.Equal(t, older, post.Created)
		})
	}
}

func TestCreate(t *testing.T) {
	deps := setupTest(t)
	defer deps.cleanup()

	deps.mock.ExpectQuery(insertQuery).WithArgs("New", "Body", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	deps.mock.ExpectQuery(byIDQuery).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(3, "New", "Body", newer))

	post, err := deps.repo.Create(context.Background(), "New", "Body")

	require.NoError(t, err)
	assert.Equal(t, int64(3), post.ID)
	assert.Equal(t, "Body", post.Content)
}

func TestUpdateAndDelete(t *testing.T) {
	testCases := []struct {
		name        string
		run         func(repository.PostRepository) error
		mockSetup   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name: "UpdateAffectsRow",
			run: func(r repository.PostRepository) error {
				return r.Update(context.Background(), 1, "T", "C")
			},
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(updateQuery).WithArgs("T", "C", int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "UpdateMissingRow",
			run: func(r repository.PostRepository) error {
				return r.Update(context.Background(), 1, "T", "C")
			},
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(updateQuery).WithArgs("T", "C", int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedErr: customerrors.ErrNotFound,
		},
		{
			name: "DeleteAffectsRow",
			run: func(r repository.PostRepository) error {
				return r.Delete(context.Background(), 1)
			},
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQuery).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "DeleteMissingRow",
			run: func(r repository.PostRepository) error {
				return r.Delete(context.Background(), 1)
			},
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQuery).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedErr: customerrors.ErrNotFound,
		},
		{
			name: "DeleteDatabaseError",
			run: func(r repository.PostRepository) error {
				return r.Delete(context.Background(), 1)
			},
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQuery).WithArgs(int64(1)).WillReturnError(sql.ErrConnDone)
			},
			expectedErr: sql.ErrConnDone,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			deps := setupTest(t)
			defer deps.cleanup()
			tc.mockSetup(deps.mock)

			err := tc.run(deps.repo)

			if tc.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}
