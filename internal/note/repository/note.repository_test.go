package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"notesapi/internal/note/model"
	"notesapi/pkg/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*NoteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewNoteRepository(db), mock
}

var noteColumns = []string{"id", "title", "body", "tags", "created_at", "updated_at", "owner"}

func TestInsert(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO notes \(id, title, body, tags, created_at, updated_at, owner\)`).
		WithArgs("note-1", "t", "b", sqlmock.AnyArg(), now, now, "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("note-1"))

	id, err := repo.Insert(context.Background(), &model.Note{
		ID: "note-1", Title: "t", Body: "b", Tags: []string{"a"}, CreatedAt: now, UpdatedAt: now, Owner: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "note-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertNoRowIsInvariant(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`INSERT INTO notes`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Insert(context.Background(), &model.Note{ID: "note-1"})
	assert.ErrorIs(t, err, apperror.ErrInvariant)
}

func TestListVisible(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`LEFT JOIN collaborations .* WHERE notes.owner = \$1 OR collaborations.user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(noteColumns).
			AddRow("note-2", "shared", "b", "{x,y}", now, now, "user-2").
			AddRow("note-1", "mine", "b", "{}", now, now, "user-1"))

	notes, err := repo.ListVisible(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "note-2", notes[0].ID)
	assert.Equal(t, []string{"x", "y"}, notes[0].Tags)
	assert.Equal(t, "user-1", notes[1].Owner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListVisibleEmpty(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM notes`).WithArgs("user-1").WillReturnRows(sqlmock.NewRows(noteColumns))

	notes, err := repo.ListVisible(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestListVisibleDBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM notes`).WillReturnError(errors.New("db down"))

	_, err := repo.ListVisible(context.Background(), "user-1")
	assert.ErrorContains(t, err, "db error: db down")
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`LEFT JOIN users ON users.id = notes.owner WHERE notes.id = \$1`).
		WithArgs("note-1").
		WillReturnRows(sqlmock.NewRows(append(noteColumns, "username")).
			AddRow("note-1", "t", "b", "{a}", now, now, "user-1", "alice"))

	n, err := repo.GetByID(context.Background(), "note-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", n.Username)
	assert.Equal(t, []string{"a"}, n.Tags)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM notes`).WithArgs("note-x").WillReturnRows(sqlmock.NewRows(append(noteColumns, "username")))

	_, err := repo.GetByID(context.Background(), "note-x")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateReturnsOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`UPDATE notes SET title = \$1, body = \$2, tags = \$3, updated_at = \$4 WHERE id = \$5 RETURNING owner`).
		WithArgs("t", "b", sqlmock.AnyArg(), now, "note-1").
		WillReturnRows(sqlmock.NewRows([]string{"owner"}).AddRow("user-1"))

	owner, err := repo.Update(context.Background(), "note-1", "t", "b", []string{}, now)
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)
}

func TestUpdateNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`UPDATE notes`).WillReturnRows(sqlmock.NewRows([]string{"owner"}))

	_, err := repo.Update(context.Background(), "note-x", "t", "b", nil, time.Now())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`DELETE FROM notes WHERE id = \$1 RETURNING owner`).
		WithArgs("note-1").
		WillReturnRows(sqlmock.NewRows([]string{"owner"}).AddRow("user-1"))

	owner, err := repo.Delete(context.Background(), "note-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)

	mock.ExpectQuery(`DELETE FROM notes`).WillReturnRows(sqlmock.NewRows([]string{"owner"}))
	_, err = repo.Delete(context.Background(), "note-1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT owner FROM notes WHERE id = \$1`).
		WithArgs("note-1").
		WillReturnRows(sqlmock.NewRows([]string{"owner"}).AddRow("user-1"))

	owner, err := repo.GetOwner(context.Background(), "note-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)

	mock.ExpectQuery(`SELECT owner FROM notes`).WillReturnError(errors.New("db down"))
	_, err = repo.GetOwner(context.Background(), "note-1")
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}
