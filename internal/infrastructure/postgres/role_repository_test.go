package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gela-api/internal/domain"
	"github.com/jhoicas/gela-api/internal/domain/entity"
)

func TestRoleRepo_Create(t *testing.T) {
	db, mock, done := newMock(t)
	defer done()
	repo := NewRoleRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO roles`).WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, fixedTime))
	mock.ExpectCommit()

	role := &entity.Role{Rol: "admin"}
	require.NoError(t, repo.Create(context.Background(), role))
	assert.Equal(t, int64(1), role.ID)
}

func TestRoleRepo_Create_Duplicado(t *testing.T) {
	db, mock, done := newMock(t)
	defer done()
	repo := NewRoleRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO roles`).WithArgs("admin").WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &entity.Role{Rol: "admin"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRoleRepo_ListYGet(t *testing.T) {
	db, mock, done := newMock(t)
	defer done()
	repo := NewRoleRepository(db)

	mock.ExpectQuery(`SELECT id, rol, created_at FROM roles ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rol", "created_at"}).AddRow(1, "admin", fixedTime).AddRow(2, "viewer", fixedTime))
	mock.ExpectQuery(`SELECT id, rol, created_at FROM roles WHERE id = \$1`).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rol", "created_at"}).AddRow(2, "viewer", fixedTime))
	mock.ExpectQuery(`SELECT id, rol, created_at FROM roles WHERE id = \$1`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rol", "created_at"}))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "viewer", list[1].Rol)

	role, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "viewer", role.Rol)

	_, err = repo.GetByID(context.Background(), 3)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoleRepo_Update(t *testing.T) {
	db, mock, done := newMock(t)
	defer done()
	repo := NewRoleRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE roles SET rol`).WithArgs(int64(1), "editor").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(fixedTime))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE roles SET rol`).WithArgs(int64(2), "admin").WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	require.NoError(t, repo.Update(context.Background(), &entity.Role{ID: 1, Rol: "editor"}))
	require.ErrorIs(t, repo.Update(context.Background(), &entity.Role{ID: 2, Rol: "admin"}), domain.ErrConflict)
}

func TestRoleRepo_Delete_NoExiste(t *testing.T) {
	db, mock, done := newMock(t)
	defer done()
	repo := NewRoleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM roles WHERE id = \$1`).WithArgs(int64(42)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	require.ErrorIs(t, repo.Delete(context.Background(), 42), domain.ErrNotFound)
}
