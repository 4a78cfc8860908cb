package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/gela-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// storageError envuelve un fallo de la base con domain.ErrStorage conservando la causa.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

// deleteByID borra una fila por id; domain.ErrNotFound si no existía.
// table es siempre una constante interna, nunca entrada del usuario.
func deleteByID(ctx context.Context, q Querier, table string, id int64) error {
	res, err := q.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return storageError("delete from "+table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageError("delete from "+table, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
