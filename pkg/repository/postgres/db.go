// Package postgres implements the owner-scoped repositories on PostgreSQL.
// Repositories work on database/sql (pgx stdlib) so they can run inside a
// transaction and be tested with sqlmock.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/artem13815/jobtracker/pkg/apperr"
	"github.com/artem13815/jobtracker/pkg/auth"
)

// DBTX is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// queryArgs collects positional arguments while a statement is assembled.
type queryArgs []any

// next appends v and returns its placeholder.
func (q *queryArgs) next(v any) string {
	*q = append(*q, v)
	return "$" + strconv.Itoa(len(*q))
}

// setList accumulates "col = $n" assignments of an UPDATE.
type setList struct {
	args  *queryArgs
	parts []string
}

func (s *setList) add(col string, v any) {
	s.parts = append(s.parts, col+" = "+s.args.next(v))
}

func (s *setList) String() string { return strings.Join(s.parts, ", ") }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns a literal search term into an ILIKE substring pattern.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError translates constraint violations into domain errors.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return auth.ErrUserAlreadyExists
		case pgForeignKeyViolation:
			return apperr.ErrAccessDenied
		}
	}
	return err
}

// noRows maps sql.ErrNoRows to apperr.ErrNotFound.
func noRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return err
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
