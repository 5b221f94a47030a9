package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/auth"
)

// UserRepository implements auth.UserRepository.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, external_id, created_at`

func scanUser(row scanner) (auth.User, error) {
	var (
		u    auth.User
		hash sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Email, &hash, &u.ExternalID, &u.CreatedAt); err != nil {
		return auth.User{}, err
	}
	u.PasswordHash = hash.String
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	var hash *string
	if user.PasswordHash != "" {
		hash = &user.PasswordHash
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (`+userColumns+`)
VALUES ($1, $2, $3, $4, $5)
`, user.ID, strings.ToLower(user.Email), hash, user.ExternalID, user.CreatedAt)
	return mapError(err)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	u, err := scanUser(row)
	if err != nil {
		return auth.User{}, noRows(err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return auth.User{}, noRows(err)
	}
	return u, nil
}

func (r *UserRepository) UpsertExternal(ctx context.Context, externalID, email string) (auth.User, error) {
	row := r.db.QueryRowContext(ctx, `
INSERT INTO users (id, email, external_id, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (external_id) DO UPDATE SET email = EXCLUDED.email
RETURNING `+userColumns,
		uuid.New(), strings.ToLower(email), externalID, time.Now().UTC().Truncate(time.Microsecond))
	u, err := scanUser(row)
	if err != nil {
		return auth.User{}, mapError(err)
	}
	return u, nil
}

// Delete cascades to every row the user owns.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
