package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/resource"
)

// ResourceRepository implements resource.Repository.
type ResourceRepository struct {
	db DBTX
}

func NewResourceRepository(db DBTX) *ResourceRepository {
	return &ResourceRepository{db: db}
}

const resourceColumns = `id, user_id, title, url, category, notes, is_reviewed, linked_application_id, created_at`

func scanResource(row scanner) (resource.Resource, error) {
	var (
		res    resource.Resource
		linked uuid.NullUUID
	)
	if err := row.Scan(&res.ID, &res.UserID, &res.Title, &res.URL, &res.Category, &res.Notes,
		&res.IsReviewed, &linked, &res.CreatedAt); err != nil {
		return resource.Resource{}, err
	}
	if linked.Valid {
		id := linked.UUID
		res.LinkedApplicationID = &id
	}
	res.CreatedAt = res.CreatedAt.UTC()
	return res, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func (r *ResourceRepository) ListByOwner(ctx context.Context, userID uuid.UUID, f resource.Filter) ([]resource.Resource, error) {
	args := queryArgs{}
	q := `SELECT ` + resourceColumns + ` FROM resources WHERE user_id = ` + args.next(userID)
	if f.Category != nil {
		q += ` AND category = ` + args.next(string(*f.Category))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]resource.Resource, 0)
	for rows.Next() {
		item, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

func (r *ResourceRepository) GetForOwner(ctx context.Context, userID, id uuid.UUID) (resource.Resource, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+resourceColumns+`
FROM resources WHERE id = $1 AND user_id = $2
`, id, userID)
	res, err := scanResource(row)
	if err != nil {
		return resource.Resource{}, noRows(err)
	}
	return res, nil
}

func (r *ResourceRepository) Create(ctx context.Context, res resource.Resource) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO resources (`+resourceColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, res.ID, res.UserID, res.Title, res.URL, string(res.Category), res.Notes,
		res.IsReviewed, nullUUID(res.LinkedApplicationID), res.CreatedAt)
	return mapError(err)
}

func (r *ResourceRepository) UpdateForOwner(ctx context.Context, userID, id uuid.UUID, p resource.Patch) (resource.Resource, error) {
	if p.IsEmpty() {
		return r.GetForOwner(ctx, userID, id)
	}
	args := queryArgs{}
	set := setList{args: &args}
	if p.Title != nil {
		set.add("title", *p.Title)
	}
	if p.URL.Set {
		set.add("url", p.URL.Ptr())
	}
	if p.Category != nil {
		set.add("category", string(*p.Category))
	}
	if p.Notes.Set {
		set.add("notes", p.Notes.Ptr())
	}
	if p.IsReviewed != nil {
		set.add("is_reviewed", *p.IsReviewed)
	}
	if p.LinkedApplicationID.Set {
		set.add("linked_application_id", nullUUID(p.LinkedApplicationID.Ptr()))
	}

	idArg := args.next(id)
	ownerArg := args.next(userID)
	q := `UPDATE resources SET ` + set.String() +
		` WHERE id = ` + idArg + ` AND user_id = ` + ownerArg
	if p.LinkedApplicationID.Valid {
		q += ` AND EXISTS (SELECT 1 FROM applications AS t WHERE t.id = ` + args.next(p.LinkedApplicationID.Value) +
			` AND t.user_id = ` + ownerArg + `)`
	}
	q += ` RETURNING ` + resourceColumns

	res, err := scanResource(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return resource.Resource{}, noRows(mapError(err))
	}
	return res, nil
}

func (r *ResourceRepository) DeleteForOwner(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return affected(res)
}
