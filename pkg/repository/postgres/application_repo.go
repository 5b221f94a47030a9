package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/application"
)

// ApplicationRepository implements application.Repository.
type ApplicationRepository struct {
	db DBTX
}

func NewApplicationRepository(db DBTX) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, user_id, company_name, position_title, job_url, logo_url, status,
salary_min, salary_max, location, is_remote, application_date, notes, created_at, updated_at`

func scanApplication(row scanner) (application.Application, error) {
	var a application.Application
	err := row.Scan(&a.ID, &a.UserID, &a.CompanyName, &a.PositionTitle, &a.JobURL, &a.LogoURL, &a.Status,
		&a.SalaryMin, &a.SalaryMax, &a.Location, &a.IsRemote, &a.ApplicationDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return application.Application{}, err
	}
	a.ApplicationDate = a.ApplicationDate.UTC()
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func (r *ApplicationRepository) ListByOwner(ctx context.Context, userID uuid.UUID, f application.Filter) ([]application.Application, error) {
	args := queryArgs{}
	q := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = ` + args.next(userID)
	if f.Status != nil {
		q += ` AND status = ` + args.next(string(*f.Status))
	}
	if f.Search != "" {
		p := args.next(likePattern(f.Search))
		q += ` AND (company_name ILIKE ` + p + ` ESCAPE '\' OR position_title ILIKE ` + p + ` ESCAPE '\')`
	}
	q += ` ORDER BY application_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *ApplicationRepository) GetForOwner(ctx context.Context, userID, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+applicationColumns+`
FROM applications WHERE id = $1 AND user_id = $2
`, id, userID)
	a, err := scanApplication(row)
	if err != nil {
		return application.Application{}, noRows(err)
	}
	return a, nil
}

func (r *ApplicationRepository) ExistsForOwner(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1 AND user_id = $2)
`, id, userID).Scan(&ok)
	return ok, err
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO applications (`+applicationColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`, a.ID, a.UserID, a.CompanyName, a.PositionTitle, a.JobURL, a.LogoURL, string(a.Status),
		a.SalaryMin, a.SalaryMax, a.Location, a.IsRemote, a.ApplicationDate, a.Notes, a.CreatedAt, a.UpdatedAt)
	return mapError(err)
}

func (r *ApplicationRepository) UpdateForOwner(ctx context.Context, userID, id uuid.UUID, p application.Patch, now time.Time) (application.Application, error) {
	args := queryArgs{}
	set := setList{args: &args}
	if p.CompanyName != nil {
		set.add("company_name", *p.CompanyName)
	}
	if p.PositionTitle != nil {
		set.add("position_title", *p.PositionTitle)
	}
	if p.JobURL.Set {
		set.add("job_url", p.JobURL.Ptr())
	}
	if p.LogoURL.Set {
		set.add("logo_url", p.LogoURL.Ptr())
	}
	if p.Status != nil {
		set.add("status", string(*p.Status))
	}
	if p.SalaryMin.Set {
		set.add("salary_min", p.SalaryMin.Ptr())
	}
	if p.SalaryMax.Set {
		set.add("salary_max", p.SalaryMax.Ptr())
	}
	if p.Location.Set {
		set.add("location", p.Location.Ptr())
	}
	if p.IsRemote != nil {
		set.add("is_remote", *p.IsRemote)
	}
	if p.ApplicationDate != nil {
		set.add("application_date", *p.ApplicationDate)
	}
	if p.Notes.Set {
		set.add("notes", p.Notes.Ptr())
	}
	set.add("updated_at", now)

	idArg := args.next(id)
	ownerArg := args.next(userID)
	q := `UPDATE applications SET ` + set.String() +
		` WHERE id = ` + idArg + ` AND user_id = ` + ownerArg +
		` RETURNING ` + applicationColumns

	a, err := scanApplication(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return application.Application{}, noRows(err)
	}
	return a, nil
}

// DeleteForOwner relies on the schema to cascade interviews and unlink
// resources.
func (r *ApplicationRepository) DeleteForOwner(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *ApplicationRepository) StatusesByOwner(ctx context.Context, userID uuid.UUID) ([]application.Status, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status FROM applications WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]application.Status, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		res = append(res, application.Status(s))
	}
	return res, rows.Err()
}
