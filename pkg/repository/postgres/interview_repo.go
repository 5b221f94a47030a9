package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/interview"
)

// InterviewRepository implements interview.Repository. Interviews have no
// owner column, so every statement joins the parent application and filters
// on its user_id.
type InterviewRepository struct {
	db DBTX
}

func NewInterviewRepository(db DBTX) *InterviewRepository {
	return &InterviewRepository{db: db}
}

const interviewColumns = `i.id, i.application_id, i.interview_type, i.interview_date, i.duration_minutes,
i.interviewer_names, i.platform, i.status, i.prep_notes, i.interview_notes, i.questions_asked,
i.rating, i.follow_up_actions, i.created_at`

const listingColumns = interviewColumns + `, a.company_name, a.position_title, a.job_url`

func interviewDest(iv *interview.Interview) []any {
	return []any{&iv.ID, &iv.ApplicationID, &iv.InterviewType, &iv.InterviewDate, &iv.DurationMinutes,
		&iv.InterviewerNames, &iv.Platform, &iv.Status, &iv.PrepNotes, &iv.InterviewNotes, &iv.QuestionsAsked,
		&iv.Rating, &iv.FollowUpActions, &iv.CreatedAt}
}

func scanInterview(row scanner) (interview.Interview, error) {
	var iv interview.Interview
	if err := row.Scan(interviewDest(&iv)...); err != nil {
		return interview.Interview{}, err
	}
	iv.InterviewDate = iv.InterviewDate.UTC()
	iv.CreatedAt = iv.CreatedAt.UTC()
	return iv, nil
}

func (r *InterviewRepository) queryListings(ctx context.Context, q string, args ...any) ([]interview.Listing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]interview.Listing, 0)
	for rows.Next() {
		var l interview.Listing
		dest := append(interviewDest(&l.Interview), &l.CompanyName, &l.PositionTitle, &l.JobURL)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		l.InterviewDate = l.InterviewDate.UTC()
		l.CreatedAt = l.CreatedAt.UTC()
		res = append(res, l)
	}
	return res, rows.Err()
}

func (r *InterviewRepository) ListByOwner(ctx context.Context, userID uuid.UUID, f interview.Filter) ([]interview.Listing, error) {
	args := queryArgs{}
	q := `SELECT ` + listingColumns + `
FROM interviews AS i JOIN applications AS a ON a.id = i.application_id
WHERE a.user_id = ` + args.next(userID)
	if f.ApplicationID != nil {
		q += ` AND i.application_id = ` + args.next(*f.ApplicationID)
	}
	if f.Status != nil {
		q += ` AND i.status = ` + args.next(string(*f.Status))
	}
	q += ` ORDER BY i.interview_date ASC`
	return r.queryListings(ctx, q, args...)
}

func (r *InterviewRepository) UpcomingByOwner(ctx context.Context, userID uuid.UUID, from time.Time, limit int) ([]interview.Listing, error) {
	return r.queryListings(ctx, `
SELECT `+listingColumns+`
FROM interviews AS i JOIN applications AS a ON a.id = i.application_id
WHERE a.user_id = $1 AND i.status = $2 AND i.interview_date >= $3
ORDER BY i.interview_date ASC
LIMIT $4
`, userID, string(interview.StatusScheduled), from, limit)
}

func (r *InterviewRepository) GetForOwner(ctx context.Context, userID, id uuid.UUID) (interview.Interview, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+interviewColumns+`
FROM interviews AS i JOIN applications AS a ON a.id = i.application_id
WHERE i.id = $1 AND a.user_id = $2
`, id, userID)
	iv, err := scanInterview(row)
	if err != nil {
		return interview.Interview{}, noRows(err)
	}
	return iv, nil
}

// Create expects the caller to have checked that the application is owned;
// an application deleted in between surfaces as apperr.ErrAccessDenied.
func (r *InterviewRepository) Create(ctx context.Context, iv interview.Interview) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO interviews (id, application_id, interview_type, interview_date, duration_minutes,
	interviewer_names, platform, status, prep_notes, interview_notes, questions_asked,
	rating, follow_up_actions, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`, iv.ID, iv.ApplicationID, string(iv.InterviewType), iv.InterviewDate, iv.DurationMinutes,
		iv.InterviewerNames, iv.Platform, string(iv.Status), iv.PrepNotes, iv.InterviewNotes, iv.QuestionsAsked,
		iv.Rating, iv.FollowUpActions, iv.CreatedAt)
	return mapError(err)
}

func (r *InterviewRepository) UpdateForOwner(ctx context.Context, userID, id uuid.UUID, p interview.Patch) (interview.Interview, error) {
	if p.IsEmpty() {
		return r.GetForOwner(ctx, userID, id)
	}
	args := queryArgs{}
	set := setList{args: &args}
	if p.ApplicationID != nil {
		set.add("application_id", *p.ApplicationID)
	}
	if p.InterviewType != nil {
		set.add("interview_type", string(*p.InterviewType))
	}
	if p.InterviewDate != nil {
		set.add("interview_date", *p.InterviewDate)
	}
	if p.DurationMinutes.Set {
		set.add("duration_minutes", p.DurationMinutes.Ptr())
	}
	if p.InterviewerNames.Set {
		set.add("interviewer_names", p.InterviewerNames.Ptr())
	}
	if p.Platform.Set {
		set.add("platform", p.Platform.Ptr())
	}
	if p.Status != nil {
		set.add("status", string(*p.Status))
	}
	if p.PrepNotes.Set {
		set.add("prep_notes", p.PrepNotes.Ptr())
	}
	if p.InterviewNotes.Set {
		set.add("interview_notes", p.InterviewNotes.Ptr())
	}
	if p.QuestionsAsked.Set {
		set.add("questions_asked", p.QuestionsAsked.Ptr())
	}
	if p.Rating.Set {
		set.add("rating", p.Rating.Ptr())
	}
	if p.FollowUpActions.Set {
		set.add("follow_up_actions", p.FollowUpActions.Ptr())
	}

	idArg := args.next(id)
	ownerArg := args.next(userID)
	q := `UPDATE interviews AS i SET ` + set.String() + `
FROM applications AS a
WHERE i.id = ` + idArg + ` AND a.id = i.application_id AND a.user_id = ` + ownerArg
	if p.ApplicationID != nil {
		// The target application must belong to the same user.
		q += ` AND EXISTS (SELECT 1 FROM applications AS t WHERE t.id = ` + args.next(*p.ApplicationID) +
			` AND t.user_id = ` + ownerArg + `)`
	}
	q += ` RETURNING ` + interviewColumns

	iv, err := scanInterview(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return interview.Interview{}, noRows(mapError(err))
	}
	return iv, nil
}

func (r *InterviewRepository) DeleteForOwner(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM interviews AS i USING applications AS a
WHERE i.id = $1 AND a.id = i.application_id AND a.user_id = $2
`, id, userID)
	if err != nil {
		return false, err
	}
	return affected(res)
}
