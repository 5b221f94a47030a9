package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/question"
)

// QuestionRepository implements question.Repository. Tags are a JSONB array.
type QuestionRepository struct {
	db DBTX
}

func NewQuestionRepository(db DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `id, user_id, question_text, answer_text, question_type, is_favorite, tags, created_at`

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func scanQuestion(row scanner) (question.Question, error) {
	var (
		q    question.Question
		tags []byte
	)
	if err := row.Scan(&q.ID, &q.UserID, &q.QuestionText, &q.AnswerText, &q.QuestionType,
		&q.IsFavorite, &tags, &q.CreatedAt); err != nil {
		return question.Question{}, err
	}
	q.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &q.Tags); err != nil {
			return question.Question{}, fmt.Errorf("decode tags: %w", err)
		}
		if q.Tags == nil {
			q.Tags = []string{}
		}
	}
	q.CreatedAt = q.CreatedAt.UTC()
	return q, nil
}

func (r *QuestionRepository) ListByOwner(ctx context.Context, userID uuid.UUID, f question.Filter) ([]question.Question, error) {
	args := queryArgs{}
	q := `SELECT ` + questionColumns + ` FROM questions WHERE user_id = ` + args.next(userID)
	if f.Type != nil {
		q += ` AND question_type = ` + args.next(string(*f.Type))
	}
	if f.Search != "" {
		q += ` AND question_text ILIKE ` + args.next(likePattern(f.Search)) + ` ESCAPE '\'`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]question.Question, 0)
	for rows.Next() {
		item, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

func (r *QuestionRepository) GetForOwner(ctx context.Context, userID, id uuid.UUID) (question.Question, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+questionColumns+`
FROM questions WHERE id = $1 AND user_id = $2
`, id, userID)
	q, err := scanQuestion(row)
	if err != nil {
		return question.Question{}, noRows(err)
	}
	return q, nil
}

func (r *QuestionRepository) Create(ctx context.Context, q question.Question) error {
	tags, err := encodeTags(q.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO questions (`+questionColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, q.ID, q.UserID, q.QuestionText, q.AnswerText, string(q.QuestionType), q.IsFavorite, tags, q.CreatedAt)
	return mapError(err)
}

func (r *QuestionRepository) UpdateForOwner(ctx context.Context, userID, id uuid.UUID, p question.Patch) (question.Question, error) {
	if p.IsEmpty() {
		return r.GetForOwner(ctx, userID, id)
	}
	args := queryArgs{}
	set := setList{args: &args}
	if p.QuestionText != nil {
		set.add("question_text", *p.QuestionText)
	}
	if p.AnswerText.Set {
		set.add("answer_text", p.AnswerText.Ptr())
	}
	if p.QuestionType != nil {
		set.add("question_type", string(*p.QuestionType))
	}
	if p.IsFavorite != nil {
		set.add("is_favorite", *p.IsFavorite)
	}
	if p.Tags.Set {
		tags, err := encodeTags(p.Tags.Value)
		if err != nil {
			return question.Question{}, err
		}
		set.add("tags", tags)
	}

	idArg := args.next(id)
	ownerArg := args.next(userID)
	q := `UPDATE questions SET ` + set.String() +
		` WHERE id = ` + idArg + ` AND user_id = ` + ownerArg +
		` RETURNING ` + questionColumns

	res, err := scanQuestion(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return question.Question{}, noRows(err)
	}
	return res, nil
}

func (r *QuestionRepository) DeleteForOwner(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return affected(res)
}
