package question

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/apperr"
	"github.com/artem13815/jobtracker/pkg/nlp"
	"github.com/artem13815/jobtracker/pkg/patch"
)

type Type string

const (
	TypeBehavioral     Type = "behavioral"
	TypeTechnical      Type = "technical"
	TypeSystemDesign   Type = "system_design"
	TypeCompanyCulture Type = "company_culture"
	TypeExperience     Type = "experience"
)

var Types = []Type{TypeBehavioral, TypeTechnical, TypeSystemDesign, TypeCompanyCulture, TypeExperience}

func (t Type) Valid() bool {
	for _, v := range Types {
		if t == v {
			return true
		}
	}
	return false
}

// ParseTypeFilter parses a list filter value; "" and "all" mean no filter.
func ParseTypeFilter(s string) (*Type, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return nil, nil
	}
	t := Type(s)
	if !t.Valid() {
		return nil, apperr.Validation("invalid type: " + s)
	}
	return &t, nil
}

// Question is an interview question with the user's prepared answer.
type Question struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	QuestionText string    `json:"questionText"`
	AnswerText   *string   `json:"answerText"`
	QuestionType Type      `json:"questionType"`
	IsFavorite   bool      `json:"isFavorite"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Draft struct {
	QuestionText string
	AnswerText   *string
	QuestionType Type
	IsFavorite   bool
	Tags         []string
}

func (d *Draft) Validate() error {
	d.QuestionText = strings.TrimSpace(d.QuestionText)
	if d.QuestionText == "" {
		return apperr.Validation("questionText is required")
	}
	if d.QuestionType == "" {
		return apperr.Validation("questionType is required")
	}
	if !d.QuestionType.Valid() {
		return apperr.Validation("invalid questionType: " + string(d.QuestionType))
	}
	d.Tags = nlp.CleanTags(d.Tags)
	return nil
}

// Patch is a partial update. A null Tags value clears the list.
type Patch struct {
	QuestionText *string
	AnswerText   patch.Nullable[string]
	QuestionType *Type
	IsFavorite   *bool
	Tags         patch.Nullable[[]string]
}

func (p Patch) IsEmpty() bool {
	return p.QuestionText == nil && !p.AnswerText.Set && p.QuestionType == nil &&
		p.IsFavorite == nil && !p.Tags.Set
}

func (p *Patch) Validate() error {
	if p.QuestionText != nil {
		v := strings.TrimSpace(*p.QuestionText)
		if v == "" {
			return apperr.Validation("questionText must not be empty")
		}
		p.QuestionText = &v
	}
	if p.QuestionType != nil && !p.QuestionType.Valid() {
		return apperr.Validation("invalid questionType: " + string(*p.QuestionType))
	}
	if p.Tags.Set {
		p.Tags = patch.Value(nlp.CleanTags(p.Tags.Value))
	}
	return nil
}

func (p Patch) Apply(q *Question) {
	if p.QuestionText != nil {
		q.QuestionText = *p.QuestionText
	}
	if p.AnswerText.Set {
		q.AnswerText = p.AnswerText.Ptr()
	}
	if p.QuestionType != nil {
		q.QuestionType = *p.QuestionType
	}
	if p.IsFavorite != nil {
		q.IsFavorite = *p.IsFavorite
	}
	if p.Tags.Set {
		q.Tags = nlp.CleanTags(p.Tags.Value)
	}
}

type Filter struct {
	Type   *Type
	Search string
}
