package interview

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/apperr"
	"github.com/artem13815/jobtracker/pkg/patch"
)

type Type string

const (
	TypePhoneScreen  Type = "phone_screen"
	TypeTechnical    Type = "technical"
	TypeSystemDesign Type = "system_design"
	TypeBehavioral   Type = "behavioral"
	TypeFinal        Type = "final"
	TypeOther        Type = "other"
)

var Types = []Type{TypePhoneScreen, TypeTechnical, TypeSystemDesign, TypeBehavioral, TypeFinal, TypeOther}

func (t Type) Valid() bool {
	for _, v := range Types {
		if t == v {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusScheduled, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatusFilter parses a list filter value; "" and "all" mean no filter.
func ParseStatusFilter(s string) (*Status, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return nil, nil
	}
	st := Status(s)
	if !st.Valid() {
		return nil, apperr.Validation("invalid status: " + s)
	}
	return &st, nil
}

// Interview belongs to an application and, through it, to a user.
type Interview struct {
	ID               uuid.UUID `json:"id"`
	ApplicationID    uuid.UUID `json:"applicationId"`
	InterviewType    Type      `json:"interviewType"`
	InterviewDate    time.Time `json:"interviewDate"`
	DurationMinutes  *int      `json:"durationMinutes"`
	InterviewerNames *string   `json:"interviewerNames"`
	Platform         *string   `json:"platform"`
	Status           Status    `json:"status"`
	PrepNotes        *string   `json:"prepNotes"`
	InterviewNotes   *string   `json:"interviewNotes"`
	QuestionsAsked   *string   `json:"questionsAsked"`
	Rating           *int      `json:"rating"`
	FollowUpActions  *string   `json:"followUpActions"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Listing is an interview with read-only fields of its parent application.
type Listing struct {
	Interview
	CompanyName   string  `json:"companyName"`
	PositionTitle string  `json:"positionTitle"`
	JobURL        *string `json:"jobUrl"`
}

type Draft struct {
	ApplicationID    uuid.UUID
	InterviewType    Type
	InterviewDate    time.Time
	DurationMinutes  *int
	InterviewerNames *string
	Platform         *string
	Status           Status
	PrepNotes        *string
	InterviewNotes   *string
	QuestionsAsked   *string
	Rating           *int
	FollowUpActions  *string
}

func (d *Draft) Validate() error {
	if d.ApplicationID == uuid.Nil {
		return apperr.Validation("applicationId is required")
	}
	if d.InterviewType == "" {
		return apperr.Validation("interviewType is required")
	}
	if !d.InterviewType.Valid() {
		return apperr.Validation("invalid interviewType: " + string(d.InterviewType))
	}
	if d.InterviewDate.IsZero() {
		return apperr.Validation("interviewDate is required")
	}
	if d.Status == "" {
		d.Status = StatusScheduled
	}
	if !d.Status.Valid() {
		return apperr.Validation("invalid status: " + string(d.Status))
	}
	if d.DurationMinutes != nil && *d.DurationMinutes < 0 {
		return apperr.Validation("durationMinutes must not be negative")
	}
	return nil
}

type Patch struct {
	ApplicationID    *uuid.UUID
	InterviewType    *Type
	InterviewDate    *time.Time
	DurationMinutes  patch.Nullable[int]
	InterviewerNames patch.Nullable[string]
	Platform         patch.Nullable[string]
	Status           *Status
	PrepNotes        patch.Nullable[string]
	InterviewNotes   patch.Nullable[string]
	QuestionsAsked   patch.Nullable[string]
	Rating           patch.Nullable[int]
	FollowUpActions  patch.Nullable[string]
}

func (p Patch) IsEmpty() bool {
	return p.ApplicationID == nil && p.InterviewType == nil && p.InterviewDate == nil &&
		!p.DurationMinutes.Set && !p.InterviewerNames.Set && !p.Platform.Set &&
		p.Status == nil && !p.PrepNotes.Set && !p.InterviewNotes.Set &&
		!p.QuestionsAsked.Set && !p.Rating.Set && !p.FollowUpActions.Set
}

func (p Patch) Validate() error {
	if p.ApplicationID != nil && *p.ApplicationID == uuid.Nil {
		return apperr.Validation("applicationId must not be empty")
	}
	if p.InterviewType != nil && !p.InterviewType.Valid() {
		return apperr.Validation("invalid interviewType: " + string(*p.InterviewType))
	}
	if p.InterviewDate != nil && p.InterviewDate.IsZero() {
		return apperr.Validation("interviewDate must not be empty")
	}
	if p.Status != nil && !p.Status.Valid() {
		return apperr.Validation("invalid status: " + string(*p.Status))
	}
	if p.DurationMinutes.Valid && p.DurationMinutes.Value < 0 {
		return apperr.Validation("durationMinutes must not be negative")
	}
	return nil
}

func (p Patch) Apply(iv *Interview) {
	if p.ApplicationID != nil {
		iv.ApplicationID = *p.ApplicationID
	}
	if p.InterviewType != nil {
		iv.InterviewType = *p.InterviewType
	}
	if p.InterviewDate != nil {
		iv.InterviewDate = *p.InterviewDate
	}
	if p.DurationMinutes.Set {
		iv.DurationMinutes = p.DurationMinutes.Ptr()
	}
	if p.InterviewerNames.Set {
		iv.InterviewerNames = p.InterviewerNames.Ptr()
	}
	if p.Platform.Set {
		iv.Platform = p.Platform.Ptr()
	}
	if p.Status != nil {
		iv.Status = *p.Status
	}
	if p.PrepNotes.Set {
		iv.PrepNotes = p.PrepNotes.Ptr()
	}
	if p.InterviewNotes.Set {
		iv.InterviewNotes = p.InterviewNotes.Ptr()
	}
	if p.QuestionsAsked.Set {
		iv.QuestionsAsked = p.QuestionsAsked.Ptr()
	}
	if p.Rating.Set {
		iv.Rating = p.Rating.Ptr()
	}
	if p.FollowUpActions.Set {
		iv.FollowUpActions = p.FollowUpActions.Ptr()
	}
}

type Filter struct {
	ApplicationID *uuid.UUID
	Status        *Status
}

const (
	DefaultUpcomingLimit = 5
	MaxUpcomingLimit     = 50
)

// UpcomingLimit clamps a requested limit: non-positive means the default.
func UpcomingLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultUpcomingLimit
	case n > MaxUpcomingLimit:
		return MaxUpcomingLimit
	default:
		return n
	}
}
