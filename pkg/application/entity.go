package application

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/apperr"
	"github.com/artem13815/jobtracker/pkg/patch"
)

// Status is the pipeline stage of an application. Any stage may follow any
// other.
type Status string

const (
	StatusApplied     Status = "applied"
	StatusPhoneScreen Status = "phone_screen"
	StatusTechnical   Status = "technical"
	StatusOnsite      Status = "onsite"
	StatusFinal       Status = "final"
	StatusOffer       Status = "offer"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{
	StatusApplied, StatusPhoneScreen, StatusTechnical, StatusOnsite,
	StatusFinal, StatusOffer, StatusRejected, StatusWithdrawn,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.TrimSpace(s))
	if !st.Valid() {
		return "", apperr.Validation("invalid status: " + s)
	}
	return st, nil
}

// ParseStatusFilter parses a list filter value; "" and "all" mean no filter.
func ParseStatusFilter(s string) (*Status, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return nil, nil
	}
	st, err := ParseStatus(s)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Application is a job application tracked by one user.
type Application struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	CompanyName     string    `json:"companyName"`
	PositionTitle   string    `json:"positionTitle"`
	JobURL          *string   `json:"jobUrl"`
	LogoURL         *string   `json:"logoUrl"`
	Status          Status    `json:"status"`
	SalaryMin       *int      `json:"salaryMin"`
	SalaryMax       *int      `json:"salaryMax"`
	Location        *string   `json:"location"`
	IsRemote        bool      `json:"isRemote"`
	ApplicationDate time.Time `json:"applicationDate"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Draft carries the caller-supplied fields of a new application.
type Draft struct {
	CompanyName     string
	PositionTitle   string
	JobURL          *string
	LogoURL         *string
	Status          Status
	SalaryMin       *int
	SalaryMax       *int
	Location        *string
	IsRemote        bool
	ApplicationDate time.Time
	Notes           *string
}

// Validate trims required text and defaults the status to applied.
func (d *Draft) Validate() error {
	d.CompanyName = strings.TrimSpace(d.CompanyName)
	d.PositionTitle = strings.TrimSpace(d.PositionTitle)
	if d.CompanyName == "" {
		return apperr.Validation("companyName is required")
	}
	if d.PositionTitle == "" {
		return apperr.Validation("positionTitle is required")
	}
	if d.Status == "" {
		d.Status = StatusApplied
	}
	if !d.Status.Valid() {
		return apperr.Validation("invalid status: " + string(d.Status))
	}
	if d.ApplicationDate.IsZero() {
		return apperr.Validation("applicationDate is required")
	}
	return nil
}

// Patch is a partial update. Nil pointers and unset Nullables are left
// unchanged.
type Patch struct {
	CompanyName     *string
	PositionTitle   *string
	JobURL          patch.Nullable[string]
	LogoURL         patch.Nullable[string]
	Status          *Status
	SalaryMin       patch.Nullable[int]
	SalaryMax       patch.Nullable[int]
	Location        patch.Nullable[string]
	IsRemote        *bool
	ApplicationDate *time.Time
	Notes           patch.Nullable[string]
}

func (p Patch) IsEmpty() bool {
	return p.CompanyName == nil && p.PositionTitle == nil && !p.JobURL.Set &&
		!p.LogoURL.Set && p.Status == nil && !p.SalaryMin.Set && !p.SalaryMax.Set &&
		!p.Location.Set && p.IsRemote == nil && p.ApplicationDate == nil && !p.Notes.Set
}

func (p *Patch) Validate() error {
	if p.CompanyName != nil {
		v := strings.TrimSpace(*p.CompanyName)
		if v == "" {
			return apperr.Validation("companyName must not be empty")
		}
		p.CompanyName = &v
	}
	if p.PositionTitle != nil {
		v := strings.TrimSpace(*p.PositionTitle)
		if v == "" {
			return apperr.Validation("positionTitle must not be empty")
		}
		p.PositionTitle = &v
	}
	if p.Status != nil && !p.Status.Valid() {
		return apperr.Validation("invalid status: " + string(*p.Status))
	}
	if p.ApplicationDate != nil && p.ApplicationDate.IsZero() {
		return apperr.Validation("applicationDate must not be empty")
	}
	return nil
}

// Apply writes the patch onto a and stamps UpdatedAt.
func (p Patch) Apply(a *Application, now time.Time) {
	if p.CompanyName != nil {
		a.CompanyName = *p.CompanyName
	}
	if p.PositionTitle != nil {
		a.PositionTitle = *p.PositionTitle
	}
	if p.JobURL.Set {
		a.JobURL = p.JobURL.Ptr()
	}
	if p.LogoURL.Set {
		a.LogoURL = p.LogoURL.Ptr()
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.SalaryMin.Set {
		a.SalaryMin = p.SalaryMin.Ptr()
	}
	if p.SalaryMax.Set {
		a.SalaryMax = p.SalaryMax.Ptr()
	}
	if p.Location.Set {
		a.Location = p.Location.Ptr()
	}
	if p.IsRemote != nil {
		a.IsRemote = *p.IsRemote
	}
	if p.ApplicationDate != nil {
		a.ApplicationDate = *p.ApplicationDate
	}
	if p.Notes.Set {
		a.Notes = p.Notes.Ptr()
	}
	a.UpdatedAt = now
}

// Filter narrows a listing. A nil Status and an empty Search match everything.
type Filter struct {
	Status *Status
	Search string
}
