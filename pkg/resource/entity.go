package resource

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/apperr"
	"github.com/artem13815/jobtracker/pkg/patch"
)

type Category string

const (
	CategoryAlgorithms      Category = "algorithms"
	CategorySystemDesign    Category = "system_design"
	CategoryBehavioral      Category = "behavioral"
	CategoryCompanySpecific Category = "company_specific"
	CategoryResume          Category = "resume"
	CategoryOther           Category = "other"
)

var Categories = []Category{
	CategoryAlgorithms, CategorySystemDesign, CategoryBehavioral,
	CategoryCompanySpecific, CategoryResume, CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ParseCategoryFilter parses a list filter value; "" and "all" mean no filter.
func ParseCategoryFilter(s string) (*Category, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return nil, nil
	}
	c := Category(s)
	if !c.Valid() {
		return nil, apperr.Validation("invalid category: " + s)
	}
	return &c, nil
}

// Resource is preparation material, optionally linked to an application. The
// link is cleared when that application is deleted.
type Resource struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              uuid.UUID  `json:"userId"`
	Title               string     `json:"title"`
	URL                 *string    `json:"url"`
	Category            Category   `json:"category"`
	Notes               *string    `json:"notes"`
	IsReviewed          bool       `json:"isReviewed"`
	LinkedApplicationID *uuid.UUID `json:"linkedApplicationId"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type Draft struct {
	Title               string
	URL                 *string
	Category            Category
	Notes               *string
	IsReviewed          bool
	LinkedApplicationID *uuid.UUID
}

func (d *Draft) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return apperr.Validation("title is required")
	}
	if d.Category == "" {
		return apperr.Validation("category is required")
	}
	if !d.Category.Valid() {
		return apperr.Validation("invalid category: " + string(d.Category))
	}
	return nil
}

type Patch struct {
	Title               *string
	URL                 patch.Nullable[string]
	Category            *Category
	Notes               patch.Nullable[string]
	IsReviewed          *bool
	LinkedApplicationID patch.Nullable[uuid.UUID]
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && !p.URL.Set && p.Category == nil && !p.Notes.Set &&
		p.IsReviewed == nil && !p.LinkedApplicationID.Set
}

func (p *Patch) Validate() error {
	if p.Title != nil {
		v := strings.TrimSpace(*p.Title)
		if v == "" {
			return apperr.Validation("title must not be empty")
		}
		p.Title = &v
	}
	if p.Category != nil && !p.Category.Valid() {
		return apperr.Validation("invalid category: " + string(*p.Category))
	}
	return nil
}

func (p Patch) Apply(r *Resource) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.URL.Set {
		r.URL = p.URL.Ptr()
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Notes.Set {
		r.Notes = p.Notes.Ptr()
	}
	if p.IsReviewed != nil {
		r.IsReviewed = *p.IsReviewed
	}
	if p.LinkedApplicationID.Set {
		r.LinkedApplicationID = p.LinkedApplicationID.Ptr()
	}
}

type Filter struct {
	Category *Category
}
