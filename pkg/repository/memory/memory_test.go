package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobtracker/pkg/application"
	"github.com/artem13815/jobtracker/pkg/apperr"
	"github.com/artem13815/jobtracker/pkg/auth"
	"github.com/artem13815/jobtracker/pkg/interview"
	"github.com/artem13815/jobtracker/pkg/question"
	"github.com/artem13815/jobtracker/pkg/resource"
)

type fixture struct {
	ctx context.Context
	m   *Memory
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return fixture{ctx: context.Background(), m: New()}
}

func (f fixture) user(t *testing.T, email string) uuid.UUID {
	t.Helper()
	u := auth.User{ID: uuid.New(), Email: email, CreatedAt: now()}
	require.NoError(t, f.m.Users().Create(f.ctx, u))
	return u.ID
}

func (f fixture) app(t *testing.T, userID uuid.UUID, company string, date time.Time) application.Application {
	t.Helper()
	a := application.Application{
		ID: uuid.New(), UserID: userID, CompanyName: company, PositionTitle: "Engineer",
		Status: application.StatusApplied, ApplicationDate: date, CreatedAt: now(), UpdatedAt: now(),
	}
	require.NoError(t, f.m.Applications().Create(f.ctx, a))
	return a
}

func (f fixture) interview(t *testing.T, appID uuid.UUID, at time.Time, st interview.Status) interview.Interview {
	t.Helper()
	iv := interview.Interview{
		ID: uuid.New(), ApplicationID: appID, InterviewType: interview.TypeTechnical,
		InterviewDate: at, Status: st, CreatedAt: now(),
	}
	require.NoError(t, f.m.Interviews().Create(f.ctx, iv))
	return iv
}

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func TestApplications_OwnershipAndOrder(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	bob := f.user(t, "bob@example.com")
	older := f.app(t, alice, "Acme", day(1))
	newer := f.app(t, alice, "Globex", day(5))
	f.app(t, bob, "Initech", day(3))

	repo := f.m.Applications()
	list, err := repo.ListByOwner(f.ctx, alice, application.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	_, err = repo.GetForOwner(f.ctx, bob, older.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	ok, err := repo.DeleteForOwner(f.ctx, bob, older.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	none, err := repo.ListByOwner(f.ctx, uuid.New(), application.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestApplications_Search(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "u@example.com")
	f.app(t, u, "Acme Corp", day(1))
	f.app(t, u, "Globex", day(2))

	list, err := f.m.Applications().ListByOwner(f.ctx, u, application.Filter{Search: "ACME"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme Corp", list[0].CompanyName)

	list, err = f.m.Applications().ListByOwner(f.ctx, u, application.Filter{Search: "engineer"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestApplications_CreateRequiresUser(t *testing.T) {
	f := newFixture(t)
	err := f.m.Applications().Create(f.ctx, application.Application{ID: uuid.New(), UserID: uuid.New()})
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
}

func TestDeleteApplication_Cascades(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "u@example.com")
	a := f.app(t, u, "Acme", day(1))
	iv := f.interview(t, a.ID, day(10), interview.StatusScheduled)
	res := resource.Resource{ID: uuid.New(), UserID: u, Title: "Notes", Category: resource.CategoryOther, LinkedApplicationID: &a.ID, CreatedAt: now()}
	require.NoError(t, f.m.Resources().Create(f.ctx, res))

	ok, err := f.m.Applications().DeleteForOwner(f.ctx, u, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = f.m.Interviews().GetForOwner(f.ctx, u, iv.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := f.m.Resources().GetForOwner(f.ctx, u, res.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LinkedApplicationID)
}

func TestInterviews_JoinAndUpcoming(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice@example.com")
	bob := f.user(t, "bob@example.com")
	a := f.app(t, alice, "Acme", day(1))
	b := f.app(t, bob, "Initech", day(1))

	late := f.interview(t, a.ID, day(20), interview.StatusScheduled)
	soon := f.interview(t, a.ID, day(12), interview.StatusScheduled)
	f.interview(t, a.ID, day(15), interview.StatusCancelled)
	f.interview(t, a.ID, day(2), interview.StatusScheduled)
	f.interview(t, b.ID, day(13), interview.StatusScheduled)

	repo := f.m.Interviews()
	up, err := repo.UpcomingByOwner(f.ctx, alice, day(10), 5)
	require.NoError(t, err)
	require.Len(t, up, 2)
	assert.Equal(t, soon.ID, up[0].ID)
	assert.Equal(t, late.ID, up[1].ID)
	assert.Equal(t, "Acme", up[0].CompanyName)

	up, err = repo.UpcomingByOwner(f.ctx, alice, day(10), 1)
	require.NoError(t, err)
	assert.Len(t, up, 1)

	all, err := repo.ListByOwner(f.ctx, alice, interview.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, day(2), all[0].InterviewDate)

	cancelled := interview.StatusCancelled
	only, err := repo.ListByOwner(f.ctx, alice, interview.Filter{Status: &cancelled})
	require.NoError(t, err)
	assert.Len(t, only, 1)

	_, err = repo.GetForOwner(f.ctx, bob, soon.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	p := interview.Patch{ApplicationID: &b.ID}
	_, err = repo.UpdateForOwner(f.ctx, alice, soon.ID, p)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
}

func TestQuestions_TagsAreCopied(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "u@example.com")
	tags := []string{"go"}
	q := question.Question{ID: uuid.New(), UserID: u, QuestionText: "Why Go?", QuestionType: question.TypeTechnical, Tags: tags, CreatedAt: now()}
	require.NoError(t, f.m.Questions().Create(f.ctx, q))
	tags[0] = "mutated"

	got, err := f.m.Questions().GetForOwner(f.ctx, u, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, got.Tags)
}

func TestUsers_UpsertExternalAndCascade(t *testing.T) {
	f := newFixture(t)
	users := f.m.Users()

	first, err := users.UpsertExternal(f.ctx, "sub-1", "Ext@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "ext@example.com", first.Email)

	again, err := users.UpsertExternal(f.ctx, "sub-1", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "new@example.com", again.Email)

	f.user(t, "taken@example.com")
	_, err = users.UpsertExternal(f.ctx, "sub-2", "taken@example.com")
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)

	a := f.app(t, first.ID, "Acme", day(1))
	f.interview(t, a.ID, day(3), interview.StatusScheduled)
	ok, err := users.Delete(f.ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, f.m.applications)
	assert.Empty(t, f.m.interviews)

	ok, err = users.Delete(f.ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUsers_CreateRejectsNilID(t *testing.T) {
	f := newFixture(t)
	users := f.m.Users()

	err := users.Create(f.ctx, auth.User{Email: "nil@example.com"})
	require.Error(t, err)
	_, err = users.GetByEmail(f.ctx, "nil@example.com")
	assert.ErrorIs(t, err, auth.ErrNotFound)

	f.user(t, "owner@example.com")
	_, err = users.UpsertExternal(f.ctx, "sub-3", "owner@example.com")
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
}
