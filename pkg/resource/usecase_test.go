package resource_test

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
	"github.com/artem13815/jobtracker/pkg/patch"
	"github.com/artem13815/jobtracker/pkg/repository/memory"
	"github.com/artem13815/jobtracker/pkg/resource"
)

func TestResourceLinking(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	alice, bob := uuid.New(), uuid.New()
	require.NoError(t, m.Users().Create(ctx, auth.User{ID: alice, Email: "alice@example.com"}))
	require.NoError(t, m.Users().Create(ctx, auth.User{ID: bob, Email: "bob@example.com"}))

	apps := application.NewService(m.Applications())
	svc := resource.NewService(m.Resources(), m.Applications())

	draft := application.Draft{CompanyName: "Acme", PositionTitle: "SWE", ApplicationDate: time.Now()}
	mine, err := apps.Create(ctx, alice, draft)
	require.NoError(t, err)
	theirs, err := apps.Create(ctx, bob, draft)
	require.NoError(t, err)

	_, err = svc.Create(ctx, alice, resource.Draft{Title: "Prep", Category: resource.CategoryCompanySpecific, LinkedApplicationID: &theirs.ID})
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	r, err := svc.Create(ctx, alice, resource.Draft{Title: "Prep", Category: resource.CategoryCompanySpecific})
	require.NoError(t, err)
	assert.False(t, r.IsReviewed)
	assert.Nil(t, r.LinkedApplicationID)

	_, err = svc.Update(ctx, alice, r.ID, resource.Patch{LinkedApplicationID: patch.Value(theirs.ID)})
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	_, err = svc.Update(ctx, bob, r.ID, resource.Patch{LinkedApplicationID: patch.Value(theirs.ID)})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = svc.Update(ctx, alice, uuid.New(), resource.Patch{LinkedApplicationID: patch.Value(theirs.ID)})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	linked, err := svc.Update(ctx, alice, r.ID, resource.Patch{LinkedApplicationID: patch.Value(mine.ID)})
	require.NoError(t, err)
	require.NotNil(t, linked.LinkedApplicationID)
	assert.Equal(t, mine.ID, *linked.LinkedApplicationID)

	require.NoError(t, apps.Delete(ctx, alice, mine.ID))
	got, err := svc.Get(ctx, alice, r.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LinkedApplicationID)

	_, err = svc.Get(ctx, bob, r.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, bob, r.ID), apperr.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, alice, r.ID))
}

func TestResourceFilter(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	u := uuid.New()
	require.NoError(t, m.Users().Create(ctx, auth.User{ID: u, Email: "u@example.com"}))
	svc := resource.NewService(m.Resources(), m.Applications())

	for _, c := range []resource.Category{resource.CategoryAlgorithms, resource.CategoryResume, resource.CategoryAlgorithms} {
		_, err := svc.Create(ctx, u, resource.Draft{Title: string(c), Category: c})
		require.NoError(t, err)
	}
	algo := resource.CategoryAlgorithms
	list, err := svc.List(ctx, u, resource.Filter{Category: &algo})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	all, err := svc.List(ctx, u, resource.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
