package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobtracker/pkg/apperr"
	"github.com/artem13815/jobtracker/pkg/patch"
	"github.com/artem13815/jobtracker/pkg/resource"
)

var resourceCols = []string{"id", "user_id", "title", "url", "category", "notes", "is_reviewed",
	"linked_application_id", "created_at"}

func TestResourceRepository_ListByOwnerScansLink(t *testing.T) {
	db, mock := newMock(t)
	repo := NewResourceRepository(db)
	userID, linked := uuid.New(), uuid.New()
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := resource.CategorySystemDesign

	rows := sqlmock.NewRows(resourceCols).
		AddRow(uuid.New().String(), userID.String(), "DDIA", nil, "system_design", nil, false, linked.String(), ts).
		AddRow(uuid.New().String(), userID.String(), "Grokking", "https://x.example", "system_design", "ch. 3", true, nil, ts)
	mock.ExpectQuery(`FROM resources WHERE user_id = \$1 AND category = \$2 ORDER BY created_at DESC`).
		WithArgs(userID, "system_design").
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), userID, resource.Filter{Category: &cat})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].LinkedApplicationID)
	assert.Equal(t, linked, *got[0].LinkedApplicationID)
	assert.Nil(t, got[1].LinkedApplicationID)
	assert.True(t, got[1].IsReviewed)
}

func TestResourceRepository_CreateUnknownApplication(t *testing.T) {
	db, mock := newMock(t)
	repo := NewResourceRepository(db)
	linked := uuid.New()
	res := resource.Resource{
		ID: uuid.New(), UserID: uuid.New(), Title: "DDIA", Category: resource.CategoryOther,
		LinkedApplicationID: &linked, CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO resources`).
		WithArgs(res.ID, res.UserID, "DDIA", nil, "other", nil, false, linked, sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	assert.ErrorIs(t, repo.Create(context.Background(), res), apperr.ErrAccessDenied)
}

func TestResourceRepository_UpdateForOwnerLinksOwnedApplication(t *testing.T) {
	db, mock := newMock(t)
	repo := NewResourceRepository(db)
	userID, id, linked := uuid.New(), uuid.New(), uuid.New()
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE resources SET is_reviewed = \$1, linked_application_id = \$2 ` +
		`WHERE id = \$3 AND user_id = \$4 ` +
		`AND EXISTS \(SELECT 1 FROM applications AS t WHERE t.id = \$5 AND t.user_id = \$4\) RETURNING`).
		WithArgs(true, linked, id, userID, linked).
		WillReturnRows(sqlmock.NewRows(resourceCols).
			AddRow(id.String(), userID.String(), "DDIA", nil, "other", nil, true, linked.String(), ts))

	reviewed := true
	got, err := repo.UpdateForOwner(context.Background(), userID, id,
		resource.Patch{IsReviewed: &reviewed, LinkedApplicationID: patch.Value(linked)})
	require.NoError(t, err)
	assert.True(t, got.IsReviewed)
	require.NotNil(t, got.LinkedApplicationID)
	assert.Equal(t, linked, *got.LinkedApplicationID)
}

func TestResourceRepository_UpdateForOwnerUnlinks(t *testing.T) {
	db, mock := newMock(t)
	repo := NewResourceRepository(db)
	userID, id := uuid.New(), uuid.New()

	mock.ExpectQuery(`UPDATE resources SET linked_application_id = \$1 WHERE id = \$2 AND user_id = \$3 RETURNING`).
		WithArgs(nil, id, userID).
		WillReturnRows(sqlmock.NewRows(resourceCols))

	_, err := repo.UpdateForOwner(context.Background(), userID, id,
		resource.Patch{LinkedApplicationID: patch.Null[uuid.UUID]()})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResourceRepository_DeleteForOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewResourceRepository(db)
	userID, id := uuid.New(), uuid.New()

	mock.ExpectExec(`DELETE FROM resources WHERE id = \$1 AND user_id = \$2`).
		WithArgs(id, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.DeleteForOwner(context.Background(), userID, id)
	require.NoError(t, err)
	assert.True(t, ok)
}
