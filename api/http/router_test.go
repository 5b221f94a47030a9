package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/artem13815/jobtracker/api/http"
	"github.com/artem13815/jobtracker/api/http/handlers"
	"github.com/artem13815/jobtracker/pkg/application"
	"github.com/artem13815/jobtracker/pkg/auth"
	"github.com/artem13815/jobtracker/pkg/health"
	"github.com/artem13815/jobtracker/pkg/interview"
	"github.com/artem13815/jobtracker/pkg/llm"
	"github.com/artem13815/jobtracker/pkg/logging"
	"github.com/artem13815/jobtracker/pkg/question"
	"github.com/artem13815/jobtracker/pkg/repository/memory"
	"github.com/artem13815/jobtracker/pkg/resource"
	"github.com/artem13815/jobtracker/pkg/security/gate"
	"github.com/artem13815/jobtracker/pkg/security/jwt"
)

const (
	testSecret = "test-secret"
	testIssuer = "jobtracker-test"
)

type echoModel struct{}

func (echoModel) Ask(_ context.Context, _, userPrompt string) (string, error) {
	return "  Situation, task, action, result.  ", nil
}

func newServer(t *testing.T, model llm.ChatModel) *fiber.App {
	t.Helper()
	m := memory.New()
	log := logging.Nop()

	tokens := jwt.NewGenerator(testSecret, testIssuer, time.Hour)
	resolver := auth.RequireAccount(jwt.NewVerifier(testSecret, testIssuer), m.Users())

	h := apihttp.Handlers{
		Auth:         handlers.NewAuthHandler(auth.NewAuthService(m.Users(), tokens), log),
		Health:       handlers.NewHealthHandler(health.NewService(), log),
		Account:      handlers.NewAccountHandler(auth.NewAccountService(m.Users()), log),
		Applications: handlers.NewApplicationHandler(application.NewService(m.Applications()), log),
		Interviews:   handlers.NewInterviewHandler(interview.NewService(m.Interviews(), m.Applications()), log),
		Resources:    handlers.NewResourceHandler(resource.NewService(m.Resources(), m.Applications()), log),
		Questions: handlers.NewQuestionHandler(question.NewService(m.Questions()),
			question.NewCoach(m.Questions(), model, "test-model"), log),
	}
	app := fiber.New(fiber.Config{ErrorHandler: apihttp.ErrorHandler})
	app.Use(requestid.New())
	app.Use(apihttp.AccessLog(log, "/metrics"))
	apihttp.Register(app, h, gate.NewMiddleware(resolver, log))
	return app
}

type client struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (c client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(c.t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, out
}

func (c client) decode(method, path string, body any, want int, out any) {
	c.t.Helper()
	status, raw := c.do(method, path, body)
	require.Equal(c.t, want, status, string(raw))
	if out != nil {
		require.NoError(c.t, json.Unmarshal(raw, out), string(raw))
	}
}

func register(t *testing.T, app *fiber.App, email string) client {
	t.Helper()
	anon := client{t: t, app: app}
	var res struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	anon.decode(http.MethodPost, "/api/auth/register",
		map[string]string{"email": email, "password": "correct-horse"}, http.StatusCreated, &res)
	require.NotEmpty(t, res.Token)
	return client{t: t, app: app, token: res.Token}
}

func message(t *testing.T, raw []byte) string {
	t.Helper()
	var e struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(raw, &e), string(raw))
	return e.Message
}

func createApplication(c client, company string) application.Application {
	c.t.Helper()
	var a application.Application
	c.decode(http.MethodPost, "/api/applications", map[string]any{
		"companyName":     company,
		"positionTitle":   "Backend Engineer",
		"applicationDate": "2024-03-01",
	}, http.StatusCreated, &a)
	return a
}

func TestGate(t *testing.T) {
	app := newServer(t, nil)

	status, raw := client{t: t, app: app}.do(http.MethodGet, "/api/applications", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "missing Authorization header", message(t, raw))

	status, raw = client{t: t, app: app, token: "garbage"}.do(http.MethodGet, "/api/applications", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid or expired token", message(t, raw))

	status, _ = client{t: t, app: app}.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = client{t: t, app: app}.do(http.MethodGet, "/api/ready", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAuth(t *testing.T) {
	app := newServer(t, nil)
	register(t, app, "ann@example.com")
	anon := client{t: t, app: app}

	status, _ := anon.do(http.MethodPost, "/api/auth/register",
		map[string]string{"email": "ANN@example.com", "password": "correct-horse"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = anon.do(http.MethodPost, "/api/auth/register",
		map[string]string{"email": "short@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = anon.do(http.MethodPost, "/api/auth/login",
		map[string]string{"email": "ann@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, status)

	var res struct {
		Token string `json:"token"`
	}
	anon.decode(http.MethodPost, "/api/auth/login",
		map[string]string{"email": "ann@example.com", "password": "correct-horse"}, http.StatusOK, &res)
	assert.NotEmpty(t, res.Token)

	status, raw := anon.do(http.MethodPost, "/api/auth/login", "{not json")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid JSON payload", message(t, raw))
}

func TestApplications_StatsFollowStatusChanges(t *testing.T) {
	app := newServer(t, nil)
	ann := register(t, app, "ann@example.com")

	a := createApplication(ann, "Acme")
	assert.Equal(t, application.StatusApplied, a.Status)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), a.ApplicationDate)
	createApplication(ann, "Globex")

	var updated application.Application
	ann.decode(http.MethodPatch, "/api/applications/"+a.ID.String(),
		map[string]any{"status": "offer"}, http.StatusOK, &updated)
	assert.Equal(t, application.StatusOffer, updated.Status)
	assert.Equal(t, "Acme", updated.CompanyName)

	var st application.Stats
	ann.decode(http.MethodGet, "/api/applications/stats", nil, http.StatusOK, &st)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, map[application.Status]int{application.StatusOffer: 1, application.StatusApplied: 1}, st.ByStatus)

	var offers []application.Application
	ann.decode(http.MethodGet, "/api/applications?status=offer", nil, http.StatusOK, &offers)
	require.Len(t, offers, 1)
	assert.Equal(t, a.ID, offers[0].ID)

	var all []application.Application
	ann.decode(http.MethodGet, "/api/applications?status=all&search=glob", nil, http.StatusOK, &all)
	require.Len(t, all, 1)
	assert.Equal(t, "Globex", all[0].CompanyName)

	status, _ := ann.do(http.MethodGet, "/api/applications?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestApplications_Validation(t *testing.T) {
	app := newServer(t, nil)
	ann := register(t, app, "ann@example.com")

	status, _ := ann.do(http.MethodPost, "/api/applications",
		map[string]any{"positionTitle": "Engineer", "applicationDate": "2024-03-01"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw := ann.do(http.MethodPost, "/api/applications",
		map[string]any{"companyName": "Acme", "positionTitle": "Engineer", "applicationDate": "March 1st"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, message(t, raw), "invalid date")

	a := createApplication(ann, "Acme")
	status, _ = ann.do(http.MethodPatch, "/api/applications/"+a.ID.String(), map[string]any{"status": "hired"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestApplications_PatchNullClears(t *testing.T) {
	app := newServer(t, nil)
	ann := register(t, app, "ann@example.com")
	a := createApplication(ann, "Acme")

	var got application.Application
	ann.decode(http.MethodPatch, "/api/applications/"+a.ID.String(),
		map[string]any{"notes": "referral from Bob", "salaryMin": 90000}, http.StatusOK, &got)
	require.NotNil(t, got.Notes)
	require.NotNil(t, got.SalaryMin)

	ann.decode(http.MethodPatch, "/api/applications/"+a.ID.String(),
		`{"notes": null}`, http.StatusOK, &got)
	assert.Nil(t, got.Notes)
	require.NotNil(t, got.SalaryMin)
	assert.Equal(t, 90000, *got.SalaryMin)
}

func TestApplications_PatchNullOnRequiredField(t *testing.T) {
	app := newServer(t, nil)
	ann := register(t, app, "ann@example.com")
	a := createApplication(ann, "Acme")
	path := "/api/applications/" + a.ID.String()

	for _, body := range []string{`{"companyName": null}`, `{"applicationDate": null}`, `{"positionTitle": null}`} {
		status, raw := ann.do(http.MethodPatch, path, body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Contains(t, message(t, raw), "cannot be null")
	}

	var got application.Application
	ann.decode(http.MethodGet, path, nil, http.StatusOK, &got)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "Backend Engineer", got.PositionTitle)
}

func TestOwnershipIsolation(t *testing.T) {
	app := newServer(t, nil)
	ann := register(t, app, "ann@example.com")
	bob := register(t, app, "bob@example.com")
	a := createApplication(ann, "Acme")
	path := "/api/applications/" + a.ID.String()

	status, _ := bob.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = bob.do(http.MethodPatch, path, map[string]any{"status": "offer"})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = bob.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, status)

	var list []application.Application
	bob.decode(http.MethodGet, "/api/applications", nil, http.StatusOK, &list)
	assert.Empty(t, list)

	status, _ = ann.do(http.MethodGet, "/api/applications/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, status)
	ann.decode(http.MethodGet, path, nil, http.StatusOK, nil)

	// Bob cannot attach an interview or a resource to Ann's application.
	status, raw := bob.do(http.MethodPost, "/api/interviews", map[string]any{
		"applicationId": a.ID, "interviewType": "technical", "interviewDate": "2030-01-01T10:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, message(t, raw), "access denied")

	status, raw = bob.do(http.MethodPost, "/api/resources", map[string]any{
		"title": "DDIA", "category": "system_design", "linkedApplicationId": a.ID,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, message(t, raw), "access denied")
}

func TestInterviews_UpcomingAndCascade(t *testing.T) {
	app := newServer(t, nil)
	ann := register(t, app, "ann@example.com")
	a := createApplication(ann, "Acme")
	now := time.Now().UTC()

	create := func(at time.Time, status string) interview.Interview {
		var iv interview.Interview
		ann.decode(http.MethodPost, "/api/interviews", map[string]any{
			"applicationId": a.ID,
			"interviewType": "technical",
			"interviewDate": at.Format(time.RFC3339),
			"status":        status,
		}, http.StatusCreated, &iv)
		return iv
	}
	later := create(now.Add(48*time.Hour), "")
	sooner := create(now.Add(24*time.Hour), "scheduled")
	create(now.Add(-24*time.Hour), "scheduled")
	create(now.Add(72*time.Hour), "cancelled")
	assert.Equal(t, interview.StatusScheduled, later.Status)

	var upcoming []interview.Listing
	ann.decode(http.MethodGet, "/api/interviews/upcoming", nil, http.StatusOK, &upcoming)
	require.Len(t, upcoming, 2)
	assert.Equal(t, sooner.ID, upcoming[0].ID)
	assert.Equal(t, later.ID, upcoming[1].ID)
	assert.Equal(t, "Acme", upcoming[0].CompanyName)

	ann.decode(http.MethodGet, "/api/interviews/upcoming?limit=1", nil, http.StatusOK, &upcoming)
	require.Len(t, upcoming, 1)
	assert.Equal(t, sooner.ID, upcoming[0].ID)

	var all []interview.Listing
	ann.decode(http.MethodGet, "/api/interviews?applicationId="+a.ID.String(), nil, http.StatusOK, &all)
	assert.Len(t, all, 4)
	status, _ := ann.do(http.MethodGet, "/api/interviews?applicationId=nope", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var res resource.Resource
	ann.decode(http.MethodPost, "/api/resources", map[string]any{
		"title": "Acme eng blog", "category": "company_specific", "linkedApplicationId": a.ID,
	}, http.StatusCreated, &res)
	require.NotNil(t, res.LinkedApplicationID)

	status, _ = ann.do(http.MethodDelete, "/api/applications/"+a.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = ann.do(http.MethodGet, "/api/interviews/"+sooner.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, status)
	ann.decode(http.MethodGet, "/api/interviews", nil, http.StatusOK, &all)
	assert.Empty(t, all)

	ann.decode(http.MethodGet, "/api/resources/"+res.ID.String(), nil, http.StatusOK, &res)
	assert.Nil(t, res.LinkedApplicationID)
}

func TestInterviews_Validation(t *testing.T) {
	app := newServer(t, nil)
	ann := register(t, app, "ann@example.com")
	a := createApplication(ann, "Acme")

	status, _ := ann.do(http.MethodPost, "/api/interviews", map[string]any{
		"interviewType": "technical", "interviewDate": "2030-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = ann.do(http.MethodPost, "/api/interviews", map[string]any{
		"applicationId": a.ID, "interviewType": "coffee", "interviewDate": "2030-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw := ann.do(http.MethodPost, "/api/interviews", map[string]any{
		"applicationId": uuid.New(), "interviewType": "technical", "interviewDate": "2030-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, message(t, raw), "access denied")

	status, raw = ann.do(http.MethodPost, "/api/interviews", map[string]any{
		"applicationId": "not-a-uuid", "interviewType": "technical", "interviewDate": "2030-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, message(t, raw), "applicationId")

	var iv interview.Interview
	ann.decode(http.MethodPost, "/api/interviews", map[string]any{
		"applicationId": a.ID, "interviewType": "technical", "interviewDate": "2030-01-01",
	}, http.StatusCreated, &iv)
	for _, body := range []string{`{"interviewDate": null}`, `{"interviewType": null}`} {
		status, raw = ann.do(http.MethodPatch, "/api/interviews/"+iv.ID.String(), body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Contains(t, message(t, raw), "cannot be null")
	}

	status, _ = ann.do(http.MethodPatch, "/api/interviews/"+uuid.NewString(),
		map[string]any{"applicationId": uuid.New()})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestQuestions_TagsAndSuggestion(t *testing.T) {
	app := newServer(t, echoModel{})
	ann := register(t, app, "ann@example.com")
	bob := register(t, app, "bob@example.com")

	var q question.Question
	ann.decode(http.MethodPost, "/api/questions", map[string]any{
		"questionText": "Tell me about a conflict",
		"questionType": "behavioral",
		"tags":         []string{" star ", "", "Conflict", "STAR"},
	}, http.StatusCreated, &q)
	assert.Equal(t, []string{"star", "Conflict"}, q.Tags)

	ann.decode(http.MethodPatch, "/api/questions/"+q.ID.String(), `{"tags": null}`, http.StatusOK, &q)
	assert.Equal(t, []string{}, q.Tags)

	var list []question.Question
	ann.decode(http.MethodGet, "/api/questions?type=behavioral&search=CONFLICT", nil, http.StatusOK, &list)
	assert.Len(t, list, 1)
	status, _ := ann.do(http.MethodGet, "/api/questions?type=trivia", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var s question.Suggestion
	ann.decode(http.MethodPost, "/api/questions/"+q.ID.String()+"/suggestion", nil, http.StatusOK, &s)
	assert.Equal(t, "test-model", s.Model)
	assert.Equal(t, "Situation, task, action, result.", s.Answer)

	status, _ = bob.do(http.MethodPost, "/api/questions/"+q.ID.String()+"/suggestion", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestQuestions_SuggestionUnconfigured(t *testing.T) {
	app := newServer(t, nil)
	ann := register(t, app, "ann@example.com")

	var q question.Question
	ann.decode(http.MethodPost, "/api/questions", map[string]any{
		"questionText": "Why us?", "questionType": "company_culture",
	}, http.StatusCreated, &q)

	status, _ := ann.do(http.MethodPost, "/api/questions/"+q.ID.String()+"/suggestion", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestAccount_DeleteCascades(t *testing.T) {
	app := newServer(t, nil)
	ann := register(t, app, "ann@example.com")
	createApplication(ann, "Acme")

	var me auth.User
	ann.decode(http.MethodGet, "/api/me", nil, http.StatusOK, &me)
	assert.Equal(t, "ann@example.com", me.Email)

	status, _ := ann.do(http.MethodDelete, "/api/me", nil)
	assert.Equal(t, http.StatusNoContent, status)

	// The token outlives the account but no longer resolves.
	status, _ = ann.do(http.MethodGet, "/api/applications", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	again := register(t, app, "ann@example.com")
	var list []application.Application
	again.decode(http.MethodGet, "/api/applications", nil, http.StatusOK, &list)
	assert.Empty(t, list)
}

func TestUnknownRouteRendersJSON(t *testing.T) {
	app := newServer(t, nil)
	status, raw := client{t: t, app: app}.do(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, message(t, raw))
}
