package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"job_portal/internal/model"
	"job_portal/internal/repository"
	"job_portal/internal/service"
	"job_portal/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	srv   *httptest.Server
	store *repository.MemoryStore
	seed  service.SeedService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	jwtUtil := utils.NewJWTUtil("test-secret", time.Hour)
	seed := service.NewSeedService(store)
	router := NewRouter(Deps{
		Auth:    service.NewAuthService(store, jwtUtil),
		Jobs:    service.NewJobService(store),
		Admin:   service.NewAdminService(store, nil),
		Seed:    seed,
		JWTUtil: jwtUtil,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		DB:      store,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testApp{srv: srv, store: store, seed: seed}
}

// browser returns a client that keeps cookies and does not follow redirects
func (a *testApp) browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type page struct {
	status   int
	location string
	body     map[string]any
}

func (p page) view() string {
	v, _ := p.body["view"].(string)
	return v
}

func (p page) flashes() []string {
	raw, _ := p.body["flashes"].([]any)
	var out []string
	for _, f := range raw {
		if m, ok := f.(map[string]any); ok {
			out = append(out, fmt.Sprint(m["message"]))
		}
	}
	return out
}

func (p page) list(key string) []any {
	l, _ := p.body[key].([]any)
	return l
}

func (p page) errors() map[string]any {
	e, _ := p.body["errors"].(map[string]any)
	return e
}

func (a *testApp) do(t *testing.T, c *http.Client, method, path string, form url.Values) page {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, a.srv.URL+path, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	p := page{status: resp.StatusCode, location: resp.Header.Get("Location"), body: map[string]any{}}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &p.body))
	}
	return p
}

func (a *testApp) get(t *testing.T, c *http.Client, path string) page {
	return a.do(t, c, http.MethodGet, path, nil)
}

func (a *testApp) post(t *testing.T, c *http.Client, path string, form url.Values) page {
	return a.do(t, c, http.MethodPost, path, form)
}

func (a *testApp) login(t *testing.T, c *http.Client, email, password string) {
	t.Helper()
	p := a.post(t, c, "/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(t, http.StatusFound, p.status, "login as %s", email)
}

func (a *testApp) register(t *testing.T, c *http.Client, name, email, role, company string) {
	t.Helper()
	p := a.post(t, c, "/register", url.Values{
		"name": {name}, "email": {email}, "password": {"secret"}, "confirm": {"secret"},
		"role": {role}, "company": {company},
	})
	require.Equal(t, http.StatusFound, p.status)
	require.Equal(t, "/login", p.location)
}

func (a *testApp) sampleJobID(t *testing.T) int64 {
	t.Helper()
	_, err := a.seed.CreateSample(context.Background())
	require.NoError(t, err)
	jobs, err := a.store.Jobs().List(context.Background(), 0)
	require.NoError(t, err)
	require.NotEmpty(t, jobs)
	return jobs[0].ID
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	p := app.get(t, app.browser(t), "/health")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Equal(t, "ok", p.body["status"])
}

func TestHome_EmptyStore(t *testing.T) {
	app := newTestApp(t)
	p := app.get(t, app.browser(t), "/")

	assert.Equal(t, http.StatusOK, p.status)
	assert.Equal(t, "index", p.view())
	jobs, ok := p.body["jobs"].([]any)
	require.True(t, ok, "jobs must be an empty list, not null")
	assert.Empty(t, jobs)
	assert.NotContains(t, p.body, "current_user")
}

func TestHome_ShowsSixMostRecent(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	emp := &model.User{Email: "emp@acme.io", Role: model.RoleEmployer, Company: "Acme"}
	require.NoError(t, app.store.Users().Create(ctx, emp))
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		require.NoError(t, app.store.Jobs().Create(ctx, &model.Job{
			Title: fmt.Sprintf("Job %d", i), Description: "d", EmployerID: emp.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	home := app.get(t, app.browser(t), "/")
	jobs := home.list("jobs")
	require.Len(t, jobs, 6)
	assert.Equal(t, "Job 7", jobs[0].(map[string]any)["title"])
	assert.Equal(t, "Acme", jobs[0].(map[string]any)["company"])
	assert.Equal(t, "Job 2", jobs[5].(map[string]any)["title"])

	all := app.get(t, app.browser(t), "/jobs")
	assert.Equal(t, "jobs/list", all.view())
	assert.Len(t, all.list("jobs"), 8)
}

func TestCreateSample_Idempotent(t *testing.T) {
	app := newTestApp(t)
	c := app.browser(t)

	p := app.get(t, c, "/create-sample")
	assert.Equal(t, http.StatusFound, p.status)
	assert.Equal(t, "/", p.location)
	assert.Equal(t, []string{"Sample data created"}, app.get(t, c, "/").flashes())

	p = app.get(t, c, "/create-sample")
	assert.Equal(t, http.StatusFound, p.status)
	assert.Equal(t, []string{"Sample already created"}, app.get(t, c, "/").flashes())

	ctx := context.Background()
	employers, _ := app.store.Users().CountByRole(ctx, model.RoleEmployer)
	seekers, _ := app.store.Users().CountByRole(ctx, model.RoleJobseeker)
	jobs, _ := app.store.Jobs().Count(ctx)
	assert.Equal(t, int64(1), employers)
	assert.Equal(t, int64(1), seekers)
	assert.Equal(t, int64(2), jobs)
}

func TestJobDetail_NotFound(t *testing.T) {
	app := newTestApp(t)
	c := app.browser(t)

	for _, path := range []string{"/jobs/999", "/jobs/abc", "/no/such/page"} {
		p := app.get(t, c, path)
		assert.Equal(t, http.StatusNotFound, p.status, path)
		assert.Equal(t, "errors/404", p.view(), path)
	}

	p := app.post(t, c, "/jobs/999", url.Values{"cover_letter": {"hi"}})
	assert.Equal(t, http.StatusNotFound, p.status)
}

func TestApply_AnonymousRedirectsWithoutCreating(t *testing.T) {
	app := newTestApp(t)
	jobID := app.sampleJobID(t)
	c := app.browser(t)

	detail := app.get(t, c, fmt.Sprintf("/jobs/%d", jobID))
	assert.Equal(t, http.StatusOK, detail.status)
	assert.Equal(t, "jobs/detail", detail.view())

	p := app.post(t, c, fmt.Sprintf("/jobs/%d", jobID), url.Values{"cover_letter": {"hire me"}})
	assert.Equal(t, http.StatusFound, p.status)
	assert.Equal(t, fmt.Sprintf("/login?next=%%2Fjobs%%2F%d", jobID), p.location)

	apps, err := app.store.Applications().FindByJob(context.Background(), jobID)
	require.NoError(t, err)
	assert.Empty(t, apps)

	loginPage := app.get(t, c, p.location)
	assert.Equal(t, "auth/login", loginPage.view())
	assert.Contains(t, loginPage.flashes(), "You must be logged in as a jobseeker to apply.")
}

func TestApply_EmployerIsRedirected(t *testing.T) {
	app := newTestApp(t)
	jobID := app.sampleJobID(t)
	c := app.browser(t)
	app.login(t, c, service.SampleEmployerEmail, "emppass")

	p := app.post(t, c, fmt.Sprintf("/jobs/%d", jobID), url.Values{})
	assert.Equal(t, http.StatusFound, p.status)
	assert.True(t, strings.HasPrefix(p.location, "/login?next="))

	apps, _ := app.store.Applications().FindByJob(context.Background(), jobID)
	assert.Empty(t, apps)
}

func TestJobseekerFlow(t *testing.T) {
	app := newTestApp(t)
	jobID := app.sampleJobID(t)
	c := app.browser(t)

	app.register(t, c, "Jane", "jane@mail.io", model.RoleJobseeker, "")
	assert.Contains(t, app.get(t, c, "/login").flashes(), "Registered! Please login.")

	p := app.post(t, c, "/login", url.Values{"email": {"jane@mail.io"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, p.status)
	assert.Equal(t, "auth/login", p.view())
	assert.Contains(t, p.flashes(), "Invalid credentials")

	app.login(t, c, "jane@mail.io", "secret")
	for _, path := range []string{"/login", "/register"} {
		p := app.get(t, c, path)
		assert.Equal(t, http.StatusFound, p.status, path)
		assert.Equal(t, "/", p.location, path)
	}

	applyPath := fmt.Sprintf("/jobs/%d", jobID)
	first := app.post(t, c, applyPath, url.Values{"cover_letter": {"first"}})
	assert.Equal(t, http.StatusCreated, first.status)
	assert.Equal(t, "apply_success", first.view())
	assert.Contains(t, first.flashes(), "Application submitted")

	second := app.post(t, c, applyPath, url.Values{"cover_letter": {"second"}})
	assert.Equal(t, http.StatusCreated, second.status)

	tooLong := app.post(t, c, applyPath, url.Values{"cover_letter": {strings.Repeat("x", model.MaxCoverLetterLength+1)}})
	assert.Equal(t, http.StatusBadRequest, tooLong.status)
	assert.Equal(t, "jobs/detail", tooLong.view())
	assert.Contains(t, tooLong.errors(), "cover_letter")

	dash := app.get(t, c, "/jobseeker/dashboard")
	assert.Equal(t, http.StatusOK, dash.status)
	assert.Len(t, dash.list("applications"), 2)

	profile := app.post(t, c, "/jobseeker/profile", url.Values{"name": {"Jane Doe"}})
	assert.Equal(t, http.StatusOK, profile.status)
	assert.Equal(t, "Jane Doe", profile.body["current_user"].(map[string]any)["name"])

	assert.Equal(t, http.StatusFound, app.get(t, c, "/employer/dashboard").status)

	logout := app.get(t, c, "/logout")
	assert.Equal(t, http.StatusFound, logout.status)
	assert.Equal(t, "/", logout.location)
	assert.Contains(t, app.get(t, c, "/").flashes(), "Logged out")

	after := app.get(t, c, "/jobseeker/dashboard")
	assert.Equal(t, http.StatusFound, after.status)
	assert.Equal(t, "/login?next=%2Fjobseeker%2Fdashboard", after.location)
}

func TestLogin_HonoursLocalNext(t *testing.T) {
	app := newTestApp(t)
	_, err := app.seed.CreateSample(context.Background())
	require.NoError(t, err)

	c := app.browser(t)
	p := app.post(t, c, "/login?next=%2Femployer%2Fdashboard", url.Values{"email": {service.SampleEmployerEmail}, "password": {"emppass"}})
	assert.Equal(t, http.StatusFound, p.status)
	assert.Equal(t, "/employer/dashboard", p.location)

	c = app.browser(t)
	p = app.post(t, c, "/login?next=%2F%2Fevil.example", url.Values{"email": {service.SampleEmployerEmail}, "password": {"emppass"}})
	assert.Equal(t, http.StatusFound, p.status)
	assert.Equal(t, "/", p.location)
}

func TestRegister_Validation(t *testing.T) {
	app := newTestApp(t)
	c := app.browser(t)

	p := app.post(t, c, "/register", url.Values{
		"name": {"Bob"}, "email": {"not-an-email"}, "password": {"abc"}, "confirm": {"xyz"}, "role": {"admin"},
	})
	assert.Equal(t, http.StatusBadRequest, p.status)
	assert.Equal(t, "auth/register", p.view())
	errs := p.errors()
	for _, field := range []string{"email", "password", "confirm", "role"} {
		assert.Contains(t, errs, field)
	}

	app.register(t, c, "Bob", "bob@mail.io", model.RoleEmployer, "Bob Corp")
	dup := app.post(t, c, "/register", url.Values{
		"name": {"Bob"}, "email": {"bob@mail.io"}, "password": {"secret"}, "confirm": {"secret"}, "role": {model.RoleJobseeker},
	})
	assert.Equal(t, http.StatusConflict, dup.status)
	assert.Contains(t, dup.flashes(), "Email already registered")
}

func TestEmployerFlow(t *testing.T) {
	app := newTestApp(t)
	c := app.browser(t)

	app.register(t, c, "Hiring", "hr@corp.io", model.RoleEmployer, "Corp")
	app.login(t, c, "hr@corp.io", "secret")

	invalid := app.post(t, c, "/employer/post_job", url.Values{"location": {"Remote"}})
	assert.Equal(t, http.StatusBadRequest, invalid.status)
	assert.Equal(t, "employer/post_job", invalid.view())
	assert.Contains(t, invalid.errors(), "title")
	assert.Contains(t, invalid.errors(), "description")

	posted := app.post(t, c, "/employer/post_job", url.Values{"title": {"SRE"}, "description": {"On call"}, "location": {"Remote"}})
	assert.Equal(t, http.StatusFound, posted.status)
	assert.Equal(t, "/employer/dashboard", posted.location)

	dash := app.get(t, c, "/employer/dashboard")
	assert.Equal(t, "employer/dashboard", dash.view())
	assert.Contains(t, dash.flashes(), "Job posted")
	jobs := dash.list("jobs")
	require.Len(t, jobs, 1)
	jobID := int64(jobs[0].(map[string]any)["id"].(float64))

	own := app.get(t, c, fmt.Sprintf("/employer/job/%d/applications", jobID))
	assert.Equal(t, http.StatusOK, own.status)
	assert.Equal(t, "employer/applications", own.view())
	assert.Empty(t, own.list("applications"))

	assert.Equal(t, http.StatusNotFound, app.get(t, c, "/employer/job/999/applications").status)

	assert.Equal(t, http.StatusFound, app.get(t, c, "/admin/dashboard").status)
	assert.Equal(t, http.StatusFound, app.get(t, c, "/jobseeker/dashboard").status)
}

func TestEmployer_CannotViewForeignApplicants(t *testing.T) {
	app := newTestApp(t)
	jobID := app.sampleJobID(t)
	c := app.browser(t)

	app.register(t, c, "Rival", "rival@corp.io", model.RoleEmployer, "Rival")
	app.login(t, c, "rival@corp.io", "secret")

	p := app.get(t, c, fmt.Sprintf("/employer/job/%d/applications", jobID))
	assert.Equal(t, http.StatusForbidden, p.status)
	assert.Equal(t, "errors/403", p.view())
}

func TestAdminDashboard(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	_, err := app.seed.EnsureAdmin(ctx, "admin@portal.com", "adminpass")
	require.NoError(t, err)
	_, err = app.seed.CreateSample(ctx)
	require.NoError(t, err)

	c := app.browser(t)
	app.login(t, c, "admin@portal.com", "adminpass")

	p := app.get(t, c, "/admin/dashboard")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Equal(t, "admin/dashboard", p.view())
	for key, want := range map[string]float64{
		"total_jobs": 2, "total_employers": 1, "total_jobseekers": 1,
		"jobs_day": 2, "jobs_week": 2, "jobs_month": 2, "jobs_year": 2,
	} {
		assert.Equal(t, want, p.body[key], key)
	}
}

func TestForms_RejectBlankRequiredFields(t *testing.T) {
	app := newTestApp(t)
	c := app.browser(t)

	blankName := app.post(t, c, "/register", url.Values{
		"name": {"   "}, "email": {"blank@mail.io"}, "password": {"    "}, "confirm": {"    "}, "role": {model.RoleEmployer},
	})
	assert.Equal(t, http.StatusBadRequest, blankName.status)
	assert.Equal(t, "auth/register", blankName.view())
	assert.Equal(t, "This field is required.", blankName.errors()["name"])
	assert.Equal(t, "This field is required.", blankName.errors()["password"])
	missing, err := app.store.Users().FindByEmail(context.Background(), "blank@mail.io")
	require.NoError(t, err)
	assert.Nil(t, missing)

	app.register(t, c, "Hiring", "hr@corp.io", model.RoleEmployer, "Corp")
	app.login(t, c, "hr@corp.io", "secret")

	blankJob := app.post(t, c, "/employer/post_job", url.Values{"title": {"   "}, "description": {"\t \n"}})
	assert.Equal(t, http.StatusBadRequest, blankJob.status)
	assert.Equal(t, "employer/post_job", blankJob.view())
	assert.Equal(t, "This field is required.", blankJob.errors()["title"])
	assert.Equal(t, "This field is required.", blankJob.errors()["description"])

	count, err := app.store.Jobs().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
