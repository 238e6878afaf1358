package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/projects"
	"github.com/dmitrijs2005/taskboard/internal/server/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/users"
)

// ---- test logger ----

type nopLogger struct{}

func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----
//
// The fakes are stateful and enforce the same ownership scoping as the
// real services, so the handler tests exercise full request flows.

type fakeUsers struct {
	byUsername map[string]*users.User
	passwords  map[string]string
	nextID     int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byUsername: make(map[string]*users.User),
		passwords:  make(map[string]string),
	}
}

func (f *fakeUsers) Register(ctx context.Context, name, email, username, password string) (*users.User, error) {
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}
	if _, ok := f.byUsername[username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	u := &users.User{ID: fmt.Sprintf("u-%d", f.nextID), Name: name, Email: email, Username: username}
	f.byUsername[username] = u
	f.passwords[username] = password
	return u, nil
}

func (f *fakeUsers) Authenticate(ctx context.Context, username, password string) (*users.User, error) {
	u, ok := f.byUsername[username]
	if !ok || f.passwords[username] != password {
		return nil, common.ErrorUnauthenticated
	}
	return u, nil
}

func (f *fakeUsers) Update(ctx context.Context, id, name, email string) error {
	for _, u := range f.byUsername {
		if u.ID == id {
			u.Name = name
			u.Email = email
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeProjects struct {
	byID   map[string]*projects.Project
	nextID int
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{byID: make(map[string]*projects.Project)}
}

func (f *fakeProjects) List(ctx context.Context, userID string) ([]*projects.Project, error) {
	out := make([]*projects.Project, 0)
	for _, p := range f.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) Create(ctx context.Context, userID string, title string) (*projects.Project, error) {
	if title == "" {
		return nil, common.ErrorValidation
	}
	f.nextID++
	p := &projects.Project{ID: fmt.Sprintf("p-%d", f.nextID), UserID: userID, Title: title}
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeProjects) Get(ctx context.Context, id string, userID string) (*projects.Project, error) {
	p, ok := f.byID[id]
	if !ok || p.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProjects) Update(ctx context.Context, id string, userID string, title string) error {
	if title == "" {
		return common.ErrorValidation
	}
	p, ok := f.byID[id]
	if !ok || p.UserID != userID {
		return common.ErrorNotFound
	}
	p.Title = title
	return nil
}

func (f *fakeProjects) Delete(ctx context.Context, id string, userID string) error {
	p, ok := f.byID[id]
	if !ok || p.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeTasks struct {
	projects *fakeProjects
	byID     map[string]*tasks.Task
	nextID   int
}

func newFakeTasks(fp *fakeProjects) *fakeTasks {
	return &fakeTasks{projects: fp, byID: make(map[string]*tasks.Task)}
}

func (f *fakeTasks) resolve(ctx context.Context, userID, projectID string) error {
	_, err := f.projects.Get(ctx, projectID, userID)
	return err
}

func (f *fakeTasks) List(ctx context.Context, userID string, projectID string) ([]*tasks.Task, error) {
	if err := f.resolve(ctx, userID, projectID); err != nil {
		return nil, err
	}
	out := make([]*tasks.Task, 0)
	for _, t := range f.byID {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTasks) Create(ctx context.Context, userID string, projectID string, title string, completed bool) (*tasks.Task, error) {
	if err := f.resolve(ctx, userID, projectID); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, common.ErrorValidation
	}
	f.nextID++
	t := &tasks.Task{ID: fmt.Sprintf("t-%d", f.nextID), ProjectID: projectID, Title: title, Completed: completed}
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeTasks) Get(ctx context.Context, userID string, projectID string, taskID string) (*tasks.Task, error) {
	if err := f.resolve(ctx, userID, projectID); err != nil {
		return nil, err
	}
	t, ok := f.byID[taskID]
	if !ok || t.ProjectID != projectID {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeTasks) Update(ctx context.Context, userID string, projectID string, taskID string, title string, completed bool) error {
	if err := f.resolve(ctx, userID, projectID); err != nil {
		return err
	}
	if title == "" {
		return common.ErrorValidation
	}
	t, ok := f.byID[taskID]
	if !ok || t.ProjectID != projectID {
		return common.ErrorNotFound
	}
	t.Title = title
	t.Completed = completed
	return nil
}

func (f *fakeTasks) Delete(ctx context.Context, userID string, projectID string, taskID string) error {
	if err := f.resolve(ctx, userID, projectID); err != nil {
		return err
	}
	t, ok := f.byID[taskID]
	if !ok || t.ProjectID != projectID {
		return common.ErrorNotFound
	}
	delete(f.byID, taskID)
	return nil
}

// ---- helpers ----

type creds struct {
	username string
	password string
}

func newTestAPI(t *testing.T) (*echo.Echo, *fakeUsers, *fakeProjects, *fakeTasks) {
	t.Helper()
	fu := newFakeUsers()
	fp := newFakeProjects()
	ft := newFakeTasks(fp)
	s := NewServer("127.0.0.1:0", nopLogger{}, fu, fp, ft)
	return s.routes(), fu, fp, ft
}

func do(t *testing.T, e *echo.Echo, method, target, body string, c *creds) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if c != nil {
		req.SetBasicAuth(c.username, c.password)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerHomer(t *testing.T, e *echo.Echo) *creds {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/user/register",
		`{"name": "Homer Simpson", "email": "homer@simpson.com", "username": "homer", "password": "1234"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return &creds{username: "homer", password: "1234"}
}

func projectID(t *testing.T, e *echo.Echo, c *creds) string {
	t.Helper()
	rec := do(t, e, http.MethodGet, "/projects", "", c)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []*projects.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.NotEmpty(t, list)
	return list[0].ID
}

// ---- registration ----

func TestRegister_MissingFields(t *testing.T) {
	e, fu, _, _ := newTestAPI(t)

	for _, body := range []string{
		`{"password": "1234"}`,
		`{"username": "homer"}`,
		`{}`,
	} {
		rec := do(t, e, http.MethodPost, "/user/register", body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}

	assert.Empty(t, fu.byUsername, "no user row may be created on a failed registration")
}

func TestRegister_Success(t *testing.T) {
	e, fu, _, _ := newTestAPI(t)

	registerHomer(t, e)

	require.Len(t, fu.byUsername, 1)
	assert.Equal(t, "homer", fu.byUsername["homer"].Username)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	e, fu, _, _ := newTestAPI(t)

	registerHomer(t, e)
	rec := do(t, e, http.MethodPost, "/user/register",
		`{"username": "homer", "password": "other"}`, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username already exists")
	assert.Len(t, fu.byUsername, 1)
}

// ---- identity resolution ----

func TestGetUser_Success(t *testing.T) {
	e, _, _, _ := newTestAPI(t)
	c := registerHomer(t, e)

	rec := do(t, e, http.MethodGet, "/user", "", c)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "homer", got["username"])
	assert.Equal(t, "homer@simpson.com", got["email"])
	assert.NotContains(t, rec.Body.String(), "password", "credentials must never be serialized")
}

func TestGetUser_AbsentCredentials(t *testing.T) {
	e, _, _, _ := newTestAPI(t)
	registerHomer(t, e)

	rec := do(t, e, http.MethodGet, "/user", "", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized")
}

func TestGetUser_WrongPassword(t *testing.T) {
	e, _, _, _ := newTestAPI(t)
	registerHomer(t, e)

	rec := do(t, e, http.MethodGet, "/user", "", &creds{username: "homer", password: "4321"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestGetUser_EmptyPassword(t *testing.T) {
	e, _, _, _ := newTestAPI(t)
	registerHomer(t, e)

	rec := do(t, e, http.MethodGet, "/user", "", &creds{username: "homer", password: ""})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username and password required")
}

func TestUpdateUser_MissingFields(t *testing.T) {
	e, _, _, _ := newTestAPI(t)
	c := registerHomer(t, e)

	rec := do(t, e, http.MethodPut, "/user", `{"name": "Max Power"}`, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name and email required")
}

func TestUpdateUser_Success(t *testing.T) {
	e, fu, _, _ := newTestAPI(t)
	c := registerHomer(t, e)

	rec := do(t, e, http.MethodPut, "/user",
		`{"name": "Max Power", "email": "max@power.com"}`, c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Max Power", fu.byUsername["homer"].Name)
}

// ---- projects ----

func TestProjects_CRUDRoundTrip(t *testing.T) {
	e, _, _, _ := newTestAPI(t)
	c := registerHomer(t, e)

	rec := do(t, e, http.MethodPost, "/projects", `{"title": "springfield"}`, c)
	require.Equal(t, http.StatusCreated, rec.Code)

	id := projectID(t, e, c)

	rec = do(t, e, http.MethodGet, "/projects/"+id, "", c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "springfield")

	rec = do(t, e, http.MethodPut, "/projects/"+id, `{"title": "power plant"}`, c)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, "/projects/"+id, "", c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "power plant")

	rec = do(t, e, http.MethodDelete, "/projects/"+id, "", c)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, "/projects/"+id, "", c)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodDelete, "/projects/"+id, "", c)
	assert.Equal(t, http.StatusNotFound, rec.Code, "a second delete must report not found")
}

func TestProjects_EmptyListIsArray(t *testing.T) {
	e, _, _, _ := newTestAPI(t)
	c := registerHomer(t, e)

	rec := do(t, e, http.MethodGet, "/projects", "", c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestProjects_CreateEmptyTitle(t *testing.T) {
	e, _, _, _ := newTestAPI(t)
	c := registerHomer(t, e)

	rec := do(t, e, http.MethodPost, "/projects", `{}`, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title required")
}

func TestProjects_InvisibleToOtherOwner(t *testing.T) {
	e, _, _, _ := newTestAPI(t)
	homer := registerHomer(t, e)

	rec := do(t, e, http.MethodPost, "/user/register",
		`{"username": "burns", "password": "excellent"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	burns := &creds{username: "burns", password: "excellent"}

	rec = do(t, e, http.MethodPost, "/projects", `{"title": "springfield"}`, homer)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := projectID(t, e, homer)

	// the item must be masked as not found, not rejected as forbidden
	rec = do(t, e, http.MethodGet, "/projects/"+id, "", burns)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodPut, "/projects/"+id, `{"title": "mine now"}`, burns)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodDelete, "/projects/"+id, "", burns)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodGet, "/projects", "", burns)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

// ---- tasks ----

func TestTasks_CRUDRoundTrip(t *testing.T) {
	e, _, _, ft := newTestAPI(t)
	c := registerHomer(t, e)

	rec := do(t, e, http.MethodPost, "/projects", `{"title": "springfield"}`, c)
	require.Equal(t, http.StatusCreated, rec.Code)
	pid := projectID(t, e, c)

	rec = do(t, e, http.MethodPost, "/projects/"+pid+"/tasks", `{"title": "eat donuts"}`, c)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, e, http.MethodGet, "/projects/"+pid+"/tasks", "", c)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []*tasks.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	tid := list[0].ID
	assert.False(t, list[0].Completed)

	rec = do(t, e, http.MethodPut, "/projects/"+pid+"/tasks/"+tid,
		`{"title": "eat donuts", "completed": true}`, c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ft.byID[tid].Completed)

	rec = do(t, e, http.MethodDelete, "/projects/"+pid+"/tasks/"+tid, "", c)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, "/projects/"+pid+"/tasks/"+tid, "", c)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodDelete, "/projects/"+pid+"/tasks/"+tid, "", c)
	assert.Equal(t, http.StatusNotFound, rec.Code, "a second delete must report not found")
}

func TestTasks_UnownedProjectMasksTasks(t *testing.T) {
	e, _, _, _ := newTestAPI(t)
	homer := registerHomer(t, e)

	rec := do(t, e, http.MethodPost, "/user/register",
		`{"username": "burns", "password": "excellent"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	burns := &creds{username: "burns", password: "excellent"}

	rec = do(t, e, http.MethodPost, "/projects", `{"title": "springfield"}`, homer)
	require.Equal(t, http.StatusCreated, rec.Code)
	pid := projectID(t, e, homer)

	rec = do(t, e, http.MethodPost, "/projects/"+pid+"/tasks", `{"title": "eat donuts"}`, homer)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, e, http.MethodGet, "/projects/"+pid+"/tasks", "", homer)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []*tasks.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	tid := list[0].ID

	// every task route under the unowned project is a 404
	rec = do(t, e, http.MethodGet, "/projects/"+pid+"/tasks", "", burns)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodGet, "/projects/"+pid+"/tasks/"+tid, "", burns)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodPost, "/projects/"+pid+"/tasks", `{"title": "steal"}`, burns)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTasks_ValidTaskUnderWrongProject(t *testing.T) {
	e, _, _, _ := newTestAPI(t)
	c := registerHomer(t, e)

	rec := do(t, e, http.MethodPost, "/projects", `{"title": "springfield"}`, c)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, e, http.MethodPost, "/projects", `{"title": "power plant"}`, c)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, e, http.MethodGet, "/projects", "", c)
	require.Equal(t, http.StatusOK, rec.Code)
	var plist []*projects.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plist))
	require.Len(t, plist, 2)
	p1, p2 := plist[0].ID, plist[1].ID

	rec = do(t, e, http.MethodPost, "/projects/"+p1+"/tasks", `{"title": "eat donuts"}`, c)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, e, http.MethodGet, "/projects/"+p1+"/tasks", "", c)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []*tasks.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	tid := list[0].ID

	rec = do(t, e, http.MethodGet, "/projects/"+p2+"/tasks/"+tid, "", c)
	assert.Equal(t, http.StatusNotFound, rec.Code, "task id valid under another project must not resolve")
}

func TestTasks_CreateEmptyTitle(t *testing.T) {
	e, _, _, _ := newTestAPI(t)
	c := registerHomer(t, e)

	rec := do(t, e, http.MethodPost, "/projects", `{"title": "springfield"}`, c)
	require.Equal(t, http.StatusCreated, rec.Code)
	pid := projectID(t, e, c)

	rec = do(t, e, http.MethodPost, "/projects/"+pid+"/tasks", `{}`, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
