package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/isdelr/scribe-be/internal/models"
	"github.com/isdelr/scribe-be/internal/services"
	"github.com/stretchr/testify/assert"
)

type fakeUsers struct {
	registerErr error
	loginRes    services.LoginResult
	loginErr    error
	profile     models.Profile
	profileErr  error
}

func (f *fakeUsers) Register(ctx context.Context, username, email, password string) error {
	return f.registerErr
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (services.LoginResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeUsers) Resolve(token string) (string, error) {
	if token == "good" {
		return "u1", nil
	}
	return "", services.ErrUnauthorized
}

func (f *fakeUsers) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	return f.profile, f.profileErr
}

type fakeProgress struct {
	progress  *models.Progress
	getErr    error
	appendErr error
	gotUser   string
}

func (f *fakeProgress) GetProgress(ctx context.Context, userID string) (*models.Progress, error) {
	f.gotUser = userID
	return f.progress, f.getErr
}

func (f *fakeProgress) AppendProgress(ctx context.Context, userID, label string, value *float64) error {
	f.gotUser = userID
	if f.appendErr != nil {
		return f.appendErr
	}
	if label == "" || value == nil {
		return services.ErrMissingField
	}
	return nil
}

type fakeChallenges struct {
	searchErr error
	gotFilter models.ChallengeFilter
}

func (f *fakeChallenges) CreateChallenge(ctx context.Context, c models.Challenge) (models.Challenge, error) {
	return models.Challenge{}, errors.New("disk full")
}

func (f *fakeChallenges) GetChallengeByID(ctx context.Context, id string) (models.Challenge, error) {
	return models.Challenge{}, fmt.Errorf("challenge %s: %w", id, services.ErrNotFound)
}

func (f *fakeChallenges) SearchChallenges(ctx context.Context, filter models.ChallengeFilter) ([]models.Challenge, error) {
	f.gotFilter = filter
	return []models.Challenge{}, f.searchErr
}

func request(method, target, body, token string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestUserHandler_Register(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"ok", nil, http.StatusCreated, "User created successfully"},
		{"missing", services.ErrMissingField, http.StatusBadRequest, "Missing required fields"},
		{"duplicate", fmt.Errorf("x: %w", services.ErrAlreadyExists), http.StatusBadRequest, "User already exists"},
		{"store failure", errors.New("db down"), http.StatusInternalServerError, "Failed to register user"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewUserHandler(&fakeUsers{registerErr: tc.err}, false)
			w := httptest.NewRecorder()
			h.Register(w, request(http.MethodPost, "/api/register", `{"username":"a","email":"a@x.com","password":"p"}`, ""))

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"msg":%q}`, tc.msg), w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestUserHandler_LoginStoreFailureIsNot401(t *testing.T) {
	h := NewUserHandler(&fakeUsers{loginErr: errors.New("db down")}, false)
	w := httptest.NewRecorder()
	h.Login(w, request(http.MethodPost, "/api/login", `{"email":"a@x.com","password":"p"}`, ""))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUserHandler_LoginSecureCookie(t *testing.T) {
	h := NewUserHandler(&fakeUsers{loginRes: services.LoginResult{Token: "tok", Username: "a", Email: "a@x.com"}}, true)
	w := httptest.NewRecorder()
	h.Login(w, request(http.MethodPost, "/api/login", `{"email":"a@x.com","password":"p"}`, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"access_token":"tok","username":"a","email":"a@x.com","initial_placement":false}`, w.Body.String())
	cookies := w.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, "tok", cookies[0].Value)
		assert.True(t, cookies[0].Secure)
		assert.True(t, cookies[0].HttpOnly)
	}
}

func TestUserHandler_ProfileNotFound(t *testing.T) {
	h := NewUserHandler(&fakeUsers{profileErr: fmt.Errorf("user u1: %w", services.ErrNotFound)}, false)
	w := httptest.NewRecorder()
	h.Profile(w, request(http.MethodGet, "/api/profile", "", "good"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"msg":"User not found"}`, w.Body.String())
}

func TestUserHandler_ProfileRejectsBadToken(t *testing.T) {
	h := NewUserHandler(&fakeUsers{}, false)
	w := httptest.NewRecorder()
	h.Profile(w, request(http.MethodGet, "/api/profile", "", "bad"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"msg":"Invalid auth token"}`, w.Body.String())
}

func TestProgressHandler_UsesResolvedIdentity(t *testing.T) {
	progress := &fakeProgress{progress: &models.Progress{Labels: []string{"Week 1"}, DataPoints: []float64{50}}}
	h := NewProgressHandler(progress, &fakeUsers{})

	w := httptest.NewRecorder()
	h.Get(w, request(http.MethodGet, "/api/progress", "", "good"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", progress.gotUser)
	assert.Contains(t, w.Body.String(), `"labels":["Week 1"]`)

	w = httptest.NewRecorder()
	h.Add(w, request(http.MethodPost, "/api/progress/add", `{"label":"Week 2","value":0}`, "good"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.Add(w, request(http.MethodPost, "/api/progress/add", `{"label":"Week 2"}`, "good"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"msg":"Invalid data"}`, w.Body.String())
}

func TestProgressHandler_StoreFailure(t *testing.T) {
	h := NewProgressHandler(&fakeProgress{getErr: errors.New("db down"), appendErr: errors.New("db down")}, &fakeUsers{})

	w := httptest.NewRecorder()
	h.Get(w, request(http.MethodGet, "/api/progress", "", "good"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	h.Add(w, request(http.MethodPost, "/api/progress/add", `{"label":"Week 1","value":1}`, "good"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestChallengeHandler_SearchParsesQuery(t *testing.T) {
	challenges := &fakeChallenges{}
	h := NewChallengeHandler(challenges)

	w := httptest.NewRecorder()
	h.Search(w, request(http.MethodGet, "/api/challenges?title=Essay&tags=grammar,+essay,,&difficulty=Easy", "", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, models.ChallengeFilter{
		Title:      "Essay",
		Tags:       []string{"grammar", "essay"},
		Difficulty: "Easy",
	}, challenges.gotFilter)
}

func TestChallengeHandler_Failures(t *testing.T) {
	h := NewChallengeHandler(&fakeChallenges{searchErr: errors.New("db down")})

	w := httptest.NewRecorder()
	h.Create(w, request(http.MethodPost, "/api/challenges", `{"title":"t","tags":["a"],"difficulty":"Easy","essay_prompt":"p"}`, ""))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	h.Create(w, request(http.MethodPost, "/api/challenges", `not json`, ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Search(w, request(http.MethodGet, "/api/challenges", "", ""))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
