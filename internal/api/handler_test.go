package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heavyrent-backend/internal/auth"
	"heavyrent-backend/internal/model"
	"heavyrent-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockUsers struct {
	FindByIDFunc func(ctx context.Context, id uint) (*model.User, error)
	FindAllFunc  func(ctx context.Context) ([]model.User, error)
}

func (m *mockUsers) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUsers) FindAll(ctx context.Context) ([]model.User, error) {
	return m.FindAllFunc(ctx)
}

type mockAuth struct {
	ValidateOAuthLoginFunc func(ctx context.Context, email, name string) (service.TokenResponse, error)
}

func (m *mockAuth) ValidateOAuthLogin(ctx context.Context, email, name string) (service.TokenResponse, error) {
	return m.ValidateOAuthLoginFunc(ctx, email, name)
}

type mockMachines struct {
	CreateFunc  func(ctx context.Context, in service.CreateMachineInput, caller auth.Identity) (*model.Machine, error)
	FindAllFunc func(ctx context.Context) ([]model.Machine, error)
}

func (m *mockMachines) Create(ctx context.Context, in service.CreateMachineInput, caller auth.Identity) (*model.Machine, error) {
	return m.CreateFunc(ctx, in, caller)
}

func (m *mockMachines) FindAll(ctx context.Context) ([]model.Machine, error) {
	return m.FindAllFunc(ctx)
}

type mockRentals struct {
	CreateFunc     func(ctx context.Context, in service.CreateRentalInput, caller auth.Identity) (*model.RentalRequest, error)
	FindByUserFunc func(ctx context.Context, userID uint) ([]model.RentalRequest, error)
}

func (m *mockRentals) Create(ctx context.Context, in service.CreateRentalInput, caller auth.Identity) (*model.RentalRequest, error) {
	return m.CreateFunc(ctx, in, caller)
}

func (m *mockRentals) FindByUser(ctx context.Context, userID uint) ([]model.RentalRequest, error) {
	return m.FindByUserFunc(ctx, userID)
}

type mockSubs struct {
	upserted []model.PushSubscription
	deleted  []string
	err      error
}

func (m *mockSubs) UpsertSubscription(_ context.Context, sub *model.PushSubscription) error {
	m.upserted = append(m.upserted, *sub)
	return m.err
}

func (m *mockSubs) DeleteSubscription(_ context.Context, endpoint string, _ uint) error {
	m.deleted = append(m.deleted, endpoint)
	return m.err
}

func (m *mockSubs) ListSubscriptionsByUser(context.Context, uint) ([]model.PushSubscription, error) {
	return nil, m.err
}

type mockProvider struct {
	ProfileFunc func(ctx context.Context, code string) (auth.Profile, error)
}

func (m *mockProvider) AuthCodeURL(state string) string {
	return "https://accounts.example/auth?state=" + state
}

func (m *mockProvider) Profile(ctx context.Context, code string) (auth.Profile, error) {
	return m.ProfileFunc(ctx, code)
}

type staticStates struct {
	valid map[string]bool
}

func (s *staticStates) Issue() string { return "state-1" }

func (s *staticStates) Consume(state string) bool {
	ok := s.valid[state]
	delete(s.valid, state)
	return ok
}

// fakeTokens accepts only "token-42", which maps to user 42.
type fakeTokens struct{}

func (fakeTokens) Verify(token string) (auth.Identity, error) {
	if token == "token-42" {
		return auth.Identity{UserID: 42, Email: "renter@test.com"}, nil
	}
	return auth.Identity{}, auth.ErrInvalidToken
}

func newTestRouter(d Deps) *gin.Engine {
	return NewRouter(NewHandler(d), fakeTokens{}, RouterOptions{RateLimitPerSec: 1000, RateLimitBurst: 1000})
}

func doRequest(r http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer token-42")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGoogleAuth_Redirects(t *testing.T) {
	r := newTestRouter(Deps{Provider: &mockProvider{}, States: &staticStates{}})

	w := doRequest(r, http.MethodGet, "/auth/google", "", false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://accounts.example/auth?state=state-1", w.Header().Get("Location"))
}

func TestGoogleAuth_NotConfigured(t *testing.T) {
	r := newTestRouter(Deps{})
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(r, http.MethodGet, "/auth/google", "", false).Code)
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(r, http.MethodGet, "/auth/google/redirect?code=c&state=s", "", false).Code)
}

func TestGoogleAuthRedirect(t *testing.T) {
	okProvider := &mockProvider{ProfileFunc: func(_ context.Context, code string) (auth.Profile, error) {
		if code != "good" {
			return auth.Profile{}, errors.New("invalid_grant")
		}
		return auth.Profile{Email: "test@example.com", Name: "Test User"}, nil
	}}

	testCases := []struct {
		name       string
		query      string
		authSvc    *mockAuth
		wantStatus int
		wantBody   string
	}{
		{
			name:  "returns access token",
			query: "?code=good&state=s1",
			authSvc: &mockAuth{ValidateOAuthLoginFunc: func(_ context.Context, email, name string) (service.TokenResponse, error) {
				assert.Equal(t, "test@example.com", email)
				assert.Equal(t, "Test User", name)
				return service.TokenResponse{AccessToken: "token123"}, nil
			}},
			wantStatus: http.StatusOK,
			wantBody:   `{"acces_token":"token123"}`,
		},
		{
			name:       "provider error param",
			query:      "?error=access_denied",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"access_denied"}`,
		},
		{
			name:       "missing code",
			query:      "?state=s1",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"missing code or state"}`,
		},
		{
			name:       "unknown state",
			query:      "?code=good&state=forged",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid state"}`,
		},
		{
			name:       "exchange fails",
			query:      "?code=bad&state=s1",
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"failed to fetch provider profile"}`,
		},
		{
			name:  "login fails",
			query: "?code=good&state=s1",
			authSvc: &mockAuth{ValidateOAuthLoginFunc: func(context.Context, string, string) (service.TokenResponse, error) {
				return service.TokenResponse{}, errors.New("OAuth error")
			}},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"OAuth error"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(Deps{
				Auth:     tc.authSvc,
				Provider: okProvider,
				States:   &staticStates{valid: map[string]bool{"s1": true}},
			})
			w := doRequest(r, http.MethodGet, "/auth/google/redirect"+tc.query, "", false)
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

func TestGetUser(t *testing.T) {
	var gotID uint
	r := newTestRouter(Deps{Users: &mockUsers{FindByIDFunc: func(_ context.Context, id uint) (*model.User, error) {
		gotID = id
		switch id {
		case 1, 123:
			return &model.User{ID: id, Email: "test@example.com", Name: "Test User"}, nil
		case 500:
			return nil, errors.New("DB error")
		}
		return nil, service.ErrUserNotFound
	}}})

	w := doRequest(r, http.MethodGet, "/users/123", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(123), gotID)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "test@example.com", body["email"])
	assert.Equal(t, "Test User", body["name"])

	w = doRequest(r, http.MethodGet, "/users/999", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"user not found"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/users/0", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, uint(0), gotID)

	w = doRequest(r, http.MethodGet, "/users/abc", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid user ID"}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/users/500", "", false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"DB error"}`, w.Body.String())
}

func TestListUsers(t *testing.T) {
	r := newTestRouter(Deps{Users: &mockUsers{FindAllFunc: func(context.Context) ([]model.User, error) {
		return []model.User{}, nil
	}}})

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/users", "", false).Code)

	w := doRequest(r, http.MethodGet, "/users", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateMachine(t *testing.T) {
	var gotInput service.CreateMachineInput
	var gotCaller auth.Identity
	machines := &mockMachines{CreateFunc: func(_ context.Context, in service.CreateMachineInput, c auth.Identity) (*model.Machine, error) {
		gotInput, gotCaller = in, c
		if in.Name == "Ghost" {
			return nil, service.ErrUserNotFound
		}
		return &model.Machine{ID: 5, Name: in.Name, Description: in.Description, PricePerDay: in.PricePerDay, Available: true,
			CreatedBy: &model.User{ID: c.UserID, Email: c.Email}}, nil
	}}
	r := newTestRouter(Deps{Machines: machines})

	body := `{"name":"Excavadora","description":"Máquina para excavar","pricePerDay":150}`

	w := doRequest(r, http.MethodPost, "/machines", body, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodPost, "/machines", body, true)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, service.CreateMachineInput{Name: "Excavadora", Description: "Máquina para excavar", PricePerDay: 150}, gotInput)
	assert.Equal(t, uint(42), gotCaller.UserID)

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, true, created["available"])
	assert.Equal(t, float64(150), created["pricePerDay"])
	assert.Contains(t, created, "createdBy")

	w = doRequest(r, http.MethodPost, "/machines", `{"name":"Ghost","description":"a long enough text","pricePerDay":0}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"user not found"}`, w.Body.String())
}

func TestCreateMachine_Validation(t *testing.T) {
	r := newTestRouter(Deps{Machines: &mockMachines{CreateFunc: func(context.Context, service.CreateMachineInput, auth.Identity) (*model.Machine, error) {
		t.Fatal("invalid input must not reach the service")
		return nil, nil
	}}})

	for name, body := range map[string]string{
		"empty body":        ``,
		"missing name":      `{"description":"long enough text","pricePerDay":1}`,
		"short description": `{"name":"M","description":"short","pricePerDay":1}`,
		"missing price":     `{"name":"M","description":"long enough text"}`,
		"negative price":    `{"name":"M","description":"long enough text","pricePerDay":-1}`,
		"price not number":  `{"name":"M","description":"long enough text","pricePerDay":"cheap"}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/machines", body, true)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestListMachines(t *testing.T) {
	r := newTestRouter(Deps{Machines: &mockMachines{FindAllFunc: func(context.Context) ([]model.Machine, error) {
		return []model.Machine{}, nil
	}}})
	w := doRequest(r, http.MethodGet, "/machines", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	r = newTestRouter(Deps{Machines: &mockMachines{FindAllFunc: func(context.Context) ([]model.Machine, error) {
		return nil, errors.New("Error al listar")
	}}})
	w = doRequest(r, http.MethodGet, "/machines", "", false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error al listar"}`, w.Body.String())
}

func TestCreateRental(t *testing.T) {
	var gotInput service.CreateRentalInput
	rentals := &mockRentals{CreateFunc: func(_ context.Context, in service.CreateRentalInput, c auth.Identity) (*model.RentalRequest, error) {
		gotInput = in
		if in.MachineID == 2 {
			return nil, service.ErrMachineNotFound
		}
		return &model.RentalRequest{ID: 1, MachineID: in.MachineID, UserID: c.UserID, StartDate: in.StartDate, EndDate: in.EndDate,
			Status: model.RentalStatusPending}, nil
	}}
	r := newTestRouter(Deps{Rentals: rentals})

	body := `{"machineId":1,"startDate":"2026-03-01T09:00:00.000Z","endDate":"2026-03-03T09:00:00.000Z"}`
	w := doRequest(r, http.MethodPost, "/rentals", body, true)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(1), gotInput.MachineID)
	assert.True(t, gotInput.StartDate.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "pending", created["status"])

	w = doRequest(r, http.MethodPost, "/rentals", `{"machineId":2,"startDate":"2026-03-01T09:00:00Z","endDate":"2026-03-03T09:00:00Z"}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"machine not found"}`, w.Body.String())

	w = doRequest(r, http.MethodPost, "/rentals", `{"machineId":1,"startDate":"2026-03-05T09:00:00Z","endDate":"2026-03-03T09:00:00Z"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/rentals", `{"startDate":"2026-03-01T09:00:00Z","endDate":"2026-03-03T09:00:00Z"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/rentals", body, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMyRentals(t *testing.T) {
	var gotUser uint
	r := newTestRouter(Deps{Rentals: &mockRentals{FindByUserFunc: func(_ context.Context, userID uint) ([]model.RentalRequest, error) {
		gotUser = userID
		return []model.RentalRequest{{ID: 1, UserID: userID}, {ID: 2, UserID: userID}}, nil
	}}})

	w := doRequest(r, http.MethodGet, "/rentals/mine", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), gotUser)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	w = doRequest(r, http.MethodGet, "/rentals/mine", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubscriptions(t *testing.T) {
	subs := &mockSubs{}
	r := newTestRouter(Deps{Subscriptions: subs})

	w := doRequest(r, http.MethodPut, "/subscriptions", `{"endpoint":"not a url","p256dh":"k","auth":"a"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, subs.upserted)

	w = doRequest(r, http.MethodPut, "/subscriptions", `{"endpoint":"https://push.example/abc","p256dh":"k","auth":"a"}`, true)
	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, subs.upserted, 1)
	assert.Equal(t, uint(42), subs.upserted[0].UserID)

	w = doRequest(r, http.MethodDelete, "/subscriptions", `{"endpoint":"https://push.example/abc"}`, true)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"https://push.example/abc"}, subs.deleted)

	w = doRequest(r, http.MethodPut, "/subscriptions", `{"endpoint":"https://push.example/abc","p256dh":"k","auth":"a"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetVAPIDPublicKey(t *testing.T) {
	r := newTestRouter(Deps{})
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(r, http.MethodGet, "/vapid_public_key", "", false).Code)

	r = newTestRouter(Deps{WebPush: &webpush.Options{VAPIDPublicKey: "pub"}})
	w := doRequest(r, http.MethodGet, "/vapid_public_key", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"public_key":"pub"}`, w.Body.String())
}
