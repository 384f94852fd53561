package httpserver_test

import (
	"bytes"
	"context"
	"dsmovie/auth"
	"dsmovie/httpserver"
	"dsmovie/pkg/config"
	"dsmovie/user"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testJWTSecret  = "test-jwt-secret"
	adminUsername  = "maria@gmail.com"
	clientUsername = "alex@gmail.com"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	return cfg
}

func signTestToken(username string) (string, error) {
	claims := auth.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(testJWTSecret))
}

func mustSignTestToken(t testing.TB, username string) string {
	t.Helper()
	token, err := signTestToken(username)
	require.NoError(t, err)
	return token
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Authenticated(ctx context.Context) (user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) LoadUserByUsername(ctx context.Context, username string) (user.Details, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(user.Details), args.Error(1)
}

// newUserServiceWithAccounts answers LoadUserByUsername for the admin and
// client test accounts and rejects anyone else.
func newUserServiceWithAccounts() *MockUserService {
	svc := new(MockUserService)
	svc.On("LoadUserByUsername", mock.Anything, adminUsername).
		Return(user.Details{Username: adminUsername, Roles: []string{user.RoleAdmin, user.RoleClient}}, nil).Maybe()
	svc.On("LoadUserByUsername", mock.Anything, clientUsername).
		Return(user.Details{Username: clientUsername, Roles: []string{user.RoleClient}}, nil).Maybe()
	svc.On("LoadUserByUsername", mock.Anything, mock.Anything).
		Return(user.Details{}, user.ErrUserNotFound).Maybe()
	return svc
}

func principalNamed(username string) interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		p, ok := auth.PrincipalFromContext(ctx)
		return ok && p.Username == username
	})
}

func newJSONRequest(t testing.TB, method, path string, body interface{}, token string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func serve(server *httpserver.Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Info    string          `json:"info"`
}

func decodeAPIResponse(t testing.TB, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func decodeResult(t testing.TB, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	resp := decodeAPIResponse(t, rec)
	require.NoError(t, json.Unmarshal(resp.Result, out), string(resp.Result))
}
