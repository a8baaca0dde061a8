package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmaslov/moneykeeper/pkg/api"
)

// fakeSession is a SessionSource with scripted behaviour
type fakeSession struct {
	token        string
	tokenErr     error
	refreshToken string // токен, который вернет RefreshAccessToken
	refreshErr   error
	refreshCalls atomic.Int32
	failureCalls atomic.Int32
}

func (f *fakeSession) AccessToken(ctx context.Context) (string, error) {
	return f.token, f.tokenErr
}

func (f *fakeSession) RefreshAccessToken(ctx context.Context) (string, error) {
	f.refreshCalls.Add(1)
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	// Пайплайн перечитывает токен через AccessToken при повторе
	f.token = f.refreshToken
	return f.refreshToken, nil
}

func (f *fakeSession) HandleAuthFailure(ctx context.Context) error {
	f.failureCalls.Add(1)
	return nil
}

func writeJSON(t *testing.T, w http.ResponseWriter, code int, data interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	assert.NoError(t, json.NewEncoder(w).Encode(data))
}

func TestClient_BearerInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, api.ProfileResponse{UserID: "u1", Username: "alice"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetSessionSource(&fakeSession{token: "access-token-1"})

	profile, err := client.GetProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer access-token-1", gotAuth)
	assert.Equal(t, "alice", profile.Username)
}

func TestClient_NoSessionSource(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, api.ProfileResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	_, err := client.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_RefreshAndRetryOn401(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		if n == 1 {
			// Первый запрос со старым токеном отклоняется
			assert.Equal(t, "Bearer stale-token", r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized", Message: "token expired"})
			return
		}
		// Повтор приходит уже с новым токеном
		assert.Equal(t, "Bearer fresh-token", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, api.ProfileResponse{UserID: "u1", Username: "alice"})
	}))
	defer srv.Close()

	session := &fakeSession{token: "stale-token", refreshToken: "fresh-token"}
	client := NewClient(srv.URL)
	client.SetSessionSource(session)

	// Вызывающий код не видит промежуточный 401
	profile, err := client.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)

	assert.Equal(t, int32(2), requests.Load())
	assert.Equal(t, int32(1), session.refreshCalls.Load())
	assert.Equal(t, int32(0), session.failureCalls.Load())
}

func TestClient_TerminalAuthAfterRetry(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		// Сервер отклоняет и исходный запрос, и повтор
		writeJSON(t, w, http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized", Message: "invalid token"})
	}))
	defer srv.Close()

	session := &fakeSession{token: "stale-token", refreshToken: "fresh-token"}
	client := NewClient(srv.URL)
	client.SetSessionSource(session)

	_, err := client.GetProfile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTerminalAuth)

	// Ровно один повтор: исходный запрос + retry, не больше
	assert.Equal(t, int32(2), requests.Load())
	assert.Equal(t, int32(1), session.refreshCalls.Load())
	assert.Equal(t, int32(1), session.failureCalls.Load())
}

func TestClient_RefreshFailureTearsDownSession(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeJSON(t, w, http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized", Message: "token expired"})
	}))
	defer srv.Close()

	session := &fakeSession{token: "stale-token", refreshErr: assert.AnError}
	client := NewClient(srv.URL)
	client.SetSessionSource(session)

	_, err := client.GetProfile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTerminalAuth)

	// Повтор не выполнялся: refresh не удался
	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, int32(1), session.failureCalls.Load())
}

func TestClient_PublicRequestSkipsAuthPipeline(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, api.TokenResponse{AccessToken: "a1", RefreshToken: "r1"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetSessionSource(&fakeSession{token: "should-not-be-sent"})

	resp, err := client.Login(context.Background(), api.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "a1", resp.AccessToken)

	// login идет без bearer-заголовка
	assert.Empty(t, gotAuth)
}

func TestClient_LoginRejectedNoRetry(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeJSON(t, w, http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized", Message: "invalid credentials"})
	}))
	defer srv.Close()

	session := &fakeSession{token: "access1"}
	client := NewClient(srv.URL)
	client.SetSessionSource(session)

	_, err := client.Login(context.Background(), api.LoginRequest{Username: "alice", Password: "wrongpassword"})
	require.Error(t, err)

	// 401 от login — неверные credentials, refresh-путь не запускается
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, int32(0), session.refreshCalls.Load())
	assert.Equal(t, int32(0), session.failureCalls.Load())
}

func TestClient_ServerErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, api.ErrorResponse{Error: "Internal Server Error", Message: "boom"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetSessionSource(&fakeSession{token: "access1"})

	_, err := client.GetProfile(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "boom", statusErr.Message)
}
