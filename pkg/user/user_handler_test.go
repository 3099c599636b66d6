package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/pennywise/pkg/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	user    User
	updates int
}

func (s *stubUserService) User() User { return s.user }

func (s *stubUserService) UpdateUser(_ context.Context, u User) {
	s.user = u
	s.updates++
}

func setup(t *testing.T) (*mux.Router, *stubUserService, *notification.Recorder) {
	t.Helper()
	service := &stubUserService{user: User{Name: "Alex Doe", Email: "alex.doe@example.com"}}
	recorder := &notification.Recorder{}
	handler := NewHandler(service, recorder)
	router := mux.NewRouter()
	router.HandleFunc("/api/user", handler.GetCurrentUser).Methods("GET")
	router.HandleFunc("/api/user", handler.UpdateUser).Methods("PUT")
	return router, service, recorder
}

func TestHandler_GetCurrentUser(t *testing.T) {
	router, _, _ := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var dto UserDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
	assert.Equal(t, UserDTO{Name: "Alex Doe", Email: "alex.doe@example.com"}, dto)
}

func TestHandler_UpdateUser(t *testing.T) {
	t.Run("should save valid profile without warnings", func(t *testing.T) {
		router, service, recorder := setup(t)
		body := `{"name":"Sam Roe","email":"sam@example.org"}`
		req := httptest.NewRequest(http.MethodPut, "/api/user", strings.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, User{Name: "Sam Roe", Email: "sam@example.org"}, service.user)
		assert.Equal(t, 0, recorder.Count(notification.Warning))
	})

	t.Run("should save unusual email but warn", func(t *testing.T) {
		router, service, recorder := setup(t)
		body := `{"name":"Sam","email":"not-an-email"}`
		req := httptest.NewRequest(http.MethodPut, "/api/user", strings.NewReader(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "not-an-email", service.user.Email)
		assert.Equal(t, 1, recorder.Count(notification.Warning))
	})

	t.Run("should accept empty fields", func(t *testing.T) {
		router, service, recorder := setup(t)
		req := httptest.NewRequest(http.MethodPut, "/api/user", strings.NewReader(`{"name":"","email":""}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, User{}, service.user)
		assert.Equal(t, 0, recorder.Count(notification.Warning))
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		router, service, _ := setup(t)
		req := httptest.NewRequest(http.MethodPut, "/api/user", strings.NewReader(`{`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, 0, service.updates)
	})
}
