package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dating-app-backend/internal/config"
	"dating-app-backend/internal/dto"
	"dating-app-backend/internal/models"
	"dating-app-backend/internal/pagination"
	"dating-app-backend/internal/services"
	"dating-app-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type nopStorage struct{}

func (nopStorage) PresignUpload(_ context.Context, key, _ string) (string, time.Duration, error) {
	return "https://upload.example.com/" + key, 5 * time.Minute, nil
}

func (nopStorage) URL(key string) string { return "https://photos.example.com/" + key }

func (nopStorage) Remove(context.Context, string) error { return nil }

type testServer struct {
	handler http.Handler
	auth    *services.AuthService
	db      *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store, db := testutil.NewTestStore(t)
	hub := services.NewWSHub()
	notifier, err := services.NewNotifier(hub, store, config.APNsConfig{})
	require.NoError(t, err)

	auth := services.NewAuthService(store, "test-secret", time.Hour)
	return &testServer{
		handler: NewRouter(Services{
			Auth:     auth,
			Users:    services.NewUserService(store),
			Likes:    services.NewLikeService(store, notifier),
			Photos:   services.NewPhotoService(store, nopStorage{}),
			Messages: services.NewMessageService(store, notifier),
			Hub:      hub,
		}),
		auth: auth,
		db:   db,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(t *testing.T, userID int) string {
	t.Helper()
	token, err := s.auth.GenerateJWT(userID)
	require.NoError(t, err)
	return token
}

func TestAuthRoutes(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/auth/register", "", dto.UserForRegister{
		Username: "alice", Password: "secret", Gender: "female", KnownAs: "Alice",
		DateOfBirth: time.Date(1995, time.March, 3, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered dto.UserForDetailed
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.Equal(t, fmt.Sprintf("/api/users/%d", registered.ID), w.Header().Get("Location"))

	w = srv.do(t, http.MethodPost, "/api/auth/register", "", dto.UserForRegister{Username: "alice", Password: "secret"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = srv.do(t, http.MethodPost, "/api/auth/login", "", dto.UserForLogin{Username: "alice", Password: "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login services.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.NotEmpty(t, login.Token)

	w = srv.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", registered.ID), login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodPost, "/api/auth/login", "", dto.UserForLogin{Username: "alice", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		srv.handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "BAD_REQUEST", body["code"])
		assert.Equal(t, "Invalid request body", body["error"])
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(t, http.MethodGet, "/api/users", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUsersRoute(t *testing.T) {
	srv := newTestServer(t)

	me := testutil.CreateUser(t, srv.db, "me", testutil.WithGender("male"))
	for i := 0; i < 7; i++ {
		testutil.CreateUser(t, srv.db, fmt.Sprintf("woman%d", i))
	}
	token := srv.token(t, me.ID)

	w := srv.do(t, http.MethodGet, "/api/users?pageNumber=2&pageSize=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var users []dto.UserForList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)

	var header pagination.Header
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get(pagination.HeaderName)), &header))
	assert.Equal(t, pagination.Header{CurrentPage: 2, ItemsPerPage: 5, TotalItems: 7, TotalPages: 2}, header)

	w = srv.do(t, http.MethodGet, "/api/users?minAge=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	t.Run("activity recorded", func(t *testing.T) {
		var user models.User
		require.NoError(t, srv.db.First(&user, me.ID).Error)
		assert.True(t, testutil.Now.Equal(user.LastActive))
	})
}

func TestOwnRoutesRejectOtherUsers(t *testing.T) {
	srv := newTestServer(t)

	alice := testutil.CreateUser(t, srv.db, "alice")
	bob := testutil.CreateUser(t, srv.db, "bob")
	token := srv.token(t, alice.ID)

	tests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPut, fmt.Sprintf("/api/users/%d", bob.ID), dto.UserForUpdate{}},
		{http.MethodPost, fmt.Sprintf("/api/users/%d/like/%d", bob.ID, alice.ID), nil},
		{http.MethodPost, fmt.Sprintf("/api/users/%d/photos", bob.ID), dto.PhotoForCreation{Filename: "a.jpg"}},
		{http.MethodGet, fmt.Sprintf("/api/users/%d/messages", bob.ID), nil},
		{http.MethodPost, fmt.Sprintf("/api/users/%d/messages", bob.ID), dto.MessageForCreation{RecipientID: alice.ID, Content: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := srv.do(t, tt.method, tt.path, token, tt.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestLikeRoute(t *testing.T) {
	srv := newTestServer(t)

	alice := testutil.CreateUser(t, srv.db, "alice")
	bob := testutil.CreateUser(t, srv.db, "bob")
	token := srv.token(t, alice.ID)
	path := fmt.Sprintf("/api/users/%d/like/%d", alice.ID, bob.ID)

	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodPost, path, token, nil).Code)
	assert.Equal(t, http.StatusConflict, srv.do(t, http.MethodPost, path, token, nil).Code)

	w := srv.do(t, http.MethodPost, fmt.Sprintf("/api/users/%d/like/9999", alice.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessageRoutes(t *testing.T) {
	srv := newTestServer(t)

	alice := testutil.CreateUser(t, srv.db, "alice")
	bob := testutil.CreateUser(t, srv.db, "bob")
	aliceToken := srv.token(t, alice.ID)
	bobToken := srv.token(t, bob.ID)

	w := srv.do(t, http.MethodPost, fmt.Sprintf("/api/users/%d/messages", alice.ID), aliceToken,
		dto.MessageForCreation{RecipientID: bob.ID, Content: "hello bob"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sent dto.MessageToReturn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))

	w = srv.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d/messages?messageContainer=Unread", bob.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var unread []dto.MessageToReturn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unread))
	require.Len(t, unread, 1)
	assert.Equal(t, sent.ID, unread[0].ID)
	assert.NotEmpty(t, w.Header().Get(pagination.HeaderName))

	w = srv.do(t, http.MethodPost, fmt.Sprintf("/api/users/%d/messages/%d/read", bob.ID, sent.ID), bobToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = srv.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d/messages/thread/%d", bob.ID, alice.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var thread []dto.MessageToReturn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &thread))
	require.Len(t, thread, 1)
	assert.True(t, thread[0].IsRead)

	w = srv.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d/messages/%d", alice.ID, sent.ID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodPost, fmt.Sprintf("/api/users/%d/messages/%d", alice.ID, sent.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPhotoRoutes(t *testing.T) {
	srv := newTestServer(t)

	alice := testutil.CreateUser(t, srv.db, "alice")
	token := srv.token(t, alice.ID)
	base := fmt.Sprintf("/api/users/%d/photos", alice.ID)

	w := srv.do(t, http.MethodPost, base, token, dto.PhotoForCreation{Filename: "me.jpg"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first dto.PhotoUpload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.True(t, first.Photo.IsMain)
	assert.NotEmpty(t, first.UploadURL)

	w = srv.do(t, http.MethodPost, base, token, dto.PhotoForCreation{Filename: "two.jpg"})
	require.Equal(t, http.StatusCreated, w.Code)
	var second dto.PhotoUpload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	w = srv.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", base, first.Photo.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, fmt.Sprintf("%s/%d/setMain", base, second.Photo.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = srv.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", base, first.Photo.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, fmt.Sprintf("%s/%d", base, second.Photo.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var photo dto.PhotoForReturn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &photo))
	assert.True(t, photo.IsMain)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodOptions, "/api/users", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, pagination.HeaderName, w.Header().Get("Access-Control-Expose-Headers"))
}
