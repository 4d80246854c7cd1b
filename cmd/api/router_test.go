package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	api "vidtube-backend/cmd/api"
	userdomain "vidtube-backend/internal/user/domain"
	userdto "vidtube-backend/internal/user/dto"
	videodomain "vidtube-backend/internal/video/domain"
	videodto "vidtube-backend/internal/video/dto"
	"vidtube-backend/pkg/apierror"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAccessToken = "valid-access-token"

var testUser = &userdomain.User{
	ID:       "user-1",
	Username: "alice",
	Email:    "alice@example.com",
	FullName: "Alice Example",
}

type stubUserUsecase struct {
	refreshCalls int
	lastRefresh  string
	loggedOut    bool
}

func (s *stubUserUsecase) Register(req *userdto.RegisterRequest, avatarPath, coverPath string) (*userdomain.User, error) {
	return testUser, nil
}

func (s *stubUserUsecase) Login(req *userdto.LoginRequest) (*userdto.LoginResponse, error) {
	if req.Username == "" && req.Email == "" {
		return nil, apierror.BadRequest("username or email is required")
	}
	if req.Password != "secret123" {
		return nil, apierror.Unauthorized("invalid user credentials")
	}
	return &userdto.LoginResponse{
		User:         testUser,
		AccessToken:  validAccessToken,
		RefreshToken: "refresh-1",
	}, nil
}

func (s *stubUserUsecase) Refresh(presented string) (*userdto.TokenPairResponse, error) {
	s.refreshCalls++
	s.lastRefresh = presented
	if presented != "refresh-1" {
		return nil, apierror.Unauthorized("refresh token is expired or already used")
	}
	return &userdto.TokenPairResponse{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil
}

func (s *stubUserUsecase) Logout(userID string) error {
	s.loggedOut = true
	return nil
}

func (s *stubUserUsecase) ChangePassword(userID string, req *userdto.ChangePasswordRequest) error {
	return nil
}

func (s *stubUserUsecase) CurrentUser(userID string) (*userdomain.User, error) {
	return testUser, nil
}

func (s *stubUserUsecase) UpdateAccount(userID string, req *userdto.UpdateAccountRequest) (*userdomain.User, error) {
	return testUser, nil
}

func (s *stubUserUsecase) UpdateAvatar(userID, localPath string) (*userdomain.User, error) {
	return testUser, nil
}

func (s *stubUserUsecase) UpdateCoverImage(userID, localPath string) (*userdomain.User, error) {
	return testUser, nil
}

func (s *stubUserUsecase) ChannelProfile(username, viewerID string) (*userdomain.ChannelProfile, error) {
	if username != "alice" {
		return nil, apierror.NotFound("channel does not exist")
	}
	return &userdomain.ChannelProfile{ID: testUser.ID, Username: "alice"}, nil
}

func (s *stubUserUsecase) ToggleSubscription(subscriberID, channelUsername string) (bool, error) {
	return true, nil
}

func (s *stubUserUsecase) ValidateAccessToken(token string) (*userdomain.User, error) {
	if token != validAccessToken {
		return nil, apierror.Unauthorized("invalid or expired access token")
	}
	return testUser, nil
}

type stubVideoUsecase struct{}

func (s *stubVideoUsecase) Publish(ownerID string, req *videodto.PublishRequest, videoPath, thumbnailPath string) (*videodomain.Video, error) {
	return &videodomain.Video{ID: "video-1", Title: req.Title}, nil
}

func (s *stubVideoUsecase) Get(viewerID, videoID string) (*videodomain.Video, error) {
	if videoID != "video-1" {
		return nil, apierror.NotFound("video does not exist")
	}
	return &videodomain.Video{ID: "video-1", Title: "First"}, nil
}

func (s *stubVideoUsecase) ListByChannel(username string) ([]videodomain.Video, error) {
	return []videodomain.Video{}, nil
}

func (s *stubVideoUsecase) WatchHistory(userID string) ([]videodto.WatchHistoryItem, error) {
	return []videodto.WatchHistoryItem{}, nil
}

func newTestRouter() (*gin.Engine, *stubUserUsecase) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	stub := &stubUserUsecase{}
	cfg := &config.Config{AccessExpiry: time.Minute, RefreshExpiry: time.Hour, TempUploadDir: "/tmp"}
	api.SetupRoutes(r, stub, &stubVideoUsecase{}, cfg)
	return r, stub
}

func doJSON(r *gin.Engine, method, path string, body interface{}, header http.Header) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cookieNames(w *httptest.ResponseRecorder) []string {
	var names []string
	for _, c := range w.Result().Cookies() {
		names = append(names, c.Name)
	}
	return names
}

func TestLoginSetsCookiesAndEnvelope(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/users/login",
		userdto.LoginRequest{Username: "alice", Password: "secret123"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, cookieNames(w), "accessToken")
	assert.Contains(t, cookieNames(w), "refreshToken")

	var body struct {
		StatusCode int                    `json:"statusCode"`
		Data       map[string]interface{} `json:"data"`
		Message    string                 `json:"message"`
		Success    bool                   `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, body.StatusCode)
	assert.True(t, body.Success)
	assert.Equal(t, validAccessToken, body.Data["accessToken"])
	assert.Equal(t, "refresh-1", body.Data["refreshToken"])

	user, ok := body.Data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "refreshToken")
}

func TestLoginFailureEnvelope(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/users/login",
		userdto.LoginRequest{Username: "alice", Password: "wrong"}, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body struct {
		StatusCode int      `json:"statusCode"`
		Message    string   `json:"message"`
		Success    bool     `json:"success"`
		Errors     []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
	assert.False(t, body.Success)
	assert.NotNil(t, body.Errors)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodGet, "/api/v1/users/current-user", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerHeaderAccepted(t *testing.T) {
	r, _ := newTestRouter()

	h := http.Header{}
	h.Set("Authorization", "Bearer "+validAccessToken)
	w := doJSON(r, http.MethodGet, "/api/v1/users/current-user", nil, h)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessTokenCookieAccepted(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: validAccessToken})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCurrentUserIsIdempotent(t *testing.T) {
	r, _ := newTestRouter()

	h := http.Header{}
	h.Set("Authorization", "Bearer "+validAccessToken)

	first := doJSON(r, http.MethodGet, "/api/v1/users/current-user", nil, h)
	second := doJSON(r, http.MethodGet, "/api/v1/users/current-user", nil, h)

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestRefreshReadsCookie(t *testing.T) {
	r, stub := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "refresh-1", stub.lastRefresh)
	assert.Contains(t, cookieNames(w), "refreshToken")
}

func TestRefreshReadsBody(t *testing.T) {
	r, stub := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/users/refresh-token",
		userdto.RefreshRequest{RefreshToken: "refresh-1"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "refresh-1", stub.lastRefresh)
}

func TestRefreshRejectedTokenIsUnauthorized(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/users/refresh-token",
		userdto.RefreshRequest{RefreshToken: "stale"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsCookies(t *testing.T) {
	r, stub := newTestRouter()

	h := http.Header{}
	h.Set("Authorization", "Bearer "+validAccessToken)
	w := doJSON(r, http.MethodPost, "/api/v1/users/logout", nil, h)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, stub.loggedOut)
	for _, c := range w.Result().Cookies() {
		assert.Less(t, c.MaxAge, 0, "logout must expire the %s cookie", c.Name)
	}
}

func TestChannelProfileNotFound(t *testing.T) {
	r, _ := newTestRouter()

	h := http.Header{}
	h.Set("Authorization", "Bearer "+validAccessToken)
	w := doJSON(r, http.MethodGet, "/api/v1/users/c/ghost", nil, h)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
