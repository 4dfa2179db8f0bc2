package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eventmap-api/config"
	"eventmap-api/models"
	"eventmap-api/routes"
	"eventmap-api/services"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	redis  *miniredis.Miniredis
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.ApiKey{},
		&models.Event{},
		&models.WidgetConfig{},
		&models.EventWidget{},
	)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := &config.Config{
		JWTSecret:            "test-secret",
		ServerURL:            "http://localhost:8080",
		WidgetCacheTTL:       300,
		WidgetConfigCacheTTL: 600,
	}

	cache := services.NewWidgetCacheService(client, cfg.WidgetCacheTTL, cfg.WidgetConfigCacheTTL)

	router := gin.New()
	routes.SetupRoutes(router, db, cfg, cache)

	return &testServer{router: router, db: db, redis: mr}
}

type requestOptions struct {
	token   string
	headers map[string]string
}

func (s *testServer) request(t *testing.T, method, path string, body interface{}, opts requestOptions) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	for k, v := range opts.headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) authed(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	return s.request(t, method, path, body, requestOptions{token: token})
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// registerUser registers a fresh account and returns its access token.
func (s *testServer) registerUser(t *testing.T, email string) string {
	t.Helper()

	w := s.request(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":    email,
		"password": "password123",
	}, requestOptions{})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// createApiKey creates a key for the token's account and returns (id, key).
func (s *testServer) createApiKey(t *testing.T, token string, allowedDomains []string) (string, string) {
	t.Helper()

	w := s.authed(t, http.MethodPost, "/api/v1/api-keys", gin.H{
		"allowed_domains": allowedDomains,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	decodeBody(t, w, &resp)
	return resp.ID, resp.Key
}

// createWidget creates a widget config bound to apiKeyID and returns its ID.
func (s *testServer) createWidget(t *testing.T, token, apiKeyID string) string {
	t.Helper()

	w := s.authed(t, http.MethodPost, "/api/v1/widgets", gin.H{
		"api_key_id": apiKeyID,
		"title":      "Test Widget",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &resp)
	return resp.ID
}

// createEvent creates an event, optionally linked to widgets, and returns its ID.
func (s *testServer) createEvent(t *testing.T, token, title string, widgetIDs []string) string {
	t.Helper()

	body := gin.H{
		"title":          title,
		"event_datetime": "2026-09-15T19:00:00Z",
		"longitude":      37.6173,
		"latitude":       55.7558,
	}
	if widgetIDs != nil {
		body["widget_ids"] = widgetIDs
	}

	w := s.authed(t, http.MethodPost, "/api/v1/events", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &resp)
	return resp.ID
}
