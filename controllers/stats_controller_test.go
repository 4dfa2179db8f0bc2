package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	s := setupTestServer(t)
	token := s.registerUser(t, "alice@example.com")
	keyID, _ := s.createApiKey(t, token, nil)
	widgetID := s.createWidget(t, token, keyID)

	s.createEvent(t, token, "Published", []string{widgetID})
	s.createEvent(t, token, "Draft", nil)

	// Another user's data must not bleed into the counters
	bob := s.registerUser(t, "bob@example.com")
	s.createEvent(t, bob, "Other", nil)

	w := s.authed(t, http.MethodGet, "/api/v1/stats", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		TotalEvents     int64 `json:"total_events"`
		PublishedEvents int64 `json:"published_events"`
		TotalWidgets    int64 `json:"total_widgets"`
		TotalApiKeys    int64 `json:"total_api_keys"`
	}
	decodeBody(t, w, &stats)

	assert.EqualValues(t, 2, stats.TotalEvents)
	assert.EqualValues(t, 1, stats.PublishedEvents)
	assert.EqualValues(t, 1, stats.TotalWidgets)
	assert.EqualValues(t, 1, stats.TotalApiKeys)
}

func TestGenerateEmbedCode(t *testing.T) {
	s := setupTestServer(t)
	token := s.registerUser(t, "alice@example.com")
	keyID, key := s.createApiKey(t, token, nil)
	widgetID := s.createWidget(t, token, keyID)

	w := s.authed(t, http.MethodPost, "/api/v1/embed/"+widgetID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ScriptURL  string `json:"script_url"`
		EmbedCode  string `json:"embed_code"`
		PreviewURL string `json:"preview_url"`
	}
	decodeBody(t, w, &resp)

	assert.Equal(t, "http://localhost:8080/api/v1/widget.js", resp.ScriptURL)
	assert.Contains(t, resp.EmbedCode, `data-widget-key="`+key+`"`)
	assert.Contains(t, resp.PreviewURL, "/preview/"+key)

	// Foreign widget IDs are invisible
	bob := s.registerUser(t, "bob@example.com")
	w = s.authed(t, http.MethodPost, "/api/v1/embed/"+widgetID, nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGeocodeWithoutConfiguredKey(t *testing.T) {
	s := setupTestServer(t)
	token := s.registerUser(t, "alice@example.com")

	w := s.authed(t, http.MethodPost, "/api/v1/geocode", map[string]string{
		"address": "Red Square",
	}, token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestYandexMapsKeyEndpoint(t *testing.T) {
	s := setupTestServer(t)

	w := s.request(t, http.MethodGet, "/api/v1/config/yandex-maps-key", nil, requestOptions{})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ApiKey string `json:"api_key"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "", resp.ApiKey)
}

func TestPing(t *testing.T) {
	s := setupTestServer(t)

	w := s.request(t, http.MethodGet, "/ping", nil, requestOptions{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}
