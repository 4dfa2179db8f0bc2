package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *GeocoderService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewGeocoderService("test-key")
	svc.baseURL = server.URL
	return svc
}

const yandexFixture = `{
	"response": {
		"GeoObjectCollection": {
			"featureMember": [{
				"GeoObject": {
					"Point": {"pos": "37.617635 55.755814"},
					"metaDataProperty": {
						"GeocoderMetaData": {"text": "Russia, Moscow, Red Square"}
					}
				}
			}]
		}
	}
}`

const yandexEmptyFixture = `{
	"response": {"GeoObjectCollection": {"featureMember": []}}
}`

func TestGeocode(t *testing.T) {
	svc := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "Red Square", r.URL.Query().Get("geocode"))
		w.Write([]byte(yandexFixture))
	})

	result, err := svc.Geocode(context.Background(), "Red Square")
	require.NoError(t, err)
	assert.InDelta(t, 37.617635, result.Longitude, 1e-9)
	assert.InDelta(t, 55.755814, result.Latitude, 1e-9)
	assert.Equal(t, "Russia, Moscow, Red Square", result.FormattedAddress)
}

func TestGeocodeAddressNotFound(t *testing.T) {
	svc := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(yandexEmptyFixture))
	})

	_, err := svc.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestGeocodeUpstreamFailure(t *testing.T) {
	svc := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := svc.Geocode(context.Background(), "Red Square")
	assert.ErrorIs(t, err, ErrGeocoderUnavailable)
}

func TestGeocodeWithoutAPIKey(t *testing.T) {
	svc := NewGeocoderService("")

	_, err := svc.Geocode(context.Background(), "Red Square")
	assert.ErrorIs(t, err, ErrGeocoderNotConfigured)
}

func TestReverseGeocode(t *testing.T) {
	svc := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(yandexFixture))
	})

	address, err := svc.ReverseGeocode(context.Background(), 37.617635, 55.755814)
	require.NoError(t, err)
	assert.Equal(t, "Russia, Moscow, Red Square", address)
}

func TestReverseGeocodeFallsBackToCoordinates(t *testing.T) {
	svc := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	address, err := svc.ReverseGeocode(context.Background(), 37.61, 55.75)
	require.NoError(t, err)
	assert.Equal(t, "55.75, 37.61", address)
}
