package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const geocoderURL = "https://geocode-maps.yandex.ru/1.x/"

var (
	ErrGeocoderNotConfigured = errors.New("geocoder API key is not configured")
	ErrGeocoderUnavailable   = errors.New("geocoding service unavailable")
	ErrAddressNotFound       = errors.New("address not found")
)

// GeocodeResult holds forward-geocoding output.
type GeocodeResult struct {
	Longitude        float64 `json:"longitude"`
	Latitude         float64 `json:"latitude"`
	FormattedAddress string  `json:"formatted_address"`
}

// GeocoderService proxies the Yandex geocoder HTTP API. Calls are bounded by
// a 10 second timeout; expiry surfaces as ErrGeocoderUnavailable.
type GeocoderService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGeocoderService(apiKey string) *GeocoderService {
	return &GeocoderService{
		apiKey:  apiKey,
		baseURL: geocoderURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type yandexResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
					MetaDataProperty struct {
						GeocoderMetaData struct {
							Text string `json:"text"`
						} `json:"GeocoderMetaData"`
					} `json:"metaDataProperty"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

func (s *GeocoderService) query(ctx context.Context, geocode string) (*yandexResponse, error) {
	if s.apiKey == "" {
		return nil, ErrGeocoderNotConfigured
	}

	params := url.Values{}
	params.Set("apikey", s.apiKey)
	params.Set("geocode", geocode)
	params.Set("format", "json")
	params.Set("results", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, ErrGeocoderUnavailable
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, ErrGeocoderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrGeocoderUnavailable
	}

	var parsed yandexResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, ErrGeocoderUnavailable
	}
	return &parsed, nil
}

// Geocode resolves an address into coordinates.
func (s *GeocoderService) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	parsed, err := s.query(ctx, address)
	if err != nil {
		return nil, err
	}

	members := parsed.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return nil, ErrAddressNotFound
	}

	geoObject := members[0].GeoObject
	// Yandex returns coordinates as "longitude latitude"
	parts := strings.Fields(geoObject.Point.Pos)
	if len(parts) != 2 {
		return nil, ErrAddressNotFound
	}

	longitude, err1 := strconv.ParseFloat(parts[0], 64)
	latitude, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return nil, ErrAddressNotFound
	}

	formatted := geoObject.MetaDataProperty.GeocoderMetaData.Text
	if formatted == "" {
		formatted = address
	}

	return &GeocodeResult{
		Longitude:        longitude,
		Latitude:         latitude,
		FormattedAddress: formatted,
	}, nil
}

// ReverseGeocode resolves coordinates into a formatted address. Failures fall
// back to a plain "lat, lon" string instead of erroring.
func (s *GeocoderService) ReverseGeocode(ctx context.Context, longitude, latitude float64) (string, error) {
	fallback := fmt.Sprintf("%v, %v", latitude, longitude)

	parsed, err := s.query(ctx, fmt.Sprintf("%v,%v", longitude, latitude))
	if err != nil {
		if errors.Is(err, ErrGeocoderNotConfigured) {
			return "", err
		}
		return fallback, nil
	}

	members := parsed.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return fallback, nil
	}

	formatted := members[0].GeoObject.MetaDataProperty.GeocoderMetaData.Text
	if formatted == "" {
		return fallback, nil
	}
	return formatted, nil
}
