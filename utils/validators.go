package utils

import (
	"regexp"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func IsValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}

func IsValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

func IsValidZoomLevel(zoom int) bool {
	return zoom >= 1 && zoom <= 23
}
