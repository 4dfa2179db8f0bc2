package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidHexColor(t *testing.T) {
	assert.True(t, IsValidHexColor("#007bff"))
	assert.True(t, IsValidHexColor("#FF0000"))
	assert.False(t, IsValidHexColor("007bff"))
	assert.False(t, IsValidHexColor("#007bf"))
	assert.False(t, IsValidHexColor("#007bfg"))
	assert.False(t, IsValidHexColor("#007bff00"))
}

func TestCoordinateValidators(t *testing.T) {
	assert.True(t, IsValidLatitude(55.75))
	assert.True(t, IsValidLatitude(-90))
	assert.False(t, IsValidLatitude(90.1))
	assert.True(t, IsValidLongitude(180))
	assert.False(t, IsValidLongitude(-180.5))
}

func TestIsValidZoomLevel(t *testing.T) {
	assert.True(t, IsValidZoomLevel(1))
	assert.True(t, IsValidZoomLevel(23))
	assert.False(t, IsValidZoomLevel(0))
	assert.False(t, IsValidZoomLevel(24))
}
