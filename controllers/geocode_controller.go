package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eventmap-api/services"
)

type GeocodeController struct {
	geocoder *services.GeocoderService
}

func NewGeocodeController(geocoder *services.GeocoderService) *GeocodeController {
	return &GeocodeController{geocoder: geocoder}
}

type GeocodeRequest struct {
	Address string `json:"address" binding:"required"`
}

// Geocode resolves an address to coordinates via the external geocoder.
func (gc *GeocodeController) Geocode(c *gin.Context) {
	var req GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := gc.geocoder.Geocode(c.Request.Context(), req.Address)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGeocoderNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Geocoding service is not configured"})
		case errors.Is(err, services.ErrAddressNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Geocoding service is unavailable"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// ReverseGeocode resolves coordinates to a human-readable address.
func (gc *GeocodeController) ReverseGeocode(c *gin.Context) {
	longitude, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid longitude"})
		return
	}
	latitude, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude"})
		return
	}

	address, err := gc.geocoder.ReverseGeocode(c.Request.Context(), longitude, latitude)
	if err != nil {
		if errors.Is(err, services.ErrGeocoderNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Geocoding service is not configured"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Geocoding service is unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}
