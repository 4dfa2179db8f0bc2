package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventmap-api/models"
	"eventmap-api/services"
	"eventmap-api/utils"
)

type EventController struct {
	db          *gorm.DB
	cache       *services.WidgetCacheService
	publication *services.PublicationService
}

func NewEventController(db *gorm.DB, cache *services.WidgetCacheService) *EventController {
	return &EventController{
		db:          db,
		cache:       cache,
		publication: services.NewPublicationService(db),
	}
}

type CreateEventRequest struct {
	Title         string    `json:"title" binding:"required,max=500"`
	Description   *string   `json:"description"`
	EventDatetime time.Time `json:"event_datetime" binding:"required"`
	Longitude     float64   `json:"longitude" binding:"min=-180,max=180"`
	Latitude      float64   `json:"latitude" binding:"min=-90,max=90"`
	Category      *string   `json:"category"`
	VenueName     *string   `json:"venue_name"`
	VenueAddress  *string   `json:"venue_address"`
	ImageURL      *string   `json:"image_url"`
	TicketURL     *string   `json:"ticket_url"`
	IsPublished   bool      `json:"is_published"`
	WidgetIDs     []string  `json:"widget_ids"`
}

type UpdateEventRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	EventDatetime *time.Time `json:"event_datetime"`
	Longitude     *float64   `json:"longitude"`
	Latitude      *float64   `json:"latitude"`
	Category      *string    `json:"category"`
	VenueName     *string    `json:"venue_name"`
	VenueAddress  *string    `json:"venue_address"`
	ImageURL      *string    `json:"image_url"`
	TicketURL     *string    `json:"ticket_url"`
	IsPublished   *bool      `json:"is_published"`
	WidgetIDs     *[]string  `json:"widget_ids"`
}

type EventResponse struct {
	models.Event
	WidgetIDs []string `json:"widget_ids"`
}

func (ec *EventController) eventResponse(event *models.Event) (EventResponse, error) {
	widgetIDs, err := ec.publication.WidgetIDsForEvent(event.ID)
	if err != nil {
		return EventResponse{}, err
	}
	if widgetIDs == nil {
		widgetIDs = []string{}
	}
	// Naive local time: strip any timezone the binding attached.
	event.EventDatetime = stripTimezone(event.EventDatetime)
	return EventResponse{Event: *event, WidgetIDs: widgetIDs}, nil
}

// invalidateEventCaches drops every cached payload that includes the event.
func (ec *EventController) invalidateEventCaches(c *gin.Context, eventID string) {
	keys, err := ec.publication.ApiKeysForEvent(eventID)
	if err != nil {
		return
	}
	for _, key := range keys {
		ec.cache.Invalidate(c.Request.Context(), key)
	}
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidLatitude(req.Latitude) || !utils.IsValidLongitude(req.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}

	event := models.Event{
		ID:            uuid.New().String(),
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		EventDatetime: stripTimezone(req.EventDatetime),
		Longitude:     req.Longitude,
		Latitude:      req.Latitude,
		Category:      req.Category,
		VenueName:     req.VenueName,
		VenueAddress:  req.VenueAddress,
		ImageURL:      req.ImageURL,
		TicketURL:     req.TicketURL,
		IsPublished:   req.IsPublished,
	}

	if err := ec.db.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	if len(req.WidgetIDs) > 0 {
		if err := ec.publication.SetEventWidgets(&event, req.WidgetIDs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link widgets"})
			return
		}
		ec.db.First(&event, "id = ?", event.ID)
		ec.invalidateEventCaches(c, event.ID)
	}

	response, err := ec.eventResponse(&event)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (ec *EventController) GetEvents(c *gin.Context) {
	userID := c.GetString("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 1000 {
		pageSize = 1000
	}

	filter := services.EventFilter{
		Period:        c.Query("period"),
		Category:      c.Query("category"),
		Search:        c.Query("search"),
		OnlyPublished: c.Query("only_published") == "true",
	}
	if dateFrom, ok := parseQueryTime(c.Query("date_from")); ok {
		filter.DateFrom = &dateFrom
	}
	if dateTo, ok := parseQueryTime(c.Query("date_to")); ok {
		filter.DateTo = &dateTo
	}

	query := ec.db.Model(&models.Event{}).Scopes(services.ScopeUser(userID))

	if widgetID := c.Query("widget_id"); widgetID != "" {
		query = query.
			Joins("JOIN event_widgets ON event_widgets.event_id = events.id").
			Where("event_widgets.widget_id = ?", widgetID)
	}

	query = services.ApplyEventFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	offset := (page - 1) * pageSize

	var events []models.Event
	if err := query.Order("events.event_datetime ASC").Offset(offset).Limit(pageSize).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	items := make([]EventResponse, 0, len(events))
	for i := range events {
		response, err := ec.eventResponse(&events[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
			return
		}
		items = append(items, response)
	}

	utils.SendPaginated(c, items, page, pageSize, total)
}

func (ec *EventController) GetEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ? AND user_id = ?", eventID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	response, err := ec.eventResponse(&event)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ? AND user_id = ?", eventID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Latitude != nil && !utils.IsValidLatitude(*req.Latitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid latitude"})
		return
	}
	if req.Longitude != nil && !utils.IsValidLongitude(*req.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid longitude"})
		return
	}

	// Cached payloads under the pre-update linkage go stale either way.
	ec.invalidateEventCaches(c, event.ID)

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.EventDatetime != nil {
		updates["event_datetime"] = stripTimezone(*req.EventDatetime)
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.VenueName != nil {
		updates["venue_name"] = *req.VenueName
	}
	if req.VenueAddress != nil {
		updates["venue_address"] = *req.VenueAddress
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.TicketURL != nil {
		updates["ticket_url"] = *req.TicketURL
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}

	if len(updates) > 0 {
		if err := ec.db.Model(&event).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
			return
		}
	}

	if req.WidgetIDs != nil {
		if err := ec.publication.SetEventWidgets(&event, *req.WidgetIDs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link widgets"})
			return
		}
	}

	ec.invalidateEventCaches(c, event.ID)

	if err := ec.db.First(&event, "id = ?", event.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	response, err := ec.eventResponse(&event)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ? AND user_id = ?", eventID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	ec.invalidateEventCaches(c, event.ID)

	// Delete join rows first, then the event itself
	if err := ec.publication.SetEventWidgets(&event, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	if err := ec.db.Delete(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	c.Status(http.StatusNoContent)
}

// stripTimezone normalizes an incoming timestamp to naive local time.
func stripTimezone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)
}

// parseQueryTime accepts ISO 8601 timestamps with or without offset, and bare
// dates.
func parseQueryTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return stripTimezone(t), true
		}
	}
	return time.Time{}, false
}
