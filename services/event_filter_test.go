package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"eventmap-api/models"
)

func filteredTitles(t *testing.T, db *gorm.DB, userID string, filter EventFilter) []string {
	t.Helper()

	var events []models.Event
	query := db.Model(&models.Event{}).Scopes(ScopeUser(userID))
	query = ApplyEventFilter(query, filter)
	require.NoError(t, query.Order("events.event_datetime ASC").Find(&events).Error)

	titles := make([]string, 0, len(events))
	for _, e := range events {
		titles = append(titles, e.Title)
	}
	return titles
}

func TestPeriodWindows(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	todayStart := TodayStart()
	seed := map[string]time.Time{
		"yesterday":  todayStart.Add(-12 * time.Hour),
		"today":      todayStart.Add(12 * time.Hour),
		"tomorrow":   todayStart.AddDate(0, 0, 1).Add(12 * time.Hour),
		"in 5 days":  todayStart.AddDate(0, 0, 5).Add(12 * time.Hour),
		"in 20 days": todayStart.AddDate(0, 0, 20).Add(12 * time.Hour),
		"in 40 days": todayStart.AddDate(0, 0, 40).Add(12 * time.Hour),
	}
	for title, dt := range seed {
		event := createTestEvent(t, db, user.ID, dt)
		require.NoError(t, db.Model(event).Update("title", title).Error)
	}

	tests := []struct {
		period string
		want   []string
	}{
		{"today", []string{"today"}},
		{"tomorrow", []string{"tomorrow"}},
		{"week", []string{"today", "tomorrow", "in 5 days"}},
		{"month", []string{"today", "tomorrow", "in 5 days", "in 20 days"}},
		{"all", []string{"yesterday", "today", "tomorrow", "in 5 days", "in 20 days", "in 40 days"}},
		{"", []string{"yesterday", "today", "tomorrow", "in 5 days", "in 20 days", "in 40 days"}},
		{"fortnight", []string{"yesterday", "today", "tomorrow", "in 5 days", "in 20 days", "in 40 days"}},
	}

	for _, tt := range tests {
		t.Run("period "+tt.period, func(t *testing.T) {
			got := filteredTitles(t, db, user.ID, EventFilter{Period: tt.period})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateRangeLayersOnPeriod(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	todayStart := TodayStart()
	early := createTestEvent(t, db, user.ID, todayStart.AddDate(0, 0, 1))
	require.NoError(t, db.Model(early).Update("title", "early").Error)
	late := createTestEvent(t, db, user.ID, todayStart.AddDate(0, 0, 5))
	require.NoError(t, db.Model(late).Update("title", "late").Error)

	from := todayStart.AddDate(0, 0, 3)
	got := filteredTitles(t, db, user.ID, EventFilter{Period: "week", DateFrom: &from})
	assert.Equal(t, []string{"late"}, got)

	to := todayStart.AddDate(0, 0, 3)
	got = filteredTitles(t, db, user.ID, EventFilter{Period: "week", DateTo: &to})
	assert.Equal(t, []string{"early"}, got)
}

func TestCategoryAndSearchFilters(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	now := time.Now()
	music := createTestEvent(t, db, user.ID, now)
	desc := "An evening of Jazz downtown"
	require.NoError(t, db.Model(music).Updates(map[string]interface{}{
		"title": "Concert", "category": "music", "description": desc,
	}).Error)
	sport := createTestEvent(t, db, user.ID, now.Add(time.Hour))
	require.NoError(t, db.Model(sport).Updates(map[string]interface{}{
		"title": "Marathon", "category": "sport",
	}).Error)

	assert.Equal(t, []string{"Concert"}, filteredTitles(t, db, user.ID, EventFilter{Category: "music"}))
	assert.Empty(t, filteredTitles(t, db, user.ID, EventFilter{Category: "mus"}))

	// Search is case-insensitive and covers both title and description
	assert.Equal(t, []string{"Marathon"}, filteredTitles(t, db, user.ID, EventFilter{Search: "maraTHON"}))
	assert.Equal(t, []string{"Concert"}, filteredTitles(t, db, user.ID, EventFilter{Search: "jazz"}))
}

func TestPublishedFilter(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	now := time.Now()
	published := createTestEvent(t, db, user.ID, now)
	require.NoError(t, db.Model(published).Updates(map[string]interface{}{
		"title": "visible", "is_published": true,
	}).Error)
	draft := createTestEvent(t, db, user.ID, now.Add(time.Hour))
	require.NoError(t, db.Model(draft).Update("title", "draft").Error)

	assert.Equal(t, []string{"visible"}, filteredTitles(t, db, user.ID, EventFilter{OnlyPublished: true}))
	assert.Equal(t, []string{"visible", "draft"}, filteredTitles(t, db, user.ID, EventFilter{}))
}

func TestScopeUserIsolatesOwners(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)

	createTestEvent(t, db, alice.ID, time.Now())
	createTestEvent(t, db, bob.ID, time.Now())

	assert.Len(t, filteredTitles(t, db, alice.ID, EventFilter{}), 1)
}
