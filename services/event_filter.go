package services

import (
	"time"

	"gorm.io/gorm"
)

// EventFilter holds the query parameters of both the admin listing and the
// public widget endpoint. Zero values mean "no constraint".
type EventFilter struct {
	Period        string
	Category      string
	Search        string
	DateFrom      *time.Time
	DateTo        *time.Time
	OnlyPublished bool
}

// TodayStart returns the start of the current day in process-local time.
func TodayStart() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ScopeUser limits the query to events owned by userID.
func ScopeUser(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("events.user_id = ?", userID)
	}
}

// ScopePeriod applies the named relative time window. Unrecognized values
// (including "all" and "") apply no constraint.
func ScopePeriod(period string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		todayStart := TodayStart()

		switch period {
		case "today":
			return db.Where("events.event_datetime >= ? AND events.event_datetime < ?",
				todayStart, todayStart.AddDate(0, 0, 1))
		case "tomorrow":
			return db.Where("events.event_datetime >= ? AND events.event_datetime < ?",
				todayStart.AddDate(0, 0, 1), todayStart.AddDate(0, 0, 2))
		case "week":
			return db.Where("events.event_datetime >= ? AND events.event_datetime < ?",
				todayStart, todayStart.AddDate(0, 0, 7))
		case "month":
			return db.Where("events.event_datetime >= ? AND events.event_datetime < ?",
				todayStart, todayStart.AddDate(0, 0, 30))
		}
		return db
	}
}

// ScopeDateRange layers explicit from/to bounds on top of any period window.
func ScopeDateRange(dateFrom, dateTo *time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if dateFrom != nil {
			db = db.Where("events.event_datetime >= ?", *dateFrom)
		}
		if dateTo != nil {
			db = db.Where("events.event_datetime <= ?", *dateTo)
		}
		return db
	}
}

// ScopeCategory applies an exact category match.
func ScopeCategory(category string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if category == "" {
			return db
		}
		return db.Where("events.category = ?", category)
	}
}

// ScopeSearch applies a case-insensitive substring search over title and
// description.
func ScopeSearch(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		pattern := "%" + search + "%"
		return db.Where("LOWER(events.title) LIKE LOWER(?) OR LOWER(events.description) LIKE LOWER(?)", pattern, pattern)
	}
}

// ScopePublished restricts to published events. Forced on the public path,
// optional on the admin path.
func ScopePublished(onlyPublished bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !onlyPublished {
			return db
		}
		return db.Where("events.is_published = ?", true)
	}
}

// ApplyEventFilter chains all scopes in their fixed order. The user scope is
// applied separately by callers that need it.
func ApplyEventFilter(db *gorm.DB, filter EventFilter) *gorm.DB {
	return db.
		Scopes(ScopePeriod(filter.Period)).
		Scopes(ScopeDateRange(filter.DateFrom, filter.DateTo)).
		Scopes(ScopeCategory(filter.Category)).
		Scopes(ScopeSearch(filter.Search)).
		Scopes(ScopePublished(filter.OnlyPublished))
}
