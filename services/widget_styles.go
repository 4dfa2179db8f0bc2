package services

import (
	"fmt"
	"regexp"
	"strconv"

	"eventmap-api/models"
)

var heightRegex = regexp.MustCompile(`^(\d+)`)

// GenerateWidgetCSS renders the scoped stylesheet for a widget. The
// {widget-id} placeholder is replaced by the embed script on the client.
func GenerateWidgetCSS(config *models.WidgetConfig) string {
	width := config.Width
	if width == "" {
		width = "100%"
	}
	height := config.Height
	if height == "" {
		height = "400px"
	}
	primaryColor := config.PrimaryColor
	if primaryColor == "" {
		primaryColor = "#007bff"
	}

	mapHeight := parseHeight(height) - 120
	if mapHeight < 150 {
		mapHeight = 150
	}

	return fmt.Sprintf(`
#{widget-id} {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
  background: #ffffff;
  border: 1px solid #d1d5db;
  border-radius: 8px;
  overflow: hidden;
  width: %s;
  height: %s;
  display: flex;
  flex-direction: column;
}

#{widget-id} .eventmap-header {
  padding: 12px 16px;
  color: white;
  font-weight: 600;
  font-size: 16px;
  flex-shrink: 0;
  background-color: %s;
}

#{widget-id} .eventmap-filters {
  display: flex;
  gap: 8px;
  padding: 12px;
  background: white;
  border-bottom: 1px solid #e5e7eb;
  flex-shrink: 0;
}

#{widget-id} .eventmap-filter-select {
  padding: 8px 12px;
  border: 1px solid #d1d5db;
  border-radius: 6px;
  font-size: 14px;
  background: white;
}

#{widget-id} .eventmap-filter-input {
  flex: 1;
  padding: 8px 12px;
  border: 1px solid #d1d5db;
  border-radius: 6px;
  font-size: 14px;
  background: white;
}

#{widget-id} .eventmap-filter-select:focus,
#{widget-id} .eventmap-filter-input:focus {
  outline: none;
  border-color: %s;
}

#{widget-id} .eventmap-map {
  width: 100%%;
  height: 100%%;
  min-height: %dpx;
  position: relative;
  flex: 1;
}

#{widget-id} .eventmap-footer {
  background: #f9fafb;
  padding: 8px 16px;
  font-size: 12px;
  color: #6b7280;
  border-top: 1px solid #e5e7eb;
  display: flex;
  justify-content: space-between;
  align-items: center;
  flex-shrink: 0;
}

#{widget-id} .eventmap-footer-features {
  display: flex;
  gap: 8px;
}
`, width, height, primaryColor, primaryColor, mapHeight)
}

// parseHeight reads the leading number out of a value like "400px".
func parseHeight(height string) int {
	match := heightRegex.FindString(height)
	if match == "" {
		return 400
	}
	value, err := strconv.Atoi(match)
	if err != nil {
		return 400
	}
	return value
}
