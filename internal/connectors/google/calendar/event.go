package calendar

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// eventFromData builds an event from a create request.
// Required: summary, start, end. Times are RFC 3339; plain dates
// (2006-01-02) create an all-day event.
func eventFromData(data map[string]any) (*calendar.Event, error) {
	summary, _ := data["summary"].(string)
	if summary == "" {
		return nil, fmt.Errorf("summary is required: %w", domain.ErrInvalidInput)
	}

	start, err := eventTime(data, "start")
	if err != nil {
		return nil, err
	}
	end, err := eventTime(data, "end")
	if err != nil {
		return nil, err
	}

	event := &calendar.Event{
		Summary: summary,
		Start:   start,
		End:     end,
	}
	if v, ok := data["description"].(string); ok {
		event.Description = v
	}
	if v, ok := data["location"].(string); ok {
		event.Location = v
	}
	return event, nil
}

func eventTime(data map[string]any, key string) (*calendar.EventDateTime, error) {
	raw, _ := data[key].(string)
	if raw == "" {
		return nil, fmt.Errorf("%s is required: %w", key, domain.ErrInvalidInput)
	}
	if _, err := time.Parse(time.DateOnly, raw); err == nil {
		return &calendar.EventDateTime{Date: raw}, nil
	}
	if _, err := time.Parse(time.RFC3339, raw); err == nil {
		return &calendar.EventDateTime{DateTime: raw}, nil
	}
	return nil, fmt.Errorf("%s %q is not a date or RFC 3339 time: %w", key, raw, domain.ErrInvalidInput)
}
