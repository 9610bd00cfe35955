// Package calendar implements the Google Calendar connector on the Calendar API v3 client.
package calendar

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/sercha-connect/internal/connectors"
	"github.com/custodia-labs/sercha-connect/internal/connectors/google"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.Connector       = (*Connector)(nil)
	_ driven.ResourceLister  = (*Connector)(nil)
	_ driven.ResourceCreator = (*Connector)(nil)
)

// Connector lists calendars and events and creates events.
type Connector struct {
	*google.OAuthBase
}

// NewFactory returns the factory registered for Google Calendar.
func NewFactory(deps connectors.Deps) driven.ConnectorFactory {
	return func(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth) driven.Connector {
		return New(cfg, auth, deps)
	}
}

// New creates a Calendar connector bound to cfg and auth.
func New(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth, deps connectors.Deps) *Connector {
	c := &Connector{}
	c.OAuthBase = google.NewOAuthBase(cfg, auth, deps, App, c.probe)
	return c
}

func (c *Connector) service(ctx context.Context) (*calendar.Service, error) {
	endpoint := connectors.Setting(c.Deps().Settings, SettingAPIBase, google.DefaultCalendarEndpoint)
	return google.NewCalendarService(ctx, c.AuthedClient(), endpoint)
}

// probe fetches one entry of the calendar list.
func (c *Connector) probe(ctx context.Context) error {
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}
	_, err = svc.CalendarList.List().MaxResults(1).Context(ctx).Do()
	return err
}

// Resources lists events or calendars.
func (c *Connector) Resources(ctx context.Context, resourceType string, opts domain.ResourceOptions) []domain.Resource {
	if !c.HasToken() {
		return []domain.Resource{}
	}
	switch resourceType {
	case ResourceEvents:
		return connectors.AttemptList(ID, "list_events", func() ([]domain.Resource, error) {
			return c.listEvents(ctx, opts)
		})
	case ResourceCalendars:
		return connectors.AttemptList(ID, "list_calendars", func() ([]domain.Resource, error) {
			return c.listCalendars(ctx)
		})
	default:
		return []domain.Resource{}
	}
}

func (c *Connector) listEvents(ctx context.Context, opts domain.ResourceOptions) ([]domain.Resource, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	calendarID := opts.CalendarID
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	resp, err := svc.Events.List(calendarID).
		MaxResults(int64(opts.LimitOr(DefaultMaxResults))).
		OrderBy("startTime").
		SingleEvents(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, google.WrapError(err)
	}

	items := make([]domain.Resource, 0, len(resp.Items))
	for _, e := range resp.Items {
		res, err := connectors.ToResource(e)
		if err != nil {
			return nil, err
		}
		items = append(items, res)
	}
	return items, nil
}

func (c *Connector) listCalendars(ctx context.Context) ([]domain.Resource, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}

	items := make([]domain.Resource, 0, len(resp.Items))
	for _, entry := range resp.Items {
		res, err := connectors.ToResource(entry)
		if err != nil {
			return nil, err
		}
		items = append(items, res)
	}
	return items, nil
}

// CreateResource creates an event. Other resource types are unsupported.
// data may carry "calendar_id" to target a calendar other than primary.
func (c *Connector) CreateResource(ctx context.Context, resourceType string, data map[string]any) (domain.Resource, error) {
	if resourceType != ResourceEvents {
		return nil, fmt.Errorf("%s: create %s: %w", ID, resourceType, domain.ErrUnsupported)
	}
	if !c.HasToken() {
		return nil, fmt.Errorf("%s: %w", ID, domain.ErrAuthRequired)
	}

	event, err := eventFromData(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ID, err)
	}
	calendarID, _ := data["calendar_id"].(string)
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	svc, err := c.service(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ID, err)
	}
	created, err := svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err := connectors.Observe(ID, "create_event", google.WrapError(err)); err != nil {
		return nil, fmt.Errorf("%s: creating event: %w", ID, err)
	}
	return connectors.ToResource(created)
}
