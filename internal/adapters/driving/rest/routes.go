package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
)

// defaultHistoryLimit caps history responses when no limit is given.
const defaultHistoryLimit = 20

type httpRoutes struct {
	gateway  driving.ConnectorGateway
	settings driving.SettingsService
}

func (r *httpRoutes) Register(e *echo.Echo) {
	api := e.Group("/api")

	v1 := api.Group("/connectors")
	// LIFECYCLE
	v1.GET("", r.ListConnectors)
	v1.GET("/status", r.StatusAll)
	v1.GET("/:id/status", r.Status)
	v1.GET("/:id/history", r.History)
	v1.POST("/:id/authorize", r.Authorize)
	v1.POST("/:id/revoke", r.Revoke)
	v1.POST("/:id/test", r.Test)
	v1.POST("/:id/sync", r.Sync)
	// RESOURCES
	v1.GET("/:id/resources/:type", r.Resources)
	v1.POST("/:id/resources/:type", r.CreateResource)
	// EXTRAS
	v1.POST("/:id/email", r.SendEmail)
	v1.POST("/:id/whatsapp", r.SendWhatsApp)
	v1.POST("/:id/portal", r.CreatePortalSession)
	// CREDENTIALS
	v1.PUT("/:id/auth", r.SaveAuth)
	v1.DELETE("/:id/auth", r.DeleteAuth)
	// SETTINGS
	v1.GET("/:id/settings", r.ConnectorSettings)
	api.PUT("/settings/:key", r.SetSetting)
}

type listResponse struct {
	Connectors []domain.ConnectorConfig `json:"connectors"`
}

type statusAllResponse struct {
	Statuses []driving.StatusReport `json:"statuses"`
}

type historyResponse struct {
	ConnectorID string                `json:"connector_id"`
	History     []domain.StatusRecord `json:"history"`
}

type settingsResponse struct {
	ConnectorID string                `json:"connector_id"`
	Settings    []domain.SettingValue `json:"settings"`
}

type saveAuthRequest struct {
	AuthType    domain.AuthKind   `json:"auth_type" validate:"omitempty,oneof=oauth2 api_key basic"`
	Credentials map[string]string `json:"credentials" validate:"required,min=1"`
	ExpiresAt   time.Time         `json:"expires_at"`
	Scopes      []string          `json:"scopes"`
}

type emailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body"`
}

type whatsAppRequest struct {
	To   string `json:"to" validate:"required"`
	Body string `json:"body" validate:"required"`
}

type portalRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	ReturnURL  string `json:"return_url" validate:"omitempty,url"`
}

type settingRequest struct {
	Value string `json:"value"`
}

// ListConnectors lists registered connectors.
//
//	GET /api/connectors?category=billing
func (r *httpRoutes) ListConnectors(ctx echo.Context) error {
	configs := r.gateway.List(ctx.QueryParam("category"))
	return ctx.JSON(http.StatusOK, listResponse{Connectors: configs})
}

// StatusAll checks every connector.
func (r *httpRoutes) StatusAll(ctx echo.Context) error {
	reports := r.gateway.StatusAll(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, statusAllResponse{Statuses: reports})
}

// Status recomputes one connector's status.
func (r *httpRoutes) Status(ctx echo.Context) error {
	report, err := r.gateway.Status(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, report)
}

// History returns recent status checks.
//
//	GET /api/connectors/:id/history?limit=20
func (r *httpRoutes) History(ctx echo.Context) error {
	limit := defaultHistoryLimit
	if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
		return badQuery(err)
	}

	id := ctx.Param("id")
	records, err := r.gateway.History(ctx.Request().Context(), id, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, historyResponse{ConnectorID: id, History: records})
}

// Authorize starts authorization.
func (r *httpRoutes) Authorize(ctx echo.Context) error {
	result, err := r.gateway.Authorize(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, result)
}

// Revoke revokes provider access.
func (r *httpRoutes) Revoke(ctx echo.Context) error {
	result, err := r.gateway.Revoke(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, result)
}

// Test probes connectivity.
func (r *httpRoutes) Test(ctx echo.Context) error {
	result, err := r.gateway.Test(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, result)
}

// Sync runs the connector's sync routine.
func (r *httpRoutes) Sync(ctx echo.Context) error {
	opts, err := resourceOptions(ctx)
	if err != nil {
		return err
	}
	result, err := r.gateway.Sync(ctx.Request().Context(), ctx.Param("id"), opts)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, result)
}

// Resources lists provider resources.
//
//	GET /api/connectors/:id/resources/:type?limit=10&query=is:unread&calendar_id=primary
func (r *httpRoutes) Resources(ctx echo.Context) error {
	opts, err := resourceOptions(ctx)
	if err != nil {
		return err
	}
	list, err := r.gateway.Resources(ctx.Request().Context(), ctx.Param("id"), ctx.Param("type"), opts)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, list)
}

// CreateResource creates a provider resource from the JSON body.
func (r *httpRoutes) CreateResource(ctx echo.Context) error {
	data := map[string]any{}
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &data); err != nil {
		return err
	}
	created, err := r.gateway.CreateResource(ctx.Request().Context(), ctx.Param("id"), ctx.Param("type"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, created)
}

// SendEmail sends an email through an email connector.
func (r *httpRoutes) SendEmail(ctx echo.Context) error {
	var req emailRequest
	if err := bindValidate(ctx, &req); err != nil {
		return err
	}
	sent, err := r.gateway.SendEmail(ctx.Request().Context(), ctx.Param("id"), req.To, req.Subject, req.Body)
	if err != nil {
		return extraError{err: err}
	}
	return ctx.JSON(http.StatusOK, sent)
}

// SendWhatsApp sends a WhatsApp message.
func (r *httpRoutes) SendWhatsApp(ctx echo.Context) error {
	var req whatsAppRequest
	if err := bindValidate(ctx, &req); err != nil {
		return err
	}
	sent, err := r.gateway.SendWhatsApp(ctx.Request().Context(), ctx.Param("id"), req.To, req.Body)
	if err != nil {
		return extraError{err: err}
	}
	return ctx.JSON(http.StatusOK, sent)
}

// CreatePortalSession opens a billing portal session.
func (r *httpRoutes) CreatePortalSession(ctx echo.Context) error {
	var req portalRequest
	if err := bindValidate(ctx, &req); err != nil {
		return err
	}
	session, err := r.gateway.CreatePortalSession(ctx.Request().Context(), ctx.Param("id"), req.CustomerID, req.ReturnURL)
	if err != nil {
		return extraError{err: err}
	}
	return ctx.JSON(http.StatusOK, session)
}

// SaveAuth stores credentials for a connector.
func (r *httpRoutes) SaveAuth(ctx echo.Context) error {
	var req saveAuthRequest
	if err := bindValidate(ctx, &req); err != nil {
		return err
	}
	auth := domain.ConnectorAuth{
		Kind:        req.AuthType,
		Credentials: req.Credentials,
		ExpiresAt:   req.ExpiresAt,
		Scopes:      req.Scopes,
	}
	if err := r.gateway.SaveAuth(ctx.Request().Context(), ctx.Param("id"), auth); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteAuth forgets stored credentials.
func (r *httpRoutes) DeleteAuth(ctx echo.Context) error {
	if err := r.gateway.DeleteAuth(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConnectorSettings returns a connector's settings, secrets masked.
func (r *httpRoutes) ConnectorSettings(ctx echo.Context) error {
	if r.settings == nil {
		return fmt.Errorf("settings: %w", domain.ErrUnsupported)
	}
	id := ctx.Param("id")
	values, err := r.settings.Describe(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, settingsResponse{ConnectorID: id, Settings: values})
}

// SetSetting writes one setting. An empty value clears it.
func (r *httpRoutes) SetSetting(ctx echo.Context) error {
	if r.settings == nil {
		return fmt.Errorf("settings: %w", domain.ErrUnsupported)
	}
	var req settingRequest
	if err := bindValidate(ctx, &req); err != nil {
		return err
	}
	if err := r.settings.Set(ctx.Param("key"), req.Value); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func resourceOptions(ctx echo.Context) (domain.ResourceOptions, error) {
	var opts domain.ResourceOptions
	err := echo.QueryParamsBinder(ctx).
		Int("limit", &opts.Limit).
		String("query", &opts.Query).
		String("calendar_id", &opts.CalendarID).
		BindError()
	if err != nil {
		return opts, badQuery(err)
	}
	return opts, nil
}

func badQuery(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
