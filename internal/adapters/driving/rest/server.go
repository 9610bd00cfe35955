// Package rest serves the connector gateway over HTTP with echo. Routes
// live under /api/connectors; /metrics and /healthz sit at the root.
package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gopkg.in/go-playground/validator.v9"

	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-connect/internal/metrics"
	"github.com/custodia-labs/sercha-connect/internal/tracing"
)

// DefaultAddr is where serve listens when no address is given.
const DefaultAddr = ":5000"

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Routes registers handlers on an echo instance.
type Routes interface {
	Register(e *echo.Echo)
}

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	// Gateway dispatches connector lifecycle operations.
	Gateway driving.ConnectorGateway

	// Settings exposes connector settings. Optional.
	Settings driving.SettingsService
}

// New builds the echo instance with middleware and every route.
func New(log *zap.Logger, ports Ports) (*echo.Echo, error) {
	if ports.Gateway == nil {
		return nil, errors.New("rest: connector gateway is required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware(tracing.ServiceName)))
	e.Use(requestLogger(log))
	e.Use(requestMetrics)

	e.Validator = customValidator{
		validate: validator.New(),
	}
	e.HTTPErrorHandler = errorHandler(log)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	routes := &httpRoutes{gateway: ports.Gateway, settings: ports.Settings}
	routes.Register(e)

	return e, nil
}

// Run serves e on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

type customValidator struct {
	validate *validator.Validate
}

func (v customValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func bindValidate(c echo.Context, i interface{}) error {
	if err := c.Bind(i); err != nil {
		return err
	}

	if err := c.Validate(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request", fields...)
			return nil
		},
	})
}

func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		status := c.Response().Status
		var he *echo.HTTPError
		if err != nil && errors.As(err, &he) {
			status = he.Code
		} else if err != nil {
			status = statusFor(err)
		}

		method := c.Request().Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
