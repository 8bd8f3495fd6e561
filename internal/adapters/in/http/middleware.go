package http

import (
	"net/http"
	"strings"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/user"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/auth"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const identityKey = "identity"

// RequestObserver receives one observation per served request.
type RequestObserver interface {
	ObserveRequest(method, route string, code int, elapsed time.Duration)
}

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(raw string) (auth.Claims, error)
}

func isPublic(path string) bool {
	return path == "/health" || path == "/metrics" || strings.HasPrefix(path, "/swagger")
}

// Authenticate turns the bearer token into a ports.Identity stored on the
// echo context. Public paths pass through without one.
func Authenticate(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isPublic(c.Request().URL.Path) {
				return next(c)
			}

			raw, ok := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token")
			}
			identity, err := identityFromClaims(claims)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token")
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

func identityFromClaims(claims auth.Claims) (ports.Identity, error) {
	id, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return ports.Identity{}, err
	}
	return ports.Identity{UserID: id, Capability: ports.CapabilityOf(user.Role(claims.Role))}, nil
}

// identityOf falls back to an identity without capabilities, so a route
// reached without authentication is still denied by the handlers.
func identityOf(c echo.Context) ports.Identity {
	if identity, ok := c.Get(identityKey).(ports.Identity); ok {
		return identity
	}
	return ports.Identity{Capability: ports.CapabilityNone}
}

// RequestLogger logs one line per request through zerolog.
func RequestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				event = logger.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// RequestMetrics reports each request under its route template, so ids in
// the path do not explode label cardinality.
func RequestMetrics(observer RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			code := c.Response().Status
			if err != nil {
				code = StatusOf(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			observer.ObserveRequest(c.Request().Method, route, code, time.Since(start))
			return err
		}
	}
}
