package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/auth"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routerFixture struct {
	e      *echo.Echo
	tokens *auth.Tokens
}

// newRouterFixture wires the router over zero-value handlers. Every request
// that reaches one must fail authorization before touching storage.
func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()

	tokens, err := auth.NewTokens(auth.Config{Secret: "router-test-secret", Issuer: "haulage", TTL: time.Hour})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	e, err := NewRouter(context.Background(), RouterConfig{
		Server:         NewServer(Handlers{}, decimal.NewFromInt(10)),
		Tokens:         tokens,
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Logger:         zerolog.Nop(),
	})
	require.NoError(t, err)
	return routerFixture{e: e, tokens: tokens}
}

func (f routerFixture) token(t *testing.T, role string) string {
	t.Helper()
	raw, err := f.tokens.Issue(kernel.NewUUID().String(), role+"-user", role)
	require.NoError(t, err)
	return raw
}

func (f routerFixture) do(method, target, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()
	var body Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_RejectsMissingAndInvalidTokens(t *testing.T) {
	f := newRouterFixture(t)

	expired, err := f.tokens.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		Issue(kernel.NewUUID().String(), "admin", "admin")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "expired", token: expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodGet, "/api/v1/trucks", tt.token, nil)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, http.StatusUnauthorized, decodeError(t, rec).Code)
		})
	}
}

func TestRouter_DeniesMissingCapability(t *testing.T) {
	f := newRouterFixture(t)
	id := kernel.NewUUID().String()

	tests := []struct {
		name   string
		role   string
		method string
		target string
		body   any
	}{
		{
			name:   "operator cannot register trucks",
			role:   "operator",
			method: http.MethodPost,
			target: "/api/v1/trucks",
			body:   map[string]any{"plate": "T-9", "capacity": "20"},
		},
		{
			name:   "operator cannot resolve exceptions",
			role:   "operator",
			method: http.MethodPost,
			target: "/api/v1/exceptions/" + id + "/resolve",
		},
		{
			name:   "operator cannot create users",
			role:   "operator",
			method: http.MethodPost,
			target: "/api/v1/users",
			body:   map[string]any{"username": "x", "role": "operator"},
		},
		{
			name:   "unknown role cannot start a journey",
			role:   "visitor",
			method: http.MethodPost,
			target: "/api/v1/dispatches/" + id + "/start-journey",
		},
		{
			name:   "unknown role cannot force a status",
			role:   "visitor",
			method: http.MethodPut,
			target: "/api/v1/dispatches/" + id + "/status",
			body:   map[string]any{"status": "completed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(tt.method, tt.target, f.token(t, tt.role), tt.body)

			assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
			assert.Contains(t, decodeError(t, rec).Message, errs.ErrPermissionDenied.Error())
		})
	}
}

func TestRouter_RejectsInvalidRequests(t *testing.T) {
	f := newRouterFixture(t)
	admin := f.token(t, "admin")

	tests := []struct {
		name   string
		method string
		target string
		body   any
	}{
		{name: "truck without plate", method: http.MethodPost, target: "/api/v1/trucks", body: map[string]any{"capacity": "20"}},
		{name: "unknown truck status filter", method: http.MethodGet, target: "/api/v1/trucks?status=parked"},
		{name: "malformed id", method: http.MethodGet, target: "/api/v1/trucks/not-a-uuid"},
		{name: "order without quantity", method: http.MethodPost, target: "/api/v1/orders", body: map[string]any{
			"customer_id": kernel.NewUUID().String(), "material_type": "Coal",
		}},
		{name: "unknown role", method: http.MethodPost, target: "/api/v1/users", body: map[string]any{
			"username": "x", "role": "driver",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(tt.method, tt.target, admin, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_WeighingsRequireAReading(t *testing.T) {
	f := newRouterFixture(t)
	base := "/api/v1/dispatches/" + kernel.NewUUID().String()

	tests := []struct {
		name   string
		target string
		body   any
	}{
		{name: "weigh-in without weight", target: base + "/weigh-in", body: map[string]any{"note": "ticket 17"}},
		{name: "weigh-in with only a tare", target: base + "/weigh-in", body: map[string]any{"tare_weight": "20"}},
		{name: "weigh-out without weight", target: base + "/weigh-out", body: map[string]any{"note": "empty"}},
		{name: "weigh-out with a malformed tare", target: base + "/weigh-out", body: map[string]any{"tare_weight": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, tt.target, f.token(t, "operator"), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestStageInput_WeightFor(t *testing.T) {
	generic := decimal.NewFromInt(30)
	gross := decimal.NewFromInt(35)
	tare := decimal.NewFromInt(20)

	tests := []struct {
		name   string
		in     stageInput
		action dispatch.Action
		want   *decimal.Decimal
	}{
		{name: "gross on weigh-in", in: stageInput{grossWeight: &gross, tareWeight: &tare}, action: dispatch.ActionWeighIn, want: &gross},
		{name: "tare on weigh-out", in: stageInput{grossWeight: &gross, tareWeight: &tare}, action: dispatch.ActionWeighOut, want: &tare},
		{name: "gross wins over weight", in: stageInput{weight: &generic, grossWeight: &gross}, action: dispatch.ActionWeighIn, want: &gross},
		{name: "weight when no named reading", in: stageInput{weight: &generic}, action: dispatch.ActionWeighOut, want: &generic},
		{name: "tare ignored on weigh-in", in: stageInput{tareWeight: &tare}, action: dispatch.ActionWeighIn, want: nil},
		{name: "unload keeps weight", in: stageInput{weight: &generic, grossWeight: &gross}, action: dispatch.ActionUnload, want: &generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.weightFor(tt.action)

			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s", got)
		})
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/drivers", f.token(t, "admin"), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ServesSwaggerDocument(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/swagger/doc.json", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Haulage dispatch API")
	assert.Contains(t, rec.Body.String(), "/api/v1/dispatches/{id}/weigh-in")
}

func TestRouter_ExposesMetrics(t *testing.T) {
	f := newRouterFixture(t)
	f.do(http.MethodGet, "/health", "", nil)

	rec := f.do(http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `haulage_http_request_duration_seconds_count{code="200",method="GET",route="/health"} 1`)
}

func TestValidateRequests_PassesUndocumentedPaths(t *testing.T) {
	doc, err := LoadOpenAPI(context.Background())
	require.NoError(t, err)
	validate, err := ValidateRequests(doc)
	require.NoError(t, err)

	e := echo.New()
	reached := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{name: "health", method: http.MethodGet, target: "/health", want: http.StatusNoContent},
		{name: "metrics", method: http.MethodGet, target: "/metrics", want: http.StatusNoContent},
		{name: "swagger ui", method: http.MethodGet, target: "/swagger/index.html", want: http.StatusNoContent},
		{name: "unknown api path", method: http.MethodGet, target: "/api/v1/drivers", want: http.StatusNoContent},
		{name: "undocumented method", method: http.MethodPatch, target: "/api/v1/trucks", want: http.StatusNoContent},
		{name: "documented path still checked", method: http.MethodGet, target: "/api/v1/trucks?status=parked", want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(tt.method, tt.target, nil), rec)

			err := validate(reached)(c)

			if tt.want == http.StatusBadRequest {
				var he *echo.HTTPError
				require.ErrorAs(t, err, &he)
				assert.Equal(t, http.StatusBadRequest, he.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: errs.NewGuardViolationError("weigh_in", "assigned", "in_transit"), want: http.StatusConflict},
		{err: errs.NewObjectNotFoundError("dispatch", "x"), want: http.StatusNotFound},
		{err: errs.NewInvalidReferenceError("truck", "x", "busy"), want: http.StatusUnprocessableEntity},
		{err: errs.NewVersionIsInvalidError("order", nil), want: http.StatusConflict},
		{err: errs.NewPartialUploadFailureError(2, nil), want: http.StatusMultiStatus},
		{err: errs.NewValueIsRequiredError("plate"), want: http.StatusBadRequest},
		{err: errs.NewValueIsInvalidError("status"), want: http.StatusBadRequest},
		{err: errs.NewValueIsOutOfRangeError("truck status", 9, 1, 2), want: http.StatusBadRequest},
		{err: errs.NewPermissionDeniedError("resolve exception", "admin"), want: http.StatusForbidden},
		{err: fmt.Errorf("wrapped: %w", errs.NewObjectNotFoundError("order", "y")), want: http.StatusNotFound},
		{err: echo.NewHTTPError(http.StatusUnauthorized, "no"), want: http.StatusUnauthorized},
		{err: errors.New("database is down"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestErrorHandler_HidesInternalErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	ErrorHandler(zerolog.Nop())(errors.New("pq: connection refused"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "pq:"))
}

func TestRequestValidator_UsesJSONNames(t *testing.T) {
	v := NewRequestValidator()

	err := v.Validate(&orderRequest{CustomerID: "nope"})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "material_type")
	assert.Contains(t, err.Error(), "customer_id")
}
