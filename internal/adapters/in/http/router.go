package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type RouterConfig struct {
	Server  *Server
	Tokens  TokenParser
	Metrics RequestObserver
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler
	Logger         zerolog.Logger
	// BodyLimit caps request bodies, e.g. "32M".
	BodyLimit string
}

// NewRouter builds the echo instance with middleware and every route
// registered.
func NewRouter(ctx context.Context, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validate, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)
	e.Validator = NewRequestValidator()

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "32M"
	}

	e.Use(middleware.Recover())
	if cfg.Metrics != nil {
		e.Use(RequestMetrics(cfg.Metrics))
	}
	e.Use(RequestLogger(cfg.Logger))
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(Authenticate(cfg.Tokens))
	e.Use(validate)

	s := cfg.Server
	e.GET("/health", s.Health)
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e.Group("/api/v1"), s)
	return e, nil
}

// RegisterHandlers maps every API route onto the server.
func RegisterHandlers(g *echo.Group, s *Server) {
	g.GET("/trucks", s.ListTrucks)
	g.POST("/trucks", s.CreateTruck)
	g.GET("/trucks/by-plate/:plate", s.GetTruckByPlate)
	g.GET("/trucks/:id", s.GetTruck)
	g.PUT("/trucks/:id", s.UpdateTruck)
	g.PUT("/trucks/:id/status", s.ChangeTruckStatus)

	g.GET("/customers", s.ListCustomers)
	g.POST("/customers", s.CreateCustomer)
	g.PUT("/customers/:id", s.UpdateCustomer)

	g.GET("/materials", s.ListMaterials)
	g.POST("/materials", s.CreateMaterial)
	g.POST("/materials/:id/adjustments", s.AdjustMaterialStock)

	g.GET("/orders", s.ListOrders)
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/:id", s.GetOrder)
	g.DELETE("/orders/:id", s.DeleteOrder)
	g.PUT("/orders/:id/status", s.ChangeOrderStatus)

	g.GET("/dispatches", s.ListDispatches)
	g.POST("/dispatches", s.CreateDispatch)
	g.GET("/dispatches/:id", s.GetDispatch)
	g.DELETE("/dispatches/:id", s.DeleteDispatch)
	g.POST("/dispatches/:id/start-journey", s.StartJourney)
	g.POST("/dispatches/:id/weigh-in", s.WeighIn)
	g.POST("/dispatches/:id/unload", s.Unload)
	g.POST("/dispatches/:id/weigh-out", s.WeighOut)
	g.POST("/dispatches/:id/complete", s.CompleteJob)
	g.POST("/dispatches/:id/cancel", s.CancelDispatch)
	g.PUT("/dispatches/:id/status", s.ForceDispatchStatus)
	g.PUT("/dispatches/:id/operator", s.AssignOperator)
	g.GET("/dispatches/:id/media", s.ListDispatchMedia)
	g.POST("/dispatches/:id/media", s.UploadDispatchMedia)
	g.POST("/dispatches/:id/exceptions", s.OpenException)

	g.GET("/exceptions", s.ListExceptions)
	g.POST("/exceptions/:id/resolve", s.ResolveException)

	g.GET("/users", s.ListUsers)
	g.POST("/users", s.CreateUser)
}
