package http

import (
	"net/http"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Handlers are the use cases the HTTP adapter exposes.
type Handlers struct {
	// Fleet and directory
	CreateTruck       commands.CreateTruckCommandHandler
	UpdateTruck       commands.UpdateTruckCommandHandler
	ChangeTruckStatus commands.ChangeTruckStatusCommandHandler
	SaveCustomer      commands.SaveCustomerCommandHandler
	CreateUser        commands.CreateUserCommandHandler

	// Inventory
	CreateMaterial      commands.CreateMaterialCommandHandler
	AdjustMaterialStock commands.AdjustMaterialStockCommandHandler

	// Orders
	CreateOrder       commands.CreateOrderCommandHandler
	ChangeOrderStatus commands.ChangeOrderStatusCommandHandler
	DeleteOrder       commands.DeleteOrderCommandHandler

	// Dispatch engine
	CreateDispatch          commands.CreateDispatchCommandHandler
	DeleteDispatch          commands.DeleteDispatchCommandHandler
	ApplyDispatchTransition commands.ApplyDispatchTransitionCommandHandler
	ForceDispatchStatus     commands.ForceDispatchStatusCommandHandler
	CancelDispatch          commands.CancelDispatchCommandHandler
	AssignOperator          commands.AssignOperatorCommandHandler
	UploadDispatchMedia     commands.UploadDispatchMediaCommandHandler
	OpenException           commands.OpenExceptionCommandHandler
	ResolveException        commands.ResolveExceptionCommandHandler

	// Queries
	ListTrucks         queries.ListTrucksQueryHandler
	GetTruck           queries.GetTruckQueryHandler
	ListCustomers      queries.ListCustomersQueryHandler
	ListMaterials      queries.ListMaterialsQueryHandler
	ListOrders         queries.ListOrdersQueryHandler
	GetOrder           queries.GetOrderQueryHandler
	ListDispatches     queries.ListDispatchesQueryHandler
	GetDispatch        queries.GetDispatchQueryHandler
	ListDispatchMedia  queries.ListDispatchMediaQueryHandler
	ListExceptions     queries.ListExceptionsQueryHandler
	ListUsers          queries.ListUsersQueryHandler
}

// Server translates HTTP requests into commands and queries and their
// results back into JSON.
type Server struct {
	h Handlers

	// lowStockThreshold flags materials in responses built from aggregates.
	lowStockThreshold decimal.Decimal
	// maxImageBytes bounds each uploaded evidence image.
	maxImageBytes int64
}

const defaultMaxImageBytes = 10 << 20

func NewServer(handlers Handlers, lowStockThreshold decimal.Decimal) *Server {
	return &Server{
		h:                 handlers,
		lowStockThreshold: lowStockThreshold,
		maxImageBytes:     defaultMaxImageBytes,
	}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
