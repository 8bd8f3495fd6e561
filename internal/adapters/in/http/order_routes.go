package http

import (
	"net/http"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/application/usecases/queries"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	rawStatus, err := queryString(c, "status")
	if err != nil {
		return err
	}
	var status *order.Status
	if rawStatus != nil {
		parsed, err := order.ParseStatus(*rawStatus)
		if err != nil {
			return err
		}
		status = &parsed
	}
	customerID, err := queryUUID(c, "customer_id")
	if err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(status, customerID)
	if err != nil {
		return err
	}
	orders, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	response := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, orderFromView(o))
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, id)
}

// CreateOrder handles POST /api/v1/orders. The order is booked and, when a
// truck is idle, dispatched to it in the same request.
func (s *Server) CreateOrder(c echo.Context) error {
	var req orderRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	customerID, err := parseUUID("customer_id", req.CustomerID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(identityOf(c), kernel.NewUUID(), customerID, req.MaterialType, *req.Quantity)
	if err != nil {
		return err
	}
	result, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdOrderFromResult(result))
}

// ChangeOrderStatus handles PUT /api/v1/orders/{id}/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req orderStatusRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(identityOf(c), id, status)
	if err != nil {
		return err
	}
	if _, err = s.h.ChangeOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, id)
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteOrderCommand(identityOf(c), id)
	if err != nil {
		return err
	}
	if err = s.h.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) respondOrder(c echo.Context, code int, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(code, orderFromView(view))
}
