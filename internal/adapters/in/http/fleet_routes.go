package http

import (
	"net/http"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/application/usecases/queries"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/truck"
	"haulage/internal/core/domain/model/user"
	"haulage/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ListTrucks handles GET /api/v1/trucks.
func (s *Server) ListTrucks(c echo.Context) error {
	rawStatuses, err := queryList(c, "status")
	if err != nil {
		return err
	}
	statuses := make([]truck.Status, 0, len(rawStatuses))
	for _, raw := range rawStatuses {
		status, err := truck.ParseStatus(raw)
		if err != nil {
			return err
		}
		statuses = append(statuses, status)
	}
	available, err := queryBool(c, "available")
	if err != nil {
		return err
	}

	query, err := queries.NewListTrucksQuery(statuses, available != nil && *available)
	if err != nil {
		return err
	}
	trucks, err := s.h.ListTrucks.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]truckResponse, 0, len(trucks))
	for _, t := range trucks {
		response = append(response, truckFromView(t))
	}
	return c.JSON(http.StatusOK, response)
}

// GetTruck handles GET /api/v1/trucks/{id}.
func (s *Server) GetTruck(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return s.respondTruck(c, http.StatusOK, id)
}

// GetTruckByPlate handles GET /api/v1/trucks/by-plate/{plate}.
func (s *Server) GetTruckByPlate(c echo.Context) error {
	query, err := queries.NewGetTruckByPlateQuery(c.Param("plate"))
	if err != nil {
		return err
	}
	view, err := s.h.GetTruck.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, truckFromView(view))
}

// CreateTruck handles POST /api/v1/trucks.
func (s *Server) CreateTruck(c echo.Context) error {
	var req truckRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateTruckCommand(identityOf(c), kernel.NewUUID(), req.Plate, *req.Capacity, req.DriverName)
	if err != nil {
		return err
	}
	t, err := s.h.CreateTruck.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respondTruck(c, http.StatusCreated, t.ID())
}

// UpdateTruck handles PUT /api/v1/trucks/{id}.
func (s *Server) UpdateTruck(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req truckRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateTruckCommand(identityOf(c), id, req.Plate, *req.Capacity, req.DriverName)
	if err != nil {
		return err
	}
	if _, err = s.h.UpdateTruck.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondTruck(c, http.StatusOK, id)
}

// ChangeTruckStatus handles PUT /api/v1/trucks/{id}/status.
func (s *Server) ChangeTruckStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req truckStatusRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	status, err := truck.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeTruckStatusCommand(identityOf(c), id, status)
	if err != nil {
		return err
	}
	if _, err = s.h.ChangeTruckStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondTruck(c, http.StatusOK, id)
}

// respondTruck answers with the truck's read model, so writes and reads
// return the same shape.
func (s *Server) respondTruck(c echo.Context, code int, id kernel.UUID) error {
	query, err := queries.NewGetTruckQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.GetTruck.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(code, truckFromView(view))
}

// ListCustomers handles GET /api/v1/customers.
func (s *Server) ListCustomers(c echo.Context) error {
	search, err := queryString(c, "search")
	if err != nil {
		return err
	}
	term := ""
	if search != nil {
		term = *search
	}

	customers, err := s.h.ListCustomers.Handle(c.Request().Context(), queries.NewListCustomersQuery(term))
	if err != nil {
		return err
	}
	response := make([]customerResponse, 0, len(customers))
	for _, cu := range customers {
		response = append(response, customerFromView(cu))
	}
	return c.JSON(http.StatusOK, response)
}

// CreateCustomer handles POST /api/v1/customers.
func (s *Server) CreateCustomer(c echo.Context) error {
	var req customerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCreateCustomerCommand(identityOf(c), kernel.NewUUID(), req.Name, req.Contact, req.Email)
	if err != nil {
		return err
	}
	cu, err := s.h.SaveCustomer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, customerFromDomain(cu))
}

// UpdateCustomer handles PUT /api/v1/customers/{id}.
func (s *Server) UpdateCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req customerRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewUpdateCustomerCommand(identityOf(c), id, req.Name, req.Contact, req.Email)
	if err != nil {
		return err
	}
	cu, err := s.h.SaveCustomer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customerFromDomain(cu))
}

// ListMaterials handles GET /api/v1/materials.
func (s *Server) ListMaterials(c echo.Context) error {
	lowStock, err := queryBool(c, "low_stock")
	if err != nil {
		return err
	}
	threshold := s.lowStockThreshold
	raw, err := queryString(c, "threshold")
	if err != nil {
		return err
	}
	if raw != nil {
		if threshold, err = decimal.NewFromString(*raw); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("threshold", err)
		}
	}

	query, err := queries.NewListMaterialsQuery(lowStock != nil && *lowStock, threshold)
	if err != nil {
		return err
	}
	materials, err := s.h.ListMaterials.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	response := make([]materialResponse, 0, len(materials))
	for _, m := range materials {
		response = append(response, materialFromView(m))
	}
	return c.JSON(http.StatusOK, response)
}

// CreateMaterial handles POST /api/v1/materials.
func (s *Server) CreateMaterial(c echo.Context) error {
	var req materialRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	stock := decimal.Zero
	if req.Stock != nil {
		stock = *req.Stock
	}

	cmd, err := commands.NewCreateMaterialCommand(identityOf(c), kernel.NewUUID(), req.Name, stock, req.Unit)
	if err != nil {
		return err
	}
	m, err := s.h.CreateMaterial.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, materialFromDomain(m, s.lowStockThreshold))
}

// AdjustMaterialStock handles POST /api/v1/materials/{id}/adjustments.
func (s *Server) AdjustMaterialStock(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req adjustmentRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAdjustMaterialStockCommand(identityOf(c), id, *req.Delta)
	if err != nil {
		return err
	}
	adjustment, err := s.h.AdjustMaterialStock.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adjustmentFromResult(adjustment))
}

// ListUsers handles GET /api/v1/users.
func (s *Server) ListUsers(c echo.Context) error {
	raw, err := queryString(c, "role")
	if err != nil {
		return err
	}
	var role *user.Role
	if raw != nil {
		r := user.Role(*raw)
		role = &r
	}

	query, err := queries.NewListUsersQuery(role)
	if err != nil {
		return err
	}
	users, err := s.h.ListUsers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	response := make([]userResponse, 0, len(users))
	for _, u := range users {
		response = append(response, userFromView(u))
	}
	return c.JSON(http.StatusOK, response)
}

// CreateUser handles POST /api/v1/users.
func (s *Server) CreateUser(c echo.Context) error {
	var req userRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCreateUserCommand(identityOf(c), kernel.NewUUID(), req.Username, user.Role(req.Role))
	if err != nil {
		return err
	}
	u, err := s.h.CreateUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userFromDomain(u))
}
