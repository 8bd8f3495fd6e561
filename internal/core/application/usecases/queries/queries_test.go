package queries_test

import (
	"testing"

	"haulage/internal/core/application/usecases/queries"
	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/media"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/truck"
	"haulage/internal/core/domain/model/user"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name     string
		validate func() error
		expected error
	}{
		{"list trucks", queries.ListTrucksQuery{}.Validate, queries.ErrListTrucksQueryIsNotConstructed},
		{"list orders", queries.ListOrdersQuery{}.Validate, queries.ErrListOrdersQueryIsNotConstructed},
		{"list customers", queries.ListCustomersQuery{}.Validate, queries.ErrListCustomersQueryIsNotConstructed},
		{"list materials", queries.ListMaterialsQuery{}.Validate, queries.ErrListMaterialsQueryIsNotConstructed},
		{"list dispatches", queries.ListDispatchesQuery{}.Validate, queries.ErrListDispatchesQueryIsNotConstructed},
		{"get dispatch", queries.GetDispatchQuery{}.Validate, queries.ErrGetDispatchQueryIsNotConstructed},
		{"list media", queries.ListDispatchMediaQuery{}.Validate, queries.ErrListDispatchMediaQueryIsNotConstructed},
		{"list exceptions", queries.ListExceptionsQuery{}.Validate, queries.ErrListExceptionsQueryIsNotConstructed},
		{"list users", queries.ListUsersQuery{}.Validate, queries.ErrListUsersQueryIsNotConstructed},
		{"get truck", queries.GetTruckQuery{}.Validate, queries.ErrGetTruckQueryIsNotConstructed},
		{"get order", queries.GetOrderQuery{}.Validate, queries.ErrGetOrderQueryIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.validate(), tt.expected)
		})
	}
}

func TestNewQueries_RejectInvalidFilters(t *testing.T) {
	admin := ports.Identity{UserID: kernel.NewUUID(), Capability: ports.CapabilityAdmin}
	badStage := media.Stage("selfie")
	badOrderStatus := order.Status(42)
	badRole := user.Role("driver")
	var zeroID kernel.UUID

	_, err := queries.NewListTrucksQuery([]truck.Status{truck.Status(9)}, false)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewListOrdersQuery(&badOrderStatus, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListDispatchesQuery(admin, []dispatch.Status{dispatch.Status(99)}, nil, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListDispatchesQuery(admin, nil, &zeroID, nil)
	require.Error(t, err)

	_, err = queries.NewGetDispatchQuery(admin, zeroID)
	require.Error(t, err)

	_, err = queries.NewListDispatchMediaQuery(admin, nil, &badStage)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListUsersQuery(&badRole)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewGetTruckByPlateQuery("  ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewListMaterialsQuery(true, decimal.NewFromInt(-1))
	require.Error(t, err)
}

func TestNewQueries_Valid(t *testing.T) {
	operator := ports.Identity{UserID: kernel.NewUUID(), Capability: ports.CapabilityOperator}
	id := kernel.NewUUID()
	stage := media.StageWeighIn
	resolved := false
	role := user.RoleOperator

	q1, err := queries.NewListTrucksQuery([]truck.Status{truck.Idle}, true)
	require.NoError(t, err)
	require.NoError(t, q1.Validate())

	q2, err := queries.NewListDispatchesQuery(operator, []dispatch.Status{dispatch.Assigned}, nil, &id)
	require.NoError(t, err)
	require.NoError(t, q2.Validate())

	q3, err := queries.NewListDispatchMediaQuery(operator, &id, &stage)
	require.NoError(t, err)
	require.NoError(t, q3.Validate())

	q4, err := queries.NewListExceptionsQuery(operator, &id, &resolved)
	require.NoError(t, err)
	require.NoError(t, q4.Validate())

	q5, err := queries.NewListUsersQuery(&role)
	require.NoError(t, err)
	require.NoError(t, q5.Validate())

	require.NoError(t, queries.NewListCustomersQuery("  acme ").Validate())
}
