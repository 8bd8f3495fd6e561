package queries

import (
	"errors"
	"strings"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrGetTruckQueryIsNotConstructed = errors.New("GetTruckQuery must be created via NewGetTruckQuery or NewGetTruckByPlateQuery")

// GetTruckQuery looks a truck up by id or by its exact plate.
type GetTruckQuery struct {
	truckID *kernel.UUID
	plate   string

	guard guard.ConstructorGuard
}

func NewGetTruckQuery(truckID kernel.UUID) (GetTruckQuery, error) {
	if err := truckID.Validate(); err != nil {
		return GetTruckQuery{}, err
	}
	return GetTruckQuery{truckID: &truckID, guard: guard.NewConstructorGuard()}, nil
}

func NewGetTruckByPlateQuery(plate string) (GetTruckQuery, error) {
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return GetTruckQuery{}, errs.NewValueIsRequiredError("plate")
	}
	return GetTruckQuery{plate: plate, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTruckQuery) Validate() error {
	return q.guard.Validate(ErrGetTruckQueryIsNotConstructed)
}
