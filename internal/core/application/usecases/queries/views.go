// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture:
// handlers read straight from the tables into flat read models and never
// load aggregates.
package queries

import (
	"time"

	"haulage/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TruckView struct {
	ID         kernel.UUID
	Plate      string
	Capacity   decimal.Decimal
	DriverName string
	Status     string
	ClaimedBy  *kernel.UUID
	Available  bool
}

type CustomerView struct {
	ID      kernel.UUID
	Name    string
	Contact string
	Email   string
}

type OrderView struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	CustomerName string
	MaterialType string
	Quantity     decimal.Decimal
	Status       string
	CreatedAt    time.Time
}

type MaterialView struct {
	ID       kernel.UUID
	Name     string
	Stock    decimal.Decimal
	Unit     string
	LowStock bool
}

// DispatchView is a dispatch with its truck plate, order material and
// operator name resolved.
type DispatchView struct {
	ID               kernel.UUID
	TruckID          kernel.UUID
	TruckPlate       string
	OrderID          kernel.UUID
	MaterialType     string
	OperatorID       *kernel.UUID
	OperatorName     string
	Status           string
	StartJourneyTime *time.Time
	DepartureTime    *time.Time
	WeighInTime      *time.Time
	GrossWeight      *decimal.Decimal
	WeighInNote      string
	UnloadTime       *time.Time
	UnloadNote       string
	WeighOutTime     *time.Time
	TareWeight       *decimal.Decimal
	WeighOutNote     string
	CompletionTime   *time.Time
	ArrivalTime      *time.Time
	// NetWeight is gross minus tare once both are recorded.
	NetWeight *decimal.Decimal
	CreatedAt time.Time
}

type MediaView struct {
	ID          kernel.UUID
	DispatchID  kernel.UUID
	Stage       string
	Reference   string
	UploaderID  *kernel.UUID
	Description string
	FileName    string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

type ExceptionView struct {
	ID          kernel.UUID
	DispatchID  kernel.UUID
	Description string
	Type        string
	Resolved    bool
	ResolvedBy  *kernel.UUID
	ResolvedAt  *time.Time
	CreatedAt   time.Time
}

type UserView struct {
	ID       kernel.UUID
	Username string
	Role     string
}

func toUUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}
