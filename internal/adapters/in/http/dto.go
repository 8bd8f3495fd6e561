package http

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/application/usecases/queries"
	"haulage/internal/core/domain/model/customer"
	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/exceptionlog"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/material"
	"haulage/internal/core/domain/model/user"
	"haulage/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Requests

type truckRequest struct {
	Plate      string           `json:"plate" validate:"required"`
	Capacity   *decimal.Decimal `json:"capacity" validate:"required"`
	DriverName string           `json:"driver_name"`
}

type truckStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=idle in_transit"`
}

type customerRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type materialRequest struct {
	Name  string           `json:"name" validate:"required"`
	Stock *decimal.Decimal `json:"stock"`
	Unit  string           `json:"unit"`
}

type adjustmentRequest struct {
	Delta *decimal.Decimal `json:"delta" validate:"required"`
}

type orderRequest struct {
	CustomerID   string           `json:"customer_id" validate:"required,uuid"`
	MaterialType string           `json:"material_type" validate:"required"`
	Quantity     *decimal.Decimal `json:"quantity" validate:"required"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

type dispatchRequest struct {
	TruckID string `json:"truck_id" validate:"required,uuid"`
	OrderID string `json:"order_id" validate:"required,uuid"`
}

type dispatchStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type operatorRequest struct {
	OperatorID string `json:"operator_id" validate:"required,uuid"`
}

type stageRequest struct {
	Note        string           `json:"note"`
	Weight      *decimal.Decimal `json:"weight"`
	GrossWeight *decimal.Decimal `json:"gross_weight"`
	TareWeight  *decimal.Decimal `json:"tare_weight"`
	Description string           `json:"description"`
}

type exceptionRequest struct {
	Description string `json:"description" validate:"required"`
	Type        string `json:"type"`
}

type userRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin operator"`
}

// Responses

type truckResponse struct {
	ID         string          `json:"id"`
	Plate      string          `json:"plate"`
	Capacity   decimal.Decimal `json:"capacity"`
	DriverName string          `json:"driver_name"`
	Status     string          `json:"status"`
	ClaimedBy  *string         `json:"claimed_by"`
	Available  bool            `json:"available"`
}

type customerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

type materialResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Stock    decimal.Decimal `json:"stock"`
	Unit     string          `json:"unit"`
	LowStock bool            `json:"low_stock"`
}

type stockAdjustmentResponse struct {
	MaterialID string          `json:"material_id"`
	Name       string          `json:"name"`
	Stock      decimal.Decimal `json:"stock"`
	Clamped    bool            `json:"clamped"`
}

type orderResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	MaterialType string          `json:"material_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

type createdOrderResponse struct {
	OrderID    string  `json:"order_id"`
	DispatchID *string `json:"dispatch_id"`
	TruckID    *string `json:"truck_id"`
}

type dispatchRefResponse struct {
	ID         string  `json:"id"`
	TruckID    string  `json:"truck_id"`
	OrderID    string  `json:"order_id"`
	OperatorID *string `json:"operator_id"`
	Status     string  `json:"status"`
}

type dispatchResponse struct {
	ID               string           `json:"id"`
	TruckID          string           `json:"truck_id"`
	TruckPlate       string           `json:"truck_plate"`
	OrderID          string           `json:"order_id"`
	MaterialType     string           `json:"material_type"`
	OperatorID       *string          `json:"operator_id"`
	OperatorName     string           `json:"operator_name,omitempty"`
	Status           string           `json:"status"`
	StartJourneyTime *time.Time       `json:"start_journey_time,omitempty"`
	DepartureTime    *time.Time       `json:"departure_time,omitempty"`
	WeighInTime      *time.Time       `json:"weigh_in_time,omitempty"`
	GrossWeight      *decimal.Decimal `json:"gross_weight"`
	WeighInNote      string           `json:"weigh_in_note,omitempty"`
	UnloadTime       *time.Time       `json:"unload_time,omitempty"`
	UnloadNote       string           `json:"unload_note,omitempty"`
	WeighOutTime     *time.Time       `json:"weigh_out_time,omitempty"`
	TareWeight       *decimal.Decimal `json:"tare_weight"`
	WeighOutNote     string           `json:"weigh_out_note,omitempty"`
	CompletionTime   *time.Time       `json:"completion_time,omitempty"`
	ArrivalTime      *time.Time       `json:"arrival_time,omitempty"`
	NetWeight        *decimal.Decimal `json:"net_weight"`
	CreatedAt        time.Time        `json:"created_at"`
}

type dispatchDetailsResponse struct {
	dispatchResponse
	Media      []mediaResponse     `json:"media"`
	Exceptions []exceptionResponse `json:"exceptions"`
}

type evidenceResponse struct {
	MediaID   string `json:"media_id"`
	Stage     string `json:"stage"`
	Reference string `json:"reference"`
	FileName  string `json:"file_name"`
}

type uploadFailureResponse struct {
	Index    int    `json:"index"`
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

type transitionResponse struct {
	DispatchID     string                  `json:"dispatch_id"`
	Status         string                  `json:"status"`
	TruckStatus    string                  `json:"truck_status"`
	OrderStatus    string                  `json:"order_status"`
	StockDeducted  bool                    `json:"stock_deducted"`
	StockClamped   bool                    `json:"stock_clamped"`
	MaterialSeeded bool                    `json:"material_seeded"`
	Material       string                  `json:"material,omitempty"`
	Deducted       *decimal.Decimal        `json:"deducted,omitempty"`
	Stock          *decimal.Decimal        `json:"stock,omitempty"`
	Evidence       []evidenceResponse      `json:"evidence"`
	Failures       []uploadFailureResponse `json:"failures,omitempty"`
}

type uploadResponse struct {
	Evidence []evidenceResponse      `json:"evidence"`
	Failures []uploadFailureResponse `json:"failures,omitempty"`
}

type mediaResponse struct {
	ID          string    `json:"id"`
	DispatchID  string    `json:"dispatch_id"`
	Stage       string    `json:"stage"`
	Reference   string    `json:"reference"`
	UploaderID  *string   `json:"uploader_id"`
	Description string    `json:"description"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

type exceptionResponse struct {
	ID          string     `json:"id"`
	DispatchID  string     `json:"dispatch_id"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Resolved    bool       `json:"resolved"`
	ResolvedBy  *string    `json:"resolved_by"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func truckFromView(v queries.TruckView) truckResponse {
	return truckResponse{
		ID:         v.ID.String(),
		Plate:      v.Plate,
		Capacity:   v.Capacity,
		DriverName: v.DriverName,
		Status:     v.Status,
		ClaimedBy:  optionalString(v.ClaimedBy),
		Available:  v.Available,
	}
}

func customerFromView(v queries.CustomerView) customerResponse {
	return customerResponse{ID: v.ID.String(), Name: v.Name, Contact: v.Contact, Email: v.Email}
}

func customerFromDomain(c *customer.Customer) customerResponse {
	return customerResponse{ID: c.ID().String(), Name: c.Name(), Contact: c.Contact(), Email: c.Email()}
}

func materialFromView(v queries.MaterialView) materialResponse {
	return materialResponse{ID: v.ID.String(), Name: v.Name, Stock: v.Stock, Unit: v.Unit, LowStock: v.LowStock}
}

func materialFromDomain(m *material.Material, threshold decimal.Decimal) materialResponse {
	return materialResponse{
		ID:       m.ID().String(),
		Name:     m.Name(),
		Stock:    m.Stock(),
		Unit:     m.Unit(),
		LowStock: m.IsLow(threshold),
	}
}

func adjustmentFromResult(a commands.StockAdjustment) stockAdjustmentResponse {
	return stockAdjustmentResponse{MaterialID: a.MaterialID.String(), Name: a.Name, Stock: a.Stock, Clamped: a.Clamped}
}

func orderFromView(v queries.OrderView) orderResponse {
	return orderResponse{
		ID:           v.ID.String(),
		CustomerID:   v.CustomerID.String(),
		CustomerName: v.CustomerName,
		MaterialType: v.MaterialType,
		Quantity:     v.Quantity,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
	}
}

func createdOrderFromResult(r commands.CreateOrderResult) createdOrderResponse {
	return createdOrderResponse{
		OrderID:    r.OrderID.String(),
		DispatchID: optionalString(r.DispatchID),
		TruckID:    optionalString(r.TruckID),
	}
}

func dispatchRefFromDomain(d *dispatch.Dispatch) dispatchRefResponse {
	return dispatchRefResponse{
		ID:         d.ID().String(),
		TruckID:    d.TruckID().String(),
		OrderID:    d.OrderID().String(),
		OperatorID: optionalString(d.OperatorID()),
		Status:     d.Status().String(),
	}
}

func dispatchFromView(v queries.DispatchView) dispatchResponse {
	return dispatchResponse{
		ID:               v.ID.String(),
		TruckID:          v.TruckID.String(),
		TruckPlate:       v.TruckPlate,
		OrderID:          v.OrderID.String(),
		MaterialType:     v.MaterialType,
		OperatorID:       optionalString(v.OperatorID),
		OperatorName:     v.OperatorName,
		Status:           v.Status,
		StartJourneyTime: v.StartJourneyTime,
		DepartureTime:    v.DepartureTime,
		WeighInTime:      v.WeighInTime,
		GrossWeight:      v.GrossWeight,
		WeighInNote:      v.WeighInNote,
		UnloadTime:       v.UnloadTime,
		UnloadNote:       v.UnloadNote,
		WeighOutTime:     v.WeighOutTime,
		TareWeight:       v.TareWeight,
		WeighOutNote:     v.WeighOutNote,
		CompletionTime:   v.CompletionTime,
		ArrivalTime:      v.ArrivalTime,
		NetWeight:        v.NetWeight,
		CreatedAt:        v.CreatedAt,
	}
}

func dispatchDetailsFromView(v queries.DispatchDetails) dispatchDetailsResponse {
	out := dispatchDetailsResponse{
		dispatchResponse: dispatchFromView(v.DispatchView),
		Media:            make([]mediaResponse, 0, len(v.Media)),
		Exceptions:       make([]exceptionResponse, 0, len(v.Exceptions)),
	}
	for _, m := range v.Media {
		out.Media = append(out.Media, mediaFromView(m))
	}
	for _, e := range v.Exceptions {
		out.Exceptions = append(out.Exceptions, exceptionFromView(e))
	}
	return out
}

func evidenceFromRecords(records []commands.EvidenceRecord) []evidenceResponse {
	out := make([]evidenceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, evidenceResponse{
			MediaID:   r.MediaID.String(),
			Stage:     string(r.Stage),
			Reference: r.Reference,
			FileName:  r.FileName,
		})
	}
	return out
}

// failuresOf lists the failed images of a partial upload, or nothing for
// any other error.
func failuresOf(err error) []uploadFailureResponse {
	var partial *errs.PartialUploadFailureError
	if !errors.As(err, &partial) {
		return nil
	}
	out := make([]uploadFailureResponse, 0, len(partial.Failures))
	for _, f := range partial.Failures {
		msg := ""
		if f.Cause != nil {
			msg = f.Cause.Error()
		}
		out = append(out, uploadFailureResponse{Index: f.Index, FileName: f.FileName, Error: msg})
	}
	return out
}

func transitionFromResult(r commands.TransitionResult) transitionResponse {
	out := transitionResponse{
		DispatchID:     r.DispatchID.String(),
		Status:         r.Status.String(),
		TruckStatus:    r.TruckStatus.String(),
		OrderStatus:    r.OrderStatus.String(),
		StockDeducted:  r.StockDeducted,
		StockClamped:   r.StockClamped,
		MaterialSeeded: r.MaterialSeeded,
		Material:       r.Material,
		Evidence:       evidenceFromRecords(r.Evidence),
	}
	if r.StockDeducted {
		deducted, stock := r.Deducted, r.Stock
		out.Deducted, out.Stock = &deducted, &stock
	}
	return out
}

func mediaFromView(v queries.MediaView) mediaResponse {
	return mediaResponse{
		ID:          v.ID.String(),
		DispatchID:  v.DispatchID.String(),
		Stage:       v.Stage,
		Reference:   v.Reference,
		UploaderID:  optionalString(v.UploaderID),
		Description: v.Description,
		FileName:    v.FileName,
		ContentType: v.ContentType,
		Size:        v.Size,
		CreatedAt:   v.CreatedAt,
	}
}

func exceptionFromView(v queries.ExceptionView) exceptionResponse {
	createdAt := v.CreatedAt
	return exceptionResponse{
		ID:          v.ID.String(),
		DispatchID:  v.DispatchID.String(),
		Description: v.Description,
		Type:        v.Type,
		Resolved:    v.Resolved,
		ResolvedBy:  optionalString(v.ResolvedBy),
		ResolvedAt:  v.ResolvedAt,
		CreatedAt:   &createdAt,
	}
}

func exceptionFromDomain(e *exceptionlog.Exception) exceptionResponse {
	return exceptionResponse{
		ID:          e.ID().String(),
		DispatchID:  e.DispatchID().String(),
		Description: e.Description(),
		Type:        e.Type(),
		Resolved:    e.IsResolved(),
		ResolvedBy:  optionalString(e.ResolvedBy()),
		ResolvedAt:  e.ResolvedAt(),
	}
}

func userFromView(v queries.UserView) userResponse {
	return userResponse{ID: v.ID.String(), Username: v.Username, Role: v.Role}
}

func userFromDomain(u *user.User) userResponse {
	return userResponse{ID: u.ID().String(), Username: u.Username(), Role: string(u.Role())}
}

// RequestValidator adapts go-playground/validator to echo. Failures come
// back in the errs taxonomy under the request's JSON field names.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("request", err)
	}
	joined := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			joined = append(joined, errs.NewValueIsRequiredError(fe.Field()))
			continue
		}
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause(fe.Field(), fe))
	}
	return errors.Join(joined...)
}

// bindBody decodes and validates a JSON request body.
func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return c.Validate(dst)
}
