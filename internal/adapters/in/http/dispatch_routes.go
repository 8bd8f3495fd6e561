package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/application/usecases/queries"
	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/media"
	"haulage/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ListDispatches handles GET /api/v1/dispatches. Operators see their own
// dispatches only.
func (s *Server) ListDispatches(c echo.Context) error {
	rawStatuses, err := queryList(c, "status")
	if err != nil {
		return err
	}
	statuses := make([]dispatch.Status, 0, len(rawStatuses))
	for _, raw := range rawStatuses {
		status, err := dispatch.ParseStatus(raw)
		if err != nil {
			return err
		}
		statuses = append(statuses, status)
	}
	operatorID, err := queryUUID(c, "operator_id")
	if err != nil {
		return err
	}
	orderID, err := queryUUID(c, "order_id")
	if err != nil {
		return err
	}

	query, err := queries.NewListDispatchesQuery(identityOf(c), statuses, operatorID, orderID)
	if err != nil {
		return err
	}
	dispatches, err := s.h.ListDispatches.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	response := make([]dispatchResponse, 0, len(dispatches))
	for _, d := range dispatches {
		response = append(response, dispatchFromView(d))
	}
	return c.JSON(http.StatusOK, response)
}

// GetDispatch handles GET /api/v1/dispatches/{id}.
func (s *Server) GetDispatch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetDispatchQuery(identityOf(c), id)
	if err != nil {
		return err
	}
	details, err := s.h.GetDispatch.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dispatchDetailsFromView(details))
}

// CreateDispatch handles POST /api/v1/dispatches.
func (s *Server) CreateDispatch(c echo.Context) error {
	var req dispatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	truckID, err := parseUUID("truck_id", req.TruckID)
	if err != nil {
		return err
	}
	orderID, err := parseUUID("order_id", req.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateDispatchCommand(identityOf(c), truckID, orderID)
	if err != nil {
		return err
	}
	d, err := s.h.CreateDispatch.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dispatchRefFromDomain(d))
}

// DeleteDispatch handles DELETE /api/v1/dispatches/{id}.
func (s *Server) DeleteDispatch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteDispatchCommand(identityOf(c), id)
	if err != nil {
		return err
	}
	if err = s.h.DeleteDispatch.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// StartJourney handles POST /api/v1/dispatches/{id}/start-journey.
func (s *Server) StartJourney(c echo.Context) error {
	return s.applyStage(c, dispatch.ActionStartJourney)
}

// WeighIn handles POST /api/v1/dispatches/{id}/weigh-in.
func (s *Server) WeighIn(c echo.Context) error {
	return s.applyStage(c, dispatch.ActionWeighIn)
}

// Unload handles POST /api/v1/dispatches/{id}/unload.
func (s *Server) Unload(c echo.Context) error {
	return s.applyStage(c, dispatch.ActionUnload)
}

// WeighOut handles POST /api/v1/dispatches/{id}/weigh-out.
func (s *Server) WeighOut(c echo.Context) error {
	return s.applyStage(c, dispatch.ActionWeighOut)
}

// CompleteJob handles POST /api/v1/dispatches/{id}/complete.
func (s *Server) CompleteJob(c echo.Context) error {
	return s.applyStage(c, dispatch.ActionCompleteJob)
}

// applyStage runs one staged step. A committed step whose images partly
// failed answers 207 with the failures listed next to the result.
func (s *Server) applyStage(c echo.Context, action dispatch.Action) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	in, err := s.readStageInput(c)
	if err != nil {
		return err
	}
	if len(in.images) > 0 && !action.TakesEvidence() {
		return errs.NewValueIsInvalidErrorWithCause("images", fmt.Errorf("%s takes no images", action))
	}

	description := in.description
	if description == "" {
		description = in.note
	}
	transition := dispatch.Transition{Action: action, Weight: in.weightFor(action), Note: in.note}
	cmd, err := commands.NewApplyDispatchTransitionCommand(identityOf(c), id, transition, in.images, description)
	if err != nil {
		return err
	}

	result, err := s.h.ApplyDispatchTransition.Handle(c.Request().Context(), cmd)
	return respondTransition(c, result, err)
}

// ForceDispatchStatus handles PUT /api/v1/dispatches/{id}/status.
func (s *Server) ForceDispatchStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dispatchStatusRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	status, err := dispatch.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewForceDispatchStatusCommand(identityOf(c), id, status)
	if err != nil {
		return err
	}
	result, err := s.h.ForceDispatchStatus.Handle(c.Request().Context(), cmd)
	return respondTransition(c, result, err)
}

// CancelDispatch handles POST /api/v1/dispatches/{id}/cancel.
func (s *Server) CancelDispatch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelDispatchCommand(identityOf(c), id)
	if err != nil {
		return err
	}
	result, err := s.h.CancelDispatch.Handle(c.Request().Context(), cmd)
	return respondTransition(c, result, err)
}

func respondTransition(c echo.Context, result commands.TransitionResult, err error) error {
	if err != nil && !errors.Is(err, errs.ErrPartialUploadFailure) {
		return err
	}
	response := transitionFromResult(result)
	response.Failures = failuresOf(err)
	if err != nil {
		return c.JSON(http.StatusMultiStatus, response)
	}
	return c.JSON(http.StatusOK, response)
}

// AssignOperator handles PUT /api/v1/dispatches/{id}/operator.
func (s *Server) AssignOperator(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req operatorRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	operatorID, err := parseUUID("operator_id", req.OperatorID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignOperatorCommand(identityOf(c), id, operatorID)
	if err != nil {
		return err
	}
	d, err := s.h.AssignOperator.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dispatchRefFromDomain(d))
}

// ListDispatchMedia handles GET /api/v1/dispatches/{id}/media.
func (s *Server) ListDispatchMedia(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var stage *media.Stage
	raw, err := queryString(c, "stage")
	if err != nil {
		return err
	}
	if raw != nil {
		parsed, err := media.ParseStage(*raw)
		if err != nil {
			return err
		}
		stage = &parsed
	}

	query, err := queries.NewListDispatchMediaQuery(identityOf(c), &id, stage)
	if err != nil {
		return err
	}
	items, err := s.h.ListDispatchMedia.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	response := make([]mediaResponse, 0, len(items))
	for _, m := range items {
		response = append(response, mediaFromView(m))
	}
	return c.JSON(http.StatusOK, response)
}

// UploadDispatchMedia handles POST /api/v1/dispatches/{id}/media.
func (s *Server) UploadDispatchMedia(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	in, err := s.readStageInput(c)
	if err != nil {
		return err
	}
	stage, err := media.ParseStage(in.stage)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUploadDispatchMediaCommand(identityOf(c), id, stage, in.images, in.description)
	if err != nil {
		return err
	}
	records, err := s.h.UploadDispatchMedia.Handle(c.Request().Context(), cmd)
	if err != nil && !errors.Is(err, errs.ErrPartialUploadFailure) {
		return err
	}

	response := uploadResponse{Evidence: evidenceFromRecords(records), Failures: failuresOf(err)}
	if err != nil {
		return c.JSON(http.StatusMultiStatus, response)
	}
	return c.JSON(http.StatusCreated, response)
}

// OpenException handles POST /api/v1/dispatches/{id}/exceptions.
func (s *Server) OpenException(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req exceptionRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewOpenExceptionCommand(identityOf(c), kernel.NewUUID(), id, req.Description, req.Type)
	if err != nil {
		return err
	}
	e, err := s.h.OpenException.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, exceptionFromDomain(e))
}

// ListExceptions handles GET /api/v1/exceptions.
func (s *Server) ListExceptions(c echo.Context) error {
	resolved, err := queryBool(c, "resolved")
	if err != nil {
		return err
	}
	dispatchID, err := queryUUID(c, "dispatch_id")
	if err != nil {
		return err
	}

	query, err := queries.NewListExceptionsQuery(identityOf(c), dispatchID, resolved)
	if err != nil {
		return err
	}
	items, err := s.h.ListExceptions.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	response := make([]exceptionResponse, 0, len(items))
	for _, e := range items {
		response = append(response, exceptionFromView(e))
	}
	return c.JSON(http.StatusOK, response)
}

// ResolveException handles POST /api/v1/exceptions/{id}/resolve.
func (s *Server) ResolveException(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewResolveExceptionCommand(identityOf(c), id)
	if err != nil {
		return err
	}
	e, err := s.h.ResolveException.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, exceptionFromDomain(e))
}

// stageInput is what a staged step or a media upload carries, from either
// a JSON body or a multipart form.
type stageInput struct {
	note        string
	weight      *decimal.Decimal
	grossWeight *decimal.Decimal
	tareWeight  *decimal.Decimal
	description string
	stage       string
	images      []commands.EvidenceImage
}

func (s *Server) readStageInput(c echo.Context) (stageInput, error) {
	if isMultipart(c.Request()) {
		return s.readStageForm(c)
	}

	var req stageRequest
	if err := bindBody(c, &req); err != nil {
		return stageInput{}, err
	}
	return stageInput{
		note:        req.Note,
		weight:      req.Weight,
		grossWeight: req.GrossWeight,
		tareWeight:  req.TareWeight,
		description: req.Description,
	}, nil
}

// weightFor picks the reading for action. gross_weight on weigh-in and
// tare_weight on weigh-out win over the generic weight field.
func (in stageInput) weightFor(action dispatch.Action) *decimal.Decimal {
	switch {
	case action == dispatch.ActionWeighIn && in.grossWeight != nil:
		return in.grossWeight
	case action == dispatch.ActionWeighOut && in.tareWeight != nil:
		return in.tareWeight
	}
	return in.weight
}

func (s *Server) readStageForm(c echo.Context) (stageInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return stageInput{}, errs.NewValueIsInvalidErrorWithCause("form", err)
	}

	in := stageInput{
		note:        formValue(form, "note"),
		description: formValue(form, "description"),
		stage:       formValue(form, "stage"),
	}
	for key, dst := range map[string]**decimal.Decimal{
		"weight":       &in.weight,
		"gross_weight": &in.grossWeight,
		"tare_weight":  &in.tareWeight,
	} {
		if *dst, err = formDecimal(form, key); err != nil {
			return stageInput{}, err
		}
	}

	for _, fh := range form.File["images"] {
		img, err := s.readImage(fh)
		if err != nil {
			return stageInput{}, err
		}
		in.images = append(in.images, img)
	}
	return in, nil
}

func (s *Server) readImage(fh *multipart.FileHeader) (commands.EvidenceImage, error) {
	if fh.Size > s.maxImageBytes {
		return commands.EvidenceImage{}, errs.NewValueIsOutOfRangeError("image size", fh.Size, 1, s.maxImageBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return commands.EvidenceImage{}, errs.NewValueIsInvalidErrorWithCause("images", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxImageBytes+1))
	if err != nil {
		return commands.EvidenceImage{}, errs.NewValueIsInvalidErrorWithCause("images", err)
	}
	return commands.EvidenceImage{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Data:        data,
	}, nil
}

func formDecimal(form *multipart.Form, key string) (*decimal.Decimal, error) {
	raw := formValue(form, key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return &d, nil
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}
