package http

import (
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// pathUUID binds a uuid path parameter the way generated oapi servers do.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func pathID(c echo.Context) (kernel.UUID, error) {
	return pathUUID(c, "id")
}

func queryString(c echo.Context, name string) (*string, error) {
	var out *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &out); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return out, nil
}

func queryBool(c echo.Context, name string) (*bool, error) {
	var out *bool
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &out); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return out, nil
}

// queryList reads a comma separated list such as ?status=assigned,in_transit.
func queryList(c echo.Context, name string) ([]string, error) {
	var out []string
	if err := runtime.BindQueryParameter("form", false, false, name, c.QueryParams(), &out); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return out, nil
}

func queryUUID(c echo.Context, name string) (*kernel.UUID, error) {
	raw, err := queryString(c, name)
	if err != nil || raw == nil {
		return nil, err
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &id, nil
}

func parseUUID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
