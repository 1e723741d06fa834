package http

import (
	"strings"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathUUID binds the named path parameter the way oapi-codegen generated servers do.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nonNilUUID(name, id)
}

// bodyUUID parses an identifier taken from a request body or form field.
func bodyUUID(name, raw string) (kernel.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nonNilUUID(name, id)
}

func nonNilUUID(name string, id uuid.UUID) (kernel.UUID, error) {
	if id == uuid.Nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	return kernel.UUIDFromString(id.String())
}

// bind decodes the JSON body into dst, reporting decoding failures as validation errors.
func bind(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}
