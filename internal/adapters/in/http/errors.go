package http

import (
	"errors"
	"fmt"
	"net/http"

	"freightdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const internalErrorMessage = "internal error"

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation, errs.KindInvalidState:
		return http.StatusBadRequest
	case errs.KindUnauthorized:
		return http.StatusUnauthorized
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// kindForStatus classifies errors raised by echo itself (routing, body limits).
func kindForStatus(status int) errs.Kind {
	switch {
	case status == http.StatusUnauthorized:
		return errs.KindUnauthorized
	case status == http.StatusForbidden:
		return errs.KindForbidden
	case status == http.StatusNotFound:
		return errs.KindNotFound
	case status == http.StatusConflict:
		return errs.KindConflict
	case status >= http.StatusInternalServerError:
		return errs.KindInternal
	default:
		return errs.KindValidation
	}
}

// ErrorHandler renders every error as {"error", "kind"}. Internal failures are logged and
// answered with a generic message.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status  int
			kind    errs.Kind
			message string
			he      *echo.HTTPError
		)
		if errors.As(err, &he) {
			status, kind, message = he.Code, kindForStatus(he.Code), fmt.Sprint(he.Message)
		} else {
			kind = errs.KindOf(err)
			status, message = statusFor(kind), err.Error()
		}

		if kind == errs.KindInternal {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request failed")
			message = internalErrorMessage
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ErrorResponse{Error: message, Kind: string(kind)})
		}
		if writeErr != nil {
			log.Warn().Err(writeErr).Msg("error response not written")
		}
	}
}
