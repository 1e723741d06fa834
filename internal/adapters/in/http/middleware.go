package http

import (
	"strings"
	"time"

	"freightdesk/internal/core/application/usecases/queries"
	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderCompanyID = "X-Company-ID"

	actorKey = "actor"
)

// Authenticate resolves the caller's membership from the identity headers. Missing or
// malformed headers are Unauthorized; a user outside the company is Forbidden.
func Authenticate(resolver ResultHandler[queries.ResolveActorQuery, company.Actor]) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			query, err := queries.NewResolveActorQuery(req.Header.Get(HeaderUserID), req.Header.Get(HeaderCompanyID))
			if err != nil {
				return err
			}

			actor, err := resolver.Handle(req.Context(), query)
			if err != nil {
				return err
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (company.Actor, error) {
	actor, ok := c.Get(actorKey).(company.Actor)
	if !ok {
		return company.Actor{}, errs.NewUnauthorizedError("caller is not authenticated")
	}
	return actor, nil
}

// ValidateRequests checks JSON requests against doc. Multipart uploads and routes missing
// from the document pass through: handlers validate uploads themselves and echo answers
// unknown routes.
func ValidateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
				return next(c)
			}

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return errs.NewValueIsInvalidErrorWithCause("request", err)
			}
			return next(c)
		}
	}, nil
}

// RequestLogger writes one zerolog event per request.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error().Err(v.Error)
			} else if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// RequestTimeout bounds the context handed to the application.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.ContextTimeout(timeout)
}

func bodyLimit(limit string) echo.MiddlewareFunc {
	return middleware.BodyLimit(limit)
}
