package http

import (
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries what NewRouter needs besides the application.
type RouterConfig struct {
	Document       *openapi3.T
	RequestTimeout time.Duration
	UploadLimit    string
	Logger         zerolog.Logger
}

// NewRouter builds the echo instance: ops endpoints at the root and the authenticated,
// validated marketplace API under /api/v1.
func NewRouter(app Application, cfg RouterConfig) (*echo.Echo, error) {
	validate, err := ValidateRequests(cfg.Document)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(cfg.Logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1",
		RequestTimeout(cfg.RequestTimeout),
		Authenticate(app.ResolveActor),
		validate,
	)
	NewServer(app).Register(v1, cfg.UploadLimit)

	return e, nil
}
