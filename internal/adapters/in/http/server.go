// Package http exposes the marketplace over echo. Handlers stay thin: they bind the request,
// build a command or query, call the application and map the outcome to JSON.
package http

import (
	"context"

	"freightdesk/internal/core/application/usecases/commands"
	"freightdesk/internal/core/application/usecases/queries"
	"freightdesk/internal/core/domain/model/company"

	"github.com/labstack/echo/v4"
)

// Handler runs a command or query that only reports an error.
type Handler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler runs a command or query that returns a value.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Raters covers both rating directions, which share one handler.
type Raters interface {
	HandleRateExporter(ctx context.Context, cmd commands.RateExporterCommand) error
	HandleRateForwarder(ctx context.Context, cmd commands.RateForwarderCommand) error
}

// Application is every use case the HTTP surface calls.
type Application struct {
	ResolveActor      ResultHandler[queries.ResolveActorQuery, company.Actor]
	CreateOrder       Handler[commands.CreateOrderCommand]
	GetOrderDetails   ResultHandler[queries.GetOrderDetailsQuery, *queries.GetOrderDetailsQueryResponse]
	InviteForwarder   Handler[commands.InviteForwarderCommand]
	RespondInvitation Handler[commands.RespondInvitationCommand]
	ReviewQuotes      Handler[commands.ReviewQuotesCommand]
	SubmitQuote       ResultHandler[commands.SubmitQuoteCommand, commands.SubmitQuoteResult]
	SelectQuote       Handler[commands.SelectQuoteCommand]
	AmendQuote        Handler[commands.AmendQuoteCommand]
	CancelQuote       Handler[commands.CancelQuoteCommand]
	ListAmendments    ResultHandler[queries.ListQuoteAmendmentsQuery, []queries.AmendmentView]
	ChangeOrderStatus Handler[commands.ChangeOrderStatusCommand]
	UploadInvoice     ResultHandler[commands.UploadInvoiceCommand, commands.UploadInvoiceResult]
	AcceptInvoice     Handler[commands.AcceptInvoiceCommand]
	Ratings           Raters
}

// Server implements the /api/v1 routes on top of Application.
type Server struct {
	app Application
}

func NewServer(app Application) *Server {
	return &Server{app: app}
}

// Register mounts every route on g. Callers are expected to have installed the
// authentication middleware on g.
func (s *Server) Register(g *echo.Group, uploadLimit string) {
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/:id", s.GetOrder)
	g.POST("/orders/:id/invitations", s.InviteForwarder)
	g.POST("/orders/:id/invitations/respond", s.RespondInvitation)
	g.POST("/orders/:id/review", s.ReviewQuotes)
	g.POST("/orders/:id/quotes", s.SubmitQuote)
	g.PATCH("/orders/:id/quotes/:quoteId/select", s.SelectQuote)
	g.POST("/orders/:id/status", s.ChangeOrderStatus)
	g.POST("/orders/:id/rate-exporter", s.RateExporter)
	g.POST("/orders/:id/rate-forwarder", s.RateForwarder)

	g.PATCH("/forwarders/quotes/:id", s.AmendQuote)
	g.PATCH("/forwarders/quotes/:id/cancel", s.CancelQuote)
	g.GET("/forwarders/quotes/:id/amendments", s.ListQuoteAmendments)

	g.POST("/invoices/upload", s.UploadInvoice, bodyLimit(uploadLimit))
	g.POST("/invoices/accept", s.AcceptInvoice)
}
