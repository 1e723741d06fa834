package commands

import (
	"errors"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/rating"
	"freightdesk/internal/core/domain/services"
	"freightdesk/internal/pkg/guard"
)

var (
	ErrRateExporterCommandIsNotConstructed = errors.New(
		"RateExporterCommand must be created via NewRateExporterCommand constructor",
	)
	ErrRateForwarderCommandIsNotConstructed = errors.New(
		"RateForwarderCommand must be created via NewRateForwarderCommand constructor",
	)
)

// RateExporterCommand is the selected forwarder rating the exporter of an order.
type RateExporterCommand struct {
	actor   company.Actor
	orderID kernel.UUID
	input   services.RatingInput

	guard guard.ConstructorGuard
}

func NewRateExporterCommand(actor company.Actor, orderID kernel.UUID, scores rating.Scores, comment string) (RateExporterCommand, error) {
	if err := errors.Join(
		checkActor(actor),
		orderID.Validate(),
		scores.Validate(rating.ForwarderRatesExporter),
	); err != nil {
		return RateExporterCommand{}, err
	}

	return RateExporterCommand{
		actor:   actor,
		orderID: orderID,
		input:   services.RatingInput{Scores: scores, Comment: comment},
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RateExporterCommand) Validate() error {
	return c.guard.Validate(ErrRateExporterCommandIsNotConstructed)
}

func (c RateExporterCommand) Actor() company.Actor        { return c.actor }
func (c RateExporterCommand) OrderID() kernel.UUID        { return c.orderID }
func (c RateExporterCommand) Input() services.RatingInput { return c.input }

// RateForwarderCommand is the exporter rating the forwarder that won its order.
type RateForwarderCommand struct {
	actor       company.Actor
	orderID     kernel.UUID
	forwarderID kernel.UUID
	input       services.RatingInput

	guard guard.ConstructorGuard
}

func NewRateForwarderCommand(
	actor company.Actor,
	orderID, forwarderID kernel.UUID,
	scores rating.Scores,
	comment string,
) (RateForwarderCommand, error) {
	if err := errors.Join(
		checkActor(actor),
		orderID.Validate(),
		forwarderID.Validate(),
		scores.Validate(rating.ExporterRatesForwarder),
	); err != nil {
		return RateForwarderCommand{}, err
	}

	return RateForwarderCommand{
		actor:       actor,
		orderID:     orderID,
		forwarderID: forwarderID,
		input:       services.RatingInput{Scores: scores, Comment: comment},
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RateForwarderCommand) Validate() error {
	return c.guard.Validate(ErrRateForwarderCommandIsNotConstructed)
}

func (c RateForwarderCommand) Actor() company.Actor        { return c.actor }
func (c RateForwarderCommand) OrderID() kernel.UUID        { return c.orderID }
func (c RateForwarderCommand) ForwarderID() kernel.UUID    { return c.forwarderID }
func (c RateForwarderCommand) Input() services.RatingInput { return c.input }
