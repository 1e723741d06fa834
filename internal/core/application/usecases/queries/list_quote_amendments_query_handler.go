package queries

import (
	"context"
	"database/sql"
	"errors"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListQuoteAmendmentsQueryHandler struct {
	db *gorm.DB
}

func NewListQuoteAmendmentsQueryHandler(db *gorm.DB) ListQuoteAmendmentsQueryHandler {
	return ListQuoteAmendmentsQueryHandler{db: db}
}

func (h ListQuoteAmendmentsQueryHandler) Handle(
	ctx context.Context,
	query ListQuoteAmendmentsQuery,
) ([]AmendmentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var forwarderID, exporterID uuid.UUID
	err := db.Raw(`
		SELECT q.forwarder_company_id, o.exporter_company_id
		FROM quotes AS q
		JOIN orders AS o ON o.id = q.order_id
		WHERE q.id = ?
	`, query.QuoteID().Bytes()).Row().Scan(&forwarderID, &exporterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("quote", query.QuoteID().String())
		}
		return nil, err
	}

	caller := query.Actor().CompanyID().Bytes()
	if caller != forwarderID && caller != exporterID {
		return nil, errs.NewForbiddenError("view amendments", "quote belongs to another company")
	}

	amendments := make([]AmendmentView, 0)

	rows, err := db.Raw(`
		SELECT
			id,
			previous_price,
			previous_currency,
			new_price,
			new_currency,
			reason,
			created_at
		FROM quote_amendments
		WHERE quote_id = ?
		ORDER BY created_at, id
	`, query.QuoteID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view                          AmendmentView
			id                            uuid.UUID
			previousAmount, newAmount     decimal.Decimal
			previousCurrency, newCurrency string
		)

		err = rows.Scan(
			&id,
			&previousAmount,
			&previousCurrency,
			&newAmount,
			&newCurrency,
			&view.Reason,
			&view.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.PreviousPrice, err = kernel.NewMoney(previousAmount, previousCurrency); err != nil {
			return nil, err
		}
		if view.NewPrice, err = kernel.NewMoney(newAmount, newCurrency); err != nil {
			return nil, err
		}
		view.CreatedAt = view.CreatedAt.UTC()
		amendments = append(amendments, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return amendments, nil
}
